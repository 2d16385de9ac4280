package api

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/okian/timeblock/internal/domain/model"
	"github.com/okian/timeblock/internal/domain/scoring"
	"github.com/okian/timeblock/internal/domain/types"
)

// ScoreHandler serves the scoring endpoints.
type ScoreHandler struct {
	deps Dependencies
}

// NewScoreHandler creates a new score handler.
func NewScoreHandler(deps Dependencies) *ScoreHandler {
	return &ScoreHandler{deps: deps}
}

type efficiencyResponse struct {
	Efficiency float64    `json:"efficiency"`
	Band       types.Band `json:"band"`
}

// HandleScore handles POST /score with a JSON body and GET /score?blocks=&minutes=.
func (h *ScoreHandler) HandleScore(w http.ResponseWriter, r *http.Request) {
	var sample model.ScheduleSample
	switch r.Method {
	case http.MethodPost:
		dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&sample); err != nil {
			writeError(w, http.StatusBadRequest, "bad_request", fmt.Errorf("%w: invalid JSON body", ErrBadRequest))
			return
		}
	case http.MethodGet:
		var err error
		if sample, err = sampleFromQuery(r); err != nil {
			writeError(w, http.StatusBadRequest, "bad_request", err)
			return
		}
	default:
		methodNotAllowed(w, http.MethodGet, http.MethodPost)
		return
	}

	b, err := h.deps.Evaluate(r.Context(), sample)
	if err != nil {
		writeSampleError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, b)
}

// HandleEfficiency handles GET /efficiency?blocks=&minutes=.
func (h *ScoreHandler) HandleEfficiency(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w, http.MethodGet)
		return
	}
	sample, err := sampleFromQuery(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", err)
		return
	}

	e, err := h.deps.Efficiency(r.Context(), sample.BlockCount, sample.TotalMinutes)
	if err != nil {
		writeSampleError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, efficiencyResponse{
		Efficiency: e,
		Band:       scoring.Classify(sample.BlockCount, sample.TotalMinutes),
	})
}

func sampleFromQuery(r *http.Request) (model.ScheduleSample, error) {
	blocks, err := queryInt(r, "blocks")
	if err != nil {
		return model.ScheduleSample{}, err
	}
	minutes, err := queryInt(r, "minutes")
	if err != nil {
		return model.ScheduleSample{}, err
	}
	return model.ScheduleSample{BlockCount: blocks, TotalMinutes: minutes}, nil
}
