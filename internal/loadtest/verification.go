package loadtest

import (
	"fmt"
	"math"
	"net/http"

	"github.com/okian/timeblock/internal/domain/model"
	"github.com/okian/timeblock/internal/domain/scoring"
)

// tolerance absorbs float formatting through JSON.
const tolerance = 1e-9

// verifySample compares the service answer with the local engine. A
// negative sample must come back as a 400 invalid_sample.
func verifySample(s Sample, res scoreResult) (outcome, error) {
	if res.requestID != s.ID {
		return outcomeMismatched, fmt.Errorf("request ID %q echoed as %q", s.ID, res.requestID)
	}

	if s.Validate() != nil {
		if res.status == http.StatusBadRequest && res.errorCode == "invalid_sample" {
			return outcomeRejected, nil
		}
		return outcomeMismatched, fmt.Errorf("negative sample %+v answered %d %q", s.ScheduleSample, res.status, res.errorCode)
	}

	if res.status != http.StatusOK {
		return outcomeFailed, fmt.Errorf("sample %+v answered %d %q", s.ScheduleSample, res.status, res.errorCode)
	}
	if err := compareBreakdown(scoring.Evaluate(s.ScheduleSample), res.breakdown); err != nil {
		return outcomeMismatched, fmt.Errorf("sample %+v: %w", s.ScheduleSample, err)
	}
	return outcomeMatched, nil
}

func compareBreakdown(want, got model.Breakdown) error {
	switch {
	case want.Band != got.Band:
		return fmt.Errorf("band %s, want %s", got.Band, want.Band)
	case want.Capped != got.Capped:
		return fmt.Errorf("capped %t, want %t", got.Capped, want.Capped)
	case math.Abs(want.Efficiency-got.Efficiency) > tolerance:
		return fmt.Errorf("efficiency %g, want %g", got.Efficiency, want.Efficiency)
	case math.Abs(want.Productivity-got.Productivity) > tolerance:
		return fmt.Errorf("productivity %g, want %g", got.Productivity, want.Productivity)
	}
	return nil
}
