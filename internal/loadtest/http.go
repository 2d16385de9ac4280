package loadtest

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/okian/timeblock/internal/domain/model"
)

// requestIDHeader matches the header the service echoes.
const requestIDHeader = "X-Request-ID"

// HTTPClient wraps http.Client with timeout.
type HTTPClient struct {
	client  *http.Client
	baseURL string
}

// newHTTPClient creates a new HTTP client with timeout.
func newHTTPClient(baseURL string, timeout time.Duration) *HTTPClient {
	return &HTTPClient{
		client:  &http.Client{Timeout: timeout},
		baseURL: baseURL,
	}
}

// Get performs a GET request against path.
func (c *HTTPClient) Get(ctx context.Context, path string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	return c.client.Do(req)
}

// Post performs a POST request with a JSON body and request ID.
func (c *HTTPClient) Post(ctx context.Context, path, requestID string, body interface{}) (*http.Response, error) {
	jsonData, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(jsonData))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	if requestID != "" {
		req.Header.Set(requestIDHeader, requestID)
	}
	return c.client.Do(req)
}

// outcome classifies one scored sample.
type outcome int

const (
	outcomeMatched outcome = iota
	outcomeRejected
	outcomeMismatched
	outcomeFailed
)

// scoreResult is what one POST /score produced.
type scoreResult struct {
	status    int
	requestID string
	breakdown model.Breakdown
	errorCode string
}

// submitSample posts one sample to /score and decodes the answer.
func submitSample(ctx context.Context, client *HTTPClient, s Sample) (scoreResult, error) {
	resp, err := client.Post(ctx, "/score", s.ID, s.ScheduleSample)
	if err != nil {
		return scoreResult{}, err
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return scoreResult{}, fmt.Errorf("read body: %w", err)
	}

	res := scoreResult{status: resp.StatusCode, requestID: resp.Header.Get(requestIDHeader)}
	if resp.StatusCode == http.StatusOK {
		if err := json.Unmarshal(body, &res.breakdown); err != nil {
			return res, fmt.Errorf("decode breakdown: %w", err)
		}
		return res, nil
	}

	var apiErr struct {
		Code string `json:"code"`
	}
	if err := json.Unmarshal(body, &apiErr); err == nil {
		res.errorCode = apiErr.Code
	}
	return res, nil
}
