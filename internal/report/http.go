package report

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// DefaultTimeout bounds a single delivery when no timeout is configured.
const DefaultTimeout = 5 * time.Second

// HTTPSink posts each record as JSON to a collector endpoint.
type HTTPSink struct {
	endpoint string
	client   *http.Client
}

// NewHTTPSink creates a sink posting to endpoint. A zero timeout selects
// DefaultTimeout.
func NewHTTPSink(endpoint string, timeout time.Duration) *HTTPSink {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &HTTPSink{
		endpoint: endpoint,
		client:   &http.Client{Timeout: timeout},
	}
}

// Report posts r. Any non-2xx status is an error; the response body is
// otherwise ignored.
func (s *HTTPSink) Report(ctx context.Context, r Record) error {
	body, err := json.Marshal(r)
	if err != nil {
		return fmt.Errorf("failed to encode record: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("post to %s: %w", s.endpoint, err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 64*1024))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("post to %s: unexpected status %s", s.endpoint, resp.Status)
	}
	return nil
}
