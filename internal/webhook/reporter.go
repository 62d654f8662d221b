// Package webhook posts processing notifications to an external URL.
package webhook

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
)

// ErrNoURL is returned when no webhook URL is configured.
var ErrNoURL = errors.New("WEBHOOK_URI environment variable is not set")

// StatusError is a non-2xx webhook response.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("webhook responded with status %d: %s", e.StatusCode, e.Body)
}

// Reporter posts notifications to a single webhook URL.
type Reporter struct {
	url        string
	httpClient *http.Client
}

// NewReporter uses http.DefaultClient when httpClient is nil.
func NewReporter(url string, httpClient *http.Client) *Reporter {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Reporter{url: url, httpClient: httpClient}
}

// Post sends payload as JSON in a single POST and returns the response body.
func (r *Reporter) Post(ctx context.Context, payload any) ([]byte, error) {
	if r.url == "" {
		return nil, ErrNoURL
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("encode webhook payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("create webhook request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := r.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("post webhook: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read webhook response: %w", err)
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return nil, &StatusError{StatusCode: resp.StatusCode, Body: string(respBody)}
	}
	return respBody, nil
}
