// Package summarizer asks the Gemini generateContent API for a JSON summary
// of an inline file.
package summarizer

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/sh3r4rd/file_summarizer/internal/model"
	"github.com/sh3r4rd/file_summarizer/internal/retry"
)

var (
	// ErrMissingAPIKey is returned before any request when no key is configured.
	ErrMissingAPIKey = errors.New("GEMINI_API_KEY environment variable is not set")
	// ErrSummaryNotFound is returned when the response carries no usable text.
	// The casing matches what webhook consumers already match on.
	ErrSummaryNotFound = errors.New("Failed to extract summary from Gemini response")
)

// Config configures a Client.
type Config struct {
	APIKey     string
	BaseURL    string
	Model      string
	MaxRetries uint64
}

// Client calls generateContent once per Summarize.
type Client struct {
	cfg        Config
	httpClient *http.Client
	log        logrus.FieldLogger
}

// NewClient uses http.DefaultClient when httpClient is nil.
func NewClient(cfg Config, httpClient *http.Client, log logrus.FieldLogger) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	return &Client{cfg: cfg, httpClient: httpClient, log: log}
}

// Validate reports a configuration error if the API key is absent.
func (c *Client) Validate() error {
	if strings.TrimSpace(c.cfg.APIKey) == "" {
		return ErrMissingAPIKey
	}
	return nil
}

// Summarize sends req to the model and returns its summary.
func (c *Client) Summarize(ctx context.Context, req model.SummaryRequest) (model.SummaryResult, error) {
	if err := c.Validate(); err != nil {
		return model.SummaryResult{}, err
	}

	body, err := json.Marshal(newGenerateRequest(req))
	if err != nil {
		return model.SummaryResult{}, fmt.Errorf("encode gemini payload: %w", err)
	}

	log := c.log.WithFields(logrus.Fields{"model": c.cfg.Model, "mime_type": req.MIMEType})
	log.Info("calling Gemini API for file analysis")

	var resp Response
	policy := retry.Policy{MaxRetries: c.cfg.MaxRetries, Retryable: isTransient}
	err = retry.Do(ctx, policy, log, func() error {
		resp = Response{}
		return c.post(ctx, body, &resp)
	})
	if err != nil {
		return model.SummaryResult{}, err
	}

	summary, err := ExtractSummary(resp, log)
	if err != nil {
		return model.SummaryResult{}, err
	}
	return model.SummaryResult{Summary: summary}, nil
}

func (c *Client) endpoint() string {
	return fmt.Sprintf("%s/models/%s:generateContent", c.cfg.BaseURL, c.cfg.Model)
}

func (c *Client) post(ctx context.Context, body []byte, out *Response) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint(), bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("create gemini request: %w", err)
	}
	req.Header.Set("x-goog-api-key", c.cfg.APIKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("gemini request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		return decodeAPIError(resp)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode gemini response: %w", err)
	}
	return nil
}

// ExtractSummary reads candidates[0].content.parts[0].text. Text that is not
// JSON is used verbatim. Valid JSON must be an object with a non-empty string
// summary field.
func ExtractSummary(resp Response, log logrus.FieldLogger) (string, error) {
	if len(resp.Candidates) == 0 {
		return "", ErrSummaryNotFound
	}
	c := resp.Candidates[0].Content
	if c == nil || len(c.Parts) == 0 {
		return "", ErrSummaryNotFound
	}
	text := c.Parts[0].Text

	if !json.Valid([]byte(text)) {
		if text == "" {
			return "", ErrSummaryNotFound
		}
		if log != nil {
			log.Warn("gemini response is not JSON, using raw text")
		}
		return text, nil
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal([]byte(text), &fields); err != nil {
		return "", fmt.Errorf("%w: %v", ErrSummaryNotFound, err)
	}
	var summary string
	if raw, ok := fields["summary"]; ok {
		if err := json.Unmarshal(raw, &summary); err != nil {
			return "", fmt.Errorf("%w: summary is not a string", ErrSummaryNotFound)
		}
	}
	if summary == "" {
		return "", ErrSummaryNotFound
	}
	return summary, nil
}

// APIError is a non-2xx answer from the Gemini API.
type APIError struct {
	StatusCode int
	Status     string
	Message    string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("gemini api error: status %d %s: %s", e.StatusCode, e.Status, e.Message)
	}
	return fmt.Sprintf("gemini api error: status %d", e.StatusCode)
}

func decodeAPIError(resp *http.Response) error {
	var apiErr struct {
		Error struct {
			Code    int    `json:"code"`
			Message string `json:"message"`
			Status  string `json:"status"`
		} `json:"error"`
	}

	body, _ := io.ReadAll(resp.Body)
	if err := json.Unmarshal(body, &apiErr); err == nil && apiErr.Error.Message != "" {
		return &APIError{StatusCode: resp.StatusCode, Status: apiErr.Error.Status, Message: apiErr.Error.Message}
	}
	return &APIError{StatusCode: resp.StatusCode, Message: strings.TrimSpace(string(body))}
}

// Rate limits and server errors are worth retrying; other API errors are not.
func isTransient(err error) bool {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode == http.StatusTooManyRequests || apiErr.StatusCode >= http.StatusInternalServerError
	}
	return !errors.Is(err, context.Canceled) && !errors.Is(err, context.DeadlineExceeded)
}
