package app

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sh3r4rd/file_summarizer/internal/config"
	"github.com/sh3r4rd/file_summarizer/internal/logging"
	"github.com/sh3r4rd/file_summarizer/internal/mailer"
	"github.com/sh3r4rd/file_summarizer/internal/summarizer"
)

type stubS3 struct{ body string }

func (s stubS3) GetObject(context.Context, *s3.GetObjectInput, ...func(*s3.Options)) (*s3.GetObjectOutput, error) {
	return &s3.GetObjectOutput{
		Body:        io.NopCloser(bytes.NewReader([]byte(s.body))),
		ContentType: aws.String("application/pdf"),
	}, nil
}

type webhookSink struct {
	mu       sync.Mutex
	payloads []map[string]any
}

func (w *webhookSink) ServeHTTP(rw http.ResponseWriter, r *http.Request) {
	var p map[string]any
	_ = json.NewDecoder(r.Body).Decode(&p)
	w.mu.Lock()
	w.payloads = append(w.payloads, p)
	w.mu.Unlock()
	_, _ = rw.Write([]byte(`{"ok":true}`))
}

func event() events.S3Event {
	return events.S3Event{Records: []events.S3EventRecord{{
		S3: events.S3Entity{
			Bucket: events.S3Bucket{Name: "b1"},
			Object: events.S3Object{Key: "uploads/report.pdf", Size: 8},
		},
	}}}
}

func TestNewHandlerMissingAPIKey(t *testing.T) {
	var geminiCalls int32
	gemini := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&geminiCalls, 1)
	}))
	defer gemini.Close()

	sink := &webhookSink{}
	hook := httptest.NewServer(sink)
	defer hook.Close()

	cfg := config.Config{
		GeminiAPIURL: gemini.URL,
		GeminiModel:  "gemini-2.5-flash",
		WebhookURI:   hook.URL,
	}
	h := NewHandler(cfg, stubS3{body: "%PDF-1.7"}, logging.Discard())

	_, err := h.Handle(context.Background(), event())
	require.ErrorIs(t, err, summarizer.ErrMissingAPIKey)
	assert.Zero(t, atomic.LoadInt32(&geminiCalls))

	require.Len(t, sink.payloads, 1)
	assert.Equal(t, true, sink.payloads[0]["error"])
	assert.Equal(t, summarizer.ErrMissingAPIKey.Error(), sink.payloads[0]["message"])
}

func TestNewHandlerMissingMailCredentials(t *testing.T) {
	gemini := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"candidates":[{"content":{"parts":[{"text":"{\"summary\":\"Report covers Q1 results.\"}"}]}}]}`))
	}))
	defer gemini.Close()

	sink := &webhookSink{}
	hook := httptest.NewServer(sink)
	defer hook.Close()

	cfg := config.Config{
		GeminiAPIKey: "key",
		GeminiAPIURL: gemini.URL,
		GeminiModel:  "gemini-2.5-flash",
		WebhookURI:   hook.URL,
	}
	h := NewHandler(cfg, stubS3{body: "%PDF-1.7"}, logging.Discard())

	_, err := h.Handle(context.Background(), event())
	require.ErrorIs(t, err, mailer.ErrMissingCredentials)

	require.Len(t, sink.payloads, 1, "only the failure report reaches the webhook")
	assert.Equal(t, true, sink.payloads[0]["error"])
	assert.Contains(t, sink.payloads[0]["message"], "SMTP_HOST")
}
