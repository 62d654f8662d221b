// Package pipeline handles one S3 ObjectCreated notification end to end:
// fetch, summarize, email, notify.
package pipeline

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"time"

	"github.com/aws/aws-lambda-go/events"
	"github.com/sirupsen/logrus"

	"github.com/sh3r4rd/file_summarizer/internal/mimetype"
	"github.com/sh3r4rd/file_summarizer/internal/model"
)

// ErrNoRecords is returned for a notification without records.
var ErrNoRecords = errors.New("s3 event has no records")

// Fetcher reads an uploaded object.
type Fetcher interface {
	Fetch(ctx context.Context, ref model.ObjectRef) (model.FileContent, error)
}

// Summarizer produces a summary of a file.
type Summarizer interface {
	Validate() error
	Summarize(ctx context.Context, req model.SummaryRequest) (model.SummaryResult, error)
}

// Mailer delivers a summary and returns the message id.
type Mailer interface {
	Send(ctx context.Context, fileName, summary string) (string, error)
}

// Notifier posts a JSON payload and returns the response body.
type Notifier interface {
	Post(ctx context.Context, payload any) ([]byte, error)
}

// Handler runs one summarize invocation per S3 event.
type Handler struct {
	fetcher    Fetcher
	summarizer Summarizer
	mailer     Mailer
	notifier   Notifier
	log        logrus.FieldLogger
	now        func() time.Time
}

// NewHandler wires the pipeline stages.
func NewHandler(f Fetcher, s Summarizer, m Mailer, n Notifier, log logrus.FieldLogger) *Handler {
	return &Handler{
		fetcher:    f,
		summarizer: s,
		mailer:     m,
		notifier:   n,
		log:        log,
		now:        time.Now,
	}
}

// Handle processes the first record of event. Any failure is reported to the
// webhook on a best-effort basis and returned wrapped.
func (h *Handler) Handle(ctx context.Context, event events.S3Event) (model.HandlerResponse, error) {
	resp, err := h.process(ctx, event)
	if err == nil {
		return resp, nil
	}

	h.log.WithError(err).Error("error processing s3 event")

	failure := model.FailureNotification{
		Error:       true,
		Message:     err.Error(),
		Event:       event,
		ProcessedAt: h.timestamp(),
	}
	// The report goes out even if the invocation context is already done.
	if _, werr := h.notifier.Post(context.WithoutCancel(ctx), failure); werr != nil {
		h.log.WithError(werr).Error("failed to send error to webhook")
	}

	return model.HandlerResponse{}, fmt.Errorf("process s3 event: %w", err)
}

func (h *Handler) process(ctx context.Context, event events.S3Event) (model.HandlerResponse, error) {
	ref, size, err := ParseEvent(event)
	if err != nil {
		return model.HandlerResponse{}, err
	}
	fileName := ref.FileName()
	log := h.log.WithFields(logrus.Fields{"bucket": ref.Bucket, "key": ref.Key})
	log.Info("processing file")

	content, err := h.fetcher.Fetch(ctx, ref)
	if err != nil {
		return model.HandlerResponse{}, err
	}

	mimeType := mimetype.Resolve(fileName, content.ContentType)
	log = log.WithField("mime_type", mimeType)

	if err := h.summarizer.Validate(); err != nil {
		return model.HandlerResponse{}, err
	}

	result, err := h.summarizer.Summarize(ctx, model.SummaryRequest{
		Prompt:   model.SummaryPrompt,
		MIMEType: mimeType,
		Data:     content.Data,
	})
	if err != nil {
		return model.HandlerResponse{}, err
	}
	if result.Summary == "" {
		return model.HandlerResponse{}, errors.New("Failed to extract summary: empty summary")
	}
	log.WithField("summary_len", len(result.Summary)).Info("summary generated")

	messageID, err := h.mailer.Send(ctx, fileName, result.Summary)
	if err != nil {
		return model.HandlerResponse{}, fmt.Errorf("send summary email: %w", err)
	}

	notification := model.SuccessNotification{
		FileInfo: model.FileInfo{
			Bucket:      ref.Bucket,
			Key:         ref.Key,
			FileName:    fileName,
			ContentType: content.ContentType,
			MIMEType:    mimeType,
			Size:        size,
		},
		Summary:     result.Summary,
		EmailSent:   true,
		MessageID:   messageID,
		ProcessedAt: h.timestamp(),
	}
	webhookBody, err := h.notifier.Post(ctx, notification)
	if err != nil {
		return model.HandlerResponse{}, fmt.Errorf("send webhook notification: %w", err)
	}
	log.Info("file summarization completed")

	return model.HandlerResponse{
		StatusCode: 200,
		Body: model.ResultBody{
			Message:         "File summarization completed successfully",
			Bucket:          ref.Bucket,
			Key:             ref.Key,
			FileName:        fileName,
			ContentType:     content.ContentType,
			MIMEType:        mimeType,
			Summary:         result.Summary,
			MessageID:       messageID,
			WebhookResponse: decodeBody(webhookBody),
		},
	}, nil
}

// ParseEvent returns the object of the first record with its key URL-decoded
// ("+" becomes a space) and the object size.
func ParseEvent(event events.S3Event) (model.ObjectRef, int64, error) {
	if len(event.Records) == 0 {
		return model.ObjectRef{}, 0, ErrNoRecords
	}

	entity := event.Records[0].S3
	key, err := url.QueryUnescape(entity.Object.Key)
	if err != nil {
		return model.ObjectRef{}, 0, fmt.Errorf("decode object key %q: %w", entity.Object.Key, err)
	}

	return model.ObjectRef{Bucket: entity.Bucket.Name, Key: key}, entity.Object.Size, nil
}

func (h *Handler) timestamp() string {
	return h.now().UTC().Format(model.TimestampLayout)
}

// decodeBody keeps JSON responses structured and everything else as text.
func decodeBody(body []byte) any {
	if len(body) == 0 {
		return nil
	}
	if json.Valid(body) {
		return json.RawMessage(body)
	}
	return string(body)
}
