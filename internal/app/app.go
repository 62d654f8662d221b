// Package app wires the summarize handler from configuration. Both the Lambda
// entry point and the local invoke command build it the same way.
package app

import (
	"context"
	"fmt"
	"net/http"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/sirupsen/logrus"

	"github.com/sh3r4rd/file_summarizer/internal/config"
	"github.com/sh3r4rd/file_summarizer/internal/mailer"
	"github.com/sh3r4rd/file_summarizer/internal/pipeline"
	"github.com/sh3r4rd/file_summarizer/internal/storage"
	"github.com/sh3r4rd/file_summarizer/internal/summarizer"
	"github.com/sh3r4rd/file_summarizer/internal/webhook"
)

// NewS3Client loads the default AWS configuration chain.
func NewS3Client(ctx context.Context) (*s3.Client, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}
	return s3.NewFromConfig(awsCfg), nil
}

// NewHandler builds the summarize pipeline around an S3 client.
func NewHandler(cfg config.Config, s3Client storage.GetObjectAPI, log *logrus.Logger) *pipeline.Handler {
	httpClient := &http.Client{Timeout: cfg.HTTPTimeout}

	fetcher := storage.NewFetcher(s3Client, cfg.StorageMaxRetries, log.WithField("component", "storage"))
	gemini := summarizer.NewClient(summarizer.Config{
		APIKey:     cfg.GeminiAPIKey,
		BaseURL:    cfg.GeminiAPIURL,
		Model:      cfg.GeminiModel,
		MaxRetries: cfg.GeminiMaxRetries,
	}, httpClient, log.WithField("component", "summarizer"))
	mail := mailer.New(mailer.Config{
		Host:     cfg.SMTPHost,
		Port:     cfg.SMTPPort,
		Secure:   cfg.SMTPSecure,
		User:     cfg.SMTPUser,
		Password: cfg.SMTPPassword,
		From:     cfg.EmailSender,
		To:       cfg.EmailRecipient,
	}, log.WithField("component", "mailer"))
	reporter := webhook.NewReporter(cfg.WebhookURI, httpClient)

	return pipeline.NewHandler(fetcher, gemini, mail, reporter, log.WithField("component", "pipeline"))
}
