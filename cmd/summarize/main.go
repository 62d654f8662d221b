package main

import (
	"context"
	"log"

	"github.com/aws/aws-lambda-go/lambda"

	"github.com/sh3r4rd/file_summarizer/internal/app"
	"github.com/sh3r4rd/file_summarizer/internal/config"
	"github.com/sh3r4rd/file_summarizer/internal/logging"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	logger := logging.New(cfg.LogLevel, cfg.LogFormat)

	s3Client, err := app.NewS3Client(context.Background())
	if err != nil {
		logger.WithError(err).Fatal("failed to create s3 client")
	}

	handler := app.NewHandler(cfg, s3Client, logger)
	lambda.Start(handler.Handle)
}
