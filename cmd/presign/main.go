package main

import (
	"context"
	"log"

	"github.com/aws/aws-lambda-go/lambda"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/sh3r4rd/file_summarizer/internal/app"
	"github.com/sh3r4rd/file_summarizer/internal/config"
	"github.com/sh3r4rd/file_summarizer/internal/logging"
	"github.com/sh3r4rd/file_summarizer/internal/upload"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	logger := logging.New(cfg.LogLevel, cfg.LogFormat)

	if cfg.UploadBucket == "" {
		logger.Fatal("UPLOAD_BUCKET env var required")
	}

	s3Client, err := app.NewS3Client(context.Background())
	if err != nil {
		logger.WithError(err).Fatal("failed to create s3 client")
	}

	presigner := upload.NewPresigner(s3.NewPresignClient(s3Client), cfg.UploadBucket, logger.WithField("component", "upload"))
	lambda.Start(presigner.Handle)
}
