// Package storage reads uploaded objects back out of S3.
package storage

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/smithy-go"
	"github.com/sirupsen/logrus"

	"github.com/sh3r4rd/file_summarizer/internal/model"
	"github.com/sh3r4rd/file_summarizer/internal/retry"
)

// GetObjectAPI is the slice of the S3 client the fetcher needs.
type GetObjectAPI interface {
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
}

// Fetcher downloads whole objects into memory.
type Fetcher struct {
	client     GetObjectAPI
	maxRetries uint64
	log        logrus.FieldLogger
}

// NewFetcher retries failed reads up to maxRetries times.
func NewFetcher(client GetObjectAPI, maxRetries uint64, log logrus.FieldLogger) *Fetcher {
	return &Fetcher{client: client, maxRetries: maxRetries, log: log}
}

// Fetch returns the full body of ref and its declared content type. The body
// is drained completely before returning.
func (f *Fetcher) Fetch(ctx context.Context, ref model.ObjectRef) (model.FileContent, error) {
	log := f.log.WithFields(logrus.Fields{"bucket": ref.Bucket, "key": ref.Key})

	var content model.FileContent
	policy := retry.Policy{MaxRetries: f.maxRetries, Retryable: retryable}
	err := retry.Do(ctx, policy, log, func() error {
		var err error
		content, err = f.fetchOnce(ctx, ref)
		return err
	})
	if err != nil {
		var apiErr smithy.APIError
		if errors.As(err, &apiErr) {
			log = log.WithField("code", apiErr.ErrorCode())
		}
		log.WithError(err).Error("get object failed")
		return model.FileContent{}, err
	}

	log.WithFields(logrus.Fields{
		"content_type": content.ContentType,
		"bytes":        len(content.Data),
	}).Info("object fetched")
	return content, nil
}

func (f *Fetcher) fetchOnce(ctx context.Context, ref model.ObjectRef) (model.FileContent, error) {
	out, err := f.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(ref.Bucket),
		Key:    aws.String(ref.Key),
	})
	if err != nil {
		return model.FileContent{}, fmt.Errorf("get object s3://%s/%s: %w", ref.Bucket, ref.Key, err)
	}
	defer out.Body.Close()

	data, err := io.ReadAll(out.Body)
	if err != nil {
		return model.FileContent{}, fmt.Errorf("read object s3://%s/%s: %w", ref.Bucket, ref.Key, err)
	}

	return model.FileContent{
		Data:        data,
		ContentType: aws.ToString(out.ContentType),
	}, nil
}

// Missing objects and denied access will not fix themselves.
func retryable(err error) bool {
	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		switch apiErr.ErrorCode() {
		case "NoSuchKey", "NoSuchBucket", "AccessDenied", "NotFound":
			return false
		}
	}
	return true
}
