package upload

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"path"
	"time"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/sirupsen/logrus"

	"github.com/sh3r4rd/file_summarizer/internal/model"
)

// PutObjectPresigner is the part of s3.PresignClient the presigner uses.
type PutObjectPresigner interface {
	PresignPutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error)
}

// Presigner issues presigned PUT URLs into one bucket.
type Presigner struct {
	client PutObjectPresigner
	bucket string
	log    logrus.FieldLogger
}

// NewPresigner presigns uploads into bucket.
func NewPresigner(client PutObjectPresigner, bucket string, log logrus.FieldLogger) *Presigner {
	return &Presigner{client: client, bucket: bucket, log: log}
}

// Handle serves POST /uploads behind API Gateway.
func (p *Presigner) Handle(ctx context.Context, req events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	var body model.UploadRequest
	if err := json.Unmarshal([]byte(req.Body), &body); err != nil {
		return errorResponse(http.StatusBadRequest, model.ErrorCodeValidation, "request body must be valid JSON"), nil
	}
	if err := validate(body); err != nil {
		return errorResponse(http.StatusBadRequest, model.ErrorCodeValidation, err.Error()), nil
	}

	resp, err := p.Presign(ctx, body)
	if err != nil {
		p.log.WithError(err).Error("presign put object failed")
		return errorResponse(http.StatusInternalServerError, model.ErrorCodeInternal, "could not create upload URL"), nil
	}
	return jsonResponse(http.StatusOK, resp), nil
}

// Presign returns an upload URL for req without validating it. An empty
// FileName gets a generated name.
func (p *Presigner) Presign(ctx context.Context, req model.UploadRequest) (model.UploadResponse, error) {
	key := ObjectKey(req.FolderPath, req.FileName)
	contentType := ContentType(path.Ext(req.FileName), req.ContentType)

	out, err := p.client.PresignPutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(p.bucket),
		Key:           aws.String(key),
		ContentType:   aws.String(contentType),
		ContentLength: aws.Int64(req.FileSizeBytes),
	}, s3.WithPresignExpires(model.PresignedURLTTLSeconds*time.Second))
	if err != nil {
		return model.UploadResponse{}, fmt.Errorf("presign s3://%s/%s: %w", p.bucket, key, err)
	}

	p.log.WithFields(logrus.Fields{"bucket": p.bucket, "key": key, "content_type": contentType}).Info("upload url issued")
	return model.UploadResponse{
		Key:         key,
		UploadURL:   out.URL,
		ContentType: contentType,
		ExpiresIn:   model.PresignedURLTTLSeconds,
	}, nil
}

func validate(req model.UploadRequest) error {
	switch {
	case req.FileName != "" && path.Base(req.FileName) != req.FileName:
		return fmt.Errorf("fileName must not contain a path")
	case req.FileSizeBytes <= 0:
		return fmt.Errorf("fileSizeBytes must be positive")
	case req.FileSizeBytes > model.MaxUploadBytes:
		return fmt.Errorf("file size exceeds %d MiB limit", model.MaxUploadBytes>>20)
	}
	return nil
}

func errorResponse(status int, code, message string) events.APIGatewayProxyResponse {
	return jsonResponse(status, model.ErrorResponse{Error: code, Message: message})
}

func jsonResponse(status int, v any) events.APIGatewayProxyResponse {
	body, _ := json.Marshal(v)
	return events.APIGatewayProxyResponse{
		StatusCode: status,
		Headers:    map[string]string{"Content-Type": "application/json"},
		Body:       string(body),
	}
}
