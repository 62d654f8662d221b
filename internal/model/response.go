package model

import "github.com/aws/aws-lambda-go/events"

// UploadResponse is returned on a successful presign request.
type UploadResponse struct {
	Key         string `json:"key"`
	UploadURL   string `json:"uploadUrl"`
	ContentType string `json:"contentType"`
	ExpiresIn   int    `json:"expiresIn"`
}

// ErrorResponse is returned for any failed API request.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// Error codes used in ErrorResponse.Error.
const (
	ErrorCodeValidation = "VALIDATION_ERROR"
	ErrorCodeInternal   = "INTERNAL_ERROR"
)

// SummaryResult is the parsed summarization output.
type SummaryResult struct {
	Summary string `json:"summary"`
}

// SuccessNotification is posted to the webhook once the summary was mailed.
type SuccessNotification struct {
	FileInfo    FileInfo `json:"file_info"`
	Summary     string   `json:"summary"`
	EmailSent   bool     `json:"email_sent"`
	MessageID   string   `json:"message_id,omitempty"`
	ProcessedAt string   `json:"processed_at"`
}

// FailureNotification is posted to the webhook when an invocation fails.
type FailureNotification struct {
	Error       bool           `json:"error"`
	Message     string         `json:"message"`
	Event       events.S3Event `json:"event"`
	ProcessedAt string         `json:"processed_at"`
}

// HandlerResponse is the value the summarize function returns on success.
type HandlerResponse struct {
	StatusCode int        `json:"statusCode"`
	Body       ResultBody `json:"body"`
}

// ResultBody is the body of a successful HandlerResponse.
type ResultBody struct {
	Message         string `json:"message"`
	Bucket          string `json:"bucket"`
	Key             string `json:"key"`
	FileName        string `json:"fileName"`
	ContentType     string `json:"contentType,omitempty"`
	MIMEType        string `json:"mimeType"`
	Summary         string `json:"summary"`
	MessageID       string `json:"messageId,omitempty"`
	WebhookResponse any    `json:"webhookResponse,omitempty"`
}
