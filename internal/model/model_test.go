package model_test

import (
	"encoding/json"
	"testing"

	"github.com/aws/aws-lambda-go/events"
	"github.com/sh3r4rd/file_summarizer/internal/model"
)

func TestObjectRefFileName(t *testing.T) {
	tests := []struct {
		name     string
		key      string
		expected string
	}{
		{"nested key", "uploads/2026/report.pdf", "report.pdf"},
		{"root key", "report.pdf", "report.pdf"},
		{"spaces", "barsat/my file name.pdf", "my file name.pdf"},
		{"trailing slash", "uploads/", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ref := model.ObjectRef{Bucket: "b1", Key: tt.key}
			if got := ref.FileName(); got != tt.expected {
				t.Errorf("FileName() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestUploadRequestJSONFieldNames(t *testing.T) {
	req := model.UploadRequest{
		FileName:      "test.pdf",
		FolderPath:    "barsat",
		FileSizeBytes: 100,
		ContentType:   "application/pdf",
	}

	data, err := json.Marshal(req)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	var m map[string]any
	if err := json.Unmarshal(data, &m); err != nil {
		t.Fatalf("unmarshal to map: %v", err)
	}

	for _, key := range []string{"fileName", "folderPath", "fileSizeBytes", "contentType"} {
		if _, ok := m[key]; !ok {
			t.Errorf("expected JSON key %q not found", key)
		}
	}
}

func TestSuccessNotificationJSON(t *testing.T) {
	n := model.SuccessNotification{
		FileInfo: model.FileInfo{
			Bucket:      "b1",
			Key:         "uploads/report.pdf",
			FileName:    "report.pdf",
			ContentType: "application/pdf",
			MIMEType:    "application/pdf",
			Size:        1024,
		},
		Summary:     "Report covers Q1 results.",
		EmailSent:   true,
		MessageID:   "<abc@example.com>",
		ProcessedAt: "2026-02-25T12:00:00.000Z",
	}

	data, err := json.Marshal(n)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	var m map[string]any
	if err := json.Unmarshal(data, &m); err != nil {
		t.Fatalf("unmarshal to map: %v", err)
	}

	for _, key := range []string{"file_info", "summary", "email_sent", "message_id", "processed_at"} {
		if _, ok := m[key]; !ok {
			t.Errorf("expected JSON key %q not found", key)
		}
	}
	if m["email_sent"] != true {
		t.Errorf("email_sent = %v, want true", m["email_sent"])
	}

	info, ok := m["file_info"].(map[string]any)
	if !ok {
		t.Fatalf("file_info is %T, want object", m["file_info"])
	}
	for _, key := range []string{"bucket", "key", "fileName", "contentType", "mimeType", "size"} {
		if _, ok := info[key]; !ok {
			t.Errorf("expected file_info key %q not found", key)
		}
	}
}

func TestFailureNotificationJSON(t *testing.T) {
	n := model.FailureNotification{
		Error:   true,
		Message: "Failed to extract summary from Gemini response",
		Event: events.S3Event{Records: []events.S3EventRecord{{
			S3: events.S3Entity{
				Bucket: events.S3Bucket{Name: "b1"},
				Object: events.S3Object{Key: "uploads/report.pdf", Size: 10},
			},
		}}},
		ProcessedAt: "2026-02-25T12:00:00.000Z",
	}

	data, err := json.Marshal(n)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	var m map[string]any
	if err := json.Unmarshal(data, &m); err != nil {
		t.Fatalf("unmarshal to map: %v", err)
	}

	for _, key := range []string{"error", "message", "event", "processed_at"} {
		if _, ok := m[key]; !ok {
			t.Errorf("expected JSON key %q not found", key)
		}
	}
	if m["error"] != true {
		t.Errorf("error = %v, want true", m["error"])
	}
}

func TestErrorResponseJSON(t *testing.T) {
	resp := model.ErrorResponse{
		Error:   model.ErrorCodeValidation,
		Message: "file size exceeds 20 MiB limit",
	}

	data, err := json.Marshal(resp)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	var got model.ErrorResponse
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	if got != resp {
		t.Errorf("round-trip mismatch: got %+v, want %+v", got, resp)
	}
}

func TestConstraintConstants(t *testing.T) {
	if model.MaxUploadBytes != 20*1024*1024 {
		t.Errorf("MaxUploadBytes = %d, want %d", model.MaxUploadBytes, 20*1024*1024)
	}

	if model.PresignedURLTTLSeconds != 300 {
		t.Errorf("PresignedURLTTLSeconds = %d, want %d", model.PresignedURLTTLSeconds, 300)
	}

	if model.SummaryPrompt != "Please provide a comprehensive summary of this file's content." {
		t.Errorf("SummaryPrompt = %q", model.SummaryPrompt)
	}
}
