package model

// Content types recognised by the summarizer and the upload presigner.
const (
	ContentTypeText        = "text/plain"
	ContentTypePDF         = "application/pdf"
	ContentTypeDOCX        = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	ContentTypeDOC         = "application/msword"
	ContentTypeJPEG        = "image/jpeg"
	ContentTypePNG         = "image/png"
	ContentTypeGIF         = "image/gif"
	ContentTypeOctetStream = "application/octet-stream"
)

// Upload constraints enforced by the presign function.
const (
	MaxUploadBytes         = int64(20 << 20) // 20 MiB, Gemini inline_data ceiling
	PresignedURLTTLSeconds = 300             // 5 minutes
)

// SummaryPrompt is sent verbatim ahead of the inline file payload.
const SummaryPrompt = "Please provide a comprehensive summary of this file's content."

// TimestampLayout matches the ISO-8601 millisecond form used in notifications.
const TimestampLayout = "2006-01-02T15:04:05.000Z"
