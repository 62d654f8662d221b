package model

// UploadRequest is the JSON body sent by clients to the presign endpoint.
type UploadRequest struct {
	FileName      string `json:"fileName"`
	FolderPath    string `json:"folderPath,omitempty"`
	FileSizeBytes int64  `json:"fileSizeBytes"`
	ContentType   string `json:"contentType,omitempty"`
}

// SummaryRequest carries one file to the summarization API.
type SummaryRequest struct {
	Prompt   string
	MIMEType string
	Data     []byte
}
