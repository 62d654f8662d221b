package model

import "strings"

// ObjectRef identifies an uploaded S3 object. Key is already URL-decoded.
type ObjectRef struct {
	Bucket string
	Key    string
}

// FileName returns the last slash-delimited segment of the key.
func (r ObjectRef) FileName() string {
	if i := strings.LastIndex(r.Key, "/"); i >= 0 {
		return r.Key[i+1:]
	}
	return r.Key
}

// FileContent is the fully buffered body of an object and the content type
// S3 recorded at upload time. ContentType is empty when S3 has none.
type FileContent struct {
	Data        []byte
	ContentType string
}

// FileInfo describes the processed object in the success notification.
type FileInfo struct {
	Bucket      string `json:"bucket"`
	Key         string `json:"key"`
	FileName    string `json:"fileName"`
	ContentType string `json:"contentType,omitempty"`
	MIMEType    string `json:"mimeType"`
	Size        int64  `json:"size"`
}
