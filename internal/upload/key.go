// Package upload issues presigned S3 PUT URLs so browsers can upload files
// into the summarizer's bucket without holding AWS credentials.
package upload

import (
	"strings"

	"github.com/google/uuid"

	"github.com/sh3r4rd/file_summarizer/internal/model"
)

var contentTypes = map[string]string{
	"pdf":  model.ContentTypePDF,
	"jpg":  model.ContentTypeJPEG,
	"jpeg": model.ContentTypeJPEG,
	"png":  model.ContentTypePNG,
	"gif":  model.ContentTypeGIF,
	"txt":  model.ContentTypeText,
	"doc":  model.ContentTypeDOC,
	"docx": model.ContentTypeDOCX,
}

// ObjectKey returns "<folder>/<fileName>", or just fileName when folder is
// empty. Leading and trailing slashes are trimmed from folder. An empty
// fileName is replaced with a random UUID.
func ObjectKey(folder, fileName string) string {
	if fileName == "" {
		fileName = uuid.NewString()
	}
	folder = strings.Trim(folder, "/")
	if folder == "" {
		return fileName
	}
	return folder + "/" + fileName
}

// ContentType prefers the type reported by the browser, then the extension
// table, then application/octet-stream. ext may carry a leading dot.
func ContentType(ext, browserType string) string {
	if browserType != "" {
		return browserType
	}
	if ct, ok := contentTypes[strings.ToLower(strings.TrimPrefix(ext, "."))]; ok {
		return ct
	}
	return model.ContentTypeOctetStream
}
