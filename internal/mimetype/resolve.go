// Package mimetype picks the MIME type sent to the summarization API.
package mimetype

import (
	"path/filepath"
	"strings"

	"github.com/sh3r4rd/file_summarizer/internal/model"
)

var byExtension = map[string]string{
	".txt":  model.ContentTypeText,
	".pdf":  model.ContentTypePDF,
	".docx": model.ContentTypeDOCX,
	".jpg":  model.ContentTypeJPEG,
	".jpeg": model.ContentTypeJPEG,
	".png":  model.ContentTypePNG,
}

// Resolve returns the MIME type for fileName. A known extension wins over the
// declared content type; otherwise declared is used, and
// application/octet-stream when declared is empty.
func Resolve(fileName, declared string) string {
	if mt, ok := byExtension[strings.ToLower(filepath.Ext(fileName))]; ok {
		return mt
	}
	if declared != "" {
		return declared
	}
	return model.ContentTypeOctetStream
}
