package summarizer

import (
	"encoding/base64"

	"github.com/sh3r4rd/file_summarizer/internal/model"
)

type generateRequest struct {
	Contents         []Content        `json:"contents"`
	GenerationConfig generationConfig `json:"generationConfig"`
}

// Content is one turn of a generateContent conversation.
type Content struct {
	Parts []Part `json:"parts"`
}

// Part is either prompt text or inline file bytes.
type Part struct {
	Text       string      `json:"text,omitempty"`
	InlineData *InlineData `json:"inline_data,omitempty"`
}

// InlineData carries base64 file bytes and their MIME type.
type InlineData struct {
	MIMEType string `json:"mime_type"`
	Data     string `json:"data"`
}

type generationConfig struct {
	ResponseMIMEType string `json:"responseMimeType"`
	ResponseSchema   schema `json:"responseSchema"`
}

type schema struct {
	Type             string            `json:"type"`
	Properties       map[string]schema `json:"properties,omitempty"`
	Required         []string          `json:"required,omitempty"`
	PropertyOrdering []string          `json:"propertyOrdering,omitempty"`
}

// Response is the subset of a generateContent response the client reads.
type Response struct {
	Candidates []Candidate `json:"candidates"`
}

// Candidate is one generated answer.
type Candidate struct {
	Content *Content `json:"content"`
}

func newGenerateRequest(req model.SummaryRequest) generateRequest {
	prompt := req.Prompt
	if prompt == "" {
		prompt = model.SummaryPrompt
	}

	return generateRequest{
		Contents: []Content{{
			Parts: []Part{
				{Text: prompt},
				{InlineData: &InlineData{
					MIMEType: req.MIMEType,
					Data:     base64.StdEncoding.EncodeToString(req.Data),
				}},
			},
		}},
		GenerationConfig: generationConfig{
			ResponseMIMEType: "application/json",
			ResponseSchema: schema{
				Type: "object",
				Properties: map[string]schema{
					"summary": {Type: "string"},
				},
				Required:         []string{"summary"},
				PropertyOrdering: []string{"summary"},
			},
		},
	}
}
