// Package content normalizes raw user input into model-ready structured content.
package content

import (
	"fmt"
	"strings"
)

// Kind discriminates content segment types.
type Kind string

const (
	KindText  Kind = "text"
	KindImage Kind = "image"
)

// MultimodalPlaceholder stands in for image-bearing input wherever only a
// plain string can be stored or substituted.
const MultimodalPlaceholder = "[multimodal content]"

// Segment is one typed piece of normalized content. Text segments carry
// literal text; image segments carry a MIME type and base64-encoded bytes.
type Segment struct {
	Kind      Kind
	Text      string
	MediaType string
	Data      string
}

// DataURL renders an image segment as a data URL suitable for APIs that
// accept inline images by URL.
func (s Segment) DataURL() string {
	return fmt.Sprintf("data:%s;base64,%s", s.MediaType, s.Data)
}

// Content is the normalized representation of one user input: the original
// raw string plus an ordered, non-empty sequence of segments.
type Content struct {
	Raw      string
	Segments []Segment
}

// Text wraps a plain string as text-only content.
func Text(s string) Content {
	return Content{
		Raw:      s,
		Segments: []Segment{{Kind: KindText, Text: s}},
	}
}

// HasImages reports whether any segment is an image.
func (c Content) HasImages() bool {
	for _, seg := range c.Segments {
		if seg.Kind == KindImage {
			return true
		}
	}
	return false
}

// PromptText returns the text to substitute into a prompt template: the
// joined text segments, or a placeholder when the content carries images.
func (c Content) PromptText() string {
	if c.HasImages() {
		return MultimodalPlaceholder
	}
	parts := make([]string, 0, len(c.Segments))
	for _, seg := range c.Segments {
		if seg.Kind == KindText {
			parts = append(parts, seg.Text)
		}
	}
	return strings.Join(parts, "\n\n")
}

// HistoryText returns the string projection stored in conversation history:
// the original input, or a placeholder when the content carries images.
func (c Content) HistoryText() string {
	if c.HasImages() {
		return MultimodalPlaceholder
	}
	return c.Raw
}
