// Package docx provides text extraction for Word-processing documents.
package docx

import (
	"bytes"
	"context"
	"fmt"
	"html"
	"regexp"
	"strings"

	"github.com/nguyenthenguyen/docx"

	"github.com/custodia-labs/docvault/internal/core/domain"
	"github.com/custodia-labs/docvault/internal/core/ports/driven"
)

// Ensure Extractor implements the interface.
var _ driven.Extractor = (*Extractor)(nil)

// Extractor handles DOCX documents.
type Extractor struct{}

// New creates a new DOCX extractor.
func New() *Extractor {
	return &Extractor{}
}

// SupportedMIMETypes returns the MIME types this extractor handles.
func (e *Extractor) SupportedMIMETypes() []string {
	return []string{
		"application/vnd.openxmlformats-officedocument.wordprocessingml.document",
		"application/msword",
	}
}

// Priority returns the selection priority.
func (e *Extractor) Priority() int {
	return 60
}

var (
	paragraphClose = regexp.MustCompile(`</w:p>`)
	xmlTags        = regexp.MustCompile(`<[^>]+>`)
	blankLines     = regexp.MustCompile(`\n{3,}`)
)

// Extract returns the raw text of the document body, one line per
// paragraph.
func (e *Extractor) Extract(_ context.Context, data []byte) (string, error) {
	reader, err := docx.ReadDocxFromMemory(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("%w: opening docx: %v", domain.ErrExtractionFailure, err)
	}
	defer reader.Close()

	// GetContent returns the document body XML; keep paragraph breaks,
	// drop the rest of the markup and decode entities.
	content := reader.Editable().GetContent()
	content = paragraphClose.ReplaceAllString(content, "\n")
	content = xmlTags.ReplaceAllString(content, "")
	content = html.UnescapeString(content)
	content = blankLines.ReplaceAllString(content, "\n\n")

	return strings.TrimSpace(content), nil
}
