package driven

import "context"

// Extractor converts raw file bytes into plain text.
// Each extractor handles specific MIME types (e.g., PDF, Markdown).
// Extraction is a pure function with no side effects.
type Extractor interface {
	// SupportedMIMETypes returns the MIME types this extractor handles.
	SupportedMIMETypes() []string

	// Priority returns the selection priority (higher = preferred).
	// Format-specific extractors should return 50-89.
	// Fallback extractors should return 1-9.
	Priority() int

	// Extract returns the plain text content of the data.
	// Returns domain.ErrExtractionFailure on malformed input.
	Extract(ctx context.Context, data []byte) (string, error)
}

// ExtractorRegistry selects the extractor for a MIME type.
type ExtractorRegistry interface {
	// ExtractorFor returns the highest-priority extractor registered
	// for the MIME type, or the fallback when none matches.
	// Returns domain.ErrUnsupportedFormat when no extractor applies.
	ExtractorFor(mimeType string) (Extractor, error)
}
