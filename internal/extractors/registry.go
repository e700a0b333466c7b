package extractors

import (
	"fmt"
	"sort"
	"strings"

	"github.com/custodia-labs/docvault/internal/core/domain"
	"github.com/custodia-labs/docvault/internal/core/ports/driven"
)

// Ensure Registry implements the interface.
var _ driven.ExtractorRegistry = (*Registry)(nil)

// Registry selects the extractor for a MIME type. It keeps a
// priority-ordered list per MIME type plus an optional fallback used
// for unknown types.
type Registry struct {
	byMIME   map[string][]driven.Extractor
	fallback driven.Extractor
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		byMIME: make(map[string][]driven.Extractor),
	}
}

// Register adds an extractor for all its supported MIME types,
// keeping higher-priority extractors first.
func (r *Registry) Register(e driven.Extractor) {
	for _, mime := range e.SupportedMIMETypes() {
		mime = canonicalMIME(mime)
		list := append(r.byMIME[mime], e)
		sort.SliceStable(list, func(i, j int) bool {
			return list[i].Priority() > list[j].Priority()
		})
		r.byMIME[mime] = list
	}
}

// SetFallback installs the extractor used for MIME types with no
// registered handler.
func (r *Registry) SetFallback(e driven.Extractor) {
	r.fallback = e
}

// ExtractorFor returns the highest-priority extractor registered for
// the MIME type, or the fallback when none matches.
func (r *Registry) ExtractorFor(mimeType string) (driven.Extractor, error) {
	mime := canonicalMIME(mimeType)
	if list, ok := r.byMIME[mime]; ok && len(list) > 0 {
		return list[0], nil
	}
	if r.fallback != nil {
		return r.fallback, nil
	}
	return nil, fmt.Errorf("%w: %s", domain.ErrUnsupportedFormat, mimeType)
}

// SupportedMIMETypes returns all MIME types with a registered extractor.
func (r *Registry) SupportedMIMETypes() []string {
	types := make([]string, 0, len(r.byMIME))
	for mime := range r.byMIME {
		types = append(types, mime)
	}
	sort.Strings(types)
	return types
}

// canonicalMIME lowercases the type and drops parameters such as
// "; charset=utf-8".
func canonicalMIME(mimeType string) string {
	mime := strings.ToLower(strings.TrimSpace(mimeType))
	if idx := strings.IndexByte(mime, ';'); idx >= 0 {
		mime = strings.TrimSpace(mime[:idx])
	}
	return mime
}
