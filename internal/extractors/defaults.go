package extractors

import (
	"github.com/custodia-labs/docvault/internal/extractors/docx"
	"github.com/custodia-labs/docvault/internal/extractors/html"
	"github.com/custodia-labs/docvault/internal/extractors/markdown"
	"github.com/custodia-labs/docvault/internal/extractors/pdf"
	"github.com/custodia-labs/docvault/internal/extractors/plaintext"
)

// DefaultRegistry returns a registry with all built-in extractors
// registered. Plain text doubles as the fallback for unknown MIME
// types, giving best-effort UTF-8 decoding.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	r.Register(pdf.New())
	r.Register(docx.New())
	r.Register(markdown.New())
	r.Register(html.New())

	plain := plaintext.New()
	r.Register(plain)
	r.SetFallback(plain)

	return r
}
