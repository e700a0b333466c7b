package extractors

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/docvault/internal/core/domain"
	"github.com/custodia-labs/docvault/internal/core/ports/driven"
)

// stubExtractor is a test double with configurable MIME types and priority.
type stubExtractor struct {
	mimeTypes []string
	priority  int
	output    string
}

func (s *stubExtractor) SupportedMIMETypes() []string { return s.mimeTypes }
func (s *stubExtractor) Priority() int                { return s.priority }
func (s *stubExtractor) Extract(_ context.Context, _ []byte) (string, error) {
	return s.output, nil
}

func TestRegistry_DispatchByMIMEType(t *testing.T) {
	r := NewRegistry()
	plain := &stubExtractor{mimeTypes: []string{"text/plain"}, priority: 5, output: "plain"}
	pdf := &stubExtractor{mimeTypes: []string{"application/pdf"}, priority: 60, output: "pdf"}
	r.Register(plain)
	r.Register(pdf)

	e, err := r.ExtractorFor("application/pdf")
	require.NoError(t, err)
	assert.Same(t, driven.Extractor(pdf), e)
}

func TestRegistry_HigherPriorityWins(t *testing.T) {
	r := NewRegistry()
	low := &stubExtractor{mimeTypes: []string{"text/html"}, priority: 10, output: "low"}
	high := &stubExtractor{mimeTypes: []string{"text/html"}, priority: 50, output: "high"}
	r.Register(low)
	r.Register(high)

	e, err := r.ExtractorFor("text/html")
	require.NoError(t, err)
	assert.Same(t, driven.Extractor(high), e)
}

func TestRegistry_FallbackForUnknownType(t *testing.T) {
	r := NewRegistry()
	fallback := &stubExtractor{mimeTypes: []string{"text/plain"}, priority: 5, output: "fallback"}
	r.Register(fallback)
	r.SetFallback(fallback)

	e, err := r.ExtractorFor("application/x-mystery")
	require.NoError(t, err)
	assert.Same(t, driven.Extractor(fallback), e)
}

func TestRegistry_UnknownTypeWithoutFallback(t *testing.T) {
	r := NewRegistry()
	_, err := r.ExtractorFor("application/x-mystery")
	assert.ErrorIs(t, err, domain.ErrUnsupportedFormat)
}

func TestRegistry_CanonicalisesMIMEParameters(t *testing.T) {
	r := NewRegistry()
	plain := &stubExtractor{mimeTypes: []string{"text/plain"}, priority: 5}
	r.Register(plain)

	e, err := r.ExtractorFor("Text/Plain; charset=utf-8")
	require.NoError(t, err)
	assert.Same(t, driven.Extractor(plain), e)
}

func TestDefaultRegistry(t *testing.T) {
	r := DefaultRegistry()

	for _, mime := range []string{
		"application/pdf",
		"application/vnd.openxmlformats-officedocument.wordprocessingml.document",
		"text/markdown",
		"text/html",
		"text/plain",
	} {
		e, err := r.ExtractorFor(mime)
		require.NoError(t, err, mime)
		assert.NotNil(t, e, mime)
	}

	// Unknown types fall back to best-effort UTF-8 decoding.
	e, err := r.ExtractorFor("application/octet-stream")
	require.NoError(t, err)
	text, err := e.Extract(context.Background(), []byte("plain enough"))
	require.NoError(t, err)
	assert.Equal(t, "plain enough", text)
}
