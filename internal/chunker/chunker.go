// Package chunker splits extracted text into overlapping bounded chunks.
package chunker

import (
	"strings"

	"github.com/custodia-labs/docvault/internal/core/domain"
	"github.com/custodia-labs/docvault/internal/core/ports/driven"
)

// Ensure Splitter implements the interface.
var _ driven.Chunker = (*Splitter)(nil)

// sentenceLookback is how far back from the window end the splitter
// searches for a sentence boundary. Best effort only: text with no
// boundary in this range is split mid-sentence.
const sentenceLookback = 100

// Splitter splits text into chunks of at most maxChunkSize characters,
// with consecutive chunks sharing overlap characters. Chunk ends are
// snapped to sentence boundaries where one falls near the window end.
type Splitter struct {
	maxChunkSize int
	overlap      int
}

// Option configures the splitter.
type Option func(*Splitter)

// WithMaxChunkSize sets the window size in characters.
func WithMaxChunkSize(size int) Option {
	return func(s *Splitter) {
		if size > 0 {
			s.maxChunkSize = size
		}
	}
}

// WithOverlap sets the overlap between chunks in characters.
func WithOverlap(overlap int) Option {
	return func(s *Splitter) {
		if overlap >= 0 {
			s.overlap = overlap
		}
	}
}

// New creates a splitter with the given options.
func New(opts ...Option) *Splitter {
	s := &Splitter{
		maxChunkSize: domain.DefaultMaxChunkSize,
		overlap:      domain.DefaultChunkOverlap,
	}

	for _, opt := range opts {
		opt(s)
	}

	// Overlap must stay strictly below the window size or no window
	// could ever advance.
	if s.overlap >= s.maxChunkSize {
		s.overlap = s.maxChunkSize / 4
	}

	return s
}

// FromSettings creates a splitter from chunking settings.
func FromSettings(cfg domain.ChunkingSettings) *Splitter {
	cfg = cfg.WithDefaults()
	return New(WithMaxChunkSize(cfg.MaxChunkSize), WithOverlap(cfg.Overlap))
}

// MaxChunkSize returns the configured window size.
func (s *Splitter) MaxChunkSize() int {
	return s.maxChunkSize
}

// Overlap returns the configured overlap.
func (s *Splitter) Overlap() int {
	return s.overlap
}

// Split returns the chunk texts in document order. Empty input yields
// nil; input shorter than the window yields a single trimmed chunk.
func (s *Splitter) Split(text string) []string {
	if strings.TrimSpace(text) == "" {
		return nil
	}

	textLen := len(text)
	estimated := textLen/(s.maxChunkSize-s.overlap) + 1
	chunks := make([]string, 0, estimated)

	start := 0
	for start < textLen {
		end := start + s.maxChunkSize
		if end >= textLen {
			end = textLen
		} else {
			end = s.snapToSentence(text, start, end)
		}

		chunk := strings.TrimSpace(text[start:end])
		if chunk != "" {
			chunks = append(chunks, chunk)
		}

		if end == textLen {
			break
		}

		// Advance with overlap. If sentence snapping pulled the end so
		// far back that the overlapped start would not move strictly
		// forward, drop the overlap for this step. Progress is then
		// monotonic and the loop terminates.
		next := end - s.overlap
		if next <= start {
			next = end
		}
		start = next
	}

	return chunks
}

// snapToSentence searches backward within the window tail for a
// sentence terminal followed by whitespace and returns the position
// just after it, or end when no boundary is found.
func (s *Splitter) snapToSentence(text string, start, end int) int {
	limit := end - sentenceLookback
	if limit < start {
		limit = start
	}
	for i := end - 1; i > limit; i-- {
		if isSentenceTerminal(text[i]) && i+1 < len(text) && isWhitespace(text[i+1]) {
			return i + 1
		}
	}
	return end
}

func isSentenceTerminal(c byte) bool {
	return c == '.' || c == '!' || c == '?'
}

func isWhitespace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r'
}
