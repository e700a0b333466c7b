package driven

// Chunker splits plain text into an ordered, overlapping sequence of
// bounded substrings. Pure and restartable: calling Split twice with
// the same input yields identical output.
type Chunker interface {
	// Split returns the chunk texts in document order. Empty input
	// yields nil; input shorter than the window yields one chunk.
	Split(text string) []string
}
