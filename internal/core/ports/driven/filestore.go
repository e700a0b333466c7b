package driven

import "context"

// FileStore keeps original upload bytes under masked names, plus the
// optional per-document embedding backup artifacts. Artifacts are
// written for operator inspection only and never read back.
type FileStore interface {
	// Save writes the original file bytes under the masked name and
	// returns the absolute storage path.
	Save(ctx context.Context, maskedName string, data []byte) (string, error)

	// Read returns the original file bytes for a masked name.
	Read(ctx context.Context, maskedName string) ([]byte, error)

	// Delete removes the file. Deleting an absent file is not an error.
	Delete(ctx context.Context, maskedName string) error

	// WriteBackup writes a human-readable embedding summary for the
	// document, replacing any previous artifact.
	WriteBackup(ctx context.Context, documentID string, content string) error

	// DeleteBackup removes the document's backup artifact, if any.
	DeleteBackup(ctx context.Context, documentID string) error
}
