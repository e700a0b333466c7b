// Package files provides an on-disk implementation of the file store.
//
// Original uploads live under <dataDir>/files keyed by masked name, so
// a directory listing reveals nothing about their content. Embedding
// backup artifacts live under <dataDir>/backups keyed by document ID.
package files

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/custodia-labs/docvault/internal/core/domain"
	"github.com/custodia-labs/docvault/internal/core/ports/driven"
)

var _ driven.FileStore = (*Store)(nil)

// Store persists file blobs on the local filesystem.
type Store struct {
	filesDir   string
	backupsDir string
}

// NewStore creates a file store rooted at the given data directory.
// If dataDir is empty, defaults to ~/.docvault.
func NewStore(dataDir string) (*Store, error) {
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		dataDir = filepath.Join(home, ".docvault")
	}

	s := &Store{
		filesDir:   filepath.Join(dataDir, "files"),
		backupsDir: filepath.Join(dataDir, "backups"),
	}

	for _, dir := range []string{s.filesDir, s.backupsDir} {
		if err := os.MkdirAll(dir, 0700); err != nil {
			return nil, fmt.Errorf("creating directory %s: %w", dir, err)
		}
	}

	return s, nil
}

// Save writes the original file bytes under the masked name and
// returns the absolute storage path.
func (s *Store) Save(_ context.Context, maskedName string, data []byte) (string, error) {
	path, err := s.filePath(maskedName)
	if err != nil {
		return "", err
	}

	if err := os.WriteFile(path, data, 0600); err != nil {
		return "", fmt.Errorf("%w: writing file: %v", domain.ErrStorageFailure, err)
	}
	return path, nil
}

// Read returns the original file bytes for a masked name.
func (s *Store) Read(_ context.Context, maskedName string) ([]byte, error) {
	path, err := s.filePath(maskedName)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: file %s", domain.ErrNotFound, maskedName)
		}
		return nil, fmt.Errorf("%w: reading file: %v", domain.ErrStorageFailure, err)
	}
	return data, nil
}

// Delete removes the file. Deleting an absent file is not an error.
func (s *Store) Delete(_ context.Context, maskedName string) error {
	path, err := s.filePath(maskedName)
	if err != nil {
		return err
	}

	if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("%w: deleting file: %v", domain.ErrStorageFailure, err)
	}
	return nil
}

// WriteBackup writes a human-readable embedding summary for the
// document, replacing any previous artifact.
func (s *Store) WriteBackup(_ context.Context, documentID string, content string) error {
	path, err := s.backupPath(documentID)
	if err != nil {
		return err
	}

	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		return fmt.Errorf("%w: writing backup: %v", domain.ErrStorageFailure, err)
	}
	return nil
}

// DeleteBackup removes the document's backup artifact, if any.
func (s *Store) DeleteBackup(_ context.Context, documentID string) error {
	path, err := s.backupPath(documentID)
	if err != nil {
		return err
	}

	if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("%w: deleting backup: %v", domain.ErrStorageFailure, err)
	}
	return nil
}

// filePath resolves a masked name inside the files directory,
// rejecting names that would escape it.
func (s *Store) filePath(maskedName string) (string, error) {
	return s.resolve(s.filesDir, maskedName)
}

// backupPath resolves a document ID inside the backups directory.
func (s *Store) backupPath(documentID string) (string, error) {
	return s.resolve(s.backupsDir, documentID+".backup.txt")
}

func (s *Store) resolve(dir, name string) (string, error) {
	if name == "" || name != filepath.Base(name) {
		return "", fmt.Errorf("%w: invalid file name %q", domain.ErrInvalidInput, name)
	}
	return filepath.Join(dir, name), nil
}
