package services

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/docvault/internal/core/domain"
	"github.com/custodia-labs/docvault/internal/core/ports/driving"
)

func setupDocumentService() (*DocumentService, *mockDocumentStore, *mockFileStore, *mockIngestor) {
	docStore := newMockDocumentStore()
	fileStore := newMockFileStore()
	ingestor := &mockIngestor{}
	return NewDocumentService(docStore, fileStore, ingestor), docStore, fileStore, ingestor
}

func TestUpload_CreatesDocumentAndEnqueues(t *testing.T) {
	svc, docStore, fileStore, ingestor := setupDocumentService()
	ctx := context.Background()

	doc, err := svc.Upload(ctx, driving.Upload{
		OriginalName: "Q3 Report.pdf",
		MIMEType:     "application/pdf",
		Data:         []byte("pdf bytes"),
	})
	require.NoError(t, err)

	assert.NotEmpty(t, doc.ID)
	assert.Equal(t, "Q3 Report.pdf", doc.OriginalName)
	assert.Equal(t, int64(9), doc.SizeBytes)
	assert.Equal(t, 0, doc.ChunkCount)

	// Masked name keeps the extension but not the original name.
	assert.True(t, strings.HasSuffix(doc.MaskedName, ".pdf"))
	assert.NotContains(t, doc.MaskedName, "Report")

	stored, err := docStore.GetDocument(ctx, doc.ID)
	require.NoError(t, err)
	assert.Equal(t, doc.MaskedName, stored.MaskedName)

	data, err := fileStore.Read(ctx, doc.MaskedName)
	require.NoError(t, err)
	assert.Equal(t, []byte("pdf bytes"), data)

	assert.Equal(t, []string{doc.ID}, ingestor.enqueued)
}

func TestUpload_RejectsEmptyNameAndContent(t *testing.T) {
	svc, _, _, ingestor := setupDocumentService()
	ctx := context.Background()

	_, err := svc.Upload(ctx, driving.Upload{OriginalName: "  ", Data: []byte("x")})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = svc.Upload(ctx, driving.Upload{OriginalName: "a.txt"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	assert.Empty(t, ingestor.enqueued)
}

func TestUpload_SameNameProducesDistinctMaskedNames(t *testing.T) {
	svc, _, _, _ := setupDocumentService()
	ctx := context.Background()

	doc1, err := svc.Upload(ctx, driving.Upload{OriginalName: "notes.txt", Data: []byte("a")})
	require.NoError(t, err)
	doc2, err := svc.Upload(ctx, driving.Upload{OriginalName: "notes.txt", Data: []byte("b")})
	require.NoError(t, err)

	assert.NotEqual(t, doc1.MaskedName, doc2.MaskedName)
}

func TestUpload_CleansUpFileWhenCreateFails(t *testing.T) {
	svc, docStore, fileStore, ingestor := setupDocumentService()
	docStore.createErr = errMockFailure

	_, err := svc.Upload(context.Background(), driving.Upload{
		OriginalName: "doomed.txt",
		Data:         []byte("x"),
	})
	require.Error(t, err)

	fileStore.mu.Lock()
	assert.Empty(t, fileStore.files)
	fileStore.mu.Unlock()
	assert.Empty(t, ingestor.enqueued)
}

func TestDownload_ReturnsOriginalNameAndBytes(t *testing.T) {
	svc, _, _, _ := setupDocumentService()
	ctx := context.Background()

	doc, err := svc.Upload(ctx, driving.Upload{
		OriginalName: "contract.docx",
		MIMEType:     "application/vnd.openxmlformats-officedocument.wordprocessingml.document",
		Data:         []byte("docx bytes"),
	})
	require.NoError(t, err)

	content, err := svc.Download(ctx, doc.ID)
	require.NoError(t, err)
	assert.Equal(t, "contract.docx", content.Name)
	assert.Equal(t, doc.MIMEType, content.MIMEType)
	assert.Equal(t, []byte("docx bytes"), content.Data)
}

func TestDownload_NotFound(t *testing.T) {
	svc, _, _, _ := setupDocumentService()

	_, err := svc.Download(context.Background(), "missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestDelete_RemovesEverything(t *testing.T) {
	svc, docStore, fileStore, ingestor := setupDocumentService()
	ctx := context.Background()

	doc, err := svc.Upload(ctx, driving.Upload{OriginalName: "gone.txt", Data: []byte("x")})
	require.NoError(t, err)
	require.NoError(t, fileStore.WriteBackup(ctx, doc.ID, "summary"))

	require.NoError(t, svc.Delete(ctx, doc.ID))

	_, err = docStore.GetDocument(ctx, doc.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = fileStore.Read(ctx, doc.MaskedName)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, hasBackup := fileStore.backup(doc.ID)
	assert.False(t, hasBackup)

	assert.Equal(t, []string{doc.ID}, ingestor.forgotten)
}

func TestDelete_NotFound(t *testing.T) {
	svc, _, _, _ := setupDocumentService()

	err := svc.Delete(context.Background(), "missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCount(t *testing.T) {
	svc, _, _, _ := setupDocumentService()
	ctx := context.Background()

	count, err := svc.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, count)

	_, err = svc.Upload(ctx, driving.Upload{OriginalName: "a.txt", Data: []byte("a")})
	require.NoError(t, err)

	count, err = svc.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}
