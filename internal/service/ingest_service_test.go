package service

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"rag-kb-be/internal/config"
	"rag-kb-be/internal/constant"
	"rag-kb-be/internal/dto"
	"rag-kb-be/internal/entity"
	"rag-kb-be/internal/repository/memory"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestIngestService(t *testing.T, uow *fakeUnitOfWork, embedder *fakeEmbedder, publisher *fakePublisher) (*ingestService, *memory.JobStatusRepository) {
	t.Helper()

	jobStatusRepo := memory.NewJobStatusRepository()
	cfg := config.IngestConfig{
		UploadDir:    t.TempDir(),
		TopicName:    "INGEST_PDF",
		ChunkSize:    1000,
		ChunkOverlap: 100,
		SearchK:      4,
	}

	svc := NewIngestService(
		&fakeFactory{uow: uow},
		embedder,
		publisher,
		jobStatusRepo,
		nil,
		noopLogger{},
		cfg,
		"text-embedding-3-small",
	).(*ingestService)
	return svc, jobStatusRepo
}

func writeTempUpload(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "upload.pdf")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestEnqueueIngest(t *testing.T) {
	uow := newFakeUnitOfWork()
	publisher := &fakePublisher{}
	svc, jobStatusRepo := newTestIngestService(t, uow, &fakeEmbedder{}, publisher)

	res, err := svc.EnqueueIngest(context.Background(), "/tmp/x.pdf", "report.pdf", "")
	require.NoError(t, err)

	assert.Equal(t, constant.JobStatusQueued, res.Status)
	assert.Equal(t, "report.pdf", res.Filename)
	assert.Equal(t, constant.DefaultCollectionName, res.Collection)
	assert.True(t, strings.HasPrefix(res.JobId, "default-report.pdf-"))
	assert.Equal(t, constant.JobStatusQueued, jobStatusRepo.Get(res.JobId))
	assert.Len(t, publisher.payloads, 1)
}

func TestEnqueueIngestJobIdsAreUnique(t *testing.T) {
	uow := newFakeUnitOfWork()
	svc, jobStatusRepo := newTestIngestService(t, uow, &fakeEmbedder{}, &fakePublisher{})

	// Two uploads of the same file in the same second must not share an id
	first, err := svc.EnqueueIngest(context.Background(), "/tmp/a.pdf", "report.pdf", "papers")
	require.NoError(t, err)
	second, err := svc.EnqueueIngest(context.Background(), "/tmp/b.pdf", "report.pdf", "papers")
	require.NoError(t, err)

	assert.NotEqual(t, first.JobId, second.JobId)
	assert.Equal(t, constant.JobStatusQueued, jobStatusRepo.Get(first.JobId))
	assert.Equal(t, constant.JobStatusQueued, jobStatusRepo.Get(second.JobId))
}

func TestEnqueueIngestPublishFailure(t *testing.T) {
	uow := newFakeUnitOfWork()
	publisher := &fakePublisher{err: errors.New("bus down")}
	svc, _ := newTestIngestService(t, uow, &fakeEmbedder{}, publisher)

	_, err := svc.EnqueueIngest(context.Background(), "/tmp/x.pdf", "report.pdf", "papers")
	require.Error(t, err)
	assert.Empty(t, publisher.payloads)
}

func TestProcessJobCompletes(t *testing.T) {
	uow := newFakeUnitOfWork()
	embedder := &fakeEmbedder{}
	svc, jobStatusRepo := newTestIngestService(t, uow, embedder, &fakePublisher{})

	longText := strings.Repeat("alpha beta gamma ", 150) // ~2550 chars, 3 chunks
	svc.extractText = func(path string) (string, error) { return longText, nil }

	filePath := writeTempUpload(t, "%PDF-1.4 stub")
	job := &dto.IngestJobMessage{
		JobId:      "papers-doc.pdf-1700000000",
		FilePath:   filePath,
		Filename:   "doc.pdf",
		Collection: "papers",
	}

	svc.processJob(context.Background(), job)

	assert.Equal(t, constant.JobStatusCompleted, jobStatusRepo.Get(job.JobId))

	// Collection and document created
	collection, err := uow.collections.FindByName(context.Background(), "papers")
	require.NoError(t, err)
	require.NotNil(t, collection)
	require.Len(t, uow.documents.byId, 1)
	var document *entity.Document
	for _, d := range uow.documents.byId {
		document = d
	}
	assert.Equal(t, "doc.pdf", document.Filename)
	assert.Equal(t, collection.Id, document.CollectionId)

	// Chunks and embeddings stored together, aligned by id and order
	require.Equal(t, len(uow.chunks.stored), len(uow.embeddings.stored))
	require.NotEmpty(t, uow.chunks.stored)
	for i, chunk := range uow.chunks.stored {
		assert.Equal(t, i, chunk.ChunkIndex)
		assert.Equal(t, document.Id, chunk.DocumentId)

		embedding := uow.embeddings.stored[i]
		assert.Equal(t, chunk.Id, embedding.ChunkId)
		assert.Equal(t, document.Id, embedding.DocumentId)
		assert.Equal(t, "text-embedding-3-small", embedding.EmbeddingModel)
		assert.LessOrEqual(t, len([]rune(embedding.TextPreview)), 200)
		assert.True(t, strings.HasPrefix(chunk.Content, embedding.TextPreview))
	}

	// Embedder saw every chunk in order
	assert.Equal(t, len(uow.chunks.stored), len(embedder.texts))

	// Batch write was transactional
	assert.Equal(t, 1, uow.committed)

	// Upload removed after success
	_, statErr := os.Stat(filePath)
	assert.True(t, os.IsNotExist(statErr))
}

func TestProcessJobExtractionFailure(t *testing.T) {
	uow := newFakeUnitOfWork()
	svc, jobStatusRepo := newTestIngestService(t, uow, &fakeEmbedder{}, &fakePublisher{})

	svc.extractText = func(path string) (string, error) { return "", errors.New("broken xref table") }

	filePath := writeTempUpload(t, "not a pdf")
	job := &dto.IngestJobMessage{JobId: "default-bad.pdf-1", FilePath: filePath, Filename: "bad.pdf", Collection: "default"}

	svc.processJob(context.Background(), job)

	assert.Equal(t, constant.JobStatusFailed, jobStatusRepo.Get(job.JobId))
	assert.Empty(t, uow.chunks.stored)
	assert.Empty(t, uow.embeddings.stored)

	// Upload removed on failure too
	_, statErr := os.Stat(filePath)
	assert.True(t, os.IsNotExist(statErr))
}

func TestProcessJobEmbeddingFailure(t *testing.T) {
	uow := newFakeUnitOfWork()
	embedder := &fakeEmbedder{embedFn: func(text string) ([]float32, error) {
		return nil, errors.New("provider down")
	}}
	svc, jobStatusRepo := newTestIngestService(t, uow, embedder, &fakePublisher{})
	svc.extractText = func(path string) (string, error) { return "some extracted text", nil }

	filePath := writeTempUpload(t, "%PDF")
	job := &dto.IngestJobMessage{JobId: "default-doc.pdf-1", FilePath: filePath, Filename: "doc.pdf", Collection: "default"}

	svc.processJob(context.Background(), job)

	assert.Equal(t, constant.JobStatusFailed, jobStatusRepo.Get(job.JobId))
	assert.Empty(t, uow.embeddings.stored)
	assert.Zero(t, uow.committed)
}

func TestProcessJobStorageFailureRollsBack(t *testing.T) {
	uow := newFakeUnitOfWork()
	uow.embeddings.bulkErr = errors.New("disk full")
	svc, jobStatusRepo := newTestIngestService(t, uow, &fakeEmbedder{}, &fakePublisher{})
	svc.extractText = func(path string) (string, error) { return "some extracted text", nil }

	filePath := writeTempUpload(t, "%PDF")
	job := &dto.IngestJobMessage{JobId: "default-doc.pdf-2", FilePath: filePath, Filename: "doc.pdf", Collection: "default"}

	svc.processJob(context.Background(), job)

	assert.Equal(t, constant.JobStatusFailed, jobStatusRepo.Get(job.JobId))
	assert.Zero(t, uow.committed)
	assert.Equal(t, 1, uow.rolledBack)
}

func TestProcessJobReusesExistingCollection(t *testing.T) {
	uow := newFakeUnitOfWork()
	existing := &entity.Collection{Id: uuid.New(), Name: "papers"}
	uow.collections.byName["papers"] = existing

	svc, _ := newTestIngestService(t, uow, &fakeEmbedder{}, &fakePublisher{})
	svc.extractText = func(path string) (string, error) { return "text", nil }

	filePath := writeTempUpload(t, "%PDF")
	job := &dto.IngestJobMessage{JobId: "papers-doc.pdf-3", FilePath: filePath, Filename: "doc.pdf", Collection: "papers"}
	svc.processJob(context.Background(), job)

	require.Len(t, uow.collections.byName, 1)
	for _, d := range uow.documents.byId {
		assert.Equal(t, existing.Id, d.CollectionId)
	}
}

func TestGetOrCreateCollectionLosesInsertRace(t *testing.T) {
	uow := newFakeUnitOfWork()
	winner := &entity.Collection{Id: uuid.New(), Name: "papers"}

	// The name is free on the first read, but the insert collides with a
	// concurrent winner.
	uow.collections.createFn = func(c *entity.Collection) error {
		uow.collections.byName["papers"] = winner
		return errors.New("duplicate key value violates unique constraint")
	}

	svc, _ := newTestIngestService(t, uow, &fakeEmbedder{}, &fakePublisher{})

	got, err := svc.getOrCreateCollection(context.Background(), uow, "papers")
	require.NoError(t, err)
	assert.Equal(t, winner.Id, got.Id)
}

func TestGetJobStatusUnknown(t *testing.T) {
	svc, _ := newTestIngestService(t, newFakeUnitOfWork(), &fakeEmbedder{}, &fakePublisher{})

	res := svc.GetJobStatus("no-such-job")
	assert.Equal(t, constant.JobStatusUnknown, res.Status)
	assert.Equal(t, "no-such-job", res.JobId)
}

func TestTextPreview(t *testing.T) {
	assert.Equal(t, "short", textPreview("short"))

	long := strings.Repeat("é", 250)
	preview := textPreview(long)
	assert.Equal(t, 200, len([]rune(preview)))
}
