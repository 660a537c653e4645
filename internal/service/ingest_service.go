package service

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"rag-kb-be/internal/apperror"
	"rag-kb-be/internal/config"
	"rag-kb-be/internal/constant"
	"rag-kb-be/internal/dto"
	"rag-kb-be/internal/entity"
	"rag-kb-be/internal/pkg/logger"
	"rag-kb-be/internal/repository/memory"
	"rag-kb-be/internal/repository/unitofwork"
	"rag-kb-be/pkg/chunker"
	"rag-kb-be/pkg/embedding"
	"rag-kb-be/pkg/pdfextract"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/google/uuid"
)

type IIngestService interface {
	// EnqueueIngest records the job as queued and hands it to the
	// ingestion topic. The caller polls GetJobStatus for the outcome.
	EnqueueIngest(ctx context.Context, filePath, filename, collectionName string) (*dto.IngestResponse, error)

	// Consume subscribes to the ingestion topic and processes jobs on a
	// background goroutine.
	Consume(ctx context.Context) error

	GetJobStatus(jobId string) *dto.JobStatusResponse
}

type ingestService struct {
	uowFactory        unitofwork.RepositoryFactory
	embeddingProvider embedding.Provider
	publisherService  IPublisherService
	jobStatusRepo     *memory.JobStatusRepository
	pubSub            *gochannel.GoChannel
	logger            logger.ILogger
	cfg               config.IngestConfig
	embeddingModel    string

	// swapped for a stub in tests
	extractText func(path string) (string, error)
}

func NewIngestService(
	uowFactory unitofwork.RepositoryFactory,
	embeddingProvider embedding.Provider,
	publisherService IPublisherService,
	jobStatusRepo *memory.JobStatusRepository,
	pubSub *gochannel.GoChannel,
	sysLogger logger.ILogger,
	cfg config.IngestConfig,
	embeddingModel string,
) IIngestService {
	return &ingestService{
		uowFactory:        uowFactory,
		embeddingProvider: embeddingProvider,
		publisherService:  publisherService,
		jobStatusRepo:     jobStatusRepo,
		pubSub:            pubSub,
		logger:            sysLogger,
		cfg:               cfg,
		embeddingModel:    embeddingModel,
		extractText:       pdfextract.ExtractTextFromFile,
	}
}

func (s *ingestService) EnqueueIngest(ctx context.Context, filePath, filename, collectionName string) (*dto.IngestResponse, error) {
	if collectionName == "" {
		collectionName = constant.DefaultCollectionName
	}

	// The uuid suffix keeps ids unique when the same file is uploaded
	// twice within one second.
	jobId := fmt.Sprintf("%s-%s-%d-%s", collectionName, filename, time.Now().Unix(), uuid.New())
	s.jobStatusRepo.Set(jobId, constant.JobStatusQueued)

	msgPayload := dto.IngestJobMessage{
		JobId:      jobId,
		FilePath:   filePath,
		Filename:   filename,
		Collection: collectionName,
	}
	msgJson, err := json.Marshal(msgPayload)
	if err != nil {
		return nil, err
	}

	if err := s.publisherService.Publish(ctx, msgJson); err != nil {
		s.jobStatusRepo.Set(jobId, constant.JobStatusFailed)
		return nil, err
	}

	s.logger.Info("ingest", "Ingest job queued", map[string]interface{}{
		"job_id":     jobId,
		"filename":   filename,
		"collection": collectionName,
	})

	return &dto.IngestResponse{
		Filename:   filename,
		Collection: collectionName,
		Status:     constant.JobStatusQueued,
		JobId:      jobId,
	}, nil
}

func (s *ingestService) GetJobStatus(jobId string) *dto.JobStatusResponse {
	return &dto.JobStatusResponse{
		JobId:  jobId,
		Status: s.jobStatusRepo.Get(jobId),
	}
}

func (s *ingestService) Consume(ctx context.Context) error {
	messages, err := s.pubSub.Subscribe(ctx, s.cfg.TopicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			s.processMessage(ctx, msg)
		}
	}()

	return nil
}

func (s *ingestService) processMessage(ctx context.Context, msg *message.Message) {
	var job dto.IngestJobMessage
	if err := json.Unmarshal(msg.Payload, &job); err != nil {
		s.logger.Error("ingest", "Failed to unmarshal ingest message", map[string]interface{}{"error": err.Error()})
		msg.Ack() // invalid payloads are not retriable
		return
	}

	s.processJob(ctx, &job)

	// The job-status store is the reporting surface; failed jobs are
	// not redelivered.
	msg.Ack()
}

// processJob runs the ingestion pipeline for one accepted job:
// extract -> chunk -> resolve collection -> create document -> embed ->
// transactional batch store. Any failure flips the job to failed and
// stops. The uploaded file is removed on every exit path.
func (s *ingestService) processJob(ctx context.Context, job *dto.IngestJobMessage) {
	s.jobStatusRepo.Set(job.JobId, constant.JobStatusRunning)

	defer func() {
		if _, err := os.Stat(job.FilePath); err == nil {
			if rmErr := os.Remove(job.FilePath); rmErr != nil {
				s.logger.Warn("ingest", "Failed to remove uploaded file", map[string]interface{}{
					"job_id": job.JobId,
					"path":   job.FilePath,
					"error":  rmErr.Error(),
				})
			}
		}
	}()

	text, err := s.extractText(job.FilePath)
	if err != nil {
		s.failJob(job, fmt.Errorf("%w: %v", apperror.ErrExtraction, err))
		return
	}

	chunks := chunker.Split(text, s.cfg.ChunkSize, s.cfg.ChunkOverlap)
	s.logger.Info("ingest", "Document chunked", map[string]interface{}{
		"job_id": job.JobId,
		"chunks": len(chunks),
	})

	uow := s.uowFactory.NewUnitOfWork(ctx)

	collection, err := s.getOrCreateCollection(ctx, uow, job.Collection)
	if err != nil {
		s.failJob(job, err)
		return
	}

	document := entity.Document{
		Id:           uuid.New(),
		CollectionId: collection.Id,
		Filename:     job.Filename,
		DocType:      "pdf",
		CreatedAt:    time.Now(),
	}
	if err := uow.DocumentRepository().Create(ctx, &document); err != nil {
		s.failJob(job, fmt.Errorf("%w: create document: %v", apperror.ErrStorage, err))
		return
	}

	// One embedding per chunk, computed in chunk order so indices stay
	// aligned with the vectors.
	chunkEntities := make([]*entity.Chunk, 0, len(chunks))
	embeddingEntities := make([]*entity.Embedding, 0, len(chunks))
	now := time.Now()
	for i, chunkText := range chunks {
		vector, err := s.embeddingProvider.Embed(ctx, chunkText)
		if err != nil {
			s.failJob(job, fmt.Errorf("embed chunk %d: %w", i, err))
			return
		}

		chunkEntity := &entity.Chunk{
			Id:         uuid.New(),
			DocumentId: document.Id,
			Content:    chunkText,
			ChunkIndex: i,
			CreatedAt:  now,
		}
		chunkEntities = append(chunkEntities, chunkEntity)
		embeddingEntities = append(embeddingEntities, &entity.Embedding{
			Id:             uuid.New(),
			ChunkId:        chunkEntity.Id,
			DocumentId:     document.Id,
			EmbeddingValue: vector,
			EmbeddingModel: s.embeddingModel,
			TextPreview:    textPreview(chunkText),
			CreatedAt:      now,
		})
	}

	// Chunks and embeddings commit together or not at all.
	if err := uow.Begin(ctx); err != nil {
		s.failJob(job, fmt.Errorf("%w: begin transaction: %v", apperror.ErrStorage, err))
		return
	}
	defer uow.Rollback()

	if err := uow.ChunkRepository().CreateBulk(ctx, chunkEntities); err != nil {
		s.failJob(job, fmt.Errorf("%w: store chunks: %v", apperror.ErrStorage, err))
		return
	}
	if err := uow.EmbeddingRepository().CreateBulk(ctx, embeddingEntities); err != nil {
		s.failJob(job, fmt.Errorf("%w: store embeddings: %v", apperror.ErrStorage, err))
		return
	}
	if err := uow.Commit(); err != nil {
		s.failJob(job, fmt.Errorf("%w: commit: %v", apperror.ErrStorage, err))
		return
	}

	s.jobStatusRepo.Set(job.JobId, constant.JobStatusCompleted)
	s.logger.Info("ingest", "Ingest completed", map[string]interface{}{
		"job_id":   job.JobId,
		"filename": job.Filename,
		"chunks":   len(chunkEntities),
	})
}

func (s *ingestService) failJob(job *dto.IngestJobMessage, err error) {
	s.jobStatusRepo.Set(job.JobId, constant.JobStatusFailed)
	s.logger.Error("ingest", "Ingest failed", map[string]interface{}{
		"job_id":   job.JobId,
		"filename": job.Filename,
		"error":    err.Error(),
	})
}

// getOrCreateCollection resolves the target collection by name. Two
// concurrent ingests of a new name race on the insert; the unique
// constraint rejects the loser, which then re-reads the winner's row.
func (s *ingestService) getOrCreateCollection(ctx context.Context, uow unitofwork.UnitOfWork, name string) (*entity.Collection, error) {
	repo := uow.CollectionRepository()

	existing, err := repo.FindByName(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("%w: find collection: %v", apperror.ErrStorage, err)
	}
	if existing != nil {
		return existing, nil
	}

	collection := &entity.Collection{
		Id:        uuid.New(),
		Name:      name,
		CreatedAt: time.Now(),
	}
	if err := repo.Create(ctx, collection); err != nil {
		winner, findErr := repo.FindByName(ctx, name)
		if findErr == nil && winner != nil {
			return winner, nil
		}
		return nil, fmt.Errorf("%w: create collection: %v", apperror.ErrStorage, err)
	}
	return collection, nil
}

func textPreview(chunk string) string {
	runes := []rune(chunk)
	if len(runes) <= 200 {
		return chunk
	}
	return string(runes[:200])
}
