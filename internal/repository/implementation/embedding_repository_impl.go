package implementation

import (
	"context"

	"rag-kb-be/internal/entity"
	"rag-kb-be/internal/mapper"
	"rag-kb-be/internal/model"
	"rag-kb-be/internal/repository/contract"

	"github.com/google/uuid"
	"github.com/pgvector/pgvector-go"
	"gorm.io/gorm"
)

type EmbeddingRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.ChunkEmbeddingMapper
}

func NewEmbeddingRepository(db *gorm.DB) contract.EmbeddingRepository {
	return &EmbeddingRepositoryImpl{
		db:     db,
		mapper: mapper.NewChunkEmbeddingMapper(),
	}
}

func (r *EmbeddingRepositoryImpl) CreateBulk(ctx context.Context, embeddings []*entity.Embedding) error {
	if len(embeddings) == 0 {
		return nil
	}
	models := r.mapper.EmbeddingsToModels(embeddings)
	if err := r.db.WithContext(ctx).Create(models).Error; err != nil {
		return err
	}
	for i, m := range models {
		*embeddings[i] = *r.mapper.EmbeddingToEntity(m)
	}
	return nil
}

func (r *EmbeddingRepositoryImpl) CountByDocumentId(ctx context.Context, documentId uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.Embedding{}).
		Where("document_id = ?", documentId).
		Count(&count).Error
	return count, err
}

func (r *EmbeddingRepositoryImpl) SearchSimilar(ctx context.Context, embedding []float32, k int) ([]*contract.RetrievedChunk, error) {
	if k <= 0 {
		k = 4
	}

	queryVector := pgvector.NewVector(embedding)

	// pgvector cosine distance: embedding <=> query, lower is closer.
	// Joined through chunks to documents for the source filename.
	type row struct {
		Content  string
		Filename string
		Distance float64
	}
	var rows []row

	err := r.db.WithContext(ctx).
		Table("embeddings").
		Select("chunks.content AS content, documents.filename AS filename, embeddings.embedding <=> ? AS distance", queryVector).
		Joins("JOIN chunks ON chunks.id = embeddings.chunk_id").
		Joins("JOIN documents ON documents.id = embeddings.document_id").
		Order("distance ASC").
		Limit(k).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	results := make([]*contract.RetrievedChunk, len(rows))
	for i, rw := range rows {
		results[i] = &contract.RetrievedChunk{
			Content:        rw.Content,
			SourceFilename: rw.Filename,
			Distance:       rw.Distance,
		}
	}
	return results, nil
}
