package contract

import (
	"context"

	"rag-kb-be/internal/entity"

	"github.com/google/uuid"
)

type ChunkRepository interface {
	CreateBulk(ctx context.Context, chunks []*entity.Chunk) error
	FindByDocumentId(ctx context.Context, documentId uuid.UUID) ([]*entity.Chunk, error)
	CountByDocumentId(ctx context.Context, documentId uuid.UUID) (int64, error)
}
