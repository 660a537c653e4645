package contract

import (
	"context"

	"rag-kb-be/internal/entity"

	"github.com/google/uuid"
)

type DocumentRepository interface {
	Create(ctx context.Context, document *entity.Document) error
	FindById(ctx context.Context, id uuid.UUID) (*entity.Document, error)
	FindByCollectionId(ctx context.Context, collectionId uuid.UUID) ([]*entity.Document, error)
	Delete(ctx context.Context, id uuid.UUID) error
}
