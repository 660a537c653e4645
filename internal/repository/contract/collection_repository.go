package contract

import (
	"context"

	"rag-kb-be/internal/entity"

	"github.com/google/uuid"
)

type CollectionRepository interface {
	Create(ctx context.Context, collection *entity.Collection) error
	FindById(ctx context.Context, id uuid.UUID) (*entity.Collection, error)
	FindByName(ctx context.Context, name string) (*entity.Collection, error)
	FindAll(ctx context.Context) ([]*entity.Collection, error)
	// Delete removes the collection; owned documents, chunks and
	// embeddings go with it via ON DELETE CASCADE.
	Delete(ctx context.Context, id uuid.UUID) error
}
