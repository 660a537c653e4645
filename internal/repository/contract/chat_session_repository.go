package contract

import (
	"context"

	"rag-kb-be/internal/entity"

	"github.com/google/uuid"
)

type ChatSessionRepository interface {
	Create(ctx context.Context, session *entity.ChatSession) error
	FindByToken(ctx context.Context, token uuid.UUID) (*entity.ChatSession, error)
	FindActive(ctx context.Context) (*entity.ChatSession, error)
	FindAll(ctx context.Context) ([]*entity.ChatSession, error)
	DeactivateAll(ctx context.Context) error
	Deactivate(ctx context.Context, token uuid.UUID) error
	TouchLastActivity(ctx context.Context, id uuid.UUID) error
	Delete(ctx context.Context, id uuid.UUID) error
}
