package contract

import (
	"context"

	"rag-kb-be/internal/entity"

	"github.com/google/uuid"
)

type ChatMessageRepository interface {
	Create(ctx context.Context, message *entity.ChatMessage) error
	// FindRecentBySessionId returns up to limit of the newest messages,
	// reordered chronologically for prompt rendering.
	FindRecentBySessionId(ctx context.Context, sessionId uuid.UUID, limit int) ([]*entity.ChatMessage, error)
	FindBySessionId(ctx context.Context, sessionId uuid.UUID) ([]*entity.ChatMessage, error)
	CountBySessionId(ctx context.Context, sessionId uuid.UUID) (int64, error)
	DeleteBySessionId(ctx context.Context, sessionId uuid.UUID) (int64, error)
}
