package dto

import (
	"time"

	"github.com/google/uuid"
)

type CreateSessionResponse struct {
	SessionToken uuid.UUID `json:"session_id"`
	IsActive     bool      `json:"is_active"`
	CreatedAt    time.Time `json:"created_at"`
}

type SessionSummary struct {
	SessionToken uuid.UUID `json:"session_id"`
	MessageCount int64     `json:"message_count"`
	IsActive     bool      `json:"is_active"`
	CreatedAt    time.Time `json:"created_at"`
	LastActivity time.Time `json:"last_activity"`
}

type AllSessionsResponse struct {
	Sessions []*SessionSummary `json:"sessions"`
}

type ChatMessageDTO struct {
	Id        uuid.UUID `json:"id"`
	Role      string    `json:"role"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

type SessionHistoryResponse struct {
	SessionToken uuid.UUID         `json:"session_id"`
	Messages     []*ChatMessageDTO `json:"messages"`
}

type DeleteSessionResponse struct {
	SessionToken    uuid.UUID `json:"session_id"`
	DeletedMessages int64     `json:"deleted_messages"`
}
