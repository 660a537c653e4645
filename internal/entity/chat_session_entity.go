package entity

import (
	"time"

	"github.com/google/uuid"
)

type ChatSession struct {
	Id           uuid.UUID
	SessionToken uuid.UUID
	IsActive     bool
	CreatedAt    time.Time
	LastActivity time.Time
}
