package entity

import (
	"time"

	"github.com/google/uuid"
)

type Chunk struct {
	Id         uuid.UUID
	DocumentId uuid.UUID
	Content    string
	ChunkIndex int
	CreatedAt  time.Time
}
