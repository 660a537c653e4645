package entity

import (
	"time"

	"github.com/google/uuid"
)

type Embedding struct {
	Id             uuid.UUID
	ChunkId        uuid.UUID
	DocumentId     uuid.UUID
	EmbeddingValue []float32
	EmbeddingModel string
	TextPreview    string
	CreatedAt      time.Time
}
