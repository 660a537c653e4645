package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/pgvector/pgvector-go"
)

type Embedding struct {
	Id             uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ChunkId        uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex"` // one embedding per chunk
	DocumentId     uuid.UUID       `gorm:"type:uuid;not null;index"`       // denormalized for query-time joins
	EmbeddingValue pgvector.Vector `gorm:"column:embedding;type:vector(1536)"` // text-embedding-3-small uses 1536 dimensions
	EmbeddingModel string          `gorm:"type:varchar(100);not null"`
	TextPreview    string          `gorm:"type:varchar(200)"`
	CreatedAt      time.Time       `gorm:"autoCreateTime"`

	Chunk    *Chunk    `gorm:"foreignKey:ChunkId;constraint:OnDelete:CASCADE"`
	Document *Document `gorm:"foreignKey:DocumentId;constraint:OnDelete:CASCADE"`
}

func (Embedding) TableName() string {
	return "embeddings"
}
