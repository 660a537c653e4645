package model

import (
	"time"

	"github.com/google/uuid"
)

type Chunk struct {
	Id         uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	DocumentId uuid.UUID `gorm:"type:uuid;not null;index"`
	Content    string    `gorm:"type:text;not null"`
	ChunkIndex int       `gorm:"not null;default:0"` // 0-based, contiguous per document
	CreatedAt  time.Time `gorm:"autoCreateTime"`

	Document *Document `gorm:"foreignKey:DocumentId;constraint:OnDelete:CASCADE"`
}

func (Chunk) TableName() string {
	return "chunks"
}
