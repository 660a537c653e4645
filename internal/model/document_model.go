package model

import (
	"time"

	"github.com/google/uuid"
)

type Document struct {
	Id           uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CollectionId uuid.UUID `gorm:"type:uuid;not null;index"`
	Filename     string    `gorm:"type:varchar(255);not null"`
	DocType      string    `gorm:"type:varchar(50);default:pdf"`
	SourceURL    string    `gorm:"type:text"`
	Title        string    `gorm:"type:text"`
	CreatedAt    time.Time `gorm:"autoCreateTime"`

	Collection *Collection `gorm:"foreignKey:CollectionId;constraint:OnDelete:CASCADE"`
}

func (Document) TableName() string {
	return "documents"
}
