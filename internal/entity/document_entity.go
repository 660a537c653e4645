package entity

import (
	"time"

	"github.com/google/uuid"
)

type Document struct {
	Id           uuid.UUID
	CollectionId uuid.UUID
	Filename     string
	DocType      string
	SourceURL    string
	Title        string
	CreatedAt    time.Time
}
