package mapper

import (
	"rag-kb-be/internal/entity"
	"rag-kb-be/internal/model"
)

// LibraryMapper converts between the collection/document storage models
// and their domain entities.
type LibraryMapper struct{}

func NewLibraryMapper() *LibraryMapper {
	return &LibraryMapper{}
}

func (m *LibraryMapper) CollectionToEntity(c *model.Collection) *entity.Collection {
	if c == nil {
		return nil
	}
	return &entity.Collection{
		Id:          c.Id,
		Name:        c.Name,
		Description: c.Description,
		CreatedAt:   c.CreatedAt,
	}
}

func (m *LibraryMapper) CollectionToModel(c *entity.Collection) *model.Collection {
	if c == nil {
		return nil
	}
	return &model.Collection{
		Id:          c.Id,
		Name:        c.Name,
		Description: c.Description,
		CreatedAt:   c.CreatedAt,
	}
}

func (m *LibraryMapper) DocumentToEntity(d *model.Document) *entity.Document {
	if d == nil {
		return nil
	}
	return &entity.Document{
		Id:           d.Id,
		CollectionId: d.CollectionId,
		Filename:     d.Filename,
		DocType:      d.DocType,
		SourceURL:    d.SourceURL,
		Title:        d.Title,
		CreatedAt:    d.CreatedAt,
	}
}

func (m *LibraryMapper) DocumentToModel(d *entity.Document) *model.Document {
	if d == nil {
		return nil
	}
	return &model.Document{
		Id:           d.Id,
		CollectionId: d.CollectionId,
		Filename:     d.Filename,
		DocType:      d.DocType,
		SourceURL:    d.SourceURL,
		Title:        d.Title,
		CreatedAt:    d.CreatedAt,
	}
}
