package mapper

import (
	"rag-kb-be/internal/entity"
	"rag-kb-be/internal/model"

	"github.com/pgvector/pgvector-go"
)

type ChunkEmbeddingMapper struct{}

func NewChunkEmbeddingMapper() *ChunkEmbeddingMapper {
	return &ChunkEmbeddingMapper{}
}

func (m *ChunkEmbeddingMapper) ChunkToEntity(c *model.Chunk) *entity.Chunk {
	if c == nil {
		return nil
	}
	return &entity.Chunk{
		Id:         c.Id,
		DocumentId: c.DocumentId,
		Content:    c.Content,
		ChunkIndex: c.ChunkIndex,
		CreatedAt:  c.CreatedAt,
	}
}

func (m *ChunkEmbeddingMapper) ChunkToModel(c *entity.Chunk) *model.Chunk {
	if c == nil {
		return nil
	}
	return &model.Chunk{
		Id:         c.Id,
		DocumentId: c.DocumentId,
		Content:    c.Content,
		ChunkIndex: c.ChunkIndex,
		CreatedAt:  c.CreatedAt,
	}
}

func (m *ChunkEmbeddingMapper) ChunksToModels(chunks []*entity.Chunk) []*model.Chunk {
	models := make([]*model.Chunk, len(chunks))
	for i, c := range chunks {
		models[i] = m.ChunkToModel(c)
	}
	return models
}

func (m *ChunkEmbeddingMapper) EmbeddingToEntity(e *model.Embedding) *entity.Embedding {
	if e == nil {
		return nil
	}
	return &entity.Embedding{
		Id:             e.Id,
		ChunkId:        e.ChunkId,
		DocumentId:     e.DocumentId,
		EmbeddingValue: e.EmbeddingValue.Slice(),
		EmbeddingModel: e.EmbeddingModel,
		TextPreview:    e.TextPreview,
		CreatedAt:      e.CreatedAt,
	}
}

func (m *ChunkEmbeddingMapper) EmbeddingToModel(e *entity.Embedding) *model.Embedding {
	if e == nil {
		return nil
	}
	return &model.Embedding{
		Id:             e.Id,
		ChunkId:        e.ChunkId,
		DocumentId:     e.DocumentId,
		EmbeddingValue: pgvector.NewVector(e.EmbeddingValue),
		EmbeddingModel: e.EmbeddingModel,
		TextPreview:    e.TextPreview,
		CreatedAt:      e.CreatedAt,
	}
}

func (m *ChunkEmbeddingMapper) EmbeddingsToModels(embeddings []*entity.Embedding) []*model.Embedding {
	models := make([]*model.Embedding, len(embeddings))
	for i, e := range embeddings {
		models[i] = m.EmbeddingToModel(e)
	}
	return models
}
