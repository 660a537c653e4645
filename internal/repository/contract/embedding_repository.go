package contract

import (
	"context"

	"rag-kb-be/internal/entity"

	"github.com/google/uuid"
)

// RetrievedChunk is one similarity-search hit: the chunk text plus the
// filename of the document it came from, ordered by ascending cosine
// distance to the query vector.
type RetrievedChunk struct {
	Content        string
	SourceFilename string
	Distance       float64
}

type EmbeddingRepository interface {
	CreateBulk(ctx context.Context, embeddings []*entity.Embedding) error
	CountByDocumentId(ctx context.Context, documentId uuid.UUID) (int64, error)
	// SearchSimilar ranks every stored embedding by cosine distance to
	// the query vector and returns the top k. Scope is global across
	// all collections and documents. An empty store yields an empty
	// slice, not an error.
	SearchSimilar(ctx context.Context, embedding []float32, k int) ([]*RetrievedChunk, error)
}
