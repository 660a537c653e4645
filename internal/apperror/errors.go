package apperror

import "errors"

// Failure classes shared across the ingestion and answering flows.
// Callers wrap these with fmt.Errorf("...: %w", Err...) so handlers and
// services can branch with errors.Is.
var (
	// ErrExtraction marks an unreadable or corrupt source file.
	ErrExtraction = errors.New("extraction failed")

	// ErrProvider marks an embedding or completion provider failure
	// (network error, timeout, non-2xx, malformed response).
	ErrProvider = errors.New("provider failed")

	// ErrStorage marks a storage-layer failure (constraint violation,
	// lost connection, failed transaction).
	ErrStorage = errors.New("storage failed")

	// ErrNotFound marks an absent collection, document or session.
	ErrNotFound = errors.New("not found")
)
