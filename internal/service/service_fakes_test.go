package service

import (
	"context"
	"errors"

	"rag-kb-be/internal/entity"
	"rag-kb-be/internal/repository/contract"
	"rag-kb-be/internal/repository/unitofwork"
	"rag-kb-be/pkg/llm"

	"github.com/google/uuid"
)

// In-memory doubles for the repository layer so service tests run
// without a database.

type fakeFactory struct {
	uow *fakeUnitOfWork
}

func (f *fakeFactory) NewUnitOfWork(ctx context.Context) unitofwork.UnitOfWork {
	return f.uow
}

type fakeUnitOfWork struct {
	collections *fakeCollectionRepo
	documents   *fakeDocumentRepo
	chunks      *fakeChunkRepo
	embeddings  *fakeEmbeddingRepo
	sessions    *fakeSessionRepo
	messages    *fakeMessageRepo

	inTx       bool
	committed  int
	rolledBack int
	beginErr   error
	commitErr  error
}

func newFakeUnitOfWork() *fakeUnitOfWork {
	return &fakeUnitOfWork{
		collections: &fakeCollectionRepo{byName: map[string]*entity.Collection{}},
		documents:   &fakeDocumentRepo{byId: map[uuid.UUID]*entity.Document{}},
		chunks:      &fakeChunkRepo{},
		embeddings:  &fakeEmbeddingRepo{},
		sessions:    &fakeSessionRepo{},
		messages:    &fakeMessageRepo{},
	}
}

func (u *fakeUnitOfWork) Begin(ctx context.Context) error {
	if u.beginErr != nil {
		return u.beginErr
	}
	u.inTx = true
	return nil
}

func (u *fakeUnitOfWork) Commit() error {
	if !u.inTx {
		return errors.New("no transaction to commit")
	}
	if u.commitErr != nil {
		return u.commitErr
	}
	u.inTx = false
	u.committed++
	return nil
}

func (u *fakeUnitOfWork) Rollback() error {
	if !u.inTx {
		return errors.New("no transaction to rollback")
	}
	u.inTx = false
	u.rolledBack++
	return nil
}

func (u *fakeUnitOfWork) CollectionRepository() contract.CollectionRepository {
	return u.collections
}

func (u *fakeUnitOfWork) DocumentRepository() contract.DocumentRepository {
	return u.documents
}

func (u *fakeUnitOfWork) ChunkRepository() contract.ChunkRepository {
	return u.chunks
}

func (u *fakeUnitOfWork) EmbeddingRepository() contract.EmbeddingRepository {
	return u.embeddings
}

func (u *fakeUnitOfWork) ChatSessionRepository() contract.ChatSessionRepository {
	return u.sessions
}

func (u *fakeUnitOfWork) ChatMessageRepository() contract.ChatMessageRepository {
	return u.messages
}

type fakeCollectionRepo struct {
	byName   map[string]*entity.Collection
	createFn func(collection *entity.Collection) error
	findErr  error
	deleted  []uuid.UUID
}

func (r *fakeCollectionRepo) Create(ctx context.Context, collection *entity.Collection) error {
	if r.createFn != nil {
		return r.createFn(collection)
	}
	if _, exists := r.byName[collection.Name]; exists {
		return errors.New("duplicate key value violates unique constraint")
	}
	r.byName[collection.Name] = collection
	return nil
}

func (r *fakeCollectionRepo) FindById(ctx context.Context, id uuid.UUID) (*entity.Collection, error) {
	if r.findErr != nil {
		return nil, r.findErr
	}
	for _, c := range r.byName {
		if c.Id == id {
			return c, nil
		}
	}
	return nil, nil
}

func (r *fakeCollectionRepo) FindByName(ctx context.Context, name string) (*entity.Collection, error) {
	if r.findErr != nil {
		return nil, r.findErr
	}
	return r.byName[name], nil
}

func (r *fakeCollectionRepo) FindAll(ctx context.Context) ([]*entity.Collection, error) {
	var out []*entity.Collection
	for _, c := range r.byName {
		out = append(out, c)
	}
	return out, nil
}

func (r *fakeCollectionRepo) Delete(ctx context.Context, id uuid.UUID) error {
	for name, c := range r.byName {
		if c.Id == id {
			delete(r.byName, name)
			r.deleted = append(r.deleted, id)
			return nil
		}
	}
	return errors.New("not found")
}

type fakeDocumentRepo struct {
	byId      map[uuid.UUID]*entity.Document
	createErr error
	deleted   []uuid.UUID
}

func (r *fakeDocumentRepo) Create(ctx context.Context, document *entity.Document) error {
	if r.createErr != nil {
		return r.createErr
	}
	r.byId[document.Id] = document
	return nil
}

func (r *fakeDocumentRepo) FindById(ctx context.Context, id uuid.UUID) (*entity.Document, error) {
	return r.byId[id], nil
}

func (r *fakeDocumentRepo) FindByCollectionId(ctx context.Context, collectionId uuid.UUID) ([]*entity.Document, error) {
	var out []*entity.Document
	for _, d := range r.byId {
		if d.CollectionId == collectionId {
			out = append(out, d)
		}
	}
	return out, nil
}

func (r *fakeDocumentRepo) Delete(ctx context.Context, id uuid.UUID) error {
	delete(r.byId, id)
	r.deleted = append(r.deleted, id)
	return nil
}

type fakeChunkRepo struct {
	stored  []*entity.Chunk
	bulkErr error
}

func (r *fakeChunkRepo) CreateBulk(ctx context.Context, chunks []*entity.Chunk) error {
	if r.bulkErr != nil {
		return r.bulkErr
	}
	r.stored = append(r.stored, chunks...)
	return nil
}

func (r *fakeChunkRepo) FindByDocumentId(ctx context.Context, documentId uuid.UUID) ([]*entity.Chunk, error) {
	var out []*entity.Chunk
	for _, c := range r.stored {
		if c.DocumentId == documentId {
			out = append(out, c)
		}
	}
	return out, nil
}

func (r *fakeChunkRepo) CountByDocumentId(ctx context.Context, documentId uuid.UUID) (int64, error) {
	chunks, _ := r.FindByDocumentId(ctx, documentId)
	return int64(len(chunks)), nil
}

type fakeEmbeddingRepo struct {
	stored        []*entity.Embedding
	bulkErr       error
	searchResults []*contract.RetrievedChunk
	searchErr     error
	lastQuery     []float32
	lastK         int
}

func (r *fakeEmbeddingRepo) CreateBulk(ctx context.Context, embeddings []*entity.Embedding) error {
	if r.bulkErr != nil {
		return r.bulkErr
	}
	r.stored = append(r.stored, embeddings...)
	return nil
}

func (r *fakeEmbeddingRepo) CountByDocumentId(ctx context.Context, documentId uuid.UUID) (int64, error) {
	var n int64
	for _, e := range r.stored {
		if e.DocumentId == documentId {
			n++
		}
	}
	return n, nil
}

func (r *fakeEmbeddingRepo) SearchSimilar(ctx context.Context, embedding []float32, k int) ([]*contract.RetrievedChunk, error) {
	r.lastQuery = embedding
	r.lastK = k
	if r.searchErr != nil {
		return nil, r.searchErr
	}
	return r.searchResults, nil
}

type fakeSessionRepo struct {
	sessions  []*entity.ChatSession
	touched   []uuid.UUID
	createErr error
	findErr   error
}

func (r *fakeSessionRepo) Create(ctx context.Context, session *entity.ChatSession) error {
	if r.createErr != nil {
		return r.createErr
	}
	r.sessions = append(r.sessions, session)
	return nil
}

func (r *fakeSessionRepo) FindByToken(ctx context.Context, token uuid.UUID) (*entity.ChatSession, error) {
	if r.findErr != nil {
		return nil, r.findErr
	}
	for _, s := range r.sessions {
		if s.SessionToken == token {
			return s, nil
		}
	}
	return nil, nil
}

func (r *fakeSessionRepo) FindActive(ctx context.Context) (*entity.ChatSession, error) {
	for _, s := range r.sessions {
		if s.IsActive {
			return s, nil
		}
	}
	return nil, nil
}

func (r *fakeSessionRepo) FindAll(ctx context.Context) ([]*entity.ChatSession, error) {
	return r.sessions, nil
}

func (r *fakeSessionRepo) DeactivateAll(ctx context.Context) error {
	for _, s := range r.sessions {
		s.IsActive = false
	}
	return nil
}

func (r *fakeSessionRepo) Deactivate(ctx context.Context, token uuid.UUID) error {
	for _, s := range r.sessions {
		if s.SessionToken == token {
			s.IsActive = false
			return nil
		}
	}
	return errors.New("record not found")
}

func (r *fakeSessionRepo) TouchLastActivity(ctx context.Context, id uuid.UUID) error {
	r.touched = append(r.touched, id)
	return nil
}

func (r *fakeSessionRepo) Delete(ctx context.Context, id uuid.UUID) error {
	for i, s := range r.sessions {
		if s.Id == id {
			r.sessions = append(r.sessions[:i], r.sessions[i+1:]...)
			return nil
		}
	}
	return errors.New("not found")
}

type fakeMessageRepo struct {
	messages  []*entity.ChatMessage
	createErr error
}

func (r *fakeMessageRepo) Create(ctx context.Context, message *entity.ChatMessage) error {
	if r.createErr != nil {
		return r.createErr
	}
	r.messages = append(r.messages, message)
	return nil
}

func (r *fakeMessageRepo) FindRecentBySessionId(ctx context.Context, sessionId uuid.UUID, limit int) ([]*entity.ChatMessage, error) {
	all, _ := r.FindBySessionId(ctx, sessionId)
	if len(all) > limit {
		all = all[len(all)-limit:]
	}
	return all, nil
}

func (r *fakeMessageRepo) FindBySessionId(ctx context.Context, sessionId uuid.UUID) ([]*entity.ChatMessage, error) {
	var out []*entity.ChatMessage
	for _, m := range r.messages {
		if m.ChatSessionId == sessionId {
			out = append(out, m)
		}
	}
	return out, nil
}

func (r *fakeMessageRepo) CountBySessionId(ctx context.Context, sessionId uuid.UUID) (int64, error) {
	all, _ := r.FindBySessionId(ctx, sessionId)
	return int64(len(all)), nil
}

func (r *fakeMessageRepo) DeleteBySessionId(ctx context.Context, sessionId uuid.UUID) (int64, error) {
	var kept []*entity.ChatMessage
	var removed int64
	for _, m := range r.messages {
		if m.ChatSessionId == sessionId {
			removed++
			continue
		}
		kept = append(kept, m)
	}
	r.messages = kept
	return removed, nil
}

// Provider doubles.

type fakeEmbedder struct {
	embedFn func(text string) ([]float32, error)
	texts   []string
}

func (f *fakeEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	f.texts = append(f.texts, text)
	if f.embedFn != nil {
		return f.embedFn(text)
	}
	return []float32{0.1, 0.2, 0.3}, nil
}

type fakeLLM struct {
	chatFn      func(history []llm.Message) (string, error)
	gotMessages []llm.Message
	gotOptions  llm.Options
	calls       int
}

func (f *fakeLLM) Chat(ctx context.Context, history []llm.Message, opts ...llm.Option) (string, error) {
	f.calls++
	f.gotMessages = history
	options := llm.Options{}
	for _, opt := range opts {
		opt(&options)
	}
	f.gotOptions = options
	if f.chatFn != nil {
		return f.chatFn(history)
	}
	return "stub answer", nil
}

func (f *fakeLLM) Generate(ctx context.Context, prompt string, opts ...llm.Option) (string, error) {
	return f.Chat(ctx, []llm.Message{{Role: "user", Content: prompt}}, opts...)
}

type fakePublisher struct {
	payloads [][]byte
	err      error
}

func (f *fakePublisher) Publish(ctx context.Context, payload []byte) error {
	if f.err != nil {
		return f.err
	}
	f.payloads = append(f.payloads, payload)
	return nil
}

type noopLogger struct{}

func (noopLogger) Debug(module, message string, details map[string]interface{}) {}
func (noopLogger) Info(module, message string, details map[string]interface{})  {}
func (noopLogger) Warn(module, message string, details map[string]interface{})  {}
func (noopLogger) Error(module, message string, details map[string]interface{}) {}
func (noopLogger) Sync() error                                                  { return nil }
