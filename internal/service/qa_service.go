package service

import (
	"context"
	"time"

	"rag-kb-be/internal/config"
	"rag-kb-be/internal/constant"
	"rag-kb-be/internal/dto"
	"rag-kb-be/internal/entity"
	"rag-kb-be/internal/pkg/logger"
	"rag-kb-be/internal/repository/contract"
	"rag-kb-be/internal/repository/unitofwork"
	"rag-kb-be/pkg/embedding"
	"rag-kb-be/pkg/llm"
	"rag-kb-be/pkg/rag/prompt"

	"github.com/google/uuid"
)

type IQaService interface {
	// Answer runs retrieval-augmented answering for one query. It never
	// returns an error to the caller; every internal failure collapses
	// into a fixed answer string and is logged.
	Answer(ctx context.Context, request *dto.QueryRequest) *dto.QueryResponse
}

type qaService struct {
	uowFactory        unitofwork.RepositoryFactory
	embeddingProvider embedding.Provider
	llmProvider       llm.Provider
	logger            logger.ILogger
	cfg               config.IngestConfig
}

func NewQaService(
	uowFactory unitofwork.RepositoryFactory,
	embeddingProvider embedding.Provider,
	llmProvider llm.Provider,
	sysLogger logger.ILogger,
	cfg config.IngestConfig,
) IQaService {
	return &qaService{
		uowFactory:        uowFactory,
		embeddingProvider: embeddingProvider,
		llmProvider:       llmProvider,
		logger:            sysLogger,
		cfg:               cfg,
	}
}

func (s *qaService) Answer(ctx context.Context, request *dto.QueryRequest) *dto.QueryResponse {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	session := s.resolveSession(ctx, uow, request.SessionToken)

	queryVector, err := s.embeddingProvider.Embed(ctx, request.Query)
	if err != nil {
		return s.errorResponse(request, session, "Failed to embed query", err)
	}

	k := request.K
	if k <= 0 {
		k = s.cfg.SearchK
	}
	retrieved, err := uow.EmbeddingRepository().SearchSimilar(ctx, queryVector, k)
	if err != nil {
		return s.errorResponse(request, session, "Similarity search failed", err)
	}

	// Empty retrieval returns the fixed no-info answer before any
	// history or persistence work: the exchange is not recorded and the
	// session's last activity does not move.
	if len(retrieved) == 0 {
		response := &dto.QueryResponse{
			Answer:  constant.NoRelevantInfoMessage,
			Sources: []string{},
		}
		if session != nil {
			response.SessionToken = &session.SessionToken
		}
		return response
	}

	contextChunks := make([]string, 0, len(retrieved))
	for _, chunk := range retrieved {
		contextChunks = append(contextChunks, chunk.Content)
	}

	history := s.loadHistory(ctx, uow, session)

	answer, err := s.llmProvider.Chat(ctx, []llm.Message{
		{Role: "system", Content: constant.QASystemPrompt},
		{Role: "user", Content: prompt.Build(request.Query, contextChunks, history)},
	},
		llm.WithTemperature(constant.AnswerTemperature),
		llm.WithMaxTokens(constant.AnswerMaxTokens),
	)
	if err != nil {
		return s.errorResponse(request, session, "Completion failed", err)
	}

	response := &dto.QueryResponse{
		Answer:  answer,
		Sources: dedupeSources(retrieved),
	}
	s.finishWithSession(ctx, uow, session, request.Query, response)
	return response
}

// resolveSession looks up the session behind an optional token. A token
// that matches no session degrades to stateless answering rather than
// failing the query.
func (s *qaService) resolveSession(ctx context.Context, uow unitofwork.UnitOfWork, token *uuid.UUID) *entity.ChatSession {
	if token == nil {
		return nil
	}

	session, err := uow.ChatSessionRepository().FindByToken(ctx, *token)
	if err != nil {
		s.logger.Warn("qa", "Failed to look up chat session", map[string]interface{}{
			"session_token": token.String(),
			"error":         err.Error(),
		})
		return nil
	}
	if session == nil {
		s.logger.Warn("qa", "Unknown session token on query", map[string]interface{}{
			"session_token": token.String(),
		})
	}
	return session
}

func (s *qaService) loadHistory(ctx context.Context, uow unitofwork.UnitOfWork, session *entity.ChatSession) []*entity.ChatMessage {
	if session == nil {
		return nil
	}

	history, err := uow.ChatMessageRepository().FindRecentBySessionId(ctx, session.Id, constant.ChatHistoryLimit)
	if err != nil {
		s.logger.Warn("qa", "Failed to load chat history", map[string]interface{}{
			"session_id": session.Id.String(),
			"error":      err.Error(),
		})
		return nil
	}
	return history
}

// finishWithSession records the exchange on the session, if any, and
// stamps the response with the session token. Persistence failures do
// not change the answer the caller gets.
func (s *qaService) finishWithSession(ctx context.Context, uow unitofwork.UnitOfWork, session *entity.ChatSession, query string, response *dto.QueryResponse) {
	if session == nil {
		return
	}

	response.SessionToken = &session.SessionToken

	if err := s.persistExchange(ctx, uow, session, query, response.Answer); err != nil {
		s.logger.Error("qa", "Failed to persist chat exchange", map[string]interface{}{
			"session_id": session.Id.String(),
			"error":      err.Error(),
		})
	}
}

// persistExchange stores the user question and the assistant answer as
// one transaction and bumps the session's last activity.
func (s *qaService) persistExchange(ctx context.Context, uow unitofwork.UnitOfWork, session *entity.ChatSession, query, answer string) error {
	if err := uow.Begin(ctx); err != nil {
		return err
	}
	defer uow.Rollback()

	messageRepo := uow.ChatMessageRepository()
	now := time.Now()
	if err := messageRepo.Create(ctx, &entity.ChatMessage{
		Id:            uuid.New(),
		ChatSessionId: session.Id,
		Role:          constant.ChatMessageRoleUser,
		Content:       query,
		CreatedAt:     now,
	}); err != nil {
		return err
	}
	if err := messageRepo.Create(ctx, &entity.ChatMessage{
		Id:            uuid.New(),
		ChatSessionId: session.Id,
		Role:          constant.ChatMessageRoleAssistant,
		Content:       answer,
		CreatedAt:     now,
	}); err != nil {
		return err
	}
	if err := uow.ChatSessionRepository().TouchLastActivity(ctx, session.Id); err != nil {
		return err
	}

	return uow.Commit()
}

func (s *qaService) errorResponse(request *dto.QueryRequest, session *entity.ChatSession, reason string, err error) *dto.QueryResponse {
	s.logger.Error("qa", reason, map[string]interface{}{
		"query": request.Query,
		"error": err.Error(),
	})

	response := &dto.QueryResponse{
		Answer:  constant.GenericAnswerErrorMessage,
		Sources: []string{},
	}
	if session != nil {
		response.SessionToken = &session.SessionToken
	}
	return response
}

// dedupeSources keeps each source filename once, in retrieval rank order.
func dedupeSources(retrieved []*contract.RetrievedChunk) []string {
	seen := make(map[string]struct{}, len(retrieved))
	sources := make([]string, 0, len(retrieved))
	for _, chunk := range retrieved {
		if _, ok := seen[chunk.SourceFilename]; ok {
			continue
		}
		seen[chunk.SourceFilename] = struct{}{}
		sources = append(sources, chunk.SourceFilename)
	}
	return sources
}
