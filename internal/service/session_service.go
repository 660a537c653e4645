package service

import (
	"context"
	"fmt"
	"time"

	"rag-kb-be/internal/apperror"
	"rag-kb-be/internal/dto"
	"rag-kb-be/internal/entity"
	"rag-kb-be/internal/pkg/logger"
	"rag-kb-be/internal/repository/unitofwork"

	"github.com/google/uuid"
)

type ISessionService interface {
	// CreateSession activates a fresh session. At most one session is
	// active at a time; any previously active session is deactivated in
	// the same transaction.
	CreateSession(ctx context.Context) (*dto.CreateSessionResponse, error)

	GetActiveSession(ctx context.Context) (*dto.CreateSessionResponse, error)
	GetAllSessions(ctx context.Context) (*dto.AllSessionsResponse, error)
	GetSessionHistory(ctx context.Context, token uuid.UUID) (*dto.SessionHistoryResponse, error)
	DeactivateSession(ctx context.Context, token uuid.UUID) error

	// DeleteSession removes the session and its messages, reporting how
	// many messages were removed.
	DeleteSession(ctx context.Context, token uuid.UUID) (*dto.DeleteSessionResponse, error)
}

type sessionService struct {
	uowFactory unitofwork.RepositoryFactory
	logger     logger.ILogger
}

func NewSessionService(uowFactory unitofwork.RepositoryFactory, sysLogger logger.ILogger) ISessionService {
	return &sessionService{
		uowFactory: uowFactory,
		logger:     sysLogger,
	}
}

func (s *sessionService) CreateSession(ctx context.Context) (*dto.CreateSessionResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("%w: begin transaction: %v", apperror.ErrStorage, err)
	}
	defer uow.Rollback()

	sessionRepo := uow.ChatSessionRepository()
	if err := sessionRepo.DeactivateAll(ctx); err != nil {
		return nil, fmt.Errorf("%w: deactivate sessions: %v", apperror.ErrStorage, err)
	}

	now := time.Now()
	session := &entity.ChatSession{
		Id:           uuid.New(),
		SessionToken: uuid.New(),
		IsActive:     true,
		CreatedAt:    now,
		LastActivity: now,
	}
	if err := sessionRepo.Create(ctx, session); err != nil {
		return nil, fmt.Errorf("%w: create session: %v", apperror.ErrStorage, err)
	}

	if err := uow.Commit(); err != nil {
		return nil, fmt.Errorf("%w: commit: %v", apperror.ErrStorage, err)
	}

	s.logger.Info("session", "Chat session created", map[string]interface{}{
		"session_token": session.SessionToken.String(),
	})

	return &dto.CreateSessionResponse{
		SessionToken: session.SessionToken,
		IsActive:     session.IsActive,
		CreatedAt:    session.CreatedAt,
	}, nil
}

func (s *sessionService) GetActiveSession(ctx context.Context) (*dto.CreateSessionResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	session, err := uow.ChatSessionRepository().FindActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: find active session: %v", apperror.ErrStorage, err)
	}
	if session == nil {
		return nil, fmt.Errorf("%w: no active session", apperror.ErrNotFound)
	}

	return &dto.CreateSessionResponse{
		SessionToken: session.SessionToken,
		IsActive:     session.IsActive,
		CreatedAt:    session.CreatedAt,
	}, nil
}

func (s *sessionService) GetAllSessions(ctx context.Context) (*dto.AllSessionsResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	sessions, err := uow.ChatSessionRepository().FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: list sessions: %v", apperror.ErrStorage, err)
	}

	messageRepo := uow.ChatMessageRepository()
	summaries := make([]*dto.SessionSummary, 0, len(sessions))
	for _, session := range sessions {
		count, err := messageRepo.CountBySessionId(ctx, session.Id)
		if err != nil {
			return nil, fmt.Errorf("%w: count messages: %v", apperror.ErrStorage, err)
		}
		summaries = append(summaries, &dto.SessionSummary{
			SessionToken: session.SessionToken,
			MessageCount: count,
			IsActive:     session.IsActive,
			CreatedAt:    session.CreatedAt,
			LastActivity: session.LastActivity,
		})
	}

	return &dto.AllSessionsResponse{Sessions: summaries}, nil
}

func (s *sessionService) GetSessionHistory(ctx context.Context, token uuid.UUID) (*dto.SessionHistoryResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	session, err := s.findSessionByToken(ctx, uow, token)
	if err != nil {
		return nil, err
	}

	messages, err := uow.ChatMessageRepository().FindBySessionId(ctx, session.Id)
	if err != nil {
		return nil, fmt.Errorf("%w: load messages: %v", apperror.ErrStorage, err)
	}

	messageDTOs := make([]*dto.ChatMessageDTO, 0, len(messages))
	for _, msg := range messages {
		messageDTOs = append(messageDTOs, &dto.ChatMessageDTO{
			Id:        msg.Id,
			Role:      msg.Role,
			Content:   msg.Content,
			CreatedAt: msg.CreatedAt,
		})
	}

	return &dto.SessionHistoryResponse{
		SessionToken: session.SessionToken,
		Messages:     messageDTOs,
	}, nil
}

func (s *sessionService) DeactivateSession(ctx context.Context, token uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	if err := uow.ChatSessionRepository().Deactivate(ctx, token); err != nil {
		session, findErr := uow.ChatSessionRepository().FindByToken(ctx, token)
		if findErr == nil && session == nil {
			return fmt.Errorf("%w: session %s", apperror.ErrNotFound, token)
		}
		return fmt.Errorf("%w: deactivate session: %v", apperror.ErrStorage, err)
	}

	return nil
}

func (s *sessionService) DeleteSession(ctx context.Context, token uuid.UUID) (*dto.DeleteSessionResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	session, err := s.findSessionByToken(ctx, uow, token)
	if err != nil {
		return nil, err
	}

	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("%w: begin transaction: %v", apperror.ErrStorage, err)
	}
	defer uow.Rollback()

	deleted, err := uow.ChatMessageRepository().DeleteBySessionId(ctx, session.Id)
	if err != nil {
		return nil, fmt.Errorf("%w: delete messages: %v", apperror.ErrStorage, err)
	}
	if err := uow.ChatSessionRepository().Delete(ctx, session.Id); err != nil {
		return nil, fmt.Errorf("%w: delete session: %v", apperror.ErrStorage, err)
	}

	if err := uow.Commit(); err != nil {
		return nil, fmt.Errorf("%w: commit: %v", apperror.ErrStorage, err)
	}

	s.logger.Info("session", "Chat session deleted", map[string]interface{}{
		"session_token":    token.String(),
		"deleted_messages": deleted,
	})

	return &dto.DeleteSessionResponse{
		SessionToken:    token,
		DeletedMessages: deleted,
	}, nil
}

func (s *sessionService) findSessionByToken(ctx context.Context, uow unitofwork.UnitOfWork, token uuid.UUID) (*entity.ChatSession, error) {
	session, err := uow.ChatSessionRepository().FindByToken(ctx, token)
	if err != nil {
		return nil, fmt.Errorf("%w: find session: %v", apperror.ErrStorage, err)
	}
	if session == nil {
		return nil, fmt.Errorf("%w: session %s", apperror.ErrNotFound, token)
	}
	return session, nil
}
