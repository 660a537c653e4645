package service

import (
	"context"
	"fmt"

	"rag-kb-be/internal/apperror"
	"rag-kb-be/internal/dto"
	"rag-kb-be/internal/pkg/logger"
	"rag-kb-be/internal/repository/unitofwork"

	"github.com/google/uuid"
)

type ICollectionService interface {
	GetAllCollections(ctx context.Context) ([]*dto.CollectionResponse, error)
	GetCollectionDocuments(ctx context.Context, collectionId uuid.UUID) ([]*dto.DocumentResponse, error)

	// DeleteCollection removes the collection together with its
	// documents, chunks and embeddings.
	DeleteCollection(ctx context.Context, collectionId uuid.UUID) error

	// DeleteDocument removes one document together with its chunks and
	// embeddings.
	DeleteDocument(ctx context.Context, documentId uuid.UUID) error
}

type collectionService struct {
	uowFactory unitofwork.RepositoryFactory
	logger     logger.ILogger
}

func NewCollectionService(uowFactory unitofwork.RepositoryFactory, sysLogger logger.ILogger) ICollectionService {
	return &collectionService{
		uowFactory: uowFactory,
		logger:     sysLogger,
	}
}

func (s *collectionService) GetAllCollections(ctx context.Context) ([]*dto.CollectionResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	collections, err := uow.CollectionRepository().FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: list collections: %v", apperror.ErrStorage, err)
	}

	documentRepo := uow.DocumentRepository()
	responses := make([]*dto.CollectionResponse, 0, len(collections))
	for _, collection := range collections {
		documents, err := documentRepo.FindByCollectionId(ctx, collection.Id)
		if err != nil {
			return nil, fmt.Errorf("%w: list documents: %v", apperror.ErrStorage, err)
		}
		responses = append(responses, &dto.CollectionResponse{
			Id:            collection.Id,
			Name:          collection.Name,
			Description:   collection.Description,
			DocumentCount: len(documents),
			CreatedAt:     collection.CreatedAt,
		})
	}

	return responses, nil
}

func (s *collectionService) GetCollectionDocuments(ctx context.Context, collectionId uuid.UUID) ([]*dto.DocumentResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	collection, err := uow.CollectionRepository().FindById(ctx, collectionId)
	if err != nil {
		return nil, fmt.Errorf("%w: find collection: %v", apperror.ErrStorage, err)
	}
	if collection == nil {
		return nil, fmt.Errorf("%w: collection %s", apperror.ErrNotFound, collectionId)
	}

	documents, err := uow.DocumentRepository().FindByCollectionId(ctx, collectionId)
	if err != nil {
		return nil, fmt.Errorf("%w: list documents: %v", apperror.ErrStorage, err)
	}

	responses := make([]*dto.DocumentResponse, 0, len(documents))
	for _, document := range documents {
		responses = append(responses, &dto.DocumentResponse{
			Id:        document.Id,
			Filename:  document.Filename,
			DocType:   document.DocType,
			Title:     document.Title,
			CreatedAt: document.CreatedAt,
		})
	}

	return responses, nil
}

func (s *collectionService) DeleteCollection(ctx context.Context, collectionId uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	collection, err := uow.CollectionRepository().FindById(ctx, collectionId)
	if err != nil {
		return fmt.Errorf("%w: find collection: %v", apperror.ErrStorage, err)
	}
	if collection == nil {
		return fmt.Errorf("%w: collection %s", apperror.ErrNotFound, collectionId)
	}

	if err := uow.CollectionRepository().Delete(ctx, collectionId); err != nil {
		return fmt.Errorf("%w: delete collection: %v", apperror.ErrStorage, err)
	}

	s.logger.Info("collection", "Collection deleted", map[string]interface{}{
		"collection_id": collectionId.String(),
		"name":          collection.Name,
	})
	return nil
}

func (s *collectionService) DeleteDocument(ctx context.Context, documentId uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	document, err := uow.DocumentRepository().FindById(ctx, documentId)
	if err != nil {
		return fmt.Errorf("%w: find document: %v", apperror.ErrStorage, err)
	}
	if document == nil {
		return fmt.Errorf("%w: document %s", apperror.ErrNotFound, documentId)
	}

	if err := uow.DocumentRepository().Delete(ctx, documentId); err != nil {
		return fmt.Errorf("%w: delete document: %v", apperror.ErrStorage, err)
	}

	s.logger.Info("collection", "Document deleted", map[string]interface{}{
		"document_id": documentId.String(),
		"filename":    document.Filename,
	})
	return nil
}
