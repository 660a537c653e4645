package implementation

import (
	"context"
	"errors"

	"rag-kb-be/internal/entity"
	"rag-kb-be/internal/mapper"
	"rag-kb-be/internal/model"
	"rag-kb-be/internal/repository/contract"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CollectionRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.LibraryMapper
}

func NewCollectionRepository(db *gorm.DB) contract.CollectionRepository {
	return &CollectionRepositoryImpl{
		db:     db,
		mapper: mapper.NewLibraryMapper(),
	}
}

func (r *CollectionRepositoryImpl) Create(ctx context.Context, collection *entity.Collection) error {
	m := r.mapper.CollectionToModel(collection)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*collection = *r.mapper.CollectionToEntity(m)
	return nil
}

func (r *CollectionRepositoryImpl) FindById(ctx context.Context, id uuid.UUID) (*entity.Collection, error) {
	var m model.Collection
	if err := r.db.WithContext(ctx).First(&m, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.CollectionToEntity(&m), nil
}

func (r *CollectionRepositoryImpl) FindByName(ctx context.Context, name string) (*entity.Collection, error) {
	var m model.Collection
	if err := r.db.WithContext(ctx).First(&m, "name = ?", name).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.CollectionToEntity(&m), nil
}

func (r *CollectionRepositoryImpl) FindAll(ctx context.Context) ([]*entity.Collection, error) {
	var models []*model.Collection
	if err := r.db.WithContext(ctx).Order("created_at ASC").Find(&models).Error; err != nil {
		return nil, err
	}
	entities := make([]*entity.Collection, len(models))
	for i, m := range models {
		entities[i] = r.mapper.CollectionToEntity(m)
	}
	return entities, nil
}

func (r *CollectionRepositoryImpl) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.Collection{}, "id = ?", id).Error
}
