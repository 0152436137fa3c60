package repository

import (
	"context"
	"errors"

	"github.com/sangkips/gestor-mesas/internal/domain/entity"
	domainRepo "github.com/sangkips/gestor-mesas/internal/domain/repository"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type collectionRepository struct {
	db *gorm.DB
}

// NewCollectionRepository creates a collection store backed by the stored_collections table
func NewCollectionRepository(db *gorm.DB) domainRepo.CollectionRepository {
	return &collectionRepository{db: db}
}

func (r *collectionRepository) Get(ctx context.Context, key string) ([]byte, error) {
	var row entity.StoredCollection
	err := r.db.WithContext(ctx).Where(&entity.StoredCollection{Key: key}).First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return []byte(row.Payload), nil
}

func (r *collectionRepository) Put(ctx context.Context, key string, payload []byte) error {
	row := entity.StoredCollection{Key: key, Payload: string(payload)}
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"payload", "updated_at"}),
	}).Create(&row).Error
}
