package repos

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/platewire/eatery-backend/internal/logger"
	"github.com/platewire/eatery-backend/internal/types"
)

type EateryRepo interface {
	Create(ctx context.Context, tx *gorm.DB, eatery *types.Eatery) (*types.Eatery, error)
	GetByID(ctx context.Context, tx *gorm.DB, eateryID uint) (*types.Eatery, error)
	List(ctx context.Context, tx *gorm.DB) ([]*types.Eatery, error)
	UpdateStats(ctx context.Context, tx *gorm.DB, eateryID uint, updates map[string]interface{}) error
	Delete(ctx context.Context, tx *gorm.DB, eateryID uint) error
}

type eateryRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewEateryRepo(db *gorm.DB, baseLog *logger.Logger) EateryRepo {
	repoLog := baseLog.With("repo", "EateryRepo")
	return &eateryRepo{db: db, log: repoLog}
}

func (er *eateryRepo) Create(ctx context.Context, tx *gorm.DB, eatery *types.Eatery) (*types.Eatery, error) {
	transaction := tx
	if transaction == nil {
		transaction = er.db
	}
	if err := transaction.WithContext(ctx).Create(eatery).Error; err != nil {
		return nil, err
	}
	return eatery, nil
}

func (er *eateryRepo) GetByID(ctx context.Context, tx *gorm.DB, eateryID uint) (*types.Eatery, error) {
	transaction := tx
	if transaction == nil {
		transaction = er.db
	}
	var result types.Eatery
	err := transaction.WithContext(ctx).
		Where("id = ?", eateryID).
		First(&result).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &result, nil
}

func (er *eateryRepo) List(ctx context.Context, tx *gorm.DB) ([]*types.Eatery, error) {
	transaction := tx
	if transaction == nil {
		transaction = er.db
	}
	var results []*types.Eatery
	if err := transaction.WithContext(ctx).
		Order("id ASC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (er *eateryRepo) UpdateStats(ctx context.Context, tx *gorm.DB, eateryID uint, updates map[string]interface{}) error {
	transaction := tx
	if transaction == nil {
		transaction = er.db
	}
	return transaction.WithContext(ctx).
		Model(&types.Eatery{}).
		Where("id = ?", eateryID).
		Updates(updates).Error
}

func (er *eateryRepo) Delete(ctx context.Context, tx *gorm.DB, eateryID uint) error {
	transaction := tx
	if transaction == nil {
		transaction = er.db
	}
	return transaction.WithContext(ctx).
		Where("id = ?", eateryID).
		Delete(&types.Eatery{}).Error
}
