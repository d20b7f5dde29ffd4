package repos

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/platewire/eatery-backend/internal/logger"
	"github.com/platewire/eatery-backend/internal/types"
)

type ConnectionRepo interface {
	Create(ctx context.Context, tx *gorm.DB, connection *types.Connection) (*types.Connection, error)
	GetByID(ctx context.Context, tx *gorm.DB, connectionID uint) (*types.Connection, error)
	List(ctx context.Context, tx *gorm.DB) ([]*types.Connection, error)
	ListByUser(ctx context.Context, tx *gorm.DB, userID uint) ([]*types.Connection, error)
	ExistsForPair(ctx context.Context, tx *gorm.DB, followerID, followingID uint) (bool, error)
	Delete(ctx context.Context, tx *gorm.DB, connectionID uint) error
	DeleteByUser(ctx context.Context, tx *gorm.DB, userID uint) error
}

type connectionRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewConnectionRepo(db *gorm.DB, baseLog *logger.Logger) ConnectionRepo {
	repoLog := baseLog.With("repo", "ConnectionRepo")
	return &connectionRepo{db: db, log: repoLog}
}

func (cr *connectionRepo) Create(ctx context.Context, tx *gorm.DB, connection *types.Connection) (*types.Connection, error) {
	transaction := tx
	if transaction == nil {
		transaction = cr.db
	}
	if err := transaction.WithContext(ctx).Create(connection).Error; err != nil {
		return nil, err
	}
	return connection, nil
}

func (cr *connectionRepo) GetByID(ctx context.Context, tx *gorm.DB, connectionID uint) (*types.Connection, error) {
	transaction := tx
	if transaction == nil {
		transaction = cr.db
	}
	var result types.Connection
	err := transaction.WithContext(ctx).
		Where("id = ?", connectionID).
		First(&result).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &result, nil
}

func (cr *connectionRepo) List(ctx context.Context, tx *gorm.DB) ([]*types.Connection, error) {
	transaction := tx
	if transaction == nil {
		transaction = cr.db
	}
	var results []*types.Connection
	if err := transaction.WithContext(ctx).
		Order("id ASC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

// ListByUser returns every connection the user participates in, as follower
// or as followee.
func (cr *connectionRepo) ListByUser(ctx context.Context, tx *gorm.DB, userID uint) ([]*types.Connection, error) {
	transaction := tx
	if transaction == nil {
		transaction = cr.db
	}
	var results []*types.Connection
	if err := transaction.WithContext(ctx).
		Where("follower_id = ? OR following_id = ?", userID, userID).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (cr *connectionRepo) ExistsForPair(ctx context.Context, tx *gorm.DB, followerID, followingID uint) (bool, error) {
	transaction := tx
	if transaction == nil {
		transaction = cr.db
	}
	var count int64
	if err := transaction.WithContext(ctx).
		Model(&types.Connection{}).
		Where("follower_id = ? AND following_id = ?", followerID, followingID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (cr *connectionRepo) Delete(ctx context.Context, tx *gorm.DB, connectionID uint) error {
	transaction := tx
	if transaction == nil {
		transaction = cr.db
	}
	return transaction.WithContext(ctx).
		Where("id = ?", connectionID).
		Delete(&types.Connection{}).Error
}

func (cr *connectionRepo) DeleteByUser(ctx context.Context, tx *gorm.DB, userID uint) error {
	transaction := tx
	if transaction == nil {
		transaction = cr.db
	}
	return transaction.WithContext(ctx).
		Where("follower_id = ? OR following_id = ?", userID, userID).
		Delete(&types.Connection{}).Error
}
