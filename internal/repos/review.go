package repos

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/platewire/eatery-backend/internal/logger"
	"github.com/platewire/eatery-backend/internal/types"
)

// UserReviewCount is one row of the grouped ranking query: how many reviews
// a user has authored.
type UserReviewCount struct {
	UserID      uint  `gorm:"column:user_id"`
	ReviewCount int64 `gorm:"column:review_count"`
}

type ReviewRepo interface {
	Create(ctx context.Context, tx *gorm.DB, review *types.Review) (*types.Review, error)
	GetByID(ctx context.Context, tx *gorm.DB, reviewID uint) (*types.Review, error)
	List(ctx context.Context, tx *gorm.DB) ([]*types.Review, error)
	ListByUser(ctx context.Context, tx *gorm.DB, userID uint) ([]*types.Review, error)
	ListByEatery(ctx context.Context, tx *gorm.DB, eateryID uint) ([]*types.Review, error)
	ExistsForPair(ctx context.Context, tx *gorm.DB, userID, eateryID uint) (bool, error)
	CountsByUser(ctx context.Context, tx *gorm.DB) ([]UserReviewCount, error)
	Save(ctx context.Context, tx *gorm.DB, review *types.Review) error
	Delete(ctx context.Context, tx *gorm.DB, reviewID uint) error
	DeleteByUser(ctx context.Context, tx *gorm.DB, userID uint) error
	DeleteByEatery(ctx context.Context, tx *gorm.DB, eateryID uint) error
}

type reviewRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewReviewRepo(db *gorm.DB, baseLog *logger.Logger) ReviewRepo {
	repoLog := baseLog.With("repo", "ReviewRepo")
	return &reviewRepo{db: db, log: repoLog}
}

func (rr *reviewRepo) Create(ctx context.Context, tx *gorm.DB, review *types.Review) (*types.Review, error) {
	transaction := tx
	if transaction == nil {
		transaction = rr.db
	}
	if err := transaction.WithContext(ctx).Create(review).Error; err != nil {
		return nil, err
	}
	return review, nil
}

func (rr *reviewRepo) GetByID(ctx context.Context, tx *gorm.DB, reviewID uint) (*types.Review, error) {
	transaction := tx
	if transaction == nil {
		transaction = rr.db
	}
	var result types.Review
	err := transaction.WithContext(ctx).
		Where("id = ?", reviewID).
		First(&result).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &result, nil
}

func (rr *reviewRepo) List(ctx context.Context, tx *gorm.DB) ([]*types.Review, error) {
	transaction := tx
	if transaction == nil {
		transaction = rr.db
	}
	var results []*types.Review
	if err := transaction.WithContext(ctx).
		Order("id ASC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (rr *reviewRepo) ListByUser(ctx context.Context, tx *gorm.DB, userID uint) ([]*types.Review, error) {
	transaction := tx
	if transaction == nil {
		transaction = rr.db
	}
	var results []*types.Review
	if err := transaction.WithContext(ctx).
		Where("user_id = ?", userID).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (rr *reviewRepo) ListByEatery(ctx context.Context, tx *gorm.DB, eateryID uint) ([]*types.Review, error) {
	transaction := tx
	if transaction == nil {
		transaction = rr.db
	}
	var results []*types.Review
	if err := transaction.WithContext(ctx).
		Where("eatery_id = ?", eateryID).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (rr *reviewRepo) ExistsForPair(ctx context.Context, tx *gorm.DB, userID, eateryID uint) (bool, error) {
	transaction := tx
	if transaction == nil {
		transaction = rr.db
	}
	var count int64
	if err := transaction.WithContext(ctx).
		Model(&types.Review{}).
		Where("user_id = ? AND eatery_id = ?", userID, eateryID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// CountsByUser groups all reviews by author. Ordered by count descending with
// user id ascending as the tiebreak, so the ranking assignment downstream is
// deterministic.
func (rr *reviewRepo) CountsByUser(ctx context.Context, tx *gorm.DB) ([]UserReviewCount, error) {
	transaction := tx
	if transaction == nil {
		transaction = rr.db
	}
	var rows []UserReviewCount
	if err := transaction.WithContext(ctx).
		Model(&types.Review{}).
		Select("user_id, COUNT(*) AS review_count").
		Group("user_id").
		Order("review_count DESC, user_id ASC").
		Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (rr *reviewRepo) Save(ctx context.Context, tx *gorm.DB, review *types.Review) error {
	transaction := tx
	if transaction == nil {
		transaction = rr.db
	}
	return transaction.WithContext(ctx).Save(review).Error
}

func (rr *reviewRepo) Delete(ctx context.Context, tx *gorm.DB, reviewID uint) error {
	transaction := tx
	if transaction == nil {
		transaction = rr.db
	}
	return transaction.WithContext(ctx).
		Where("id = ?", reviewID).
		Delete(&types.Review{}).Error
}

func (rr *reviewRepo) DeleteByUser(ctx context.Context, tx *gorm.DB, userID uint) error {
	transaction := tx
	if transaction == nil {
		transaction = rr.db
	}
	return transaction.WithContext(ctx).
		Where("user_id = ?", userID).
		Delete(&types.Review{}).Error
}

func (rr *reviewRepo) DeleteByEatery(ctx context.Context, tx *gorm.DB, eateryID uint) error {
	transaction := tx
	if transaction == nil {
		transaction = rr.db
	}
	return transaction.WithContext(ctx).
		Where("eatery_id = ?", eateryID).
		Delete(&types.Review{}).Error
}
