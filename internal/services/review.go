package services

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/platewire/eatery-backend/internal/apierr"
	"github.com/platewire/eatery-backend/internal/logger"
	"github.com/platewire/eatery-backend/internal/repos"
	"github.com/platewire/eatery-backend/internal/types"
)

// ReviewService owns the review lifecycle. Every mutation runs in a single
// DB transaction together with the recomputations it triggers: create and
// delete re-rank all reviewing users and refresh the author's and eatery's
// averages; edit refreshes the averages only, since the review count is
// unchanged. Two concurrent mutations are not ordered against each other
// beyond per-transaction atomicity; a stale recomputation can overwrite a
// fresher one. Accepted limitation.
type ReviewService interface {
	List(ctx context.Context, tx *gorm.DB) ([]*types.Review, error)
	Get(ctx context.Context, tx *gorm.DB, reviewID uint) (*types.Review, error)
	Create(ctx context.Context, userID, eateryID uint, rating float64, reviewText string) (*types.Review, error)
	Edit(ctx context.Context, reviewID uint, rating *float64, reviewText *string) (*types.Review, error)
	Delete(ctx context.Context, reviewID uint) (*types.Review, error)
}

type reviewService struct {
	db         *gorm.DB
	log        *logger.Logger
	userRepo   repos.UserRepo
	eateryRepo repos.EateryRepo
	reviewRepo repos.ReviewRepo
	stats      StatsService
}

func NewReviewService(db *gorm.DB, baseLog *logger.Logger, userRepo repos.UserRepo, eateryRepo repos.EateryRepo, reviewRepo repos.ReviewRepo, stats StatsService) ReviewService {
	serviceLog := baseLog.With("service", "ReviewService")
	return &reviewService{
		db:         db,
		log:        serviceLog,
		userRepo:   userRepo,
		eateryRepo: eateryRepo,
		reviewRepo: reviewRepo,
		stats:      stats,
	}
}

func (rs *reviewService) List(ctx context.Context, tx *gorm.DB) ([]*types.Review, error) {
	return rs.reviewRepo.List(ctx, tx)
}

func (rs *reviewService) Get(ctx context.Context, tx *gorm.DB, reviewID uint) (*types.Review, error) {
	review, err := rs.reviewRepo.GetByID(ctx, tx, reviewID)
	if err != nil {
		return nil, fmt.Errorf("load review: %w", err)
	}
	if review == nil {
		return nil, apierr.NotFound("review_not_found", fmt.Errorf("review %d not found", reviewID))
	}
	return review, nil
}

func validRating(rating float64) bool {
	return rating >= types.MinRating && rating <= types.MaxRating
}

func clearRankingIfUnreviewed(ctx context.Context, tx *gorm.DB, userRepo repos.UserRepo, userID uint) error {
	user, err := userRepo.GetByID(ctx, tx, userID)
	if err != nil {
		return fmt.Errorf("reload user: %w", err)
	}
	if user == nil || user.RatingsCount > 0 || user.Ranking == 0 {
		return nil
	}
	return userRepo.UpdateStats(ctx, tx, userID, map[string]interface{}{"ranking": 0})
}

func (rs *reviewService) Create(ctx context.Context, userID, eateryID uint, rating float64, reviewText string) (*types.Review, error) {
	if !validRating(rating) {
		return nil, apierr.BadRequest("invalid_rating", fmt.Errorf("rating must be between %v and %v", types.MinRating, types.MaxRating))
	}

	var out *types.Review
	if err := rs.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		user, err := rs.userRepo.GetByID(ctx, tx, userID)
		if err != nil {
			return fmt.Errorf("load user: %w", err)
		}
		if user == nil {
			return apierr.NotFound("user_not_found", fmt.Errorf("user %d not found", userID))
		}
		eatery, err := rs.eateryRepo.GetByID(ctx, tx, eateryID)
		if err != nil {
			return fmt.Errorf("load eatery: %w", err)
		}
		if eatery == nil {
			return apierr.NotFound("eatery_not_found", fmt.Errorf("eatery %d not found", eateryID))
		}
		exists, err := rs.reviewRepo.ExistsForPair(ctx, tx, userID, eateryID)
		if err != nil {
			return fmt.Errorf("check review pair: %w", err)
		}
		if exists {
			return apierr.BadRequest("duplicate_review", fmt.Errorf("user %d already reviewed eatery %d", userID, eateryID))
		}

		review := &types.Review{
			UserID:     userID,
			EateryID:   eateryID,
			Rating:     rating,
			ReviewText: reviewText,
			Timestamp:  time.Now(),
		}
		if _, err := rs.reviewRepo.Create(ctx, tx, review); err != nil {
			return fmt.Errorf("create review: %w", err)
		}

		if err := rs.stats.RecomputeRankings(ctx, tx); err != nil {
			return err
		}
		if err := rs.stats.RecomputeUserStats(ctx, tx, userID); err != nil {
			return err
		}
		if err := rs.stats.RecomputeEateryStats(ctx, tx, eateryID); err != nil {
			return err
		}

		out = review
		return nil
	}); err != nil {
		rs.log.Warn("Create review failed", "error", err, "user_id", userID, "eatery_id", eateryID)
		return nil, err
	}
	return out, nil
}

func (rs *reviewService) Edit(ctx context.Context, reviewID uint, rating *float64, reviewText *string) (*types.Review, error) {
	if rating != nil && !validRating(*rating) {
		return nil, apierr.BadRequest("invalid_rating", fmt.Errorf("rating must be between %v and %v", types.MinRating, types.MaxRating))
	}

	var out *types.Review
	if err := rs.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		review, err := rs.reviewRepo.GetByID(ctx, tx, reviewID)
		if err != nil {
			return fmt.Errorf("load review: %w", err)
		}
		if review == nil {
			return apierr.NotFound("review_not_found", fmt.Errorf("review %d not found", reviewID))
		}

		if rating != nil {
			review.Rating = *rating
		}
		if reviewText != nil {
			review.ReviewText = *reviewText
		}
		review.Timestamp = time.Now()
		if err := rs.reviewRepo.Save(ctx, tx, review); err != nil {
			return fmt.Errorf("save review: %w", err)
		}

		// Count is unchanged, so rankings stay put.
		if err := rs.stats.RecomputeUserStats(ctx, tx, review.UserID); err != nil {
			return err
		}
		if err := rs.stats.RecomputeEateryStats(ctx, tx, review.EateryID); err != nil {
			return err
		}

		out = review
		return nil
	}); err != nil {
		rs.log.Warn("Edit review failed", "error", err, "review_id", reviewID)
		return nil, err
	}
	return out, nil
}

func (rs *reviewService) Delete(ctx context.Context, reviewID uint) (*types.Review, error) {
	var out *types.Review
	if err := rs.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		review, err := rs.reviewRepo.GetByID(ctx, tx, reviewID)
		if err != nil {
			return fmt.Errorf("load review: %w", err)
		}
		if review == nil {
			return apierr.NotFound("review_not_found", fmt.Errorf("review %d not found", reviewID))
		}

		if err := rs.reviewRepo.Delete(ctx, tx, reviewID); err != nil {
			return fmt.Errorf("delete review: %w", err)
		}

		// Recompute from the state after removal.
		if err := rs.stats.RecomputeRankings(ctx, tx); err != nil {
			return err
		}
		if err := rs.stats.RecomputeUserStats(ctx, tx, review.UserID); err != nil {
			return err
		}
		if err := rs.stats.RecomputeEateryStats(ctx, tx, review.EateryID); err != nil {
			return err
		}
		// The ranking pass never sees users with zero reviews, so clear the
		// author's rank here if this was their last one.
		if err := clearRankingIfUnreviewed(ctx, tx, rs.userRepo, review.UserID); err != nil {
			return err
		}

		out = review
		return nil
	}); err != nil {
		rs.log.Warn("Delete review failed", "error", err, "review_id", reviewID)
		return nil, err
	}
	return out, nil
}
