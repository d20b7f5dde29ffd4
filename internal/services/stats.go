package services

import (
	"context"
	"fmt"
	"math"

	"gorm.io/gorm"

	"github.com/platewire/eatery-backend/internal/apierr"
	"github.com/platewire/eatery-backend/internal/logger"
	"github.com/platewire/eatery-backend/internal/repos"
)

// StatsService recomputes the derived fields on users and eateries from the
// reviews currently in the store. All three routines are stateless
// read-then-write passes, so running any of them twice without an intervening
// mutation is a no-op.
type StatsService interface {
	// RecomputeRankings rewrites ranking and ratings_count for every user
	// that authored at least one review. Users with no reviews keep whatever
	// values they already have (0/0 from creation). Ranks are 1-based
	// positions in the grouped result, ordered by count descending with user
	// id ascending as the tiebreak; equal counts get distinct consecutive
	// ranks.
	RecomputeRankings(ctx context.Context, tx *gorm.DB) error
	// RecomputeUserStats rewrites average_rating and ratings_count for one
	// user from their authored reviews.
	RecomputeUserStats(ctx context.Context, tx *gorm.DB, userID uint) error
	// RecomputeEateryStats rewrites average_rating for one eatery from the
	// reviews about it.
	RecomputeEateryStats(ctx context.Context, tx *gorm.DB, eateryID uint) error
}

type statsService struct {
	db         *gorm.DB
	log        *logger.Logger
	userRepo   repos.UserRepo
	eateryRepo repos.EateryRepo
	reviewRepo repos.ReviewRepo
}

func NewStatsService(db *gorm.DB, baseLog *logger.Logger, userRepo repos.UserRepo, eateryRepo repos.EateryRepo, reviewRepo repos.ReviewRepo) StatsService {
	serviceLog := baseLog.With("service", "StatsService")
	return &statsService{
		db:         db,
		log:        serviceLog,
		userRepo:   userRepo,
		eateryRepo: eateryRepo,
		reviewRepo: reviewRepo,
	}
}

func (ss *statsService) RecomputeRankings(ctx context.Context, tx *gorm.DB) error {
	transaction := tx
	if transaction == nil {
		transaction = ss.db
	}

	counts, err := ss.reviewRepo.CountsByUser(ctx, transaction)
	if err != nil {
		return fmt.Errorf("group review counts: %w", err)
	}

	for i, row := range counts {
		user, err := ss.userRepo.GetByID(ctx, transaction, row.UserID)
		if err != nil {
			return fmt.Errorf("load user %d: %w", row.UserID, err)
		}
		if user == nil {
			// A review can momentarily outlive its author mid-cascade.
			ss.log.Debug("Skipping ranking for missing user", "user_id", row.UserID)
			continue
		}
		if err := ss.userRepo.UpdateStats(ctx, transaction, row.UserID, map[string]interface{}{
			"ranking":       i + 1,
			"ratings_count": row.ReviewCount,
		}); err != nil {
			return fmt.Errorf("update ranking for user %d: %w", row.UserID, err)
		}
	}
	return nil
}

func (ss *statsService) RecomputeUserStats(ctx context.Context, tx *gorm.DB, userID uint) error {
	transaction := tx
	if transaction == nil {
		transaction = ss.db
	}

	user, err := ss.userRepo.GetByID(ctx, transaction, userID)
	if err != nil {
		return fmt.Errorf("load user: %w", err)
	}
	if user == nil {
		return apierr.NotFound("user_not_found", fmt.Errorf("user %d not found", userID))
	}

	reviews, err := ss.reviewRepo.ListByUser(ctx, transaction, userID)
	if err != nil {
		return fmt.Errorf("list reviews by user: %w", err)
	}

	average := 0.0
	if len(reviews) > 0 {
		sum := 0.0
		for _, review := range reviews {
			sum += review.Rating
		}
		average = roundToTenth(sum / float64(len(reviews)))
	}

	return ss.userRepo.UpdateStats(ctx, transaction, userID, map[string]interface{}{
		"average_rating": average,
		"ratings_count":  len(reviews),
	})
}

func (ss *statsService) RecomputeEateryStats(ctx context.Context, tx *gorm.DB, eateryID uint) error {
	transaction := tx
	if transaction == nil {
		transaction = ss.db
	}

	eatery, err := ss.eateryRepo.GetByID(ctx, transaction, eateryID)
	if err != nil {
		return fmt.Errorf("load eatery: %w", err)
	}
	if eatery == nil {
		return apierr.NotFound("eatery_not_found", fmt.Errorf("eatery %d not found", eateryID))
	}

	reviews, err := ss.reviewRepo.ListByEatery(ctx, transaction, eateryID)
	if err != nil {
		return fmt.Errorf("list reviews by eatery: %w", err)
	}

	average := 0.0
	if len(reviews) > 0 {
		sum := 0.0
		for _, review := range reviews {
			sum += review.Rating
		}
		average = roundToTenth(sum / float64(len(reviews)))
	}

	return ss.eateryRepo.UpdateStats(ctx, transaction, eateryID, map[string]interface{}{
		"average_rating": average,
	})
}

func roundToTenth(v float64) float64 {
	return math.Round(v*10) / 10
}
