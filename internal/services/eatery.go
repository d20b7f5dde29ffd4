package services

import (
	"context"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/platewire/eatery-backend/internal/apierr"
	"github.com/platewire/eatery-backend/internal/logger"
	"github.com/platewire/eatery-backend/internal/repos"
	"github.com/platewire/eatery-backend/internal/types"
)

type EateryService interface {
	List(ctx context.Context, tx *gorm.DB) ([]*types.Eatery, error)
	Get(ctx context.Context, tx *gorm.DB, eateryID uint) (*types.Eatery, error)
	Create(ctx context.Context, name, description, cuisine, location string) (*types.Eatery, error)
	// Delete removes the eatery and its reviews, then repairs the stats of
	// every user who had reviewed it.
	Delete(ctx context.Context, eateryID uint) (*types.Eatery, error)
}

type eateryService struct {
	db         *gorm.DB
	log        *logger.Logger
	userRepo   repos.UserRepo
	eateryRepo repos.EateryRepo
	reviewRepo repos.ReviewRepo
	stats      StatsService
}

func NewEateryService(db *gorm.DB, baseLog *logger.Logger, userRepo repos.UserRepo, eateryRepo repos.EateryRepo, reviewRepo repos.ReviewRepo, stats StatsService) EateryService {
	serviceLog := baseLog.With("service", "EateryService")
	return &eateryService{
		db:         db,
		log:        serviceLog,
		userRepo:   userRepo,
		eateryRepo: eateryRepo,
		reviewRepo: reviewRepo,
		stats:      stats,
	}
}

func (es *eateryService) List(ctx context.Context, tx *gorm.DB) ([]*types.Eatery, error) {
	return es.eateryRepo.List(ctx, tx)
}

func (es *eateryService) Get(ctx context.Context, tx *gorm.DB, eateryID uint) (*types.Eatery, error) {
	eatery, err := es.eateryRepo.GetByID(ctx, tx, eateryID)
	if err != nil {
		return nil, fmt.Errorf("load eatery: %w", err)
	}
	if eatery == nil {
		return nil, apierr.NotFound("eatery_not_found", fmt.Errorf("eatery %d not found", eateryID))
	}
	return eatery, nil
}

func (es *eateryService) Create(ctx context.Context, name, description, cuisine, location string) (*types.Eatery, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apierr.BadRequest("missing_field", fmt.Errorf("name required"))
	}

	eatery := &types.Eatery{
		Name:        name,
		Description: description,
		Cuisine:     cuisine,
		Location:    location,
	}
	if _, err := es.eateryRepo.Create(ctx, nil, eatery); err != nil {
		es.log.Warn("Create eatery failed", "error", err, "name", name)
		return nil, fmt.Errorf("create eatery: %w", err)
	}
	return eatery, nil
}

func (es *eateryService) Delete(ctx context.Context, eateryID uint) (*types.Eatery, error) {
	var out *types.Eatery
	if err := es.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		eatery, err := es.eateryRepo.GetByID(ctx, tx, eateryID)
		if err != nil {
			return fmt.Errorf("load eatery: %w", err)
		}
		if eatery == nil {
			return apierr.NotFound("eatery_not_found", fmt.Errorf("eatery %d not found", eateryID))
		}

		reviews, err := es.reviewRepo.ListByEatery(ctx, tx, eateryID)
		if err != nil {
			return fmt.Errorf("list reviews by eatery: %w", err)
		}
		if err := es.reviewRepo.DeleteByEatery(ctx, tx, eateryID); err != nil {
			return fmt.Errorf("delete reviews by eatery: %w", err)
		}
		if err := es.eateryRepo.Delete(ctx, tx, eateryID); err != nil {
			return fmt.Errorf("delete eatery: %w", err)
		}

		if err := es.stats.RecomputeRankings(ctx, tx); err != nil {
			return err
		}
		for _, review := range reviews {
			if err := es.stats.RecomputeUserStats(ctx, tx, review.UserID); err != nil {
				return err
			}
			if err := clearRankingIfUnreviewed(ctx, tx, es.userRepo, review.UserID); err != nil {
				return err
			}
		}

		out = eatery
		return nil
	}); err != nil {
		es.log.Warn("Delete eatery failed", "error", err, "eatery_id", eateryID)
		return nil, err
	}
	return out, nil
}
