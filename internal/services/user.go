package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/platewire/eatery-backend/internal/apierr"
	"github.com/platewire/eatery-backend/internal/logger"
	"github.com/platewire/eatery-backend/internal/repos"
	"github.com/platewire/eatery-backend/internal/types"
)

type UserService interface {
	List(ctx context.Context, tx *gorm.DB) ([]*types.User, error)
	Get(ctx context.Context, tx *gorm.DB, userID uint) (*types.User, error)
	Create(ctx context.Context, name, username, bio, location string) (*types.User, error)
	// Delete removes the user, their reviews and their connections, then
	// repairs the rankings, the counterpart follow counters, and the average
	// of every eatery they had reviewed.
	Delete(ctx context.Context, userID uint) (*types.User, error)
}

type userService struct {
	db             *gorm.DB
	log            *logger.Logger
	userRepo       repos.UserRepo
	reviewRepo     repos.ReviewRepo
	connectionRepo repos.ConnectionRepo
	stats          StatsService
}

func NewUserService(db *gorm.DB, baseLog *logger.Logger, userRepo repos.UserRepo, reviewRepo repos.ReviewRepo, connectionRepo repos.ConnectionRepo, stats StatsService) UserService {
	serviceLog := baseLog.With("service", "UserService")
	return &userService{
		db:             db,
		log:            serviceLog,
		userRepo:       userRepo,
		reviewRepo:     reviewRepo,
		connectionRepo: connectionRepo,
		stats:          stats,
	}
}

func (us *userService) List(ctx context.Context, tx *gorm.DB) ([]*types.User, error) {
	return us.userRepo.List(ctx, tx)
}

func (us *userService) Get(ctx context.Context, tx *gorm.DB, userID uint) (*types.User, error) {
	user, err := us.userRepo.GetByID(ctx, tx, userID)
	if err != nil {
		return nil, fmt.Errorf("load user: %w", err)
	}
	if user == nil {
		return nil, apierr.NotFound("user_not_found", fmt.Errorf("user %d not found", userID))
	}
	return user, nil
}

func (us *userService) Create(ctx context.Context, name, username, bio, location string) (*types.User, error) {
	name = strings.TrimSpace(name)
	username = strings.TrimSpace(username)
	if name == "" || username == "" {
		return nil, apierr.BadRequest("missing_field", fmt.Errorf("name and username required"))
	}

	var out *types.User
	if err := us.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		taken, err := us.userRepo.UsernameExists(ctx, tx, username)
		if err != nil {
			return fmt.Errorf("check username: %w", err)
		}
		if taken {
			return apierr.BadRequest("duplicate_username", fmt.Errorf("username %q already taken", username))
		}
		user := &types.User{
			Name:      name,
			Username:  username,
			Bio:       bio,
			Location:  location,
			Timestamp: time.Now(),
		}
		if _, err := us.userRepo.Create(ctx, tx, user); err != nil {
			return fmt.Errorf("create user: %w", err)
		}
		out = user
		return nil
	}); err != nil {
		us.log.Warn("Create user failed", "error", err, "username", username)
		return nil, err
	}
	return out, nil
}

func (us *userService) Delete(ctx context.Context, userID uint) (*types.User, error) {
	var out *types.User
	if err := us.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		user, err := us.userRepo.GetByID(ctx, tx, userID)
		if err != nil {
			return fmt.Errorf("load user: %w", err)
		}
		if user == nil {
			return apierr.NotFound("user_not_found", fmt.Errorf("user %d not found", userID))
		}

		reviews, err := us.reviewRepo.ListByUser(ctx, tx, userID)
		if err != nil {
			return fmt.Errorf("list reviews by user: %w", err)
		}
		if err := us.reviewRepo.DeleteByUser(ctx, tx, userID); err != nil {
			return fmt.Errorf("delete reviews by user: %w", err)
		}

		connections, err := us.connectionRepo.ListByUser(ctx, tx, userID)
		if err != nil {
			return fmt.Errorf("list connections by user: %w", err)
		}
		for _, connection := range connections {
			if connection.FollowerID == userID && connection.FollowingID != userID {
				if err := adjustFollowCounters(ctx, tx, us.userRepo, connection.FollowingID, -1, 0); err != nil {
					return err
				}
			}
			if connection.FollowingID == userID && connection.FollowerID != userID {
				if err := adjustFollowCounters(ctx, tx, us.userRepo, connection.FollowerID, 0, -1); err != nil {
					return err
				}
			}
		}
		if err := us.connectionRepo.DeleteByUser(ctx, tx, userID); err != nil {
			return fmt.Errorf("delete connections by user: %w", err)
		}

		if err := us.userRepo.Delete(ctx, tx, userID); err != nil {
			return fmt.Errorf("delete user: %w", err)
		}

		if err := us.stats.RecomputeRankings(ctx, tx); err != nil {
			return err
		}
		for _, eateryID := range uniqueEateryIDs(reviews) {
			if err := us.stats.RecomputeEateryStats(ctx, tx, eateryID); err != nil {
				return err
			}
		}

		out = user
		return nil
	}); err != nil {
		us.log.Warn("Delete user failed", "error", err, "user_id", userID)
		return nil, err
	}
	return out, nil
}

func uniqueEateryIDs(reviews []*types.Review) []uint {
	seen := make(map[uint]struct{}, len(reviews))
	out := make([]uint, 0, len(reviews))
	for _, review := range reviews {
		if _, ok := seen[review.EateryID]; ok {
			continue
		}
		seen[review.EateryID] = struct{}{}
		out = append(out, review.EateryID)
	}
	return out
}

// adjustFollowCounters shifts a user's follower_count / following_count by
// the given deltas, clamping at zero.
func adjustFollowCounters(ctx context.Context, tx *gorm.DB, userRepo repos.UserRepo, userID uint, followerDelta, followingDelta int) error {
	user, err := userRepo.GetByID(ctx, tx, userID)
	if err != nil {
		return fmt.Errorf("load user %d: %w", userID, err)
	}
	if user == nil {
		return nil
	}
	newFollower := user.FollowerCount + followerDelta
	if newFollower < 0 {
		newFollower = 0
	}
	newFollowing := user.FollowingCount + followingDelta
	if newFollowing < 0 {
		newFollowing = 0
	}
	return userRepo.UpdateStats(ctx, tx, userID, map[string]interface{}{
		"follower_count":  newFollower,
		"following_count": newFollowing,
	})
}
