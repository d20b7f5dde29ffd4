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

// ConnectionService maintains the follow graph. The follower_count and
// following_count counters are adjusted incrementally in the same
// transaction as the edge mutation; they are never rebuilt from scratch.
type ConnectionService interface {
	List(ctx context.Context, tx *gorm.DB) ([]*types.Connection, error)
	Get(ctx context.Context, tx *gorm.DB, connectionID uint) (*types.Connection, error)
	Create(ctx context.Context, followerID, followingID uint) (*types.Connection, error)
	Delete(ctx context.Context, connectionID uint) (*types.Connection, error)
}

type connectionService struct {
	db             *gorm.DB
	log            *logger.Logger
	userRepo       repos.UserRepo
	connectionRepo repos.ConnectionRepo
}

func NewConnectionService(db *gorm.DB, baseLog *logger.Logger, userRepo repos.UserRepo, connectionRepo repos.ConnectionRepo) ConnectionService {
	serviceLog := baseLog.With("service", "ConnectionService")
	return &connectionService{
		db:             db,
		log:            serviceLog,
		userRepo:       userRepo,
		connectionRepo: connectionRepo,
	}
}

func (cs *connectionService) List(ctx context.Context, tx *gorm.DB) ([]*types.Connection, error) {
	return cs.connectionRepo.List(ctx, tx)
}

func (cs *connectionService) Get(ctx context.Context, tx *gorm.DB, connectionID uint) (*types.Connection, error) {
	connection, err := cs.connectionRepo.GetByID(ctx, tx, connectionID)
	if err != nil {
		return nil, fmt.Errorf("load connection: %w", err)
	}
	if connection == nil {
		return nil, apierr.NotFound("connection_not_found", fmt.Errorf("connection %d not found", connectionID))
	}
	return connection, nil
}

func (cs *connectionService) Create(ctx context.Context, followerID, followingID uint) (*types.Connection, error) {
	if followerID == followingID {
		return nil, apierr.BadRequest("self_follow", fmt.Errorf("user %d cannot follow themselves", followerID))
	}

	var out *types.Connection
	if err := cs.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		follower, err := cs.userRepo.GetByID(ctx, tx, followerID)
		if err != nil {
			return fmt.Errorf("load follower: %w", err)
		}
		if follower == nil {
			return apierr.NotFound("user_not_found", fmt.Errorf("user %d not found", followerID))
		}
		following, err := cs.userRepo.GetByID(ctx, tx, followingID)
		if err != nil {
			return fmt.Errorf("load following: %w", err)
		}
		if following == nil {
			return apierr.NotFound("user_not_found", fmt.Errorf("user %d not found", followingID))
		}
		exists, err := cs.connectionRepo.ExistsForPair(ctx, tx, followerID, followingID)
		if err != nil {
			return fmt.Errorf("check connection pair: %w", err)
		}
		if exists {
			return apierr.BadRequest("duplicate_connection", fmt.Errorf("user %d already follows user %d", followerID, followingID))
		}

		connection := &types.Connection{
			FollowerID:  followerID,
			FollowingID: followingID,
			Timestamp:   time.Now(),
		}
		if _, err := cs.connectionRepo.Create(ctx, tx, connection); err != nil {
			return fmt.Errorf("create connection: %w", err)
		}

		if err := adjustFollowCounters(ctx, tx, cs.userRepo, followerID, 0, +1); err != nil {
			return err
		}
		if err := adjustFollowCounters(ctx, tx, cs.userRepo, followingID, +1, 0); err != nil {
			return err
		}

		out = connection
		return nil
	}); err != nil {
		cs.log.Warn("Create connection failed", "error", err, "follower_id", followerID, "following_id", followingID)
		return nil, err
	}
	return out, nil
}

func (cs *connectionService) Delete(ctx context.Context, connectionID uint) (*types.Connection, error) {
	var out *types.Connection
	if err := cs.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		connection, err := cs.connectionRepo.GetByID(ctx, tx, connectionID)
		if err != nil {
			return fmt.Errorf("load connection: %w", err)
		}
		if connection == nil {
			return apierr.NotFound("connection_not_found", fmt.Errorf("connection %d not found", connectionID))
		}

		if err := cs.connectionRepo.Delete(ctx, tx, connectionID); err != nil {
			return fmt.Errorf("delete connection: %w", err)
		}

		if err := adjustFollowCounters(ctx, tx, cs.userRepo, connection.FollowerID, 0, -1); err != nil {
			return err
		}
		if err := adjustFollowCounters(ctx, tx, cs.userRepo, connection.FollowingID, -1, 0); err != nil {
			return err
		}

		out = connection
		return nil
	}); err != nil {
		cs.log.Warn("Delete connection failed", "error", err, "connection_id", connectionID)
		return nil, err
	}
	return out, nil
}
