package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/platewire/eatery-backend/internal/apierr"
	"github.com/platewire/eatery-backend/internal/logger"
	"github.com/platewire/eatery-backend/internal/repos"
	"github.com/platewire/eatery-backend/internal/types"
)

type testEnv struct {
	db          *gorm.DB
	userRepo    repos.UserRepo
	eateryRepo  repos.EateryRepo
	reviewRepo  repos.ReviewRepo
	connRepo    repos.ConnectionRepo
	stats       StatsService
	users       UserService
	eateries    EateryService
	reviews     ReviewService
	connections ConnectionService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	// A named shared-cache DB per test: every pooled connection sees the
	// same in-memory database.
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	gdb, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := gdb.AutoMigrate(&types.User{}, &types.Eatery{}, &types.Review{}, &types.Connection{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	log := logger.Nop()
	userRepo := repos.NewUserRepo(gdb, log)
	eateryRepo := repos.NewEateryRepo(gdb, log)
	reviewRepo := repos.NewReviewRepo(gdb, log)
	connRepo := repos.NewConnectionRepo(gdb, log)
	stats := NewStatsService(gdb, log, userRepo, eateryRepo, reviewRepo)

	return &testEnv{
		db:          gdb,
		userRepo:    userRepo,
		eateryRepo:  eateryRepo,
		reviewRepo:  reviewRepo,
		connRepo:    connRepo,
		stats:       stats,
		users:       NewUserService(gdb, log, userRepo, reviewRepo, connRepo, stats),
		eateries:    NewEateryService(gdb, log, userRepo, eateryRepo, reviewRepo, stats),
		reviews:     NewReviewService(gdb, log, userRepo, eateryRepo, reviewRepo, stats),
		connections: NewConnectionService(gdb, log, userRepo, connRepo),
	}
}

func mustCreateUser(t *testing.T, env *testEnv, name, username string) *types.User {
	t.Helper()
	user, err := env.users.Create(context.Background(), name, username, "", "")
	if err != nil {
		t.Fatalf("create user %q: %v", username, err)
	}
	return user
}

func mustCreateEatery(t *testing.T, env *testEnv, name string) *types.Eatery {
	t.Helper()
	eatery, err := env.eateries.Create(context.Background(), name, "", "", "")
	if err != nil {
		t.Fatalf("create eatery %q: %v", name, err)
	}
	return eatery
}

func mustCreateReview(t *testing.T, env *testEnv, userID, eateryID uint, rating float64) *types.Review {
	t.Helper()
	review, err := env.reviews.Create(context.Background(), userID, eateryID, rating, "")
	if err != nil {
		t.Fatalf("create review user=%d eatery=%d: %v", userID, eateryID, err)
	}
	return review
}

func reloadUser(t *testing.T, env *testEnv, userID uint) *types.User {
	t.Helper()
	user, err := env.userRepo.GetByID(context.Background(), nil, userID)
	if err != nil {
		t.Fatalf("reload user %d: %v", userID, err)
	}
	if user == nil {
		t.Fatalf("user %d vanished", userID)
	}
	return user
}

func reloadEatery(t *testing.T, env *testEnv, eateryID uint) *types.Eatery {
	t.Helper()
	eatery, err := env.eateryRepo.GetByID(context.Background(), nil, eateryID)
	if err != nil {
		t.Fatalf("reload eatery %d: %v", eateryID, err)
	}
	if eatery == nil {
		t.Fatalf("eatery %d vanished", eateryID)
	}
	return eatery
}

func apiStatus(err error) int {
	var ae *apierr.Error
	if errors.As(err, &ae) {
		return ae.Status
	}
	return 0
}
