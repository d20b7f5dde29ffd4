package services

import (
	"context"
	"testing"
)

func TestCreateUserRejectsDuplicateUsername(t *testing.T) {
	env := newTestEnv(t)
	mustCreateUser(t, env, "Alice Smith", "alice")

	_, err := env.users.Create(context.Background(), "Alice Clone", "alice", "", "")
	if err == nil {
		t.Fatalf("expected duplicate username rejection")
	}
	if apiStatus(err) != 400 {
		t.Fatalf("expected 400, got %d (%v)", apiStatus(err), err)
	}
}

func TestCreateUserRequiresNameAndUsername(t *testing.T) {
	env := newTestEnv(t)
	if _, err := env.users.Create(context.Background(), "", "alice", "", ""); apiStatus(err) != 400 {
		t.Fatalf("expected 400 for missing name, got %v", err)
	}
	if _, err := env.users.Create(context.Background(), "Alice Smith", "  ", "", ""); apiStatus(err) != 400 {
		t.Fatalf("expected 400 for missing username, got %v", err)
	}
}

func TestGetUnknownUser(t *testing.T) {
	env := newTestEnv(t)
	if _, err := env.users.Get(context.Background(), nil, 999); apiStatus(err) != 404 {
		t.Fatalf("expected 404, got %v", err)
	}
}

func TestDeleteUserCascades(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	u1 := mustCreateUser(t, env, "Alice Smith", "alice")
	u2 := mustCreateUser(t, env, "Bob Johnson", "bob")
	e := mustCreateEatery(t, env, "Trillium")

	mustCreateReview(t, env, u1.ID, e.ID, 4)
	mustCreateReview(t, env, u2.ID, e.ID, 6)
	if _, err := env.connections.Create(ctx, u1.ID, u2.ID); err != nil {
		t.Fatalf("create connection: %v", err)
	}

	if _, err := env.users.Delete(ctx, u1.ID); err != nil {
		t.Fatalf("delete user: %v", err)
	}

	// Authored reviews are gone.
	reviews, err := env.reviewRepo.ListByUser(ctx, nil, u1.ID)
	if err != nil {
		t.Fatalf("list reviews: %v", err)
	}
	if len(reviews) != 0 {
		t.Fatalf("expected no remaining reviews for deleted user, got %d", len(reviews))
	}

	// Ranking no longer includes the deleted user; the survivor moves up.
	counts, err := env.reviewRepo.CountsByUser(ctx, nil)
	if err != nil {
		t.Fatalf("counts by user: %v", err)
	}
	for _, row := range counts {
		if row.UserID == u1.ID {
			t.Fatalf("deleted user still present in grouped counts")
		}
	}
	if got := reloadUser(t, env, u2.ID).Ranking; got != 1 {
		t.Fatalf("expected u2 ranking 1, got %d", got)
	}

	// Eatery average now reflects only the surviving review.
	if got := reloadEatery(t, env, e.ID).AverageRating; got != 6.0 {
		t.Fatalf("expected eatery average 6.0, got %v", got)
	}

	// Counterpart follower counter was decremented.
	if got := reloadUser(t, env, u2.ID).FollowerCount; got != 0 {
		t.Fatalf("expected follower count 0, got %d", got)
	}
}

func TestDeleteUnknownUser(t *testing.T) {
	env := newTestEnv(t)
	if _, err := env.users.Delete(context.Background(), 999); apiStatus(err) != 404 {
		t.Fatalf("expected 404, got %v", err)
	}
}
