package services

import (
	"context"
	"testing"
)

func TestFollowAdjustsCounters(t *testing.T) {
	env := newTestEnv(t)
	u1 := mustCreateUser(t, env, "Alice Smith", "alice")
	u2 := mustCreateUser(t, env, "Bob Johnson", "bob")

	if _, err := env.connections.Create(context.Background(), u1.ID, u2.ID); err != nil {
		t.Fatalf("create connection: %v", err)
	}

	got1 := reloadUser(t, env, u1.ID)
	if got1.FollowingCount != 1 || got1.FollowerCount != 0 {
		t.Fatalf("unexpected follower counters for u1: %+v", got1)
	}
	got2 := reloadUser(t, env, u2.ID)
	if got2.FollowerCount != 1 || got2.FollowingCount != 0 {
		t.Fatalf("unexpected follower counters for u2: %+v", got2)
	}
}

func TestSelfFollowRejected(t *testing.T) {
	env := newTestEnv(t)
	u := mustCreateUser(t, env, "Alice Smith", "alice")

	_, err := env.connections.Create(context.Background(), u.ID, u.ID)
	if err == nil {
		t.Fatalf("expected self-follow rejection")
	}
	if apiStatus(err) != 400 {
		t.Fatalf("expected 400, got %d (%v)", apiStatus(err), err)
	}
}

func TestDuplicateFollowRejected(t *testing.T) {
	env := newTestEnv(t)
	u1 := mustCreateUser(t, env, "Alice Smith", "alice")
	u2 := mustCreateUser(t, env, "Bob Johnson", "bob")

	if _, err := env.connections.Create(context.Background(), u1.ID, u2.ID); err != nil {
		t.Fatalf("create connection: %v", err)
	}
	_, err := env.connections.Create(context.Background(), u1.ID, u2.ID)
	if err == nil {
		t.Fatalf("expected duplicate pair rejection")
	}
	if apiStatus(err) != 400 {
		t.Fatalf("expected 400, got %d (%v)", apiStatus(err), err)
	}
	if got := reloadUser(t, env, u2.ID).FollowerCount; got != 1 {
		t.Fatalf("expected follower count still 1, got %d", got)
	}
}

func TestReverseFollowAllowed(t *testing.T) {
	env := newTestEnv(t)
	u1 := mustCreateUser(t, env, "Alice Smith", "alice")
	u2 := mustCreateUser(t, env, "Bob Johnson", "bob")

	if _, err := env.connections.Create(context.Background(), u1.ID, u2.ID); err != nil {
		t.Fatalf("follow forward: %v", err)
	}
	if _, err := env.connections.Create(context.Background(), u2.ID, u1.ID); err != nil {
		t.Fatalf("follow reverse: %v", err)
	}

	got1 := reloadUser(t, env, u1.ID)
	if got1.FollowerCount != 1 || got1.FollowingCount != 1 {
		t.Fatalf("unexpected counters for u1: %+v", got1)
	}
}

func TestFollowUnknownUser(t *testing.T) {
	env := newTestEnv(t)
	u := mustCreateUser(t, env, "Alice Smith", "alice")

	if _, err := env.connections.Create(context.Background(), u.ID, 999); apiStatus(err) != 404 {
		t.Fatalf("expected 404 for unknown followee, got %v", err)
	}
	if _, err := env.connections.Create(context.Background(), 999, u.ID); apiStatus(err) != 404 {
		t.Fatalf("expected 404 for unknown follower, got %v", err)
	}
}

func TestUnfollowAdjustsCounters(t *testing.T) {
	env := newTestEnv(t)
	u1 := mustCreateUser(t, env, "Alice Smith", "alice")
	u2 := mustCreateUser(t, env, "Bob Johnson", "bob")

	connection, err := env.connections.Create(context.Background(), u1.ID, u2.ID)
	if err != nil {
		t.Fatalf("create connection: %v", err)
	}
	if _, err := env.connections.Delete(context.Background(), connection.ID); err != nil {
		t.Fatalf("delete connection: %v", err)
	}

	got1 := reloadUser(t, env, u1.ID)
	got2 := reloadUser(t, env, u2.ID)
	if got1.FollowingCount != 0 || got2.FollowerCount != 0 {
		t.Fatalf("expected counters back to zero, u1=%+v u2=%+v", got1, got2)
	}
}

func TestUnfollowUnknownConnection(t *testing.T) {
	env := newTestEnv(t)
	if _, err := env.connections.Delete(context.Background(), 999); apiStatus(err) != 404 {
		t.Fatalf("expected 404, got %v", err)
	}
}
