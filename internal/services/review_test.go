package services

import (
	"context"
	"testing"
	"time"
)

func TestCreateReviewRejectsOutOfRangeRating(t *testing.T) {
	env := newTestEnv(t)
	u := mustCreateUser(t, env, "Alice Smith", "alice")
	e := mustCreateEatery(t, env, "Trillium")

	for _, rating := range []float64{0, 0.9, 10.1, 11} {
		if _, err := env.reviews.Create(context.Background(), u.ID, e.ID, rating, ""); err == nil {
			t.Fatalf("expected rejection for rating %v", rating)
		} else if apiStatus(err) != 400 {
			t.Fatalf("expected 400 for rating %v, got %d (%v)", rating, apiStatus(err), err)
		}
	}
	if got := reloadUser(t, env, u.ID); got.RatingsCount != 0 {
		t.Fatalf("expected no reviews persisted, count=%d", got.RatingsCount)
	}
}

func TestCreateReviewBoundaryRatings(t *testing.T) {
	env := newTestEnv(t)
	u := mustCreateUser(t, env, "Alice Smith", "alice")
	e1 := mustCreateEatery(t, env, "Trillium")
	e2 := mustCreateEatery(t, env, "Okenshields")

	mustCreateReview(t, env, u.ID, e1.ID, 1)
	mustCreateReview(t, env, u.ID, e2.ID, 10)

	if got := reloadUser(t, env, u.ID).AverageRating; got != 5.5 {
		t.Fatalf("expected average 5.5, got %v", got)
	}
}

func TestCreateReviewUnknownReferences(t *testing.T) {
	env := newTestEnv(t)
	u := mustCreateUser(t, env, "Alice Smith", "alice")
	e := mustCreateEatery(t, env, "Trillium")

	if _, err := env.reviews.Create(context.Background(), 999, e.ID, 5, ""); apiStatus(err) != 404 {
		t.Fatalf("expected 404 for unknown user, got %v", err)
	}
	if _, err := env.reviews.Create(context.Background(), u.ID, 999, 5, ""); apiStatus(err) != 404 {
		t.Fatalf("expected 404 for unknown eatery, got %v", err)
	}
}

func TestCreateReviewRejectsDuplicatePair(t *testing.T) {
	env := newTestEnv(t)
	u := mustCreateUser(t, env, "Alice Smith", "alice")
	e := mustCreateEatery(t, env, "Trillium")
	mustCreateReview(t, env, u.ID, e.ID, 5)

	_, err := env.reviews.Create(context.Background(), u.ID, e.ID, 7, "")
	if err == nil {
		t.Fatalf("expected duplicate pair rejection")
	}
	if apiStatus(err) != 400 {
		t.Fatalf("expected 400, got %d (%v)", apiStatus(err), err)
	}
	if got := reloadUser(t, env, u.ID); got.RatingsCount != 1 {
		t.Fatalf("expected single review, count=%d", got.RatingsCount)
	}
}

func TestEditReviewUpdatesAveragesButNotRanking(t *testing.T) {
	env := newTestEnv(t)
	u := mustCreateUser(t, env, "Alice Smith", "alice")
	e := mustCreateEatery(t, env, "Trillium")
	review := mustCreateReview(t, env, u.ID, e.ID, 4)

	newRating := 8.0
	edited, err := env.reviews.Edit(context.Background(), review.ID, &newRating, nil)
	if err != nil {
		t.Fatalf("edit review: %v", err)
	}
	if edited.Rating != 8 {
		t.Fatalf("expected rating 8, got %v", edited.Rating)
	}

	gotUser := reloadUser(t, env, u.ID)
	if gotUser.AverageRating != 8.0 || gotUser.RatingsCount != 1 || gotUser.Ranking != 1 {
		t.Fatalf("unexpected user stats after edit: %+v", gotUser)
	}
	if got := reloadEatery(t, env, e.ID).AverageRating; got != 8.0 {
		t.Fatalf("expected eatery average 8.0, got %v", got)
	}
}

func TestEditReviewKeepsUnspecifiedFields(t *testing.T) {
	env := newTestEnv(t)
	u := mustCreateUser(t, env, "Alice Smith", "alice")
	e := mustCreateEatery(t, env, "Trillium")
	review, err := env.reviews.Create(context.Background(), u.ID, e.ID, 6, "solid bagels")
	if err != nil {
		t.Fatalf("create review: %v", err)
	}

	newText := "bagels got better"
	edited, err := env.reviews.Edit(context.Background(), review.ID, nil, &newText)
	if err != nil {
		t.Fatalf("edit review: %v", err)
	}
	if edited.Rating != 6 {
		t.Fatalf("expected rating preserved at 6, got %v", edited.Rating)
	}
	if edited.ReviewText != newText {
		t.Fatalf("expected text %q, got %q", newText, edited.ReviewText)
	}
	if !edited.Timestamp.After(review.Timestamp) && !edited.Timestamp.Equal(review.Timestamp) {
		t.Fatalf("expected timestamp refreshed")
	}
}

func TestEditReviewRejectsOutOfRangeRating(t *testing.T) {
	env := newTestEnv(t)
	u := mustCreateUser(t, env, "Alice Smith", "alice")
	e := mustCreateEatery(t, env, "Trillium")
	review := mustCreateReview(t, env, u.ID, e.ID, 5)

	bad := 11.0
	_, err := env.reviews.Edit(context.Background(), review.ID, &bad, nil)
	if err == nil {
		t.Fatalf("expected validation failure")
	}
	if apiStatus(err) != 400 {
		t.Fatalf("expected 400, got %d (%v)", apiStatus(err), err)
	}

	gotUser := reloadUser(t, env, u.ID)
	if gotUser.AverageRating != 5.0 || gotUser.RatingsCount != 1 || gotUser.Ranking != 1 {
		t.Fatalf("derived fields changed after rejected edit: %+v", gotUser)
	}
	gotReview, err := env.reviews.Get(context.Background(), nil, review.ID)
	if err != nil {
		t.Fatalf("reload review: %v", err)
	}
	if gotReview.Rating != 5 {
		t.Fatalf("expected rating unchanged at 5, got %v", gotReview.Rating)
	}
}

func TestEditUnknownReview(t *testing.T) {
	env := newTestEnv(t)
	rating := 5.0
	if _, err := env.reviews.Edit(context.Background(), 999, &rating, nil); apiStatus(err) != 404 {
		t.Fatalf("expected 404, got %v", err)
	}
}

func TestDeleteReviewRestoresPriorState(t *testing.T) {
	env := newTestEnv(t)
	u := mustCreateUser(t, env, "Alice Smith", "alice")
	e := mustCreateEatery(t, env, "Trillium")

	review := mustCreateReview(t, env, u.ID, e.ID, 9)
	if _, err := env.reviews.Delete(context.Background(), review.ID); err != nil {
		t.Fatalf("delete review: %v", err)
	}

	gotUser := reloadUser(t, env, u.ID)
	if gotUser.AverageRating != 0 || gotUser.RatingsCount != 0 || gotUser.Ranking != 0 {
		t.Fatalf("expected user stats restored to zero, got %+v", gotUser)
	}
	if got := reloadEatery(t, env, e.ID).AverageRating; got != 0 {
		t.Fatalf("expected eatery average restored to 0, got %v", got)
	}
}

func TestDeleteReviewReranksRemainingUsers(t *testing.T) {
	env := newTestEnv(t)
	u1 := mustCreateUser(t, env, "Alice Smith", "alice")
	u2 := mustCreateUser(t, env, "Bob Johnson", "bob")
	e1 := mustCreateEatery(t, env, "Trillium")
	e2 := mustCreateEatery(t, env, "Okenshields")
	e3 := mustCreateEatery(t, env, "Mann Cafe")

	mustCreateReview(t, env, u1.ID, e1.ID, 7)
	r1 := mustCreateReview(t, env, u2.ID, e2.ID, 6)
	mustCreateReview(t, env, u2.ID, e3.ID, 8)

	if got := reloadUser(t, env, u2.ID).Ranking; got != 1 {
		t.Fatalf("expected u2 ranking 1, got %d", got)
	}

	// Drop one of u2's reviews: counts tie, u1 has the lower id.
	if _, err := env.reviews.Delete(context.Background(), r1.ID); err != nil {
		t.Fatalf("delete review: %v", err)
	}
	if got := reloadUser(t, env, u1.ID).Ranking; got != 1 {
		t.Fatalf("expected u1 ranking 1 after delete, got %d", got)
	}
	if got := reloadUser(t, env, u2.ID).Ranking; got != 2 {
		t.Fatalf("expected u2 ranking 2 after delete, got %d", got)
	}
}

func TestDeleteUnknownReview(t *testing.T) {
	env := newTestEnv(t)
	if _, err := env.reviews.Delete(context.Background(), 999); apiStatus(err) != 404 {
		t.Fatalf("expected 404, got %v", err)
	}
}

func TestReviewTimestampSetOnCreate(t *testing.T) {
	env := newTestEnv(t)
	u := mustCreateUser(t, env, "Alice Smith", "alice")
	e := mustCreateEatery(t, env, "Trillium")

	before := time.Now().Add(-time.Minute)
	review := mustCreateReview(t, env, u.ID, e.ID, 5)
	if review.Timestamp.Before(before) {
		t.Fatalf("expected a fresh timestamp, got %v", review.Timestamp)
	}
}
