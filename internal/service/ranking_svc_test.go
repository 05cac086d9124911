package service

import (
	"testing"
	"time"

	"github.com/trustward/trustward-go/internal/model"
)

func post(id int64, up, down int, createdAt time.Time) model.Post {
	return model.Post{PostID: id, Upvotes: up, Downvotes: down, CreatedAt: createdAt}
}

func TestHotScore_NewerWinsAtEqualVotes(t *testing.T) {
	svc := NewRankingService(24)
	now := time.Now()

	older := post(1, 5, 1, now.Add(-48*time.Hour))
	newer := post(2, 5, 1, now.Add(-24*time.Hour))

	so, sn := svc.HotScore(older, now), svc.HotScore(newer, now)
	if sn <= so {
		t.Errorf("newer post should rank strictly higher: newer=%.4f older=%.4f", sn, so)
	}
	// With a 24h half-life the 24h gap costs exactly one point.
	if !almostEqual(so-sn, -1.0, 0.0001) {
		t.Errorf("score gap = %.4f, want -1.0000", so-sn)
	}
}

func TestHotScore_DecreasesWithAge(t *testing.T) {
	svc := NewRankingService(24)
	created := time.Now().Add(-time.Hour)
	p := post(1, 10, 2, created)

	prev := svc.HotScore(p, created)
	for _, hours := range []int{1, 6, 24, 72} {
		got := svc.HotScore(p, created.Add(time.Duration(hours)*time.Hour))
		if got >= prev {
			t.Errorf("score at +%dh = %.4f, should be below %.4f", hours, got, prev)
		}
		prev = got
	}
}

func TestHotScore_ZeroAndNegativeNet(t *testing.T) {
	svc := NewRankingService(24)
	now := time.Now()
	created := now.Add(-12 * time.Hour)

	zero := svc.HotScore(post(1, 3, 3, created), now)
	// sign(0) = 0 → pure age penalty
	if !almostEqual(zero, -0.5, 0.0001) {
		t.Errorf("zero-net score = %.4f, want -0.5000", zero)
	}

	neg := svc.HotScore(post(2, 1, 11, created), now)
	// sign(-10)*log10(10) - 0.5 = -1.5
	if !almostEqual(neg, -1.5, 0.0001) {
		t.Errorf("negative-net score = %.4f, want -1.5000", neg)
	}
}

func TestHotScore_FutureCreatedAtClamped(t *testing.T) {
	svc := NewRankingService(24)
	now := time.Now()

	future := svc.HotScore(post(1, 10, 0, now.Add(time.Hour)), now)
	present := svc.HotScore(post(2, 10, 0, now), now)
	if !almostEqual(future, present, 0.0001) {
		t.Errorf("clock-skewed post scored %.4f, want %.4f (age clamped to zero)", future, present)
	}
}

func TestRankPosts_HotOrdering(t *testing.T) {
	svc := NewRankingService(24)
	now := time.Now()

	posts := []model.Post{
		post(1, 5, 1, now.Add(-24*time.Hour)),  // old, modest votes
		post(2, 5, 1, now),                     // fresh, same votes
		post(3, 1000, 1, now.Add(-24*time.Hour)), // old, vote advantage beats decay
	}

	ranked := svc.RankPosts(posts, model.RankHot, now)

	want := []int64{3, 2, 1}
	for i, id := range want {
		if ranked[i].PostID != id {
			t.Fatalf("position %d = post %d, want %d", i, ranked[i].PostID, id)
		}
	}
}

func TestRankPosts_TopTiebreakByRecency(t *testing.T) {
	svc := NewRankingService(24)
	now := time.Now()

	posts := []model.Post{
		post(1, 5, 1, now.Add(-48*time.Hour)),
		post(2, 5, 1, now.Add(-24*time.Hour)),
		post(3, 9, 1, now.Add(-72*time.Hour)),
	}

	ranked := svc.RankPosts(posts, model.RankTop, now)

	// Highest net first; equal net breaks by newer creation.
	want := []int64{3, 2, 1}
	for i, id := range want {
		if ranked[i].PostID != id {
			t.Fatalf("position %d = post %d, want %d", i, ranked[i].PostID, id)
		}
	}
}

func TestRankPosts_IdenticalTimestampsTiebreakByID(t *testing.T) {
	svc := NewRankingService(24)
	now := time.Now()
	created := now.Add(-time.Hour)

	posts := []model.Post{
		post(7, 4, 0, created),
		post(3, 4, 0, created),
	}

	for _, mode := range []model.RankMode{model.RankHot, model.RankTop} {
		ranked := svc.RankPosts(posts, mode, now)
		if ranked[0].PostID != 3 || ranked[1].PostID != 7 {
			t.Errorf("%s: got order [%d %d], want [3 7]", mode, ranked[0].PostID, ranked[1].PostID)
		}
	}
}

func TestRankPosts_DoesNotMutateInput(t *testing.T) {
	svc := NewRankingService(24)
	now := time.Now()

	posts := []model.Post{
		post(1, 0, 5, now.Add(-time.Hour)),
		post(2, 10, 0, now.Add(-time.Hour)),
	}

	svc.RankPosts(posts, model.RankTop, now)

	if posts[0].PostID != 1 || posts[1].PostID != 2 {
		t.Error("input slice order should be untouched")
	}
}

func TestNewRankingService_DefaultHalfLife(t *testing.T) {
	svc := NewRankingService(0)
	now := time.Now()

	got := svc.HotScore(post(1, 3, 3, now.Add(-24*time.Hour)), now)
	if !almostEqual(got, -1.0, 0.0001) {
		t.Errorf("score with defaulted half-life = %.4f, want -1.0000", got)
	}
}
