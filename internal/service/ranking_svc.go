package service

import (
	"math"
	"sort"
	"time"

	"github.com/trustward/trustward-go/internal/model"
)

// RankingService orders post listings. It is a pure function of the posts
// passed in and never touches stored state.
type RankingService struct {
	decayHalfLifeHours float64
}

func NewRankingService(decayHalfLifeHours float64) *RankingService {
	if decayHalfLifeHours <= 0 {
		decayHalfLifeHours = 24
	}
	return &RankingService{decayHalfLifeHours: decayHalfLifeHours}
}

// TopScore is the plain net vote count.
func (s *RankingService) TopScore(p model.Post) int {
	return p.NetVotes()
}

// HotScore combines a logarithmic vote term with a linear age penalty:
//
//	hot = sign(net) * log10(max(|net|, 1)) - ageHours/halfLife
//
// For a fixed vote count the score decreases continuously and strictly as
// the post ages, so two posts with equal net votes rank by recency, and an
// older post outranks a newer one only when its vote advantage beats the
// decay penalty.
func (s *RankingService) HotScore(p model.Post, now time.Time) float64 {
	net := p.NetVotes()

	sign := 0.0
	if net > 0 {
		sign = 1
	} else if net < 0 {
		sign = -1
	}
	order := math.Log10(math.Max(math.Abs(float64(net)), 1))

	age := now.Sub(p.CreatedAt).Hours()
	if age < 0 {
		age = 0
	}

	return sign*order - age/s.decayHalfLifeHours
}

// RankPosts returns a new slice with posts ordered by the given mode.
// Ties break deterministically: newer creation first, then lower id.
func (s *RankingService) RankPosts(posts []model.Post, mode model.RankMode, now time.Time) []model.Post {
	ranked := make([]model.Post, len(posts))
	copy(ranked, posts)

	tiebreak := func(a, b model.Post) bool {
		if !a.CreatedAt.Equal(b.CreatedAt) {
			return a.CreatedAt.After(b.CreatedAt)
		}
		return a.PostID < b.PostID
	}

	switch mode {
	case model.RankHot:
		sort.SliceStable(ranked, func(i, j int) bool {
			si, sj := s.HotScore(ranked[i], now), s.HotScore(ranked[j], now)
			if si != sj {
				return si > sj
			}
			return tiebreak(ranked[i], ranked[j])
		})
	default: // RankTop
		sort.SliceStable(ranked, func(i, j int) bool {
			si, sj := s.TopScore(ranked[i]), s.TopScore(ranked[j])
			if si != sj {
				return si > sj
			}
			return tiebreak(ranked[i], ranked[j])
		})
	}

	return ranked
}
