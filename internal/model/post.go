package model

import "time"

// RankMode selects the ordering applied to a post listing.
type RankMode string

const (
	RankHot RankMode = "hot"
	RankTop RankMode = "top"
)

// Post is a user-submitted story with its current vote tallies. Ranking is
// derived from these fields at read time and never stored.
type Post struct {
	PostID    int64     `json:"postId"`
	AuthorID  string    `json:"authorId"`
	Title     string    `json:"title"`
	URL       string    `json:"url,omitempty"`
	Upvotes   int       `json:"upvotes"`
	Downvotes int       `json:"downvotes"`
	CreatedAt time.Time `json:"createdAt"`
}

// NetVotes returns upvotes minus downvotes.
func (p Post) NetVotes() int {
	return p.Upvotes - p.Downvotes
}

// PostListResponse is the API response for a ranked post listing.
type PostListResponse struct {
	Posts []Post   `json:"posts"`
	Sort  RankMode `json:"sort"`
}
