package model

import "time"

// Vote is a single rating of a company on one dimension. At most one vote
// exists per (voter, company, dimension); resubmission replaces it in place.
type Vote struct {
	ID          int64     `json:"id"`
	VoterID     string    `json:"voterId"`
	CompanyID   string    `json:"companyId"`
	Dimension   string    `json:"dimension"`
	Score       float64   `json:"score"`
	Comment     string    `json:"comment,omitempty"`
	EvidenceURL string    `json:"evidenceUrl,omitempty"`
	IPHash      string    `json:"-"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// Upsert result values reported back to the caller.
const (
	UpsertCreated = "created"
	UpsertUpdated = "updated"
)

// VoteRequest is the API request body for submitting a rating vote.
type VoteRequest struct {
	CompanyID   string  `json:"companyId"`
	VoterID     string  `json:"voterId"`
	Dimension   string  `json:"dimension"`
	Score       float64 `json:"score"`
	Comment     string  `json:"comment,omitempty"`
	EvidenceURL string  `json:"evidenceUrl,omitempty"`
}

// VoteDeleteRequest is the API request body for retracting a rating vote.
type VoteDeleteRequest struct {
	CompanyID string `json:"companyId"`
	VoterID   string `json:"voterId"`
	Dimension string `json:"dimension"`
}

// VoteResponse is the API response after submitting a vote. Score carries the
// company's current stored score, which may be stale if recomputation failed
// (the reconciliation sweep heals it).
type VoteResponse struct {
	Success bool                  `json:"success"`
	Result  string                `json:"result"` // "created" or "updated"
	Score   *CompanyScoreResponse `json:"score,omitempty"`
}

// VoteFilters narrows a company vote listing.
type VoteFilters struct {
	VoterID   string
	Dimension string
}
