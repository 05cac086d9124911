package model

import "time"

// Promise lifecycle statuses. Consensus only ever moves a promise to one of
// the verdict-mapped statuses; pending/in_progress are starting states.
const (
	StatusPending    = "pending"
	StatusInProgress = "in_progress"
	StatusKept       = "kept"
	StatusBroken     = "broken"
	StatusDelayed    = "delayed"
)

// Outcome verdicts voters can cast on a promise.
const (
	VerdictKept    = "kept"
	VerdictBroken  = "broken"
	VerdictPartial = "partial"
)

// ValidVerdicts are the allowed outcome verdict values.
var ValidVerdicts = map[string]bool{
	VerdictKept:    true,
	VerdictBroken:  true,
	VerdictPartial: true,
}

// Promise is a time-bound company commitment whose status transitions are
// driven by outcome-vote consensus.
type Promise struct {
	PromiseID     string     `json:"promiseId"`
	CompanyID     string     `json:"companyId"`
	Title         string     `json:"title"`
	Status        string     `json:"status"`
	DueAt         *time.Time `json:"dueAt,omitempty"`
	TotalVotes    int        `json:"totalVotes"`
	LastEvaluated *time.Time `json:"lastEvaluated,omitempty"`
	LastUpdated   time.Time  `json:"lastUpdated"`
}

// PromiseVote is a single outcome verdict. At most one exists per
// (voter, promise); resubmission replaces it in place.
type PromiseVote struct {
	ID        int64     `json:"id"`
	VoterID   string    `json:"voterId"`
	PromiseID string    `json:"promiseId"`
	Verdict   string    `json:"verdict"`
	Comment   string    `json:"comment,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// PromiseVoteRequest is the API request body for submitting a verdict.
type PromiseVoteRequest struct {
	PromiseID string `json:"promiseId"`
	VoterID   string `json:"voterId"`
	Verdict   string `json:"verdict"`
	Comment   string `json:"comment,omitempty"`
}

// ConsensusResult reports the outcome of one promise evaluation.
type ConsensusResult struct {
	Changed   bool   `json:"changed"`
	NewStatus string `json:"newStatus,omitempty"`
}

// PromiseVoteResponse is the API response after submitting a verdict.
type PromiseVoteResponse struct {
	Success   bool            `json:"success"`
	Result    string          `json:"result"` // "created" or "updated"
	Vote      *PromiseVote    `json:"vote"`
	Consensus ConsensusResult `json:"consensus"`
}

// PromiseResponse is the API response for promise lookups.
type PromiseResponse struct {
	PromiseID     string         `json:"promiseId"`
	CompanyID     string         `json:"companyId"`
	Title         string         `json:"title"`
	Status        string         `json:"status"`
	DueAt         *time.Time     `json:"dueAt,omitempty"`
	Tally         map[string]int `json:"tally"`
	TotalVotes    int            `json:"totalVotes"`
	LastEvaluated *time.Time     `json:"lastEvaluated,omitempty"`
}
