package model

import "time"

// User represents a voter with activity metadata. Vote counts are computed
// from the vote tables on read, never maintained incrementally.
type User struct {
	UserID        string    `json:"userId"`
	TotalVotes    int       `json:"totalVotes"`
	EvidenceVotes int       `json:"-"`
	FirstSeen     time.Time `json:"-"`
	LastActive    time.Time `json:"-"`
}

// UserResponse is the API response for voter profile lookups.
type UserResponse struct {
	UserID     string  `json:"userId"`
	Reputation float64 `json:"reputation"`
	TotalVotes int     `json:"totalVotes"`
	AccountAge int     `json:"accountAge"` // days
}

// StatsResponse is the API response for global statistics.
type StatsResponse struct {
	TotalCompanies int            `json:"totalCompanies"`
	TotalPromises  int            `json:"totalPromises"`
	TotalVotes     int            `json:"totalVotes"`
	TotalUsers     int            `json:"totalUsers"`
	ActiveUsers24h int            `json:"activeUsers24h"`
	TopDimensions  map[string]int `json:"topDimensions"`
}
