package model

import "time"

// Company represents a rated company. OverallScore is nil until the company
// has at least one vote on at least one dimension; zero is a valid score and
// must stay distinguishable from "unrated".
type Company struct {
	CompanyID    string     `json:"companyId"`
	Name         string     `json:"name"`
	OverallScore *float64   `json:"overallScore"`
	TotalVotes   int        `json:"totalVotes"`
	FirstRated   *time.Time `json:"firstRated,omitempty"`
	LastUpdated  time.Time  `json:"lastUpdated"`
}

// DimensionScore is the stored aggregate for one (company, dimension) pair.
// A row exists only while the pair has at least one vote.
type DimensionScore struct {
	CompanyID string  `json:"companyId"`
	Dimension string  `json:"dimension"`
	MeanScore float64 `json:"meanScore"`
	VoteCount int     `json:"votes"`
}

// DimensionDetail holds the vote count and mean for a single dimension in an
// API response.
type DimensionDetail struct {
	Votes     int     `json:"votes"`
	MeanScore float64 `json:"meanScore"`
}

// CompanyScoreResponse is the API response for company score lookups.
// Dimensions only contains axes with at least one vote.
type CompanyScoreResponse struct {
	CompanyID    string                      `json:"companyId"`
	Name         string                      `json:"name,omitempty"`
	OverallScore *float64                    `json:"overallScore"`
	Dimensions   map[string]*DimensionDetail `json:"dimensions"`
	TotalVotes   int                         `json:"totalVotes"`
	LastUpdated  time.Time                   `json:"lastUpdated"`
}
