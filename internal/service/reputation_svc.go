package service

import (
	"math"
	"time"

	"github.com/trustward/trustward-go/internal/model"
)

const (
	ageWeight      = 0.30
	evidenceWeight = 0.50
	volumeWeight   = 0.20

	// Full age factor after 60 days
	ageDaysMax = 60.0

	// Default evidence factor for voters with fewer than 10 votes
	defaultEvidenceRate = 0.5
	minVotesForEvidence = 10

	// Full volume factor at 100 votes
	volumeVotesMax = 100.0
)

// ReputationService computes an informational voter reputation in [0, 1].
// Reputation never weights score aggregation — entity scores are plain
// arithmetic means — it only appears on voter profiles.
type ReputationService struct{}

func NewReputationService() *ReputationService {
	return &ReputationService{}
}

// Score calculates a voter's reputation:
//
//	reputation = (age_factor * 0.30) + (evidence_factor * 0.50) + (volume_factor * 0.20)
func (s *ReputationService) Score(u *model.User) float64 {
	ageFactor := s.AgeFactor(u.FirstSeen)
	evidenceFactor := s.EvidenceFactor(u.EvidenceVotes, u.TotalVotes)
	volumeFactor := s.VolumeFactor(u.TotalVotes)

	score := (ageFactor * ageWeight) + (evidenceFactor * evidenceWeight) + (volumeFactor * volumeWeight)
	return math.Min(score, 1.0)
}

// AgeFactor returns a value between 0.0 and 1.0 based on account age.
// Full weight (1.0) after 60 days.
func (s *ReputationService) AgeFactor(firstSeen time.Time) float64 {
	days := time.Since(firstSeen).Hours() / 24
	return math.Min(days/ageDaysMax, 1.0)
}

// EvidenceFactor returns the fraction of votes carrying an evidence link for
// voters with 10+ votes, or the default 0.5 for voters with fewer.
func (s *ReputationService) EvidenceFactor(evidenceVotes, totalVotes int) float64 {
	if totalVotes < minVotesForEvidence {
		return defaultEvidenceRate
	}
	return math.Min(float64(evidenceVotes)/float64(totalVotes), 1.0)
}

// VolumeFactor returns a value between 0.0 and 1.0 based on total votes.
// Full weight (1.0) at 100+ votes.
func (s *ReputationService) VolumeFactor(totalVotes int) float64 {
	return math.Min(float64(totalVotes)/volumeVotesMax, 1.0)
}
