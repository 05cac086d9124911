package service

import (
	"math"
	"testing"
	"time"

	"github.com/trustward/trustward-go/internal/model"
)

func almostEqual(a, b, epsilon float64) bool {
	return math.Abs(a-b) < epsilon
}

func TestReputationAgeFactor(t *testing.T) {
	svc := NewReputationService()

	tests := []struct {
		name    string
		daysAgo int
		wantMin float64
		wantMax float64
	}{
		{"brand new account", 0, 0.0, 0.02},
		{"1 day old", 1, 0.01, 0.03},
		{"30 days old", 30, 0.49, 0.51},
		{"60 days old", 60, 0.99, 1.0},
		{"120 days old (capped)", 120, 1.0, 1.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			firstSeen := time.Now().AddDate(0, 0, -tt.daysAgo)
			got := svc.AgeFactor(firstSeen)
			if got < tt.wantMin || got > tt.wantMax {
				t.Errorf("AgeFactor(%d days ago) = %.4f, want [%.2f, %.2f]", tt.daysAgo, got, tt.wantMin, tt.wantMax)
			}
		})
	}
}

func TestEvidenceFactor(t *testing.T) {
	svc := NewReputationService()

	tests := []struct {
		name          string
		evidenceVotes int
		totalVotes    int
		want          float64
	}{
		{"fewer than 10 votes, uses default", 5, 5, 0.5},
		{"exactly 10 votes, uses actual", 8, 10, 0.8},
		{"many votes, high evidence rate", 190, 200, 0.95},
		{"many votes, low evidence rate", 10, 50, 0.2},
		{"zero votes, uses default", 0, 0, 0.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := svc.EvidenceFactor(tt.evidenceVotes, tt.totalVotes)
			if !almostEqual(got, tt.want, 0.0001) {
				t.Errorf("EvidenceFactor(%d, %d) = %.2f, want %.2f", tt.evidenceVotes, tt.totalVotes, got, tt.want)
			}
		})
	}
}

func TestReputationVolumeFactor(t *testing.T) {
	svc := NewReputationService()

	tests := []struct {
		name       string
		totalVotes int
		want       float64
	}{
		{"zero votes", 0, 0.0},
		{"50 votes", 50, 0.5},
		{"100 votes", 100, 1.0},
		{"200 votes (capped)", 200, 1.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := svc.VolumeFactor(tt.totalVotes)
			if !almostEqual(got, tt.want, 0.0001) {
				t.Errorf("VolumeFactor(%d) = %.2f, want %.2f", tt.totalVotes, got, tt.want)
			}
		})
	}
}

func TestReputationScore(t *testing.T) {
	svc := NewReputationService()

	tests := []struct {
		name    string
		user    model.User
		wantMin float64
		wantMax float64
	}{
		{
			name: "brand new voter",
			user: model.User{
				FirstSeen:     time.Now(),
				EvidenceVotes: 0,
				TotalVotes:    0,
			},
			// age=0, evidence=0.5 (default <10 votes), volume=0
			// 0*0.3 + 0.5*0.5 + 0*0.2 = 0.25
			wantMin: 0.24,
			wantMax: 0.26,
		},
		{
			name: "veteran voter with sourced votes",
			user: model.User{
				FirstSeen:     time.Now().AddDate(0, 0, -120),
				EvidenceVotes: 190,
				TotalVotes:    200,
			},
			// age=1.0, evidence=0.95, volume=1.0
			// 1.0*0.3 + 0.95*0.5 + 1.0*0.2 = 0.975
			wantMin: 0.97,
			wantMax: 0.98,
		},
		{
			name: "active but unsourced voter",
			user: model.User{
				FirstSeen:     time.Now().AddDate(0, 0, -120),
				EvidenceVotes: 0,
				TotalVotes:    100,
			},
			// age=1.0, evidence=0.0, volume=1.0
			// 1.0*0.3 + 0*0.5 + 1.0*0.2 = 0.5
			wantMin: 0.49,
			wantMax: 0.51,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := svc.Score(&tt.user)
			if got < tt.wantMin || got > tt.wantMax {
				t.Errorf("Score() = %.4f, want [%.2f, %.2f]", got, tt.wantMin, tt.wantMax)
			}
			if got > 1.0 {
				t.Errorf("reputation %.4f exceeds 1.0 cap", got)
			}
		})
	}
}
