package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/trustward/trustward-go/internal/config"
	"github.com/trustward/trustward-go/internal/model"
)

func testVoteService() *VoteService {
	return &VoteService{
		engine: config.Engine{
			Quorum:             100,
			Threshold:          0.70,
			Dimensions:         []string{"ethics", "environment", "labor", "transparency", "security"},
			ScoreMin:           0,
			ScoreMax:           10,
			DecayHalfLifeHours: 24,
		},
	}
}

func TestValidateVote(t *testing.T) {
	svc := testVoteService()

	valid := model.VoteRequest{
		VoterID:   "abc123",
		CompanyID: "acme",
		Dimension: "ethics",
		Score:     7.5,
	}

	tests := []struct {
		name    string
		mutate  func(r *model.VoteRequest)
		wantErr bool
	}{
		{"valid vote", func(r *model.VoteRequest) {}, false},
		{"score at min", func(r *model.VoteRequest) { r.Score = 0 }, false},
		{"score at max", func(r *model.VoteRequest) { r.Score = 10 }, false},
		{"unknown dimension", func(r *model.VoteRequest) { r.Dimension = "vibes" }, true},
		{"score below range", func(r *model.VoteRequest) { r.Score = -0.1 }, true},
		{"score above range", func(r *model.VoteRequest) { r.Score = 10.1 }, true},
		{"comment too long", func(r *model.VoteRequest) { r.Comment = strings.Repeat("x", MaxCommentLen+1) }, true},
		{"comment at limit", func(r *model.VoteRequest) { r.Comment = strings.Repeat("x", MaxCommentLen) }, false},
		{"https evidence", func(r *model.VoteRequest) { r.EvidenceURL = "https://example.com/report" }, false},
		{"http evidence", func(r *model.VoteRequest) { r.EvidenceURL = "http://example.com/report" }, false},
		{"non-http evidence", func(r *model.VoteRequest) { r.EvidenceURL = "ftp://example.com/report" }, true},
		{"evidence too long", func(r *model.VoteRequest) { r.EvidenceURL = "https://example.com/" + strings.Repeat("x", MaxEvidenceURLLen) }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := valid
			tt.mutate(&req)
			err := svc.validateVote(req)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected validation error, got none")
				}
				if !errors.Is(err, model.ErrValidation) {
					t.Errorf("error %v should wrap ErrValidation", err)
				}
			} else if err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

func TestWithRetry_TransientFailureRetried(t *testing.T) {
	svc := testVoteService()

	calls := 0
	err := svc.withRetry(context.Background(), func() error {
		calls++
		if calls < 3 {
			return errors.New("connection reset")
		}
		return nil
	})

	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if calls != 3 {
		t.Errorf("fn called %d times, want 3", calls)
	}
}

func TestWithRetry_ExhaustsAttempts(t *testing.T) {
	svc := testVoteService()

	calls := 0
	wantErr := errors.New("connection reset")
	err := svc.withRetry(context.Background(), func() error {
		calls++
		return wantErr
	})

	if !errors.Is(err, wantErr) {
		t.Fatalf("got %v, want the last attempt's error", err)
	}
	if calls != upsertAttempts {
		t.Errorf("fn called %d times, want %d", calls, upsertAttempts)
	}
}

func TestWithRetry_PermanentErrorsNotRetried(t *testing.T) {
	svc := testVoteService()

	tests := []struct {
		name string
		err  error
	}{
		{"validation", model.Validationf("bad score")},
		{"not found", model.NotFoundf("company missing")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			calls := 0
			err := svc.withRetry(context.Background(), func() error {
				calls++
				return tt.err
			})
			if !errors.Is(err, tt.err) {
				t.Fatalf("got %v, want %v", err, tt.err)
			}
			if calls != 1 {
				t.Errorf("fn called %d times, want 1 (no retry on permanent error)", calls)
			}
		})
	}
}

func TestWithRetry_CancelledContext(t *testing.T) {
	svc := testVoteService()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	calls := 0
	err := svc.withRetry(ctx, func() error {
		calls++
		return errors.New("connection reset")
	})

	if err == nil {
		t.Fatal("expected an error")
	}
	if calls != 1 {
		t.Errorf("fn called %d times, want 1 (no retry after cancellation)", calls)
	}
}
