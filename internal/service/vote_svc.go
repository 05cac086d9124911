package service

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"

	"github.com/trustward/trustward-go/internal/config"
	"github.com/trustward/trustward-go/internal/model"
	"github.com/trustward/trustward-go/internal/repository"
)

// Bounds on the free-text fields of a vote.
const (
	MaxCommentLen     = 2000
	MaxEvidenceURLLen = 512
)

const (
	upsertAttempts = 3
	upsertBackoff  = 100 * time.Millisecond
)

// VoteService is the engine entry point: it sequences "write vote →
// recompute aggregate" as one logical unit. The write is the source of
// truth; a recomputation failure is logged and left for the reconciliation
// sweep, never surfaced as a request error.
type VoteService struct {
	votes     *repository.VoteRepo
	promises  *repository.PromiseRepo
	scores    *ScoreService
	consensus *ConsensusService
	companies *CompanyService
	cache     *CacheService
	engine    config.Engine
}

func NewVoteService(
	votes *repository.VoteRepo,
	promises *repository.PromiseRepo,
	scores *ScoreService,
	consensus *ConsensusService,
	companies *CompanyService,
	cache *CacheService,
	engine config.Engine,
) *VoteService {
	return &VoteService{
		votes:     votes,
		promises:  promises,
		scores:    scores,
		consensus: consensus,
		companies: companies,
		cache:     cache,
		engine:    engine,
	}
}

// Submit validates and writes a rating vote, then recomputes the company's
// score. Returns the company's current stored score, which is stale only if
// recomputation failed.
func (s *VoteService) Submit(ctx context.Context, req model.VoteRequest, ipHash string) (*model.VoteResponse, error) {
	if err := s.validateVote(req); err != nil {
		return nil, err
	}

	params := repository.UpsertVoteParams{
		VoterID:     req.VoterID,
		CompanyID:   req.CompanyID,
		Dimension:   req.Dimension,
		Score:       req.Score,
		Comment:     req.Comment,
		EvidenceURL: req.EvidenceURL,
		IPHash:      ipHash,
	}

	var created bool
	err := s.withRetry(ctx, func() error {
		var err error
		_, created, err = s.votes.Upsert(ctx, params)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.recompute(ctx, req.CompanyID)

	result := model.UpsertUpdated
	if created {
		result = model.UpsertCreated
	}

	score, err := s.companies.LookupScore(ctx, req.CompanyID)
	if err != nil {
		// Vote is durable; a failed read-back only degrades the response.
		log.Printf("vote: score read-back error for %s: %v", req.CompanyID, err)
		return &model.VoteResponse{Success: true, Result: result}, nil
	}

	return &model.VoteResponse{Success: true, Result: result, Score: score}, nil
}

// Delete retracts a vote and recomputes the company's score.
func (s *VoteService) Delete(ctx context.Context, req model.VoteDeleteRequest) error {
	if req.Dimension != "" && !s.engine.ValidDimension(req.Dimension) {
		return model.Validationf("unknown dimension %q", req.Dimension)
	}

	if err := s.votes.Delete(ctx, req.VoterID, req.CompanyID, req.Dimension); err != nil {
		return err
	}

	s.recompute(ctx, req.CompanyID)
	return nil
}

// SubmitVerdict validates and writes a promise outcome vote, then runs
// consensus evaluation. An evaluation failure leaves the vote durable and is
// logged for the sweep; the response then carries a zero consensus result.
func (s *VoteService) SubmitVerdict(ctx context.Context, req model.PromiseVoteRequest) (*model.PromiseVoteResponse, error) {
	if !model.ValidVerdicts[req.Verdict] {
		return nil, model.Validationf("unknown verdict %q", req.Verdict)
	}
	if len(req.Comment) > MaxCommentLen {
		return nil, model.Validationf("comment exceeds %d characters", MaxCommentLen)
	}

	params := repository.UpsertOutcomeParams{
		VoterID:   req.VoterID,
		PromiseID: req.PromiseID,
		Verdict:   req.Verdict,
		Comment:   req.Comment,
	}

	var vote *model.PromiseVote
	var created bool
	err := s.withRetry(ctx, func() error {
		var err error
		vote, created, err = s.promises.UpsertOutcome(ctx, params)
		return err
	})
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.InvalidatePromise(ctx, req.PromiseID); err != nil {
			log.Printf("cache: invalidate promise error: %v", err)
		}
	}

	var consensus model.ConsensusResult
	consensus, err = s.consensus.EvaluatePromise(ctx, req.PromiseID)
	if err != nil {
		log.Printf("vote: consensus evaluation error for %s (sweep will retry): %v", req.PromiseID, err)
		consensus = model.ConsensusResult{}
	}

	result := model.UpsertUpdated
	if created {
		result = model.UpsertCreated
	}

	return &model.PromiseVoteResponse{
		Success:   true,
		Result:    result,
		Vote:      vote,
		Consensus: consensus,
	}, nil
}

func (s *VoteService) validateVote(req model.VoteRequest) error {
	if !s.engine.ValidDimension(req.Dimension) {
		return model.Validationf("unknown dimension %q", req.Dimension)
	}
	if req.Score < s.engine.ScoreMin || req.Score > s.engine.ScoreMax {
		return model.Validationf("score %g outside [%g, %g]", req.Score, s.engine.ScoreMin, s.engine.ScoreMax)
	}
	if len(req.Comment) > MaxCommentLen {
		return model.Validationf("comment exceeds %d characters", MaxCommentLen)
	}
	if req.EvidenceURL != "" {
		if len(req.EvidenceURL) > MaxEvidenceURLLen {
			return model.Validationf("evidenceUrl exceeds %d characters", MaxEvidenceURLLen)
		}
		if !strings.HasPrefix(req.EvidenceURL, "http://") && !strings.HasPrefix(req.EvidenceURL, "https://") {
			return model.Validationf("evidenceUrl must be an http(s) URL")
		}
	}
	return nil
}

// recompute refreshes the stored score and invalidates the cache. Score
// staleness is acceptable; the vote itself is already committed.
func (s *VoteService) recompute(ctx context.Context, companyID string) {
	if err := s.scores.RecalculateCompanyScore(ctx, companyID); err != nil {
		log.Printf("vote: score recompute error for %s (sweep will retry): %v", companyID, err)
		return
	}
	if s.cache != nil {
		if err := s.cache.InvalidateCompany(ctx, companyID); err != nil {
			log.Printf("cache: invalidate company error: %v", err)
		}
	}
}

// withRetry retries transient storage failures on the idempotent upsert.
// Validation and not-found errors are permanent and returned immediately.
func (s *VoteService) withRetry(ctx context.Context, fn func() error) error {
	var err error
	for attempt := 1; attempt <= upsertAttempts; attempt++ {
		err = fn()
		if err == nil ||
			errors.Is(err, model.ErrValidation) ||
			errors.Is(err, model.ErrNotFound) ||
			ctx.Err() != nil {
			return err
		}
		if attempt < upsertAttempts {
			log.Printf("vote: upsert attempt %d/%d failed, retrying: %v", attempt, upsertAttempts, err)
			select {
			case <-time.After(upsertBackoff):
			case <-ctx.Done():
				return ctx.Err()
			}
		}
	}
	return err
}
