package service

import (
	"context"
	"fmt"
	"log"

	"github.com/trustward/trustward-go/internal/model"
	"github.com/trustward/trustward-go/internal/repository"
)

// ConsensusOptions are the policy knobs for promise evaluation. Threshold
// must be above 0.5 so at most one verdict can win a given vote set.
type ConsensusOptions struct {
	Quorum    int
	Threshold float64
}

// statusForVerdict maps a winning verdict to the promise status it promotes.
var statusForVerdict = map[string]string{
	model.VerdictKept:    model.StatusKept,
	model.VerdictBroken:  model.StatusBroken,
	model.VerdictPartial: model.StatusDelayed,
}

// Decide is the pure consensus decision: given a verdict tally, it reports
// the winning verdict, if any. No winner below quorum; above quorum the
// verdict with the highest count wins only if its fraction reaches the
// threshold. With threshold > 0.5 two verdicts can never both qualify.
func Decide(tally map[string]int, opts ConsensusOptions) (verdict string, ok bool) {
	var total int
	for _, n := range tally {
		total += n
	}
	if total < opts.Quorum {
		return "", false
	}

	best, bestCount := "", 0
	for v, n := range tally {
		if n > bestCount {
			best, bestCount = v, n
		}
	}
	if float64(bestCount)/float64(total) < opts.Threshold {
		return "", false
	}
	return best, true
}

// ConsensusService evaluates promise outcome votes and applies status
// transitions.
type ConsensusService struct {
	repo  *repository.PromiseRepo
	cache *CacheService
	opts  ConsensusOptions
}

// NewConsensusService builds the evaluator. Options are validated at config
// load; the panic here only guards against wiring the service around that.
func NewConsensusService(repo *repository.PromiseRepo, cache *CacheService, opts ConsensusOptions) *ConsensusService {
	if opts.Threshold <= 0.5 || opts.Threshold > 1.0 {
		panic(fmt.Sprintf("consensus threshold %g outside (0.5, 1.0]", opts.Threshold))
	}
	if opts.Quorum < 1 {
		panic(fmt.Sprintf("consensus quorum %d below 1", opts.Quorum))
	}
	return &ConsensusService{repo: repo, cache: cache, opts: opts}
}

// Options returns the active consensus policy.
func (s *ConsensusService) Options() ConsensusOptions {
	return s.opts
}

// EvaluatePromise loads the promise's current vote set, decides whether a
// supermajority exists, and applies the status transition if the target
// differs from the persisted status. Evaluation is idempotent: with an
// unchanged vote set the second call always reports changed=false, because
// the comparison is against the stored status, not an "already evaluated"
// marker. A verdict shift in a grown vote set may transition a promise out
// of a previously reached terminal status; that reversal is deliberate.
func (s *ConsensusService) EvaluatePromise(ctx context.Context, promiseID string) (model.ConsensusResult, error) {
	if _, err := s.repo.FindByPromiseID(ctx, promiseID); err != nil {
		return model.ConsensusResult{}, err
	}

	tally, err := s.repo.Tally(ctx, promiseID)
	if err != nil {
		return model.ConsensusResult{}, err
	}

	if err := s.repo.TouchEvaluated(ctx, promiseID); err != nil {
		return model.ConsensusResult{}, err
	}

	verdict, ok := Decide(tally, s.opts)
	if !ok {
		return model.ConsensusResult{Changed: false}, nil
	}

	target := statusForVerdict[verdict]
	changed, err := s.repo.SetStatus(ctx, promiseID, target)
	if err != nil {
		return model.ConsensusResult{}, err
	}
	if !changed {
		return model.ConsensusResult{Changed: false}, nil
	}

	if s.cache != nil {
		if err := s.cache.InvalidatePromise(ctx, promiseID); err != nil {
			log.Printf("cache: invalidate promise error: %v", err)
		}
	}

	return model.ConsensusResult{Changed: true, NewStatus: target}, nil
}
