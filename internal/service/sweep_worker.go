package service

import (
	"context"
	"log"
	"time"

	"github.com/trustward/trustward-go/internal/repository"
)

// SweepWorker is the periodic reconciliation loop. It recomputes every
// company with at least one vote and re-evaluates every promise with at
// least one outcome vote, healing any recompute that failed on the write
// path. Every step is idempotent, so the sweep is safe to run concurrently
// with live traffic and across multiple service instances.
type SweepWorker struct {
	companies *repository.CompanyRepo
	promises  *repository.PromiseRepo
	scores    *ScoreService
	consensus *ConsensusService
	cache     *CacheService
	interval  time.Duration
	stopCh    chan struct{}
}

// NewSweepWorker creates a worker that ticks every interval.
func NewSweepWorker(
	companies *repository.CompanyRepo,
	promises *repository.PromiseRepo,
	scores *ScoreService,
	consensus *ConsensusService,
	cache *CacheService,
	interval time.Duration,
) *SweepWorker {
	return &SweepWorker{
		companies: companies,
		promises:  promises,
		scores:    scores,
		consensus: consensus,
		cache:     cache,
		interval:  interval,
		stopCh:    make(chan struct{}),
	}
}

// Start begins the periodic reconciliation loop. It runs one tick
// immediately, then every interval.
func (w *SweepWorker) Start(ctx context.Context) {
	log.Printf("sweep-worker: starting (interval=%s)", w.interval)

	w.tick(ctx)

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			w.tick(ctx)
		case <-ctx.Done():
			log.Println("sweep-worker: stopping (context cancelled)")
			return
		case <-w.stopCh:
			log.Println("sweep-worker: stopping (stop signal)")
			return
		}
	}
}

// Stop signals the worker to stop.
func (w *SweepWorker) Stop() {
	close(w.stopCh)
}

// tick runs one cycle: recompute all voted company scores, then re-evaluate
// all voted promises.
func (w *SweepWorker) tick(ctx context.Context) {
	start := time.Now()

	recomputed, transitions, err := w.reconcile(ctx)
	if err != nil {
		log.Printf("sweep-worker: error: %v", err)
		return
	}

	elapsed := time.Since(start)
	log.Printf("sweep-worker: tick complete — %d companies recomputed, %d promise transitions (%s)",
		recomputed, transitions, elapsed.Round(time.Millisecond))
}

func (w *SweepWorker) reconcile(ctx context.Context) (recomputed, transitions int, err error) {
	companyIDs, err := w.companies.ListVoted(ctx)
	if err != nil {
		return 0, 0, err
	}

	for _, id := range companyIDs {
		if err := w.scores.RecalculateCompanyScore(ctx, id); err != nil {
			log.Printf("sweep-worker: recompute error for company %s: %v", id, err)
			continue
		}
		if w.cache != nil {
			if err := w.cache.InvalidateCompany(ctx, id); err != nil {
				log.Printf("sweep-worker: cache invalidate error for %s: %v", id, err)
			}
		}
		recomputed++
	}

	promiseIDs, err := w.promises.ListVoted(ctx)
	if err != nil {
		return recomputed, 0, err
	}

	for _, id := range promiseIDs {
		result, err := w.consensus.EvaluatePromise(ctx, id)
		if err != nil {
			log.Printf("sweep-worker: evaluation error for promise %s: %v", id, err)
			continue
		}
		if result.Changed {
			log.Printf("sweep-worker: promise %s transitioned to %s", id, result.NewStatus)
			transitions++
		}
	}

	return recomputed, transitions, nil
}
