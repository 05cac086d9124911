package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/trustward/trustward-go/internal/model"
)

type PromiseRepo struct {
	pool *pgxpool.Pool
}

func NewPromiseRepo(pool *pgxpool.Pool) *PromiseRepo {
	return &PromiseRepo{pool: pool}
}

// FindByPromiseID returns a single promise. Returns pgx.ErrNoRows when the
// promise does not exist.
func (r *PromiseRepo) FindByPromiseID(ctx context.Context, promiseID string) (*model.Promise, error) {
	query := `
		SELECT promise_id, company_id, title, status, due_at,
		       (SELECT COUNT(*) FROM promise_votes pv WHERE pv.promise_id = p.promise_id),
		       last_evaluated, last_updated
		FROM promises p
		WHERE promise_id = $1`

	var pr model.Promise
	err := r.pool.QueryRow(ctx, query, promiseID).Scan(
		&pr.PromiseID, &pr.CompanyID, &pr.Title, &pr.Status, &pr.DueAt,
		&pr.TotalVotes, &pr.LastEvaluated, &pr.LastUpdated,
	)
	if err != nil {
		return nil, err
	}
	return &pr, nil
}

// UpsertOutcomeParams carries the fields of an outcome-vote write.
type UpsertOutcomeParams struct {
	VoterID   string
	PromiseID string
	Verdict   string
	Comment   string
}

// UpsertOutcome inserts or replaces an outcome vote keyed by
// (voter_id, promise_id). Same conflict model as rating votes: the unique
// constraint serializes concurrent writers, last write wins.
func (r *PromiseRepo) UpsertOutcome(ctx context.Context, p UpsertOutcomeParams) (*model.PromiseVote, bool, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, false, err
	}
	defer tx.Rollback(ctx)

	_, err = tx.Exec(ctx, `
		INSERT INTO users (user_id) VALUES ($1)
		ON CONFLICT (user_id) DO UPDATE SET last_active = NOW()`,
		p.VoterID)
	if err != nil {
		return nil, false, err
	}

	var exists bool
	err = tx.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM promises WHERE promise_id = $1)`, p.PromiseID).Scan(&exists)
	if err != nil {
		return nil, false, err
	}
	if !exists {
		return nil, false, model.NotFoundf("promise %s", p.PromiseID)
	}

	v := model.PromiseVote{
		VoterID:   p.VoterID,
		PromiseID: p.PromiseID,
		Verdict:   p.Verdict,
		Comment:   p.Comment,
	}
	var created bool
	err = tx.QueryRow(ctx, `
		INSERT INTO promise_votes (voter_id, promise_id, verdict, comment)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (voter_id, promise_id) DO UPDATE
		SET verdict = EXCLUDED.verdict, comment = EXCLUDED.comment, updated_at = NOW()
		RETURNING id, created_at, updated_at, (xmax = 0)`,
		p.VoterID, p.PromiseID, p.Verdict, p.Comment).
		Scan(&v.ID, &v.CreatedAt, &v.UpdatedAt, &created)
	if err != nil {
		return nil, false, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, false, err
	}
	return &v, created, nil
}

// Tally returns the current verdict counts for a promise.
func (r *PromiseRepo) Tally(ctx context.Context, promiseID string) (map[string]int, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT verdict, COUNT(*)
		FROM promise_votes
		WHERE promise_id = $1
		GROUP BY verdict`,
		promiseID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	tally := make(map[string]int)
	for rows.Next() {
		var verdict string
		var count int
		if err := rows.Scan(&verdict, &count); err != nil {
			return nil, err
		}
		tally[verdict] = count
	}
	return tally, rows.Err()
}

// SetStatus transitions a promise to status, reporting whether anything
// changed. The WHERE clause makes re-evaluation idempotent: applying the
// same target twice is a no-op.
func (r *PromiseRepo) SetStatus(ctx context.Context, promiseID, status string) (bool, error) {
	tag, err := r.pool.Exec(ctx, `
		UPDATE promises SET status = $2, last_updated = NOW()
		WHERE promise_id = $1 AND status <> $2`,
		promiseID, status)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

// TouchEvaluated records that an evaluation ran, whether or not it changed
// anything.
func (r *PromiseRepo) TouchEvaluated(ctx context.Context, promiseID string) error {
	_, err := r.pool.Exec(ctx, `
		UPDATE promises SET last_evaluated = NOW() WHERE promise_id = $1`, promiseID)
	return err
}

// ListVoted returns the IDs of all promises with at least one outcome vote,
// for the reconciliation sweep.
func (r *PromiseRepo) ListVoted(ctx context.Context) ([]string, error) {
	rows, err := r.pool.Query(ctx, `SELECT DISTINCT promise_id FROM promise_votes`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}
