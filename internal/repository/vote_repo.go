package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/trustward/trustward-go/internal/model"
)

type VoteRepo struct {
	pool *pgxpool.Pool
}

func NewVoteRepo(pool *pgxpool.Pool) *VoteRepo {
	return &VoteRepo{pool: pool}
}

// UpsertVoteParams carries the fields of a rating vote write.
type UpsertVoteParams struct {
	VoterID     string
	CompanyID   string
	Dimension   string
	Score       float64
	Comment     string
	EvidenceURL string
	IPHash      string
}

// Upsert inserts or replaces a vote keyed by (voter_id, company_id, dimension).
// Conflict resolution happens in the database's unique constraint, never in
// application locks, so concurrent writers on the same key serialize to a
// single surviving row (last write wins). The created flag reports whether a
// new row was inserted.
func (r *VoteRepo) Upsert(ctx context.Context, p UpsertVoteParams) (*model.Vote, bool, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, false, err
	}
	defer tx.Rollback(ctx)

	// Ensure the voter exists (auto-create with defaults if new)
	_, err = tx.Exec(ctx, `
		INSERT INTO users (user_id) VALUES ($1)
		ON CONFLICT (user_id) DO UPDATE SET last_active = NOW()`,
		p.VoterID)
	if err != nil {
		return nil, false, err
	}

	// Companies are created by the external CRUD layer; a vote against an
	// unknown company is a caller error, not a reason to create one.
	var exists bool
	err = tx.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM companies WHERE company_id = $1)`, p.CompanyID).Scan(&exists)
	if err != nil {
		return nil, false, err
	}
	if !exists {
		return nil, false, model.NotFoundf("company %s", p.CompanyID)
	}

	// xmax = 0 only on freshly inserted rows, so the created/updated report
	// is atomic with the conflict resolution itself.
	v := model.Vote{
		VoterID:     p.VoterID,
		CompanyID:   p.CompanyID,
		Dimension:   p.Dimension,
		Score:       p.Score,
		Comment:     p.Comment,
		EvidenceURL: p.EvidenceURL,
		IPHash:      p.IPHash,
	}
	var created bool
	err = tx.QueryRow(ctx, `
		INSERT INTO votes (voter_id, company_id, dimension, score, comment, evidence_url, ip_hash)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (voter_id, company_id, dimension) DO UPDATE
		SET score = EXCLUDED.score, comment = EXCLUDED.comment,
		    evidence_url = EXCLUDED.evidence_url, ip_hash = EXCLUDED.ip_hash,
		    updated_at = NOW()
		RETURNING id, created_at, updated_at, (xmax = 0)`,
		p.VoterID, p.CompanyID, p.Dimension, p.Score, p.Comment, p.EvidenceURL, p.IPHash).
		Scan(&v.ID, &v.CreatedAt, &v.UpdatedAt, &created)
	if err != nil {
		return nil, false, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, false, err
	}
	return &v, created, nil
}

// Delete removes a voter's vote on one (company, dimension).
func (r *VoteRepo) Delete(ctx context.Context, voterID, companyID, dimension string) error {
	tag, err := r.pool.Exec(ctx, `
		DELETE FROM votes WHERE voter_id = $1 AND company_id = $2 AND dimension = $3`,
		voterID, companyID, dimension)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return model.NotFoundf("vote by %s on %s/%s", voterID, companyID, dimension)
	}
	return nil
}

// ListByCompany returns the current votes for a company, optionally filtered
// by voter and/or dimension, newest update first.
func (r *VoteRepo) ListByCompany(ctx context.Context, companyID string, f model.VoteFilters) ([]model.Vote, error) {
	query := `
		SELECT id, voter_id, company_id, dimension, score, comment, evidence_url, created_at, updated_at
		FROM votes
		WHERE company_id = $1`
	args := []any{companyID}

	if f.VoterID != "" {
		args = append(args, f.VoterID)
		query += fmt.Sprintf(" AND voter_id = $%d", len(args))
	}
	if f.Dimension != "" {
		args = append(args, f.Dimension)
		query += fmt.Sprintf(" AND dimension = $%d", len(args))
	}
	query += " ORDER BY updated_at DESC"

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var votes []model.Vote
	for rows.Next() {
		var v model.Vote
		err := rows.Scan(&v.ID, &v.VoterID, &v.CompanyID, &v.Dimension, &v.Score,
			&v.Comment, &v.EvidenceURL, &v.CreatedAt, &v.UpdatedAt)
		if err != nil {
			return nil, err
		}
		votes = append(votes, v)
	}
	return votes, rows.Err()
}

// CountForCompany returns the number of current votes for a company.
func (r *VoteRepo) CountForCompany(ctx context.Context, companyID string) (int, error) {
	var n int
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM votes WHERE company_id = $1`, companyID).Scan(&n)
	return n, err
}

// IsNotFound reports whether err is a missing-row condition from either the
// engine's own sentinel or pgx.
func IsNotFound(err error) bool {
	return errors.Is(err, model.ErrNotFound) || errors.Is(err, pgx.ErrNoRows)
}
