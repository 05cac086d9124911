package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/trustward/trustward-go/internal/model"
)

type CompanyRepo struct {
	pool *pgxpool.Pool
}

func NewCompanyRepo(pool *pgxpool.Pool) *CompanyRepo {
	return &CompanyRepo{pool: pool}
}

// FindByCompanyID returns a single company. Returns pgx.ErrNoRows when the
// company does not exist.
func (r *CompanyRepo) FindByCompanyID(ctx context.Context, companyID string) (*model.Company, error) {
	query := `
		SELECT company_id, name, overall_score, total_votes, first_rated, last_updated
		FROM companies
		WHERE company_id = $1`

	var c model.Company
	err := r.pool.QueryRow(ctx, query, companyID).Scan(
		&c.CompanyID, &c.Name, &c.OverallScore, &c.TotalVotes, &c.FirstRated, &c.LastUpdated,
	)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// GetDimensionScores returns the stored per-dimension aggregates for a
// company. Dimensions without votes have no row.
func (r *CompanyRepo) GetDimensionScores(ctx context.Context, companyID string) ([]model.DimensionScore, error) {
	query := `
		SELECT company_id, dimension, mean_score, vote_count
		FROM company_scores
		WHERE company_id = $1`

	rows, err := r.pool.Query(ctx, query, companyID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var scores []model.DimensionScore
	for rows.Next() {
		var s model.DimensionScore
		if err := rows.Scan(&s.CompanyID, &s.Dimension, &s.MeanScore, &s.VoteCount); err != nil {
			return nil, err
		}
		scores = append(scores, s)
	}
	return scores, rows.Err()
}

// ListVoted returns the IDs of all companies with at least one vote, for the
// reconciliation sweep.
func (r *CompanyRepo) ListVoted(ctx context.Context) ([]string, error) {
	rows, err := r.pool.Query(ctx, `SELECT DISTINCT company_id FROM votes`)
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

// GetStats returns aggregate statistics across all tables.
func (r *CompanyRepo) GetStats(ctx context.Context) (*model.StatsResponse, error) {
	query := `
		SELECT
			(SELECT COUNT(*) FROM companies) AS total_companies,
			(SELECT COUNT(*) FROM promises) AS total_promises,
			(SELECT COUNT(*) FROM votes) + (SELECT COUNT(*) FROM promise_votes) AS total_votes,
			(SELECT COUNT(*) FROM users) AS total_users,
			(SELECT COUNT(*) FROM users WHERE last_active > NOW() - INTERVAL '24 hours') AS active_users_24h`

	var stats model.StatsResponse
	err := r.pool.QueryRow(ctx, query).Scan(
		&stats.TotalCompanies, &stats.TotalPromises, &stats.TotalVotes,
		&stats.TotalUsers, &stats.ActiveUsers24h,
	)
	if err != nil {
		return nil, err
	}

	dimQuery := `
		SELECT dimension, COUNT(*) AS total
		FROM votes
		GROUP BY dimension
		ORDER BY total DESC`

	rows, err := r.pool.Query(ctx, dimQuery)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	stats.TopDimensions = make(map[string]int)
	for rows.Next() {
		var dim string
		var count int
		if err := rows.Scan(&dim, &count); err != nil {
			return nil, err
		}
		stats.TopDimensions[dim] = count
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return &stats, nil
}
