package service

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

// DimensionMean is the aggregate for one dimension of a company.
type DimensionMean struct {
	Dimension string
	Mean      float64
	VoteCount int
}

// Aggregate computes per-dimension means and the overall score from raw vote
// scores grouped by dimension. The overall score is the mean of the
// dimension means — each rated dimension weighs equally regardless of how
// many votes it has. Dimensions without votes contribute nothing; rated is
// false when no dimension has any vote, which is distinct from an overall
// score of zero.
func Aggregate(scoresByDimension map[string][]float64) (means []DimensionMean, overall float64, rated bool) {
	var sumOfMeans float64
	for dim, scores := range scoresByDimension {
		if len(scores) == 0 {
			continue
		}
		var sum float64
		for _, s := range scores {
			sum += s
		}
		mean := sum / float64(len(scores))
		means = append(means, DimensionMean{Dimension: dim, Mean: mean, VoteCount: len(scores)})
		sumOfMeans += mean
	}

	if len(means) == 0 {
		return nil, 0, false
	}
	return means, sumOfMeans / float64(len(means)), true
}

// ScoreService recalculates company scores after vote changes.
type ScoreService struct {
	pool *pgxpool.Pool
}

func NewScoreService(pool *pgxpool.Pool) *ScoreService {
	return &ScoreService{pool: pool}
}

// RecalculateCompanyScore fully recomputes a company's per-dimension means
// and overall score from its current vote set. Always a full recompute from
// the source votes — never an incremental update — so a failed or skipped
// run self-heals on the next trigger. The whole recompute runs in one
// transaction, so concurrent recomputes each see a consistent vote snapshot
// and the last committer's pure-function result wins.
func (s *ScoreService) RecalculateCompanyScore(ctx context.Context, companyID string) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	rows, err := tx.Query(ctx, `
		SELECT dimension, AVG(score), COUNT(*)
		FROM votes
		WHERE company_id = $1
		GROUP BY dimension`,
		companyID)
	if err != nil {
		return err
	}

	var means []DimensionMean
	var totalVotes int
	for rows.Next() {
		var m DimensionMean
		if err := rows.Scan(&m.Dimension, &m.Mean, &m.VoteCount); err != nil {
			rows.Close()
			return err
		}
		means = append(means, m)
		totalVotes += m.VoteCount
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return err
	}

	// No votes at all → the company reverts to unrated, not to zero.
	if len(means) == 0 {
		_, err = tx.Exec(ctx, `DELETE FROM company_scores WHERE company_id = $1`, companyID)
		if err != nil {
			return err
		}
		_, err = tx.Exec(ctx, `
			UPDATE companies SET overall_score = NULL, total_votes = 0, last_updated = NOW()
			WHERE company_id = $1`, companyID)
		if err != nil {
			return err
		}
		return tx.Commit(ctx)
	}

	var sumOfMeans float64
	rated := make([]string, 0, len(means))
	for _, m := range means {
		sumOfMeans += m.Mean
		rated = append(rated, m.Dimension)
	}
	overall := sumOfMeans / float64(len(means))

	// Drop rows for dimensions that lost their last vote
	_, err = tx.Exec(ctx, `
		DELETE FROM company_scores
		WHERE company_id = $1 AND dimension <> ALL($2)`,
		companyID, rated)
	if err != nil {
		return err
	}

	for _, m := range means {
		_, err = tx.Exec(ctx, `
			INSERT INTO company_scores (company_id, dimension, mean_score, vote_count)
			VALUES ($1, $2, $3, $4)
			ON CONFLICT (company_id, dimension) DO UPDATE
			SET mean_score = EXCLUDED.mean_score, vote_count = EXCLUDED.vote_count`,
			companyID, m.Dimension, m.Mean, m.VoteCount)
		if err != nil {
			return err
		}
	}

	_, err = tx.Exec(ctx, `
		UPDATE companies
		SET overall_score = $1, total_votes = $2,
		    first_rated = COALESCE(first_rated, NOW()), last_updated = NOW()
		WHERE company_id = $3`,
		overall, totalVotes, companyID)
	if err != nil {
		return err
	}

	return tx.Commit(ctx)
}
