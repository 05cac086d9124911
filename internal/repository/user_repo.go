package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/trustward/trustward-go/internal/model"
)

type UserRepo struct {
	pool *pgxpool.Pool
}

func NewUserRepo(pool *pgxpool.Pool) *UserRepo {
	return &UserRepo{pool: pool}
}

// FindByUserID returns a single voter with vote counts computed from the
// vote tables rather than stored counters, so the numbers cannot drift.
func (r *UserRepo) FindByUserID(ctx context.Context, userID string) (*model.User, error) {
	query := `
		SELECT u.user_id, u.first_seen, u.last_active,
		       (SELECT COUNT(*) FROM votes v WHERE v.voter_id = u.user_id)
		       + (SELECT COUNT(*) FROM promise_votes pv WHERE pv.voter_id = u.user_id) AS total_votes,
		       (SELECT COUNT(*) FROM votes v WHERE v.voter_id = u.user_id AND v.evidence_url <> '') AS evidence_votes
		FROM users u
		WHERE u.user_id = $1`

	var u model.User
	err := r.pool.QueryRow(ctx, query, userID).Scan(
		&u.UserID, &u.FirstSeen, &u.LastActive, &u.TotalVotes, &u.EvidenceVotes,
	)
	if err != nil {
		return nil, err
	}
	return &u, nil
}
