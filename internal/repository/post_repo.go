package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/trustward/trustward-go/internal/model"
)

type PostRepo struct {
	pool *pgxpool.Pool
}

func NewPostRepo(pool *pgxpool.Pool) *PostRepo {
	return &PostRepo{pool: pool}
}

// List returns up to limit posts with their current vote tallies. Ordering
// is left to the ranking engine; the repository only fetches state.
func (r *PostRepo) List(ctx context.Context, limit int) ([]model.Post, error) {
	query := `
		SELECT post_id, author_id, title, url, upvotes, downvotes, created_at
		FROM posts
		ORDER BY created_at DESC
		LIMIT $1`

	rows, err := r.pool.Query(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var posts []model.Post
	for rows.Next() {
		var p model.Post
		err := rows.Scan(&p.PostID, &p.AuthorID, &p.Title, &p.URL, &p.Upvotes, &p.Downvotes, &p.CreatedAt)
		if err != nil {
			return nil, err
		}
		posts = append(posts, p)
	}
	return posts, rows.Err()
}
