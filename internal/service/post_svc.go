package service

import (
	"context"
	"time"

	"github.com/trustward/trustward-go/internal/model"
	"github.com/trustward/trustward-go/internal/repository"
)

const postListLimit = 200

type PostService struct {
	repo    *repository.PostRepo
	ranking *RankingService
}

func NewPostService(repo *repository.PostRepo, ranking *RankingService) *PostService {
	return &PostService{repo: repo, ranking: ranking}
}

// List returns the current posts ordered by the given mode. Ordering is
// computed from stored tallies at read time; nothing is persisted.
func (s *PostService) List(ctx context.Context, mode model.RankMode) (*model.PostListResponse, error) {
	posts, err := s.repo.List(ctx, postListLimit)
	if err != nil {
		return nil, err
	}

	ranked := s.ranking.RankPosts(posts, mode, time.Now())
	if ranked == nil {
		ranked = []model.Post{}
	}

	return &model.PostListResponse{Posts: ranked, Sort: mode}, nil
}
