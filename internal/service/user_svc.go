package service

import (
	"context"
	"math"
	"time"

	"github.com/trustward/trustward-go/internal/model"
	"github.com/trustward/trustward-go/internal/repository"
)

type UserService struct {
	repo       *repository.UserRepo
	companies  *repository.CompanyRepo
	reputation *ReputationService
}

func NewUserService(repo *repository.UserRepo, companies *repository.CompanyRepo, reputation *ReputationService) *UserService {
	return &UserService{repo: repo, companies: companies, reputation: reputation}
}

// Lookup returns the voter profile for a given user ID.
func (s *UserService) Lookup(ctx context.Context, userID string) (*model.UserResponse, error) {
	u, err := s.repo.FindByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	accountAge := int(math.Floor(time.Since(u.FirstSeen).Hours() / 24))

	return &model.UserResponse{
		UserID:     u.UserID,
		Reputation: s.reputation.Score(u),
		TotalVotes: u.TotalVotes,
		AccountAge: accountAge,
	}, nil
}

// GetStats returns aggregate platform statistics.
func (s *UserService) GetStats(ctx context.Context) (*model.StatsResponse, error) {
	return s.companies.GetStats(ctx)
}
