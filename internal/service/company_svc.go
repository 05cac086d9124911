package service

import (
	"context"
	"encoding/json"
	"log"

	"github.com/trustward/trustward-go/internal/model"
	"github.com/trustward/trustward-go/internal/repository"
)

type CompanyService struct {
	repo  *repository.CompanyRepo
	votes *repository.VoteRepo
	cache *CacheService
}

func NewCompanyService(repo *repository.CompanyRepo, votes *repository.VoteRepo, cache *CacheService) *CompanyService {
	return &CompanyService{repo: repo, votes: votes, cache: cache}
}

// LookupScore returns the company score response for a given company ID.
// Cache-aside: check Redis first, fall back to DB, then populate cache.
// An unrated company still resolves, with a nil overall score and an empty
// dimension map.
func (s *CompanyService) LookupScore(ctx context.Context, companyID string) (*model.CompanyScoreResponse, error) {
	if s.cache != nil {
		cached, err := s.cache.GetCompany(ctx, companyID)
		if err != nil {
			log.Printf("cache: company get error: %v", err)
		} else if cached != nil {
			var resp model.CompanyScoreResponse
			if err := json.Unmarshal(cached, &resp); err == nil {
				return &resp, nil
			}
		}
	}

	company, err := s.repo.FindByCompanyID(ctx, companyID)
	if err != nil {
		return nil, err
	}

	scores, err := s.repo.GetDimensionScores(ctx, companyID)
	if err != nil {
		return nil, err
	}

	dimensions := make(map[string]*model.DimensionDetail, len(scores))
	for _, sc := range scores {
		dimensions[sc.Dimension] = &model.DimensionDetail{
			Votes:     sc.VoteCount,
			MeanScore: sc.MeanScore,
		}
	}

	resp := &model.CompanyScoreResponse{
		CompanyID:    company.CompanyID,
		Name:         company.Name,
		OverallScore: company.OverallScore,
		Dimensions:   dimensions,
		TotalVotes:   company.TotalVotes,
		LastUpdated:  company.LastUpdated,
	}

	if s.cache != nil {
		if err := s.cache.SetCompany(ctx, companyID, resp); err != nil {
			log.Printf("cache: company set error: %v", err)
		}
	}

	return resp, nil
}

// ListVotes returns the company's current votes, filtered by the optional
// voter and dimension criteria.
func (s *CompanyService) ListVotes(ctx context.Context, companyID string, f model.VoteFilters) ([]model.Vote, error) {
	if _, err := s.repo.FindByCompanyID(ctx, companyID); err != nil {
		return nil, err
	}
	votes, err := s.votes.ListByCompany(ctx, companyID, f)
	if err != nil {
		return nil, err
	}
	if votes == nil {
		votes = []model.Vote{}
	}
	return votes, nil
}
