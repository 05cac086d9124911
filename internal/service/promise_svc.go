package service

import (
	"context"
	"encoding/json"
	"log"

	"github.com/trustward/trustward-go/internal/model"
	"github.com/trustward/trustward-go/internal/repository"
)

type PromiseService struct {
	repo  *repository.PromiseRepo
	cache *CacheService
}

func NewPromiseService(repo *repository.PromiseRepo, cache *CacheService) *PromiseService {
	return &PromiseService{repo: repo, cache: cache}
}

// Lookup returns the promise response with its current verdict tally.
// Cache-aside like company lookups.
func (s *PromiseService) Lookup(ctx context.Context, promiseID string) (*model.PromiseResponse, error) {
	if s.cache != nil {
		cached, err := s.cache.GetPromise(ctx, promiseID)
		if err != nil {
			log.Printf("cache: promise get error: %v", err)
		} else if cached != nil {
			var resp model.PromiseResponse
			if err := json.Unmarshal(cached, &resp); err == nil {
				return &resp, nil
			}
		}
	}

	promise, err := s.repo.FindByPromiseID(ctx, promiseID)
	if err != nil {
		return nil, err
	}

	tally, err := s.repo.Tally(ctx, promiseID)
	if err != nil {
		return nil, err
	}

	resp := &model.PromiseResponse{
		PromiseID:     promise.PromiseID,
		CompanyID:     promise.CompanyID,
		Title:         promise.Title,
		Status:        promise.Status,
		DueAt:         promise.DueAt,
		Tally:         tally,
		TotalVotes:    promise.TotalVotes,
		LastEvaluated: promise.LastEvaluated,
	}

	if s.cache != nil {
		if err := s.cache.SetPromise(ctx, promiseID, resp); err != nil {
			log.Printf("cache: promise set error: %v", err)
		}
	}

	return resp, nil
}
