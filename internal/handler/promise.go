package handler

import (
	"errors"

	"github.com/gofiber/fiber/v3"

	"github.com/trustward/trustward-go/internal/middleware"
	"github.com/trustward/trustward-go/internal/model"
	"github.com/trustward/trustward-go/internal/repository"
	"github.com/trustward/trustward-go/internal/service"
)

type PromiseHandler struct {
	svc     *service.PromiseService
	voteSvc *service.VoteService
}

func NewPromiseHandler(svc *service.PromiseService, voteSvc *service.VoteService) *PromiseHandler {
	return &PromiseHandler{svc: svc, voteSvc: voteSvc}
}

// GetByPromiseID handles GET /api/promises/:promiseId
func (h *PromiseHandler) GetByPromiseID(c fiber.Ctx) error {
	promiseID, errMsg := middleware.ValidatePromiseID(c.Params("promiseId"))
	if errMsg != "" {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_FIELD", errMsg)
	}

	resp, err := h.svc.Lookup(c.Context(), promiseID)
	if err != nil {
		if repository.IsNotFound(err) {
			return middleware.ErrorResponse(c, fiber.StatusNotFound, "NOT_FOUND", "Promise not found")
		}
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "Failed to lookup promise")
	}

	return c.JSON(resp)
}

// SubmitVerdict handles POST /api/promises/:promiseId/votes
func (h *PromiseHandler) SubmitVerdict(c fiber.Ctx) error {
	promiseID, errMsg := middleware.ValidatePromiseID(c.Params("promiseId"))
	if errMsg != "" {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_FIELD", errMsg)
	}

	var req model.PromiseVoteRequest
	if err := c.Bind().JSON(&req); err != nil {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_BODY", "Invalid request body")
	}
	req.PromiseID = promiseID

	voterID, errMsg := middleware.ValidateUserID(req.VoterID)
	if errMsg != "" {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_FIELD", errMsg)
	}
	req.VoterID = voterID

	if req.Verdict == "" {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "MISSING_FIELDS", "voterId and verdict are required")
	}
	if !model.ValidVerdicts[req.Verdict] {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_VERDICT",
			"Invalid verdict. Must be one of: kept, broken, partial")
	}

	resp, err := h.voteSvc.SubmitVerdict(c.Context(), req)
	if err != nil {
		if errors.Is(err, model.ErrValidation) {
			return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_VOTE", err.Error())
		}
		if repository.IsNotFound(err) {
			return middleware.ErrorResponse(c, fiber.StatusNotFound, "NOT_FOUND", "Promise not found")
		}
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "Failed to submit verdict")
	}

	Metrics.PromiseVotesTotal.WithLabelValues(req.Verdict).Inc()
	if resp.Consensus.Changed {
		Metrics.ConsensusTransitions.WithLabelValues(resp.Consensus.NewStatus).Inc()
	}

	return c.JSON(resp)
}
