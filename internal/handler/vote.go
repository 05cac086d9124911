package handler

import (
	"errors"

	"github.com/gofiber/fiber/v3"

	"github.com/trustward/trustward-go/internal/middleware"
	"github.com/trustward/trustward-go/internal/model"
	"github.com/trustward/trustward-go/internal/repository"
	"github.com/trustward/trustward-go/internal/service"
	"github.com/trustward/trustward-go/pkg/hash"
)

type VoteHandler struct {
	svc    *service.VoteService
	ipSalt string
}

func NewVoteHandler(svc *service.VoteService, ipSalt string) *VoteHandler {
	return &VoteHandler{svc: svc, ipSalt: ipSalt}
}

// Submit handles POST /api/votes
func (h *VoteHandler) Submit(c fiber.Ctx) error {
	var req model.VoteRequest
	if err := c.Bind().JSON(&req); err != nil {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_BODY", "Invalid request body")
	}

	companyID, errMsg := middleware.ValidateCompanyID(req.CompanyID)
	if errMsg != "" {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_FIELD", errMsg)
	}
	req.CompanyID = companyID

	voterID, errMsg := middleware.ValidateUserID(req.VoterID)
	if errMsg != "" {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_FIELD", errMsg)
	}
	req.VoterID = voterID

	dimension, errMsg := middleware.ValidateDimension(req.Dimension)
	if errMsg != "" {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_FIELD", errMsg)
	}
	req.Dimension = dimension

	ipHash := hash.HashIP(c.IP(), h.ipSalt)

	resp, err := h.svc.Submit(c.Context(), req, ipHash)
	if err != nil {
		if errors.Is(err, model.ErrValidation) {
			return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_VOTE", err.Error())
		}
		if repository.IsNotFound(err) {
			return middleware.ErrorResponse(c, fiber.StatusNotFound, "NOT_FOUND", "Company not found")
		}
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "Failed to submit vote")
	}

	Metrics.VotesTotal.WithLabelValues(req.Dimension).Inc()

	return c.JSON(resp)
}

// Delete handles DELETE /api/votes
func (h *VoteHandler) Delete(c fiber.Ctx) error {
	var req model.VoteDeleteRequest
	if err := c.Bind().JSON(&req); err != nil {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_BODY", "Invalid request body")
	}

	companyID, errMsg := middleware.ValidateCompanyID(req.CompanyID)
	if errMsg != "" {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_FIELD", errMsg)
	}
	req.CompanyID = companyID

	voterID, errMsg := middleware.ValidateUserID(req.VoterID)
	if errMsg != "" {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_FIELD", errMsg)
	}
	req.VoterID = voterID

	dimension, errMsg := middleware.ValidateDimension(req.Dimension)
	if errMsg != "" {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_FIELD", errMsg)
	}
	req.Dimension = dimension

	if err := h.svc.Delete(c.Context(), req); err != nil {
		if errors.Is(err, model.ErrValidation) {
			return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_VOTE", err.Error())
		}
		if repository.IsNotFound(err) {
			return middleware.ErrorResponse(c, fiber.StatusNotFound, "NOT_FOUND", "Vote not found")
		}
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "Failed to delete vote")
	}

	return c.JSON(fiber.Map{"success": true})
}
