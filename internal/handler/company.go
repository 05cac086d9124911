package handler

import (
	"github.com/gofiber/fiber/v3"

	"github.com/trustward/trustward-go/internal/middleware"
	"github.com/trustward/trustward-go/internal/model"
	"github.com/trustward/trustward-go/internal/repository"
	"github.com/trustward/trustward-go/internal/service"
)

type CompanyHandler struct {
	svc *service.CompanyService
}

func NewCompanyHandler(svc *service.CompanyService) *CompanyHandler {
	return &CompanyHandler{svc: svc}
}

// GetByCompanyID handles GET /api/companies/:companyId
func (h *CompanyHandler) GetByCompanyID(c fiber.Ctx) error {
	companyID, errMsg := middleware.ValidateCompanyID(c.Params("companyId"))
	if errMsg != "" {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_FIELD", errMsg)
	}

	resp, err := h.svc.LookupScore(c.Context(), companyID)
	if err != nil {
		if repository.IsNotFound(err) {
			return middleware.ErrorResponse(c, fiber.StatusNotFound, "NOT_FOUND", "Company not found")
		}
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "Failed to lookup company")
	}

	return c.JSON(resp)
}

// ListVotes handles GET /api/companies/:companyId/votes?voterId=X&dimension=Y
func (h *CompanyHandler) ListVotes(c fiber.Ctx) error {
	companyID, errMsg := middleware.ValidateCompanyID(c.Params("companyId"))
	if errMsg != "" {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_FIELD", errMsg)
	}

	var filters model.VoteFilters
	if voterID := fiber.Query[string](c, "voterId"); voterID != "" {
		voterID, errMsg := middleware.ValidateUserID(voterID)
		if errMsg != "" {
			return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_FIELD", errMsg)
		}
		filters.VoterID = voterID
	}
	if dimension := fiber.Query[string](c, "dimension"); dimension != "" {
		dimension, errMsg := middleware.ValidateDimension(dimension)
		if errMsg != "" {
			return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_FIELD", errMsg)
		}
		filters.Dimension = dimension
	}

	votes, err := h.svc.ListVotes(c.Context(), companyID, filters)
	if err != nil {
		if repository.IsNotFound(err) {
			return middleware.ErrorResponse(c, fiber.StatusNotFound, "NOT_FOUND", "Company not found")
		}
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "Failed to list votes")
	}

	return c.JSON(fiber.Map{"companyId": companyID, "votes": votes})
}
