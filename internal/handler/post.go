package handler

import (
	"github.com/gofiber/fiber/v3"

	"github.com/trustward/trustward-go/internal/middleware"
	"github.com/trustward/trustward-go/internal/model"
	"github.com/trustward/trustward-go/internal/service"
)

type PostHandler struct {
	svc *service.PostService
}

func NewPostHandler(svc *service.PostService) *PostHandler {
	return &PostHandler{svc: svc}
}

// List handles GET /api/posts?sort=hot|top
func (h *PostHandler) List(c fiber.Ctx) error {
	mode := model.RankMode(fiber.Query[string](c, "sort", string(model.RankHot)))
	if mode != model.RankHot && mode != model.RankTop {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_SORT",
			"Invalid sort. Must be one of: hot, top")
	}

	resp, err := h.svc.List(c.Context(), mode)
	if err != nil {
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "Failed to list posts")
	}

	return c.JSON(resp)
}
