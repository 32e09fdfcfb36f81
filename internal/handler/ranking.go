package handler

import (
	"errors"

	"github.com/gofiber/fiber/v3"

	"github.com/middha141/VowSelect/internal/middleware"
	"github.com/middha141/VowSelect/internal/model"
	"github.com/middha141/VowSelect/internal/service"
)

type RankingHandler struct {
	svc *service.RankingService
}

func NewRankingHandler(svc *service.RankingService) *RankingHandler {
	return &RankingHandler{svc: svc}
}

// GetByRoom handles GET /api/rankings/:roomId
func (h *RankingHandler) GetByRoom(c fiber.Ctx) error {
	roomID, errMsg := middleware.ValidateID("roomId", c.Params("roomId"))
	if errMsg != "" {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_FIELD", errMsg)
	}

	entries, err := h.svc.Rank(c.Context(), roomID)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return middleware.ErrorResponse(c, fiber.StatusNotFound, "NOT_FOUND", "Room not found")
		}
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "Failed to compute rankings")
	}

	return c.JSON(fiber.Map{"rankings": entries})
}
