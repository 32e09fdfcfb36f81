package handler

import (
	"errors"

	"github.com/gofiber/fiber/v3"

	"github.com/middha141/VowSelect/internal/middleware"
	"github.com/middha141/VowSelect/internal/model"
	"github.com/middha141/VowSelect/internal/service"
)

type PhotoHandler struct {
	svc *service.PhotoService
}

func NewPhotoHandler(svc *service.PhotoService) *PhotoHandler {
	return &PhotoHandler{svc: svc}
}

// ListByRoom handles GET /api/photos/room/:roomId?skip=0&limit=50
func (h *PhotoHandler) ListByRoom(c fiber.Ctx) error {
	roomID, errMsg := middleware.ValidateID("roomId", c.Params("roomId"))
	if errMsg != "" {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_FIELD", errMsg)
	}

	skip := fiber.Query[int](c, "skip", 0)
	limit := fiber.Query[int](c, "limit", 50)

	resp, err := h.svc.List(c.Context(), roomID, skip, limit)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return middleware.ErrorResponse(c, fiber.StatusNotFound, "NOT_FOUND", "Room not found")
		}
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "Failed to list photos")
	}

	return c.JSON(resp)
}

// GetByID handles GET /api/photos/:photoId
func (h *PhotoHandler) GetByID(c fiber.Ctx) error {
	photoID, errMsg := middleware.ValidateID("photoId", c.Params("photoId"))
	if errMsg != "" {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_FIELD", errMsg)
	}

	photo, err := h.svc.Get(c.Context(), photoID)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return middleware.ErrorResponse(c, fiber.StatusNotFound, "NOT_FOUND", "Photo not found")
		}
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "Failed to lookup photo")
	}

	return c.JSON(photo)
}
