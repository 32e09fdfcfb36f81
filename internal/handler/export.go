package handler

import (
	"errors"

	"github.com/gofiber/fiber/v3"

	"github.com/middha141/VowSelect/internal/middleware"
	"github.com/middha141/VowSelect/internal/model"
	"github.com/middha141/VowSelect/internal/service"
)

type ExportHandler struct {
	svc *service.ExportService
}

func NewExportHandler(svc *service.ExportService) *ExportHandler {
	return &ExportHandler{svc: svc}
}

// Export handles POST /api/export
func (h *ExportHandler) Export(c fiber.Ctx) error {
	var req model.ExportRequest
	if err := c.Bind().JSON(&req); err != nil {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_BODY", "Invalid request body")
	}

	roomID, errMsg := middleware.ValidateID("roomId", req.RoomID)
	if errMsg != "" {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_FIELD", errMsg)
	}
	req.RoomID = roomID

	resp, err := h.svc.Export(c.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, model.ErrInvalidInput):
			return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_FIELD", err.Error())
		case errors.Is(err, model.ErrNotFound):
			return middleware.ErrorResponse(c, fiber.StatusNotFound, "NOT_FOUND", "Room not found")
		}
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "Failed to export rankings")
	}

	return c.JSON(resp)
}

// GetJob handles GET /api/export/:jobId
func (h *ExportHandler) GetJob(c fiber.Ctx) error {
	jobID, errMsg := middleware.ValidateID("jobId", c.Params("jobId"))
	if errMsg != "" {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_FIELD", errMsg)
	}

	job, err := h.svc.GetJob(c.Context(), jobID)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return middleware.ErrorResponse(c, fiber.StatusNotFound, "NOT_FOUND", "Export job not found")
		}
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "Failed to lookup export job")
	}

	return c.JSON(job)
}
