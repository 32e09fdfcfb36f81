package handler

import (
	"errors"

	"github.com/gofiber/fiber/v3"

	"github.com/middha141/VowSelect/internal/middleware"
	"github.com/middha141/VowSelect/internal/model"
	"github.com/middha141/VowSelect/internal/service"
)

type ImportHandler struct {
	svc *service.ImportService
}

func NewImportHandler(svc *service.ImportService) *ImportHandler {
	return &ImportHandler{svc: svc}
}

// Start handles POST /api/photos/import
func (h *ImportHandler) Start(c fiber.Ctx) error {
	var req model.ImportRequest
	if err := c.Bind().JSON(&req); err != nil {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_BODY", "Invalid request body")
	}

	roomID, errMsg := middleware.ValidateID("roomId", req.RoomID)
	if errMsg != "" {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_FIELD", errMsg)
	}
	req.RoomID = roomID

	if req.FolderPath != "" {
		path, errMsg := middleware.ValidatePath(req.FolderPath)
		if errMsg != "" {
			return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_FIELD", errMsg)
		}
		req.FolderPath = path
	}

	job, err := h.svc.StartImport(c.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, model.ErrInvalidSource):
			return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_SOURCE", err.Error())
		case errors.Is(err, model.ErrNotFound):
			return middleware.ErrorResponse(c, fiber.StatusNotFound, "NOT_FOUND", "Room not found")
		case errors.Is(err, model.ErrImportInProgress):
			return middleware.ErrorResponse(c, fiber.StatusConflict, "IMPORT_IN_PROGRESS", err.Error())
		}
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "Failed to start import")
	}

	return c.Status(fiber.StatusAccepted).JSON(model.ImportResponse{
		JobID:  job.ID,
		Status: job.Status,
	})
}

// Status handles GET /api/photos/import/:jobId
func (h *ImportHandler) Status(c fiber.Ctx) error {
	jobID, errMsg := middleware.ValidateID("jobId", c.Params("jobId"))
	if errMsg != "" {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_FIELD", errMsg)
	}

	job, err := h.svc.GetStatus(c.Context(), jobID)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return middleware.ErrorResponse(c, fiber.StatusNotFound, "NOT_FOUND", "Import job not found")
		}
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "Failed to lookup import job")
	}

	return c.JSON(job)
}
