package handler

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v3"

	"github.com/middha141/VowSelect/internal/metrics"
	"github.com/middha141/VowSelect/internal/middleware"
	"github.com/middha141/VowSelect/internal/model"
	"github.com/middha141/VowSelect/internal/service"
)

type VoteHandler struct {
	svc *service.VoteService
}

func NewVoteHandler(svc *service.VoteService) *VoteHandler {
	return &VoteHandler{svc: svc}
}

// Submit handles POST /api/votes
func (h *VoteHandler) Submit(c fiber.Ctx) error {
	var req model.VoteRequest
	if err := c.Bind().JSON(&req); err != nil {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_BODY", "Invalid request body")
	}

	roomID, errMsg := middleware.ValidateID("roomId", req.RoomID)
	if errMsg != "" {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_FIELD", errMsg)
	}
	req.RoomID = roomID

	photoID, errMsg := middleware.ValidateID("photoId", req.PhotoID)
	if errMsg != "" {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_FIELD", errMsg)
	}
	req.PhotoID = photoID

	userID, errMsg := middleware.ValidateID("userId", req.UserID)
	if errMsg != "" {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_FIELD", errMsg)
	}
	req.UserID = userID

	vote, err := h.svc.Cast(c.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, model.ErrInvalidScore):
			return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_SCORE", err.Error())
		case errors.Is(err, model.ErrNotFound):
			return middleware.ErrorResponse(c, fiber.StatusNotFound, "NOT_FOUND", "Photo not found in room")
		}
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "Failed to submit vote")
	}

	metrics.Metrics.VotesTotal.WithLabelValues(strconv.Itoa(int(vote.Score))).Inc()

	return c.JSON(model.VoteResponse{Accepted: true, Score: vote.Score})
}

// Undo handles POST /api/votes/undo
func (h *VoteHandler) Undo(c fiber.Ctx) error {
	var req model.UndoVoteRequest
	if err := c.Bind().JSON(&req); err != nil {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_BODY", "Invalid request body")
	}

	roomID, errMsg := middleware.ValidateID("roomId", req.RoomID)
	if errMsg != "" {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_FIELD", errMsg)
	}
	req.RoomID = roomID

	userID, errMsg := middleware.ValidateID("userId", req.UserID)
	if errMsg != "" {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_FIELD", errMsg)
	}
	req.UserID = userID

	undone, err := h.svc.Undo(c.Context(), req)
	if err != nil {
		if errors.Is(err, model.ErrNothingToUndo) {
			return middleware.ErrorResponse(c, fiber.StatusNotFound, "NOTHING_TO_UNDO", "No vote to undo")
		}
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "Failed to undo vote")
	}

	metrics.Metrics.UndosTotal.Inc()

	return c.JSON(model.UndoVoteResponse{PhotoID: undone.PhotoID})
}

// ListByPhoto handles GET /api/votes/room/:roomId/photo/:photoId
func (h *VoteHandler) ListByPhoto(c fiber.Ctx) error {
	roomID, errMsg := middleware.ValidateID("roomId", c.Params("roomId"))
	if errMsg != "" {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_FIELD", errMsg)
	}
	photoID, errMsg := middleware.ValidateID("photoId", c.Params("photoId"))
	if errMsg != "" {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_FIELD", errMsg)
	}

	resp, err := h.svc.ListByPhoto(c.Context(), roomID, photoID)
	if err != nil {
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "Failed to list votes")
	}

	return c.JSON(resp)
}

// ListByUser handles GET /api/votes/room/:roomId/user/:userId
func (h *VoteHandler) ListByUser(c fiber.Ctx) error {
	roomID, errMsg := middleware.ValidateID("roomId", c.Params("roomId"))
	if errMsg != "" {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_FIELD", errMsg)
	}
	userID, errMsg := middleware.ValidateID("userId", c.Params("userId"))
	if errMsg != "" {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_FIELD", errMsg)
	}

	resp, err := h.svc.ListByUser(c.Context(), roomID, userID)
	if err != nil {
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "Failed to list votes")
	}

	return c.JSON(resp)
}
