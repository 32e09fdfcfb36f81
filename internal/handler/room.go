package handler

import (
	"errors"

	"github.com/gofiber/fiber/v3"

	"github.com/middha141/VowSelect/internal/middleware"
	"github.com/middha141/VowSelect/internal/model"
	"github.com/middha141/VowSelect/internal/service"
	"github.com/middha141/VowSelect/pkg/roomcode"
)

type RoomHandler struct {
	svc *service.RoomService
}

func NewRoomHandler(svc *service.RoomService) *RoomHandler {
	return &RoomHandler{svc: svc}
}

// Create handles POST /api/rooms?userId=X
func (h *RoomHandler) Create(c fiber.Ctx) error {
	creatorID, errMsg := middleware.ValidateID("userId", fiber.Query[string](c, "userId"))
	if errMsg != "" {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_FIELD", errMsg)
	}

	room, err := h.svc.Create(c.Context(), creatorID)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return middleware.ErrorResponse(c, fiber.StatusNotFound, "NOT_FOUND", "User not found")
		}
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "Failed to create room")
	}

	return c.Status(fiber.StatusCreated).JSON(model.CreateRoomResponse{
		RoomID:    room.ID,
		Code:      room.Code,
		CreatorID: room.CreatorID,
	})
}

// Join handles POST /api/rooms/join
func (h *RoomHandler) Join(c fiber.Ctx) error {
	var req model.JoinRoomRequest
	if err := c.Bind().JSON(&req); err != nil {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_BODY", "Invalid request body")
	}

	if !roomcode.Valid(req.Code) {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_CODE", "Room code must be 5 digits")
	}

	userID, errMsg := middleware.ValidateID("userId", req.UserID)
	if errMsg != "" {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_FIELD", errMsg)
	}
	req.UserID = userID

	username, errMsg := middleware.ValidateUsername(req.Username)
	if errMsg != "" {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_FIELD", errMsg)
	}
	req.Username = username

	resp, err := h.svc.Join(c.Context(), req)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return middleware.ErrorResponse(c, fiber.StatusNotFound, "NOT_FOUND", "Room not found")
		}
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "Failed to join room")
	}

	return c.JSON(resp)
}

// Detail handles GET /api/rooms/:roomId
func (h *RoomHandler) Detail(c fiber.Ctx) error {
	roomID, errMsg := middleware.ValidateID("roomId", c.Params("roomId"))
	if errMsg != "" {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_FIELD", errMsg)
	}

	resp, err := h.svc.Detail(c.Context(), roomID)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return middleware.ErrorResponse(c, fiber.StatusNotFound, "NOT_FOUND", "Room not found")
		}
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "Failed to lookup room")
	}

	return c.JSON(resp)
}

// Participants handles GET /api/rooms/:roomId/participants
func (h *RoomHandler) Participants(c fiber.Ctx) error {
	roomID, errMsg := middleware.ValidateID("roomId", c.Params("roomId"))
	if errMsg != "" {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_FIELD", errMsg)
	}

	participants, err := h.svc.Participants(c.Context(), roomID)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return middleware.ErrorResponse(c, fiber.StatusNotFound, "NOT_FOUND", "Room not found")
		}
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "Failed to list participants")
	}

	return c.JSON(fiber.Map{"participants": participants})
}
