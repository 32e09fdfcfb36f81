package handler

import (
	"errors"

	"github.com/gofiber/fiber/v3"

	"github.com/middha141/VowSelect/internal/middleware"
	"github.com/middha141/VowSelect/internal/model"
	"github.com/middha141/VowSelect/internal/service"
)

type UserHandler struct {
	svc *service.UserService
}

func NewUserHandler(svc *service.UserService) *UserHandler {
	return &UserHandler{svc: svc}
}

// Create handles POST /api/users
func (h *UserHandler) Create(c fiber.Ctx) error {
	var req model.CreateUserRequest
	if err := c.Bind().JSON(&req); err != nil {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_BODY", "Invalid request body")
	}

	username, errMsg := middleware.ValidateUsername(req.Username)
	if errMsg != "" {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_FIELD", errMsg)
	}

	user, err := h.svc.Create(c.Context(), username)
	if err != nil {
		if errors.Is(err, model.ErrInvalidInput) {
			return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_FIELD", err.Error())
		}
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "Failed to create user")
	}

	return c.Status(fiber.StatusCreated).JSON(user)
}

// GetByUserID handles GET /api/users/:userId
func (h *UserHandler) GetByUserID(c fiber.Ctx) error {
	userID, errMsg := middleware.ValidateID("userId", c.Params("userId"))
	if errMsg != "" {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_FIELD", errMsg)
	}

	user, err := h.svc.Get(c.Context(), userID)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return middleware.ErrorResponse(c, fiber.StatusNotFound, "NOT_FOUND", "User not found")
		}
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "Failed to lookup user")
	}

	return c.JSON(user)
}
