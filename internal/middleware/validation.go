package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

// Field length limits matching database schema constraints.
const (
	MinUsernameLen = 2
	MaxUsernameLen = 50
	MaxPathLen     = 1024
)

// ErrorResponse is a helper that returns a standard API error response.
func ErrorResponse(c fiber.Ctx, status int, code, message string) error {
	return c.Status(status).JSON(fiber.Map{
		"error": fiber.Map{
			"code":    code,
			"message": message,
		},
	})
}

// ValidateID checks that an entity id (room, photo, user, job) is a
// well-formed UUID. Returns the normalized id and an error message, empty on
// success.
func ValidateID(field, id string) (string, string) {
	id = strings.TrimSpace(id)
	if id == "" {
		return "", field + " is required"
	}
	parsed, err := uuid.Parse(id)
	if err != nil {
		return "", field + " is not a valid id"
	}
	return parsed.String(), ""
}

// ValidateUsername checks display-name length bounds.
func ValidateUsername(name string) (string, string) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", "username is required"
	}
	if len(name) < MinUsernameLen || len(name) > MaxUsernameLen {
		return "", "username must be 2-50 characters"
	}
	return name, ""
}

// ValidatePath bounds a source folder path. Whether it exists is the import
// run's problem; this only rejects garbage before a job row gets created.
func ValidatePath(path string) (string, string) {
	path = strings.TrimSpace(path)
	if len(path) > MaxPathLen {
		return "", "folder path too long"
	}
	return path, ""
}
