package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/cors"
)

// ParseOrigins splits a comma-separated CORS_ORIGINS value into a clean
// origin list. A blank value, a lone "*", or a list that contains "*"
// collapses to the allow-all wildcard.
func ParseOrigins(corsOrigins string) []string {
	wildcard := []string{"*"}
	if corsOrigins == "" {
		return wildcard
	}

	var origins []string
	for _, o := range strings.Split(corsOrigins, ",") {
		o = strings.TrimSpace(o)
		if o == "*" {
			return wildcard
		}
		if o != "" {
			origins = append(origins, o)
		}
	}
	if len(origins) == 0 {
		return wildcard
	}
	return origins
}

// NewCORS returns the CORS middleware for the browser client. The API is
// consumed from the voting web app, which sends the user id in X-User-ID and
// reads the rate limit headers to back off voting bursts.
func NewCORS(corsOrigins string) fiber.Handler {
	return cors.New(cors.Config{
		AllowOrigins: ParseOrigins(corsOrigins),
		AllowMethods: []string{
			fiber.MethodGet,
			fiber.MethodPost,
			fiber.MethodOptions,
		},
		AllowHeaders: []string{
			"Origin",
			"Content-Type",
			"Accept",
			"X-User-ID",
		},
		ExposeHeaders: []string{
			"X-RateLimit-Limit",
			"X-RateLimit-Remaining",
			"X-RateLimit-Reset",
		},
		MaxAge: 86400,
	})
}
