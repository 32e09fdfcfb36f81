package router

import (
	"github.com/gofiber/fiber/v3"
	recoverer "github.com/gofiber/fiber/v3/middleware/recover"

	"github.com/middha141/VowSelect/internal/handler"
	"github.com/middha141/VowSelect/internal/metrics"
	"github.com/middha141/VowSelect/internal/middleware"
)

// Handlers holds all handler instances needed by the router.
type Handlers struct {
	User    *handler.UserHandler
	Room    *handler.RoomHandler
	Photo   *handler.PhotoHandler
	Import  *handler.ImportHandler
	Vote    *handler.VoteHandler
	Ranking *handler.RankingHandler
	Export  *handler.ExportHandler
	Health  *handler.HealthHandler
}

// Setup configures the middleware stack and all API routes on the given Fiber app.
func Setup(app *fiber.App, h *Handlers, corsOrigins string) {
	// Middleware stack (order matters)
	app.Use(recoverer.New())
	app.Use(metrics.Middleware())
	app.Use(middleware.NewRequestLogger())
	app.Use(middleware.NewCORS(corsOrigins))

	// Probes and metrics (outside the API group)
	app.Get("/health/live", h.Health.Live)
	app.Get("/health/ready", h.Health.Ready)
	app.Get("/metrics", metrics.Handler())

	voteLimiter := middleware.NewVoteRateLimiter()
	importLimiter := middleware.NewImportRateLimiter()
	exportLimiter := middleware.NewExportRateLimiter()

	api := app.Group("/api")

	// User routes
	api.Post("/users", h.User.Create)
	api.Get("/users/:userId", h.User.GetByUserID)

	// Room routes
	api.Post("/rooms", h.Room.Create)
	api.Post("/rooms/join", h.Room.Join)
	api.Get("/rooms/:roomId", h.Room.Detail)
	api.Get("/rooms/:roomId/participants", h.Room.Participants)

	// Photo routes (import before :photoId so "import" is not matched as an ID)
	api.Post("/photos/import", h.Import.Start, importLimiter.Handler())
	api.Get("/photos/import/:jobId", h.Import.Status)
	api.Get("/photos/room/:roomId", h.Photo.ListByRoom)
	api.Get("/photos/:photoId", h.Photo.GetByID)

	// Vote routes
	api.Post("/votes", h.Vote.Submit, voteLimiter.Handler())
	api.Post("/votes/undo", h.Vote.Undo, voteLimiter.Handler())
	api.Get("/votes/room/:roomId/user/:userId", h.Vote.ListByUser)
	api.Get("/votes/room/:roomId/photo/:photoId", h.Vote.ListByPhoto)

	// Ranking routes
	api.Get("/rankings/:roomId", h.Ranking.GetByRoom)

	// Export routes
	api.Post("/export", h.Export.Export, exportLimiter.Handler())
	api.Get("/export/:jobId", h.Export.GetJob)
}
