package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/joho/godotenv"

	"github.com/middha141/VowSelect/internal/config"
	"github.com/middha141/VowSelect/internal/db"
	"github.com/middha141/VowSelect/internal/handler"
	"github.com/middha141/VowSelect/internal/metrics"
	"github.com/middha141/VowSelect/internal/middleware"
	"github.com/middha141/VowSelect/internal/repository"
	"github.com/middha141/VowSelect/internal/router"
	"github.com/middha141/VowSelect/internal/service"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg := config.Load()
	middleware.InitLogger(cfg.LogLevel, "vowselect-api")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := db.NewPool(ctx, cfg.DatabaseURL, int32(cfg.DBMaxConns), int32(cfg.DBMinConns))
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}
	defer pool.Close()

	if err := db.ApplySchema(ctx, pool); err != nil {
		log.Fatalf("failed to apply schema: %v", err)
	}

	cache := service.NewCacheService(cfg.RedisURL)
	defer cache.Close()

	metrics.Init(pool)

	userRepo := repository.NewUserRepo(pool)
	roomRepo := repository.NewRoomRepo(pool)
	photoRepo := repository.NewPhotoRepo(pool)
	voteRepo := repository.NewVoteRepo(pool)
	jobRepo := repository.NewJobRepo(pool)
	exportRepo := repository.NewExportRepo(pool)

	userSvc := service.NewUserService(userRepo)
	roomSvc := service.NewRoomService(roomRepo, userRepo, photoRepo, cache)
	photoSvc := service.NewPhotoService(photoRepo, roomRepo)
	voteSvc := service.NewVoteService(voteRepo, photoRepo, cache)
	rankingSvc := service.NewRankingService(pool, cache)
	exportSvc := service.NewExportService(rankingSvc, exportRepo)
	importSvc := service.NewImportService(ctx, jobRepo, photoRepo, roomRepo, cache,
		cfg.ImportPageSize, cfg.ImportPageTimeout)

	h := &router.Handlers{
		User:    handler.NewUserHandler(userSvc),
		Room:    handler.NewRoomHandler(roomSvc),
		Photo:   handler.NewPhotoHandler(photoSvc),
		Import:  handler.NewImportHandler(importSvc),
		Vote:    handler.NewVoteHandler(voteSvc),
		Ranking: handler.NewRankingHandler(rankingSvc),
		Export:  handler.NewExportHandler(exportSvc),
		Health:  handler.NewHealthHandler(pool, cache.Client()),
	}

	app := fiber.New(fiber.Config{
		AppName:      "VowSelect API",
		ServerHeader: "VowSelect",
	})
	router.Setup(app, h, cfg.CORSOrigins)

	go func() {
		log.Printf("VowSelect backend starting on :%s (env=%s)", cfg.Port, cfg.Environment)
		if err := app.Listen(":" + cfg.Port); err != nil {
			log.Fatalf("server error: %v", err)
		}
	}()

	<-ctx.Done()
	log.Println("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Printf("shutdown error: %v", err)
	}

	// Let in-flight import jobs finish marking their state.
	importSvc.Wait()
}
