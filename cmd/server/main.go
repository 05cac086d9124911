package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v3"

	"github.com/trustward/trustward-go/internal/config"
	"github.com/trustward/trustward-go/internal/db"
	"github.com/trustward/trustward-go/internal/handler"
	"github.com/trustward/trustward-go/internal/middleware"
	"github.com/trustward/trustward-go/internal/repository"
	"github.com/trustward/trustward-go/internal/router"
	"github.com/trustward/trustward-go/internal/service"
)

func main() {
	cfg := config.Load()
	middleware.InitLogger(cfg.LogLevel, "trustward-api")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := db.NewPool(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}
	defer pool.Close()

	cache := service.NewCacheService(cfg.RedisURL)
	defer cache.Close()

	handler.InitMetrics(pool)

	// Repositories
	voteRepo := repository.NewVoteRepo(pool)
	promiseRepo := repository.NewPromiseRepo(pool)
	companyRepo := repository.NewCompanyRepo(pool)
	postRepo := repository.NewPostRepo(pool)
	userRepo := repository.NewUserRepo(pool)

	// Services
	scoreSvc := service.NewScoreService(pool)
	consensusSvc := service.NewConsensusService(promiseRepo, cache, service.ConsensusOptions{
		Quorum:    cfg.Engine.Quorum,
		Threshold: cfg.Engine.Threshold,
	})
	companySvc := service.NewCompanyService(companyRepo, voteRepo, cache)
	promiseSvc := service.NewPromiseService(promiseRepo, cache)
	voteSvc := service.NewVoteService(voteRepo, promiseRepo, scoreSvc, consensusSvc, companySvc, cache, cfg.Engine)
	rankingSvc := service.NewRankingService(cfg.Engine.DecayHalfLifeHours)
	postSvc := service.NewPostService(postRepo, rankingSvc)
	userSvc := service.NewUserService(userRepo, companyRepo, service.NewReputationService())

	// Reconciliation sweep heals any recompute the write path missed
	sweep := service.NewSweepWorker(companyRepo, promiseRepo, scoreSvc, consensusSvc, cache, cfg.SweepInterval)
	go sweep.Start(ctx)

	app := fiber.New(fiber.Config{
		AppName:      "Trustward API",
		ServerHeader: "Trustward",
	})

	router.Setup(app, &router.Handlers{
		Vote:    handler.NewVoteHandler(voteSvc, cfg.IPHashSalt),
		Company: handler.NewCompanyHandler(companySvc),
		Promise: handler.NewPromiseHandler(promiseSvc, voteSvc),
		Post:    handler.NewPostHandler(postSvc),
		User:    handler.NewUserHandler(userSvc),
		Stats:   handler.NewStatsHandler(userSvc),
		Health:  handler.NewHealthHandler(pool, cache.Client()),
	}, cfg.CORSOrigins)

	go func() {
		<-ctx.Done()
		log.Println("shutting down")
		if err := app.Shutdown(); err != nil {
			log.Printf("shutdown error: %v", err)
		}
	}()

	log.Printf("Trustward backend starting on :%s (env=%s)", cfg.Port, cfg.Environment)
	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Fatal(err)
	}
}
