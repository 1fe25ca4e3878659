package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/cityworks/complaints-api/docs"
	"github.com/cityworks/complaints-api/internal/api"
	"github.com/cityworks/complaints-api/internal/infrastructure/bootstrap"
	"github.com/cityworks/complaints-api/internal/infrastructure/config"
	mongodb "github.com/cityworks/complaints-api/internal/infrastructure/db/mongo"
	redisdb "github.com/cityworks/complaints-api/internal/infrastructure/db/redis"
	"github.com/cityworks/complaints-api/pkg/logger"
)

// @title        Community Complaint Portal API
// @version      1.0
// @description  Municipal complaint tracking backend: residents file issues, service staff and administrators triage them.
// @BasePath     /api
//
// @securityDefinitions.apikey BearerAuth
// @in   header
// @name Authorization
func main() {
	cfg := config.Load()

	log := logger.New(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	if cfg.JWTSecret == "" {
		log.Fatal().Msg("JWT_SECRET must be set")
	}

	ctx := context.Background()

	client, db, err := mongodb.Connect(ctx, mongodb.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("mongodb connection failed")
	}
	defer func() {
		_ = client.Disconnect(context.Background())
	}()

	rdb, err := redisdb.Connect(ctx, redisdb.Config{
		Addr: cfg.Redis.Addr,
		DB:   cfg.Redis.DB,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("redis connection failed")
	}
	defer func() {
		_ = rdb.Close()
	}()

	userRepo := mongodb.NewUserRepository(db)
	issueRepo := mongodb.NewIssueRepository(db)
	if err := userRepo.EnsureIndexes(ctx); err != nil {
		log.Fatal().Err(err).Msg("failed to create user indexes")
	}
	if err := issueRepo.EnsureIndexes(ctx); err != nil {
		log.Fatal().Err(err).Msg("failed to create issue indexes")
	}

	if cfg.SeedDefaultUsers {
		log.Warn().Msg("seeding default users; do not enable in production")
		if err := bootstrap.SeedDefaultUsers(ctx, userRepo, cfg.SeedAdminPassword, cfg.SeedUserPassword, log); err != nil {
			log.Fatal().Err(err).Msg("seeding failed")
		}
	}

	e := api.NewRouter(db, rdb, cfg, log)

	go func() {
		log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("starting server")
		if err := e.Start(":" + cfg.Port); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server stopped")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
}
