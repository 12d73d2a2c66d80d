package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"lumina/internal/activity"
	activityhandler "lumina/internal/activity/handler"
	activitymetrics "lumina/internal/activity/metrics"
	"lumina/internal/admins"
	adminshandler "lumina/internal/admins/handler"
	"lumina/internal/comments"
	commentshandler "lumina/internal/comments/handler"
	"lumina/internal/likes"
	likeshandler "lumina/internal/likes/handler"
	likesmetrics "lumina/internal/likes/metrics"
	"lumina/internal/photos"
	photoshandler "lumina/internal/photos/handler"
	"lumina/internal/platform/config"
	"lumina/internal/platform/httpserver"
	"lumina/internal/platform/logger"
	platformmetrics "lumina/internal/platform/metrics"
	"lumina/internal/platform/middleware"
	"lumina/internal/platform/postgres"
	platformredis "lumina/internal/platform/redis"
	"lumina/internal/token"
	"lumina/internal/users"
	usershandler "lumina/internal/users/handler"
	"lumina/pkg/platform/tx"
)

// main wires high-level dependencies and keeps the server lifecycle small.
// Business logic lives in the internal service packages.
func main() {
	cfg := config.FromEnv()
	log := logger.New()

	db, err := postgres.Open(cfg.DatabaseURL)
	if err != nil {
		log.Error("postgres connection failed", "error", err.Error())
		os.Exit(1)
	}
	defer db.Close()

	redisClient, err := platformredis.New(cfg.Redis)
	if err != nil {
		// The stats cache is optional; start without it rather than refusing
		// to serve.
		log.Warn("redis unavailable, stats cache disabled", "error", err.Error())
	}
	if redisClient != nil {
		defer redisClient.Close()
	}

	tokens := token.NewService(cfg.JWTSigningKey, "lumina")

	actMetrics := activitymetrics.New()
	actService := activity.NewService(activity.NewPostgres(db), actMetrics)
	hook := activity.NewHook(actService, log)
	cachedStats := activity.NewCachedStats(actService, redisClient, log, actMetrics,
		cfg.StatsWindow, cfg.StatsCacheTTL)

	photoStore := photos.NewPostgres(db)
	likeStore := likes.NewPostgres(db)
	commentStore := comments.NewPostgres(db)
	userStore := users.NewPostgres(db)
	adminStore := admins.NewPostgres(db)

	photoService := photos.NewService(photoStore, likeStore, commentStore, hook, tx.NewSQLRunner(db))
	likeService := likes.NewService(likeStore, photoService, hook, likesmetrics.New())
	commentService := comments.NewService(commentStore, photoService, hook)
	userService := users.NewService(userStore, tokens, hook)
	adminService := admins.NewService(adminStore, tokens, hook)

	actHandler := activityhandler.New(actService, cachedStats, log,
		cfg.LogsPageSize, int(cfg.StatsWindow.Hours())/24)
	likeHandler := likeshandler.New(likeService, log)
	commentHandler := commentshandler.New(commentService, log)
	photoHandler := photoshandler.New(photoService, log)
	userHandler := usershandler.New(userService, log)
	adminHandler := adminshandler.New(adminService, log)

	r := chi.NewRouter()
	r.Use(middleware.Recovery(log))
	r.Use(middleware.RequestID)
	r.Use(middleware.RequestTime)
	r.Use(middleware.ClientMetadata)
	r.Use(middleware.Logger(log))
	r.Use(middleware.Metrics(platformmetrics.New()))
	r.Use(middleware.Timeout(30 * time.Second))

	r.Handle("/metrics", promhttp.Handler())
	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	userHandler.Register(r)
	adminHandler.Register(r)
	commentHandler.RegisterPublic(r)

	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireUser(tokens, log))
		userHandler.RegisterAuthenticated(r)
		photoHandler.RegisterUser(r)
		likeHandler.Register(r)
		commentHandler.Register(r)
	})

	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireAdmin(tokens, log))
		actHandler.Register(r)
		photoHandler.RegisterAdmin(r)
	})

	srv := httpserver.New(cfg.Addr, r)

	log.Info("starting lumina", "addr", cfg.Addr)

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("server error", "error", err.Error())
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error("graceful shutdown failed", "error", err.Error())
	}
}
