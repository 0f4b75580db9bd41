package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"joyeria-system/config"
	"joyeria-system/internal/database"
	"joyeria-system/internal/database/models"
	"joyeria-system/internal/seed"
	"joyeria-system/internal/server"
	"joyeria-system/internal/services/dashboard"
	"joyeria-system/internal/services/products"
	"joyeria-system/internal/store"
)

func main() {
	cfg := config.LoadConfig()

	level := slog.LevelInfo
	if cfg.Server.Env == "development" {
		level = slog.LevelDebug
	}
	log := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level}))

	// Prices travel as JSON numbers, matching the API contract.
	decimal.MarshalJSONWithoutQuotes = true

	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := database.NewConnection(cfg.DB.URL)
	if err != nil {
		log.Error("database connection failed", "err", err)
		os.Exit(1)
	}
	log.Info("database connected")

	if err := models.Migrate(db); err != nil {
		log.Error("migration failed", "err", err)
		os.Exit(1)
	}

	st := store.NewGorm(db)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Seeding failure is logged and swallowed; the server keeps serving
	// with whatever data is present.
	if err := seed.Run(ctx, st, log); err != nil {
		log.Error("seeding sample data failed", "err", err)
	}

	productsSvc := products.NewService(st)
	dashboardSvc := dashboard.NewService(st)

	router := server.NewRouter(productsSvc, dashboardSvc, log, server.Options{
		WebDir:    "web",
		RateLimit: "100-M",
	})

	srv := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: router,
	}
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("http server error", "err", err)
		}
	}()
	log.Info("server listening", "port", cfg.Server.Port)

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = srv.Shutdown(shutdownCtx)

	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}
	log.Info("graceful shutdown complete")
}
