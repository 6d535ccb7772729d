package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"carhub/database"
	"carhub/internal/config"
	"carhub/internal/ingestion/vpic"
	"carhub/internal/logger"
	"carhub/internal/microservices/http-api/handler"
	"carhub/internal/microservices/http-api/repository"
	"carhub/internal/microservices/http-api/service"

	"github.com/gin-gonic/gin"
	"github.com/rs/cors"
	"gorm.io/gorm"
)

func main() {
	// 1. Load config
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("could not load config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("invalid config: %v", err)
	}

	logg := logger.New(cfg.LogLevel, cfg.LogFormat)
	slog.SetDefault(logg)

	if err := run(cfg, logg); err != nil {
		logg.Error("api server stopped", "error", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config, logg *slog.Logger) error {
	// 2. Connect to the database
	db, err := database.OpenGorm(cfg, logg)
	if err != nil {
		return err
	}
	defer database.Close(db)

	// 3. Setup Gin
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.HTTPPort),
		Handler:           newHandler(cfg, db, logg),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logg.Info("Server running", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case sig := <-quit:
		logg.Info("Shutting down server", "signal", sig.String())
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(ctx)
}

// newHandler wires repositories, services and routes on top of db
func newHandler(cfg *config.Config, db *gorm.DB, logg *slog.Logger) http.Handler {
	catalog := vpic.NewClient(cfg.VPICAPIURL,
		vpic.WithRateLimit(cfg.VPICRateLimit),
		vpic.WithLogger(logg.With("component", "vpic")),
		vpic.WithHTTPClient(&http.Client{Timeout: cfg.VPICTimeout}),
	)

	carRepo := repository.NewCarRepository(db)
	ratingRepo := repository.NewRatingRepository(db)

	svcs := handler.Services{
		Cars:       service.NewCarService(carRepo, ratingRepo, catalog, cfg.ImportLimit, logg),
		Ratings:    service.NewRatingService(ratingRepo, carRepo),
		Popularity: service.NewPopularityService(carRepo, ratingRepo),
		Auth:       service.NewAuthService(cfg),
	}
	if !cfg.AdminEnabled() {
		logg.Warn("ADMIN_PASSWORD_HASH not set, admin endpoints will refuse logins")
	}

	return withCORS(cfg, handler.NewRouter(svcs, logg))
}

// withCORS wraps the router with the configured allowed origins
func withCORS(cfg *config.Config, h http.Handler) http.Handler {
	c := cors.New(cors.Options{
		AllowedOrigins:   cfg.CORSOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{"Authorization", "Content-Type", "X-Request-ID"},
		ExposedHeaders:   []string{"X-Request-ID"},
		AllowCredentials: true,
		Debug:            cfg.IsDevelopment() && cfg.LogLevel == "debug",
	})
	return c.Handler(h)
}
