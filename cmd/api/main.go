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

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/housingportal/housingportal-go/internal/config"
	"github.com/housingportal/housingportal-go/internal/crypto"
	"github.com/housingportal/housingportal-go/internal/handler"
	"github.com/housingportal/housingportal-go/internal/middleware"
	"github.com/housingportal/housingportal-go/internal/repository"
	"github.com/housingportal/housingportal-go/internal/service"
)

func main() {
	if err := godotenv.Load(); err != nil {
		slog.Warn("no .env file found, using environment variables")
	}

	cfg := config.Load()
	slog.SetDefault(newLogger(cfg))

	db, err := repository.NewDB(cfg.DatabaseDSN)
	if err != nil {
		slog.Error("database connection failed", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	userRepo := repository.NewUserRepository(db)
	studentRepo := repository.NewStudentRepository(db)
	listingRepo := repository.NewListingRepository(db)

	tokens := crypto.NewTokenIssuer(cfg.JWTSecret, cfg.JWTIssuer, cfg.JWTAudience, cfg.JWTExpiry)
	hasher := crypto.NewArgon2idHasher(crypto.DefaultHashParams())

	authService := service.NewAuthService(userRepo, hasher, tokens)
	listingService := service.NewListingService(listingRepo, studentRepo, cfg.ListingImageOverride)
	studentService := service.NewStudentService(studentRepo, listingRepo)

	userHandler := handler.NewUserHandler(authService, studentService)
	listingHandler := handler.NewListingHandler(listingService)

	middleware.RegisterMetrics(prometheus.DefaultRegisterer)

	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.Logger)
	r.Use(chimw.Recoverer)
	r.Use(middleware.Metrics)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/listings", func(r chi.Router) {
		r.Get("/", listingHandler.HandleList)
		r.Get("/{id}", listingHandler.HandleGet)

		r.Group(func(r chi.Router) {
			r.Use(middleware.JWTAuth(tokens))
			r.Post("/", listingHandler.HandleCreate)
			r.Put("/{id}", listingHandler.HandleUpdate)
			r.Delete("/{id}", listingHandler.HandleDelete)
		})
	})

	r.Route("/user", func(r chi.Router) {
		r.Group(func(r chi.Router) {
			r.Use(middleware.RateLimit(cfg.AuthRateLimitRPS, cfg.AuthRateLimitBurst))
			r.Post("/authenticate", userHandler.HandleAuthenticate)
			r.Post("/register", userHandler.HandleRegister)
		})
		r.Get("/{studentId}", userHandler.HandleGetStudent)
		r.Get("/{studentId}/listings", userHandler.HandleListStudentListings)
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		slog.Info("server starting", "port", cfg.Port, "env", cfg.Env)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("server forced shutdown", "error", err)
		os.Exit(1)
	}

	slog.Info("server stopped")
}

func newLogger(cfg config.Config) *slog.Logger {
	opts := &slog.HandlerOptions{Level: cfg.SlogLevel()}
	if cfg.Env == "production" {
		return slog.New(slog.NewJSONHandler(os.Stdout, opts))
	}
	return slog.New(slog.NewTextHandler(os.Stdout, opts))
}
