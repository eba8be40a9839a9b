package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	"github.com/sopdesk/sopdesk/internal/config"
	"github.com/sopdesk/sopdesk/internal/delivery"
	"github.com/sopdesk/sopdesk/internal/domain"
	"github.com/sopdesk/sopdesk/internal/infra"
)

func main() {

	// ENV
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	// LOGGER
	zcore, _ := zap.NewProduction()
	defer func() { _ = zcore.Sync() }()
	zl := zcore.Sugar()

	// POSTGRES
	ctx := context.Background()

	pool, err := infra.NewPgxPool(ctx, cfg.DatabaseURL)
	if err != nil {
		zl.Fatalw("cannot connect pgxpool", "error", err)
	}
	defer pool.Close()

	ctxPing, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := pool.Ping(ctxPing); err != nil {
		zl.Fatalw("postgres ping failed", "error", err)
	}

	// S3 SIGNER
	signer, err := infra.NewS3LinkSigner(ctx, infra.S3Options{
		Region:          cfg.AWSRegion,
		AccessKeyID:     cfg.AWSAccessKeyID,
		SecretAccessKey: cfg.AWSSecretAccessKey,
		Bucket:          cfg.S3Bucket,
	})
	if err != nil {
		zl.Fatalw("cannot build s3 signer", "error", err)
	}

	// SERVICES
	repo := infra.NewPostgresSopRepo(pool, cfg.SopTable)
	resolver := domain.NewLinkResolver(signer, zl)
	sopService := domain.NewSopService(repo, resolver, zl)

	// HANDLERS
	hSop := delivery.NewSopHandler(sopService, zl, cfg.IsProduction())
	hSystem := delivery.NewSystemHandler(cfg)

	// ROUTER
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.Timeout(10 * time.Second))
	r.Use(delivery.RequestLogger(zl))

	origins := []string{"*"}
	if cfg.IsProduction() && len(cfg.AllowedOrigins) > 0 {
		origins = cfg.AllowedOrigins
	}
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   origins,
		AllowedMethods:   []string{"GET", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type"},
		AllowCredentials: true,
	}))

	delivery.RegisterRoutes(r, hSop, hSystem)

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: r,
	}

	go func() {
		zl.Infow("server started", "port", cfg.Port, "environment", cfg.Environment)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zl.Fatalw("server crashed", "error", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	shutdownCtx, cancelShutdown := context.WithTimeout(ctx, 10*time.Second)
	defer cancelShutdown()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		zl.Errorw("shutdown failed", "error", err)
	}
}
