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

	"github.com/ftedeschi/marxpress/config"
	"github.com/ftedeschi/marxpress/internal/clients/modelserver"
	"github.com/ftedeschi/marxpress/internal/db"
	"github.com/ftedeschi/marxpress/internal/generator"
	"github.com/ftedeschi/marxpress/internal/logging"
	"github.com/ftedeschi/marxpress/internal/web"
)

const shutdownGrace = 10 * time.Second

func main() {
	env := os.Getenv("APP_ENV")
	if env == "" {
		env = "dev"
	}
	config.LoadEnv(env)
	logging.InitLogger()

	cfg := config.Load()
	if err := cfg.ValidateWebapp(); err != nil {
		slog.Error("[Webapp] Invalid configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	pool, err := db.Connect(ctx, cfg.Postgres)
	if err != nil {
		slog.Error("[Webapp] Could not connect to postgres, exiting",
			slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer pool.Close()

	speaker := generator.New(modelserver.NewClient(cfg.ModelServerURL), generator.InteractiveConfig())
	server := web.NewServer(db.NewStore(pool), speaker, cfg.Sections)

	srv := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: server.Router(),
	}

	go func() {
		slog.Info("[Webapp] Listening", slog.String("addr", cfg.HTTPAddr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("[Webapp] Server failed", slog.String("error", err.Error()))
			stop()
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("[Webapp] Shutdown failed", slog.String("error", err.Error()))
	}

	slog.Info("[Webapp] Shut down gracefully")
}
