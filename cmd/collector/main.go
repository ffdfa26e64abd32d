package main

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/ftedeschi/marxpress/config"
	"github.com/ftedeschi/marxpress/internal/clients/guardian"
	"github.com/ftedeschi/marxpress/internal/clients/modelserver"
	"github.com/ftedeschi/marxpress/internal/db"
	"github.com/ftedeschi/marxpress/internal/generator"
	"github.com/ftedeschi/marxpress/internal/logging"
	"github.com/ftedeschi/marxpress/internal/pipeline"
	"github.com/ftedeschi/marxpress/internal/sentiment"
)

func main() {
	env := os.Getenv("APP_ENV")
	if env == "" {
		env = "dev"
	}
	config.LoadEnv(env)
	logging.InitLogger()

	cfg := config.Load()
	if err := cfg.ValidateCollector(); err != nil {
		slog.Error("[Collector] Invalid configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	pool, err := db.Connect(ctx, cfg.Postgres)
	if err != nil {
		slog.Error("[Collector] Could not connect to postgres, exiting",
			slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer pool.Close()

	if err := db.EnsureSchema(ctx, pool); err != nil {
		slog.Error("[Collector] Could not prepare the articles table, exiting",
			slog.String("error", err.Error()))
		os.Exit(1)
	}

	p := pipeline.New(pipeline.Deps{
		Source:      guardian.NewClient(cfg.GuardianBaseURL, cfg.GuardianAPIKey),
		Commentator: generator.New(modelserver.NewClient(cfg.ModelServerURL), generator.CommentaryConfig()),
		Judge:       sentiment.NewAnalyzer(),
		Store:       db.NewStore(pool),
		Sections:    cfg.Sections,
	})

	if err := p.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		slog.Error("[Collector] Pipeline stopped", slog.String("error", err.Error()))
		os.Exit(1)
	}

	slog.Info("[Collector] Shut down gracefully")
}
