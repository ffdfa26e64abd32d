package db

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ftedeschi/marxpress/config"
)

const connectTimeout = 5 * time.Second

// Connect opens the shared pool and verifies the server is reachable.
// Callers treat a failure as fatal: running against a dead connection is
// worse than not starting at all.
func Connect(ctx context.Context, cfg config.PostgresConfig) (*pgxpool.Pool, error) {
	ctx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()

	pool, err := pgxpool.New(ctx, cfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("[DB] create pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("[DB] could not connect to server on host %q port %s: %w",
			cfg.Host, cfg.Port, err)
	}

	slog.Info("[DB] Connected to PostgreSQL successfully", slog.String("port", cfg.Port))
	return pool, nil
}

// EnsureSchema creates the articles table when it does not exist yet.
func EnsureSchema(ctx context.Context, pool *pgxpool.Pool) error {
	_, err := pool.Exec(ctx, createTableSQL)
	if err != nil {
		return fmt.Errorf("[DB] ensure schema: %w", err)
	}
	return nil
}

const createTableSQL = `
CREATE TABLE IF NOT EXISTS guardian_articles (
	date TIMESTAMP,
	section_id VARCHAR(200),
	section_name VARCHAR(200),
	title VARCHAR(500),
	author VARCHAR(500),
	subtitle VARCHAR(1000),
	body VARCHAR(200000),
	img_url VARCHAR(1000),
	img_descr VARCHAR(1000),
	img_cred VARCHAR(1000),
	language VARCHAR(10),
	url VARCHAR(1000),
	short_url VARCHAR(400),
	tags VARCHAR(1000),
	marx_comment VARCHAR(1100),
	sentiment_score NUMERIC,
	marx_judgement VARCHAR(200)
);`
