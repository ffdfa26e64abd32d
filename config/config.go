package config

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/subosito/gotenv"
)

// Sections the collector polls and the webapp serves. Overridable via
// the SECTIONS environment variable (comma-separated).
var defaultSections = []string{
	"sport",
	"world",
	"politics",
	"environment",
	"global-development",
	"money",
	"education",
	"business",
	"culture",
}

type PostgresConfig struct {
	User     string
	Password string
	Host     string
	Port     string
	Database string
}

func (p PostgresConfig) DSN() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
		p.User, p.Password, p.Host, p.Port, p.Database)
}

type Config struct {
	GuardianAPIKey  string
	GuardianBaseURL string
	ModelServerURL  string
	Postgres        PostgresConfig
	Sections        []string
	HTTPAddr        string
}

// LoadEnv reads config/envs/.env.<env> into the process environment.
// Missing files are fine; the OS environment is the fallback.
func LoadEnv(env string) {
	envFile := "config/envs/.env." + env
	if err := gotenv.Load(envFile); err != nil {
		slog.Warn("No .env file found, using OS environment")
	}
}

// Load populates a Config from the environment.
func Load() *Config {
	cfg := &Config{
		GuardianAPIKey:  os.Getenv("GUARDIAN_API_KEY"),
		GuardianBaseURL: getenvDefault("GUARDIAN_BASE_URL", "https://content.guardianapis.com"),
		ModelServerURL:  os.Getenv("MODEL_SERVER_URL"),
		Postgres: PostgresConfig{
			User:     getenvDefault("POSTGRES_USER", "postgres"),
			Password: os.Getenv("POSTGRES_PASSWORD"),
			Host:     getenvDefault("POSTGRES_HOST", "postgresdb"),
			Port:     getenvDefault("POSTGRES_PORT", "5432"),
			Database: getenvDefault("POSTGRES_DB", "pg_guardian"),
		},
		Sections: defaultSections,
		HTTPAddr: getenvDefault("HTTP_ADDR", ":8080"),
	}

	if raw := os.Getenv("SECTIONS"); raw != "" {
		var sections []string
		for _, s := range strings.Split(raw, ",") {
			if s = strings.TrimSpace(s); s != "" {
				sections = append(sections, s)
			}
		}
		if len(sections) > 0 {
			cfg.Sections = sections
		}
	}

	return cfg
}

// ValidateCollector checks the variables the collector process cannot run
// without. Missing credentials are a startup failure, never an empty string
// quietly passed downstream.
func (c *Config) ValidateCollector() error {
	var missing []string
	if c.GuardianAPIKey == "" {
		missing = append(missing, "GUARDIAN_API_KEY")
	}
	if c.ModelServerURL == "" {
		missing = append(missing, "MODEL_SERVER_URL")
	}
	if c.Postgres.Password == "" {
		missing = append(missing, "POSTGRES_PASSWORD")
	}
	return missingErr(missing)
}

// ValidateWebapp checks the variables the webapp process requires.
func (c *Config) ValidateWebapp() error {
	var missing []string
	if c.ModelServerURL == "" {
		missing = append(missing, "MODEL_SERVER_URL")
	}
	if c.Postgres.Password == "" {
		missing = append(missing, "POSTGRES_PASSWORD")
	}
	return missingErr(missing)
}

func missingErr(missing []string) error {
	if len(missing) == 0 {
		return nil
	}
	return fmt.Errorf("missing required environment variables: %s", strings.Join(missing, ", "))
}

func getenvDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
