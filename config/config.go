package config

import (
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"notesapp/utils"

	"github.com/joho/godotenv"
)

type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Auth     AuthConfig
	Redis    RedisConfig
}

type ServerConfig struct {
	Port           string
	GinMode        string
	AllowedOrigins []string
	MaxBodyBytes   int64
}

type AuthConfig struct {
	TokenSecret string
	// TokenTTL is the absolute lifetime of an access token. There is no
	// refresh or revocation, so this is the whole session length.
	TokenTTL    time.Duration
	TokenIssuer string
}

type RedisConfig struct {
	// URL is optional; an empty value disables the profile cache.
	URL        string
	ProfileTTL time.Duration
}

var requiredEnvVars = []string{
	"MONGO_URI",
	"ACCESS_TOKEN_SECRET",
}

// Load reads the process environment, after merging a .env file when one
// exists outside of tests.
func Load() (*Config, error) {
	if os.Getenv("GO_ENV") != "test" {
		if err := godotenv.Load(); err != nil {
			log.Printf("No .env file loaded: %v", err)
		}
	}

	var missing []string
	for _, envVar := range requiredEnvVars {
		if os.Getenv(envVar) == "" {
			missing = append(missing, envVar)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("required environment variables not set: %s", strings.Join(missing, ", "))
	}

	cfg := &Config{
		Server: ServerConfig{
			Port:           utils.GetEnvAsString("PORT", "8000"),
			GinMode:        utils.GetEnvAsString("GIN_MODE", "release"),
			AllowedOrigins: splitList(utils.GetEnvAsString("CORS_ALLOWED_ORIGINS", "*")),
			MaxBodyBytes:   utils.GetEnvAsInt64("MAX_BODY_BYTES", 1<<20),
		},
		Database: LoadDatabaseConfig(),
		Auth: AuthConfig{
			TokenSecret: os.Getenv("ACCESS_TOKEN_SECRET"),
			TokenTTL:    utils.GetEnvAsDuration("ACCESS_TOKEN_TTL", 600*time.Hour),
			TokenIssuer: utils.GetEnvAsString("ACCESS_TOKEN_ISSUER", "notesapp"),
		},
		Redis: RedisConfig{
			URL:        os.Getenv("REDIS_URL"),
			ProfileTTL: utils.GetEnvAsDuration("PROFILE_CACHE_TTL", 15*time.Minute),
		},
	}

	if cfg.Auth.TokenTTL <= 0 {
		return nil, fmt.Errorf("ACCESS_TOKEN_TTL must be positive, got %s", cfg.Auth.TokenTTL)
	}

	return cfg, nil
}

func splitList(value string) []string {
	var out []string
	for _, part := range strings.Split(value, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
