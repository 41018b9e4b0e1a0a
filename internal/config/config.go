package config

import (
	"os"

	"hsho_live_api/internal/logger"

	"github.com/joho/godotenv"
)

// Identity modes. Several historical deployments of this API regenerated the
// player id on every auth call; that behavior survives behind IDModeRandom.
const (
	IDModeDeterministic = "deterministic"
	IDModeRandom        = "random"
)

// Token modes.
const (
	TokenModeHash = "hash"
	TokenModeJWT  = "jwt"
)

type Config struct {
	Port        string
	BaseURL     string
	DatabaseURL string
	RedisURL    string
	PGStrictSSL bool

	IDMode        string
	TokenMode     string
	SessionSecret string
	VerifyURL     string

	Region        string
	ClientVersion string

	LogLevel string
	LogJSON  bool
}

// Load reads configuration from the environment. Unlike a real backend this
// server never refuses to start: every missing value has a serving default.
func Load() *Config {
	_ = godotenv.Load()

	port := os.Getenv("PORT")
	if port == "" {
		port = "10000"
	}

	baseURL := os.Getenv("PUBLIC_BASE_URL")
	if baseURL == "" {
		baseURL = os.Getenv("RENDER_EXTERNAL_URL")
	}
	if baseURL == "" {
		baseURL = "http://localhost:" + port
	}

	idMode := os.Getenv("ID_MODE")
	if idMode != IDModeRandom {
		idMode = IDModeDeterministic
	}

	secret := os.Getenv("SESSION_SECRET")
	tokenMode := os.Getenv("TOKEN_MODE")
	if tokenMode == TokenModeJWT && secret == "" {
		logger.Warn("TOKEN_MODE=jwt requires SESSION_SECRET, falling back to hash tokens")
	}
	if tokenMode != TokenModeJWT || secret == "" {
		tokenMode = TokenModeHash
	}

	region := os.Getenv("REGION")
	if region == "" {
		region = "sg"
	}

	clientVersion := os.Getenv("CLIENT_VERSION")
	if clientVersion == "" {
		clientVersion = "1.0.6.0"
	}

	logLevel := os.Getenv("LOG_LEVEL")
	if logLevel == "" {
		logLevel = "info"
	}

	return &Config{
		Port:          port,
		BaseURL:       baseURL,
		DatabaseURL:   os.Getenv("DATABASE_URL"),
		RedisURL:      os.Getenv("REDIS_URL"),
		PGStrictSSL:   os.Getenv("PG_STRICT_SSL") == "true",
		IDMode:        idMode,
		TokenMode:     tokenMode,
		SessionSecret: secret,
		VerifyURL:     os.Getenv("VERIFY_URL"),
		Region:        region,
		ClientVersion: clientVersion,
		LogLevel:      logLevel,
		LogJSON:       os.Getenv("LOG_JSON") == "true",
	}
}
