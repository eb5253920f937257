package config

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

// minSecretLength is the shortest JWT secret accepted outside development.
const minSecretLength = 32

type Config interface {
	EnvConfig
	CorsConfig
	AuthConfig
	SecurityConfig
	StoreConfig
	TelemetryConfig
	QuizConfig
}

type EnvConfig interface {
	GetPort() string
	GetAppName() string
	GetEnv() string
	IsDev() bool
	GetLogLevel() string
	GetShutdownTimeout() time.Duration
	GetSeedUsersFile() string
}

type CorsConfig interface {
	GetAllowedOrigins() AllowedOrigins
	GetAllowedMethods() string
	GetAllowedHeaders() string
}

type mainConfig struct {
	EnvVars
	Cors
	Auth
	Security
	Stores
	Telemetry
	Quiz
}

// New builds a Config from the current environment without validating it.
func New() Config {
	return mainConfig{Auth: Auth{secret: strings.TrimSpace(GetEnv(jwtSecretVar, ""))}}
}

// Load reads an optional .env file, builds the Config and validates it.
// Outside DEV a missing or short JWT_SECRET is fatal. In DEV a random
// per-process secret is generated instead, so issued tokens do not survive
// a restart.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Debug().Err(err).Msg("no .env file loaded")
	}

	c := New().(mainConfig)
	if c.secret == "" && c.IsDev() {
		secret, err := generateSecret()
		if err != nil {
			return nil, fmt.Errorf("[config Load] failed to generate development secret: %w", err)
		}
		c.Auth.secret = secret
		log.Warn().Msg("JWT_SECRET not set, using a random development secret")
	}
	if err := Validate(c); err != nil {
		return nil, err
	}
	return c, nil
}

// Validate checks the settings the server cannot start without.
func Validate(c Config) error {
	secret := c.GetJWTSecret()
	switch {
	case secret == "":
		return fmt.Errorf("[config Validate] %s is required", jwtSecretVar)
	case !c.IsDev() && len(secret) < minSecretLength:
		return fmt.Errorf("[config Validate] %s must be at least %d bytes", jwtSecretVar, minSecretLength)
	}
	if c.GetTokenTTL() <= 0 || c.GetSessionTTL() <= 0 {
		return fmt.Errorf("[config Validate] %s and %s must be positive", tokenTTLVar, sessionTTLVar)
	}
	switch c.GetQuestionStore() {
	case QuestionStoreWebhook:
		if c.GetQuestionsWebhookURL() == "" {
			return fmt.Errorf("[config Validate] %s is required for the webhook question store", questionsWebhookURLVar)
		}
	case QuestionStorePostgres:
		if c.GetDatabaseURL() == "" {
			return fmt.Errorf("[config Validate] %s is required for the postgres question store", databaseURLVar)
		}
	case QuestionStoreMemory:
	default:
		return fmt.Errorf("[config Validate] unknown %s %q", questionStoreVar, c.GetQuestionStore())
	}
	switch c.GetSessionStore() {
	case SessionStoreMemory:
	case SessionStoreRedis:
		if c.GetRedisAddr() == "" {
			return fmt.Errorf("[config Validate] %s is required for the redis session store", redisAddrVar)
		}
	default:
		return fmt.Errorf("[config Validate] unknown %s %q", sessionStoreVar, c.GetSessionStore())
	}
	return nil
}

func generateSecret() (string, error) {
	b := make([]byte, minSecretLength)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}
