package config_test

import (
	"testing"
	"time"

	"github.com/jrsteele09/go-quiz-server/internal/config"
	"github.com/stretchr/testify/require"
)

const strongSecret = "0123456789abcdef0123456789abcdef"

func setMemoryStores(t *testing.T) {
	t.Helper()
	t.Setenv("QUESTION_STORE", config.QuestionStoreMemory)
	t.Setenv("SESSION_STORE", config.SessionStoreMemory)
}

func TestLoad_DevWithoutSecretGeneratesOne(t *testing.T) {
	setMemoryStores(t)
	t.Setenv("ENV", "DEV")
	t.Setenv("JWT_SECRET", "")

	first, err := config.Load()
	require.NoError(t, err)
	require.NotEmpty(t, first.GetJWTSecret())

	second, err := config.Load()
	require.NoError(t, err)
	require.NotEqual(t, first.GetJWTSecret(), second.GetJWTSecret())
}

func TestLoad_ProductionRequiresSecret(t *testing.T) {
	setMemoryStores(t)
	t.Setenv("ENV", "PROD")

	t.Run("missing", func(t *testing.T) {
		t.Setenv("JWT_SECRET", "")
		_, err := config.Load()
		require.Error(t, err)
		require.Contains(t, err.Error(), "JWT_SECRET is required")
	})

	t.Run("too short", func(t *testing.T) {
		t.Setenv("JWT_SECRET", "short")
		_, err := config.Load()
		require.Error(t, err)
		require.Contains(t, err.Error(), "at least 32 bytes")
	})

	t.Run("valid", func(t *testing.T) {
		t.Setenv("JWT_SECRET", strongSecret)
		c, err := config.Load()
		require.NoError(t, err)
		require.Equal(t, strongSecret, c.GetJWTSecret())
		require.True(t, c.GetSecureCookies())
	})
}

func TestLoad_StoreSelection(t *testing.T) {
	t.Setenv("ENV", "PROD")
	t.Setenv("JWT_SECRET", strongSecret)
	t.Setenv("SESSION_STORE", config.SessionStoreMemory)

	t.Run("webhook without url", func(t *testing.T) {
		t.Setenv("QUESTION_STORE", config.QuestionStoreWebhook)
		t.Setenv("QUESTIONS_WEBHOOK_URL", "")
		_, err := config.Load()
		require.ErrorContains(t, err, "QUESTIONS_WEBHOOK_URL")
	})

	t.Run("postgres without dsn", func(t *testing.T) {
		t.Setenv("QUESTION_STORE", config.QuestionStorePostgres)
		t.Setenv("DATABASE_URL", "")
		_, err := config.Load()
		require.ErrorContains(t, err, "DATABASE_URL")
	})

	t.Run("unknown", func(t *testing.T) {
		t.Setenv("QUESTION_STORE", "s3")
		_, err := config.Load()
		require.ErrorContains(t, err, "unknown QUESTION_STORE")
	})

	t.Run("redis sessions without addr", func(t *testing.T) {
		t.Setenv("QUESTION_STORE", config.QuestionStoreMemory)
		t.Setenv("SESSION_STORE", config.SessionStoreRedis)
		t.Setenv("REDIS_ADDR", "")
		_, err := config.Load()
		require.ErrorContains(t, err, "REDIS_ADDR")
	})
}

func TestDefaults(t *testing.T) {
	setMemoryStores(t)
	t.Setenv("ENV", "")
	t.Setenv("PORT", "")
	t.Setenv("TOKEN_TTL", "")
	t.Setenv("SESSION_TTL", "")

	c := config.New()
	require.Equal(t, "DEV", c.GetEnv())
	require.Equal(t, ":8080", c.GetPort())
	require.Equal(t, time.Hour, c.GetTokenTTL())
	require.Equal(t, 7*24*time.Hour, c.GetSessionTTL())
	require.False(t, c.GetSecureCookies())
	require.Equal(t, config.QuizSettings{NoTimeLimit: true, Easy: true}, c.GetQuizSettings())
}

func TestOverrides(t *testing.T) {
	t.Setenv("PORT", ":9090")
	t.Setenv("TOKEN_TTL", "15m")
	t.Setenv("SESSION_TTL", "not-a-duration")
	t.Setenv("QUIZ_EASY", "false")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://quiz.example.com, http://localhost:5173")

	c := config.New()
	require.Equal(t, ":9090", c.GetPort())
	require.Equal(t, 15*time.Minute, c.GetTokenTTL())
	require.Equal(t, 7*24*time.Hour, c.GetSessionTTL())
	require.False(t, c.GetQuizSettings().Easy)
	require.True(t, c.GetAllowedOrigins().IsAllowedOrigin("http://localhost:5173"))
	require.False(t, c.GetAllowedOrigins().IsAllowedOrigin("https://evil.example.com"))
}

func TestSecurity_TrustProxyHeaders(t *testing.T) {
	var s config.Security

	t.Setenv("TRUST_PROXY_HEADERS", "")
	require.False(t, s.GetTrustProxyHeaders())

	t.Setenv("TRUST_PROXY_HEADERS", "true")
	require.True(t, s.GetTrustProxyHeaders())
}
