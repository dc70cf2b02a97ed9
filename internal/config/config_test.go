package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	t.Setenv("MONGO_URI", "mongodb://localhost:27017")
	t.Setenv("API_KEY", "key")
	t.Setenv("JWT_SECRET", "secret")
	t.Setenv("JWT_TTL", "2h")
	t.Setenv("ALLOWED_ORIGINS", "http://a.test, http://b.test,")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "spi_smart_campus", cfg.MongoDB)
	assert.Equal(t, 2*time.Hour, cfg.JWTTTL)
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.AllowedOrigins)
	assert.False(t, cfg.IsProduction())
	assert.Equal(t, 30*time.Second, cfg.Chat.Timeout)
	assert.Equal(t, "https://api.openai.com/v1", cfg.Chat.URL)
}

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("MONGO_URI", "mongodb://localhost:27017")
	t.Setenv("API_KEY", "key")
	t.Setenv("JWT_SECRET", "secret")
	t.Setenv("ALLOWED_ORIGINS", "http://a.test http://b.test")
	t.Setenv("CHAT_TIMEOUT", "5s")
	t.Setenv("APP_ENV", "production")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 24*time.Hour, cfg.JWTTTL)
	assert.Equal(t, 5*time.Second, cfg.Chat.Timeout)
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.AllowedOrigins)
	assert.True(t, cfg.IsProduction())
}

func TestLoad_Missing(t *testing.T) {
	t.Setenv("MONGO_URI", "")
	t.Setenv("API_KEY", "")
	t.Setenv("JWT_SECRET", "secret")

	_, err := Load()
	require.Error(t, err)
	assert.EqualError(t, err, "missing environment variables: API_KEY, MONGO_URI")
}

func TestLoad_BadDuration(t *testing.T) {
	t.Setenv("MONGO_URI", "mongodb://localhost:27017")
	t.Setenv("API_KEY", "key")
	t.Setenv("JWT_SECRET", "secret")
	t.Setenv("JWT_TTL", "forever")

	_, err := Load()
	assert.ErrorContains(t, err, "JWT_TTL")

	t.Setenv("JWT_TTL", "1h")
	t.Setenv("CHAT_TIMEOUT", "soon")
	_, err = Load()
	assert.ErrorContains(t, err, "CHAT_TIMEOUT")
}
