package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	// Blank values make getEnv fall back to its defaults.
	t.Setenv("ENV", "")
	t.Setenv("PORT", "")
	t.Setenv("ALLOWED_ORIGINS", "")
	t.Setenv("FRONTEND_URL", "")

	cfg := Load()

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "development", cfg.Environment)
	assert.False(t, cfg.IsProduction())
	assert.Empty(t, cfg.AllowedHost)
	assert.Equal(t, []string{"http://localhost:3000"}, cfg.AllowedOrigins)
}

func TestLoadProductionHostCheck(t *testing.T) {
	t.Setenv("ENV", "production")
	t.Setenv("HOST", "https://api.moodlog.app:443/ignored")

	cfg := Load()
	assert.True(t, cfg.IsProduction())
	assert.Equal(t, "api.moodlog.app", cfg.AllowedHost)
}

func TestLoadAllowedOrigins(t *testing.T) {
	t.Setenv("ALLOWED_ORIGINS", "https://moodlog.app, https://www.moodlog.app ,")

	cfg := Load()
	assert.Equal(t, []string{"https://moodlog.app", "https://www.moodlog.app"}, cfg.AllowedOrigins)
}
