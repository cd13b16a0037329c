package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("GO_ENV", "development")
	t.Setenv("CHECKBOX_MAX_DISTANCE", "not-a-number")
	t.Setenv("OTEL_ENABLED", "")

	cfg := Load()
	assert.Equal(t, 3, cfg.Editor.MaxDistance)
	assert.Equal(t, "RENDER_DOCUMENT_PREVIEW", cfg.Editor.PreviewTopic)
	assert.False(t, cfg.Tracing.Enabled)
	assert.False(t, cfg.IsProduction())
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("GO_ENV", "production")
	t.Setenv("CHECKBOX_MAX_DISTANCE", "5")
	t.Setenv("EDIT_SESSION_TTL_MINUTES", "15")
	t.Setenv("APP_PORT", "8080")
	t.Setenv("OTEL_ENABLED", "true")

	cfg := Load()
	assert.Equal(t, 5, cfg.Editor.MaxDistance)
	assert.Equal(t, 15*time.Minute, cfg.Editor.SessionTTL())
	assert.Equal(t, "8080", cfg.App.Port)
	assert.True(t, cfg.Tracing.Enabled)
	assert.True(t, cfg.IsProduction())
}

func TestValidate(t *testing.T) {
	t.Setenv("DB_CONNECTION_STRING", "postgres://localhost/docedit")
	t.Setenv("CHECKBOX_MAX_DISTANCE", "3")
	t.Setenv("EDIT_SESSION_TTL_MINUTES", "60")
	t.Setenv("MAX_UPLOAD_MB", "10")
	cfg := Load()
	assert.NoError(t, cfg.Validate())

	cfg.Database.Connection = ""
	cfg.Editor.MaxDistance = -1
	err := cfg.Validate()
	assert.ErrorContains(t, err, "DB_CONNECTION_STRING")
	assert.ErrorContains(t, err, "CHECKBOX_MAX_DISTANCE")
}
