package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{"PORT", "WATERMARK_X", "WATERMARK_Y", "WATERMARK_WIDTH", "WATERMARK_HEIGHT",
		"WATERMARK_PAGE_SIZE", "WATERMARK_ON_TOP", "QUEUE_WORKERS", "MAX_FILE_SIZE", "CACHE_DURATION"} {
		t.Setenv(key, "")
	}

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, 100.0, cfg.Watermark.X)
	assert.Equal(t, 500.0, cfg.Watermark.Y)
	assert.Equal(t, 200.0, cfg.Watermark.Width)
	assert.Equal(t, 100.0, cfg.Watermark.Height)
	assert.Equal(t, "Letter", cfg.Watermark.PageSize)
	assert.True(t, cfg.Watermark.OnTop)
	assert.Equal(t, 2, cfg.RabbitMQ.Workers)
	assert.Equal(t, int64(50*1024*1024), cfg.Storage.MaxFileSize)
	assert.Equal(t, 24*time.Hour, cfg.Storage.CacheDuration)
}

func TestLoadWatermarkFromEnv(t *testing.T) {
	t.Setenv("LOGO_BASE64_PATH", "/srv/logo.txt")
	t.Setenv("WATERMARK_ARTIFACT_PATH", "/srv/wm.pdf")
	t.Setenv("WATERMARK_X", "36.5")
	t.Setenv("WATERMARK_ON_TOP", "false")
	t.Setenv("WATERMARK_MAX_LOGO_PIXELS", "512")
	t.Setenv("WATERMARK_WIDTH", "not-a-number")

	wm := LoadWatermark()

	assert.Equal(t, "/srv/logo.txt", wm.LogoPath)
	assert.Equal(t, "/srv/wm.pdf", wm.ArtifactPath)
	assert.Equal(t, 36.5, wm.X)
	assert.False(t, wm.OnTop)
	assert.Equal(t, 512, wm.MaxLogoPixels)
	assert.Equal(t, 200.0, wm.Width, "invalid values fall back to the default")
}
