package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoad_ReadsAdminEmailsAndDefaults(t *testing.T) {
	t.Setenv("ADMIN_EMAILS", " Owner@Example.com ,ops@example.com")
	t.Setenv("CATEGORY_CACHE_TTL", "30s")
	t.Setenv("CSRF_ENABLED", "false")

	cfg := Load()

	assert.Equal(t, []string{"owner@example.com", "ops@example.com"}, cfg.AdminEmails)
	assert.Equal(t, 30*time.Second, cfg.CategoryCacheTTL)
	assert.False(t, cfg.CSRFEnabled)
	assert.Equal(t, 15*time.Minute, cfg.AccessTTL)
	assert.Equal(t, "products", cfg.ESIndex)
	assert.Equal(t, "catalog_changed", cfg.NotifyChannel)
}
