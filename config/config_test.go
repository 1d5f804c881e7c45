package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	cfg := Load()

	assert.Equal(t, "@hourly", cfg.CleanupCron)
	assert.Equal(t, 5, cfg.ItemsPerPage)
	assert.Zero(t, cfg.SessionTTL)
	assert.Zero(t, cfg.ListingTTL)
	assert.False(t, cfg.Debug)
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("ADMIN_IDS", "42, 7,,oops, 1001")
	t.Setenv("SESSION_TTL_HOURS", "24")
	t.Setenv("LISTING_TTL_DAYS", "30")
	t.Setenv("ITEMS_PER_PAGE", "10")
	t.Setenv("DEBUG", "true")

	cfg := Load()

	assert.Equal(t, []int64{42, 7, 1001}, cfg.AdminIDs)
	assert.Equal(t, 24*time.Hour, cfg.SessionTTL)
	assert.Equal(t, 30*24*time.Hour, cfg.ListingTTL)
	assert.Equal(t, 10, cfg.ItemsPerPage)
	assert.True(t, cfg.Debug)
}

func TestIsAdmin(t *testing.T) {
	cfg := &Config{AdminIDs: []int64{42}}
	assert.True(t, cfg.IsAdmin(42))
	assert.False(t, cfg.IsAdmin(7))

	empty := &Config{}
	assert.False(t, empty.IsAdmin(42))
}
