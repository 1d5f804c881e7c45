package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	BotToken     string
	DatabaseURL  string
	LogChannelID int64

	// Telegram user IDs with admin rights
	AdminIDs []int64

	// Maintenance policy
	CleanupCron  string
	SessionTTL   time.Duration // 0 disables session expiry
	ListingTTL   time.Duration // 0 disables archival of old approved listings
	ItemsPerPage int
	Debug        bool
}

func Load() *Config {
	sessionHours, _ := strconv.Atoi(getEnv("SESSION_TTL_HOURS", "0"))
	listingDays, _ := strconv.Atoi(getEnv("LISTING_TTL_DAYS", "0"))
	perPage, _ := strconv.Atoi(getEnv("ITEMS_PER_PAGE", "5"))
	logChannel, _ := strconv.ParseInt(getEnv("LOG_CHANNEL_ID", "0"), 10, 64)

	return &Config{
		BotToken:     getEnv("BOT_TOKEN", ""),
		DatabaseURL:  getEnv("DATABASE_URL", ""),
		LogChannelID: logChannel,
		AdminIDs:     parseAdminIDs(getEnv("ADMIN_IDS", "")),
		CleanupCron:  getEnv("CLEANUP_CRON", "@hourly"),
		SessionTTL:   time.Duration(sessionHours) * time.Hour,
		ListingTTL:   time.Duration(listingDays) * 24 * time.Hour,
		ItemsPerPage: perPage,
		Debug:        getEnv("DEBUG", "false") == "true",
	}
}

// IsAdmin reports whether the given Telegram user ID belongs to the
// configured admin set.
func (c *Config) IsAdmin(userID int64) bool {
	for _, id := range c.AdminIDs {
		if id == userID {
			return true
		}
	}
	return false
}

func parseAdminIDs(raw string) []int64 {
	var ids []int64
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		id, err := strconv.ParseInt(part, 10, 64)
		if err != nil {
			continue
		}
		ids = append(ids, id)
	}
	return ids
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
