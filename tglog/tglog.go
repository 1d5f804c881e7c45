// Package tglog mirrors operational events into a Telegram channel so
// admins can watch the bot without shell access. Sends are
// fire-and-forget and never block the handler path.
package tglog

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
)

var (
	b         *bot.Bot
	channelID int64
	enabled   bool
)

// Init wires the sink. A zero channel ID disables it.
func Init(tgBot *bot.Bot, chID int64) {
	if chID == 0 {
		slog.Info("log channel disabled, LOG_CHANNEL_ID not set")
		return
	}
	b = tgBot
	channelID = chID
	enabled = true
	slog.Info("log channel enabled", "channel", chID)
}

// Send posts a formatted message to the log channel without blocking.
func Send(format string, args ...any) {
	if !enabled {
		return
	}
	text := fmt.Sprintf(format, args...)
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_, err := b.SendMessage(ctx, &bot.SendMessageParams{
			ChatID:    channelID,
			Text:      text,
			ParseMode: models.ParseModeHTML,
		})
		if err != nil {
			slog.Error("log channel send failed", "err", err)
		}
	}()
}
