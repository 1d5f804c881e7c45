// Package notify delivers moderation outcomes to listing owners.
// Delivery is fire-and-forget: a failure is logged, never retried, and
// never rolls back the status transition that triggered it.
package notify

import (
	"context"
	"log/slog"
	"time"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"

	"uykelishuv_bot/database"
	"uykelishuv_bot/messages"
)

type Notifier interface {
	// ListingModerated tells the owner their listing changed status.
	// reason is only set for rejections.
	ListingModerated(ownerTelegramID int64, listing *database.Listing, reason string)
}

// TelegramNotifier sends moderation outcomes as private messages.
type TelegramNotifier struct {
	bot *bot.Bot
}

func NewTelegramNotifier(b *bot.Bot) *TelegramNotifier {
	return &TelegramNotifier{bot: b}
}

func (n *TelegramNotifier) ListingModerated(ownerTelegramID int64, listing *database.Listing, reason string) {
	var text string
	switch listing.Status {
	case database.StatusApproved:
		text = messages.FormatListingApproved(listing)
	case database.StatusRejected:
		text = messages.FormatListingRejected(listing, reason)
	default:
		return
	}

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		_, err := n.bot.SendMessage(ctx, &bot.SendMessageParams{
			ChatID:    ownerTelegramID,
			Text:      text,
			ParseMode: models.ParseModeHTML,
		})
		if err != nil {
			slog.Error("moderation notification failed",
				"user", ownerTelegramID, "listing", listing.ID, "err", err)
		}
	}()
}
