package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"time"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/joho/godotenv"
	"github.com/lmittmann/tint"
	"github.com/robfig/cron/v3"

	"uykelishuv_bot/config"
	"uykelishuv_bot/database"
	"uykelishuv_bot/handlers"
	"uykelishuv_bot/messages"
	"uykelishuv_bot/moderation"
	"uykelishuv_bot/notify"
	"uykelishuv_bot/session"
	"uykelishuv_bot/tglog"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	level := slog.LevelInfo
	if cfg.Debug {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(tint.NewHandler(os.Stderr, &tint.Options{
		Level:      level,
		TimeFormat: time.Kitchen,
	})))

	if cfg.BotToken == "" {
		slog.Error("BOT_TOKEN is not set")
		os.Exit(1)
	}
	if cfg.DatabaseURL == "" {
		slog.Error("DATABASE_URL is not set")
		os.Exit(1)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	db, err := database.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		slog.Error("database connect failed", "err", err)
		os.Exit(1)
	}
	defer db.Close()

	opts := []bot.Option{
		bot.WithDefaultHandler(func(ctx context.Context, b *bot.Bot, update *models.Update) {}),
	}
	b, err := bot.New(cfg.BotToken, opts...)
	if err != nil {
		slog.Error("bot init failed", "err", err)
		os.Exit(1)
	}

	me, err := b.GetMe(ctx)
	if err != nil {
		slog.Error("getMe failed", "err", err)
		os.Exit(1)
	}
	slog.Info("bot authorized", "username", me.Username)

	tglog.Init(b, cfg.LogChannelID)

	sessions := session.NewMemoryStore()
	notifier := notify.NewTelegramNotifier(b)
	mod := moderation.New(db, notifier, cfg.IsAdmin)
	h := handlers.New(b, cfg, db, sessions, mod)

	b.RegisterHandler(bot.HandlerTypeMessageText, "", bot.MatchTypePrefix, h.OnMessage)
	b.RegisterHandler(bot.HandlerTypeCallbackQueryData, "", bot.MatchTypePrefix, h.OnCallback)

	// Periodic maintenance: archive stale approved listings and drop
	// idle conversation state.
	c := cron.New()
	_, err = c.AddFunc(cfg.CleanupCron, func() {
		var archived int64
		if cfg.ListingTTL > 0 {
			var err error
			archived, err = db.ArchiveListingsOlderThan(ctx, cfg.ListingTTL)
			if err != nil {
				slog.Error("archive sweep failed", "err", err)
			}
		}
		swept := sessions.Sweep(cfg.SessionTTL) + mod.Sweep(cfg.SessionTTL)
		slog.Info("maintenance done", "archived", archived, "sessions_swept", swept)
		tglog.Send("%s", messages.FormatArchiveReport(archived, swept, time.Now()))
	})
	if err != nil {
		slog.Error("cron schedule invalid", "schedule", cfg.CleanupCron, "err", err)
		os.Exit(1)
	}
	c.Start()
	defer c.Stop()

	slog.Info("bot started")
	b.Start(ctx)
}
