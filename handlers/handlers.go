// Package handlers wires Telegram updates to the conversation state
// machines, the listing store, and the moderation workflow.
package handlers

import (
	"context"
	"log/slog"
	"strings"
	"sync"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"

	"uykelishuv_bot/config"
	"uykelishuv_bot/database"
	"uykelishuv_bot/keyboards"
	"uykelishuv_bot/messages"
	"uykelishuv_bot/moderation"
	"uykelishuv_bot/session"
)

type Handler struct {
	bot      *bot.Bot
	cfg      *config.Config
	db       *database.DB
	sessions session.Store
	mod      *moderation.Workflow

	mu            sync.Mutex
	pendingReject map[int64]string // admin -> listing ID awaiting a rejection reason
}

func New(b *bot.Bot, cfg *config.Config, db *database.DB, sessions session.Store, mod *moderation.Workflow) *Handler {
	return &Handler{
		bot:           b,
		cfg:           cfg,
		db:            db,
		sessions:      sessions,
		mod:           mod,
		pendingReject: make(map[int64]string),
	}
}

func (h *Handler) send(ctx context.Context, chatID int64, text string, kb *models.InlineKeyboardMarkup) {
	params := &bot.SendMessageParams{
		ChatID:    chatID,
		Text:      text,
		ParseMode: models.ParseModeHTML,
	}
	if kb != nil {
		params.ReplyMarkup = kb
	}
	if _, err := h.bot.SendMessage(ctx, params); err != nil {
		slog.Error("send failed", "chat", chatID, "err", err)
	}
}

// OnMessage handles commands and the free-text steps of the flows.
func (h *Handler) OnMessage(ctx context.Context, _ *bot.Bot, update *models.Update) {
	msg := update.Message
	if msg == nil || msg.From == nil {
		return
	}
	userID := msg.From.ID
	text := strings.TrimSpace(msg.Text)

	user, err := h.db.GetOrCreateUser(ctx, userID, displayName(msg.From))
	if err != nil {
		slog.Error("user upsert failed", "user", userID, "err", err)
		h.send(ctx, userID, messages.MsgGenericError, nil)
		return
	}
	if user.Blocked {
		h.send(ctx, userID, messages.MsgBlocked, nil)
		return
	}

	switch {
	case strings.HasPrefix(text, "/start"):
		h.sessions.ClearCreation(userID)
		h.sessions.ClearSearch(userID)
		h.send(ctx, userID, messages.FormatWelcome(user.Name), keyboards.MainMenu(h.cfg.IsAdmin(userID)))
		return
	case strings.HasPrefix(text, "/help"):
		h.send(ctx, userID, messages.MsgHelp, nil)
		return
	case strings.HasPrefix(text, "/phone"):
		h.savePhone(ctx, user, strings.TrimSpace(strings.TrimPrefix(text, "/phone")))
		return
	case strings.HasPrefix(text, "/admin"):
		if !h.cfg.IsAdmin(userID) {
			h.send(ctx, userID, messages.MsgNoAdminRights, nil)
			return
		}
		h.send(ctx, userID, "⚙️ <b>Admin panel</b>", keyboards.AdminMenu())
		return
	}

	// A pending rejection reason takes priority over any user flow the
	// admin may also have open.
	if listingID, ok := h.takePendingReject(userID); ok {
		h.finishReject(ctx, userID, listingID, text)
		return
	}

	if st, err := h.sessions.Creation(userID); err == nil && st.AwaitingText() != session.TextNone {
		h.onCreationText(ctx, userID, st, text)
		return
	}
	if st, err := h.sessions.Search(userID); err == nil && st.AwaitingText() != session.TextNone {
		h.onSearchText(ctx, userID, st, text)
		return
	}

	h.send(ctx, userID, messages.MsgStateMissing, nil)
}

// OnCallback decodes the button press once and dispatches on the kind.
func (h *Handler) OnCallback(ctx context.Context, _ *bot.Bot, update *models.Update) {
	cb := update.CallbackQuery
	if cb == nil {
		return
	}
	userID := cb.From.ID

	// Acknowledge immediately so the client stops its spinner.
	if _, err := h.bot.AnswerCallbackQuery(ctx, &bot.AnswerCallbackQueryParams{CallbackQueryID: cb.ID}); err != nil {
		slog.Debug("callback ack failed", "user", userID, "err", err)
	}

	user, err := h.db.GetOrCreateUser(ctx, userID, displayName(&cb.From))
	if err != nil {
		slog.Error("user upsert failed", "user", userID, "err", err)
		h.send(ctx, userID, messages.MsgGenericError, nil)
		return
	}
	if user.Blocked {
		h.send(ctx, userID, messages.MsgBlocked, nil)
		return
	}

	action := DecodeAction(cb.Data)
	switch action.Kind {
	case ActionMenuCreate:
		h.startCreation(ctx, userID)
	case ActionMenuSearch:
		h.startSearch(ctx, userID)
	case ActionMenuMy:
		h.showMyListings(ctx, user)
	case ActionMenuHelp:
		h.send(ctx, userID, messages.MsgHelp, nil)
	case ActionMenuAdmin:
		if !h.cfg.IsAdmin(userID) {
			h.send(ctx, userID, messages.MsgNoAdminRights, nil)
			return
		}
		h.send(ctx, userID, "⚙️ <b>Admin panel</b>", keyboards.AdminMenu())

	case ActionListingRegion, ActionListingCity, ActionListingType,
		ActionListingPropertyType, ActionListingRooms, ActionListingCurrency,
		ActionListingFurnished, ActionListingPets, ActionListingSubmit,
		ActionListingCancel:
		h.onListingAction(ctx, user, action)

	case ActionSearchRegion, ActionSearchCity, ActionSearchType,
		ActionSearchPropertyType, ActionSearchRooms, ActionSearchPrice,
		ActionSearchFurnished, ActionSearchPets, ActionSearchRun,
		ActionSearchNext, ActionSearchPrev, ActionSearchContact,
		ActionSearchCancel:
		h.onSearchAction(ctx, userID, action)

	case ActionAdminQueue, ActionAdminApprove, ActionAdminReject,
		ActionAdminDelete, ActionAdminNext, ActionAdminPrev, ActionAdminStats:
		h.onAdminAction(ctx, userID, action)

	default:
		slog.Warn("unknown callback", "user", userID, "data", cb.Data)
	}
}

// savePhone stores the contact number shown to seekers who ask for the
// owner's details.
func (h *Handler) savePhone(ctx context.Context, user *database.User, phone string) {
	if phone == "" {
		h.send(ctx, user.TelegramUserID, messages.MsgEnterPhone, nil)
		return
	}
	if err := h.db.UpdateUserPhone(ctx, user.ID, &phone); err != nil {
		slog.Error("phone update failed", "user", user.ID, "err", err)
		h.send(ctx, user.TelegramUserID, messages.MsgGenericError, nil)
		return
	}
	h.send(ctx, user.TelegramUserID, messages.MsgPhoneSaved, nil)
}

func (h *Handler) setPendingReject(adminID int64, listingID string) {
	h.mu.Lock()
	h.pendingReject[adminID] = listingID
	h.mu.Unlock()
}

func (h *Handler) takePendingReject(adminID int64) (string, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	id, ok := h.pendingReject[adminID]
	if ok {
		delete(h.pendingReject, adminID)
	}
	return id, ok
}

func displayName(u *models.User) string {
	name := strings.TrimSpace(u.FirstName + " " + u.LastName)
	if name == "" {
		name = u.Username
	}
	if name == "" {
		name = "Foydalanuvchi"
	}
	return name
}
