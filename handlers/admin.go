package handlers

import (
	"context"
	"errors"
	"log/slog"

	"uykelishuv_bot/database"
	"uykelishuv_bot/keyboards"
	"uykelishuv_bot/messages"
	"uykelishuv_bot/moderation"
	"uykelishuv_bot/tglog"
)

func (h *Handler) onAdminAction(ctx context.Context, userID int64, a Action) {
	switch a.Kind {
	case ActionAdminQueue:
		_, err := h.mod.OpenQueue(ctx, userID, database.StatusPending)
		if h.reportAdminError(ctx, userID, err) {
			return
		}
		h.showModerationCard(ctx, userID)

	case ActionAdminNext:
		if err := h.mod.Next(userID); err != nil && !errors.Is(err, moderation.ErrQueueExhausted) {
			h.reportAdminError(ctx, userID, err)
			return
		}
		h.showModerationCard(ctx, userID)

	case ActionAdminPrev:
		if err := h.mod.Prev(userID); err != nil && !errors.Is(err, moderation.ErrQueueExhausted) {
			h.reportAdminError(ctx, userID, err)
			return
		}
		h.showModerationCard(ctx, userID)

	case ActionAdminApprove:
		if h.reportAdminError(ctx, userID, h.mod.Approve(ctx, userID, a.Arg)) {
			return
		}
		tglog.Send("✅ E'lon tasdiqlandi: %s (admin %d)", a.Arg, userID)
		h.showModerationCard(ctx, userID)

	case ActionAdminReject:
		// The reason arrives as the admin's next text message.
		h.setPendingReject(userID, a.Arg)
		h.send(ctx, userID, messages.MsgEnterRejectionReason, nil)

	case ActionAdminDelete:
		if h.reportAdminError(ctx, userID, h.mod.Delete(ctx, userID, a.Arg)) {
			return
		}
		tglog.Send("🗑 E'lon o'chirildi: %s (admin %d)", a.Arg, userID)
		h.showModerationCard(ctx, userID)

	case ActionAdminStats:
		stats, err := h.mod.Statistics(ctx, userID)
		if h.reportAdminError(ctx, userID, err) {
			return
		}
		h.send(ctx, userID, messages.FormatStatistics(stats), keyboards.AdminMenu())
	}
}

// finishReject consumes the reason text the admin was asked for.
func (h *Handler) finishReject(ctx context.Context, adminID int64, listingID, reason string) {
	err := h.mod.Reject(ctx, adminID, listingID, reason)
	if errors.Is(err, database.ErrReasonRequired) {
		// Keep waiting for a usable reason.
		h.setPendingReject(adminID, listingID)
		h.send(ctx, adminID, messages.MsgEnterRejectionReason, nil)
		return
	}
	if h.reportAdminError(ctx, adminID, err) {
		return
	}
	tglog.Send("❌ E'lon rad etildi: %s (admin %d)", listingID, adminID)
	h.showModerationCard(ctx, adminID)
}

// showModerationCard renders the item under the cursor, or the
// exhausted notice when the queue is done.
func (h *Handler) showModerationCard(ctx context.Context, adminID int64) {
	q, err := h.mod.Queue(adminID)
	if err != nil {
		h.send(ctx, adminID, messages.MsgStateMissing, keyboards.AdminMenu())
		return
	}

	current, err := q.Current()
	if errors.Is(err, moderation.ErrQueueExhausted) {
		h.mod.CloseQueue(adminID)
		h.send(ctx, adminID, messages.MsgQueueExhausted, keyboards.AdminMenu())
		return
	}

	owner, err := h.db.GetUserByID(ctx, current.UserID)
	if err != nil {
		slog.Error("owner lookup failed", "listing", current.ID, "err", err)
		owner = nil
	}

	h.send(ctx, adminID,
		messages.FormatModerationCard(current, owner, q.Cursor, len(q.Items)),
		keyboards.ModerationCard(current.ID, q.HasPrev(), q.HasNext()))
}

func (h *Handler) reportAdminError(ctx context.Context, adminID int64, err error) bool {
	if err == nil {
		return false
	}
	switch {
	case errors.Is(err, moderation.ErrUnauthorized):
		h.send(ctx, adminID, messages.MsgNoAdminRights, nil)
	case errors.Is(err, moderation.ErrNoQueue):
		h.send(ctx, adminID, messages.MsgStateMissing, keyboards.AdminMenu())
	case errors.Is(err, database.ErrNotFound):
		h.send(ctx, adminID, messages.MsgGenericError, nil)
	default:
		slog.Error("admin action failed", "admin", adminID, "err", err)
		h.send(ctx, adminID, messages.MsgGenericError, nil)
	}
	return true
}
