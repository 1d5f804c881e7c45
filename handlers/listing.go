package handlers

import (
	"context"
	"errors"
	"log/slog"
	"strconv"

	"uykelishuv_bot/database"
	"uykelishuv_bot/keyboards"
	"uykelishuv_bot/messages"
	"uykelishuv_bot/regions"
	"uykelishuv_bot/session"
	"uykelishuv_bot/tglog"
)

// startCreation resets only the creation namespace; search filters the
// user built up stay intact.
func (h *Handler) startCreation(ctx context.Context, userID int64) {
	h.sessions.StartCreation(userID)
	h.send(ctx, userID, messages.MsgListingStart, keyboards.Regions(keyboards.FlowListing))
}

func (h *Handler) onListingAction(ctx context.Context, user *database.User, a Action) {
	userID := user.TelegramUserID

	if a.Kind == ActionListingCancel {
		h.sessions.ClearCreation(userID)
		h.send(ctx, userID, messages.MsgListingCancelled, keyboards.MainMenu(h.cfg.IsAdmin(userID)))
		return
	}

	st, err := h.sessions.Creation(userID)
	if err != nil {
		h.send(ctx, userID, messages.MsgStateMissing, nil)
		return
	}

	switch a.Kind {
	case ActionListingRegion:
		err = st.SelectRegion(a.Arg)
	case ActionListingCity:
		err = st.SelectCity(a.Arg)
	case ActionListingType:
		err = st.SelectType(database.ListingType(a.Arg))
	case ActionListingPropertyType:
		err = st.SelectPropertyType(database.PropertyType(a.Arg))
	case ActionListingRooms:
		var rooms int
		rooms, err = strconv.Atoi(a.Arg)
		if err == nil {
			err = st.SelectRooms(rooms)
		}
	case ActionListingCurrency:
		err = st.SelectCurrency(a.Arg, regions.ValidCurrency(a.Arg))
	case ActionListingFurnished:
		err = st.SelectFurnished(a.Arg == "yes")
	case ActionListingPets:
		err = st.SelectPets(a.Arg == "yes")
	case ActionListingSubmit:
		h.submitListing(ctx, user, st)
		return
	}

	if h.reportFlowError(ctx, userID, err) {
		return
	}
	h.promptCreationStep(ctx, userID, st)
}

func (h *Handler) onCreationText(ctx context.Context, userID int64, st *session.CreationState, text string) {
	var err error
	switch st.AwaitingText() {
	case session.TextPrice:
		err = st.EnterPrice(text)
	case session.TextTitle:
		err = st.EnterTitle(text)
	case session.TextDescription:
		err = st.EnterDescription(text)
	default:
		h.send(ctx, userID, messages.MsgStateMissing, nil)
		return
	}

	if h.reportFlowError(ctx, userID, err) {
		return
	}
	h.promptCreationStep(ctx, userID, st)
}

// promptCreationStep sends whatever the flow needs next.
func (h *Handler) promptCreationStep(ctx context.Context, userID int64, st *session.CreationState) {
	switch st.Step {
	case session.StepCity:
		h.send(ctx, userID, "🏙 Shaharni tanlang:", keyboards.Cities(keyboards.FlowListing, st.Draft.RegionCode))
	case session.StepType:
		h.send(ctx, userID, "🏠 E'lon turini tanlang:", keyboards.ListingTypes(keyboards.FlowListing))
	case session.StepPropertyType:
		h.send(ctx, userID, "🏢 Mulk turini tanlang:", keyboards.PropertyTypes(keyboards.FlowListing))
	case session.StepRooms:
		h.send(ctx, userID, "🚪 Xonalar sonini tanlang:", keyboards.Rooms(keyboards.FlowListing))
	case session.StepCurrency:
		h.send(ctx, userID, "💵 Valyutani tanlang:", keyboards.Currencies())
	case session.StepFurnished:
		h.send(ctx, userID, "🛋 Mebellar bormi?", keyboards.YesNo(keyboards.VerbFurnished))
	case session.StepPets:
		h.send(ctx, userID, "🐕 Uy hayvonlari mumkinmi?", keyboards.YesNo(keyboards.VerbPets))
	case session.StepPrice:
		h.send(ctx, userID, messages.MsgEnterPrice, nil)
	case session.StepTitle:
		h.send(ctx, userID, messages.MsgEnterTitle, nil)
	case session.StepDescription:
		h.send(ctx, userID, messages.MsgEnterDescription, nil)
	case session.StepPreview:
		h.send(ctx, userID, messages.FormatDraftPreview(st.Draft), keyboards.Preview())
	}
}

func (h *Handler) submitListing(ctx context.Context, user *database.User, st *session.CreationState) {
	userID := user.TelegramUserID

	draft, err := st.Complete()
	if h.reportFlowError(ctx, userID, err) {
		return
	}

	listing, err := h.db.CreateListing(ctx, user.ID, draft)
	if err != nil {
		slog.Error("listing create failed", "user", userID, "err", err)
		h.send(ctx, userID, messages.MsgGenericError, nil)
		return
	}

	h.sessions.ClearCreation(userID)
	h.send(ctx, userID, messages.MsgListingSubmitted, keyboards.MainMenu(h.cfg.IsAdmin(userID)))
	tglog.Send("📥 Yangi e'lon: <b>%s</b> (%s)", listing.Title, listing.ID)
}

func (h *Handler) showMyListings(ctx context.Context, user *database.User) {
	listings, err := h.db.ListingsByOwner(ctx, user.ID)
	if err != nil {
		slog.Error("owner listings query failed", "user", user.ID, "err", err)
		h.send(ctx, user.TelegramUserID, messages.MsgGenericError, nil)
		return
	}
	h.send(ctx, user.TelegramUserID, messages.FormatMyListings(listings), nil)
}

// reportFlowError maps a session error to a user message. It returns
// true when the caller should stop because the input did not advance
// the flow.
func (h *Handler) reportFlowError(ctx context.Context, userID int64, err error) bool {
	if err == nil {
		return false
	}
	var bad *session.InvalidInput
	switch {
	case errors.As(err, &bad):
		h.send(ctx, userID, messages.FormatValidationError(bad.Reason), nil)
	case errors.Is(err, session.ErrNoSession):
		h.send(ctx, userID, messages.MsgStateMissing, nil)
	case errors.Is(err, session.ErrWrongStep):
		// Stale button from an earlier screen; drop it silently.
		slog.Debug("out-of-order press ignored", "user", userID)
	default:
		slog.Error("flow error", "user", userID, "err", err)
		h.send(ctx, userID, messages.MsgGenericError, nil)
	}
	return true
}
