package handlers

import (
	"context"
	"log/slog"

	"uykelishuv_bot/keyboards"
	"uykelishuv_bot/messages"
	"uykelishuv_bot/session"
)

// startSearch resets only the search namespace; a creation draft in
// progress survives the detour.
func (h *Handler) startSearch(ctx context.Context, userID int64) {
	h.sessions.StartSearch(userID)
	h.send(ctx, userID, messages.MsgSearchStart, keyboards.Regions(keyboards.FlowSearch))
}

func (h *Handler) onSearchAction(ctx context.Context, userID int64, a Action) {
	if a.Kind == ActionSearchCancel {
		h.sessions.ClearSearch(userID)
		h.send(ctx, userID, messages.MsgListingCancelled, keyboards.MainMenu(h.cfg.IsAdmin(userID)))
		return
	}
	if a.Kind == ActionSearchContact {
		h.sendOwnerContact(ctx, userID, a.Arg)
		return
	}

	st, err := h.sessions.Search(userID)
	if err != nil {
		h.send(ctx, userID, messages.MsgStateMissing, nil)
		return
	}

	switch a.Kind {
	case ActionSearchRegion:
		err = st.SelectRegion(a.Arg)
	case ActionSearchCity:
		err = st.SelectCity(a.Arg)
	case ActionSearchType:
		err = st.SelectType(a.Arg)
	case ActionSearchPropertyType:
		err = st.SelectPropertyType(a.Arg)
	case ActionSearchRooms:
		err = st.SelectRooms(a.Arg)
	case ActionSearchPrice:
		if err = st.RequestPriceRange(); err == nil {
			h.send(ctx, userID, messages.MsgEnterPriceRange, nil)
			return
		}
	case ActionSearchFurnished:
		err = st.SetFurnished(a.Arg == "yes")
	case ActionSearchPets:
		err = st.SetPetsAllowed(a.Arg == "yes")
	case ActionSearchRun:
		h.runSearch(ctx, userID, st)
		return
	case ActionSearchNext:
		st.NextPage()
		h.renderResultsPage(ctx, userID, st)
		return
	case ActionSearchPrev:
		st.PrevPage()
		h.renderResultsPage(ctx, userID, st)
		return
	}

	if h.reportFlowError(ctx, userID, err) {
		return
	}
	h.promptSearchStep(ctx, userID, st)
}

func (h *Handler) onSearchText(ctx context.Context, userID int64, st *session.SearchState, text string) {
	if st.AwaitingText() != session.TextPriceRange {
		h.send(ctx, userID, messages.MsgStateMissing, nil)
		return
	}
	if h.reportFlowError(ctx, userID, st.EnterPriceRange(text)) {
		return
	}
	h.promptSearchStep(ctx, userID, st)
}

func (h *Handler) promptSearchStep(ctx context.Context, userID int64, st *session.SearchState) {
	switch st.Step {
	case session.SearchCity:
		h.send(ctx, userID, "🏙 Shaharni tanlang:", keyboards.Cities(keyboards.FlowSearch, st.RegionCode))
	case session.SearchType:
		h.send(ctx, userID, "🏠 E'lon turini tanlang:", keyboards.ListingTypes(keyboards.FlowSearch))
	case session.SearchPropertyType:
		h.send(ctx, userID, "🏢 Mulk turini tanlang:", keyboards.PropertyTypes(keyboards.FlowSearch))
	case session.SearchRooms:
		h.send(ctx, userID, "🚪 Xonalar sonini tanlang:", keyboards.Rooms(keyboards.FlowSearch))
	case session.SearchRefine:
		h.send(ctx, userID, "⚙️ Qo'shimcha filtrlar (ixtiyoriy):", keyboards.SearchRefine())
	}
}

func (h *Handler) runSearch(ctx context.Context, userID int64, st *session.SearchState) {
	st.Normalize()

	results, err := h.db.SearchListings(ctx, st.Filters())
	if err != nil {
		slog.Error("search failed", "user", userID, "err", err)
		h.send(ctx, userID, messages.MsgGenericError, nil)
		return
	}

	st.SetResults(results, h.cfg.ItemsPerPage)
	if len(results) == 0 {
		// The filter draft survives so the seeker can widen and retry.
		h.send(ctx, userID, messages.MsgNoSearchResults, keyboards.SearchRefine())
		return
	}
	h.renderResultsPage(ctx, userID, st)
}

func (h *Handler) renderResultsPage(ctx context.Context, userID int64, st *session.SearchState) {
	page := st.CurrentPage()
	refs := make([]keyboards.ListingRef, 0, len(page))
	for _, l := range page {
		refs = append(refs, keyboards.ListingRef{ID: l.ID, Title: l.Title})
		if err := h.db.IncrementViews(ctx, l.ID); err != nil {
			slog.Debug("view count update failed", "listing", l.ID, "err", err)
		}
	}

	h.send(ctx, userID,
		messages.FormatSearchResults(page, st.Page*st.PageSize, len(st.Results)),
		keyboards.SearchResults(refs, st.HasPrevPage(), st.HasNextPage()))
}

func (h *Handler) sendOwnerContact(ctx context.Context, userID int64, listingID string) {
	listing, err := h.db.GetListingByID(ctx, listingID)
	if err != nil {
		h.send(ctx, userID, messages.MsgGenericError, nil)
		return
	}
	owner, err := h.db.GetUserByID(ctx, listing.UserID)
	if err != nil {
		h.send(ctx, userID, messages.MsgGenericError, nil)
		return
	}
	if err := h.db.IncrementContacts(ctx, listingID); err != nil {
		slog.Debug("contact count update failed", "listing", listingID, "err", err)
	}
	h.send(ctx, userID, messages.FormatOwnerContact(listing, owner), nil)
}
