// Package keyboards builds the inline keyboards for every screen and
// owns the callback-data grammar the handlers decode. Callback data is
// colon-separated: flow, verb, optional argument, e.g. "lst:region:14".
package keyboards

import (
	"fmt"
	"strconv"

	"github.com/go-telegram/bot/models"

	"uykelishuv_bot/regions"
)

// Flow prefixes. Telegram routes every callback through one dispatcher,
// so the prefix tells the decoder which state machine the press belongs to.
const (
	FlowMenu    = "menu"
	FlowListing = "lst"
	FlowSearch  = "src"
	FlowAdmin   = "adm"
)

// Verbs shared by the listing and search flows.
const (
	VerbRegion       = "region"
	VerbCity         = "city"
	VerbType         = "type"
	VerbPropertyType = "ptype"
	VerbRooms        = "rooms"
	VerbCurrency     = "cur"
	VerbFurnished    = "furn"
	VerbPets         = "pets"
	VerbPrice        = "price"
	VerbSubmit       = "submit"
	VerbCancel       = "cancel"
	VerbRun          = "run"
	VerbNext         = "next"
	VerbPrev         = "prev"
	VerbContact      = "contact"
	VerbApprove      = "approve"
	VerbReject       = "reject"
	VerbDelete       = "delete"
	VerbQueue        = "queue"
	VerbStats        = "stats"
)

// Wildcard is the argument search keyboards use for "any".
const Wildcard = "all"

func data(flow, verb string, args ...string) string {
	out := flow + ":" + verb
	for _, a := range args {
		out += ":" + a
	}
	return out
}

func btn(text, callback string) models.InlineKeyboardButton {
	return models.InlineKeyboardButton{Text: text, CallbackData: callback}
}

func markup(rows ...[]models.InlineKeyboardButton) *models.InlineKeyboardMarkup {
	return &models.InlineKeyboardMarkup{InlineKeyboard: rows}
}

// grid lays buttons out perCol to a row.
func grid(buttons []models.InlineKeyboardButton, perRow int) [][]models.InlineKeyboardButton {
	var rows [][]models.InlineKeyboardButton
	for i := 0; i < len(buttons); i += perRow {
		end := i + perRow
		if end > len(buttons) {
			end = len(buttons)
		}
		rows = append(rows, buttons[i:end])
	}
	return rows
}

func MainMenu(isAdmin bool) *models.InlineKeyboardMarkup {
	rows := [][]models.InlineKeyboardButton{
		{btn("🏠 E'lon joylashtirish", data(FlowMenu, "create"))},
		{btn("🔍 Uy qidirish", data(FlowMenu, "search"))},
		{btn("📋 Mening e'lonlarim", data(FlowMenu, "my"))},
		{btn("ℹ️ Yordam", data(FlowMenu, "help"))},
	}
	if isAdmin {
		rows = append(rows, []models.InlineKeyboardButton{btn("⚙️ Admin panel", data(FlowMenu, "admin"))})
	}
	return markup(rows...)
}

// Regions lists every region code two to a row. For the search flow a
// wildcard row is appended.
func Regions(flow string) *models.InlineKeyboardMarkup {
	var buttons []models.InlineKeyboardButton
	for _, code := range regions.Codes() {
		buttons = append(buttons, btn(regions.Name(code), data(flow, VerbRegion, code)))
	}
	rows := grid(buttons, 2)
	if flow == FlowSearch {
		rows = append(rows, []models.InlineKeyboardButton{btn("🌍 Barcha hududlar", data(flow, VerbRegion, Wildcard))})
	}
	return markup(rows...)
}

func Cities(flow, regionCode string) *models.InlineKeyboardMarkup {
	var buttons []models.InlineKeyboardButton
	for _, city := range regions.Cities(regionCode) {
		buttons = append(buttons, btn(city, data(flow, VerbCity, city)))
	}
	rows := grid(buttons, 2)
	if flow == FlowSearch {
		rows = append(rows, []models.InlineKeyboardButton{btn("🌍 Barcha shaharlar", data(flow, VerbCity, Wildcard))})
	}
	return markup(rows...)
}

func ListingTypes(flow string) *models.InlineKeyboardMarkup {
	rows := [][]models.InlineKeyboardButton{
		{btn("🔑 Ijara", data(flow, VerbType, "ijara")), btn("🏷 Sotuv", data(flow, VerbType, "sotuv"))},
	}
	if flow == FlowSearch {
		rows = append(rows, []models.InlineKeyboardButton{btn("Farqi yo'q", data(flow, VerbType, Wildcard))})
	}
	return markup(rows...)
}

func PropertyTypes(flow string) *models.InlineKeyboardMarkup {
	rows := [][]models.InlineKeyboardButton{
		{btn("🏢 Kvartira", data(flow, VerbPropertyType, "kvartira"))},
		{btn("🏡 Uy", data(flow, VerbPropertyType, "uy"))},
		{btn("🏬 Ofis", data(flow, VerbPropertyType, "ofis"))},
	}
	if flow == FlowSearch {
		rows = append(rows, []models.InlineKeyboardButton{btn("Farqi yo'q", data(flow, VerbPropertyType, Wildcard))})
	}
	return markup(rows...)
}

// Rooms offers 1..6; the last button reads "6+" but still carries the
// value 6. A wildcard row is appended for search.
func Rooms(flow string) *models.InlineKeyboardMarkup {
	var buttons []models.InlineKeyboardButton
	for n := 1; n <= 6; n++ {
		label := strconv.Itoa(n)
		if n == 6 {
			label = "6+"
		}
		buttons = append(buttons, btn(label, data(flow, VerbRooms, strconv.Itoa(n))))
	}
	rows := grid(buttons, 3)
	if flow == FlowSearch {
		rows = append(rows, []models.InlineKeyboardButton{btn("Farqi yo'q", data(flow, VerbRooms, Wildcard))})
	}
	return markup(rows...)
}

func Currencies() *models.InlineKeyboardMarkup {
	var buttons []models.InlineKeyboardButton
	for _, code := range regions.CurrencyCodes() {
		buttons = append(buttons, btn(regions.CurrencyLabel(code), data(FlowListing, VerbCurrency, code)))
	}
	return markup(buttons)
}

// YesNo handles the furnished and pets questions in the listing flow.
func YesNo(verb string) *models.InlineKeyboardMarkup {
	return markup([]models.InlineKeyboardButton{
		btn("✅ Ha", data(FlowListing, verb, "yes")),
		btn("❌ Yo'q", data(FlowListing, verb, "no")),
	})
}

// SearchRefine is the pre-run screen: optional narrowing plus the run
// button. Refinements can be pressed in any order.
func SearchRefine() *models.InlineKeyboardMarkup {
	return markup(
		[]models.InlineKeyboardButton{btn("💰 Narx oralig'i", data(FlowSearch, VerbPrice))},
		[]models.InlineKeyboardButton{
			btn("🛋 Mebelli", data(FlowSearch, VerbFurnished, "yes")),
			btn("Mebelsiz", data(FlowSearch, VerbFurnished, "no")),
		},
		[]models.InlineKeyboardButton{
			btn("🐾 Hayvon mumkin", data(FlowSearch, VerbPets, "yes")),
			btn("Hayvonsiz", data(FlowSearch, VerbPets, "no")),
		},
		[]models.InlineKeyboardButton{btn("🔍 Qidirish", data(FlowSearch, VerbRun))},
		[]models.InlineKeyboardButton{btn("❌ Bekor qilish", data(FlowSearch, VerbCancel))},
	)
}

// Preview closes the listing flow: submit for moderation or discard.
func Preview() *models.InlineKeyboardMarkup {
	return markup(
		[]models.InlineKeyboardButton{btn("✅ Yuborish", data(FlowListing, VerbSubmit))},
		[]models.InlineKeyboardButton{btn("❌ Bekor qilish", data(FlowListing, VerbCancel))},
	)
}

// SearchResults paginates and lets the seeker request owner contact for
// the listings on the current page.
func SearchResults(page []ListingRef, hasPrev, hasNext bool) *models.InlineKeyboardMarkup {
	var rows [][]models.InlineKeyboardButton
	for _, ref := range page {
		rows = append(rows, []models.InlineKeyboardButton{
			btn(fmt.Sprintf("📞 %s", ref.Title), data(FlowSearch, VerbContact, ref.ID)),
		})
	}
	var nav []models.InlineKeyboardButton
	if hasPrev {
		nav = append(nav, btn("⬅️", data(FlowSearch, VerbPrev)))
	}
	if hasNext {
		nav = append(nav, btn("➡️", data(FlowSearch, VerbNext)))
	}
	if len(nav) > 0 {
		rows = append(rows, nav)
	}
	return markup(rows...)
}

// ListingRef is the minimal shape SearchResults needs per button.
type ListingRef struct {
	ID    string
	Title string
}

func AdminMenu() *models.InlineKeyboardMarkup {
	return markup(
		[]models.InlineKeyboardButton{btn("📥 Navbatni ochish", data(FlowAdmin, VerbQueue))},
		[]models.InlineKeyboardButton{btn("📊 Statistika", data(FlowAdmin, VerbStats))},
	)
}

// ModerationCard carries the acted-on listing ID in every action button
// so a stale card cannot act on whatever the cursor moved to.
func ModerationCard(listingID string, hasPrev, hasNext bool) *models.InlineKeyboardMarkup {
	rows := [][]models.InlineKeyboardButton{
		{
			btn("✅ Tasdiqlash", data(FlowAdmin, VerbApprove, listingID)),
			btn("❌ Rad etish", data(FlowAdmin, VerbReject, listingID)),
		},
		{btn("🗑 O'chirish", data(FlowAdmin, VerbDelete, listingID))},
	}
	var nav []models.InlineKeyboardButton
	if hasPrev {
		nav = append(nav, btn("⬅️", data(FlowAdmin, VerbPrev)))
	}
	if hasNext {
		nav = append(nav, btn("➡️", data(FlowAdmin, VerbNext)))
	}
	if len(nav) > 0 {
		rows = append(rows, nav)
	}
	return markup(rows...)
}
