package handlers

import (
	"strings"

	"uykelishuv_bot/keyboards"
)

// ActionKind is the closed set of things a button press can mean.
// Callback data is decoded exactly once, here; everything downstream
// switches on the kind instead of re-parsing strings.
type ActionKind int

const (
	ActionUnknown ActionKind = iota

	ActionMenuCreate
	ActionMenuSearch
	ActionMenuMy
	ActionMenuHelp
	ActionMenuAdmin

	ActionListingRegion
	ActionListingCity
	ActionListingType
	ActionListingPropertyType
	ActionListingRooms
	ActionListingCurrency
	ActionListingFurnished
	ActionListingPets
	ActionListingSubmit
	ActionListingCancel

	ActionSearchRegion
	ActionSearchCity
	ActionSearchType
	ActionSearchPropertyType
	ActionSearchRooms
	ActionSearchPrice
	ActionSearchFurnished
	ActionSearchPets
	ActionSearchRun
	ActionSearchNext
	ActionSearchPrev
	ActionSearchContact
	ActionSearchCancel

	ActionAdminQueue
	ActionAdminApprove
	ActionAdminReject
	ActionAdminDelete
	ActionAdminNext
	ActionAdminPrev
	ActionAdminStats
)

// Action is a decoded button press. Arg carries the payload for kinds
// that have one (a region code, a listing ID, "yes"/"no", ...).
type Action struct {
	Kind ActionKind
	Arg  string
}

var actionTable = map[string]ActionKind{
	keyboards.FlowMenu + ":create": ActionMenuCreate,
	keyboards.FlowMenu + ":search": ActionMenuSearch,
	keyboards.FlowMenu + ":my":     ActionMenuMy,
	keyboards.FlowMenu + ":help":   ActionMenuHelp,
	keyboards.FlowMenu + ":admin":  ActionMenuAdmin,

	keyboards.FlowListing + ":" + keyboards.VerbRegion:       ActionListingRegion,
	keyboards.FlowListing + ":" + keyboards.VerbCity:         ActionListingCity,
	keyboards.FlowListing + ":" + keyboards.VerbType:         ActionListingType,
	keyboards.FlowListing + ":" + keyboards.VerbPropertyType: ActionListingPropertyType,
	keyboards.FlowListing + ":" + keyboards.VerbRooms:        ActionListingRooms,
	keyboards.FlowListing + ":" + keyboards.VerbCurrency:     ActionListingCurrency,
	keyboards.FlowListing + ":" + keyboards.VerbFurnished:    ActionListingFurnished,
	keyboards.FlowListing + ":" + keyboards.VerbPets:         ActionListingPets,
	keyboards.FlowListing + ":" + keyboards.VerbSubmit:       ActionListingSubmit,
	keyboards.FlowListing + ":" + keyboards.VerbCancel:       ActionListingCancel,

	keyboards.FlowSearch + ":" + keyboards.VerbRegion:       ActionSearchRegion,
	keyboards.FlowSearch + ":" + keyboards.VerbCity:         ActionSearchCity,
	keyboards.FlowSearch + ":" + keyboards.VerbType:         ActionSearchType,
	keyboards.FlowSearch + ":" + keyboards.VerbPropertyType: ActionSearchPropertyType,
	keyboards.FlowSearch + ":" + keyboards.VerbRooms:        ActionSearchRooms,
	keyboards.FlowSearch + ":" + keyboards.VerbPrice:        ActionSearchPrice,
	keyboards.FlowSearch + ":" + keyboards.VerbFurnished:    ActionSearchFurnished,
	keyboards.FlowSearch + ":" + keyboards.VerbPets:         ActionSearchPets,
	keyboards.FlowSearch + ":" + keyboards.VerbRun:          ActionSearchRun,
	keyboards.FlowSearch + ":" + keyboards.VerbNext:         ActionSearchNext,
	keyboards.FlowSearch + ":" + keyboards.VerbPrev:         ActionSearchPrev,
	keyboards.FlowSearch + ":" + keyboards.VerbContact:      ActionSearchContact,
	keyboards.FlowSearch + ":" + keyboards.VerbCancel:       ActionSearchCancel,

	keyboards.FlowAdmin + ":" + keyboards.VerbQueue:   ActionAdminQueue,
	keyboards.FlowAdmin + ":" + keyboards.VerbApprove: ActionAdminApprove,
	keyboards.FlowAdmin + ":" + keyboards.VerbReject:  ActionAdminReject,
	keyboards.FlowAdmin + ":" + keyboards.VerbDelete:  ActionAdminDelete,
	keyboards.FlowAdmin + ":" + keyboards.VerbNext:    ActionAdminNext,
	keyboards.FlowAdmin + ":" + keyboards.VerbPrev:    ActionAdminPrev,
	keyboards.FlowAdmin + ":" + keyboards.VerbStats:   ActionAdminStats,
}

// DecodeAction parses raw callback data. An unrecognized payload maps
// to ActionUnknown so stale buttons from older bot versions fail soft.
func DecodeAction(raw string) Action {
	parts := strings.SplitN(raw, ":", 3)
	if len(parts) < 2 {
		return Action{Kind: ActionUnknown}
	}
	kind, ok := actionTable[parts[0]+":"+parts[1]]
	if !ok {
		return Action{Kind: ActionUnknown}
	}
	a := Action{Kind: kind}
	if len(parts) == 3 {
		a.Arg = parts[2]
	}
	return a
}
