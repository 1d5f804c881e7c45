package session

import (
	"time"

	"uykelishuv_bot/database"
	"uykelishuv_bot/validation"
)

// CreationStep is the single source of truth for what input the listing
// creation flow accepts next. There are no parallel "waiting" flags: the
// expected free-text kind is derived from the step.
type CreationStep int

const (
	StepRegion CreationStep = iota
	StepCity
	StepType
	StepPropertyType // only reached when type is ijara
	StepRooms
	StepCurrency
	StepFurnished
	StepPets
	StepPrice
	StepTitle
	StepDescription
	StepPreview
)

// TextKind names which free-text message a user is expected to send.
// At most one kind is active per user across all flows.
type TextKind int

const (
	TextNone TextKind = iota
	TextPrice
	TextTitle
	TextDescription
	TextPriceRange
	TextRejectionReason
)

type CreationState struct {
	Step  CreationStep
	Draft database.ListingDraft

	touched time.Time
}

func newCreationState() *CreationState {
	return &CreationState{Step: StepRegion, touched: time.Now()}
}

// AwaitingText reports which free text the flow expects at its current
// step, or TextNone for button-driven steps.
func (s *CreationState) AwaitingText() TextKind {
	switch s.Step {
	case StepPrice:
		return TextPrice
	case StepTitle:
		return TextTitle
	case StepDescription:
		return TextDescription
	default:
		return TextNone
	}
}

func (s *CreationState) SelectRegion(code string) error {
	if s.Step != StepRegion {
		return ErrWrongStep
	}
	if reason := validation.RegionCode(code); reason != "" {
		return invalid(reason)
	}
	s.Draft.RegionCode = code
	s.Step = StepCity
	return nil
}

func (s *CreationState) SelectCity(city string) error {
	if s.Step != StepCity {
		return ErrWrongStep
	}
	if city == "" {
		return invalid("Shahar tanlanmadi")
	}
	s.Draft.CityName = city
	s.Step = StepType
	return nil
}

// SelectType stores the listing type and branches: rentals collect a
// property type next, sales skip straight to rooms.
func (s *CreationState) SelectType(t database.ListingType) error {
	if s.Step != StepType {
		return ErrWrongStep
	}
	if t != database.TypeIjara && t != database.TypeSotuv {
		return invalid("Noto'g'ri e'lon turi")
	}
	s.Draft.Type = t
	if t == database.TypeIjara {
		s.Step = StepPropertyType
	} else {
		s.Step = StepRooms
	}
	return nil
}

func (s *CreationState) SelectPropertyType(pt database.PropertyType) error {
	if s.Step != StepPropertyType {
		return ErrWrongStep
	}
	switch pt {
	case database.PropertyKvartira, database.PropertyUy, database.PropertyOfis:
	default:
		return invalid("Noto'g'ri uy turi")
	}
	s.Draft.PropertyType = &pt
	s.Step = StepRooms
	return nil
}

func (s *CreationState) SelectRooms(rooms int) error {
	if s.Step != StepRooms {
		return ErrWrongStep
	}
	if reason := validation.Rooms(rooms); reason != "" {
		return invalid(reason)
	}
	s.Draft.Rooms = rooms
	s.Step = StepCurrency
	return nil
}

func (s *CreationState) SelectCurrency(code string, valid bool) error {
	if s.Step != StepCurrency {
		return ErrWrongStep
	}
	if !valid {
		return invalid("Noto'g'ri valyuta")
	}
	s.Draft.Currency = code
	s.Step = StepFurnished
	return nil
}

func (s *CreationState) SelectFurnished(furnished bool) error {
	if s.Step != StepFurnished {
		return ErrWrongStep
	}
	s.Draft.Furnished = furnished
	s.Step = StepPets
	return nil
}

func (s *CreationState) SelectPets(allowed bool) error {
	if s.Step != StepPets {
		return ErrWrongStep
	}
	s.Draft.PetsAllowed = allowed
	s.Step = StepPrice
	return nil
}

func (s *CreationState) EnterPrice(text string) error {
	if s.Step != StepPrice {
		return ErrWrongStep
	}
	price, reason := validation.Price(text)
	if reason != "" {
		return invalid(reason)
	}
	s.Draft.Price = price
	s.Step = StepTitle
	return nil
}

func (s *CreationState) EnterTitle(text string) error {
	if s.Step != StepTitle {
		return ErrWrongStep
	}
	title, reason := validation.Title(text)
	if reason != "" {
		return invalid(reason)
	}
	s.Draft.Title = title
	s.Step = StepDescription
	return nil
}

// EnterDescription stores an optional description. An empty message (or
// the skip button, which passes "") leaves the draft without one.
func (s *CreationState) EnterDescription(text string) error {
	if s.Step != StepDescription {
		return ErrWrongStep
	}
	desc, reason := validation.Description(text)
	if reason != "" {
		return invalid(reason)
	}
	if desc != "" {
		s.Draft.Description = &desc
	}
	s.Step = StepPreview
	return nil
}

// Complete validates the whole draft at the preview step and hands it
// out for persistence. The caller clears the session afterwards.
func (s *CreationState) Complete() (database.ListingDraft, error) {
	if s.Step != StepPreview {
		return database.ListingDraft{}, ErrWrongStep
	}
	if reason := validation.Draft(s.Draft); reason != "" {
		return database.ListingDraft{}, invalid(reason)
	}
	return s.Draft, nil
}
