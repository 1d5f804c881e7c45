package session

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"uykelishuv_bot/database"
)

func runCreationFlow(t *testing.T, s *CreationState) database.ListingDraft {
	t.Helper()
	require.NoError(t, s.SelectRegion("14"))
	require.NoError(t, s.SelectCity("Chilonzor"))
	require.NoError(t, s.SelectType(database.TypeIjara))
	require.NoError(t, s.SelectPropertyType(database.PropertyKvartira))
	require.NoError(t, s.SelectRooms(3))
	require.NoError(t, s.SelectCurrency("USD", true))
	require.NoError(t, s.SelectFurnished(true))
	require.NoError(t, s.SelectPets(false))
	require.NoError(t, s.EnterPrice("500"))
	require.NoError(t, s.EnterTitle("Yangi kvartira"))
	require.NoError(t, s.EnterDescription(""))
	require.Equal(t, StepPreview, s.Step)

	draft, err := s.Complete()
	require.NoError(t, err)
	return draft
}

func TestCreationFlowRental(t *testing.T) {
	store := NewMemoryStore()
	s := store.StartCreation(1)

	draft := runCreationFlow(t, s)

	assert.Equal(t, "14", draft.RegionCode)
	assert.Equal(t, "Chilonzor", draft.CityName)
	assert.Equal(t, database.TypeIjara, draft.Type)
	require.NotNil(t, draft.PropertyType)
	assert.Equal(t, database.PropertyKvartira, *draft.PropertyType)
	assert.Equal(t, 3, draft.Rooms)
	assert.Equal(t, "USD", draft.Currency)
	assert.True(t, draft.Furnished)
	assert.False(t, draft.PetsAllowed)
	assert.Equal(t, 500.0, draft.Price)
	assert.Equal(t, "Yangi kvartira", draft.Title)
	assert.Nil(t, draft.Description)
}

func TestCreationSaleSkipsPropertyType(t *testing.T) {
	s := newCreationState()
	require.NoError(t, s.SelectRegion("10"))
	require.NoError(t, s.SelectCity("Samarqand"))
	require.NoError(t, s.SelectType(database.TypeSotuv))
	assert.Equal(t, StepRooms, s.Step)
	assert.Nil(t, s.Draft.PropertyType)
}

func TestCreationInvalidInputKeepsStep(t *testing.T) {
	s := newCreationState()

	err := s.SelectRegion("99")
	var inv *InvalidInput
	require.ErrorAs(t, err, &inv)
	assert.NotEmpty(t, inv.Reason)
	assert.Equal(t, StepRegion, s.Step)

	require.NoError(t, s.SelectRegion("14"))
	require.NoError(t, s.SelectCity("Chilonzor"))
	require.NoError(t, s.SelectType(database.TypeSotuv))
	require.NoError(t, s.SelectRooms(2))
	require.NoError(t, s.SelectCurrency("USD", true))
	require.NoError(t, s.SelectFurnished(false))
	require.NoError(t, s.SelectPets(true))

	require.ErrorAs(t, s.EnterPrice("bepul"), &inv)
	assert.Equal(t, StepPrice, s.Step)
	require.NoError(t, s.EnterPrice("300"))

	require.ErrorAs(t, s.EnterTitle("ab"), &inv)
	assert.Equal(t, StepTitle, s.Step)
}

func TestCreationWrongStep(t *testing.T) {
	s := newCreationState()
	assert.ErrorIs(t, s.SelectRooms(3), ErrWrongStep)
	assert.ErrorIs(t, s.EnterPrice("500"), ErrWrongStep)

	_, err := s.Complete()
	assert.ErrorIs(t, err, ErrWrongStep)
}

func TestAwaitingTextMutualExclusion(t *testing.T) {
	s := newCreationState()
	require.NoError(t, s.SelectRegion("14"))
	require.NoError(t, s.SelectCity("Chilonzor"))
	require.NoError(t, s.SelectType(database.TypeSotuv))
	assert.Equal(t, TextNone, s.AwaitingText())

	require.NoError(t, s.SelectRooms(3))
	require.NoError(t, s.SelectCurrency("UZS", true))
	require.NoError(t, s.SelectFurnished(true))
	require.NoError(t, s.SelectPets(true))
	assert.Equal(t, TextPrice, s.AwaitingText())

	require.NoError(t, s.EnterPrice("4500000"))
	assert.Equal(t, TextTitle, s.AwaitingText())

	require.NoError(t, s.EnterTitle("Sotuv uchun uy"))
	assert.Equal(t, TextDescription, s.AwaitingText())

	require.NoError(t, s.EnterDescription("markazda"))
	assert.Equal(t, TextNone, s.AwaitingText())
}

// A full creation flow ends with a complete draft and, after the
// handler persists it, an empty session for that user.
func TestCreationClearedAfterSubmit(t *testing.T) {
	store := NewMemoryStore()
	s := store.StartCreation(42)
	runCreationFlow(t, s)

	store.ClearCreation(42)
	_, err := store.Creation(42)
	assert.ErrorIs(t, err, ErrNoSession)
}

func TestDraftIsolationBetweenFlows(t *testing.T) {
	store := NewMemoryStore()

	c := store.StartCreation(7)
	require.NoError(t, c.SelectRegion("14"))
	require.NoError(t, c.SelectCity("Yunusobod"))

	// Starting a search for the same user must not touch the creation draft.
	sr := store.StartSearch(7)
	require.NoError(t, sr.SelectRegion(Wildcard))

	c2, err := store.Creation(7)
	require.NoError(t, err)
	assert.Equal(t, "Yunusobod", c2.Draft.CityName)
	assert.Equal(t, StepType, c2.Step)

	// And clearing one namespace leaves the other alone.
	store.ClearSearch(7)
	_, err = store.Creation(7)
	assert.NoError(t, err)
}

func TestSweep(t *testing.T) {
	store := NewMemoryStore()
	store.StartCreation(1)
	store.StartSearch(2)

	assert.Zero(t, store.Sweep(0), "disabled sweep drops nothing")

	// Fresh sessions survive a generous TTL.
	assert.Zero(t, store.Sweep(time.Hour))

	// Backdate and sweep.
	c, _ := store.Creation(1)
	c.touched = time.Now().Add(-2 * time.Hour)
	s, _ := store.Search(2)
	s.touched = time.Now().Add(-3 * time.Hour)

	assert.Equal(t, 2, store.Sweep(time.Hour))
	_, err := store.Creation(1)
	assert.ErrorIs(t, err, ErrNoSession)
}
