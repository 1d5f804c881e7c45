package session

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"uykelishuv_bot/database"
)

func TestSearchFlowWithWildcards(t *testing.T) {
	s := newSearchState()
	require.NoError(t, s.SelectRegion("14"))
	require.NoError(t, s.SelectCity(Wildcard))
	require.NoError(t, s.SelectType("ijara"))
	assert.Equal(t, SearchPropertyType, s.Step)
	require.NoError(t, s.SelectPropertyType(Wildcard))
	require.NoError(t, s.SelectRooms(Wildcard))
	assert.Equal(t, SearchRefine, s.Step)

	f := s.Filters()
	require.NotNil(t, f.RegionCode)
	assert.Equal(t, "14", *f.RegionCode)
	require.NotNil(t, f.Type)
	assert.Equal(t, database.TypeIjara, *f.Type)
	assert.Nil(t, f.CityName, "wildcard city imposes no constraint")
	assert.Nil(t, f.PropertyType)
	assert.Nil(t, f.Rooms)
	assert.Nil(t, f.MinPrice)
	assert.Nil(t, f.Furnished)
}

func TestSearchSaleSkipsPropertyType(t *testing.T) {
	s := newSearchState()
	require.NoError(t, s.SelectRegion(Wildcard))
	require.NoError(t, s.SelectCity(Wildcard))
	require.NoError(t, s.SelectType("sotuv"))
	assert.Equal(t, SearchRooms, s.Step)
}

func TestNormalizeIdempotent(t *testing.T) {
	s := newSearchState()
	require.NoError(t, s.SelectRegion("14"))
	require.NoError(t, s.SelectCity(Wildcard))
	require.NoError(t, s.SelectType(Wildcard))
	require.NoError(t, s.SelectRooms("3"))

	s.Normalize()
	once := *s
	s.Normalize()
	assert.Equal(t, once.RegionCode, s.RegionCode)
	assert.Equal(t, once.CityName, s.CityName)
	assert.Equal(t, once.Type, s.Type)
	assert.Equal(t, once.PropertyType, s.PropertyType)
	assert.Equal(t, once.Rooms, s.Rooms)
}

func TestSearchPriceRangeRefinement(t *testing.T) {
	s := newSearchState()
	require.NoError(t, s.SelectRegion("14"))
	require.NoError(t, s.SelectCity(Wildcard))
	require.NoError(t, s.SelectType("sotuv"))
	require.NoError(t, s.SelectRooms("2"))

	// Free text is not routed to the price parser until requested.
	assert.Equal(t, TextNone, s.AwaitingText())
	assert.ErrorIs(t, s.EnterPriceRange("100-500"), ErrWrongStep)

	require.NoError(t, s.RequestPriceRange())
	assert.Equal(t, TextPriceRange, s.AwaitingText())

	var inv *InvalidInput
	require.ErrorAs(t, s.EnterPriceRange("500-100"), &inv)

	require.NoError(t, s.EnterPriceRange("300-600"))
	assert.Equal(t, TextNone, s.AwaitingText())

	f := s.Filters()
	require.NotNil(t, f.MinPrice)
	require.NotNil(t, f.MaxPrice)
	assert.Equal(t, 300.0, *f.MinPrice)
	assert.Equal(t, 600.0, *f.MaxPrice)
}

func TestSearchRefinementsAnyOrder(t *testing.T) {
	s := newSearchState()
	require.NoError(t, s.SelectRegion(Wildcard))
	require.NoError(t, s.SelectCity(Wildcard))
	require.NoError(t, s.SelectType(Wildcard))
	require.NoError(t, s.SelectRooms(Wildcard))

	require.NoError(t, s.SetPetsAllowed(false))
	require.NoError(t, s.SetFurnished(true))

	f := s.Filters()
	require.NotNil(t, f.Furnished)
	assert.True(t, *f.Furnished)
	require.NotNil(t, f.PetsAllowed)
	assert.False(t, *f.PetsAllowed)
}

func listings(n int) []*database.Listing {
	ls := make([]*database.Listing, n)
	for i := range ls {
		ls[i] = &database.Listing{ID: string(rune('a' + i))}
	}
	return ls
}

func TestPagination(t *testing.T) {
	s := newSearchState()
	s.SetResults(listings(12), 5)

	assert.Equal(t, SearchResults, s.Step)
	assert.Equal(t, 3, s.PageCount())
	assert.Len(t, s.CurrentPage(), 5)
	assert.True(t, s.HasNextPage())
	assert.False(t, s.HasPrevPage())

	s.NextPage()
	s.NextPage()
	assert.Equal(t, 2, s.Page)
	assert.Len(t, s.CurrentPage(), 2)
	assert.False(t, s.HasNextPage())

	// Clamped: advancing past the last page is a no-op.
	s.NextPage()
	assert.Equal(t, 2, s.Page)

	s.PrevPage()
	s.PrevPage()
	s.PrevPage()
	assert.Equal(t, 0, s.Page)
}

func TestEmptyResultKeepsFilterDraft(t *testing.T) {
	s := newSearchState()
	require.NoError(t, s.SelectRegion("14"))
	require.NoError(t, s.SelectCity(Wildcard))
	require.NoError(t, s.SelectType("ijara"))
	require.NoError(t, s.SelectPropertyType(Wildcard))
	require.NoError(t, s.SelectRooms("3"))

	s.SetResults(nil, 5)
	assert.Equal(t, SearchRefine, s.Step, "empty result keeps the user refining")
	assert.Equal(t, "14", s.RegionCode)

	f := s.Filters()
	require.NotNil(t, f.Rooms)
	assert.Equal(t, 3, *f.Rooms)
}
