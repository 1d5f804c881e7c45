package validation

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"uykelishuv_bot/database"
)

func TestPrice(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  float64
		ok    bool
	}{
		{name: "plain", input: "500", want: 500, ok: true},
		{name: "decimal", input: "499.99", want: 499.99, ok: true},
		{name: "trimmed", input: "  500  ", want: 500, ok: true},
		{name: "lower bound", input: "0.01", want: 0.01, ok: true},
		{name: "upper bound", input: "1000000", want: 1_000_000, ok: true},
		{name: "zero", input: "0"},
		{name: "negative", input: "-5"},
		{name: "too large", input: "1000001"},
		{name: "not a number", input: "besh yuz"},
		{name: "empty", input: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, reason := Price(tt.input)
			if tt.ok {
				assert.Empty(t, reason)
				assert.Equal(t, tt.want, got)
			} else {
				assert.NotEmpty(t, reason)
			}
		})
	}
}

func TestPriceDistinctReasons(t *testing.T) {
	_, nonNumeric := Price("abc")
	_, outOfRange := Price("2000000")
	assert.NotEqual(t, nonNumeric, outOfRange)
}

func TestPriceRangeText(t *testing.T) {
	f := func(v float64) *float64 { return &v }

	tests := []struct {
		name  string
		input string
		want  PriceRange
		ok    bool
	}{
		{name: "range", input: "100-500", want: PriceRange{Min: f(100), Max: f(500)}, ok: true},
		{name: "open upper", input: "500+", want: PriceRange{Min: f(500)}, ok: true},
		{name: "exact", input: "500", want: PriceRange{Min: f(500), Max: f(500)}, ok: true},
		{name: "spaces inside range", input: "100 - 500", want: PriceRange{Min: f(100), Max: f(500)}, ok: true},
		{name: "inverted range", input: "500-100"},
		{name: "equal bounds", input: "500-500"},
		{name: "double dash", input: "100-200-300"},
		{name: "garbage", input: "arzon"},
		{name: "garbage plus", input: "abc+"},
		{name: "range out of bounds", input: "0-500"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, reason := PriceRangeText(tt.input)
			if tt.ok {
				require.Empty(t, reason)
				assert.Equal(t, tt.want, got)
			} else {
				assert.NotEmpty(t, reason)
			}
		})
	}
}

func TestTitle(t *testing.T) {
	got, reason := Title("  Yangi kvartira  ")
	require.Empty(t, reason)
	assert.Equal(t, "Yangi kvartira", got)

	_, reason = Title("abc")
	assert.NotEmpty(t, reason)

	_, reason = Title("   ")
	assert.NotEmpty(t, reason)

	_, reason = Title(strings.Repeat("a", 256))
	assert.NotEmpty(t, reason)

	_, reason = Title(strings.Repeat("a", 255))
	assert.Empty(t, reason)
}

func TestDescription(t *testing.T) {
	got, reason := Description("")
	assert.Empty(t, reason)
	assert.Empty(t, got)

	_, reason = Description(strings.Repeat("b", 2001))
	assert.NotEmpty(t, reason)

	got, reason = Description(" markazda joylashgan ")
	assert.Empty(t, reason)
	assert.Equal(t, "markazda joylashgan", got)
}

func TestRooms(t *testing.T) {
	assert.Empty(t, Rooms(1))
	assert.Empty(t, Rooms(10))
	assert.NotEmpty(t, Rooms(0))
	assert.NotEmpty(t, Rooms(11))
}

func TestRegionCode(t *testing.T) {
	assert.Empty(t, RegionCode("14"))
	assert.Empty(t, RegionCode("01"))
	assert.NotEmpty(t, RegionCode("99"))
	assert.NotEmpty(t, RegionCode(""))
	assert.NotEmpty(t, RegionCode("1"))
}

func validDraft() database.ListingDraft {
	return database.ListingDraft{
		RegionCode: "14",
		CityName:   "Chilonzor",
		Type:       database.TypeIjara,
		Rooms:      3,
		Price:      500,
		Currency:   "USD",
		Title:      "Yangi kvartira",
	}
}

func TestDraft(t *testing.T) {
	assert.Empty(t, Draft(validDraft()))

	tests := []struct {
		name   string
		mutate func(*database.ListingDraft)
		hint   string
	}{
		{name: "missing region", mutate: func(d *database.ListingDraft) { d.RegionCode = "" }, hint: "region_code"},
		{name: "missing city", mutate: func(d *database.ListingDraft) { d.CityName = "" }, hint: "city_name"},
		{name: "missing type", mutate: func(d *database.ListingDraft) { d.Type = "" }, hint: "type"},
		{name: "missing rooms", mutate: func(d *database.ListingDraft) { d.Rooms = 0 }, hint: "rooms"},
		{name: "missing price", mutate: func(d *database.ListingDraft) { d.Price = 0 }, hint: "price"},
		{name: "missing title", mutate: func(d *database.ListingDraft) { d.Title = "" }, hint: "title"},
		{name: "bad region", mutate: func(d *database.ListingDraft) { d.RegionCode = "77" }},
		{name: "bad rooms", mutate: func(d *database.ListingDraft) { d.Rooms = 15 }},
		{name: "bad price", mutate: func(d *database.ListingDraft) { d.Price = 2_000_000 }},
		{name: "short title", mutate: func(d *database.ListingDraft) { d.Title = "ab" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := validDraft()
			tt.mutate(&d)
			reason := Draft(d)
			require.NotEmpty(t, reason)
			if tt.hint != "" {
				assert.Contains(t, reason, tt.hint)
			}
		})
	}
}
