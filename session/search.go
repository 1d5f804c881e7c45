package session

import (
	"strconv"
	"time"

	"uykelishuv_bot/database"
	"uykelishuv_bot/validation"
)

// Wildcard is the sentinel a user picks to leave a search step
// unconstrained. It is stripped before the store is queried.
const Wildcard = "all"

type SearchStep int

const (
	SearchRegion SearchStep = iota
	SearchCity
	SearchType
	SearchPropertyType // only reached when type is ijara
	SearchRooms
	SearchRefine // optional filters in any order, then execute
	SearchResults
)

// SearchState accumulates raw step inputs (which may be the wildcard)
// plus optional refinements, and after execution the materialized
// result set with a page cursor.
type SearchState struct {
	Step SearchStep

	RegionCode   string
	CityName     string
	Type         string
	PropertyType string
	Rooms        string

	Price       *validation.PriceRange
	Furnished   *bool
	PetsAllowed *bool

	Results  []*database.Listing
	Page     int
	PageSize int

	// awaitingPrice marks that the next free-text message is a price
	// range; it is only consulted through AwaitingText.
	awaitingPrice bool

	touched time.Time
}

func newSearchState() *SearchState {
	return &SearchState{Step: SearchRegion, touched: time.Now()}
}

// AwaitingText reports whether the flow expects a free-text price range.
func (s *SearchState) AwaitingText() TextKind {
	if s.Step == SearchRefine && s.awaitingPrice {
		return TextPriceRange
	}
	return TextNone
}

func (s *SearchState) SelectRegion(code string) error {
	if s.Step != SearchRegion {
		return ErrWrongStep
	}
	if code != Wildcard {
		if reason := validation.RegionCode(code); reason != "" {
			return invalid(reason)
		}
	}
	s.RegionCode = code
	s.Step = SearchCity
	return nil
}

func (s *SearchState) SelectCity(city string) error {
	if s.Step != SearchCity {
		return ErrWrongStep
	}
	if city == "" {
		return invalid("Shahar tanlanmadi")
	}
	s.CityName = city
	s.Step = SearchType
	return nil
}

func (s *SearchState) SelectType(t string) error {
	if s.Step != SearchType {
		return ErrWrongStep
	}
	switch t {
	case Wildcard, string(database.TypeIjara), string(database.TypeSotuv):
	default:
		return invalid("Noto'g'ri e'lon turi")
	}
	s.Type = t
	if t == string(database.TypeIjara) {
		s.Step = SearchPropertyType
	} else {
		s.Step = SearchRooms
	}
	return nil
}

func (s *SearchState) SelectPropertyType(pt string) error {
	if s.Step != SearchPropertyType {
		return ErrWrongStep
	}
	switch pt {
	case Wildcard, string(database.PropertyKvartira), string(database.PropertyUy), string(database.PropertyOfis):
	default:
		return invalid("Noto'g'ri uy turi")
	}
	s.PropertyType = pt
	s.Step = SearchRooms
	return nil
}

func (s *SearchState) SelectRooms(rooms string) error {
	if s.Step != SearchRooms {
		return ErrWrongStep
	}
	if rooms != Wildcard {
		n, err := strconv.Atoi(rooms)
		if err != nil {
			return invalid("Xonalar soni butun son bo'lishi kerak")
		}
		if reason := validation.Rooms(n); reason != "" {
			return invalid(reason)
		}
	}
	s.Rooms = rooms
	s.Step = SearchRefine
	return nil
}

func (s *SearchState) RequestPriceRange() error {
	if s.Step != SearchRefine {
		return ErrWrongStep
	}
	s.awaitingPrice = true
	return nil
}

func (s *SearchState) EnterPriceRange(text string) error {
	if s.Step != SearchRefine || !s.awaitingPrice {
		return ErrWrongStep
	}
	pr, reason := validation.PriceRangeText(text)
	if reason != "" {
		return invalid(reason)
	}
	s.Price = &pr
	s.awaitingPrice = false
	return nil
}

func (s *SearchState) SetFurnished(furnished bool) error {
	if s.Step != SearchRefine {
		return ErrWrongStep
	}
	s.Furnished = &furnished
	return nil
}

func (s *SearchState) SetPetsAllowed(allowed bool) error {
	if s.Step != SearchRefine {
		return ErrWrongStep
	}
	s.PetsAllowed = &allowed
	return nil
}

// Normalize strips wildcard values from the raw step inputs, leaving
// absence. Applying it twice changes nothing.
func (s *SearchState) Normalize() {
	s.RegionCode = stripWildcard(s.RegionCode)
	s.CityName = stripWildcard(s.CityName)
	s.Type = stripWildcard(s.Type)
	s.PropertyType = stripWildcard(s.PropertyType)
	s.Rooms = stripWildcard(s.Rooms)
}

func stripWildcard(v string) string {
	if v == Wildcard {
		return ""
	}
	return v
}

// Filters assembles the store query from the accumulated draft.
// Wildcards and absent values impose no constraint.
func (s *SearchState) Filters() database.SearchFilters {
	s.Normalize()

	var f database.SearchFilters
	if s.RegionCode != "" {
		f.RegionCode = &s.RegionCode
	}
	if s.CityName != "" {
		f.CityName = &s.CityName
	}
	if s.Type != "" {
		t := database.ListingType(s.Type)
		f.Type = &t
	}
	if s.PropertyType != "" {
		pt := database.PropertyType(s.PropertyType)
		f.PropertyType = &pt
	}
	if s.Rooms != "" {
		if n, err := strconv.Atoi(s.Rooms); err == nil {
			f.Rooms = &n
		}
	}
	if s.Price != nil {
		f.MinPrice = s.Price.Min
		f.MaxPrice = s.Price.Max
	}
	f.Furnished = s.Furnished
	f.PetsAllowed = s.PetsAllowed
	return f
}

// SetResults stores a non-empty result set and resets the page cursor.
// The filter draft survives an empty result so the user can refine.
func (s *SearchState) SetResults(results []*database.Listing, pageSize int) {
	if pageSize <= 0 {
		pageSize = 5
	}
	s.Results = results
	s.Page = 0
	s.PageSize = pageSize
	if len(results) > 0 {
		s.Step = SearchResults
	}
}

func (s *SearchState) PageCount() int {
	if s.PageSize == 0 || len(s.Results) == 0 {
		return 0
	}
	return (len(s.Results) + s.PageSize - 1) / s.PageSize
}

// CurrentPage returns the slice of results on the current page.
func (s *SearchState) CurrentPage() []*database.Listing {
	start := s.Page * s.PageSize
	if start >= len(s.Results) {
		return nil
	}
	end := start + s.PageSize
	if end > len(s.Results) {
		end = len(s.Results)
	}
	return s.Results[start:end]
}

func (s *SearchState) HasNextPage() bool { return s.Page < s.PageCount()-1 }
func (s *SearchState) HasPrevPage() bool { return s.Page > 0 }

func (s *SearchState) NextPage() {
	if s.HasNextPage() {
		s.Page++
	}
}

func (s *SearchState) PrevPage() {
	if s.HasPrevPage() {
		s.Page--
	}
}
