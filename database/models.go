package database

import "time"

type ListingType string

const (
	TypeIjara ListingType = "ijara"
	TypeSotuv ListingType = "sotuv"
)

type PropertyType string

const (
	PropertyKvartira PropertyType = "kvartira"
	PropertyUy       PropertyType = "uy"
	PropertyOfis     PropertyType = "ofis"
)

type ListingStatus string

const (
	StatusPending  ListingStatus = "pending"
	StatusApproved ListingStatus = "approved"
	StatusRejected ListingStatus = "rejected"
	StatusArchived ListingStatus = "archived"
)

type User struct {
	ID             string
	TelegramUserID int64
	Name           string
	PhoneNumber    *string
	Locale         string
	Verified       bool
	Blocked        bool
	CreatedAt      time.Time
}

type Listing struct {
	ID     string
	UserID string

	RegionCode string
	CityName   string
	Address    *string

	Type         ListingType
	PropertyType *PropertyType
	Rooms        int
	AreaM2       *float64
	Floor        *int
	TotalFloors  *int

	Price    float64
	Currency string

	Furnished   bool
	PetsAllowed bool

	Title       string
	Description *string

	ViewsCount    int
	ContactsCount int

	Status          ListingStatus
	RejectionReason *string

	CreatedAt  time.Time
	UpdatedAt  time.Time
	ApprovedAt *time.Time
}

// ListingDraft carries the fields collected by the conversation flow
// before a listing row exists.
type ListingDraft struct {
	RegionCode   string
	CityName     string
	Address      *string
	Type         ListingType
	PropertyType *PropertyType
	Rooms        int
	AreaM2       *float64
	Floor        *int
	TotalFloors  *int
	Price        float64
	Currency     string
	Furnished    bool
	PetsAllowed  bool
	Title        string
	Description  *string
}

// SearchFilters are all independently optional; a nil field means no
// constraint on that attribute.
type SearchFilters struct {
	RegionCode   *string
	CityName     *string
	Type         *ListingType
	PropertyType *PropertyType
	Rooms        *int
	MinPrice     *float64
	MaxPrice     *float64
	Furnished    *bool
	PetsAllowed  *bool
}

type Statistics struct {
	TotalUsers    int
	VerifiedUsers int
	BlockedUsers  int

	TotalListings    int
	PendingListings  int
	ApprovedListings int
	RejectedListings int
	ArchivedListings int

	RentalListings int
	SaleListings   int
}

// ApprovalRate is approved/total, guarded against an empty table.
func (s Statistics) ApprovalRate() float64 {
	total := s.TotalListings
	if total < 1 {
		total = 1
	}
	return float64(s.ApprovedListings) / float64(total)
}
