package database

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const listingColumns = `id, user_id, region_code, city_name, address, type, property_type,
	rooms, area_m2, floor, total_floors, price, currency, furnished, pets_allowed,
	title, description, views_count, contacts_count, status, rejection_reason,
	created_at, updated_at, approved_at`

func scanListing(row pgx.Row) (*Listing, error) {
	var l Listing
	err := row.Scan(
		&l.ID, &l.UserID, &l.RegionCode, &l.CityName, &l.Address, &l.Type, &l.PropertyType,
		&l.Rooms, &l.AreaM2, &l.Floor, &l.TotalFloors, &l.Price, &l.Currency, &l.Furnished, &l.PetsAllowed,
		&l.Title, &l.Description, &l.ViewsCount, &l.ContactsCount, &l.Status, &l.RejectionReason,
		&l.CreatedAt, &l.UpdatedAt, &l.ApprovedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &l, nil
}

func (db *DB) collectListings(ctx context.Context, query string, args ...any) ([]*Listing, error) {
	rows, err := db.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var listings []*Listing
	for rows.Next() {
		l, err := scanListing(rows)
		if err != nil {
			return nil, err
		}
		listings = append(listings, l)
	}
	return listings, rows.Err()
}

// CreateListing inserts a new pending listing for the given owner.
func (db *DB) CreateListing(ctx context.Context, ownerID string, draft ListingDraft) (*Listing, error) {
	query := `
		INSERT INTO listings (
			id, user_id, region_code, city_name, address, type, property_type,
			rooms, area_m2, floor, total_floors, price, currency, furnished, pets_allowed,
			title, description, status
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18)
		RETURNING ` + listingColumns

	return scanListing(db.Pool.QueryRow(ctx, query,
		uuid.NewString(), ownerID, draft.RegionCode, draft.CityName, draft.Address,
		draft.Type, draft.PropertyType, draft.Rooms, draft.AreaM2, draft.Floor, draft.TotalFloors,
		draft.Price, draft.Currency, draft.Furnished, draft.PetsAllowed,
		draft.Title, draft.Description, StatusPending,
	))
}

func (db *DB) GetListingByID(ctx context.Context, id string) (*Listing, error) {
	query := `SELECT ` + listingColumns + ` FROM listings WHERE id = $1`
	return scanListing(db.Pool.QueryRow(ctx, query, id))
}

// ListingsByOwner returns the owner's listings, newest first.
func (db *DB) ListingsByOwner(ctx context.Context, ownerID string) ([]*Listing, error) {
	query := `SELECT ` + listingColumns + ` FROM listings WHERE user_id = $1 ORDER BY created_at DESC`
	return db.collectListings(ctx, query, ownerID)
}

// ListingsByStatus returns listings with the given status, newest first.
func (db *DB) ListingsByStatus(ctx context.Context, status ListingStatus) ([]*Listing, error) {
	query := `SELECT ` + listingColumns + ` FROM listings WHERE status = $1 ORDER BY created_at DESC`
	return db.collectListings(ctx, query, status)
}

// UpdateListingStatus transitions a listing. A rejection must carry a
// non-empty reason; an approval stamps approved_at.
func (db *DB) UpdateListingStatus(ctx context.Context, id string, status ListingStatus, reason *string) (*Listing, error) {
	if status == StatusRejected && (reason == nil || strings.TrimSpace(*reason) == "") {
		return nil, ErrReasonRequired
	}
	if status != StatusRejected {
		reason = nil
	}

	query := `
		UPDATE listings
		SET status = $1,
		    rejection_reason = $2,
		    approved_at = CASE WHEN $1 = 'approved' THEN NOW() ELSE approved_at END,
		    updated_at = NOW()
		WHERE id = $3
		RETURNING ` + listingColumns

	return scanListing(db.Pool.QueryRow(ctx, query, status, reason, id))
}

func (db *DB) DeleteListing(ctx context.Context, id string) (bool, error) {
	tag, err := db.Pool.Exec(ctx, `DELETE FROM listings WHERE id = $1`, id)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

func (db *DB) IncrementViews(ctx context.Context, id string) error {
	return db.execOne(ctx, `UPDATE listings SET views_count = views_count + 1 WHERE id = $1`, id)
}

func (db *DB) IncrementContacts(ctx context.Context, id string) error {
	return db.execOne(ctx, `UPDATE listings SET contacts_count = contacts_count + 1 WHERE id = $1`, id)
}

// SearchListings returns approved listings matching the filters, price
// ascending.
func (db *DB) SearchListings(ctx context.Context, filters SearchFilters) ([]*Listing, error) {
	where, args := buildSearchClause(filters)
	query := fmt.Sprintf(
		`SELECT %s FROM listings %s ORDER BY price ASC`,
		listingColumns, where,
	)
	return db.collectListings(ctx, query, args...)
}

// buildSearchClause assembles the WHERE clause for a filtered search.
// Visibility is restricted to approved listings regardless of filters.
func buildSearchClause(f SearchFilters) (string, []any) {
	conds := []string{"status = 'approved'"}
	var args []any

	add := func(expr string, val any) {
		args = append(args, val)
		conds = append(conds, fmt.Sprintf(expr, len(args)))
	}

	if f.RegionCode != nil {
		add("region_code = $%d", *f.RegionCode)
	}
	if f.CityName != nil {
		add("city_name = $%d", *f.CityName)
	}
	if f.Type != nil {
		add("type = $%d", *f.Type)
	}
	if f.PropertyType != nil {
		add("property_type = $%d", *f.PropertyType)
	}
	if f.Rooms != nil {
		add("rooms = $%d", *f.Rooms)
	}
	if f.MinPrice != nil {
		add("price >= $%d", *f.MinPrice)
	}
	if f.MaxPrice != nil {
		add("price <= $%d", *f.MaxPrice)
	}
	if f.Furnished != nil {
		add("furnished = $%d", *f.Furnished)
	}
	if f.PetsAllowed != nil {
		add("pets_allowed = $%d", *f.PetsAllowed)
	}

	return "WHERE " + strings.Join(conds, " AND "), args
}

// ArchiveListingsOlderThan moves approved listings whose approval is older
// than the given age into archived status. Returns the number archived.
func (db *DB) ArchiveListingsOlderThan(ctx context.Context, age time.Duration) (int64, error) {
	query := `
		UPDATE listings
		SET status = 'archived', updated_at = NOW()
		WHERE status = 'approved' AND approved_at < NOW() - make_interval(secs => $1)`

	tag, err := db.Pool.Exec(ctx, query, age.Seconds())
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

// Statistics aggregates user and listing counts. Empty tables yield zeros.
func (db *DB) Statistics(ctx context.Context) (*Statistics, error) {
	query := `
		SELECT
			(SELECT COUNT(*) FROM users),
			(SELECT COUNT(*) FROM users WHERE verified),
			(SELECT COUNT(*) FROM users WHERE blocked),
			(SELECT COUNT(*) FROM listings),
			(SELECT COUNT(*) FROM listings WHERE status = 'pending'),
			(SELECT COUNT(*) FROM listings WHERE status = 'approved'),
			(SELECT COUNT(*) FROM listings WHERE status = 'rejected'),
			(SELECT COUNT(*) FROM listings WHERE status = 'archived'),
			(SELECT COUNT(*) FROM listings WHERE type = 'ijara'),
			(SELECT COUNT(*) FROM listings WHERE type = 'sotuv')`

	var s Statistics
	err := db.Pool.QueryRow(ctx, query).Scan(
		&s.TotalUsers, &s.VerifiedUsers, &s.BlockedUsers,
		&s.TotalListings, &s.PendingListings, &s.ApprovedListings,
		&s.RejectedListings, &s.ArchivedListings,
		&s.RentalListings, &s.SaleListings,
	)
	if err != nil {
		return nil, err
	}
	return &s, nil
}
