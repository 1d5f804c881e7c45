package database

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const userColumns = `id, telegram_user_id, name, phone_number, locale, verified, blocked, created_at`

func scanUser(row pgx.Row) (*User, error) {
	var u User
	err := row.Scan(
		&u.ID, &u.TelegramUserID, &u.Name, &u.PhoneNumber,
		&u.Locale, &u.Verified, &u.Blocked, &u.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// GetOrCreateUser registers a user lazily on first contact. An existing
// row keeps its phone/locale/flags; the display name follows Telegram.
func (db *DB) GetOrCreateUser(ctx context.Context, telegramID int64, name string) (*User, error) {
	query := `
		INSERT INTO users (id, telegram_user_id, name)
		VALUES ($1, $2, $3)
		ON CONFLICT (telegram_user_id) DO UPDATE SET name = EXCLUDED.name
		RETURNING ` + userColumns

	return scanUser(db.Pool.QueryRow(ctx, query, uuid.NewString(), telegramID, name))
}

func (db *DB) GetUserByTelegramID(ctx context.Context, telegramID int64) (*User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE telegram_user_id = $1`
	return scanUser(db.Pool.QueryRow(ctx, query, telegramID))
}

func (db *DB) GetUserByID(ctx context.Context, id string) (*User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	return scanUser(db.Pool.QueryRow(ctx, query, id))
}

func (db *DB) UpdateUserName(ctx context.Context, id, name string) error {
	return db.execOne(ctx, `UPDATE users SET name = $1 WHERE id = $2`, name, id)
}

// UpdateUserPhone sets or clears the unique phone number.
func (db *DB) UpdateUserPhone(ctx context.Context, id string, phone *string) error {
	return db.execOne(ctx, `UPDATE users SET phone_number = $1 WHERE id = $2`, phone, id)
}

func (db *DB) SetUserBlocked(ctx context.Context, id string, blocked bool) error {
	return db.execOne(ctx, `UPDATE users SET blocked = $1 WHERE id = $2`, blocked, id)
}

func (db *DB) SetUserVerified(ctx context.Context, id string, verified bool) error {
	return db.execOne(ctx, `UPDATE users SET verified = $1 WHERE id = $2`, verified, id)
}

// DeleteUser hard-deletes a user row. Listings are not cascaded.
func (db *DB) DeleteUser(ctx context.Context, id string) (bool, error) {
	tag, err := db.Pool.Exec(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

func (db *DB) GetAllUsers(ctx context.Context) ([]*User, error) {
	query := `SELECT ` + userColumns + ` FROM users ORDER BY created_at DESC`

	rows, err := db.Pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []*User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

func (db *DB) execOne(ctx context.Context, query string, args ...any) error {
	tag, err := db.Pool.Exec(ctx, query, args...)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
