package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/KennelyRay/E-Commerce-Website-sub000/internal/domain"
)

const userColumns = `id, name, username, email, password, is_admin,
	is_banned, created_at, updated_at`

// ListUsers returns every user ordered by creation time, oldest first.
func (s *Store) ListUsers(ctx context.Context) ([]domain.User, error) {
	if s.db == nil {
		return nil, ErrClosed
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT `+userColumns+`
		FROM users
		ORDER BY created_at ASC, id ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("query users: %w", err)
	}
	defer rows.Close()

	var users []domain.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate users: %w", err)
	}

	if users == nil {
		users = []domain.User{}
	}
	return users, nil
}

// GetUserByUsername returns one user by exact username, or ErrNotFound.
func (s *Store) GetUserByUsername(ctx context.Context, username string) (domain.User, error) {
	return s.getUser(ctx, `username = ?`, username)
}

// GetUserByEmail returns one user by exact email, or ErrNotFound.
func (s *Store) GetUserByEmail(ctx context.Context, email string) (domain.User, error) {
	return s.getUser(ctx, `email = ?`, email)
}

func (s *Store) getUser(ctx context.Context, where string, arg any) (domain.User, error) {
	if s.db == nil {
		return domain.User{}, ErrClosed
	}

	row := s.db.QueryRowContext(ctx, `
		SELECT `+userColumns+`
		FROM users
		WHERE `+where,
		arg)

	u, err := scanUser(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.User{}, fmt.Errorf("get user: %w", ErrNotFound)
		}
		return domain.User{}, fmt.Errorf("get user: %w", err)
	}
	return u, nil
}

// InsertUser adds a new user row. Username and email are UNIQUE; a
// constraint violation surfaces as an error from the driver.
func (s *Store) InsertUser(ctx context.Context, u domain.User) error {
	if s.db == nil {
		return ErrClosed
	}

	now := time.Now().UTC()
	if u.CreatedAt.IsZero() {
		u.CreatedAt = now
	}
	u.UpdatedAt = now

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO users (`+userColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`,
		u.ID, u.Name, u.Username, u.Email, u.PasswordHash,
		u.IsAdmin, u.IsBanned,
		u.CreatedAt.Format(time.RFC3339Nano),
		u.UpdatedAt.Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

// UpdateUser replaces the full user row keyed by id.
func (s *Store) UpdateUser(ctx context.Context, u domain.User) error {
	if s.db == nil {
		return ErrClosed
	}

	u.UpdatedAt = time.Now().UTC()

	res, err := s.db.ExecContext(ctx, `
		UPDATE users SET
			name = ?, username = ?, email = ?, password = ?,
			is_admin = ?, is_banned = ?, updated_at = ?
		WHERE id = ?
	`,
		u.Name, u.Username, u.Email, u.PasswordHash,
		u.IsAdmin, u.IsBanned,
		u.UpdatedAt.Format(time.RFC3339Nano),
		u.ID,
	)
	if err != nil {
		return fmt.Errorf("update user: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update user: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("update user %s: %w", u.ID, ErrNotFound)
	}
	return nil
}

// SetUserBanned toggles the banned flag for one user.
func (s *Store) SetUserBanned(ctx context.Context, id string, banned bool) error {
	if s.db == nil {
		return ErrClosed
	}

	res, err := s.db.ExecContext(ctx, `
		UPDATE users SET is_banned = ?, updated_at = ? WHERE id = ?
	`, banned, time.Now().UTC().Format(time.RFC3339Nano), id)
	if err != nil {
		return fmt.Errorf("set user banned: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("set user banned: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("set user banned %s: %w", id, ErrNotFound)
	}
	return nil
}

func scanUser(row rowScanner) (domain.User, error) {
	var (
		u                    domain.User
		createdAt, updatedAt string
	)

	err := row.Scan(
		&u.ID, &u.Name, &u.Username, &u.Email, &u.PasswordHash,
		&u.IsAdmin, &u.IsBanned, &createdAt, &updatedAt,
	)
	if err != nil {
		return domain.User{}, err
	}

	if u.CreatedAt, err = parseTime(createdAt); err != nil {
		return domain.User{}, fmt.Errorf("user %s created_at: %w", u.ID, err)
	}
	if u.UpdatedAt, err = parseTime(updatedAt); err != nil {
		return domain.User{}, fmt.Errorf("user %s updated_at: %w", u.ID, err)
	}
	return u, nil
}
