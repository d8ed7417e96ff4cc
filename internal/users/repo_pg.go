package users

import (
	"context"
	"database/sql"
	"errors"
)

// PGRepo implements Repo using Postgres.
type PGRepo struct {
	DB *sql.DB
}

// Upsert inserts a user record or refreshes its profile fields. An existing
// role is preserved unless the incoming role is explicitly set.
func (r *PGRepo) Upsert(ctx context.Context, user User) error {
	role := user.Role
	if !ValidRole(role) {
		role = RoleEmployee
	}
	const query = `
INSERT INTO users (id, email, full_name, role, created_at, updated_at)
VALUES ($1, $2, $3, $4, now(), now())
ON CONFLICT (id) DO UPDATE
SET email = EXCLUDED.email,
    full_name = EXCLUDED.full_name,
    role = CASE WHEN EXCLUDED.role = 'admin' THEN 'admin' ELSE users.role END,
    updated_at = now()`
	_, err := r.DB.ExecContext(ctx, query, user.ID, user.Email, user.FullName, role)
	return err
}

// GetByID returns the user with the given id.
func (r *PGRepo) GetByID(ctx context.Context, userID string) (User, error) {
	const query = `
SELECT id, email, full_name, role, created_at, updated_at
FROM users
WHERE id = $1`
	var user User
	err := r.DB.QueryRowContext(ctx, query, userID).Scan(
		&user.ID,
		&user.Email,
		&user.FullName,
		&user.Role,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return User{}, ErrNotFound
		}
		return User{}, err
	}
	return user, nil
}

// List returns all users ordered by email.
func (r *PGRepo) List(ctx context.Context) ([]User, error) {
	const query = `
SELECT id, email, full_name, role, created_at, updated_at
FROM users
ORDER BY email`
	rows, err := r.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []User
	for rows.Next() {
		var user User
		if err := rows.Scan(
			&user.ID,
			&user.Email,
			&user.FullName,
			&user.Role,
			&user.CreatedAt,
			&user.UpdatedAt,
		); err != nil {
			return nil, err
		}
		out = append(out, user)
	}
	return out, rows.Err()
}

var _ Repo = (*PGRepo)(nil)
