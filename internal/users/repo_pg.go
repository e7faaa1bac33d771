package users

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
)

// PGRepo is a Postgres-backed implementation of Repo.
type PGRepo struct {
	DB *sql.DB
}

// NewPGRepo constructs a PGRepo.
func NewPGRepo(db *sql.DB) *PGRepo {
	return &PGRepo{DB: db}
}

const userColumns = `id, email, name, password_hash, picture_url, created_at, updated_at`

// Create inserts a new user row.
func (r *PGRepo) Create(ctx context.Context, user User) error {
	query := fmt.Sprintf(`
		INSERT INTO users (%s)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`, userColumns)
	_, err := r.DB.ExecContext(ctx, query,
		user.ID, normalizeEmail(user.Email), user.Name, user.PasswordHash,
		user.PictureURL, user.CreatedAt, user.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrEmailTaken
		}
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

// Upsert inserts the user or refreshes profile fields keyed by ID.
func (r *PGRepo) Upsert(ctx context.Context, user User) error {
	query := fmt.Sprintf(`
		INSERT INTO users (%s)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (id) DO UPDATE SET
			email = EXCLUDED.email,
			name = EXCLUDED.name,
			picture_url = EXCLUDED.picture_url,
			updated_at = EXCLUDED.updated_at`, userColumns)
	_, err := r.DB.ExecContext(ctx, query,
		user.ID, normalizeEmail(user.Email), user.Name, user.PasswordHash,
		user.PictureURL, user.CreatedAt, user.UpdatedAt)
	if err != nil {
		return fmt.Errorf("upsert user: %w", err)
	}
	return nil
}

// GetByID returns a user row by ID.
func (r *PGRepo) GetByID(ctx context.Context, userID string) (User, error) {
	query := fmt.Sprintf(`SELECT %s FROM users WHERE id = $1`, userColumns)
	return r.scanOne(r.DB.QueryRowContext(ctx, query, userID))
}

// GetByEmail returns a user row by normalized email.
func (r *PGRepo) GetByEmail(ctx context.Context, email string) (User, error) {
	query := fmt.Sprintf(`SELECT %s FROM users WHERE email = $1`, userColumns)
	return r.scanOne(r.DB.QueryRowContext(ctx, query, normalizeEmail(email)))
}

func (r *PGRepo) scanOne(row *sql.Row) (User, error) {
	var user User
	var pictureURL sql.NullString
	err := row.Scan(&user.ID, &user.Email, &user.Name, &user.PasswordHash,
		&pictureURL, &user.CreatedAt, &user.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return User{}, ErrNotFound
	}
	if err != nil {
		return User{}, fmt.Errorf("scan user: %w", err)
	}
	user.PictureURL = pictureURL.String
	return user, nil
}

func isUniqueViolation(err error) bool {
	// pgx stdlib surfaces SQLSTATE in the error text; 23505 is unique_violation.
	return err != nil && strings.Contains(err.Error(), "23505")
}

var _ Repo = (*PGRepo)(nil)
