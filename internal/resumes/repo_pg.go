package resumes

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"resume-builder/resume/model"
)

// PGRepo is a Postgres-backed implementation of Repo. Content is stored as a
// JSONB column.
type PGRepo struct {
	DB *sql.DB
}

// NewPGRepo constructs a PGRepo.
func NewPGRepo(db *sql.DB) *PGRepo {
	return &PGRepo{DB: db}
}

// Create inserts a new resume row.
func (r *PGRepo) Create(ctx context.Context, rec Record) error {
	contentJSON, err := json.Marshal(rec.Content)
	if err != nil {
		return fmt.Errorf("marshal content: %w", err)
	}
	_, err = r.DB.ExecContext(ctx, `
		INSERT INTO resumes (id, user_id, title, content, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		rec.ID, rec.UserID, rec.Title, contentJSON, rec.CreatedAt, rec.UpdatedAt)
	if err != nil {
		return fmt.Errorf("insert resume: %w", err)
	}
	return nil
}

// Get returns a resume row owned by the user.
func (r *PGRepo) Get(ctx context.Context, userID, resumeID string) (Record, error) {
	row := r.DB.QueryRowContext(ctx, `
		SELECT id, user_id, title, content, created_at, updated_at
		FROM resumes
		WHERE id = $1 AND user_id = $2`, resumeID, userID)
	return scanRecord(row.Scan)
}

// ListByUser returns the user's resumes, most recently updated first.
func (r *PGRepo) ListByUser(ctx context.Context, userID string) ([]Record, error) {
	rows, err := r.DB.QueryContext(ctx, `
		SELECT id, user_id, title, content, created_at, updated_at
		FROM resumes
		WHERE user_id = $1
		ORDER BY updated_at DESC, id ASC`, userID)
	if err != nil {
		return nil, fmt.Errorf("list resumes: %w", err)
	}
	defer rows.Close()

	out := make([]Record, 0)
	for rows.Next() {
		rec, err := scanRecord(rows.Scan)
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate resumes: %w", err)
	}
	return out, nil
}

// Update replaces title, content and updated_at for a row owned by the user.
func (r *PGRepo) Update(ctx context.Context, rec Record) error {
	contentJSON, err := json.Marshal(rec.Content)
	if err != nil {
		return fmt.Errorf("marshal content: %w", err)
	}
	res, err := r.DB.ExecContext(ctx, `
		UPDATE resumes
		SET title = $1, content = $2, updated_at = $3
		WHERE id = $4 AND user_id = $5`,
		rec.Title, contentJSON, rec.UpdatedAt, rec.ID, rec.UserID)
	if err != nil {
		return fmt.Errorf("update resume: %w", err)
	}
	return requireRow(res)
}

// Delete removes a row owned by the user.
func (r *PGRepo) Delete(ctx context.Context, userID, resumeID string) error {
	res, err := r.DB.ExecContext(ctx,
		`DELETE FROM resumes WHERE id = $1 AND user_id = $2`, resumeID, userID)
	if err != nil {
		return fmt.Errorf("delete resume: %w", err)
	}
	return requireRow(res)
}

func scanRecord(scan func(dest ...any) error) (Record, error) {
	var rec Record
	var contentJSON []byte
	err := scan(&rec.ID, &rec.UserID, &rec.Title, &contentJSON, &rec.CreatedAt, &rec.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return Record{}, ErrNotFound
	}
	if err != nil {
		return Record{}, fmt.Errorf("scan resume: %w", err)
	}
	var content model.Content
	if err := json.Unmarshal(contentJSON, &content); err != nil {
		return Record{}, fmt.Errorf("decode content: %w", err)
	}
	rec.Content = content
	return rec, nil
}

func requireRow(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

var _ Repo = (*PGRepo)(nil)
