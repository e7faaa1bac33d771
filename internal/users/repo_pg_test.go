package users

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
)

func testUser() User {
	now := time.Date(2026, time.February, 1, 12, 0, 0, 0, time.UTC)
	return User{
		ID:           "user-1",
		Email:        "ada@example.com",
		Name:         "Ada",
		PasswordHash: "$2a$10$hash",
		PictureURL:   "https://example.com/p.png",
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

func TestPGRepoCreate(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	repo := &PGRepo{DB: db}
	user := testUser()

	mock.ExpectExec("INSERT INTO users").
		WithArgs(user.ID, user.Email, user.Name, user.PasswordHash,
			user.PictureURL, user.CreatedAt, user.UpdatedAt).
		WillReturnResult(sqlmock.NewResult(1, 1))

	if err := repo.Create(context.Background(), user); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}

func TestPGRepoCreateNormalizesEmail(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	repo := &PGRepo{DB: db}
	user := testUser()
	user.Email = "  Ada@Example.COM "

	mock.ExpectExec("INSERT INTO users").
		WithArgs(user.ID, "ada@example.com", user.Name, user.PasswordHash,
			user.PictureURL, user.CreatedAt, user.UpdatedAt).
		WillReturnResult(sqlmock.NewResult(1, 1))

	if err := repo.Create(context.Background(), user); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}

func TestPGRepoCreateDuplicateEmail(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	repo := &PGRepo{DB: db}
	user := testUser()

	mock.ExpectExec("INSERT INTO users").
		WillReturnError(errors.New(`ERROR: duplicate key value violates unique constraint "users_email_key" (SQLSTATE 23505)`))

	if err := repo.Create(context.Background(), user); !errors.Is(err, ErrEmailTaken) {
		t.Fatalf("expected ErrEmailTaken, got %v", err)
	}
}

func TestPGRepoGetByEmail(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	repo := &PGRepo{DB: db}
	user := testUser()

	rows := sqlmock.NewRows([]string{"id", "email", "name", "password_hash", "picture_url", "created_at", "updated_at"}).
		AddRow(user.ID, user.Email, user.Name, user.PasswordHash, user.PictureURL, user.CreatedAt, user.UpdatedAt)
	mock.ExpectQuery("SELECT .+ FROM users WHERE email").
		WithArgs("ada@example.com").
		WillReturnRows(rows)

	got, err := repo.GetByEmail(context.Background(), "Ada@Example.com")
	if err != nil {
		t.Fatalf("GetByEmail: %v", err)
	}
	if got.ID != user.ID || got.PasswordHash != user.PasswordHash {
		t.Fatalf("unexpected user %+v", got)
	}
}

func TestPGRepoGetByIDNotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	repo := &PGRepo{DB: db}

	mock.ExpectQuery("SELECT .+ FROM users WHERE id").
		WithArgs("ghost").
		WillReturnRows(sqlmock.NewRows([]string{"id", "email", "name", "password_hash", "picture_url", "created_at", "updated_at"}))

	if _, err := repo.GetByID(context.Background(), "ghost"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
