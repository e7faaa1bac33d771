package users

import (
	"context"
	"errors"
	"testing"
)

func TestRegisterAndLogin(t *testing.T) {
	svc := NewService(NewMemoryRepo())
	ctx := context.Background()

	user, err := svc.Register(ctx, "Ada@Example.com", "Ada", "correct horse battery")
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if user.ID == "" {
		t.Fatalf("expected generated user id")
	}
	if user.Email != "ada@example.com" {
		t.Fatalf("expected normalized email, got %q", user.Email)
	}
	if user.PasswordHash == "" || user.PasswordHash == "correct horse battery" {
		t.Fatalf("expected bcrypt hash, got %q", user.PasswordHash)
	}

	got, err := svc.Login(ctx, "ada@example.com", "correct horse battery")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if got.ID != user.ID {
		t.Fatalf("login returned %q, want %q", got.ID, user.ID)
	}
}

func TestRegisterRejectsBadInput(t *testing.T) {
	svc := NewService(NewMemoryRepo())
	ctx := context.Background()

	if _, err := svc.Register(ctx, "not-an-email", "X", "longenough"); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("bad email: expected ErrInvalidInput, got %v", err)
	}
	if _, err := svc.Register(ctx, "a@b.com", "X", "short"); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("short password: expected ErrInvalidInput, got %v", err)
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc := NewService(NewMemoryRepo())
	ctx := context.Background()

	if _, err := svc.Register(ctx, "ada@example.com", "Ada", "longenough"); err != nil {
		t.Fatalf("first register: %v", err)
	}
	if _, err := svc.Register(ctx, "ADA@example.com", "Other", "longenough"); !errors.Is(err, ErrEmailTaken) {
		t.Fatalf("expected ErrEmailTaken, got %v", err)
	}
}

func TestLoginGenericFailures(t *testing.T) {
	svc := NewService(NewMemoryRepo())
	ctx := context.Background()

	if _, err := svc.Register(ctx, "ada@example.com", "Ada", "longenough"); err != nil {
		t.Fatalf("register: %v", err)
	}

	if _, err := svc.Login(ctx, "ada@example.com", "wrong password"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("wrong password: expected ErrInvalidCredentials, got %v", err)
	}
	if _, err := svc.Login(ctx, "ghost@example.com", "longenough"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("unknown email: expected ErrInvalidCredentials, got %v", err)
	}
}

func TestUpsertFromOAuthIsStable(t *testing.T) {
	svc := NewService(NewMemoryRepo())
	ctx := context.Background()

	first, err := svc.UpsertFromOAuth(ctx, "google-sub-1", "ada@example.com", "Ada", "p1.png")
	if err != nil {
		t.Fatalf("first upsert: %v", err)
	}
	second, err := svc.UpsertFromOAuth(ctx, "google-sub-1", "ada@example.com", "Ada L.", "p2.png")
	if err != nil {
		t.Fatalf("second upsert: %v", err)
	}
	if first.ID != second.ID {
		t.Fatalf("repeat login changed id: %q vs %q", first.ID, second.ID)
	}
	if second.Name != "Ada L." || second.PictureURL != "p2.png" {
		t.Fatalf("profile not refreshed: %+v", second)
	}
}

func TestOAuthLinksExistingPasswordAccount(t *testing.T) {
	svc := NewService(NewMemoryRepo())
	ctx := context.Background()

	registered, err := svc.Register(ctx, "ada@example.com", "Ada", "longenough")
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	linked, err := svc.UpsertFromOAuth(ctx, "google-sub-1", "ada@example.com", "Ada", "p.png")
	if err != nil {
		t.Fatalf("oauth upsert: %v", err)
	}
	if linked.ID != registered.ID {
		t.Fatalf("oauth login created separate account: %q vs %q", linked.ID, registered.ID)
	}

	// Password login keeps working after the link.
	if _, err := svc.Login(ctx, "ada@example.com", "longenough"); err != nil {
		t.Fatalf("login after link: %v", err)
	}
}
