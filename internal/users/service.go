package users

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// Service owns user lifecycle and credential checks.
type Service struct {
	Repo Repo
}

// NewService constructs a user Service.
func NewService(repo Repo) *Service {
	return &Service{Repo: repo}
}

// Register creates a local-password account.
func (s *Service) Register(ctx context.Context, email, name, password string) (User, error) {
	email = normalizeEmail(email)
	if email == "" || !strings.Contains(email, "@") {
		return User{}, fmt.Errorf("%w: valid email required", ErrInvalidInput)
	}
	if len(password) < 8 {
		return User{}, fmt.Errorf("%w: password must be at least 8 characters", ErrInvalidInput)
	}
	if strings.TrimSpace(name) == "" {
		name = email
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return User{}, fmt.Errorf("hash password: %w", err)
	}

	now := time.Now().UTC()
	user := User{
		ID:           uuid.NewString(),
		Email:        email,
		Name:         strings.TrimSpace(name),
		PasswordHash: string(hash),
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.Repo.Create(ctx, user); err != nil {
		return User{}, err
	}
	return user, nil
}

// Login checks email and password, returning a generic error on any mismatch.
func (s *Service) Login(ctx context.Context, email, password string) (User, error) {
	user, err := s.Repo.GetByEmail(ctx, email)
	if errors.Is(err, ErrNotFound) {
		// Burn a compare so a missing account costs the same as a wrong password.
		_ = bcrypt.CompareHashAndPassword(dummyHash, []byte(password))
		return User{}, ErrInvalidCredentials
	}
	if err != nil {
		return User{}, err
	}
	if user.PasswordHash == "" {
		return User{}, ErrInvalidCredentials
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return User{}, ErrInvalidCredentials
	}
	return user, nil
}

// GetByID returns the user profile for an authenticated subject.
func (s *Service) GetByID(ctx context.Context, userID string) (User, error) {
	return s.Repo.GetByID(ctx, userID)
}

// UpsertFromOAuth reconciles an external identity into a local user record.
// The stable ID is derived from the provider subject so repeat logins map to
// the same account.
func (s *Service) UpsertFromOAuth(ctx context.Context, providerID, email, name, picture string) (User, error) {
	email = normalizeEmail(email)
	if email == "" {
		return User{}, fmt.Errorf("%w: provider returned no email", ErrInvalidInput)
	}

	now := time.Now().UTC()
	if existing, err := s.Repo.GetByEmail(ctx, email); err == nil {
		existing.Name = name
		existing.PictureURL = picture
		existing.UpdatedAt = now
		if err := s.Repo.Upsert(ctx, existing); err != nil {
			return User{}, err
		}
		return existing, nil
	} else if !errors.Is(err, ErrNotFound) {
		return User{}, err
	}

	user := User{
		ID:         uuid.NewSHA1(uuid.NameSpaceURL, []byte("google:"+providerID)).String(),
		Email:      email,
		Name:       name,
		PictureURL: picture,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := s.Repo.Upsert(ctx, user); err != nil {
		return User{}, err
	}
	return user, nil
}

// dummyHash is a bcrypt hash of a random string, used to equalize login timing.
var dummyHash = []byte("$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy")
