package resumes

import (
	"context"
	"sort"
	"sync"
)

// MemoryRepo is an in-memory implementation of Repo.
type MemoryRepo struct {
	mu   sync.RWMutex
	byID map[string]Record
}

// NewMemoryRepo constructs a MemoryRepo.
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{byID: make(map[string]Record)}
}

// Create stores a new record.
func (r *MemoryRepo) Create(ctx context.Context, rec Record) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.byID[rec.ID] = rec.Clone()
	return nil
}

// Get returns a record owned by the user.
func (r *MemoryRepo) Get(ctx context.Context, userID, resumeID string) (Record, error) {
	if err := ctx.Err(); err != nil {
		return Record{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	rec, ok := r.byID[resumeID]
	if !ok || rec.UserID != userID {
		return Record{}, ErrNotFound
	}
	return rec.Clone(), nil
}

// ListByUser returns the user's records, most recently updated first.
func (r *MemoryRepo) ListByUser(ctx context.Context, userID string) ([]Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Record, 0)
	for _, rec := range r.byID {
		if rec.UserID == userID {
			out = append(out, rec.Clone())
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].UpdatedAt.Equal(out[j].UpdatedAt) {
			return out[i].UpdatedAt.After(out[j].UpdatedAt)
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

// Update replaces an existing record owned by the same user.
func (r *MemoryRepo) Update(ctx context.Context, rec Record) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	existing, ok := r.byID[rec.ID]
	if !ok || existing.UserID != rec.UserID {
		return ErrNotFound
	}
	r.byID[rec.ID] = rec.Clone()
	return nil
}

// Delete removes a record owned by the user.
func (r *MemoryRepo) Delete(ctx context.Context, userID, resumeID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	rec, ok := r.byID[resumeID]
	if !ok || rec.UserID != userID {
		return ErrNotFound
	}
	delete(r.byID, resumeID)
	return nil
}

var _ Repo = (*MemoryRepo)(nil)
