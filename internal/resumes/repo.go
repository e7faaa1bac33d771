package resumes

import "context"

// Repo defines persistence for resume records. All lookups are scoped by the
// owning user; a record belonging to another user reads as not found.
type Repo interface {
	Create(ctx context.Context, rec Record) error
	Get(ctx context.Context, userID, resumeID string) (Record, error)
	ListByUser(ctx context.Context, userID string) ([]Record, error)
	Update(ctx context.Context, rec Record) error
	Delete(ctx context.Context, userID, resumeID string) error
}
