// Package health reports process liveness and dependency status.
package health

import (
	"context"
	"database/sql"
	"time"
)

// Service answers the health probe.
type Service struct {
	DB *sql.DB
}

// NewService constructs a health service. DB may be nil when running on
// in-memory repositories.
func NewService(db *sql.DB) *Service {
	return &Service{DB: db}
}

// Status returns the probe payload. The database check is best-effort with a
// short timeout so a slow pool cannot stall the probe.
func (s *Service) Status(ctx context.Context) map[string]any {
	out := map[string]any{"ok": true}
	if s.DB == nil {
		out["database"] = "memory"
		return out
	}

	pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	if err := s.DB.PingContext(pingCtx); err != nil {
		out["ok"] = false
		out["database"] = "unreachable"
		return out
	}
	out["database"] = "ok"
	return out
}
