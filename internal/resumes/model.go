package resumes

import (
	"time"

	"resume-builder/resume/model"
)

// Record is a stored resume scoped to its owning user.
type Record struct {
	ID        string        `json:"id"`
	UserID    string        `json:"userId"`
	Title     string        `json:"title"`
	Content   model.Content `json:"content"`
	CreatedAt time.Time     `json:"createdAt"`
	UpdatedAt time.Time     `json:"updatedAt"`
}

// Resume converts the record into the domain aggregate used by the section
// transforms and renderers.
func (rec Record) Resume() model.Resume {
	return model.Resume{ID: rec.ID, Title: rec.Title, Content: rec.Content}
}

// Clone deep-copies the record so callers can mutate content freely.
func (rec Record) Clone() Record {
	out := rec
	out.Content = rec.Content.Clone()
	return out
}
