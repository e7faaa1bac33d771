package users

import "time"

// User is an account that owns resumes. PasswordHash is empty for accounts
// created through OAuth.
type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	Name         string    `json:"name"`
	PasswordHash string    `json:"-"`
	PictureURL   string    `json:"pictureUrl,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}
