package domain

import "time"

// Post is a user-owned record managed through the posts API.
type Post struct {
	ID        string
	UserID    string
	Name      string
	CreatedAt time.Time
	UpdatedAt time.Time
}
