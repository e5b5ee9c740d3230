package entity

import "time"

// User is the aggregate root for the account domain.
// Password holds a bcrypt hash, never the raw credential.
type User struct {
	ID        int64
	Username  string
	Password  string
	Email     string // optional; reminder emails are skipped when empty
	AvatarURL string
	CreatedAt time.Time
	UpdatedAt time.Time
}
