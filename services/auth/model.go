package auth

import "time"

// Credentials is the single admin account, keyed by username. Only the
// bcrypt hash of the password is ever stored.
type Credentials struct {
	Username     string `json:"username"`
	PasswordHash []byte `json:"-" datastore:",noindex"`
}

// Session is a logged-in admin, keyed by the opaque bearer token handed out
// at login.
type Session struct {
	Token     string    `json:"token"`
	Username  string    `json:"username"`
	ExpiresAt time.Time `json:"expires_at"`
}

const sessionDuration = 12 * time.Hour
