// Package entity contains the core business objects of the project.
package entity

import "time"

// Account roles. A user carries one or more roles; admin routes require
// RoleAdmin.
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// User represents an account in the users collection. PasswordHash and the
// reset-token fields never leave the persistence and usecase layers.
type User struct {
	ID           string     `firestore:"-" json:"id"`           // Document ID, assigned by the store.
	Email        string     `firestore:"email" json:"email"`    // Login identifier, unique.
	Name         string     `firestore:"name" json:"name"`      // Display name.
	PasswordHash string     `firestore:"passwordHash" json:"-"` // bcrypt hash of the account password.
	Roles        []string   `firestore:"roles" json:"roles"`    // Granted roles, see constants above.
	ResetToken   string     `firestore:"resetToken" json:"-"`   // Outstanding password-reset token, empty when none.
	ResetExpires *time.Time `firestore:"resetExpires" json:"-"` // Reset token expiry; nil when no token is outstanding.
	// SHA-256 hex of the current refresh token. A new sign-in replaces it and
	// sign-out clears it, so at most one refresh token is live per account.
	RefreshTokenHash string    `firestore:"refreshTokenHash" json:"-"`
	CreatedAt        time.Time `firestore:"createdAt" json:"createdAt"`
	UpdatedAt        time.Time `firestore:"updatedAt" json:"updatedAt"`
}

// HasRole reports whether the user has been granted the given role.
func (u *User) HasRole(role string) bool {
	for _, r := range u.Roles {
		if r == role {
			return true
		}
	}

	return false
}
