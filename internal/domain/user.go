// Package domain holds the entities persisted by Vendora and the repository
// contracts the storage backends implement.
package domain

import "time"

// User is a registered business account holder.
type User struct {
	ID                     string
	Email                  string
	Name                   string
	BusinessName           string
	PhoneNumber            string
	PasswordHash           string
	IsVerified             bool
	DocumentVerificationID string
	ResetPasswordCode      string
	ResetPasswordExpires   *time.Time
	CreatedAt              time.Time
	UpdatedAt              time.Time
}

// ResetTokenValid reports whether the stored reset token is still usable at
// now.
func (u User) ResetTokenValid(now time.Time) bool {
	return u.ResetPasswordExpires != nil && !u.ResetPasswordExpires.Before(now)
}
