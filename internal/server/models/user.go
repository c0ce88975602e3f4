// Package models contains the persistent entities of accountdesk.
package models

import "time"

// User is the sole persistent entity: one registered account.
//
// PasswordResetToken and PasswordResetTokenExpires are either both unset or
// both set; a pending reset is the only state in which they carry values.
// The JSON tags define the on-disk layout of the file-backed store, the db
// tags mirror the users table columns.
type User struct {
	ID                        string     `json:"id" db:"id"`
	Email                     string     `json:"email" db:"email"`
	DisplayName               string     `json:"displayName,omitempty" db:"display_name"`
	PasswordHash              string     `json:"passwordHash" db:"password_hash"`
	PasswordResetToken        string     `json:"passwordResetToken,omitempty" db:"password_reset_token"`
	PasswordResetTokenExpires *time.Time `json:"passwordResetTokenExpires,omitempty" db:"password_reset_token_expires"`
	CreatedAt                 time.Time  `json:"createdAt" db:"created_at"`
}

// HasPendingReset reports whether a password reset is currently pending.
func (u *User) HasPendingReset() bool {
	return u.PasswordResetToken != "" && u.PasswordResetTokenExpires != nil
}

// ClearResetToken removes any pending reset state from the record.
func (u *User) ClearResetToken() {
	u.PasswordResetToken = ""
	u.PasswordResetTokenExpires = nil
}
