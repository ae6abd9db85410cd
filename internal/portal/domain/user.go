package domain

import (
	"strings"
	"time"
)

// ConfirmationTokenTTL is the validity window for email confirmation and
// password reset tokens.
const ConfirmationTokenTTL = 24 * time.Hour

type User struct {
	ID           string
	Email        string // normalized: lowercased, trimmed
	DisplayName  string
	PasswordHash string // argon2id encoded

	// Email confirmation is a one-way transition; ConfirmedAt stays nil
	// until the confirmation token is redeemed.
	ConfirmedAt        *time.Time
	ConfirmTokenHash   string
	ConfirmTokenSentAt *time.Time
	ResetTokenHash     string
	ResetTokenSentAt   *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Confirmed reports whether the user has completed email confirmation.
func (u User) Confirmed() bool { return u.ConfirmedAt != nil }

// NormalizeEmail lowercases and trims an email address. All lookups and
// uniqueness checks operate on the normalized form.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
