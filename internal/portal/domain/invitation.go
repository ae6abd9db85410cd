package domain

import "time"

// InvitationTTL is fixed at issue time; expiry is never extended.
const InvitationTTL = 7 * 24 * time.Hour

// Invitation is a time-boxed offer of membership. The raw token is returned
// to the issuer exactly once; only its SHA-256 fingerprint is stored.
// Expiry is a derived read (now vs ExpiresAt), not a stored state.
type Invitation struct {
	ID        string
	Email     string // normalized invited address
	OrgID     string
	InvitedBy string
	Role      Role
	TokenHash string
	ExpiresAt time.Time

	// AcceptedAt set means the invitation is terminally accepted.
	// AcceptedBy records whichever authenticated account completed the
	// flow, which may legitimately differ from Email (bearer semantics).
	AcceptedAt *time.Time
	AcceptedBy string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Accepted reports whether the invitation has been redeemed.
func (i Invitation) Accepted() bool { return i.AcceptedAt != nil }

// Pending reports whether the invitation can still be accepted at now.
func (i Invitation) Pending(now time.Time) bool {
	return i.AcceptedAt == nil && now.Before(i.ExpiresAt)
}

// Expired reports whether the invitation lapsed unaccepted at now.
func (i Invitation) Expired(now time.Time) bool {
	return i.AcceptedAt == nil && !now.Before(i.ExpiresAt)
}
