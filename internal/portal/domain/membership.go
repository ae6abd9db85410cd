package domain

import "time"

// Membership is the (user, organization, role) authorization grant. The
// store enforces at most one membership per (user, organization) pair with a
// unique index, so concurrent duplicate grants lose at commit time rather
// than racing an application-level pre-check.
type Membership struct {
	ID     string
	UserID string
	OrgID  string
	Role   Role

	CreatedAt time.Time
	UpdatedAt time.Time
}
