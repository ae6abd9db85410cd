package domain

import "time"

// ThreadStatus is the open/resolved machine. New activity on a resolved
// thread flips it back to open.
type ThreadStatus string

const (
	ThreadOpen     ThreadStatus = "open"
	ThreadResolved ThreadStatus = "resolved"
)

type Thread struct {
	ID     string
	OrgID  string
	Title  string
	Status ThreadStatus

	// Set while resolved, cleared on reopen (explicit or activity-driven).
	ClosedBy string
	ClosedAt *time.Time

	// LastActivityAt equals the creation time of the most recent message,
	// or the thread's own creation time when no messages exist yet.
	LastActivityAt time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

type Message struct {
	ID       string
	ThreadID string
	AuthorID string
	Body     string

	CreatedAt time.Time
}
