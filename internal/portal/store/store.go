package store

import (
	"context"
	"errors"
	"time"

	"github.com/firmdesk/firmdesk/internal/portal/domain"
)

var (
	ErrNotFound      = errors.New("store: not found")
	ErrAlreadyExists = errors.New("store: already exists")
)

// Store is the root data access interface. Concrete drivers (sqlite today)
// implement this. Sub-repositories keep concerns tidy and make it obvious
// which operations are available inside a transaction.
type Store interface {
	Users() Users
	Orgs() Orgs
	Memberships() Memberships
	Invitations() Invitations
	Documents() Documents
	Threads() Threads

	ApplyMigrations() error

	// Tx starts a read/write transaction and returns a Tx-scoped Store.
	// The caller MUST call Commit() or Rollback() on the returned Tx.
	Tx(ctx context.Context) (Tx, error)

	// WithTx executes fn within a transaction; rolled back when fn errors,
	// committed otherwise. Prefer this over Tx directly.
	WithTx(ctx context.Context, fn func(tx Tx) error) error

	// Close releases any underlying resources.
	Close() error

	// Ping verifies the database connection is still alive.
	Ping(ctx context.Context) error
}

// Tx is a transactional store. It embeds the same repos but adds
// Commit/Rollback.
type Tx interface {
	Store
	Commit() error
	Rollback() error
}

type Users interface {
	// CreateUser inserts a new user; ErrAlreadyExists on a taken email.
	CreateUser(ctx context.Context, u domain.User) error

	GetUserByID(ctx context.Context, id string) (domain.User, error)

	// GetUserByEmail looks up by normalized email.
	GetUserByEmail(ctx context.Context, email string) (domain.User, error)

	// GetUserByConfirmTokenHash finds the holder of a confirmation token.
	GetUserByConfirmTokenHash(ctx context.Context, hash string) (domain.User, error)

	// GetUserByResetTokenHash finds the holder of a password reset token.
	GetUserByResetTokenHash(ctx context.Context, hash string) (domain.User, error)

	// ConfirmUser sets confirmed_at and clears the confirmation token.
	ConfirmUser(ctx context.Context, userID string, at time.Time) error

	// SetResetToken stores a reset token fingerprint and its sent time.
	SetResetToken(ctx context.Context, userID, hash string, sentAt time.Time) error

	// UpdatePasswordHash sets the password hash and clears any reset token.
	UpdatePasswordHash(ctx context.Context, userID, newHash string) error

	// ClearStaleTokens wipes confirmation/reset fingerprints sent before
	// cutoff (housekeeping).
	ClearStaleTokens(ctx context.Context, cutoff time.Time) error
}

type Orgs interface {
	CreateOrg(ctx context.Context, o domain.Org) error

	GetOrgByID(ctx context.Context, id string) (domain.Org, error)

	// ListClients returns the child organizations of a firm, newest first.
	ListClients(ctx context.Context, firmID string) ([]domain.Org, error)
}

type Memberships interface {
	// CreateMembership inserts a grant; ErrAlreadyExists when the
	// (user, org) pair already holds one. Uniqueness is enforced by the
	// database so concurrent duplicate grants cannot both commit.
	CreateMembership(ctx context.Context, m domain.Membership) error

	GetMembership(ctx context.Context, userID, orgID string) (domain.Membership, error)

	// DeleteMembership removes a grant; no error when absent.
	DeleteMembership(ctx context.Context, userID, orgID string) error

	// ListOrgMembers returns the users holding the given role in the org.
	ListOrgMembers(ctx context.Context, orgID string, role domain.Role) ([]domain.User, error)

	// ListUserMemberships returns all grants held by a user.
	ListUserMemberships(ctx context.Context, userID string) ([]domain.Membership, error)
}

type Invitations interface {
	CreateInvitation(ctx context.Context, inv domain.Invitation) error

	GetInvitationByID(ctx context.Context, id string) (domain.Invitation, error)

	GetInvitationByTokenHash(ctx context.Context, hash string) (domain.Invitation, error)

	// MarkInvitationAccepted sets accepted_at/accepted_by, guarded on the
	// row still being unaccepted. Returns ErrNotFound when another accept
	// already won, making it safe to race (transaction-friendly).
	MarkInvitationAccepted(ctx context.Context, invitationID, userID string, at time.Time) error

	// ListPendingByOrg returns unaccepted, unexpired invitations for the
	// org, newest first.
	ListPendingByOrg(ctx context.Context, orgID string, now time.Time) ([]domain.Invitation, error)

	// ListExpiredByOrg returns unaccepted invitations whose expiry has
	// passed, newest first.
	ListExpiredByOrg(ctx context.Context, orgID string, now time.Time) ([]domain.Invitation, error)

	DeleteInvitation(ctx context.Context, invitationID string) error

	// DeleteExpiredInvitations drops unaccepted invitations that expired
	// before cutoff (housekeeping; lazily-evaluated expiry never depends
	// on it).
	DeleteExpiredInvitations(ctx context.Context, cutoff time.Time) error
}

type Documents interface {
	CreateDocument(ctx context.Context, d domain.Document) error

	GetDocumentByID(ctx context.Context, id string) (domain.Document, error)

	// MarkDocumentViewed performs the uploaded -> viewed transition,
	// guarded on current status. Returns ErrNotFound when the row is
	// missing or already viewed; callers decide whether that is an error.
	MarkDocumentViewed(ctx context.Context, documentID, reviewerID string, at time.Time) error

	UpdateDocumentCategory(ctx context.Context, documentID string, category domain.DocumentCategory) error

	// ListDocumentsByOrg returns the org's documents, newest first.
	ListDocumentsByOrg(ctx context.Context, orgID string) ([]domain.Document, error)
}

type Threads interface {
	CreateThread(ctx context.Context, t domain.Thread) error

	GetThreadByID(ctx context.Context, id string) (domain.Thread, error)

	// ListThreadsByOrg returns the org's threads, most recent activity
	// first.
	ListThreadsByOrg(ctx context.Context, orgID string) ([]domain.Thread, error)

	// ResolveThread performs open -> resolved, guarded on current status.
	// Returns ErrNotFound when missing or already resolved.
	ResolveThread(ctx context.Context, threadID, closerID string, at time.Time) error

	// ReopenThread performs resolved -> open, clearing closer/close time.
	// Returns ErrNotFound when missing or already open.
	ReopenThread(ctx context.Context, threadID string) error

	CreateMessage(ctx context.Context, m domain.Message) error

	// TouchThreadActivity bumps last_activity_at and, when the thread is
	// resolved, flips it back to open with closer fields cleared
	// (transaction-friendly; pair with CreateMessage).
	TouchThreadActivity(ctx context.Context, threadID string, at time.Time) error

	// ListMessages returns a thread's messages oldest first.
	ListMessages(ctx context.Context, threadID string) ([]domain.Message, error)
}
