package portalsdk

import "time"

// User is the public view of a user record. Credential and token material
// never crosses the wire.
type User struct {
	ID          string     `json:"id"`
	Email       string     `json:"email"`
	DisplayName string     `json:"display_name"`
	Confirmed   bool       `json:"confirmed"`
	CreatedAt   time.Time  `json:"created_at"`
	ConfirmedAt *time.Time `json:"confirmed_at,omitempty"`
}

type RegisterRequest struct {
	Email       string `json:"email"`
	DisplayName string `json:"display_name,omitempty"`
	Password    string `json:"password"`
}

// RegisterResponse carries the confirmation token. The portal's caller owns
// delivery; the token is never persisted in the clear.
type RegisterResponse struct {
	User              User   `json:"user"`
	ConfirmationToken string `json:"confirmation_token"`
}

type ConfirmEmailRequest struct {
	Token string `json:"token"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginResponse struct {
	SessionToken string    `json:"session_token"`
	ExpiresAt    time.Time `json:"expires_at"`
	User         User      `json:"user"`
}

type PasswordResetRequest struct {
	Email string `json:"email"`
}

type PasswordResetResponse struct {
	ResetToken string `json:"reset_token"`
}

type PasswordResetConfirmRequest struct {
	Token       string `json:"token"`
	NewPassword string `json:"new_password"`
}

// Org is a firm or one of its clients.
type Org struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Kind      string    `json:"kind"`
	ParentID  string    `json:"parent_id,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

type CreateFirmRequest struct {
	Name string `json:"name"`
}

type CreateClientRequest struct {
	Name string `json:"name"`
}

type Membership struct {
	ID     string `json:"id"`
	UserID string `json:"user_id"`
	OrgID  string `json:"org_id"`
	Role   string `json:"role"`
}

type GrantMembershipRequest struct {
	UserID string `json:"user_id"`
	Role   string `json:"role"`
}

type MembersResponse struct {
	Admins []User `json:"admins,omitempty"`
	Staff  []User `json:"staff,omitempty"`
}

type Invitation struct {
	ID         string     `json:"id"`
	Email      string     `json:"email"`
	OrgID      string     `json:"org_id"`
	Role       string     `json:"role"`
	InvitedBy  string     `json:"invited_by"`
	ExpiresAt  time.Time  `json:"expires_at"`
	AcceptedAt *time.Time `json:"accepted_at,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
}

type IssueInvitationRequest struct {
	Email string `json:"email"`
	Role  string `json:"role"`
}

// IssueInvitationResponse carries the raw token exactly once.
type IssueInvitationResponse struct {
	Invitation Invitation `json:"invitation"`
	Token      string     `json:"token"`
}

type AcceptInvitationRequest struct {
	Token string `json:"token"`
}

type Document struct {
	ID          string     `json:"id"`
	OrgID       string     `json:"org_id"`
	UploadedBy  string     `json:"uploaded_by"`
	Status      string     `json:"status"`
	Category    string     `json:"category,omitempty"`
	ViewedBy    string     `json:"viewed_by,omitempty"`
	ViewedAt    *time.Time `json:"viewed_at,omitempty"`
	FileName    string     `json:"file_name"`
	ContentType string     `json:"content_type"`
	FileSize    int64      `json:"file_size"`
	CreatedAt   time.Time  `json:"created_at"`
}

type CategorizeRequest struct {
	Category string `json:"category"`
}

type Thread struct {
	ID             string     `json:"id"`
	OrgID          string     `json:"org_id"`
	Title          string     `json:"title"`
	Status         string     `json:"status"`
	ClosedBy       string     `json:"closed_by,omitempty"`
	ClosedAt       *time.Time `json:"closed_at,omitempty"`
	LastActivityAt time.Time  `json:"last_activity_at"`
	CreatedAt      time.Time  `json:"created_at"`
}

type CreateThreadRequest struct {
	Title string `json:"title"`
}

type Message struct {
	ID        string    `json:"id"`
	ThreadID  string    `json:"thread_id"`
	AuthorID  string    `json:"author_id"`
	Body      string    `json:"body"`
	CreatedAt time.Time `json:"created_at"`
}

type PostMessageRequest struct {
	Body string `json:"body"`
}

// HealthResponse is returned by /livez and /readyz.
type HealthResponse struct {
	Status  string        `json:"status"`
	Version string        `json:"version,omitempty"`
	Uptime  string        `json:"uptime,omitempty"`
	Checks  *HealthChecks `json:"checks,omitempty"`
}

// HealthChecks itemizes dependency status on /readyz.
type HealthChecks struct {
	Database string `json:"database"`
	Storage  string `json:"storage"`
}
