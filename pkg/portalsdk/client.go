package portalsdk

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"time"
)

// Client drives the portal API. Authenticated calls need a session token set
// via WithToken; the zero-token client can only reach the public endpoints.
type Client struct {
	BaseURL    string
	HTTPClient *http.Client

	token string
}

func NewClient(baseURL string) *Client {
	return &Client{
		BaseURL: strings.TrimSuffix(baseURL, "/"),
		HTTPClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// WithToken returns a copy of the client that authenticates with token.
func (c *Client) WithToken(token string) *Client {
	clone := *c
	clone.token = token
	return &clone
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var payload io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("portalsdk: marshal request: %w", err)
		}
		payload = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, payload)
	if err != nil {
		return fmt.Errorf("portalsdk: build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return fmt.Errorf("portalsdk: %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return decodeError(resp)
	}
	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("portalsdk: decode response: %w", err)
	}
	return nil
}

func decodeError(resp *http.Response) error {
	apiErr := &APIError{StatusCode: resp.StatusCode, Code: ErrorCodeServerError}
	var body ErrorResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err == nil && body.Error != "" {
		apiErr.Code = body.Error
		apiErr.Message = body.ErrorDescription
	}
	return apiErr
}

// Identity

func (c *Client) Register(ctx context.Context, req RegisterRequest) (RegisterResponse, error) {
	var out RegisterResponse
	err := c.do(ctx, http.MethodPost, "/v1/users/register", req, &out)
	return out, err
}

func (c *Client) ConfirmEmail(ctx context.Context, token string) (User, error) {
	var out User
	err := c.do(ctx, http.MethodPost, "/v1/users/confirm", ConfirmEmailRequest{Token: token}, &out)
	return out, err
}

func (c *Client) Login(ctx context.Context, email, password string) (LoginResponse, error) {
	var out LoginResponse
	err := c.do(ctx, http.MethodPost, "/v1/users/login", LoginRequest{Email: email, Password: password}, &out)
	return out, err
}

func (c *Client) RequestPasswordReset(ctx context.Context, email string) (PasswordResetResponse, error) {
	var out PasswordResetResponse
	err := c.do(ctx, http.MethodPost, "/v1/users/password-reset/request", PasswordResetRequest{Email: email}, &out)
	return out, err
}

func (c *Client) ResetPassword(ctx context.Context, token, newPassword string) error {
	return c.do(ctx, http.MethodPost, "/v1/users/password-reset/confirm",
		PasswordResetConfirmRequest{Token: token, NewPassword: newPassword}, nil)
}

func (c *Client) Me(ctx context.Context) (User, error) {
	var out User
	err := c.do(ctx, http.MethodGet, "/v1/users/me", nil, &out)
	return out, err
}

// Organizations

func (c *Client) CreateFirm(ctx context.Context, name string) (Org, error) {
	var out Org
	err := c.do(ctx, http.MethodPost, "/v1/orgs/firms", CreateFirmRequest{Name: name}, &out)
	return out, err
}

func (c *Client) CreateClientOrg(ctx context.Context, firmID, name string) (Org, error) {
	var out Org
	err := c.do(ctx, http.MethodPost, "/v1/orgs/"+firmID+"/clients", CreateClientRequest{Name: name}, &out)
	return out, err
}

func (c *Client) GetOrg(ctx context.Context, orgID string) (Org, error) {
	var out Org
	err := c.do(ctx, http.MethodGet, "/v1/orgs/"+orgID, nil, &out)
	return out, err
}

func (c *Client) ListClientOrgs(ctx context.Context, firmID string) ([]Org, error) {
	var out []Org
	err := c.do(ctx, http.MethodGet, "/v1/orgs/"+firmID+"/clients", nil, &out)
	return out, err
}

func (c *Client) ListMembers(ctx context.Context, orgID string) (MembersResponse, error) {
	var out MembersResponse
	err := c.do(ctx, http.MethodGet, "/v1/orgs/"+orgID+"/members", nil, &out)
	return out, err
}

func (c *Client) GrantMembership(ctx context.Context, orgID, userID, role string) (Membership, error) {
	var out Membership
	err := c.do(ctx, http.MethodPost, "/v1/orgs/"+orgID+"/members",
		GrantMembershipRequest{UserID: userID, Role: role}, &out)
	return out, err
}

func (c *Client) RevokeMembership(ctx context.Context, orgID, userID string) error {
	return c.do(ctx, http.MethodDelete, "/v1/orgs/"+orgID+"/members/"+userID, nil, nil)
}

// Invitations

func (c *Client) IssueInvitation(ctx context.Context, orgID, email, role string) (IssueInvitationResponse, error) {
	var out IssueInvitationResponse
	err := c.do(ctx, http.MethodPost, "/v1/orgs/"+orgID+"/invitations",
		IssueInvitationRequest{Email: email, Role: role}, &out)
	return out, err
}

func (c *Client) ListInvitations(ctx context.Context, orgID, status string) ([]Invitation, error) {
	var out []Invitation
	path := "/v1/orgs/" + orgID + "/invitations"
	if status != "" {
		path += "?status=" + status
	}
	err := c.do(ctx, http.MethodGet, path, nil, &out)
	return out, err
}

func (c *Client) LookupInvitation(ctx context.Context, token string) (Invitation, error) {
	var out Invitation
	err := c.do(ctx, http.MethodGet, "/v1/invitations/lookup?token="+token, nil, &out)
	return out, err
}

func (c *Client) AcceptInvitation(ctx context.Context, token string) (Membership, error) {
	var out Membership
	err := c.do(ctx, http.MethodPost, "/v1/invitations/accept", AcceptInvitationRequest{Token: token}, &out)
	return out, err
}

func (c *Client) CancelInvitation(ctx context.Context, invitationID string) error {
	return c.do(ctx, http.MethodDelete, "/v1/invitations/"+invitationID, nil, nil)
}

// Documents

// UploadDocument sends the file as multipart form data under the "file"
// field; the part's filename and content type become the stored metadata.
func (c *Client) UploadDocument(ctx context.Context, orgID, fileName, contentType string, content io.Reader) (Document, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	header := make(map[string][]string)
	header["Content-Disposition"] = []string{fmt.Sprintf(`form-data; name="file"; filename=%q`, fileName)}
	header["Content-Type"] = []string{contentType}
	part, err := mw.CreatePart(header)
	if err != nil {
		return Document{}, fmt.Errorf("portalsdk: multipart: %w", err)
	}
	if _, err := io.Copy(part, content); err != nil {
		return Document{}, fmt.Errorf("portalsdk: multipart copy: %w", err)
	}
	if err := mw.Close(); err != nil {
		return Document{}, fmt.Errorf("portalsdk: multipart close: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+"/v1/orgs/"+orgID+"/documents", &buf)
	if err != nil {
		return Document{}, fmt.Errorf("portalsdk: build request: %w", err)
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return Document{}, fmt.Errorf("portalsdk: upload: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return Document{}, decodeError(resp)
	}
	var out Document
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return Document{}, fmt.Errorf("portalsdk: decode response: %w", err)
	}
	return out, nil
}

func (c *Client) ListDocuments(ctx context.Context, orgID string) ([]Document, error) {
	var out []Document
	err := c.do(ctx, http.MethodGet, "/v1/orgs/"+orgID+"/documents", nil, &out)
	return out, err
}

func (c *Client) GetDocument(ctx context.Context, documentID string) (Document, error) {
	var out Document
	err := c.do(ctx, http.MethodGet, "/v1/documents/"+documentID, nil, &out)
	return out, err
}

// DownloadDocument streams the stored content. The caller closes the reader.
func (c *Client) DownloadDocument(ctx context.Context, documentID string) (io.ReadCloser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.BaseURL+"/v1/documents/"+documentID+"/content", nil)
	if err != nil {
		return nil, fmt.Errorf("portalsdk: build request: %w", err)
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("portalsdk: download: %w", err)
	}
	if resp.StatusCode >= 400 {
		defer resp.Body.Close()
		return nil, decodeError(resp)
	}
	return resp.Body, nil
}

func (c *Client) MarkDocumentViewed(ctx context.Context, documentID string) error {
	return c.do(ctx, http.MethodPost, "/v1/documents/"+documentID+"/viewed", nil, nil)
}

func (c *Client) CategorizeDocument(ctx context.Context, documentID, category string) error {
	return c.do(ctx, http.MethodPut, "/v1/documents/"+documentID+"/category",
		CategorizeRequest{Category: category}, nil)
}

// Threads

func (c *Client) CreateThread(ctx context.Context, orgID, title string) (Thread, error) {
	var out Thread
	err := c.do(ctx, http.MethodPost, "/v1/orgs/"+orgID+"/threads", CreateThreadRequest{Title: title}, &out)
	return out, err
}

func (c *Client) ListThreads(ctx context.Context, orgID string) ([]Thread, error) {
	var out []Thread
	err := c.do(ctx, http.MethodGet, "/v1/orgs/"+orgID+"/threads", nil, &out)
	return out, err
}

func (c *Client) GetThread(ctx context.Context, threadID string) (Thread, error) {
	var out Thread
	err := c.do(ctx, http.MethodGet, "/v1/threads/"+threadID, nil, &out)
	return out, err
}

func (c *Client) PostMessage(ctx context.Context, threadID, body string) (Message, error) {
	var out Message
	err := c.do(ctx, http.MethodPost, "/v1/threads/"+threadID+"/messages", PostMessageRequest{Body: body}, &out)
	return out, err
}

func (c *Client) ListMessages(ctx context.Context, threadID string) ([]Message, error) {
	var out []Message
	err := c.do(ctx, http.MethodGet, "/v1/threads/"+threadID+"/messages", nil, &out)
	return out, err
}

func (c *Client) ResolveThread(ctx context.Context, threadID string) error {
	return c.do(ctx, http.MethodPost, "/v1/threads/"+threadID+"/resolve", nil, nil)
}

func (c *Client) ReopenThread(ctx context.Context, threadID string) error {
	return c.do(ctx, http.MethodPost, "/v1/threads/"+threadID+"/reopen", nil, nil)
}

// Health

func (c *Client) Livez(ctx context.Context) (HealthResponse, error) {
	var out HealthResponse
	err := c.do(ctx, http.MethodGet, "/livez", nil, &out)
	return out, err
}

func (c *Client) Readyz(ctx context.Context) (HealthResponse, error) {
	var out HealthResponse
	err := c.do(ctx, http.MethodGet, "/readyz", nil, &out)
	return out, err
}
