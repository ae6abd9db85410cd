package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/firmdesk/firmdesk/internal/portal/domain"
)

type invitationsRepo struct {
	db DBTX
}

const invitationColumns = `id, email, org_id, invited_by, role, token_hash,
	expires_at, accepted_at, accepted_by, created_at, updated_at`

func (r *invitationsRepo) CreateInvitation(ctx context.Context, inv domain.Invitation) error {
	now := time.Now().UTC()
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO invitations (
			id, email, org_id, invited_by, role, token_hash,
			expires_at, created_at, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		inv.ID, inv.Email, inv.OrgID, inv.InvitedBy, string(inv.Role),
		inv.TokenHash, inv.ExpiresAt.UTC(), now, now,
	)
	return mapConstraint(err)
}

func (r *invitationsRepo) GetInvitationByID(ctx context.Context, id string) (domain.Invitation, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+invitationColumns+` FROM invitations WHERE id = ?`, id)
	return scanInvitation(row)
}

func (r *invitationsRepo) GetInvitationByTokenHash(ctx context.Context, hash string) (domain.Invitation, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+invitationColumns+` FROM invitations WHERE token_hash = ?`, hash)
	return scanInvitation(row)
}

// MarkInvitationAccepted is guarded on accepted_at still being NULL so that
// exactly one of N racing accepts observes a row change.
func (r *invitationsRepo) MarkInvitationAccepted(ctx context.Context, invitationID, userID string, at time.Time) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE invitations
		SET accepted_at = ?, accepted_by = ?, updated_at = ?
		WHERE id = ? AND accepted_at IS NULL`,
		at.UTC(), userID, time.Now().UTC(), invitationID,
	)
	if err != nil {
		return err
	}
	return requireRowChange(res)
}

func (r *invitationsRepo) ListPendingByOrg(ctx context.Context, orgID string, now time.Time) ([]domain.Invitation, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+invitationColumns+`
		FROM invitations
		WHERE org_id = ? AND accepted_at IS NULL AND expires_at > ?
		ORDER BY id DESC`, orgID, now.UTC())
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectInvitations(rows)
}

func (r *invitationsRepo) ListExpiredByOrg(ctx context.Context, orgID string, now time.Time) ([]domain.Invitation, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+invitationColumns+`
		FROM invitations
		WHERE org_id = ? AND accepted_at IS NULL AND expires_at <= ?
		ORDER BY id DESC`, orgID, now.UTC())
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectInvitations(rows)
}

func (r *invitationsRepo) DeleteInvitation(ctx context.Context, invitationID string) error {
	_, err := r.db.ExecContext(ctx,
		`DELETE FROM invitations WHERE id = ?`, invitationID)
	return err
}

func (r *invitationsRepo) DeleteExpiredInvitations(ctx context.Context, cutoff time.Time) error {
	_, err := r.db.ExecContext(ctx,
		`DELETE FROM invitations WHERE accepted_at IS NULL AND expires_at < ?`,
		cutoff.UTC())
	return err
}

func scanInvitation(row rowScanner) (domain.Invitation, error) {
	var inv domain.Invitation
	var role string
	var acceptedAt sql.NullTime
	var acceptedBy sql.NullString

	err := row.Scan(
		&inv.ID, &inv.Email, &inv.OrgID, &inv.InvitedBy, &role,
		&inv.TokenHash, &inv.ExpiresAt, &acceptedAt, &acceptedBy,
		&inv.CreatedAt, &inv.UpdatedAt,
	)
	if err != nil {
		return domain.Invitation{}, mapNotFound(err)
	}

	inv.Role = domain.Role(role)
	inv.AcceptedAt = mapNullTimePtr(acceptedAt)
	inv.AcceptedBy = mapNullString(acceptedBy)
	return inv, nil
}

func collectInvitations(rows *sql.Rows) ([]domain.Invitation, error) {
	var out []domain.Invitation
	for rows.Next() {
		inv, err := scanInvitation(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, inv)
	}
	return out, rows.Err()
}
