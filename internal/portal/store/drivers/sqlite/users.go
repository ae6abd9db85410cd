package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/firmdesk/firmdesk/internal/portal/domain"
)

type usersRepo struct {
	db DBTX
}

const userColumns = `id, email, display_name, password_hash, confirmed_at,
	confirm_token_hash, confirm_token_sent_at, reset_token_hash,
	reset_token_sent_at, created_at, updated_at`

func (r *usersRepo) CreateUser(ctx context.Context, u domain.User) error {
	now := time.Now().UTC()
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO users (
			id, email, display_name, password_hash,
			confirm_token_hash, confirm_token_sent_at,
			created_at, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		u.ID, u.Email, u.DisplayName, u.PasswordHash,
		mapStringNull(u.ConfirmTokenHash), mapOptionalTime(u.ConfirmTokenSentAt),
		now, now,
	)
	return mapConstraint(err)
}

func (r *usersRepo) GetUserByID(ctx context.Context, id string) (domain.User, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE id = ?`, id)
	return scanUser(row)
}

func (r *usersRepo) GetUserByEmail(ctx context.Context, email string) (domain.User, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE email = ?`, email)
	return scanUser(row)
}

func (r *usersRepo) GetUserByConfirmTokenHash(ctx context.Context, hash string) (domain.User, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE confirm_token_hash = ?`, hash)
	return scanUser(row)
}

func (r *usersRepo) GetUserByResetTokenHash(ctx context.Context, hash string) (domain.User, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE reset_token_hash = ?`, hash)
	return scanUser(row)
}

func (r *usersRepo) ConfirmUser(ctx context.Context, userID string, at time.Time) error {
	_, err := r.db.ExecContext(ctx, `
		UPDATE users
		SET confirmed_at = ?, confirm_token_hash = NULL,
			confirm_token_sent_at = NULL, updated_at = ?
		WHERE id = ?`,
		at.UTC(), time.Now().UTC(), userID,
	)
	return err
}

func (r *usersRepo) SetResetToken(ctx context.Context, userID, hash string, sentAt time.Time) error {
	_, err := r.db.ExecContext(ctx, `
		UPDATE users
		SET reset_token_hash = ?, reset_token_sent_at = ?, updated_at = ?
		WHERE id = ?`,
		hash, sentAt.UTC(), time.Now().UTC(), userID,
	)
	return err
}

func (r *usersRepo) UpdatePasswordHash(ctx context.Context, userID, newHash string) error {
	_, err := r.db.ExecContext(ctx, `
		UPDATE users
		SET password_hash = ?, reset_token_hash = NULL,
			reset_token_sent_at = NULL, updated_at = ?
		WHERE id = ?`,
		newHash, time.Now().UTC(), userID,
	)
	return err
}

func (r *usersRepo) ClearStaleTokens(ctx context.Context, cutoff time.Time) error {
	_, err := r.db.ExecContext(ctx, `
		UPDATE users
		SET confirm_token_hash = NULL, confirm_token_sent_at = NULL
		WHERE confirm_token_sent_at IS NOT NULL AND confirm_token_sent_at < ?`,
		cutoff.UTC(),
	)
	if err != nil {
		return err
	}
	_, err = r.db.ExecContext(ctx, `
		UPDATE users
		SET reset_token_hash = NULL, reset_token_sent_at = NULL
		WHERE reset_token_sent_at IS NOT NULL AND reset_token_sent_at < ?`,
		cutoff.UTC(),
	)
	return err
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanUser(row rowScanner) (domain.User, error) {
	var u domain.User
	var confirmedAt, confirmSentAt, resetSentAt sql.NullTime
	var confirmHash, resetHash sql.NullString

	err := row.Scan(
		&u.ID, &u.Email, &u.DisplayName, &u.PasswordHash, &confirmedAt,
		&confirmHash, &confirmSentAt, &resetHash, &resetSentAt,
		&u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		return domain.User{}, mapNotFound(err)
	}

	u.ConfirmedAt = mapNullTimePtr(confirmedAt)
	u.ConfirmTokenHash = mapNullString(confirmHash)
	u.ConfirmTokenSentAt = mapNullTimePtr(confirmSentAt)
	u.ResetTokenHash = mapNullString(resetHash)
	u.ResetTokenSentAt = mapNullTimePtr(resetSentAt)
	return u, nil
}
