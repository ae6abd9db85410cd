package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/firmdesk/firmdesk/internal/portal/domain"
	"github.com/firmdesk/firmdesk/internal/portal/store"
	"github.com/firmdesk/firmdesk/pkg/idx"
	"github.com/firmdesk/firmdesk/pkg/slogx"
)

var (
	ErrInvalidRole         = errors.New("invalid role")
	ErrDuplicateMembership = errors.New("user already has a membership in this organization")
)

// MembershipService grants, revokes and queries a user's role within an
// organization.
type MembershipService struct {
	Store store.Store
}

// Grant creates a membership. The (user, org) uniqueness is enforced by the
// store's unique index, so of two concurrent identical grants exactly one
// succeeds and the other reports ErrDuplicateMembership.
func (s *MembershipService) Grant(ctx context.Context, userID, orgID string, role domain.Role) (domain.Membership, error) {
	log := slogx.FromContext(ctx)

	if !role.Valid() {
		return domain.Membership{}, ErrInvalidRole
	}

	m := domain.Membership{
		ID:     idx.New().String(),
		UserID: userID,
		OrgID:  orgID,
		Role:   role,
	}

	if err := s.Store.Memberships().CreateMembership(ctx, m); err != nil {
		if errors.Is(err, store.ErrAlreadyExists) {
			log.Warn("duplicate membership grant rejected",
				slog.String("user_id", userID),
				slog.String("org_id", orgID),
			)
			return domain.Membership{}, ErrDuplicateMembership
		}
		log.Error("failed to create membership", slog.Any("error", err))
		return domain.Membership{}, err
	}

	log.Info("membership granted",
		slog.String("user_id", userID),
		slog.String("org_id", orgID),
		slog.String("role", role.String()),
	)
	return m, nil
}

// Revoke removes a membership; a no-op when none exists. There is no
// last-admin guard here: workflows that care must check Admins() before
// revoking.
func (s *MembershipService) Revoke(ctx context.Context, userID, orgID string) error {
	log := slogx.FromContext(ctx)

	if err := s.Store.Memberships().DeleteMembership(ctx, userID, orgID); err != nil {
		log.Error("failed to revoke membership", slog.Any("error", err))
		return err
	}

	log.Info("membership revoked",
		slog.String("user_id", userID),
		slog.String("org_id", orgID),
	)
	return nil
}

// RoleOf returns the user's role in the org, or ("", false) when the user is
// not a member.
func (s *MembershipService) RoleOf(ctx context.Context, userID, orgID string) (domain.Role, bool, error) {
	m, err := s.Store.Memberships().GetMembership(ctx, userID, orgID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return "", false, nil
		}
		return "", false, err
	}
	return m.Role, true, nil
}

// IsAdmin reports whether the user holds the admin role in the org.
func (s *MembershipService) IsAdmin(ctx context.Context, userID, orgID string) (bool, error) {
	role, ok, err := s.RoleOf(ctx, userID, orgID)
	return ok && role == domain.RoleAdmin, err
}

// IsMember reports whether the user holds any role in the org.
func (s *MembershipService) IsMember(ctx context.Context, userID, orgID string) (bool, error) {
	_, ok, err := s.RoleOf(ctx, userID, orgID)
	return ok, err
}
