package service

import (
	"context"
	"errors"
	"log/slog"
	"net/mail"
	"time"

	"github.com/firmdesk/firmdesk/internal/portal/domain"
	"github.com/firmdesk/firmdesk/internal/portal/store"
	"github.com/firmdesk/firmdesk/pkg/cryptox"
	"github.com/firmdesk/firmdesk/pkg/idx"
	"github.com/firmdesk/firmdesk/pkg/slogx"
)

var (
	ErrInvitationNotFound = errors.New("invitation not found")
	ErrInvitationExpired  = errors.New("invitation has expired")
	ErrInvitationAccepted = errors.New("invitation has already been accepted")
	ErrNotOrgAdmin        = errors.New("inviter is not an organization admin")
)

// InvitationService issues, resolves and redeems time-boxed membership
// invitations. Tokens are bearer credentials: possession alone authorizes
// acceptance.
type InvitationService struct {
	Store    store.Store
	Notifier Notifier
}

// Issue mints an invitation for email to join org with the given role.
// The raw token is returned exactly once; only its fingerprint is stored.
// Expiry is fixed at issue time + 7 days and never extended.
func (s *InvitationService) Issue(
	ctx context.Context,
	email, orgID, inviterID string,
	role domain.Role,
) (domain.Invitation, string, error) {
	log := slogx.FromContext(ctx)

	email = domain.NormalizeEmail(email)
	if _, err := mail.ParseAddress(email); err != nil {
		return domain.Invitation{}, "", ErrInvalidEmail
	}
	if !role.Valid() {
		return domain.Invitation{}, "", ErrInvalidRole
	}

	if _, err := s.Store.Orgs().GetOrgByID(ctx, orgID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.Invitation{}, "", ErrOrgNotFound
		}
		return domain.Invitation{}, "", err
	}

	// Only org admins may invite.
	inviter, err := s.Store.Memberships().GetMembership(ctx, inviterID, orgID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			log.Warn("invitation attempted by non-member",
				slog.String("inviter_id", inviterID),
				slog.String("org_id", orgID),
			)
			return domain.Invitation{}, "", ErrNotOrgAdmin
		}
		return domain.Invitation{}, "", err
	}
	if inviter.Role != domain.RoleAdmin {
		log.Warn("invitation attempted by non-admin",
			slog.String("inviter_id", inviterID),
			slog.String("org_id", orgID),
		)
		return domain.Invitation{}, "", ErrNotOrgAdmin
	}

	token, err := cryptox.GenerateToken(cryptox.TokenSize256)
	if err != nil {
		log.Error("failed to generate invitation token", slog.Any("error", err))
		return domain.Invitation{}, "", err
	}

	now := time.Now().UTC()
	inv := domain.Invitation{
		ID:        idx.New().String(),
		Email:     email,
		OrgID:     orgID,
		InvitedBy: inviterID,
		Role:      role,
		TokenHash: cryptox.FingerprintToken(token),
		ExpiresAt: now.Add(domain.InvitationTTL),
	}

	if err := s.Store.Invitations().CreateInvitation(ctx, inv); err != nil {
		log.Error("failed to create invitation", slog.Any("error", err))
		return domain.Invitation{}, "", err
	}

	s.notify(ctx, Event{
		Kind:     EventInvitationIssued,
		OrgID:    orgID,
		EntityID: inv.ID,
		ActorID:  inviterID,
		Email:    email,
	})

	log.Info("invitation issued",
		slog.String("invitation_id", inv.ID),
		slog.String("org_id", orgID),
		slog.String("role", role.String()),
		slog.Time("expires_at", inv.ExpiresAt),
	)
	return inv, token, nil
}

// Resolve looks an invitation up by its raw token. Lookup happens on the
// SHA-256 fingerprint, so no secret-dependent comparison runs on the raw
// value.
func (s *InvitationService) Resolve(ctx context.Context, token string) (domain.Invitation, error) {
	inv, err := s.Store.Invitations().GetInvitationByTokenHash(ctx, cryptox.FingerprintToken(token))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.Invitation{}, ErrInvitationNotFound
		}
		return domain.Invitation{}, err
	}
	return inv, nil
}

// Accept redeems the invitation for acceptingUserID and grants the
// membership, both in one transaction; a failure of either leaves the
// invitation pending.
//
// The accepting user's email is deliberately NOT required to match the
// invited address: invitations are bearer tokens, and whichever
// authenticated account completes the flow claims the membership. The
// accepting user is recorded on the invitation so mismatches stay
// auditable.
func (s *InvitationService) Accept(ctx context.Context, token, acceptingUserID string) (domain.Membership, error) {
	log := slogx.FromContext(ctx)

	inv, err := s.Resolve(ctx, token)
	if err != nil {
		return domain.Membership{}, err
	}

	now := time.Now().UTC()
	if inv.Accepted() {
		return domain.Membership{}, ErrInvitationAccepted
	}
	if inv.Expired(now) {
		log.Warn("acceptance attempted on expired invitation",
			slog.String("invitation_id", inv.ID),
		)
		return domain.Membership{}, ErrInvitationExpired
	}

	membership := domain.Membership{
		ID:     idx.New().String(),
		UserID: acceptingUserID,
		OrgID:  inv.OrgID,
		Role:   inv.Role,
	}

	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		// Guarded update: of N concurrent accepts on this token exactly
		// one sees a row change; the rest observe ErrNotFound here.
		if err := tx.Invitations().MarkInvitationAccepted(ctx, inv.ID, acceptingUserID, now); err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return ErrInvitationAccepted
			}
			return err
		}
		if err := tx.Memberships().CreateMembership(ctx, membership); err != nil {
			if errors.Is(err, store.ErrAlreadyExists) {
				// Acceptance never overwrites an existing role; the whole
				// transaction rolls back and the invitation stays pending.
				return ErrDuplicateMembership
			}
			return err
		}
		return nil
	})
	if err != nil {
		if !errors.Is(err, ErrInvitationAccepted) && !errors.Is(err, ErrDuplicateMembership) {
			log.Error("failed to accept invitation",
				slog.String("invitation_id", inv.ID),
				slog.Any("error", err),
			)
		}
		return domain.Membership{}, err
	}

	log.Info("invitation accepted",
		slog.String("invitation_id", inv.ID),
		slog.String("user_id", acceptingUserID),
		slog.String("org_id", inv.OrgID),
		slog.String("role", inv.Role.String()),
	)
	return membership, nil
}

// Cancel deletes a pending or expired invitation. Accepted invitations are
// terminal and cannot be cancelled.
func (s *InvitationService) Cancel(ctx context.Context, invitationID string) error {
	log := slogx.FromContext(ctx)

	inv, err := s.Store.Invitations().GetInvitationByID(ctx, invitationID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrInvitationNotFound
		}
		return err
	}
	if inv.Accepted() {
		return ErrInvalidState
	}

	if err := s.Store.Invitations().DeleteInvitation(ctx, inv.ID); err != nil {
		log.Error("failed to cancel invitation", slog.Any("error", err))
		return err
	}

	log.Info("invitation cancelled", slog.String("invitation_id", inv.ID))
	return nil
}

// PendingFor lists an org's open invitations, newest first. Expired entries
// never appear here; ExpiredFor lists them explicitly.
func (s *InvitationService) PendingFor(ctx context.Context, orgID string) ([]domain.Invitation, error) {
	return s.Store.Invitations().ListPendingByOrg(ctx, orgID, time.Now().UTC())
}

// ExpiredFor lists an org's lapsed, unaccepted invitations, newest first.
func (s *InvitationService) ExpiredFor(ctx context.Context, orgID string) ([]domain.Invitation, error) {
	return s.Store.Invitations().ListExpiredByOrg(ctx, orgID, time.Now().UTC())
}

func (s *InvitationService) notify(ctx context.Context, e Event) {
	if s.Notifier != nil {
		s.Notifier.Notify(ctx, e)
	}
}
