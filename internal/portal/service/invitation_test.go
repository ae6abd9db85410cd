package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/firmdesk/firmdesk/internal/portal/domain"
	"github.com/firmdesk/firmdesk/internal/portal/store"
	"github.com/firmdesk/firmdesk/pkg/cryptox"
	"github.com/firmdesk/firmdesk/pkg/idx"
	"github.com/stretchr/testify/require"
)

func TestIssueInvitation(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	svc := &InvitationService{Store: s, Notifier: NopNotifier{}}

	admin := seedUser(t, s)
	firm := seedFirm(t, s, admin)

	t.Run("returns the raw token once and stores only its fingerprint", func(t *testing.T) {
		inv, token, err := svc.Issue(ctx, "new.hire@example.com", firm.ID, admin.ID, domain.RoleStaff)
		require.NoError(t, err)
		require.NotEmpty(t, token)
		require.Equal(t, cryptox.FingerprintToken(token), inv.TokenHash)
		require.NotEqual(t, token, inv.TokenHash)

		require.WithinDuration(t, time.Now().Add(domain.InvitationTTL), inv.ExpiresAt, time.Minute)
	})

	t.Run("normalizes the invited address", func(t *testing.T) {
		inv, _, err := svc.Issue(ctx, "  Mixed.Case@Example.COM ", firm.ID, admin.ID, domain.RoleStaff)
		require.NoError(t, err)
		require.Equal(t, "mixed.case@example.com", inv.Email)
	})

	t.Run("rejects non-admin inviters", func(t *testing.T) {
		staff := seedUser(t, s)
		_, err := (&MembershipService{Store: s}).Grant(ctx, staff.ID, firm.ID, domain.RoleStaff)
		require.NoError(t, err)

		_, _, err = svc.Issue(ctx, "x@example.com", firm.ID, staff.ID, domain.RoleStaff)
		require.ErrorIs(t, err, ErrNotOrgAdmin)

		outsider := seedUser(t, s)
		_, _, err = svc.Issue(ctx, "x@example.com", firm.ID, outsider.ID, domain.RoleStaff)
		require.ErrorIs(t, err, ErrNotOrgAdmin)
	})

	t.Run("rejects bad input", func(t *testing.T) {
		_, _, err := svc.Issue(ctx, "not-an-email", firm.ID, admin.ID, domain.RoleStaff)
		require.ErrorIs(t, err, ErrInvalidEmail)

		_, _, err = svc.Issue(ctx, "ok@example.com", firm.ID, admin.ID, domain.Role("owner"))
		require.ErrorIs(t, err, ErrInvalidRole)

		_, _, err = svc.Issue(ctx, "ok@example.com", idx.New().String(), admin.ID, domain.RoleStaff)
		require.ErrorIs(t, err, ErrOrgNotFound)
	})
}

func TestAcceptInvitation(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	svc := &InvitationService{Store: s, Notifier: NopNotifier{}}

	admin := seedUser(t, s)
	firm := seedFirm(t, s, admin)

	t.Run("grants the invited role and marks the invitation", func(t *testing.T) {
		_, token, err := svc.Issue(ctx, "joiner@example.com", firm.ID, admin.ID, domain.RoleStaff)
		require.NoError(t, err)

		joiner := seedUser(t, s)
		m, err := svc.Accept(ctx, token, joiner.ID)
		require.NoError(t, err)
		require.Equal(t, domain.RoleStaff, m.Role)
		require.Equal(t, firm.ID, m.OrgID)

		got, err := svc.Resolve(ctx, token)
		require.NoError(t, err)
		require.True(t, got.Accepted())
		require.Equal(t, joiner.ID, got.AcceptedBy)
	})

	t.Run("a different authenticated account may accept", func(t *testing.T) {
		_, token, err := svc.Issue(ctx, "intended@example.com", firm.ID, admin.ID, domain.RoleStaff)
		require.NoError(t, err)

		someoneElse := seedUser(t, s)
		m, err := svc.Accept(ctx, token, someoneElse.ID)
		require.NoError(t, err)
		require.Equal(t, someoneElse.ID, m.UserID)
	})

	t.Run("second accept fails", func(t *testing.T) {
		_, token, err := svc.Issue(ctx, "once@example.com", firm.ID, admin.ID, domain.RoleStaff)
		require.NoError(t, err)

		first := seedUser(t, s)
		second := seedUser(t, s)

		_, err = svc.Accept(ctx, token, first.ID)
		require.NoError(t, err)

		_, err = svc.Accept(ctx, token, second.ID)
		require.ErrorIs(t, err, ErrInvitationAccepted)

		// The loser got no membership.
		_, ok, err := (&MembershipService{Store: s}).RoleOf(ctx, second.ID, firm.ID)
		require.NoError(t, err)
		require.False(t, ok)
	})

	t.Run("expired invitations cannot be accepted", func(t *testing.T) {
		inv, token := seedExpiredInvitation(t, s, firm.ID, admin.ID)

		user := seedUser(t, s)
		_, err := svc.Accept(ctx, token, user.ID)
		require.ErrorIs(t, err, ErrInvitationExpired)

		// Still unaccepted, so it shows up in the expired listing.
		got, err := s.Invitations().GetInvitationByID(ctx, inv.ID)
		require.NoError(t, err)
		require.False(t, got.Accepted())
	})

	t.Run("existing members cannot accept, invitation stays pending", func(t *testing.T) {
		_, token, err := svc.Issue(ctx, "member@example.com", firm.ID, admin.ID, domain.RoleStaff)
		require.NoError(t, err)

		_, err = svc.Accept(ctx, token, admin.ID)
		require.ErrorIs(t, err, ErrDuplicateMembership)

		// The failed grant rolled the acceptance back too.
		got, err := svc.Resolve(ctx, token)
		require.NoError(t, err)
		require.False(t, got.Accepted())

		// The admin's original role is untouched.
		role, ok, err := (&MembershipService{Store: s}).RoleOf(ctx, admin.ID, firm.ID)
		require.NoError(t, err)
		require.True(t, ok)
		require.Equal(t, domain.RoleAdmin, role)
	})

	t.Run("unknown tokens fail", func(t *testing.T) {
		user := seedUser(t, s)
		_, err := svc.Accept(ctx, "bogus-token", user.ID)
		require.ErrorIs(t, err, ErrInvitationNotFound)
	})
}

// Of N accepts racing on one token exactly one membership comes out.
func TestAcceptInvitationConcurrent(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	svc := &InvitationService{Store: s, Notifier: NopNotifier{}}

	admin := seedUser(t, s)
	firm := seedFirm(t, s, admin)

	_, token, err := svc.Issue(ctx, "raced@example.com", firm.ID, admin.ID, domain.RoleStaff)
	require.NoError(t, err)

	const attempts = 8
	users := make([]domain.User, attempts)
	for i := range users {
		users[i] = seedUser(t, s)
	}

	errs := make([]error, attempts)
	var wg sync.WaitGroup
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = svc.Accept(ctx, token, users[i].ID)
		}(i)
	}
	wg.Wait()

	var wins int
	for _, err := range errs {
		switch {
		case err == nil:
			wins++
		case errors.Is(err, ErrInvitationAccepted):
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	require.Equal(t, 1, wins)

	members, err := s.Memberships().ListOrgMembers(ctx, firm.ID, domain.RoleStaff)
	require.NoError(t, err)
	require.Len(t, members, 1)
}

func TestCancelInvitation(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	svc := &InvitationService{Store: s, Notifier: NopNotifier{}}

	admin := seedUser(t, s)
	firm := seedFirm(t, s, admin)

	t.Run("cancels a pending invitation", func(t *testing.T) {
		inv, token, err := svc.Issue(ctx, "pending@example.com", firm.ID, admin.ID, domain.RoleStaff)
		require.NoError(t, err)

		require.NoError(t, svc.Cancel(ctx, inv.ID))

		_, err = svc.Resolve(ctx, token)
		require.ErrorIs(t, err, ErrInvitationNotFound)
	})

	t.Run("cancels an expired invitation", func(t *testing.T) {
		inv, _ := seedExpiredInvitation(t, s, firm.ID, admin.ID)
		require.NoError(t, svc.Cancel(ctx, inv.ID))
	})

	t.Run("accepted invitations are terminal", func(t *testing.T) {
		inv, token, err := svc.Issue(ctx, "done@example.com", firm.ID, admin.ID, domain.RoleStaff)
		require.NoError(t, err)

		user := seedUser(t, s)
		_, err = svc.Accept(ctx, token, user.ID)
		require.NoError(t, err)

		require.ErrorIs(t, svc.Cancel(ctx, inv.ID), ErrInvalidState)
	})

	t.Run("unknown invitations fail", func(t *testing.T) {
		require.ErrorIs(t, svc.Cancel(ctx, idx.New().String()), ErrInvitationNotFound)
	})
}

func TestInvitationListings(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	svc := &InvitationService{Store: s, Notifier: NopNotifier{}}

	admin := seedUser(t, s)
	firm := seedFirm(t, s, admin)

	first, _, err := svc.Issue(ctx, "first@example.com", firm.ID, admin.ID, domain.RoleStaff)
	require.NoError(t, err)
	second, _, err := svc.Issue(ctx, "second@example.com", firm.ID, admin.ID, domain.RoleAdmin)
	require.NoError(t, err)
	expired, _ := seedExpiredInvitation(t, s, firm.ID, admin.ID)

	accepted, token, err := svc.Issue(ctx, "accepted@example.com", firm.ID, admin.ID, domain.RoleStaff)
	require.NoError(t, err)
	user := seedUser(t, s)
	_, err = svc.Accept(ctx, token, user.ID)
	require.NoError(t, err)

	pending, err := svc.PendingFor(ctx, firm.ID)
	require.NoError(t, err)
	require.Len(t, pending, 2)
	// Newest first; expired and accepted are excluded.
	require.Equal(t, second.ID, pending[0].ID)
	require.Equal(t, first.ID, pending[1].ID)
	for _, inv := range pending {
		require.NotEqual(t, expired.ID, inv.ID)
		require.NotEqual(t, accepted.ID, inv.ID)
	}

	lapsed, err := svc.ExpiredFor(ctx, firm.ID)
	require.NoError(t, err)
	require.Len(t, lapsed, 1)
	require.Equal(t, expired.ID, lapsed[0].ID)
}

// seedExpiredInvitation writes an invitation whose expiry already passed,
// bypassing the service because Issue never produces one.
func seedExpiredInvitation(t *testing.T, s store.Store, orgID, invitedBy string) (domain.Invitation, string) {
	t.Helper()

	token, err := cryptox.GenerateToken(cryptox.TokenSize256)
	require.NoError(t, err)

	inv := domain.Invitation{
		ID:        idx.New().String(),
		Email:     "expired@example.com",
		OrgID:     orgID,
		InvitedBy: invitedBy,
		Role:      domain.RoleStaff,
		TokenHash: cryptox.FingerprintToken(token),
		ExpiresAt: time.Now().UTC().Add(-time.Hour),
	}
	require.NoError(t, s.Invitations().CreateInvitation(context.Background(), inv))
	return inv, token
}
