package service

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/firmdesk/firmdesk/internal/portal/domain"
	"github.com/stretchr/testify/require"
)

func TestGrant(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	svc := &MembershipService{Store: s}

	owner := seedUser(t, s)
	firm := seedFirm(t, s, owner)

	t.Run("rejects unknown roles", func(t *testing.T) {
		user := seedUser(t, s)

		_, err := svc.Grant(ctx, user.ID, firm.ID, domain.Role("superuser"))
		require.ErrorIs(t, err, ErrInvalidRole)
	})

	t.Run("rejects a second grant for the same pair", func(t *testing.T) {
		user := seedUser(t, s)

		_, err := svc.Grant(ctx, user.ID, firm.ID, domain.RoleStaff)
		require.NoError(t, err)

		// Even with a different role the pair is taken.
		_, err = svc.Grant(ctx, user.ID, firm.ID, domain.RoleAdmin)
		require.ErrorIs(t, err, ErrDuplicateMembership)

		role, ok, err := svc.RoleOf(ctx, user.ID, firm.ID)
		require.NoError(t, err)
		require.True(t, ok)
		require.Equal(t, domain.RoleStaff, role)
	})

	t.Run("same user may join several orgs", func(t *testing.T) {
		user := seedUser(t, s)
		client := seedClient(t, s, firm)

		_, err := svc.Grant(ctx, user.ID, firm.ID, domain.RoleStaff)
		require.NoError(t, err)
		_, err = svc.Grant(ctx, user.ID, client.ID, domain.RoleAdmin)
		require.NoError(t, err)
	})
}

// Duplicate grants racing each other must resolve at the database, not in a
// check-then-insert window: exactly one wins.
func TestGrantConcurrentDuplicates(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	svc := &MembershipService{Store: s}

	owner := seedUser(t, s)
	firm := seedFirm(t, s, owner)
	user := seedUser(t, s)

	const attempts = 8
	errs := make([]error, attempts)

	var wg sync.WaitGroup
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = svc.Grant(ctx, user.ID, firm.ID, domain.RoleStaff)
		}(i)
	}
	wg.Wait()

	var wins, dups int
	for _, err := range errs {
		switch {
		case err == nil:
			wins++
		case errors.Is(err, ErrDuplicateMembership):
			dups++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	require.Equal(t, 1, wins)
	require.Equal(t, attempts-1, dups)
}

func TestRevoke(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	svc := &MembershipService{Store: s}

	owner := seedUser(t, s)
	firm := seedFirm(t, s, owner)
	user := seedUser(t, s)

	_, err := svc.Grant(ctx, user.ID, firm.ID, domain.RoleStaff)
	require.NoError(t, err)

	require.NoError(t, svc.Revoke(ctx, user.ID, firm.ID))

	_, ok, err := svc.RoleOf(ctx, user.ID, firm.ID)
	require.NoError(t, err)
	require.False(t, ok)

	// Revoking again is a no-op.
	require.NoError(t, svc.Revoke(ctx, user.ID, firm.ID))

	// Nothing stops the last admin from leaving.
	require.NoError(t, svc.Revoke(ctx, owner.ID, firm.ID))
	admins, err := (&OrgService{Store: s}).Admins(ctx, firm.ID)
	require.NoError(t, err)
	require.Empty(t, admins)
}

func TestRoleChecks(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	svc := &MembershipService{Store: s}

	owner := seedUser(t, s)
	firm := seedFirm(t, s, owner)
	staff := seedUser(t, s)
	outsider := seedUser(t, s)

	_, err := svc.Grant(ctx, staff.ID, firm.ID, domain.RoleStaff)
	require.NoError(t, err)

	isAdmin, err := svc.IsAdmin(ctx, owner.ID, firm.ID)
	require.NoError(t, err)
	require.True(t, isAdmin)

	isAdmin, err = svc.IsAdmin(ctx, staff.ID, firm.ID)
	require.NoError(t, err)
	require.False(t, isAdmin)

	isMember, err := svc.IsMember(ctx, staff.ID, firm.ID)
	require.NoError(t, err)
	require.True(t, isMember)

	isMember, err = svc.IsMember(ctx, outsider.ID, firm.ID)
	require.NoError(t, err)
	require.False(t, isMember)
}
