package service

import (
	"context"
	"testing"

	"github.com/firmdesk/firmdesk/internal/portal/domain"
	"github.com/firmdesk/firmdesk/pkg/idx"
	"github.com/stretchr/testify/require"
)

func TestCreateFirm(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	svc := &OrgService{Store: s}

	t.Run("grants the owner admin in the same transaction", func(t *testing.T) {
		owner := seedUser(t, s)

		firm, err := svc.CreateFirm(ctx, "Acme Accounting", owner.ID)
		require.NoError(t, err)
		require.Equal(t, domain.OrgFirm, firm.Kind)
		require.Empty(t, firm.ParentID)

		m, err := s.Memberships().GetMembership(ctx, owner.ID, firm.ID)
		require.NoError(t, err)
		require.Equal(t, domain.RoleAdmin, m.Role)
	})

	t.Run("rejects blank names", func(t *testing.T) {
		owner := seedUser(t, s)

		_, err := svc.CreateFirm(ctx, "   ", owner.ID)
		require.ErrorIs(t, err, domain.ErrBlankOrgName)
	})

	t.Run("rejects unknown owners and leaves no org behind", func(t *testing.T) {
		_, err := svc.CreateFirm(ctx, "Ghost Firm", idx.New().String())
		require.ErrorIs(t, err, ErrUserNotFound)
	})
}

func TestCreateClient(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	svc := &OrgService{Store: s}

	owner := seedUser(t, s)
	firm := seedFirm(t, s, owner)

	t.Run("creates a child under a firm", func(t *testing.T) {
		client, err := svc.CreateClient(ctx, "Bikes R Us", firm.ID)
		require.NoError(t, err)
		require.Equal(t, domain.OrgClient, client.Kind)
		require.Equal(t, firm.ID, client.ParentID)
	})

	t.Run("rejects a client as parent", func(t *testing.T) {
		client := seedClient(t, s, firm)

		_, err := svc.CreateClient(ctx, "Too Deep", client.ID)
		require.ErrorIs(t, err, ErrNotAFirm)
	})

	t.Run("rejects unknown parents", func(t *testing.T) {
		_, err := svc.CreateClient(ctx, "Orphan", idx.New().String())
		require.ErrorIs(t, err, ErrOrgNotFound)
	})
}

func TestOrgRosterPartition(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	svc := &OrgService{Store: s}
	memberships := &MembershipService{Store: s}

	owner := seedUser(t, s)
	firm := seedFirm(t, s, owner)

	staff := seedUser(t, s)
	_, err := memberships.Grant(ctx, staff.ID, firm.ID, domain.RoleStaff)
	require.NoError(t, err)

	admins, err := svc.Admins(ctx, firm.ID)
	require.NoError(t, err)
	require.Len(t, admins, 1)
	require.Equal(t, owner.ID, admins[0].ID)

	staffers, err := svc.Staff(ctx, firm.ID)
	require.NoError(t, err)
	require.Len(t, staffers, 1)
	require.Equal(t, staff.ID, staffers[0].ID)
}

func TestClientsListing(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	svc := &OrgService{Store: s}

	owner := seedUser(t, s)
	firm := seedFirm(t, s, owner)
	first := seedClient(t, s, firm)
	second := seedClient(t, s, firm)

	clients, err := svc.Clients(ctx, firm.ID)
	require.NoError(t, err)
	require.Len(t, clients, 2)
	// Newest first.
	require.Equal(t, second.ID, clients[0].ID)
	require.Equal(t, first.ID, clients[1].ID)
}
