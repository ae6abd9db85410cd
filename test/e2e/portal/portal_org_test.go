package portal_test

import (
	"context"
	"testing"

	"github.com/firmdesk/firmdesk/pkg/portalsdk"
	"github.com/stretchr/testify/require"
)

// TestFirmAndClientHierarchy creates a firm with client organizations under
// it and verifies the two-level hierarchy is enforced.
func TestFirmAndClientHierarchy(t *testing.T) {
	baseURL, cleanup := setupPortalContainer(t)
	defer cleanup()

	client := portalsdk.NewClient(baseURL)
	ctx := context.Background()

	admin, owner, firm := provisionFirm(t, client, "owner@example.com", "Acme Accounting")

	// The creator is an admin member of the new firm.
	members, err := admin.ListMembers(ctx, firm.ID)
	require.NoError(t, err)
	require.Len(t, members.Admins, 1)
	require.Equal(t, owner.ID, members.Admins[0].ID)
	require.Empty(t, members.Staff)

	clientOrg, err := admin.CreateClientOrg(ctx, firm.ID, "Widgets Pty Ltd")
	require.NoError(t, err)
	require.Equal(t, "client", clientOrg.Kind)
	require.Equal(t, firm.ID, clientOrg.ParentID)

	// Clients cannot parent further organizations.
	_, err = admin.CreateClientOrg(ctx, clientOrg.ID, "Sub Client")
	assertAPIErrorCode(t, err, portalsdk.ErrorCodeInvalidRequest,
		"a client org must not parent another org")

	clients, err := admin.ListClientOrgs(ctx, firm.ID)
	require.NoError(t, err)
	require.Len(t, clients, 1)
	require.Equal(t, clientOrg.ID, clients[0].ID)
}

// TestMembershipGrantAndRevoke exercises direct grants, the duplicate guard
// and revocation.
func TestMembershipGrantAndRevoke(t *testing.T) {
	baseURL, cleanup := setupPortalContainer(t)
	defer cleanup()

	client := portalsdk.NewClient(baseURL)
	ctx := context.Background()

	admin, _, firm := provisionFirm(t, client, "principal@example.com", "Principal & Co")
	_, staff := provisionUser(t, client, "staffer@example.com", "Staffer")

	granted, err := admin.GrantMembership(ctx, firm.ID, staff.ID, "staff")
	require.NoError(t, err)
	require.Equal(t, "staff", granted.Role)

	// Same user and org again, even with a different role, is a conflict.
	_, err = admin.GrantMembership(ctx, firm.ID, staff.ID, "admin")
	assertAPIErrorCode(t, err, portalsdk.ErrorCodeConflict)

	members, err := admin.ListMembers(ctx, firm.ID)
	require.NoError(t, err)
	require.Len(t, members.Staff, 1)

	err = admin.RevokeMembership(ctx, firm.ID, staff.ID)
	require.NoError(t, err)

	members, err = admin.ListMembers(ctx, firm.ID)
	require.NoError(t, err)
	require.Empty(t, members.Staff)

	// Revoking an absent membership is a no-op.
	err = admin.RevokeMembership(ctx, firm.ID, staff.ID)
	require.NoError(t, err)
}

// TestOrgAccessControl verifies non-members cannot see an organization and
// staff cannot perform admin operations.
func TestOrgAccessControl(t *testing.T) {
	baseURL, cleanup := setupPortalContainer(t)
	defer cleanup()

	client := portalsdk.NewClient(baseURL)
	ctx := context.Background()

	admin, _, firm := provisionFirm(t, client, "boss@example.com", "Boss Firm")
	outsider, outsiderUser := provisionUser(t, client, "outsider@example.com", "Outsider")

	_, err := outsider.GetOrg(ctx, firm.ID)
	assertAPIErrorCode(t, err, portalsdk.ErrorCodeForbidden,
		"non-members must not read an organization")

	_, err = outsider.GetOrg(ctx, "01K0000000000000000000000Z")
	assertAPIErrorCode(t, err, portalsdk.ErrorCodeNotFound)

	// Staff members can read but not mutate the roster.
	_, err = admin.GrantMembership(ctx, firm.ID, outsiderUser.ID, "staff")
	require.NoError(t, err)

	org, err := outsider.GetOrg(ctx, firm.ID)
	require.NoError(t, err)
	require.Equal(t, firm.ID, org.ID)

	_, another := provisionUser(t, client, "another@example.com", "Another")
	_, err = outsider.GrantMembership(ctx, firm.ID, another.ID, "staff")
	assertAPIErrorCode(t, err, portalsdk.ErrorCodeForbidden,
		"staff must not grant memberships")
}
