package service

import (
	"context"
	"fmt"
	"testing"

	"github.com/firmdesk/firmdesk/internal/portal/domain"
	"github.com/firmdesk/firmdesk/internal/portal/store"
	"github.com/firmdesk/firmdesk/internal/portal/store/drivers/sqlite"
	"github.com/firmdesk/firmdesk/pkg/idx"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) store.Store {
	t.Helper()

	s, err := sqlite.NewStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	require.NoError(t, s.ApplyMigrations())
	return s
}

func seedUser(t *testing.T, s store.Store) domain.User {
	t.Helper()

	u := domain.User{
		ID:           idx.New().String(),
		DisplayName:  "Test User",
		PasswordHash: "argon2:dummy",
	}
	u.Email = fmt.Sprintf("%s@example.com", u.ID)
	require.NoError(t, s.Users().CreateUser(context.Background(), u))
	return u
}

func seedFirm(t *testing.T, s store.Store, owner domain.User) domain.Org {
	t.Helper()

	orgs := &OrgService{Store: s}
	firm, err := orgs.CreateFirm(context.Background(), "Test Firm", owner.ID)
	require.NoError(t, err)
	return firm
}

func seedClient(t *testing.T, s store.Store, firm domain.Org) domain.Org {
	t.Helper()

	orgs := &OrgService{Store: s}
	client, err := orgs.CreateClient(context.Background(), "Test Client", firm.ID)
	require.NoError(t, err)
	return client
}
