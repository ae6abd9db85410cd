package service

import (
	"context"
	"testing"
	"time"

	"github.com/firmdesk/firmdesk/internal/portal/domain"
	"github.com/firmdesk/firmdesk/internal/portal/store"
	"github.com/firmdesk/firmdesk/pkg/cryptox"
	"github.com/firmdesk/firmdesk/pkg/idx"
	"github.com/stretchr/testify/require"
)

func TestHousekeepingSweep(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	admin := seedUser(t, s)
	firm := seedFirm(t, s, admin)

	// Recently expired: kept so ExpiredFor can still report it.
	recent, _ := seedExpiredInvitation(t, s, firm.ID, admin.ID)

	// Long dead: past the retention window.
	old := domain.Invitation{
		ID:        idx.New().String(),
		Email:     "ancient@example.com",
		OrgID:     firm.ID,
		InvitedBy: admin.ID,
		Role:      domain.RoleStaff,
		TokenHash: cryptox.FingerprintToken(cryptox.MustGenerateToken(cryptox.TokenSize256)),
		ExpiresAt: time.Now().UTC().Add(-InvitationRetention - 24*time.Hour),
	}
	require.NoError(t, s.Invitations().CreateInvitation(ctx, old))

	h := &Housekeeper{Store: s}
	h.sweep(ctx)

	_, err := s.Invitations().GetInvitationByID(ctx, old.ID)
	require.ErrorIs(t, err, store.ErrNotFound)

	kept, err := s.Invitations().GetInvitationByID(ctx, recent.ID)
	require.NoError(t, err)
	require.Equal(t, recent.ID, kept.ID)
}

func TestHousekeepingRunStopsOnCancel(t *testing.T) {
	s := newTestStore(t)
	h := &Housekeeper{Store: s, Interval: time.Millisecond}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		h.Run(ctx)
		close(done)
	}()

	time.Sleep(10 * time.Millisecond)
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("housekeeper did not stop")
	}
}
