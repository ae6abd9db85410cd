package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/firmdesk/firmdesk/internal/portal/domain"
	"github.com/firmdesk/firmdesk/internal/portal/store"
	"github.com/firmdesk/firmdesk/pkg/slogx"
)

// InvitationRetention is how long an expired, unaccepted invitation stays
// visible in ExpiredFor listings before housekeeping deletes the row.
// Expiry itself is always evaluated lazily against the stored timestamp;
// deletion is purely hygiene.
const InvitationRetention = 30 * 24 * time.Hour

// Housekeeper periodically removes rows nothing can act on anymore:
// long-expired invitations and stale confirmation/reset token fingerprints.
type Housekeeper struct {
	Store    store.Store
	Interval time.Duration
}

// Run blocks until ctx is cancelled, sweeping once immediately and then on
// every tick.
func (h *Housekeeper) Run(ctx context.Context) {
	interval := h.Interval
	if interval <= 0 {
		interval = time.Hour
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	h.sweep(ctx)
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			h.sweep(ctx)
		}
	}
}

func (h *Housekeeper) sweep(ctx context.Context) {
	log := slogx.FromContext(ctx)
	now := time.Now().UTC()

	if err := h.Store.Invitations().DeleteExpiredInvitations(ctx, now.Add(-InvitationRetention)); err != nil {
		log.Error("housekeeping: failed to delete expired invitations", slog.Any("error", err))
	}

	if err := h.Store.Users().ClearStaleTokens(ctx, now.Add(-domain.ConfirmationTokenTTL)); err != nil {
		log.Error("housekeeping: failed to clear stale tokens", slog.Any("error", err))
	}
}
