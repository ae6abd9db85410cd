package service

import (
	"context"
	"testing"
	"time"

	"github.com/firmdesk/firmdesk/internal/portal/domain"
	"github.com/firmdesk/firmdesk/pkg/idx"
	"github.com/stretchr/testify/require"
)

func newThreadService(t *testing.T) (*ThreadService, domain.Org, domain.User) {
	t.Helper()

	s := newTestStore(t)
	owner := seedUser(t, s)
	firm := seedFirm(t, s, owner)
	return &ThreadService{Store: s, Notifier: NopNotifier{}}, firm, owner
}

func TestCreateThread(t *testing.T) {
	ctx := context.Background()
	svc, firm, _ := newThreadService(t)

	t.Run("starts open with activity at creation", func(t *testing.T) {
		thread, err := svc.Create(ctx, firm.ID, "Quarterly filings")
		require.NoError(t, err)
		require.Equal(t, domain.ThreadOpen, thread.Status)

		// The returned thread carries real timestamps, not zero values
		// awaiting a re-fetch.
		require.False(t, thread.LastActivityAt.IsZero())
		require.False(t, thread.CreatedAt.IsZero())

		got, err := svc.Get(ctx, thread.ID)
		require.NoError(t, err)
		require.False(t, got.LastActivityAt.IsZero())
		require.True(t, got.LastActivityAt.Equal(got.CreatedAt),
			"a message-less thread's activity is its creation time")
	})

	t.Run("rejects blank titles", func(t *testing.T) {
		_, err := svc.Create(ctx, firm.ID, "   ")
		require.ErrorIs(t, err, ErrBlankTitle)
	})

	t.Run("rejects unknown orgs", func(t *testing.T) {
		_, err := svc.Create(ctx, idx.New().String(), "Nowhere")
		require.ErrorIs(t, err, ErrOrgNotFound)
	})
}

func TestPostMessage(t *testing.T) {
	ctx := context.Background()
	svc, firm, owner := newThreadService(t)

	thread, err := svc.Create(ctx, firm.ID, "Docs needed")
	require.NoError(t, err)

	t.Run("appends and bumps activity", func(t *testing.T) {
		before, err := svc.Get(ctx, thread.ID)
		require.NoError(t, err)

		time.Sleep(5 * time.Millisecond)

		msg, err := svc.PostMessage(ctx, thread.ID, owner.ID, "Please upload the Q2 receipts.")
		require.NoError(t, err)
		require.Equal(t, thread.ID, msg.ThreadID)
		require.False(t, msg.CreatedAt.IsZero())

		after, err := svc.Get(ctx, thread.ID)
		require.NoError(t, err)
		require.True(t, after.LastActivityAt.After(before.LastActivityAt))

		// The activity timestamp is the newest message's creation time.
		msgs, err := svc.ListMessages(ctx, thread.ID)
		require.NoError(t, err)
		require.Len(t, msgs, 1)
		require.False(t, msgs[0].CreatedAt.IsZero())
		require.True(t, after.LastActivityAt.Equal(msgs[0].CreatedAt))
	})

	t.Run("rejects empty bodies", func(t *testing.T) {
		_, err := svc.PostMessage(ctx, thread.ID, owner.ID, "  \n ")
		require.ErrorIs(t, err, ErrEmptyMessage)
	})

	t.Run("reopens a resolved thread", func(t *testing.T) {
		require.NoError(t, svc.Resolve(ctx, thread.ID, owner.ID))

		resolved, err := svc.Get(ctx, thread.ID)
		require.NoError(t, err)
		require.Equal(t, domain.ThreadResolved, resolved.Status)
		require.Equal(t, owner.ID, resolved.ClosedBy)
		require.NotNil(t, resolved.ClosedAt)

		_, err = svc.PostMessage(ctx, thread.ID, owner.ID, "One more thing.")
		require.NoError(t, err)

		reopened, err := svc.Get(ctx, thread.ID)
		require.NoError(t, err)
		require.Equal(t, domain.ThreadOpen, reopened.Status)
		require.Empty(t, reopened.ClosedBy)
		require.Nil(t, reopened.ClosedAt)
	})

	t.Run("rejects unknown threads", func(t *testing.T) {
		_, err := svc.PostMessage(ctx, idx.New().String(), owner.ID, "hello")
		require.ErrorIs(t, err, ErrThreadNotFound)
	})
}

func TestResolveReopen(t *testing.T) {
	ctx := context.Background()
	svc, firm, owner := newThreadService(t)

	thread, err := svc.Create(ctx, firm.ID, "Signatures")
	require.NoError(t, err)

	t.Run("resolve is not idempotent", func(t *testing.T) {
		require.NoError(t, svc.Resolve(ctx, thread.ID, owner.ID))
		require.ErrorIs(t, svc.Resolve(ctx, thread.ID, owner.ID), ErrInvalidState)
	})

	t.Run("reopen clears close bookkeeping", func(t *testing.T) {
		require.NoError(t, svc.Reopen(ctx, thread.ID))

		got, err := svc.Get(ctx, thread.ID)
		require.NoError(t, err)
		require.Equal(t, domain.ThreadOpen, got.Status)
		require.Empty(t, got.ClosedBy)
		require.Nil(t, got.ClosedAt)

		require.ErrorIs(t, svc.Reopen(ctx, thread.ID), ErrInvalidState)
	})

	t.Run("unknown threads fail", func(t *testing.T) {
		require.ErrorIs(t, svc.Resolve(ctx, idx.New().String(), owner.ID), ErrThreadNotFound)
		require.ErrorIs(t, svc.Reopen(ctx, idx.New().String()), ErrThreadNotFound)
	})
}

func TestThreadListings(t *testing.T) {
	ctx := context.Background()
	svc, firm, owner := newThreadService(t)

	first, err := svc.Create(ctx, firm.ID, "Oldest")
	require.NoError(t, err)
	second, err := svc.Create(ctx, firm.ID, "Newest")
	require.NoError(t, err)

	time.Sleep(5 * time.Millisecond)

	// Activity on the older thread floats it to the top.
	_, err = svc.PostMessage(ctx, first.ID, owner.ID, "bump")
	require.NoError(t, err)

	threads, err := svc.ListThreads(ctx, firm.ID)
	require.NoError(t, err)
	require.Len(t, threads, 2)
	require.Equal(t, first.ID, threads[0].ID)
	require.Equal(t, second.ID, threads[1].ID)

	_, err = svc.PostMessage(ctx, first.ID, owner.ID, "second message")
	require.NoError(t, err)

	msgs, err := svc.ListMessages(ctx, first.ID)
	require.NoError(t, err)
	require.Len(t, msgs, 2)
	// Oldest first.
	require.Equal(t, "bump", msgs[0].Body)
	require.Equal(t, "second message", msgs[1].Body)
}
