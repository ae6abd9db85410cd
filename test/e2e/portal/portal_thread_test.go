package portal_test

import (
	"context"
	"testing"

	"github.com/firmdesk/firmdesk/pkg/portalsdk"
	"github.com/stretchr/testify/require"
)

// TestThreadConversation walks a discussion: open a thread, exchange
// messages, resolve it.
func TestThreadConversation(t *testing.T) {
	baseURL, cleanup := setupPortalContainer(t)
	defer cleanup()

	client := portalsdk.NewClient(baseURL)
	ctx := context.Background()

	admin, _, firm := provisionFirm(t, client, "advisor@example.com", "Advisory Firm")

	thread, err := admin.CreateThread(ctx, firm.ID, "Q3 BAS lodgement")
	require.NoError(t, err)
	require.Equal(t, "open", thread.Status)

	first, err := admin.PostMessage(ctx, thread.ID, "Figures attached, please review.")
	require.NoError(t, err)
	second, err := admin.PostMessage(ctx, thread.ID, "One correction to the fuel credits.")
	require.NoError(t, err)

	messages, err := admin.ListMessages(ctx, thread.ID)
	require.NoError(t, err)
	require.Len(t, messages, 2)
	// Oldest first.
	require.Equal(t, first.ID, messages[0].ID)
	require.Equal(t, second.ID, messages[1].ID)

	err = admin.ResolveThread(ctx, thread.ID)
	require.NoError(t, err)

	resolved, err := admin.GetThread(ctx, thread.ID)
	require.NoError(t, err)
	require.Equal(t, "resolved", resolved.Status)
	require.NotNil(t, resolved.ClosedAt)

	// Resolving twice is a state violation.
	err = admin.ResolveThread(ctx, thread.ID)
	assertAPIErrorCode(t, err, portalsdk.ErrorCodeInvalidState)
}

// TestThreadAutoReopen verifies a message posted to a resolved thread
// reopens it.
func TestThreadAutoReopen(t *testing.T) {
	baseURL, cleanup := setupPortalContainer(t)
	defer cleanup()

	client := portalsdk.NewClient(baseURL)
	ctx := context.Background()

	admin, _, firm := provisionFirm(t, client, "followup@example.com", "Follow Up Firm")

	thread, err := admin.CreateThread(ctx, firm.ID, "Missing receipt")
	require.NoError(t, err)

	_, err = admin.PostMessage(ctx, thread.ID, "Please send the March receipt.")
	require.NoError(t, err)

	err = admin.ResolveThread(ctx, thread.ID)
	require.NoError(t, err)

	_, err = admin.PostMessage(ctx, thread.ID, "Found another one from April.")
	require.NoError(t, err)

	reopened, err := admin.GetThread(ctx, thread.ID)
	require.NoError(t, err)
	require.Equal(t, "open", reopened.Status, "posting must reopen a resolved thread")
	require.Nil(t, reopened.ClosedAt, "reopening clears the close bookkeeping")
}

// TestThreadExplicitReopen verifies the explicit reopen operation and its
// conflict on an already open thread.
func TestThreadExplicitReopen(t *testing.T) {
	baseURL, cleanup := setupPortalContainer(t)
	defer cleanup()

	client := portalsdk.NewClient(baseURL)
	ctx := context.Background()

	admin, _, firm := provisionFirm(t, client, "reopener@example.com", "Reopen Firm")

	thread, err := admin.CreateThread(ctx, firm.ID, "Depreciation schedule")
	require.NoError(t, err)

	err = admin.ReopenThread(ctx, thread.ID)
	assertAPIErrorCode(t, err, portalsdk.ErrorCodeInvalidState,
		"reopening an open thread is invalid")

	err = admin.ResolveThread(ctx, thread.ID)
	require.NoError(t, err)

	err = admin.ReopenThread(ctx, thread.ID)
	require.NoError(t, err)

	back, err := admin.GetThread(ctx, thread.ID)
	require.NoError(t, err)
	require.Equal(t, "open", back.Status)
}
