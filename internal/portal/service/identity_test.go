package service

import (
	"context"
	"testing"
	"time"

	"github.com/firmdesk/firmdesk/internal/portal/domain"
	"github.com/firmdesk/firmdesk/pkg/cryptox"
	"github.com/stretchr/testify/require"
)

func TestRegister(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	svc := &IdentityService{Store: s}

	t.Run("stores normalized email and token fingerprint", func(t *testing.T) {
		user, token, err := svc.Register(ctx, " Alice@Example.COM ", "Alice", "correct horse battery")
		require.NoError(t, err)
		require.Equal(t, "alice@example.com", user.Email)
		require.NotEmpty(t, token)
		require.Equal(t, cryptox.FingerprintToken(token), user.ConfirmTokenHash)
		require.False(t, user.Confirmed())
	})

	t.Run("rejects duplicate emails", func(t *testing.T) {
		_, _, err := svc.Register(ctx, "bob@example.com", "Bob", "password-one")
		require.NoError(t, err)

		_, _, err = svc.Register(ctx, "BOB@example.com", "Other Bob", "password-two")
		require.ErrorIs(t, err, ErrEmailTaken)
	})

	t.Run("rejects bad input", func(t *testing.T) {
		_, _, err := svc.Register(ctx, "not-an-email", "X", "long enough pw")
		require.ErrorIs(t, err, ErrInvalidEmail)

		_, _, err = svc.Register(ctx, "short@example.com", "X", "tiny")
		require.ErrorIs(t, err, ErrWeakPassword)
	})
}

func TestConfirmEmail(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	svc := &IdentityService{Store: s}

	t.Run("confirms and clears the token", func(t *testing.T) {
		_, token, err := svc.Register(ctx, "carol@example.com", "Carol", "a decent password")
		require.NoError(t, err)

		user, err := svc.ConfirmEmail(ctx, token)
		require.NoError(t, err)
		require.True(t, user.Confirmed())

		// The token is single-use.
		_, err = svc.ConfirmEmail(ctx, token)
		require.ErrorIs(t, err, ErrUserNotFound)
	})

	t.Run("rejects unknown tokens", func(t *testing.T) {
		_, err := svc.ConfirmEmail(ctx, "bogus")
		require.ErrorIs(t, err, ErrUserNotFound)
	})

	t.Run("rejects stale reset tokens", func(t *testing.T) {
		user, _, err := svc.Register(ctx, "dan@example.com", "Dan", "a decent password")
		require.NoError(t, err)

		// Plant a reset token whose send time is past the window.
		token, err := cryptox.GenerateToken(cryptox.TokenSize256)
		require.NoError(t, err)
		stale := time.Now().UTC().Add(-domain.ConfirmationTokenTTL - time.Hour)
		require.NoError(t, s.Users().SetResetToken(ctx, user.ID, cryptox.FingerprintToken(token), stale))

		require.ErrorIs(t, svc.ResetPassword(ctx, token, "a replacement password"), ErrResetExpired)
	})
}

func TestPasswordReset(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	svc := &IdentityService{Store: s}

	_, _, err := svc.Register(ctx, "erin@example.com", "Erin", "original password")
	require.NoError(t, err)

	t.Run("full round trip", func(t *testing.T) {
		token, err := svc.RequestPasswordReset(ctx, "erin@example.com")
		require.NoError(t, err)

		require.NoError(t, svc.ResetPassword(ctx, token, "a brand new password"))

		_, err = svc.Authenticate(ctx, "erin@example.com", "original password")
		require.ErrorIs(t, err, ErrInvalidCredentials)

		user, err := svc.Authenticate(ctx, "erin@example.com", "a brand new password")
		require.NoError(t, err)
		require.Equal(t, "erin@example.com", user.Email)

		// The reset token is single-use.
		require.ErrorIs(t, svc.ResetPassword(ctx, token, "yet another password"), ErrUserNotFound)
	})

	t.Run("unknown emails fail", func(t *testing.T) {
		_, err := svc.RequestPasswordReset(ctx, "nobody@example.com")
		require.ErrorIs(t, err, ErrUserNotFound)
	})

	t.Run("weak replacements rejected", func(t *testing.T) {
		token, err := svc.RequestPasswordReset(ctx, "erin@example.com")
		require.NoError(t, err)
		require.ErrorIs(t, svc.ResetPassword(ctx, token, "tiny"), ErrWeakPassword)
	})
}

func TestAuthenticate(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	svc := &IdentityService{Store: s}

	_, _, err := svc.Register(ctx, "frank@example.com", "Frank", "frank's password")
	require.NoError(t, err)

	t.Run("wrong password and unknown user look identical", func(t *testing.T) {
		_, badPass := svc.Authenticate(ctx, "frank@example.com", "wrong")
		_, badUser := svc.Authenticate(ctx, "nobody@example.com", "wrong")
		require.ErrorIs(t, badPass, ErrInvalidCredentials)
		require.ErrorIs(t, badUser, ErrInvalidCredentials)
	})

	t.Run("email lookup is case-insensitive", func(t *testing.T) {
		user, err := svc.Authenticate(ctx, "FRANK@example.com", "frank's password")
		require.NoError(t, err)
		require.Equal(t, "frank@example.com", user.Email)
	})
}
