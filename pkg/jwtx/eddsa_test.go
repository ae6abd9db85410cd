package jwtx

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestSignAndVerifyRoundTrip(t *testing.T) {
	t.Parallel()

	signer, verifier, err := GenerateKeypair()
	require.NoError(t, err)

	claims := NewSessionClaims("user-1", "u1@example.com", "User One", "identity-hub", time.Hour, time.Now().UTC())
	raw, err := signer.Sign(claims)
	require.NoError(t, err)

	got, err := verifier.Verify(raw)
	require.NoError(t, err)
	require.Equal(t, "user-1", got.Subject)
	require.Equal(t, "u1@example.com", got.Email)
	require.NoError(t, got.ValidateExpiry())
}

func TestVerifyRejectsWrongKey(t *testing.T) {
	t.Parallel()

	signer, _, err := GenerateKeypair()
	require.NoError(t, err)
	_, otherVerifier, err := GenerateKeypair()
	require.NoError(t, err)

	raw, err := signer.Sign(NewSessionClaims("user-1", "", "", "identity-hub", time.Hour, time.Now().UTC()))
	require.NoError(t, err)

	_, err = otherVerifier.Verify(raw)
	require.ErrorIs(t, err, ErrTokenInvalid)
}

func TestVerifyRejectsExpiredToken(t *testing.T) {
	t.Parallel()

	signer, verifier, err := GenerateKeypair()
	require.NoError(t, err)

	past := time.Now().UTC().Add(-2 * time.Hour)
	raw, err := signer.Sign(NewSessionClaims("user-1", "", "", "identity-hub", time.Hour, past))
	require.NoError(t, err)

	_, err = verifier.Verify(raw)
	require.ErrorIs(t, err, ErrTokenExpired)
}

func TestPublicKeyEncodeParseRoundTrip(t *testing.T) {
	t.Parallel()

	signer, _, err := GenerateKeypair()
	require.NoError(t, err)

	encoded := EncodePublicKey(signer.PublicKey())
	parsed, err := ParsePublicKey(encoded)
	require.NoError(t, err)
	require.Equal(t, []byte(signer.PublicKey()), []byte(parsed))

	_, err = ParsePublicKey("too-short")
	require.Error(t, err)
}
