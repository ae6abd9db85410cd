package app

import (
	"crypto/ed25519"
	"encoding/base64"
	"fmt"
	"log/slog"

	"github.com/firmdesk/firmdesk/pkg/jwtx"
)

// InitSessionKeys builds the Ed25519 signer/verifier pair for session tokens.
//
// When PORTAL_SESSION_PRIVATE_KEY is set it must be a base64url (no padding)
// 32-byte Ed25519 seed; sessions then survive restarts. When empty a fresh
// keypair is generated on startup and every existing session becomes invalid.
func InitSessionKeys(cfg Config, logger *slog.Logger) (*jwtx.EdDSASigner, *jwtx.EdDSAVerifier, error) {
	if cfg.SessionPrivateKey == "" {
		signer, verifier, err := jwtx.GenerateKeypair()
		if err != nil {
			return nil, nil, fmt.Errorf("generate ephemeral session keys: %w", err)
		}

		logger.Warn("no session private key configured, generated an ephemeral keypair; all existing sessions are now invalid")
		return signer, verifier, nil
	}

	seed, err := base64.RawURLEncoding.DecodeString(cfg.SessionPrivateKey)
	if err != nil {
		return nil, nil, fmt.Errorf("decode session private key: %w", err)
	}
	if len(seed) != ed25519.SeedSize {
		return nil, nil, fmt.Errorf("session private key must be a %d-byte seed, got %d bytes", ed25519.SeedSize, len(seed))
	}

	key := ed25519.NewKeyFromSeed(seed)
	signer, err := jwtx.NewSigner(key)
	if err != nil {
		return nil, nil, fmt.Errorf("initialize session signer: %w", err)
	}
	verifier, err := jwtx.NewVerifier(key.Public().(ed25519.PublicKey))
	if err != nil {
		return nil, nil, fmt.Errorf("initialize session verifier: %w", err)
	}

	logger.Info("session signing key loaded", "public_key", jwtx.EncodePublicKey(signer.PublicKey()))
	return signer, verifier, nil
}
