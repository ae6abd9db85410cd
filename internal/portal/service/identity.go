package service

import (
	"context"
	"errors"
	"log/slog"
	"net/mail"
	"time"

	"github.com/firmdesk/firmdesk/internal/portal/domain"
	"github.com/firmdesk/firmdesk/internal/portal/store"
	"github.com/firmdesk/firmdesk/pkg/cryptox"
	"github.com/firmdesk/firmdesk/pkg/idx"
	"github.com/firmdesk/firmdesk/pkg/slogx"
)

var (
	ErrInvalidEmail        = errors.New("invalid email address")
	ErrEmailTaken          = errors.New("email already registered")
	ErrWeakPassword        = errors.New("password too short")
	ErrUserNotFound        = errors.New("user not found")
	ErrInvalidCredentials  = errors.New("invalid credentials")
	ErrConfirmationExpired = errors.New("confirmation token expired")
	ErrResetExpired        = errors.New("password reset token expired")
)

// MinPasswordLength is deliberately modest; strength policy belongs to the
// identity provider in front of this service.
const MinPasswordLength = 8

// IdentityService owns user records: registration, email confirmation and
// password reset. Session issuance is the external identity collaborator's
// job; this service only maintains the credential and confirmation state.
type IdentityService struct {
	Store store.Store
}

// Register creates a user and returns the raw confirmation token exactly
// once. The token is valid for 24 hours; only its fingerprint is stored.
func (s *IdentityService) Register(
	ctx context.Context,
	email, displayName, password string,
) (domain.User, string, error) {
	log := slogx.FromContext(ctx)

	email = domain.NormalizeEmail(email)
	if _, err := mail.ParseAddress(email); err != nil {
		return domain.User{}, "", ErrInvalidEmail
	}
	if len(password) < MinPasswordLength {
		return domain.User{}, "", ErrWeakPassword
	}
	if displayName == "" {
		displayName = email
	}

	passwordHash, err := cryptox.HashPassword(password)
	if err != nil {
		log.Error("failed to hash password", slog.Any("error", err))
		return domain.User{}, "", err
	}

	token, err := cryptox.GenerateToken(cryptox.TokenSize256)
	if err != nil {
		log.Error("failed to generate confirmation token", slog.Any("error", err))
		return domain.User{}, "", err
	}

	now := time.Now().UTC()
	user := domain.User{
		ID:                 idx.New().String(),
		Email:              email,
		DisplayName:        displayName,
		PasswordHash:       passwordHash,
		ConfirmTokenHash:   cryptox.FingerprintToken(token),
		ConfirmTokenSentAt: &now,
	}

	if err := s.Store.Users().CreateUser(ctx, user); err != nil {
		if errors.Is(err, store.ErrAlreadyExists) {
			log.Warn("registration attempted with taken email")
			return domain.User{}, "", ErrEmailTaken
		}
		log.Error("failed to create user", slog.Any("error", err))
		return domain.User{}, "", err
	}

	log.Info("user registered", slog.String("user_id", user.ID))
	return user, token, nil
}

// ConfirmEmail redeems a confirmation token. The unconfirmed -> confirmed
// transition is one-way; redeeming for an already-confirmed user cannot
// happen because confirmation clears the token.
func (s *IdentityService) ConfirmEmail(ctx context.Context, token string) (domain.User, error) {
	log := slogx.FromContext(ctx)

	user, err := s.Store.Users().GetUserByConfirmTokenHash(ctx, cryptox.FingerprintToken(token))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.User{}, ErrUserNotFound
		}
		return domain.User{}, err
	}

	now := time.Now().UTC()
	if user.ConfirmTokenSentAt == nil || now.Sub(*user.ConfirmTokenSentAt) > domain.ConfirmationTokenTTL {
		log.Warn("confirmation attempted with expired token", slog.String("user_id", user.ID))
		return domain.User{}, ErrConfirmationExpired
	}

	if err := s.Store.Users().ConfirmUser(ctx, user.ID, now); err != nil {
		log.Error("failed to confirm user", slog.String("user_id", user.ID), slog.Any("error", err))
		return domain.User{}, err
	}

	user.ConfirmedAt = &now
	user.ConfirmTokenHash = ""
	user.ConfirmTokenSentAt = nil

	log.Info("email confirmed", slog.String("user_id", user.ID))
	return user, nil
}

// RequestPasswordReset mints a reset token for the account, valid 24 hours.
// Unknown emails return ErrUserNotFound; callers deciding to hide account
// existence from end users do so at the HTTP boundary.
func (s *IdentityService) RequestPasswordReset(ctx context.Context, email string) (string, error) {
	log := slogx.FromContext(ctx)

	user, err := s.Store.Users().GetUserByEmail(ctx, domain.NormalizeEmail(email))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return "", ErrUserNotFound
		}
		return "", err
	}

	token, err := cryptox.GenerateToken(cryptox.TokenSize256)
	if err != nil {
		return "", err
	}

	if err := s.Store.Users().SetResetToken(ctx, user.ID, cryptox.FingerprintToken(token), time.Now().UTC()); err != nil {
		log.Error("failed to store reset token", slog.String("user_id", user.ID), slog.Any("error", err))
		return "", err
	}

	log.Info("password reset requested", slog.String("user_id", user.ID))
	return token, nil
}

// ResetPassword redeems a reset token and installs the new password hash,
// clearing the token so it is single-use.
func (s *IdentityService) ResetPassword(ctx context.Context, token, newPassword string) error {
	log := slogx.FromContext(ctx)

	if len(newPassword) < MinPasswordLength {
		return ErrWeakPassword
	}

	user, err := s.Store.Users().GetUserByResetTokenHash(ctx, cryptox.FingerprintToken(token))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrUserNotFound
		}
		return err
	}

	now := time.Now().UTC()
	if user.ResetTokenSentAt == nil || now.Sub(*user.ResetTokenSentAt) > domain.ConfirmationTokenTTL {
		log.Warn("reset attempted with expired token", slog.String("user_id", user.ID))
		return ErrResetExpired
	}

	newHash, err := cryptox.HashPassword(newPassword)
	if err != nil {
		return err
	}

	if err := s.Store.Users().UpdatePasswordHash(ctx, user.ID, newHash); err != nil {
		log.Error("failed to update password", slog.String("user_id", user.ID), slog.Any("error", err))
		return err
	}

	log.Info("password reset", slog.String("user_id", user.ID))
	return nil
}

// Authenticate verifies an email/password pair. It never reveals which of
// the two was wrong.
func (s *IdentityService) Authenticate(ctx context.Context, email, password string) (domain.User, error) {
	user, err := s.Store.Users().GetUserByEmail(ctx, domain.NormalizeEmail(email))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.User{}, ErrInvalidCredentials
		}
		return domain.User{}, err
	}

	if err := cryptox.VerifyPassword(password, user.PasswordHash); err != nil {
		return domain.User{}, ErrInvalidCredentials
	}
	return user, nil
}

// GetUser fetches a user by ID.
func (s *IdentityService) GetUser(ctx context.Context, userID string) (domain.User, error) {
	user, err := s.Store.Users().GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.User{}, ErrUserNotFound
		}
		return domain.User{}, err
	}
	return user, nil
}
