package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/aussiebroadwan/tweetbook/internal/identity/domain"
	"github.com/aussiebroadwan/tweetbook/internal/identity/store"
	"github.com/aussiebroadwan/tweetbook/pkg/cryptox"
	"github.com/aussiebroadwan/tweetbook/pkg/idx"
	"github.com/aussiebroadwan/tweetbook/pkg/jwtx"
	"github.com/aussiebroadwan/tweetbook/pkg/slogx"
)

// IdentityService registers users, logs them in and rotates refresh tokens.
//
// Every operation returns a result and an error. A denial is a result with
// Success=false and a Reason; the error is only set for infrastructure
// failures, and store failures wrap ErrTransientStoreFailure.
type IdentityService struct {
	Credentials Credentials
	Ledger      store.RefreshTokens
	Codec       *jwtx.Codec
	Key         jwtx.SigningKey
	Clock       func() time.Time
}

func (s *IdentityService) now() time.Time {
	if s.Clock != nil {
		return s.Clock().UTC()
	}
	return time.Now().UTC()
}

func (s *IdentityService) refreshTTL() time.Duration {
	if s.Key.RefreshTTL > 0 {
		return s.Key.RefreshTTL
	}
	return jwtx.DefaultRefreshTokenTTL
}

// Register creates the account and signs the user in.
func (s *IdentityService) Register(ctx context.Context, email, password string) (domain.AuthenticationResult, error) {
	l := slogx.FromContext(ctx)

	_, exists, err := s.Credentials.FindByEmail(ctx, email)
	if err != nil {
		return domain.AuthenticationResult{}, transient("find user", err)
	}
	if exists {
		l.Info("register denied", slog.String("reason", ErrDuplicateIdentity.Error()))
		return deny(ErrDuplicateIdentity), nil
	}

	u, msgs, err := s.Credentials.CreateUser(ctx, email, password)
	if err != nil {
		if errors.Is(err, ErrDuplicateIdentity) {
			l.Info("register denied", slog.String("reason", ErrDuplicateIdentity.Error()))
			return deny(ErrDuplicateIdentity), nil
		}
		return domain.AuthenticationResult{}, transient("create user", err)
	}
	if len(msgs) > 0 {
		l.Info("register denied", slog.String("reason", ErrPasswordPolicy.Error()), slog.Int("violations", len(msgs)))
		return deny(ErrPasswordPolicy, msgs...), nil
	}

	l.Info("user registered", slog.String("user_id", u.ID))
	return s.issue(ctx, u)
}

// Login checks the password and issues a fresh token pair. Unknown email
// and wrong password produce the same denial.
func (s *IdentityService) Login(ctx context.Context, email, password string) (domain.AuthenticationResult, error) {
	l := slogx.FromContext(ctx)

	u, exists, err := s.Credentials.FindByEmail(ctx, email)
	if err != nil {
		return domain.AuthenticationResult{}, transient("find user", err)
	}
	if !exists {
		s.Credentials.VerifyPassword(domain.User{}, password)
		l.Info("login denied", slog.String("reason", ErrUnknownIdentity.Error()))
		return deny(ErrUnknownIdentity), nil
	}
	if !s.Credentials.VerifyPassword(u, password) {
		l.Info("login denied", slog.String("reason", ErrInvalidCredentials.Error()), slog.String("user_id", u.ID))
		return deny(ErrInvalidCredentials), nil
	}

	return s.issue(ctx, u)
}

// Refresh exchanges an expired access token and its paired refresh token for
// a new pair. The checks run in a fixed order and only the final step
// touches the ledger, flipping the row to used with a compare-and-set so
// that one of two concurrent callers wins.
func (s *IdentityService) Refresh(ctx context.Context, accessToken, refreshToken string) (domain.AuthenticationResult, error) {
	l := slogx.FromContext(ctx)
	now := s.now()

	denied := func(reason error) (domain.AuthenticationResult, error) {
		l.Warn("refresh denied", slog.String("reason", reason.Error()))
		return deny(reason), nil
	}

	// 1. signature and algorithm, expiry ignored
	claims, err := s.Codec.Decode(strings.TrimSpace(accessToken))
	if err != nil {
		return denied(ErrInvalidAccessToken)
	}

	// 2. only expired access tokens may be refreshed
	if !claims.ExpiredAt(now) {
		return denied(ErrTokenNotExpired)
	}

	// 3.
	jti := claims.ID

	// 4.
	refreshToken = strings.TrimSpace(refreshToken)
	if refreshToken == "" {
		return denied(ErrUnknownRefreshToken)
	}
	row, err := s.Ledger.GetRefreshTokenByHash(ctx, cryptox.FingerprintToken(refreshToken))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return denied(ErrUnknownRefreshToken)
		}
		return domain.AuthenticationResult{}, transient("get refresh token", err)
	}

	// 5-8.
	switch {
	case row.ExpiredAt(now):
		return denied(ErrRefreshTokenExpired)
	case row.Invalidated:
		return denied(ErrRefreshTokenInvalidated)
	case row.Used:
		return denied(ErrRefreshTokenAlreadyUsed)
	case row.JwtID != jti:
		return denied(ErrRefreshTokenMismatch)
	}

	// 9. Once the row is marked used it stays used, even if issuing the
	// new pair fails below.
	if err := s.Ledger.MarkRefreshTokenUsed(ctx, row); err != nil {
		switch {
		case errors.Is(err, store.ErrAlreadyUsed):
			return denied(ErrRefreshTokenAlreadyUsed)
		case errors.Is(err, store.ErrNotFound):
			return denied(ErrUnknownRefreshToken)
		}
		return domain.AuthenticationResult{}, transient("mark refresh token used", err)
	}

	u, exists, err := s.Credentials.FindByID(ctx, claims.Subject)
	if err != nil {
		return domain.AuthenticationResult{}, transient("find user", err)
	}
	if !exists {
		return denied(ErrInvalidAccessToken)
	}

	l.Info("refresh token rotated", slog.String("user_id", u.ID), slog.String("refresh_id", row.ID))
	return s.issue(ctx, u)
}

// Revoke invalidates a refresh token so that it can no longer be redeemed.
func (s *IdentityService) Revoke(ctx context.Context, refreshToken string) (domain.AuthenticationResult, error) {
	l := slogx.FromContext(ctx)

	refreshToken = strings.TrimSpace(refreshToken)
	if refreshToken == "" {
		return deny(ErrUnknownRefreshToken), nil
	}

	err := s.Ledger.InvalidateRefreshToken(ctx, cryptox.FingerprintToken(refreshToken))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			l.Info("revoke denied", slog.String("reason", ErrUnknownRefreshToken.Error()))
			return deny(ErrUnknownRefreshToken), nil
		}
		return domain.AuthenticationResult{}, transient("invalidate refresh token", err)
	}

	l.Info("refresh token revoked")
	return domain.AuthenticationResult{Success: true}, nil
}

// issue signs an access token for u and records the paired refresh token.
// Nothing is returned to the caller unless the ledger write succeeded.
func (s *IdentityService) issue(ctx context.Context, u domain.User) (domain.AuthenticationResult, error) {
	now := s.now()

	access, claims, err := s.Codec.Issue(u.ID, u.Email, now)
	if err != nil {
		return domain.AuthenticationResult{}, err
	}

	refresh, err := cryptox.GenerateToken(cryptox.TokenSize256)
	if err != nil {
		return domain.AuthenticationResult{}, err
	}

	row := domain.RefreshToken{
		ID:        idx.NewAt(now).String(),
		TokenHash: cryptox.FingerprintToken(refresh),
		UserID:    u.ID,
		JwtID:     claims.ID,
		ExpiresAt: now.Add(s.refreshTTL()),
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.Ledger.CreateRefreshToken(ctx, row); err != nil {
		return domain.AuthenticationResult{}, transient("create refresh token", err)
	}

	return domain.AuthenticationResult{
		Success:      true,
		Token:        access,
		RefreshToken: refresh,
	}, nil
}
