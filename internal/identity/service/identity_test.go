package service

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/aussiebroadwan/tweetbook/internal/identity/domain"
	"github.com/aussiebroadwan/tweetbook/internal/identity/store"
	"github.com/aussiebroadwan/tweetbook/pkg/cryptox"
	"github.com/aussiebroadwan/tweetbook/pkg/jwtx"
)

func requireDenied(t *testing.T, res domain.AuthenticationResult, err error, reason error) {
	t.Helper()

	require.NoError(t, err)
	require.False(t, res.Success)
	require.ErrorIs(t, res.Reason, reason)
	require.Empty(t, res.Token)
	require.Empty(t, res.RefreshToken)
	require.Equal(t, []string{Message(reason)}, res.Errors)
}

func TestRegisterThenLogin(t *testing.T) {
	ctx := context.Background()
	f := newMemoryFixture(t)

	access, refresh := f.register(t, "alice@example.com")
	require.NotEmpty(t, access)
	require.NotEmpty(t, refresh)

	res, err := f.svc.Login(ctx, "  ALICE@example.com ", testPassword)
	require.NoError(t, err)
	require.True(t, res.Success)
	require.NotEqual(t, refresh, res.RefreshToken)
}

func TestRegisterDuplicate(t *testing.T) {
	f := newMemoryFixture(t)
	f.register(t, "bob@example.com")

	res, err := f.svc.Register(context.Background(), "Bob@Example.com", testPassword)
	requireDenied(t, res, err, ErrDuplicateIdentity)
}

func TestRegisterPasswordPolicy(t *testing.T) {
	f := newMemoryFixture(t)

	res, err := f.svc.Register(context.Background(), "weak@example.com", "abc")
	require.NoError(t, err)
	require.False(t, res.Success)
	require.ErrorIs(t, res.Reason, ErrPasswordPolicy)
	require.Empty(t, res.Token)
	require.Equal(t, []string{
		"Passwords must be at least 6 characters.",
		"Passwords must have at least one non alphanumeric character.",
		"Passwords must have at least one digit ('0'-'9').",
		"Passwords must have at least one uppercase ('A'-'Z').",
	}, res.Errors)

	_, exists, err := f.svc.Credentials.FindByEmail(context.Background(), "weak@example.com")
	require.NoError(t, err)
	require.False(t, exists, "no user is created when the policy fails")
}

func TestLoginDoesNotRevealWhichPartWasWrong(t *testing.T) {
	ctx := context.Background()
	f := newMemoryFixture(t)
	f.register(t, "carol@example.com")

	wrongPassword, err := f.svc.Login(ctx, "carol@example.com", "Wrong123!")
	requireDenied(t, wrongPassword, err, ErrInvalidCredentials)

	unknownEmail, err := f.svc.Login(ctx, "nobody@example.com", testPassword)
	requireDenied(t, unknownEmail, err, ErrUnknownIdentity)

	require.Equal(t, wrongPassword.Errors, unknownEmail.Errors)
}

func TestIssuedAccessTokenDecodes(t *testing.T) {
	f := newMemoryFixture(t)
	access, refresh := f.register(t, "dave@example.com")

	claims, err := f.codec.Verify(access)
	require.NoError(t, err)
	require.Equal(t, "dave@example.com", claims.Email)
	require.NotEmpty(t, claims.Subject)
	require.NotEmpty(t, claims.ID)

	row, err := f.store.RefreshTokens().GetRefreshTokenByHash(context.Background(), cryptox.FingerprintToken(refresh))
	require.NoError(t, err)
	require.Equal(t, claims.ID, row.JwtID)
	require.Equal(t, claims.Subject, row.UserID)
	require.False(t, row.Used)
	require.NotEqual(t, refresh, row.TokenHash, "only the fingerprint is stored")
}

func TestRefreshRejectsUnexpiredAccessToken(t *testing.T) {
	f := newMemoryFixture(t)
	access, refresh := f.register(t, "erin@example.com")

	res, err := f.svc.Refresh(context.Background(), access, refresh)
	requireDenied(t, res, err, ErrTokenNotExpired)

	// also when the refresh token is garbage
	res, err = f.svc.Refresh(context.Background(), access, "garbage")
	requireDenied(t, res, err, ErrTokenNotExpired)
}

func TestRefreshRotation(t *testing.T) {
	ctx := context.Background()
	f := newMemoryFixture(t)

	a1, r1 := f.register(t, "alice@example.com")
	f.clock.Advance(6 * time.Minute)

	res, err := f.svc.Refresh(ctx, a1, r1)
	require.NoError(t, err)
	require.True(t, res.Success, res.Errors)
	a2, r2 := res.Token, res.RefreshToken
	require.NotEqual(t, a1, a2)
	require.NotEqual(t, r1, r2)

	row, err := f.store.RefreshTokens().GetRefreshTokenByHash(ctx, cryptox.FingerprintToken(r1))
	require.NoError(t, err)
	require.True(t, row.Used)

	for range 3 {
		res, err = f.svc.Refresh(ctx, a1, r1)
		requireDenied(t, res, err, ErrRefreshTokenAlreadyUsed)
	}

	f.clock.Advance(6 * time.Minute)
	res, err = f.svc.Refresh(ctx, a2, r2)
	require.NoError(t, err)
	require.True(t, res.Success, res.Errors)
}

func TestRefreshMismatch(t *testing.T) {
	ctx := context.Background()
	f := newMemoryFixture(t)

	a1, r1 := f.register(t, "frank@example.com")
	_, r2 := f.login(t, "frank@example.com")
	f.clock.Advance(6 * time.Minute)

	res, err := f.svc.Refresh(ctx, a1, r2)
	requireDenied(t, res, err, ErrRefreshTokenMismatch)

	row, err := f.store.RefreshTokens().GetRefreshTokenByHash(ctx, cryptox.FingerprintToken(r2))
	require.NoError(t, err)
	require.False(t, row.Used, "a denied refresh leaves the row untouched")

	res, err = f.svc.Refresh(ctx, a1, r1)
	require.NoError(t, err)
	require.True(t, res.Success)
}

func TestRefreshInvalidAccessToken(t *testing.T) {
	ctx := context.Background()
	f := newMemoryFixture(t)
	_, refresh := f.register(t, "gina@example.com")

	other, err := jwtx.NewSigningKey([]byte("another-secret-that-is-long-enough!!"), time.Minute, time.Hour)
	require.NoError(t, err)
	otherCodec, err := jwtx.NewCodec(other)
	require.NoError(t, err)
	forged, _, err := otherCodec.Issue("someone", "gina@example.com", time.Now().Add(-time.Hour))
	require.NoError(t, err)

	for _, tok := range []string{"", "not-a-jwt", forged} {
		res, err := f.svc.Refresh(ctx, tok, refresh)
		requireDenied(t, res, err, ErrInvalidAccessToken)
	}
}

func TestRefreshUnknownToken(t *testing.T) {
	f := newMemoryFixture(t)
	access, _ := f.register(t, "hank@example.com")
	f.clock.Advance(6 * time.Minute)

	res, err := f.svc.Refresh(context.Background(), access, "never-issued")
	requireDenied(t, res, err, ErrUnknownRefreshToken)
}

func TestRefreshExpiredRefreshToken(t *testing.T) {
	f := newMemoryFixture(t)
	access, refresh := f.register(t, "ivy@example.com")
	f.clock.Advance(25 * time.Hour)

	res, err := f.svc.Refresh(context.Background(), access, refresh)
	requireDenied(t, res, err, ErrRefreshTokenExpired)
}

func TestRevoke(t *testing.T) {
	ctx := context.Background()
	f := newMemoryFixture(t)
	access, refresh := f.register(t, "jack@example.com")

	res, err := f.svc.Revoke(ctx, refresh)
	require.NoError(t, err)
	require.True(t, res.Success)

	f.clock.Advance(6 * time.Minute)
	res, err = f.svc.Refresh(ctx, access, refresh)
	requireDenied(t, res, err, ErrRefreshTokenInvalidated)

	res, err = f.svc.Revoke(ctx, "unknown")
	requireDenied(t, res, err, ErrUnknownRefreshToken)
}

func TestRefreshConcurrent(t *testing.T) {
	backends := map[string]func(*testing.T) *fixture{
		"memory": newMemoryFixture,
		"sqlite": newSQLiteFixture,
	}
	for name, newF := range backends {
		t.Run(name, func(t *testing.T) {
			f := newF(t)
			access, refresh := f.register(t, "race@example.com")
			f.clock.Advance(6 * time.Minute)

			const workers = 8
			var (
				wg       sync.WaitGroup
				wins     atomic.Int32
				replays  atomic.Int32
				start    = make(chan struct{})
				failures = make(chan string, workers)
			)
			for range workers {
				wg.Add(1)
				go func() {
					defer wg.Done()
					<-start
					res, err := f.svc.Refresh(context.Background(), access, refresh)
					switch {
					case err != nil:
						failures <- err.Error()
					case res.Success:
						wins.Add(1)
					case errors.Is(res.Reason, ErrRefreshTokenAlreadyUsed):
						replays.Add(1)
					default:
						failures <- res.Reason.Error()
					}
				}()
			}
			close(start)
			wg.Wait()
			close(failures)

			for msg := range failures {
				require.Fail(t, "unexpected outcome", msg)
			}
			require.EqualValues(t, 1, wins.Load())
			require.EqualValues(t, workers-1, replays.Load())
		})
	}
}

// flakyLedger fails every lookup, standing in for an unreachable backend.
type flakyLedger struct {
	store.RefreshTokens
}

func (flakyLedger) GetRefreshTokenByHash(context.Context, string) (domain.RefreshToken, error) {
	return domain.RefreshToken{}, context.DeadlineExceeded
}

func (flakyLedger) InvalidateRefreshToken(context.Context, string) error {
	return errors.New("connection reset")
}

func TestStoreFailuresAreTransient(t *testing.T) {
	ctx := context.Background()
	f := newMemoryFixture(t)
	access, refresh := f.register(t, "kate@example.com")
	f.clock.Advance(6 * time.Minute)

	f.svc.Ledger = flakyLedger{RefreshTokens: f.svc.Ledger}

	_, err := f.svc.Refresh(ctx, access, refresh)
	require.ErrorIs(t, err, ErrTransientStoreFailure)
	require.ErrorIs(t, err, context.DeadlineExceeded)

	_, err = f.svc.Revoke(ctx, refresh)
	require.ErrorIs(t, err, ErrTransientStoreFailure)

	cancelled, cancel := context.WithCancel(ctx)
	cancel()
	_, err = f.svc.Login(cancelled, "kate@example.com", testPassword)
	require.ErrorIs(t, err, ErrTransientStoreFailure)
	require.ErrorIs(t, err, context.Canceled)
}

func TestCheckPasswordPolicy(t *testing.T) {
	tests := []struct {
		password string
		want     int
	}{
		{"Secret123!", 0},
		{"", 5},
		{"aB1!", 1},
		{"abcdef", 3},
		{"ABCDEF1!", 1},
		{"Pass word1", 0},
	}
	for _, tt := range tests {
		t.Run(tt.password, func(t *testing.T) {
			require.Len(t, CheckPasswordPolicy(tt.password), tt.want)
		})
	}
}
