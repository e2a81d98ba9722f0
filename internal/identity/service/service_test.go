package service

import (
	"context"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/aussiebroadwan/tweetbook/internal/identity/store"
	"github.com/aussiebroadwan/tweetbook/internal/identity/store/drivers/memory"
	"github.com/aussiebroadwan/tweetbook/internal/identity/store/drivers/sqlite"
	"github.com/aussiebroadwan/tweetbook/pkg/cryptox"
	"github.com/aussiebroadwan/tweetbook/pkg/jwtx"
)

const testPassword = "Secret123!"

// testClock is a manually advanced clock shared by the services under test.
type testClock struct {
	mu sync.Mutex
	t  time.Time
}

func newTestClock() *testClock {
	return &testClock{t: time.Now().UTC().Truncate(time.Second)}
}

func (c *testClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *testClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.t = c.t.Add(d)
}

type fixture struct {
	svc   *IdentityService
	posts *PostService
	store store.Store
	codec *jwtx.Codec
	clock *testClock
}

func newFixture(t *testing.T, st store.Store) *fixture {
	t.Helper()

	key, err := jwtx.NewSigningKey([]byte(strings.Repeat("s", jwtx.MinSecretLength)), 5*time.Minute, 24*time.Hour)
	require.NoError(t, err)
	codec, err := jwtx.NewCodec(key)
	require.NoError(t, err)

	clock := newTestClock()
	return &fixture{
		svc: &IdentityService{
			Credentials: &CredentialStore{
				Users:  st.Users(),
				Hasher: cryptox.NewPasswordHasher("test-pepper"),
				Clock:  clock.Now,
			},
			Ledger: st.RefreshTokens(),
			Codec:  codec,
			Key:    key,
			Clock:  clock.Now,
		},
		posts: &PostService{Store: st, Clock: clock.Now},
		store: st,
		codec: codec,
		clock: clock,
	}
}

func newMemoryFixture(t *testing.T) *fixture {
	return newFixture(t, memory.NewStore())
}

func newSQLiteFixture(t *testing.T) *fixture {
	t.Helper()

	st, err := sqlite.NewStore(sqlite.FileDSN(filepath.Join(t.TempDir(), "identity.db")))
	require.NoError(t, err)
	require.NoError(t, st.ApplyMigrations())
	t.Cleanup(func() { _ = st.Close() })
	return newFixture(t, st)
}

func (f *fixture) register(t *testing.T, email string) (access, refresh string) {
	t.Helper()

	res, err := f.svc.Register(context.Background(), email, testPassword)
	require.NoError(t, err)
	require.True(t, res.Success, "register %s: %v", email, res.Errors)
	return res.Token, res.RefreshToken
}

func (f *fixture) login(t *testing.T, email string) (access, refresh string) {
	t.Helper()

	res, err := f.svc.Login(context.Background(), email, testPassword)
	require.NoError(t, err)
	require.True(t, res.Success, "login %s: %v", email, res.Errors)
	return res.Token, res.RefreshToken
}
