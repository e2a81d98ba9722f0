package app

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/require"

	"github.com/aussiebroadwan/tweetbook/pkg/authsdk"
)

func testConfig(t *testing.T) Config {
	t.Helper()
	dir := t.TempDir()
	return Config{
		Port:                0,
		Env:                 "test",
		LogLevel:            "error",
		LogFormat:           "text",
		ShutdownGracePeriod: time.Second,
		RequestTimeout:      5 * time.Second,
		KeyStorageMode:      KeyStorageEphemeral,
		AccessTokenTTL:      5 * time.Minute,
		RefreshTokenTTL:     time.Hour,
		DatabaseFile:        filepath.Join(dir, "tweetbook.db"),
		PepperFile:          filepath.Join(dir, "pepper"),
		LedgerBackend:       LedgerSQLite,
	}
}

func startApp(t *testing.T, cfg Config) *authsdk.Client {
	t.Helper()

	application, err := New(cfg)
	require.NoError(t, err)

	srv := httptest.NewServer(application.Handler())
	t.Cleanup(func() {
		srv.Close()
		require.NoError(t, application.closeStores())
	})
	return authsdk.NewClient(srv.URL)
}

func exerciseAPI(t *testing.T, client *authsdk.Client) {
	t.Helper()
	ctx := context.Background()

	ready, err := client.GetReadiness(ctx)
	require.NoError(t, err)
	require.Equal(t, "ok", ready.Status)

	reg, err := client.Register(ctx, authsdk.RegisterRequest{Email: "alice@example.com", Password: "Secret123!"})
	require.NoError(t, err)
	require.NotEmpty(t, reg.Token)
	require.NotEmpty(t, reg.RefreshToken)

	_, err = client.Register(ctx, authsdk.RegisterRequest{Email: "ALICE@example.com", Password: "Secret123!"})
	var apiErr *authsdk.APIError
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, http.StatusBadRequest, apiErr.StatusCode)
	require.True(t, apiErr.Has("User with this email address already exists"))

	login, err := client.Login(ctx, authsdk.LoginRequest{Email: "alice@example.com", Password: "Secret123!"})
	require.NoError(t, err)

	// The access token is still live, so the ledger row must stay unused.
	_, err = client.Refresh(ctx, authsdk.RefreshRequest{Token: login.Token, RefreshToken: login.RefreshToken})
	require.ErrorAs(t, err, &apiErr)
	require.True(t, apiErr.Has("This token hasn't expired yet"))

	post, err := client.CreatePost(ctx, login.Token, authsdk.CreatePostRequest{Name: "hello"})
	require.NoError(t, err)
	require.Equal(t, "hello", post.Name)

	posts, err := client.ListPosts(ctx, reg.Token)
	require.NoError(t, err)
	require.Len(t, posts, 1)

	require.NoError(t, client.Revoke(ctx, login.RefreshToken))
	require.NoError(t, client.DeletePost(ctx, login.Token, post.ID))
}

func TestApplication_SQLiteLedger(t *testing.T) {
	exerciseAPI(t, startApp(t, testConfig(t)))
}

func TestApplication_RedisLedger(t *testing.T) {
	mr := miniredis.RunT(t)

	cfg := testConfig(t)
	cfg.LedgerBackend = LedgerRedis
	cfg.RedisAddr = mr.Addr()

	exerciseAPI(t, startApp(t, cfg))

	keys := mr.Keys()
	require.NotEmpty(t, keys, "refresh tokens live in redis")
}

func TestApplication_RedisUnavailable(t *testing.T) {
	mr := miniredis.RunT(t)
	addr := mr.Addr()
	mr.Close()

	cfg := testConfig(t)
	cfg.LedgerBackend = LedgerRedis
	cfg.RedisAddr = addr

	_, err := New(cfg)
	require.Error(t, err)
	require.Contains(t, err.Error(), "redis ledger")
}

func TestApplication_Shutdown(t *testing.T) {
	application, err := New(testConfig(t))
	require.NoError(t, err)

	done := make(chan error, 1)
	go func() { done <- application.server.ListenAndServe() }()

	require.NoError(t, application.Shutdown())
	select {
	case err := <-done:
		require.True(t, err == nil || errors.Is(err, http.ErrServerClosed), "unexpected error: %v", err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop")
	}
}
