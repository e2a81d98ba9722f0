package memory_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/aussiebroadwan/tweetbook/internal/identity/domain"
	"github.com/aussiebroadwan/tweetbook/internal/identity/store"
	"github.com/aussiebroadwan/tweetbook/internal/identity/store/drivers/memory"
	"github.com/aussiebroadwan/tweetbook/pkg/idx"
	"github.com/stretchr/testify/require"
)

func TestUsers(t *testing.T) {
	ctx := context.Background()
	st := memory.NewStore()

	u := domain.User{ID: idx.New().String(), Email: " Alice@Example.com", PasswordHash: "h"}
	require.NoError(t, st.Users().CreateUser(ctx, u))

	got, err := st.Users().GetUserByEmail(ctx, "alice@example.com")
	require.NoError(t, err)
	require.Equal(t, u.ID, got.ID)
	require.Equal(t, "alice@example.com", got.Email)

	err = st.Users().CreateUser(ctx, domain.User{ID: idx.New().String(), Email: "ALICE@example.com"})
	require.ErrorIs(t, err, store.ErrAlreadyExists)

	_, err = st.Users().GetUserByID(ctx, "missing")
	require.ErrorIs(t, err, store.ErrNotFound)
}

func TestRefreshTokens(t *testing.T) {
	ctx := context.Background()
	st := memory.NewStore()
	now := time.Now().UTC()

	rt := domain.RefreshToken{ID: idx.New().String(), TokenHash: "h1", UserID: "u", JwtID: "j", ExpiresAt: now.Add(time.Hour)}
	require.NoError(t, st.RefreshTokens().CreateRefreshToken(ctx, rt))
	require.ErrorIs(t, st.RefreshTokens().CreateRefreshToken(ctx, rt), store.ErrAlreadyExists)

	require.NoError(t, st.RefreshTokens().MarkRefreshTokenUsed(ctx, rt))
	require.ErrorIs(t, st.RefreshTokens().MarkRefreshTokenUsed(ctx, rt), store.ErrAlreadyUsed)

	expired := domain.RefreshToken{ID: idx.New().String(), TokenHash: "h2", ExpiresAt: now.Add(-time.Minute)}
	require.NoError(t, st.RefreshTokens().CreateRefreshToken(ctx, expired))

	n, err := st.RefreshTokens().InvalidateExpiredRefreshTokens(ctx, now)
	require.NoError(t, err)
	require.EqualValues(t, 1, n)

	got, err := st.RefreshTokens().GetRefreshTokenByHash(ctx, "h2")
	require.NoError(t, err)
	require.True(t, got.Invalidated)

	require.ErrorIs(t, st.RefreshTokens().InvalidateRefreshToken(ctx, "nope"), store.ErrNotFound)
}

func TestHonoursCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	st := memory.NewStore()
	_, err := st.RefreshTokens().GetRefreshTokenByHash(ctx, "h")
	require.ErrorIs(t, err, context.Canceled)
	require.ErrorIs(t, st.Ping(ctx), context.Canceled)
}

func TestPostsAndTx(t *testing.T) {
	ctx := context.Background()
	st := memory.NewStore()

	owner := domain.User{ID: idx.New().String(), Email: "o@example.com"}
	require.NoError(t, st.Users().CreateUser(ctx, owner))

	a := domain.Post{ID: idx.New().String(), UserID: owner.ID, Name: "a"}
	b := domain.Post{ID: idx.New().String(), UserID: owner.ID, Name: "b"}
	require.NoError(t, st.Posts().CreatePost(ctx, b))
	require.NoError(t, st.Posts().CreatePost(ctx, a))
	require.ErrorIs(t, st.Posts().CreatePost(ctx, domain.Post{ID: "x", UserID: "ghost"}), store.ErrNotFound)

	posts, err := st.Posts().ListPosts(ctx)
	require.NoError(t, err)
	require.Equal(t, []string{"a", "b"}, []string{posts[0].Name, posts[1].Name})

	boom := errors.New("boom")
	err = st.WithTx(ctx, func(tx store.Tx) error {
		require.NoError(t, tx.Posts().UpdatePostName(ctx, a.ID, "renamed"))
		return boom
	})
	require.ErrorIs(t, err, boom)

	require.NoError(t, st.Posts().DeletePost(ctx, b.ID))
	require.ErrorIs(t, st.Posts().DeletePost(ctx, b.ID), store.ErrNotFound)
}
