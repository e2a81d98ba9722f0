// Package memory is an in-process Store used by tests and local runs. It
// honours the same contracts as the sqlite driver, including the
// compare-and-set on refresh tokens, but keeps nothing across restarts.
package memory

import (
	"context"
	"slices"
	"sync"
	"time"

	"github.com/aussiebroadwan/tweetbook/internal/identity/domain"
	"github.com/aussiebroadwan/tweetbook/internal/identity/store"
	"github.com/aussiebroadwan/tweetbook/pkg/idx"
)

type Store struct {
	mu sync.RWMutex

	// txMu serialises WithTx callers. There is no rollback.
	txMu sync.Mutex

	users         map[string]domain.User // by id
	emails        map[string]string      // normalized email -> id
	refreshTokens map[string]domain.RefreshToken
	posts         map[string]domain.Post
}

func NewStore() *Store {
	return &Store{
		users:         make(map[string]domain.User),
		emails:        make(map[string]string),
		refreshTokens: make(map[string]domain.RefreshToken),
		posts:         make(map[string]domain.Post),
	}
}

func (s *Store) ApplyMigrations() error             { return nil }
func (s *Store) Close() error                       { return nil }
func (s *Store) Ping(ctx context.Context) error     { return ctx.Err() }
func (s *Store) Users() store.Users                 { return usersRepo{s} }
func (s *Store) RefreshTokens() store.RefreshTokens { return refreshTokensRepo{s} }
func (s *Store) Posts() store.Posts                 { return postsRepo{s} }

func (s *Store) WithTx(ctx context.Context, fn func(tx store.Tx) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.txMu.Lock()
	defer s.txMu.Unlock()
	return fn(s)
}

type usersRepo struct{ s *Store }

func (r usersRepo) GetUserByID(ctx context.Context, id string) (domain.User, error) {
	if err := ctx.Err(); err != nil {
		return domain.User{}, err
	}
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	u, ok := r.s.users[id]
	if !ok {
		return domain.User{}, store.ErrNotFound
	}
	return u, nil
}

func (r usersRepo) GetUserByEmail(ctx context.Context, email string) (domain.User, error) {
	if err := ctx.Err(); err != nil {
		return domain.User{}, err
	}
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	id, ok := r.s.emails[domain.NormalizeEmail(email)]
	if !ok {
		return domain.User{}, store.ErrNotFound
	}
	return r.s.users[id], nil
}

func (r usersRepo) CreateUser(ctx context.Context, u domain.User) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	u.Email = domain.NormalizeEmail(u.Email)
	if _, taken := r.s.emails[u.Email]; taken {
		return store.ErrAlreadyExists
	}
	if _, taken := r.s.users[u.ID]; taken {
		return store.ErrAlreadyExists
	}
	r.s.users[u.ID] = u
	r.s.emails[u.Email] = u.ID
	return nil
}

type refreshTokensRepo struct{ s *Store }

func (r refreshTokensRepo) CreateRefreshToken(ctx context.Context, t domain.RefreshToken) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, taken := r.s.refreshTokens[t.TokenHash]; taken {
		return store.ErrAlreadyExists
	}
	r.s.refreshTokens[t.TokenHash] = t
	return nil
}

func (r refreshTokensRepo) GetRefreshTokenByHash(ctx context.Context, hash string) (domain.RefreshToken, error) {
	if err := ctx.Err(); err != nil {
		return domain.RefreshToken{}, err
	}
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	t, ok := r.s.refreshTokens[hash]
	if !ok {
		return domain.RefreshToken{}, store.ErrNotFound
	}
	return t, nil
}

func (r refreshTokensRepo) MarkRefreshTokenUsed(ctx context.Context, t domain.RefreshToken) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	cur, ok := r.s.refreshTokens[t.TokenHash]
	if !ok || cur.ID != t.ID {
		return store.ErrNotFound
	}
	if cur.Used {
		return store.ErrAlreadyUsed
	}
	cur.Used = true
	cur.UpdatedAt = time.Now().UTC()
	r.s.refreshTokens[t.TokenHash] = cur
	return nil
}

func (r refreshTokensRepo) InvalidateRefreshToken(ctx context.Context, hash string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	cur, ok := r.s.refreshTokens[hash]
	if !ok {
		return store.ErrNotFound
	}
	cur.Invalidated = true
	cur.UpdatedAt = time.Now().UTC()
	r.s.refreshTokens[hash] = cur
	return nil
}

func (r refreshTokensRepo) InvalidateExpiredRefreshTokens(ctx context.Context, now time.Time) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	var n int64
	for hash, t := range r.s.refreshTokens {
		if t.Used || t.Invalidated || !t.ExpiredAt(now) {
			continue
		}
		t.Invalidated = true
		t.UpdatedAt = now.UTC()
		r.s.refreshTokens[hash] = t
		n++
	}
	return n, nil
}

type postsRepo struct{ s *Store }

func (r postsRepo) ListPosts(ctx context.Context) ([]domain.Post, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	posts := make([]domain.Post, 0, len(r.s.posts))
	for _, p := range r.s.posts {
		posts = append(posts, p)
	}
	slices.SortFunc(posts, func(a, b domain.Post) int {
		return idx.Compare(idx.ID(a.ID), idx.ID(b.ID))
	})
	return posts, nil
}

func (r postsRepo) GetPostByID(ctx context.Context, id string) (domain.Post, error) {
	if err := ctx.Err(); err != nil {
		return domain.Post{}, err
	}
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	p, ok := r.s.posts[id]
	if !ok {
		return domain.Post{}, store.ErrNotFound
	}
	return p, nil
}

func (r postsRepo) CreatePost(ctx context.Context, p domain.Post) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.users[p.UserID]; !ok {
		return store.ErrNotFound
	}
	if _, taken := r.s.posts[p.ID]; taken {
		return store.ErrAlreadyExists
	}
	r.s.posts[p.ID] = p
	return nil
}

func (r postsRepo) UpdatePostName(ctx context.Context, id, name string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	p, ok := r.s.posts[id]
	if !ok {
		return store.ErrNotFound
	}
	p.Name = name
	p.UpdatedAt = time.Now().UTC()
	r.s.posts[id] = p
	return nil
}

func (r postsRepo) DeletePost(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.posts[id]; !ok {
		return store.ErrNotFound
	}
	delete(r.s.posts, id)
	return nil
}
