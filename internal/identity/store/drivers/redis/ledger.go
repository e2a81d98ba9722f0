// Package redis stores the refresh token ledger in Redis. Each row is a hash
// keyed by the token fingerprint. State changes run as Lua scripts so the
// used flag flips at most once even with many API replicas.
package redis

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/aussiebroadwan/tweetbook/internal/identity/domain"
	"github.com/aussiebroadwan/tweetbook/internal/identity/store"
)

const DefaultKeyPrefix = "tweetbook:refresh:"

const scanBatch = 256

const (
	statusNotFound int64 = 0
	statusOK       int64 = 1
	statusConflict int64 = 2
)

const createScript = `
if redis.call("EXISTS", KEYS[1]) == 1 then
  return 2
end
redis.call("HSET", KEYS[1],
  "id", ARGV[1],
  "user_id", ARGV[2],
  "jwt_id", ARGV[3],
  "expires_at", ARGV[4],
  "used", "0",
  "invalidated", "0",
  "created_at", ARGV[5],
  "updated_at", ARGV[6])
return 1
`

const markUsedScript = `
local fields = redis.call("HMGET", KEYS[1], "id", "used")
if not fields[1] or fields[1] ~= ARGV[1] then
  return 0
end
if fields[2] == "1" then
  return 2
end
redis.call("HSET", KEYS[1], "used", "1", "updated_at", ARGV[2])
return 1
`

const invalidateScript = `
if redis.call("EXISTS", KEYS[1]) == 0 then
  return 0
end
redis.call("HSET", KEYS[1], "invalidated", "1", "updated_at", ARGV[1])
return 1
`

const invalidateExpiredScript = `
local fields = redis.call("HMGET", KEYS[1], "expires_at", "used", "invalidated")
if not fields[1] then
  return 0
end
if fields[2] == "1" or fields[3] == "1" then
  return 0
end
if tonumber(fields[1]) > tonumber(ARGV[1]) then
  return 0
end
redis.call("HSET", KEYS[1], "invalidated", "1", "updated_at", ARGV[1])
return 1
`

var (
	createLua            = goredis.NewScript(createScript)
	markUsedLua          = goredis.NewScript(markUsedScript)
	invalidateLua        = goredis.NewScript(invalidateScript)
	invalidateExpiredLua = goredis.NewScript(invalidateExpiredScript)
)

// Ledger implements store.RefreshTokens on top of a Redis client.
type Ledger struct {
	rdb    goredis.UniversalClient
	prefix string
	now    func() time.Time
}

var _ store.RefreshTokens = (*Ledger)(nil)

// NewLedger wraps rdb. An empty prefix falls back to DefaultKeyPrefix.
func NewLedger(rdb goredis.UniversalClient, prefix string) *Ledger {
	if prefix == "" {
		prefix = DefaultKeyPrefix
	}
	return &Ledger{rdb: rdb, prefix: prefix, now: time.Now}
}

func (l *Ledger) key(hash string) string { return l.prefix + hash }

// Ping checks the connection, used by readiness probes.
func (l *Ledger) Ping(ctx context.Context) error {
	return l.rdb.Ping(ctx).Err()
}

func (l *Ledger) CreateRefreshToken(ctx context.Context, t domain.RefreshToken) error {
	now := l.now().UTC()
	created, updated := t.CreatedAt, t.UpdatedAt
	if created.IsZero() {
		created = now
	}
	if updated.IsZero() {
		updated = created
	}

	code, err := createLua.Run(ctx, l.rdb, []string{l.key(t.TokenHash)},
		t.ID,
		t.UserID,
		t.JwtID,
		t.ExpiresAt.Unix(),
		created.Unix(),
		updated.Unix(),
	).Int64()
	if err != nil {
		return fmt.Errorf("redis: create refresh token: %w", err)
	}
	if code == statusConflict {
		return store.ErrAlreadyExists
	}
	return nil
}

func (l *Ledger) GetRefreshTokenByHash(ctx context.Context, hash string) (domain.RefreshToken, error) {
	fields, err := l.rdb.HGetAll(ctx, l.key(hash)).Result()
	if err != nil {
		if errors.Is(err, goredis.Nil) {
			return domain.RefreshToken{}, store.ErrNotFound
		}
		return domain.RefreshToken{}, fmt.Errorf("redis: get refresh token: %w", err)
	}
	if len(fields) == 0 {
		return domain.RefreshToken{}, store.ErrNotFound
	}
	return decodeToken(hash, fields)
}

func (l *Ledger) MarkRefreshTokenUsed(ctx context.Context, t domain.RefreshToken) error {
	code, err := markUsedLua.Run(ctx, l.rdb, []string{l.key(t.TokenHash)},
		t.ID,
		l.now().UTC().Unix(),
	).Int64()
	if err != nil {
		return fmt.Errorf("redis: mark refresh token used: %w", err)
	}
	switch code {
	case statusNotFound:
		return store.ErrNotFound
	case statusConflict:
		return store.ErrAlreadyUsed
	}
	return nil
}

func (l *Ledger) InvalidateRefreshToken(ctx context.Context, hash string) error {
	code, err := invalidateLua.Run(ctx, l.rdb, []string{l.key(hash)},
		l.now().UTC().Unix(),
	).Int64()
	if err != nil {
		return fmt.Errorf("redis: invalidate refresh token: %w", err)
	}
	if code == statusNotFound {
		return store.ErrNotFound
	}
	return nil
}

// InvalidateExpiredRefreshTokens walks the keyspace with SCAN. Each row is
// checked and flagged inside its own script call, so rows redeemed during
// the walk are left alone.
func (l *Ledger) InvalidateExpiredRefreshTokens(ctx context.Context, now time.Time) (int64, error) {
	var (
		cursor  uint64
		touched int64
	)
	for {
		keys, next, err := l.rdb.Scan(ctx, cursor, l.prefix+"*", scanBatch).Result()
		if err != nil {
			return touched, fmt.Errorf("redis: scan refresh tokens: %w", err)
		}
		for _, key := range keys {
			n, err := invalidateExpiredLua.Run(ctx, l.rdb, []string{key}, now.UTC().Unix()).Int64()
			if err != nil {
				return touched, fmt.Errorf("redis: invalidate expired refresh token: %w", err)
			}
			touched += n
		}
		cursor = next
		if cursor == 0 {
			return touched, nil
		}
	}
}

func decodeToken(hash string, f map[string]string) (domain.RefreshToken, error) {
	expiresAt, err := parseUnix(f["expires_at"])
	if err != nil {
		return domain.RefreshToken{}, fmt.Errorf("redis: refresh token %q expires_at: %w", hash, err)
	}
	createdAt, err := parseUnix(f["created_at"])
	if err != nil {
		return domain.RefreshToken{}, fmt.Errorf("redis: refresh token %q created_at: %w", hash, err)
	}
	updatedAt, err := parseUnix(f["updated_at"])
	if err != nil {
		return domain.RefreshToken{}, fmt.Errorf("redis: refresh token %q updated_at: %w", hash, err)
	}

	return domain.RefreshToken{
		ID:          f["id"],
		TokenHash:   hash,
		UserID:      f["user_id"],
		JwtID:       f["jwt_id"],
		ExpiresAt:   expiresAt,
		Used:        f["used"] == "1",
		Invalidated: f["invalidated"] == "1",
		CreatedAt:   createdAt,
		UpdatedAt:   updatedAt,
	}, nil
}

func parseUnix(s string) (time.Time, error) {
	sec, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return time.Time{}, err
	}
	return time.Unix(sec, 0).UTC(), nil
}

// Options configures the client returned by Dial.
type Options struct {
	Addr     string
	Password string
	DB       int
}

// Dial opens a client and checks it can reach the server.
func Dial(ctx context.Context, opts Options) (*goredis.Client, error) {
	rdb := goredis.NewClient(&goredis.Options{
		Addr:     opts.Addr,
		Password: opts.Password,
		DB:       opts.DB,
	})
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis: ping %s: %w", opts.Addr, err)
	}
	return rdb, nil
}
