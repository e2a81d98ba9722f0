package store

import (
	"context"
	"errors"
	"time"

	"github.com/aussiebroadwan/tweetbook/internal/identity/domain"
)

var (
	ErrNotFound      = errors.New("store: not found")
	ErrAlreadyExists = errors.New("store: already exists")

	// ErrAlreadyUsed is returned when marking a refresh token used loses the
	// compare-and-set because the row was already consumed.
	ErrAlreadyUsed = errors.New("store: refresh token already used")
)

// Repos are the sub-repositories shared by a Store and its transactions.
type Repos interface {
	Users() Users
	RefreshTokens() RefreshTokens
	Posts() Posts
}

// Store is the root data access interface. Concrete drivers (sqlite, memory)
// implement this. Keeping the sub-repos behind methods stops people from
// accidentally starting transactions within transactions.
type Store interface {
	Repos

	ApplyMigrations() error

	// WithTx executes fn within a transaction. If fn returns an error the
	// transaction is rolled back, otherwise it is committed.
	WithTx(ctx context.Context, fn func(tx Tx) error) error

	// Close releases any underlying resources.
	Close() error

	// Ping verifies the database connection is still alive.
	Ping(ctx context.Context) error
}

// Tx is a transaction-scoped view of the repositories.
type Tx interface {
	Repos
}

type Users interface {
	// GetUserByID returns a user by id.
	GetUserByID(ctx context.Context, id string) (domain.User, error)

	// GetUserByEmail looks a user up by normalized email.
	GetUserByEmail(ctx context.Context, email string) (domain.User, error)

	// CreateUser inserts a new user. A taken email yields ErrAlreadyExists.
	CreateUser(ctx context.Context, u domain.User) error
}

// RefreshTokens is the refresh token ledger. Rows are never deleted.
type RefreshTokens interface {
	// CreateRefreshToken stores a new ledger row.
	CreateRefreshToken(ctx context.Context, t domain.RefreshToken) error

	// GetRefreshTokenByHash returns the row for a token fingerprint.
	GetRefreshTokenByHash(ctx context.Context, hash string) (domain.RefreshToken, error)

	// MarkRefreshTokenUsed flips used from false to true atomically for the
	// given row. Returns ErrAlreadyUsed if another caller got there first.
	MarkRefreshTokenUsed(ctx context.Context, t domain.RefreshToken) error

	// InvalidateRefreshToken sets the invalidated flag on the row with hash.
	InvalidateRefreshToken(ctx context.Context, hash string) error

	// InvalidateExpiredRefreshTokens flags every row expired at now that is
	// neither used nor invalidated, returning how many were touched.
	InvalidateExpiredRefreshTokens(ctx context.Context, now time.Time) (int64, error)
}

type Posts interface {
	// ListPosts returns every post, oldest first.
	ListPosts(ctx context.Context) ([]domain.Post, error)

	GetPostByID(ctx context.Context, id string) (domain.Post, error)

	CreatePost(ctx context.Context, p domain.Post) error

	// UpdatePostName renames a post and bumps updated_at.
	UpdatePostName(ctx context.Context, id, name string) error

	DeletePost(ctx context.Context, id string) error
}
