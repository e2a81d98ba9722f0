package service

import (
	"context"
	"errors"
	"sync"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/aussiebroadwan/tweetbook/internal/identity/domain"
	"github.com/aussiebroadwan/tweetbook/internal/identity/store"
	"github.com/aussiebroadwan/tweetbook/pkg/cryptox"
	"github.com/aussiebroadwan/tweetbook/pkg/idx"
)

// MinPasswordLength is the shortest password accepted at registration.
const MinPasswordLength = 6

// Credentials is what IdentityService needs from the user store.
type Credentials interface {
	FindByEmail(ctx context.Context, email string) (domain.User, bool, error)
	FindByID(ctx context.Context, id string) (domain.User, bool, error)
	VerifyPassword(u domain.User, password string) bool
	CreateUser(ctx context.Context, email, password string) (domain.User, []string, error)
}

// CredentialStore implements Credentials on top of the users repository and
// an argon2id hasher.
type CredentialStore struct {
	Users  store.Users
	Hasher *cryptox.PasswordHasher
	Clock  func() time.Time

	dummyOnce sync.Once
	dummyHash string
}

var _ Credentials = (*CredentialStore)(nil)

// FindByEmail looks up a user by normalized email. A missing user is not an
// error.
func (c *CredentialStore) FindByEmail(ctx context.Context, email string) (domain.User, bool, error) {
	u, err := c.Users.GetUserByEmail(ctx, domain.NormalizeEmail(email))
	return found(u, err)
}

func (c *CredentialStore) FindByID(ctx context.Context, id string) (domain.User, bool, error) {
	u, err := c.Users.GetUserByID(ctx, id)
	return found(u, err)
}

func found(u domain.User, err error) (domain.User, bool, error) {
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.User{}, false, nil
		}
		return domain.User{}, false, err
	}
	return u, true, nil
}

// VerifyPassword reports whether password matches the user's hash. A user
// without a hash is checked against a throwaway hash so the cost is the same
// as for a real account.
func (c *CredentialStore) VerifyPassword(u domain.User, password string) bool {
	if u.PasswordHash == "" {
		_ = c.Hasher.Verify(password, c.dummy())
		return false
	}
	return c.Hasher.Verify(password, u.PasswordHash) == nil
}

func (c *CredentialStore) dummy() string {
	c.dummyOnce.Do(func() {
		c.dummyHash, _ = c.Hasher.Hash("not-a-real-password")
	})
	return c.dummyHash
}

// CreateUser applies the password policy, hashes the password and stores a
// new user. Policy violations come back as messages with a nil error; a
// taken email returns ErrDuplicateIdentity.
func (c *CredentialStore) CreateUser(ctx context.Context, email, password string) (domain.User, []string, error) {
	if msgs := CheckPasswordPolicy(password); len(msgs) > 0 {
		return domain.User{}, msgs, nil
	}

	hash, err := c.Hasher.Hash(password)
	if err != nil {
		return domain.User{}, nil, err
	}

	now := c.now()
	u := domain.User{
		ID:           idx.NewAt(now).String(),
		Email:        domain.NormalizeEmail(email),
		PasswordHash: hash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := c.Users.CreateUser(ctx, u); err != nil {
		if errors.Is(err, store.ErrAlreadyExists) {
			return domain.User{}, nil, ErrDuplicateIdentity
		}
		return domain.User{}, nil, err
	}
	return u, nil, nil
}

func (c *CredentialStore) now() time.Time {
	if c.Clock != nil {
		return c.Clock().UTC()
	}
	return time.Now().UTC()
}

// CheckPasswordPolicy returns one message per rule the password breaks, in a
// fixed order. An empty result means the password is acceptable.
func CheckPasswordPolicy(password string) []string {
	var hasOther, hasDigit, hasLower, hasUpper bool
	for _, r := range password {
		switch {
		case r >= '0' && r <= '9':
			hasDigit = true
		case r >= 'a' && r <= 'z':
			hasLower = true
		case r >= 'A' && r <= 'Z':
			hasUpper = true
		case !unicode.IsLetter(r) && !unicode.IsDigit(r):
			hasOther = true
		}
	}

	var msgs []string
	if utf8.RuneCountInString(password) < MinPasswordLength {
		msgs = append(msgs, "Passwords must be at least 6 characters.")
	}
	if !hasOther {
		msgs = append(msgs, "Passwords must have at least one non alphanumeric character.")
	}
	if !hasDigit {
		msgs = append(msgs, "Passwords must have at least one digit ('0'-'9').")
	}
	if !hasLower {
		msgs = append(msgs, "Passwords must have at least one lowercase ('a'-'z').")
	}
	if !hasUpper {
		msgs = append(msgs, "Passwords must have at least one uppercase ('A'-'Z').")
	}
	return msgs
}
