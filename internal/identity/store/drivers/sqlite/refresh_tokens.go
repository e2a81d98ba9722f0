package sqlite

import (
	"context"
	"time"

	"github.com/aussiebroadwan/tweetbook/internal/identity/domain"
	"github.com/aussiebroadwan/tweetbook/internal/identity/store"
)

type refreshTokensRepo struct {
	db dbtx
}

const refreshTokenColumns = `id, token_hash, user_id, jwt_id, expires_at, used, invalidated, created_at, updated_at`

func (r *refreshTokensRepo) CreateRefreshToken(ctx context.Context, t domain.RefreshToken) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO refresh_tokens (`+refreshTokenColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		t.ID,
		t.TokenHash,
		t.UserID,
		t.JwtID,
		toUnix(t.ExpiresAt),
		boolToInt(t.Used),
		boolToInt(t.Invalidated),
		toUnix(t.CreatedAt),
		toUnix(t.UpdatedAt),
	)
	return mapConstraint(err)
}

func (r *refreshTokensRepo) GetRefreshTokenByHash(
	ctx context.Context,
	hash string,
) (domain.RefreshToken, error) {
	var (
		t                               domain.RefreshToken
		expiresAt, createdAt, updatedAt int64
	)
	err := r.db.QueryRowContext(ctx,
		`SELECT `+refreshTokenColumns+` FROM refresh_tokens WHERE token_hash = ?`, hash,
	).Scan(
		&t.ID,
		&t.TokenHash,
		&t.UserID,
		&t.JwtID,
		&expiresAt,
		&t.Used,
		&t.Invalidated,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return domain.RefreshToken{}, mapNotFound(err)
	}

	t.ExpiresAt = fromUnix(expiresAt)
	t.CreatedAt = fromUnix(createdAt)
	t.UpdatedAt = fromUnix(updatedAt)
	return t, nil
}

// MarkRefreshTokenUsed is a single conditional UPDATE, so of two racing
// callers only one sees a row affected.
func (r *refreshTokensRepo) MarkRefreshTokenUsed(ctx context.Context, t domain.RefreshToken) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE refresh_tokens SET used = 1, updated_at = ? WHERE id = ? AND used = 0`,
		toUnix(time.Now()), t.ID,
	)
	if err != nil {
		return err
	}

	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 1 {
		return nil
	}

	var exists int
	err = r.db.QueryRowContext(ctx, `SELECT 1 FROM refresh_tokens WHERE id = ?`, t.ID).Scan(&exists)
	if err != nil {
		return mapNotFound(err)
	}
	return store.ErrAlreadyUsed
}

func (r *refreshTokensRepo) InvalidateRefreshToken(ctx context.Context, hash string) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE refresh_tokens SET invalidated = 1, updated_at = ? WHERE token_hash = ?`,
		toUnix(time.Now()), hash,
	)
	if err != nil {
		return err
	}

	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return store.ErrNotFound
	}
	return nil
}

func (r *refreshTokensRepo) InvalidateExpiredRefreshTokens(ctx context.Context, now time.Time) (int64, error) {
	res, err := r.db.ExecContext(ctx,
		`UPDATE refresh_tokens SET invalidated = 1, updated_at = ?
		 WHERE expires_at <= ? AND used = 0 AND invalidated = 0`,
		toUnix(now), toUnix(now),
	)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
