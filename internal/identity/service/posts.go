package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/aussiebroadwan/tweetbook/internal/identity/domain"
	"github.com/aussiebroadwan/tweetbook/internal/identity/store"
	"github.com/aussiebroadwan/tweetbook/pkg/idx"
)

// PostService manages posts. Only the author may rename or delete a post.
type PostService struct {
	Store store.Store
	Clock func() time.Time
}

func (s *PostService) now() time.Time {
	if s.Clock != nil {
		return s.Clock().UTC()
	}
	return time.Now().UTC()
}

func (s *PostService) List(ctx context.Context) ([]domain.Post, error) {
	posts, err := s.Store.Posts().ListPosts(ctx)
	if err != nil {
		return nil, transient("list posts", err)
	}
	return posts, nil
}

func (s *PostService) Get(ctx context.Context, id string) (domain.Post, error) {
	p, err := s.Store.Posts().GetPostByID(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.Post{}, ErrPostNotFound
		}
		return domain.Post{}, transient("get post", err)
	}
	return p, nil
}

// Create stores a new post owned by userID.
func (s *PostService) Create(ctx context.Context, userID, name string) (domain.Post, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return domain.Post{}, ErrInvalidPostName
	}

	now := s.now()
	p := domain.Post{
		ID:        idx.NewAt(now).String(),
		UserID:    userID,
		Name:      name,
		CreatedAt: now,
		UpdatedAt: now,
	}

	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		if _, err := tx.Users().GetUserByID(ctx, userID); err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return ErrUnknownUser
			}
			return transient("get user", err)
		}
		if err := tx.Posts().CreatePost(ctx, p); err != nil {
			return transient("create post", err)
		}
		return nil
	})
	if err != nil {
		return domain.Post{}, txFailure("create post", err)
	}
	return p, nil
}

// Update renames a post. The ownership check and the write share a
// transaction.
func (s *PostService) Update(ctx context.Context, userID, postID, name string) (domain.Post, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return domain.Post{}, ErrInvalidPostName
	}

	var updated domain.Post
	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		p, err := owned(ctx, tx, userID, postID)
		if err != nil {
			return err
		}
		if err := tx.Posts().UpdatePostName(ctx, p.ID, name); err != nil {
			return transient("update post", err)
		}
		updated, err = tx.Posts().GetPostByID(ctx, p.ID)
		if err != nil {
			return transient("get post", err)
		}
		return nil
	})
	if err != nil {
		return domain.Post{}, txFailure("update post", err)
	}
	return updated, nil
}

// Delete removes a post owned by userID.
func (s *PostService) Delete(ctx context.Context, userID, postID string) error {
	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		if _, err := owned(ctx, tx, userID, postID); err != nil {
			return err
		}
		if err := tx.Posts().DeletePost(ctx, postID); err != nil {
			return transient("delete post", err)
		}
		return nil
	})
	return txFailure("delete post", err)
}

// txFailure passes through errors raised inside the transaction and marks
// the rest (begin, commit) as transient.
func txFailure(op string, err error) error {
	switch {
	case err == nil,
		errors.Is(err, ErrTransientStoreFailure),
		errors.Is(err, ErrPostNotFound),
		errors.Is(err, ErrNotOwner),
		errors.Is(err, ErrUnknownUser):
		return err
	}
	return transient(op, err)
}

func owned(ctx context.Context, tx store.Tx, userID, postID string) (domain.Post, error) {
	p, err := tx.Posts().GetPostByID(ctx, postID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.Post{}, ErrPostNotFound
		}
		return domain.Post{}, transient("get post", err)
	}
	if p.UserID != userID {
		return domain.Post{}, ErrNotOwner
	}
	return p, nil
}
