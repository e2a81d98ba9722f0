package authsdk

import (
	"context"
	"net/http"
	"net/url"
)

// ListPosts returns every post.
func (c *Client) ListPosts(ctx context.Context, token string) ([]PostResponse, error) {
	resp, err := c.doRequest(ctx, http.MethodGet, "/api/v1/posts", token, nil)
	if err != nil {
		return nil, err
	}

	var posts []PostResponse
	if err := decodeJSON(resp, &posts, http.StatusOK); err != nil {
		return nil, err
	}
	return posts, nil
}

func (c *Client) GetPost(ctx context.Context, token, id string) (*PostResponse, error) {
	resp, err := c.doRequest(ctx, http.MethodGet, postPath(id), token, nil)
	if err != nil {
		return nil, err
	}

	var post PostResponse
	if err := decodeJSON(resp, &post, http.StatusOK); err != nil {
		return nil, err
	}
	return &post, nil
}

// CreatePost creates a post owned by the token's user.
func (c *Client) CreatePost(ctx context.Context, token string, req CreatePostRequest) (*PostResponse, error) {
	resp, err := c.doRequest(ctx, http.MethodPost, "/api/v1/posts", token, req)
	if err != nil {
		return nil, err
	}

	var post PostResponse
	if err := decodeJSON(resp, &post, http.StatusCreated); err != nil {
		return nil, err
	}
	return &post, nil
}

// UpdatePost renames a post. Only the owner may do this.
func (c *Client) UpdatePost(ctx context.Context, token, id string, req UpdatePostRequest) (*PostResponse, error) {
	resp, err := c.doRequest(ctx, http.MethodPut, postPath(id), token, req)
	if err != nil {
		return nil, err
	}

	var post PostResponse
	if err := decodeJSON(resp, &post, http.StatusOK); err != nil {
		return nil, err
	}
	return &post, nil
}

// DeletePost deletes a post. Only the owner may do this.
func (c *Client) DeletePost(ctx context.Context, token, id string) error {
	resp, err := c.doRequest(ctx, http.MethodDelete, postPath(id), token, nil)
	if err != nil {
		return err
	}
	return checkStatusNoContent(resp)
}

func postPath(id string) string {
	return "/api/v1/posts/" + url.PathEscape(id)
}
