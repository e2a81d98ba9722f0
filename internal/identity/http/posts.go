package http

import (
	"net/http"

	"github.com/aussiebroadwan/tweetbook/internal/identity/domain"
	"github.com/aussiebroadwan/tweetbook/internal/identity/service"
	"github.com/aussiebroadwan/tweetbook/pkg/authsdk"
	"github.com/aussiebroadwan/tweetbook/pkg/httpx"
)

// PostsHandler serves /api/v1/posts. Every route sits behind AuthnMiddleware.
type PostsHandler struct {
	PostService *service.PostService
}

// HandleList godoc
//
//	@Summary		List posts
//	@Tags			Posts
//	@Produce		json
//	@Security		BearerAuth
//	@Success		200	{array}		authsdk.PostResponse
//	@Failure		401	{object}	authsdk.AuthFailedResponse	"errors"
//	@Router			/api/v1/posts [get].
func (h *PostsHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	posts, err := h.PostService.List(r.Context())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	out := make([]authsdk.PostResponse, 0, len(posts))
	for _, p := range posts {
		out = append(out, toPostResponse(p))
	}
	httpx.WriteJSON(w, http.StatusOK, out)
}

// HandleGet godoc
//
//	@Summary		Get a post
//	@Tags			Posts
//	@Produce		json
//	@Security		BearerAuth
//	@Param			postId	path		string	true	"post id"
//	@Success		200		{object}	authsdk.PostResponse
//	@Failure		401		{object}	authsdk.AuthFailedResponse	"errors"
//	@Failure		404		{object}	authsdk.AuthFailedResponse	"errors"
//	@Router			/api/v1/posts/{postId} [get].
func (h *PostsHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	p, err := h.PostService.Get(r.Context(), r.PathValue("postId"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toPostResponse(p))
}

// HandleCreate godoc
//
//	@Summary		Create a post
//	@Tags			Posts
//	@Accept			json
//	@Produce		json
//	@Security		BearerAuth
//	@Param			request	body		authsdk.CreatePostRequest	true	"name"
//	@Success		201		{object}	authsdk.PostResponse
//	@Header			201		{string}	Location	"/api/v1/posts/{postId}"
//	@Failure		400		{object}	authsdk.AuthFailedResponse	"errors"
//	@Failure		401		{object}	authsdk.AuthFailedResponse	"errors"
//	@Router			/api/v1/posts [post].
func (h *PostsHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	userID, _ := httpx.UserIDFromContext(r.Context())

	var req authsdk.CreatePostRequest
	if !bindJSON(w, r, &req) {
		return
	}

	p, err := h.PostService.Create(r.Context(), userID, req.Name)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	w.Header().Set("Location", "/api/v1/posts/"+p.ID)
	httpx.WriteJSON(w, http.StatusCreated, toPostResponse(p))
}

// HandleUpdate godoc
//
//	@Summary		Rename a post
//	@Description	Only the author of a post may rename it.
//	@Tags			Posts
//	@Accept			json
//	@Produce		json
//	@Security		BearerAuth
//	@Param			postId	path		string						true	"post id"
//	@Param			request	body		authsdk.UpdatePostRequest	true	"name"
//	@Success		200		{object}	authsdk.PostResponse
//	@Failure		400		{object}	authsdk.AuthFailedResponse	"errors"
//	@Failure		401		{object}	authsdk.AuthFailedResponse	"errors"
//	@Failure		404		{object}	authsdk.AuthFailedResponse	"errors"
//	@Router			/api/v1/posts/{postId} [put].
func (h *PostsHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	userID, _ := httpx.UserIDFromContext(r.Context())

	var req authsdk.UpdatePostRequest
	if !bindJSON(w, r, &req) {
		return
	}

	p, err := h.PostService.Update(r.Context(), userID, r.PathValue("postId"), req.Name)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toPostResponse(p))
}

// HandleDelete godoc
//
//	@Summary		Delete a post
//	@Description	Only the author of a post may delete it.
//	@Tags			Posts
//	@Security		BearerAuth
//	@Param			postId	path	string	true	"post id"
//	@Success		204		"Deleted"
//	@Failure		400		{object}	authsdk.AuthFailedResponse	"errors"
//	@Failure		401		{object}	authsdk.AuthFailedResponse	"errors"
//	@Failure		404		{object}	authsdk.AuthFailedResponse	"errors"
//	@Router			/api/v1/posts/{postId} [delete].
func (h *PostsHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	userID, _ := httpx.UserIDFromContext(r.Context())

	if err := h.PostService.Delete(r.Context(), userID, r.PathValue("postId")); err != nil {
		writeServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func toPostResponse(p domain.Post) authsdk.PostResponse {
	return authsdk.PostResponse{
		ID:        p.ID,
		UserID:    p.UserID,
		Name:      p.Name,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}
