package handler

import (
	"net/http"

	"github.com/KostiukVM/BlogAPI/internal/app/service"
	"github.com/KostiukVM/BlogAPI/internal/common"

	"github.com/go-chi/chi/v5"
)

type PostHandler struct {
	postService    *service.PostService
	commentService *service.CommentService
}

func NewPostHandler(ps *service.PostService, cs *service.CommentService) *PostHandler {
	return &PostHandler{postService: ps, commentService: cs}
}

func (h *PostHandler) RegisterRoutes(r chi.Router, requireAuth func(http.Handler) http.Handler) {
	r.Get("/", h.listPosts)                         // GET /api/posts
	r.Get("/user/{userID}", h.listUserPosts)        // GET /api/posts/user/{id}
	r.Get("/{postID}", h.getPost)                   // GET /api/posts/{id}
	r.Get("/{postID}/comments", h.listPostComments) // GET /api/posts/{id}/comments

	r.Group(func(authed chi.Router) {
		authed.Use(requireAuth)
		authed.Get("/user", h.listMyPosts)
		authed.Post("/", h.createPost)
		authed.Put("/{postID}", h.updatePost)
		authed.Patch("/{postID}", h.updatePost)
		authed.Delete("/{postID}", h.deletePost)
	})
}

func (h *PostHandler) listPosts(w http.ResponseWriter, r *http.Request) {
	posts, err := h.postService.ListPosts(r.Context())
	if err != nil {
		common.RespondWithErr(w, r, err)
		return
	}
	respond(w, r, http.StatusOK, posts, presentPosts)
}

func (h *PostHandler) getPost(w http.ResponseWriter, r *http.Request) {
	post, err := h.postService.GetPost(r.Context(), chi.URLParam(r, "postID"))
	if err != nil {
		common.RespondWithErr(w, r, err)
		return
	}
	respond(w, r, http.StatusOK, post, presentPostWithComments)
}

func (h *PostHandler) listPostComments(w http.ResponseWriter, r *http.Request) {
	comments, err := h.commentService.ListPostComments(r.Context(), chi.URLParam(r, "postID"))
	if err != nil {
		common.RespondWithErr(w, r, err)
		return
	}
	respond(w, r, http.StatusOK, comments, presentComments)
}

func (h *PostHandler) createPost(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	var req service.CreatePostRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	post, err := h.postService.CreatePost(r.Context(), userID, req)
	if err != nil {
		common.RespondWithErr(w, r, err)
		return
	}
	respond(w, r, http.StatusCreated, post, presentPost)
}

func (h *PostHandler) updatePost(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	var req service.UpdatePostRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	post, err := h.postService.UpdatePost(r.Context(), userID, chi.URLParam(r, "postID"), req)
	if err != nil {
		common.RespondWithErr(w, r, err)
		return
	}
	respond(w, r, http.StatusOK, post, presentPost)
}

func (h *PostHandler) deletePost(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	if err := h.postService.DeletePost(r.Context(), userID, chi.URLParam(r, "postID")); err != nil {
		common.RespondWithErr(w, r, err)
		return
	}
	common.RespondWithMessage(w, http.StatusOK, "Post deleted successfully.")
}

func (h *PostHandler) listUserPosts(w http.ResponseWriter, r *http.Request) {
	h.writeUserPosts(w, r, chi.URLParam(r, "userID"))
}

func (h *PostHandler) listMyPosts(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}
	h.writeUserPosts(w, r, userID)
}

func (h *PostHandler) writeUserPosts(w http.ResponseWriter, r *http.Request, userID string) {
	posts, err := h.postService.ListUserPosts(r.Context(), userID)
	if err != nil {
		common.RespondWithErr(w, r, err)
		return
	}
	respond(w, r, http.StatusOK, posts, presentPostsWithComments)
}
