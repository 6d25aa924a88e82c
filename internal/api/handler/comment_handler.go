package handler

import (
	"net/http"

	"github.com/KostiukVM/BlogAPI/internal/app/service"
	"github.com/KostiukVM/BlogAPI/internal/common"

	"github.com/go-chi/chi/v5"
)

type CommentHandler struct {
	commentService *service.CommentService
}

func NewCommentHandler(cs *service.CommentService) *CommentHandler {
	return &CommentHandler{commentService: cs}
}

// RegisterRoutes mounts the comment endpoints, all of which require a token.
func (h *CommentHandler) RegisterRoutes(r chi.Router, requireAuth func(http.Handler) http.Handler) {
	r.Group(func(authed chi.Router) {
		authed.Use(requireAuth)
		authed.Get("/", h.listComments) // GET /api/comments?post_id=
		authed.Get("/{commentID}", h.getComment)
		authed.Post("/", h.createComment)
		authed.Put("/{commentID}", h.updateComment)
		authed.Patch("/{commentID}", h.updateComment)
		authed.Delete("/{commentID}", h.deleteComment)
	})
}

func (h *CommentHandler) listComments(w http.ResponseWriter, r *http.Request) {
	comments, err := h.commentService.ListComments(r.Context(), r.URL.Query().Get("post_id"))
	if err != nil {
		common.RespondWithErr(w, r, err)
		return
	}
	respond(w, r, http.StatusOK, comments, presentComments)
}

func (h *CommentHandler) getComment(w http.ResponseWriter, r *http.Request) {
	comment, err := h.commentService.GetComment(r.Context(), chi.URLParam(r, "commentID"))
	if err != nil {
		common.RespondWithErr(w, r, err)
		return
	}
	respond(w, r, http.StatusOK, comment, presentComment)
}

func (h *CommentHandler) createComment(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	var req service.CreateCommentRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	comment, err := h.commentService.CreateComment(r.Context(), userID, req)
	if err != nil {
		common.RespondWithErr(w, r, err)
		return
	}
	respond(w, r, http.StatusCreated, comment, presentComment)
}

func (h *CommentHandler) updateComment(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	var req service.UpdateCommentRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	comment, err := h.commentService.UpdateComment(r.Context(), userID, chi.URLParam(r, "commentID"), req)
	if err != nil {
		common.RespondWithErr(w, r, err)
		return
	}
	respond(w, r, http.StatusOK, comment, presentComment)
}

func (h *CommentHandler) deleteComment(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	if err := h.commentService.DeleteComment(r.Context(), userID, chi.URLParam(r, "commentID")); err != nil {
		common.RespondWithErr(w, r, err)
		return
	}
	common.RespondWithMessage(w, http.StatusOK, "Comment deleted successfully.")
}
