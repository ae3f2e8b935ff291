package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/viewly/viewly/internal/api/middleware"
	"github.com/viewly/viewly/internal/domain/model"
	"github.com/viewly/viewly/internal/usecase"
)

type CommentRequest struct {
	Body string `json:"body"`
}

type CommentResponse struct {
	ID        string `json:"id"`
	VideoID   string `json:"video_id"`
	AuthorID  string `json:"author_id"`
	Body      string `json:"body"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

// CommentHandler handles comment endpoints.
type CommentHandler struct {
	svc usecase.CommentService
}

// NewCommentHandler creates a new CommentHandler.
func NewCommentHandler(svc usecase.CommentService) *CommentHandler {
	return &CommentHandler{svc: svc}
}

// Create handles POST /v1/videos/{id}/comments
func (h *CommentHandler) Create(w http.ResponseWriter, r *http.Request) {
	accountID, ok := middleware.GetAccountID(r.Context())
	if !ok {
		Error(w, http.StatusUnauthorized, "unauthorized", "Missing session")
		return
	}

	videoID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		Error(w, http.StatusBadRequest, "invalid_video_id", "Video ID must be a valid UUID")
		return
	}

	var req CommentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		Error(w, http.StatusBadRequest, "invalid_request", "Invalid JSON body")
		return
	}

	comment, err := h.svc.Create(r.Context(), videoID, accountID, req.Body)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	JSON(w, http.StatusCreated, toCommentResponse(comment))
}

// List handles GET /v1/videos/{id}/comments
func (h *CommentHandler) List(w http.ResponseWriter, r *http.Request) {
	videoID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		Error(w, http.StatusBadRequest, "invalid_video_id", "Video ID must be a valid UUID")
		return
	}

	comments, err := h.svc.ListByVideo(r.Context(), videoID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	out := make([]CommentResponse, 0, len(comments))
	for _, comment := range comments {
		out = append(out, toCommentResponse(comment))
	}
	JSON(w, http.StatusOK, out)
}

// Edit handles PATCH /v1/comments/{id}
func (h *CommentHandler) Edit(w http.ResponseWriter, r *http.Request) {
	accountID, ok := middleware.GetAccountID(r.Context())
	if !ok {
		Error(w, http.StatusUnauthorized, "unauthorized", "Missing session")
		return
	}

	commentID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		Error(w, http.StatusBadRequest, "invalid_comment_id", "Comment ID must be a valid UUID")
		return
	}

	var req CommentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		Error(w, http.StatusBadRequest, "invalid_request", "Invalid JSON body")
		return
	}

	comment, err := h.svc.Edit(r.Context(), commentID, accountID, req.Body)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	JSON(w, http.StatusOK, toCommentResponse(comment))
}

// Delete handles DELETE /v1/comments/{id}
func (h *CommentHandler) Delete(w http.ResponseWriter, r *http.Request) {
	accountID, ok := middleware.GetAccountID(r.Context())
	if !ok {
		Error(w, http.StatusUnauthorized, "unauthorized", "Missing session")
		return
	}

	commentID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		Error(w, http.StatusBadRequest, "invalid_comment_id", "Comment ID must be a valid UUID")
		return
	}

	if err := h.svc.Delete(r.Context(), commentID, accountID); err != nil {
		writeServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func toCommentResponse(c *model.Comment) CommentResponse {
	return CommentResponse{
		ID:        c.ID.String(),
		VideoID:   c.VideoID.String(),
		AuthorID:  c.AuthorID.String(),
		Body:      c.Body,
		CreatedAt: c.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
		UpdatedAt: c.UpdatedAt.Format("2006-01-02T15:04:05Z07:00"),
	}
}
