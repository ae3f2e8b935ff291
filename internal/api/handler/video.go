package handler

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/viewly/viewly/internal/api/middleware"
	"github.com/viewly/viewly/internal/domain/model"
	"github.com/viewly/viewly/internal/usecase"
)

type VideoResponse struct {
	ID           string   `json:"id"`
	OwnerID      string   `json:"owner_id"`
	Title        string   `json:"title"`
	Description  string   `json:"description"`
	Category     string   `json:"category"`
	Tags         []string `json:"tags"`
	VideoURL     string   `json:"video_url"`
	ThumbnailURL string   `json:"thumbnail_url"`
	CreatedAt    string   `json:"created_at"`
	UpdatedAt    string   `json:"updated_at"`
}

type EngagementResponse struct {
	Likes    int64 `json:"likes"`
	Dislikes int64 `json:"dislikes"`
	Views    int64 `json:"views"`
}

// VideoHandler handles video lifecycle and engagement endpoints.
type VideoHandler struct {
	content    usecase.ContentService
	engagement usecase.EngagementService
}

// NewVideoHandler creates a new VideoHandler.
func NewVideoHandler(content usecase.ContentService, engagement usecase.EngagementService) *VideoHandler {
	return &VideoHandler{content: content, engagement: engagement}
}

// Upload handles POST /v1/videos. The body is multipart form data with
// a video file, a thumbnail file, and the metadata fields.
func (h *VideoHandler) Upload(w http.ResponseWriter, r *http.Request) {
	accountID, ok := middleware.GetAccountID(r.Context())
	if !ok {
		Error(w, http.StatusUnauthorized, "unauthorized", "Missing session")
		return
	}

	if err := r.ParseMultipartForm(maxFormMemory); err != nil {
		Error(w, http.StatusBadRequest, "invalid_request", "Body must be multipart form data")
		return
	}

	input := usecase.UploadVideoInput{
		OwnerID:     accountID,
		Title:       r.FormValue("title"),
		Description: r.FormValue("description"),
		Category:    r.FormValue("category"),
		Tags:        model.ParseTags(r.FormValue("tags")),
	}

	media, mediaCleanup, err := formFileContent(r, "video")
	if err != nil {
		Error(w, http.StatusBadRequest, "invalid_video_file", "Video file could not be read")
		return
	}
	defer mediaCleanup()

	thumbnail, thumbCleanup, err := formFileContent(r, "thumbnail")
	if err != nil {
		Error(w, http.StatusBadRequest, "invalid_thumbnail_file", "Thumbnail file could not be read")
		return
	}
	defer thumbCleanup()

	if media != nil {
		input.Media = *media
	}
	if thumbnail != nil {
		input.Thumbnail = *thumbnail
	}

	video, err := h.content.Upload(r.Context(), input)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	JSON(w, http.StatusCreated, toVideoResponse(video))
}

// Get handles GET /v1/videos/{id}
func (h *VideoHandler) Get(w http.ResponseWriter, r *http.Request) {
	videoID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		Error(w, http.StatusBadRequest, "invalid_video_id", "Video ID must be a valid UUID")
		return
	}

	video, err := h.content.GetVideo(r.Context(), videoID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	JSON(w, http.StatusOK, toVideoResponse(video))
}

// List handles GET /v1/videos. Optional category or tag query
// parameters narrow the listing; category wins when both are present.
func (h *VideoHandler) List(w http.ResponseWriter, r *http.Request) {
	var (
		videos []*model.Video
		err    error
	)

	switch {
	case r.URL.Query().Get("category") != "":
		videos, err = h.content.ListByCategory(r.Context(), r.URL.Query().Get("category"))
	case r.URL.Query().Get("tag") != "":
		videos, err = h.content.ListByTag(r.Context(), r.URL.Query().Get("tag"))
	default:
		videos, err = h.content.ListVideos(r.Context())
	}
	if err != nil {
		writeServiceError(w, err)
		return
	}

	JSON(w, http.StatusOK, toVideoResponses(videos))
}

// MyVideos handles GET /v1/accounts/me/videos
func (h *VideoHandler) MyVideos(w http.ResponseWriter, r *http.Request) {
	accountID, ok := middleware.GetAccountID(r.Context())
	if !ok {
		Error(w, http.StatusUnauthorized, "unauthorized", "Missing session")
		return
	}

	videos, err := h.content.ListByOwner(r.Context(), accountID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	JSON(w, http.StatusOK, toVideoResponses(videos))
}

// Update handles PATCH /v1/videos/{id}. Multipart form data; absent
// fields keep their stored values, an attached thumbnail replaces the
// current one.
func (h *VideoHandler) Update(w http.ResponseWriter, r *http.Request) {
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

	if err := r.ParseMultipartForm(maxFormMemory); err != nil {
		Error(w, http.StatusBadRequest, "invalid_request", "Body must be multipart form data")
		return
	}

	input := usecase.UpdateVideoInput{
		Title:       optionalFormValue(r, "title"),
		Description: optionalFormValue(r, "description"),
		Category:    optionalFormValue(r, "category"),
	}
	if raw := optionalFormValue(r, "tags"); raw != nil {
		input.Tags = model.ParseTags(*raw)
	}

	thumbnail, cleanup, err := formFileContent(r, "thumbnail")
	if err != nil {
		Error(w, http.StatusBadRequest, "invalid_thumbnail_file", "Thumbnail file could not be read")
		return
	}
	defer cleanup()
	input.Thumbnail = thumbnail

	video, err := h.content.Update(r.Context(), videoID, accountID, input)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	JSON(w, http.StatusOK, toVideoResponse(video))
}

// Delete handles DELETE /v1/videos/{id}
func (h *VideoHandler) Delete(w http.ResponseWriter, r *http.Request) {
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

	if err := h.content.Delete(r.Context(), videoID, accountID); err != nil {
		writeServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Like handles POST /v1/videos/{id}/like
func (h *VideoHandler) Like(w http.ResponseWriter, r *http.Request) {
	h.react(w, r, h.engagement.Like)
}

// Dislike handles POST /v1/videos/{id}/dislike
func (h *VideoHandler) Dislike(w http.ResponseWriter, r *http.Request) {
	h.react(w, r, h.engagement.Dislike)
}

// View handles POST /v1/videos/{id}/view
func (h *VideoHandler) View(w http.ResponseWriter, r *http.Request) {
	h.react(w, r, h.engagement.RecordView)
}

// Engagement handles GET /v1/videos/{id}/engagement
func (h *VideoHandler) Engagement(w http.ResponseWriter, r *http.Request) {
	videoID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		Error(w, http.StatusBadRequest, "invalid_video_id", "Video ID must be a valid UUID")
		return
	}

	counts, err := h.engagement.Counts(r.Context(), videoID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	JSON(w, http.StatusOK, EngagementResponse{
		Likes:    counts.Likes,
		Dislikes: counts.Dislikes,
		Views:    counts.Views,
	})
}

type engagementOp func(ctx context.Context, videoID, accountID uuid.UUID) error

func (h *VideoHandler) react(w http.ResponseWriter, r *http.Request, op engagementOp) {
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

	if err := op(r.Context(), videoID, accountID); err != nil {
		writeServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func toVideoResponse(v *model.Video) VideoResponse {
	tags := v.Tags
	if tags == nil {
		tags = []string{}
	}
	return VideoResponse{
		ID:           v.ID.String(),
		OwnerID:      v.OwnerID.String(),
		Title:        v.Title,
		Description:  v.Description,
		Category:     v.Category,
		Tags:         tags,
		VideoURL:     v.Media.URL,
		ThumbnailURL: v.Thumbnail.URL,
		CreatedAt:    v.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
		UpdatedAt:    v.UpdatedAt.Format("2006-01-02T15:04:05Z07:00"),
	}
}

func toVideoResponses(videos []*model.Video) []VideoResponse {
	out := make([]VideoResponse, 0, len(videos))
	for _, v := range videos {
		out = append(out, toVideoResponse(v))
	}
	return out
}
