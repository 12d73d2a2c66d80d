package handler

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"lumina/internal/photos"
	dErrors "lumina/pkg/domain-errors"
	"lumina/pkg/platform/httputil"
	"lumina/pkg/requestcontext"
)

// Service is the photo management surface the handler consumes.
type Service interface {
	Upload(ctx context.Context, userID int64, title, filePath string) (photos.Photo, error)
	DeleteOwn(ctx context.Context, userID, photoID int64) error
	AdminDelete(ctx context.Context, adminID, photoID int64) error
}

// Handler serves photo metadata endpoints. The file itself is stored by an
// external component before these are called.
type Handler struct {
	logger  *slog.Logger
	service Service
}

func New(service Service, logger *slog.Logger) *Handler {
	return &Handler{logger: logger, service: service}
}

// RegisterUser registers the user-facing photo routes. RequireUser middleware
// is applied by the caller.
func (h *Handler) RegisterUser(r chi.Router) {
	r.Post("/photos", h.handleUpload)
	r.Delete("/photos/{photoID}", h.handleDelete)
}

// RegisterAdmin registers the moderation route. RequireAdmin middleware is
// applied by the caller.
func (h *Handler) RegisterAdmin(r chi.Router) {
	r.Delete("/admin/photos/{photoID}", h.handleAdminDelete)
}

type uploadRequest struct {
	Title    string `json:"title"`
	FilePath string `json:"file_path"`
}

func (h *Handler) handleUpload(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID, ok := requestcontext.UserID(ctx)
	if !ok {
		httputil.WriteError(w, dErrors.New(dErrors.CodeUnauthorized, "authentication required"))
		return
	}

	var req uploadRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return
	}

	photo, err := h.service.Upload(ctx, userID, req.Title, req.FilePath)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, photo)
}

func (h *Handler) handleDelete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID, ok := requestcontext.UserID(ctx)
	if !ok {
		httputil.WriteError(w, dErrors.New(dErrors.CodeUnauthorized, "authentication required"))
		return
	}

	photoID, err := strconv.ParseInt(chi.URLParam(r, "photoID"), 10, 64)
	if err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid photo id"))
		return
	}

	if err := h.service.DeleteOwn(ctx, userID, photoID); err != nil {
		httputil.WriteError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) handleAdminDelete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	adminID, ok := requestcontext.AdminID(ctx)
	if !ok {
		httputil.WriteError(w, dErrors.New(dErrors.CodeUnauthorized, "admin authentication required"))
		return
	}

	photoID, err := strconv.ParseInt(chi.URLParam(r, "photoID"), 10, 64)
	if err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid photo id"))
		return
	}

	if err := h.service.AdminDelete(ctx, adminID, photoID); err != nil {
		httputil.WriteError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
