package handler

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"lumina/internal/comments"
	dErrors "lumina/pkg/domain-errors"
	"lumina/pkg/platform/httputil"
	"lumina/pkg/requestcontext"
)

// Service is the comment surface the handler consumes.
type Service interface {
	Add(ctx context.Context, userID, photoID int64, text string) (comments.Comment, error)
	ListForPhoto(ctx context.Context, photoID int64, limit int) ([]comments.Comment, int64, error)
}

// Handler serves the comment endpoints.
type Handler struct {
	logger  *slog.Logger
	service Service
}

func New(service Service, logger *slog.Logger) *Handler {
	return &Handler{logger: logger, service: service}
}

// Register registers the routes requiring a user principal. RequireUser
// middleware is applied by the caller.
func (h *Handler) Register(r chi.Router) {
	r.Post("/photos/{photoID}/comments", h.handleAdd)
}

// RegisterPublic registers the read routes. Comment threads are visible
// without authentication.
func (h *Handler) RegisterPublic(r chi.Router) {
	r.Get("/photos/{photoID}/comments", h.handleList)
}

type addRequest struct {
	Text string `json:"text"`
}

func (h *Handler) handleAdd(w http.ResponseWriter, r *http.Request) {
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

	var req addRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return
	}

	comment, err := h.service.Add(ctx, userID, photoID, req.Text)
	if err != nil {
		if !dErrors.HasCode(err, dErrors.CodeNotFound) && !dErrors.HasCode(err, dErrors.CodeBadRequest) {
			h.logger.ErrorContext(ctx, "comment creation failed",
				"request_id", requestcontext.RequestID(ctx),
				"photo_id", photoID,
				"error", err.Error(),
			)
		}
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusCreated, comment)
}

type listResponse struct {
	Comments []comments.Comment `json:"comments"`
	Total    int64              `json:"total"`
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	photoID, err := strconv.ParseInt(chi.URLParam(r, "photoID"), 10, 64)
	if err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid photo id"))
		return
	}

	// Permissive: a malformed limit falls back to the default.
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	list, total, err := h.service.ListForPhoto(ctx, photoID, limit)
	if err != nil {
		h.logger.WarnContext(ctx, "comment listing degraded to empty",
			"request_id", requestcontext.RequestID(ctx),
			"photo_id", photoID,
			"error", err.Error(),
		)
		httputil.WriteJSON(w, http.StatusOK, listResponse{Comments: []comments.Comment{}})
		return
	}
	if list == nil {
		list = []comments.Comment{}
	}
	httputil.WriteJSON(w, http.StatusOK, listResponse{Comments: list, Total: total})
}
