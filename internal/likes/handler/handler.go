package handler

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"lumina/internal/likes"
	dErrors "lumina/pkg/domain-errors"
	"lumina/pkg/platform/httputil"
	"lumina/pkg/requestcontext"
)

// Service is the toggle surface the handler consumes.
type Service interface {
	Toggle(ctx context.Context, userID, photoID int64) (likes.ToggleResult, error)
}

// Handler serves the like toggle endpoint.
type Handler struct {
	logger  *slog.Logger
	service Service
}

func New(service Service, logger *slog.Logger) *Handler {
	return &Handler{logger: logger, service: service}
}

// Register registers the like routes. RequireUser middleware is applied by
// the caller.
func (h *Handler) Register(r chi.Router) {
	r.Post("/photos/{photoID}/like", h.handleToggle)
}

func (h *Handler) handleToggle(w http.ResponseWriter, r *http.Request) {
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

	result, err := h.service.Toggle(ctx, userID, photoID)
	if err != nil {
		if !dErrors.HasCode(err, dErrors.CodeNotFound) {
			h.logger.ErrorContext(ctx, "like toggle failed",
				"request_id", requestcontext.RequestID(ctx),
				"photo_id", photoID,
				"error", err.Error(),
			)
		}
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, result)
}
