package handler

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"lumina/internal/admins"
	dErrors "lumina/pkg/domain-errors"
	"lumina/pkg/platform/httputil"
)

// Service is the admin credential surface the handler consumes.
type Service interface {
	Login(ctx context.Context, username, password string) (admins.Admin, string, error)
}

// Handler serves the admin login endpoint.
type Handler struct {
	logger  *slog.Logger
	service Service
}

func New(service Service, logger *slog.Logger) *Handler {
	return &Handler{logger: logger, service: service}
}

// Register registers the public admin auth route.
func (h *Handler) Register(r chi.Router) {
	r.Post("/admin/login", h.handleLogin)
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type adminResponse struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
}

type loginResponse struct {
	Token string        `json:"token"`
	Admin adminResponse `json:"admin"`
}

func (h *Handler) handleLogin(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return
	}

	admin, accessToken, err := h.service.Login(ctx, req.Username, req.Password)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, loginResponse{
		Token: accessToken,
		Admin: adminResponse{ID: admin.ID, Username: admin.Username},
	})
}
