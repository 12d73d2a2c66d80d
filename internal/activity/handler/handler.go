package handler

import (
	"context"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"golang.org/x/sync/errgroup"

	"lumina/internal/activity"
	"lumina/pkg/platform/httputil"
	"lumina/pkg/requestcontext"
)

//go:generate mockgen -source=handler.go -destination=mocks/activity-mocks.go -package=mocks Service

// Service is the read surface of the activity log the admin listing consumes.
type Service interface {
	List(ctx context.Context, filter activity.Filter, limit, offset int) ([]activity.Entry, error)
	Count(ctx context.Context, filter activity.Filter) (int64, error)
}

// StatsProvider serves the dashboard aggregation.
type StatsProvider interface {
	Dashboard(ctx context.Context) ([]activity.ActionCount, error)
}

const topActionsLimit = 5

// Handler serves the operator-facing activity listing and dashboard summary.
// Both endpoints degrade to empty results when the store is unreachable - the
// listing view stays renderable no matter what.
type Handler struct {
	logger     *slog.Logger
	service    Service
	stats      StatsProvider
	pageSize   int
	windowDays int
}

// New creates the activity handler. pageSize is the fixed listing page size;
// windowDays is reported alongside the dashboard summary.
func New(service Service, stats StatsProvider, logger *slog.Logger, pageSize, windowDays int) *Handler {
	return &Handler{
		logger:     logger,
		service:    service,
		stats:      stats,
		pageSize:   pageSize,
		windowDays: windowDays,
	}
}

// Register registers the admin activity routes. Authentication middleware is
// applied by the caller.
func (h *Handler) Register(r chi.Router) {
	r.Get("/admin/logs", h.handleListLogs)
	r.Get("/admin/logs/stats", h.handleStats)
}

type entryResponse struct {
	ID          int64           `json:"id"`
	Actor       string          `json:"actor"`
	Action      string          `json:"action"`
	Description string          `json:"description"`
	Target      *targetResponse `json:"target"`
	Status      string          `json:"status"`
	IP          string          `json:"ip,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
}

type targetResponse struct {
	Type string `json:"type"`
	ID   int64  `json:"id"`
}

type listResponse struct {
	Entries    []entryResponse `json:"entries"`
	Total      int64           `json:"total"`
	Page       int             `json:"page"`
	TotalPages int             `json:"total_pages"`
	Pages      []int           `json:"pages"`
	HasPrev    bool            `json:"has_prev"`
	HasNext    bool            `json:"has_next"`
}

func (h *Handler) handleListLogs(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	query := r.URL.Query()

	filter := parseFilter(query)
	page := parsePage(query.Get("page"))
	offset := (page - 1) * h.pageSize

	entries, err := h.service.List(ctx, filter, h.pageSize, offset)
	if err != nil {
		h.logger.WarnContext(ctx, "activity listing degraded to empty",
			"request_id", requestcontext.RequestID(ctx),
			"error", err.Error(),
		)
		httputil.WriteJSON(w, http.StatusOK, emptyListResponse(page))
		return
	}

	total, err := h.service.Count(ctx, filter)
	if err != nil {
		h.logger.WarnContext(ctx, "activity count degraded to zero",
			"request_id", requestcontext.RequestID(ctx),
			"error", err.Error(),
		)
		total = 0
	}

	totalPages := int((total + int64(h.pageSize) - 1) / int64(h.pageSize))

	resp := listResponse{
		Entries:    make([]entryResponse, 0, len(entries)),
		Total:      total,
		Page:       page,
		TotalPages: totalPages,
		Pages:      pageWindow(page, totalPages),
		HasPrev:    page > 1,
		HasNext:    page < totalPages,
	}
	for _, e := range entries {
		resp.Entries = append(resp.Entries, toEntryResponse(e))
	}
	httputil.WriteJSON(w, http.StatusOK, resp)
}

type statsResponse struct {
	WindowDays   int                    `json:"window_days"`
	TotalEntries int64                  `json:"total_entries"`
	TopActions   []activity.ActionCount `json:"top_actions"`
}

func (h *Handler) handleStats(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var (
		counts []activity.ActionCount
		total  int64
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		counts, err = h.stats.Dashboard(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		total, err = h.service.Count(gctx, activity.Filter{})
		return err
	})
	if err := g.Wait(); err != nil {
		h.logger.WarnContext(ctx, "activity stats degraded to empty",
			"request_id", requestcontext.RequestID(ctx),
			"error", err.Error(),
		)
		httputil.WriteJSON(w, http.StatusOK, statsResponse{
			WindowDays: h.windowDays,
			TopActions: []activity.ActionCount{},
		})
		return
	}

	// Counts arrive sorted by count descending; the dashboard shows the top 5.
	if len(counts) > topActionsLimit {
		counts = counts[:topActionsLimit]
	}
	httputil.WriteJSON(w, http.StatusOK, statsResponse{
		WindowDays:   h.windowDays,
		TotalEntries: total,
		TopActions:   counts,
	})
}

// parseFilter builds the filter from query parameters. Parsing is permissive
// by design: blank values and malformed numbers mean "no constraint", never an
// error - the listing must stay renderable for any query string.
func parseFilter(query url.Values) activity.Filter {
	var filter activity.Filter

	if v := query.Get("action_type"); v != "" {
		action := activity.Action(v)
		filter.Action = &action
	}
	if v := query.Get("status"); v != "" {
		status := activity.Status(v)
		filter.Status = &status
	}
	if v := query.Get("user_id"); v != "" {
		if id, err := strconv.ParseInt(v, 10, 64); err == nil {
			filter.UserID = &id
		}
	}
	if v := query.Get("date_from"); v != "" {
		if t, err := time.Parse("2006-01-02", v); err == nil {
			from := activity.DayStart(t)
			filter.DateFrom = &from
		}
	}
	if v := query.Get("date_to"); v != "" {
		if t, err := time.Parse("2006-01-02", v); err == nil {
			to := activity.DayEnd(t)
			filter.DateTo = &to
		}
	}
	return filter
}

func parsePage(raw string) int {
	page, err := strconv.Atoi(raw)
	if err != nil || page < 1 {
		return 1
	}
	return page
}

// pageWindow returns the page numbers to render: current page plus or minus
// two, clamped to the valid range.
func pageWindow(page, totalPages int) []int {
	if totalPages < 1 {
		return []int{}
	}
	start := page - 2
	if start < 1 {
		start = 1
	}
	end := page + 2
	if end > totalPages {
		end = totalPages
	}
	// A page far past the last one pulls start beyond end; clamp it so the
	// window collapses to the last page instead of going negative.
	if start > end {
		start = end
	}
	window := make([]int, 0, end-start+1)
	for i := start; i <= end; i++ {
		window = append(window, i)
	}
	return window
}

func emptyListResponse(page int) listResponse {
	return listResponse{
		Entries: []entryResponse{},
		Page:    page,
		Pages:   []int{},
	}
}

func toEntryResponse(e activity.Entry) entryResponse {
	resp := entryResponse{
		ID:          e.ID,
		Actor:       e.ActorLabel(),
		Action:      string(e.Action),
		Description: e.Description,
		Status:      string(e.Status),
		IP:          e.IP,
		CreatedAt:   e.CreatedAt,
	}
	if e.TargetID != nil {
		resp.Target = &targetResponse{Type: e.TargetType, ID: *e.TargetID}
	}
	return resp
}
