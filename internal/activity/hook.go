package activity

import (
	"context"
	"log/slog"

	"lumina/pkg/requestcontext"
)

// Recorder is the write surface consumed by primary-action components.
// Satisfied by *Service.
type Recorder interface {
	Record(ctx context.Context, entry Entry) (int64, error)
}

// Hook is the failure-isolated recording boundary. Primary actions call it
// after their own effect; whatever happens to the underlying write, the
// caller's control flow is untouched. Failures go to the structured log - a
// channel deliberately separate from the activity stream, so a failure to
// record can never recurse.
type Hook struct {
	recorder Recorder
	logger   *slog.Logger
}

func NewHook(recorder Recorder, logger *slog.Logger) *Hook {
	return &Hook{recorder: recorder, logger: logger}
}

// Record appends an entry, swallowing any error after reporting it.
func (h *Hook) Record(ctx context.Context, entry Entry) {
	if _, err := h.recorder.Record(ctx, entry); err != nil {
		h.logger.ErrorContext(ctx, "activity entry dropped",
			"request_id", requestcontext.RequestID(ctx),
			"action", string(entry.Action),
			"error", err.Error(),
		)
	}
}
