package activity

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubRecorder struct {
	err     error
	entries []Entry
}

func (r *stubRecorder) Record(_ context.Context, entry Entry) (int64, error) {
	if r.err != nil {
		return 0, r.err
	}
	r.entries = append(r.entries, entry)
	return int64(len(r.entries)), nil
}

func TestHookPassesEntriesThrough(t *testing.T) {
	recorder := &stubRecorder{}
	hook := NewHook(recorder, slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil)))

	hook.Record(context.Background(), UserEntry(7, ActionLogin, "User logged in", StatusSuccess))

	require.Len(t, recorder.entries, 1)
	assert.Equal(t, ActionLogin, recorder.entries[0].Action)
}

func TestHookSwallowsRecorderFailure(t *testing.T) {
	var buf bytes.Buffer
	recorder := &stubRecorder{err: errors.New("store unavailable")}
	hook := NewHook(recorder, slog.New(slog.NewTextHandler(&buf, nil)))

	// Must not panic and must not propagate the error; the only trace of the
	// failure is the log line.
	hook.Record(context.Background(), UserEntry(7, ActionLogin, "User logged in", StatusSuccess))

	assert.Contains(t, buf.String(), "activity entry dropped")
	assert.Contains(t, buf.String(), "store unavailable")
}
