// Package remote syncs door state to the remote document store.
// All calls are best-effort from the daemon's point of view: failures are
// logged by callers and never crash the edge-handling path.
package remote

import (
	"context"

	"github.com/sourceclub/door-monitor/internal/state"
)

// Store is the remote document store the daemon reconciles with.
type Store interface {
	// UpsertStatus overwrites the current-status document.
	UpsertStatus(ctx context.Context, st state.CurrentStatus) error

	// UpsertDay overwrites the aggregate document keyed by agg.Date.
	// The full aggregate is sent as one write; re-sending the same date
	// is harmless.
	UpsertDay(ctx context.Context, agg state.DayAggregate) error

	// DayExists reports whether an aggregate document for the given
	// yyyy-mm-dd date already exists.
	DayExists(ctx context.Context, date string) (bool, error)
}
