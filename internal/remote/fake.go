package remote

import (
	"context"
	"sync"

	"github.com/sourceclub/door-monitor/internal/state"
)

// FakeStore records remote calls for test assertions.
type FakeStore struct {
	mu sync.Mutex

	// StatusUpserts contains every status document written, in order.
	StatusUpserts []state.CurrentStatus

	// DayUpserts contains every day aggregate written, in order.
	DayUpserts []state.DayAggregate

	// ExistingDays seeds DayExists responses for dates that were flushed
	// before the test started.
	ExistingDays map[string]bool

	// ExistsChecks records the dates passed to DayExists.
	ExistsChecks []string

	// Scripted errors. If set, the corresponding call fails.
	UpsertStatusErr error
	UpsertDayErr    error
	DayExistsErr    error
}

// NewFakeStore creates an empty FakeStore.
func NewFakeStore() *FakeStore {
	return &FakeStore{ExistingDays: map[string]bool{}}
}

// UpsertStatus records the status document.
func (f *FakeStore) UpsertStatus(ctx context.Context, st state.CurrentStatus) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.UpsertStatusErr != nil {
		return f.UpsertStatusErr
	}
	f.StatusUpserts = append(f.StatusUpserts, st)
	return nil
}

// UpsertDay records the aggregate document.
func (f *FakeStore) UpsertDay(ctx context.Context, agg state.DayAggregate) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.UpsertDayErr != nil {
		return f.UpsertDayErr
	}
	f.DayUpserts = append(f.DayUpserts, agg.Clone())
	return nil
}

// DayExists reports true for seeded dates and dates already upserted.
func (f *FakeStore) DayExists(ctx context.Context, date string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.ExistsChecks = append(f.ExistsChecks, date)
	if f.DayExistsErr != nil {
		return false, f.DayExistsErr
	}
	if f.ExistingDays[date] {
		return true, nil
	}
	for _, agg := range f.DayUpserts {
		if agg.Date == date {
			return true, nil
		}
	}
	return false, nil
}

// LastStatus returns the most recent status upsert, or false if none.
func (f *FakeStore) LastStatus() (state.CurrentStatus, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.StatusUpserts) == 0 {
		return state.CurrentStatus{}, false
	}
	return f.StatusUpserts[len(f.StatusUpserts)-1], true
}
