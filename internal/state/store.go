package state

import (
	"errors"
	"fmt"
)

// ErrNotInitialized is returned when a record has never been written
// (missing or empty file). Callers recover by writing defaults.
var ErrNotInitialized = errors.New("state: record not initialized")

// Store is durable persistence for the two records. Each write replaces the
// full record; there are no partial updates.
type Store interface {
	ReadStatus() (CurrentStatus, error)
	WriteStatus(CurrentStatus) error

	ReadDay() (DayAggregate, error)
	WriteDay(DayAggregate) error
}

// Bootstrap ensures both records exist, writing defaults where a record is
// missing. It returns the (possibly freshly created) records.
func Bootstrap(s Store, today string) (CurrentStatus, DayAggregate, error) {
	st, err := s.ReadStatus()
	if errors.Is(err, ErrNotInitialized) {
		st = CurrentStatus{}
		if err := s.WriteStatus(st); err != nil {
			return CurrentStatus{}, DayAggregate{}, fmt.Errorf("init status: %w", err)
		}
	} else if err != nil {
		return CurrentStatus{}, DayAggregate{}, fmt.Errorf("read status: %w", err)
	}

	day, err := s.ReadDay()
	if errors.Is(err, ErrNotInitialized) {
		day = NewDayAggregate(today)
		if err := s.WriteDay(day); err != nil {
			return CurrentStatus{}, DayAggregate{}, fmt.Errorf("init day aggregate: %w", err)
		}
	} else if err != nil {
		return CurrentStatus{}, DayAggregate{}, fmt.Errorf("read day aggregate: %w", err)
	}

	return st, day, nil
}
