package state

// FakeStore is an in-memory Store for tests. It records write counts and
// can be scripted to fail.
type FakeStore struct {
	Status    CurrentStatus
	Day       DayAggregate
	HasStatus bool
	HasDay    bool

	StatusWrites int
	DayWrites    int

	// Scripted errors. If set, the corresponding call returns the error.
	ReadStatusErr  error
	WriteStatusErr error
	ReadDayErr     error
	WriteDayErr    error
}

// NewFakeStore returns an empty store (both records uninitialized).
func NewFakeStore() *FakeStore {
	return &FakeStore{}
}

// Seed initializes both records without counting as writes.
func (f *FakeStore) Seed(st CurrentStatus, day DayAggregate) {
	f.Status = st
	f.Day = day
	f.HasStatus = true
	f.HasDay = true
}

func (f *FakeStore) ReadStatus() (CurrentStatus, error) {
	if f.ReadStatusErr != nil {
		return CurrentStatus{}, f.ReadStatusErr
	}
	if !f.HasStatus {
		return CurrentStatus{}, ErrNotInitialized
	}
	return f.Status, nil
}

func (f *FakeStore) WriteStatus(st CurrentStatus) error {
	if f.WriteStatusErr != nil {
		return f.WriteStatusErr
	}
	f.Status = st
	f.HasStatus = true
	f.StatusWrites++
	return nil
}

func (f *FakeStore) ReadDay() (DayAggregate, error) {
	if f.ReadDayErr != nil {
		return DayAggregate{}, f.ReadDayErr
	}
	if !f.HasDay {
		return DayAggregate{}, ErrNotInitialized
	}
	return f.Day.Clone(), nil
}

func (f *FakeStore) WriteDay(agg DayAggregate) error {
	if f.WriteDayErr != nil {
		return f.WriteDayErr
	}
	f.Day = agg.Clone()
	f.HasDay = true
	f.DayWrites++
	return nil
}
