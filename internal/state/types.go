// Package state persists the door monitor's two durable records: the
// current door status and the aggregate for the most recent day.
package state

// DateFormat is the layout for day keys (yyyy-mm-dd).
const DateFormat = "2006-01-02"

// CurrentStatus is the singleton record tracking the door's logical state.
// Timestamps are epoch seconds; 0 means never recorded.
type CurrentStatus struct {
	IsOpen     bool
	LastOpened int64
	LastClosed int64
}

// Opening is one completed open/close episode.
type Opening struct {
	Opened int64
	Closed int64
}

// DayAggregate is the singleton record accumulating episodes for one day.
// It holds "today" or the most recent day that has not been flushed to the
// remote store yet.
type DayAggregate struct {
	Date        string
	NumOpenings int
	Openings    []Opening
}

// NewDayAggregate returns an empty aggregate for the given date.
func NewDayAggregate(date string) DayAggregate {
	return DayAggregate{Date: date, Openings: []Opening{}}
}

// Clone returns a deep copy, safe to hand off outside the owner's lock.
func (a DayAggregate) Clone() DayAggregate {
	c := a
	c.Openings = make([]Opening, len(a.Openings))
	copy(c.Openings, a.Openings)
	return c
}
