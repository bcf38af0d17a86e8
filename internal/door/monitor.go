// Package door implements the transition engine and the daily rollover
// coordinator. The Monitor owns the two durable records (current status,
// day aggregate) and serializes every read-modify-write of them behind a
// single mutex; remote store and MQTT calls are always issued after the
// lock is released, on value copies taken inside the critical section.
package door

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/sourceclub/door-monitor/internal/mqtt"
	"github.com/sourceclub/door-monitor/internal/remote"
	"github.com/sourceclub/door-monitor/internal/state"
	"github.com/sourceclub/door-monitor/internal/status"
)

// Clock returns the current time. Injectable for tests.
type Clock func() time.Time

// Monitor converts debounced door edges into persisted state and per-day
// aggregates, and reconciles those aggregates with the remote store once
// per day.
type Monitor struct {
	store  state.Store
	remote remote.Store
	loc    *time.Location
	now    Clock

	pub     mqtt.Publisher  // optional
	tracker *status.Tracker // optional

	mu     sync.Mutex
	status state.CurrentStatus
	day    state.DayAggregate
}

// NewMonitor creates a Monitor. Call Bootstrap before handling edges.
func NewMonitor(st state.Store, rem remote.Store, loc *time.Location, now Clock) *Monitor {
	return &Monitor{
		store:  st,
		remote: rem,
		loc:    loc,
		now:    now,
	}
}

// SetPublisher attaches an optional MQTT publisher for door events.
func (m *Monitor) SetPublisher(p mqtt.Publisher) {
	m.pub = p
}

// SetTracker attaches an optional status tracker.
func (m *Monitor) SetTracker(t *status.Tracker) {
	m.tracker = t
}

// Bootstrap loads both records, writing defaults for any that are missing.
// A storage failure here is fatal: the daemon cannot operate without
// durable state.
func (m *Monitor) Bootstrap() error {
	today := m.today(m.now())

	st, day, err := state.Bootstrap(m.store, today)
	if err != nil {
		return fmt.Errorf("bootstrap local state: %w", err)
	}

	m.mu.Lock()
	m.status = st
	m.day = day
	m.mu.Unlock()

	m.updateTracker(st, day)
	return nil
}

// HandleEdge processes one debounced edge from the switch. open is the new
// logical state, at the moment the hardware reported it.
//
// The local mutation and persist happen under the lock; the remote status
// push (and, on a cross-day close, the stale aggregate flush) happen after
// it. Remote failures are logged and swallowed; a missed sync is better
// than a blocked edge path, and the next edge retries the status push
// naturally.
func (m *Monitor) HandleEdge(open bool, at time.Time) {
	m.mu.Lock()

	if m.status.IsOpen == open {
		m.mu.Unlock()
		log.Printf("door: state unchanged (%s), no update needed", stateName(open))
		return
	}

	m.status.IsOpen = open
	if open {
		m.status.LastOpened = at.Unix()
		log.Printf("door: opened")
	} else {
		m.status.LastClosed = at.Unix()
		log.Printf("door: closed")
	}

	if err := m.store.WriteStatus(m.status); err != nil {
		// In-memory state stays authoritative for the rest of this
		// transition; durability across a restart is lost.
		log.Printf("door: persist status: %v", err)
	}

	// A closing edge with a prior open completes an episode.
	var flush *state.DayAggregate
	if !open && m.status.LastOpened != 0 {
		today := m.today(at)
		if m.day.Date != today {
			// The day changed while the door was open and no rollover
			// fired in between. Hand the stale aggregate off for
			// flushing and start today's fresh.
			stale := m.day.Clone()
			flush = &stale
			m.day = state.NewDayAggregate(today)
		}
		m.day.Openings = append(m.day.Openings, state.Opening{
			Opened: m.status.LastOpened,
			Closed: m.status.LastClosed,
		})
		m.day.NumOpenings = len(m.day.Openings)
		if err := m.store.WriteDay(m.day); err != nil {
			log.Printf("door: persist day aggregate: %v", err)
		}
	}

	st := m.status
	day := m.day.Clone()
	m.mu.Unlock()

	// Network I/O from here on, outside the critical section.
	if flush != nil {
		m.flushDay(*flush)
	}
	m.pushStatus(st)
	m.publish(st, day, at)
	m.updateTracker(st, day)
}

// Rollover runs once per day shortly after midnight. It resets the local
// aggregate to today and flushes the previous aggregate to the remote
// store unless a document for its date already exists (the closing-edge
// path may have flushed it already).
//
// The reset happens under the lock before any network call; the existence
// check and flush operate on a copy afterwards. A flush failure after the
// reset is an accepted data-loss window of the best-effort design and is
// not retried.
func (m *Monitor) Rollover() {
	today := m.today(m.now())

	m.mu.Lock()
	if m.day.Date == today {
		m.mu.Unlock()
		log.Printf("door: rollover fired but aggregate already dated %s, nothing to do", today)
		return
	}
	stale := m.day.Clone()
	m.day = state.NewDayAggregate(today)
	if err := m.store.WriteDay(m.day); err != nil {
		log.Printf("door: persist day aggregate: %v", err)
	}
	st := m.status
	day := m.day.Clone()
	m.mu.Unlock()

	log.Printf("door: new day %s, archiving %s", today, stale.Date)

	exists, err := m.remote.DayExists(context.Background(), stale.Date)
	if err != nil {
		log.Printf("door: check remote for %s: %v", stale.Date, err)
	}
	if exists {
		log.Printf("door: data for %s already in remote store, flush skipped", stale.Date)
	} else {
		m.flushDay(stale)
	}

	m.updateTracker(st, day)
}

// Status returns the current in-memory door status.
func (m *Monitor) Status() state.CurrentStatus {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.status
}

// Day returns a copy of the current in-memory day aggregate.
func (m *Monitor) Day() state.DayAggregate {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.day.Clone()
}

func (m *Monitor) today(t time.Time) string {
	return t.In(m.loc).Format(state.DateFormat)
}

func (m *Monitor) flushDay(agg state.DayAggregate) {
	if err := m.remote.UpsertDay(context.Background(), agg); err != nil {
		// Deliberately not retried.
		log.Printf("door: flush day %s: %v", agg.Date, err)
		m.remoteResult(false)
		return
	}
	log.Printf("door: day %s saved to remote store (%d openings)", agg.Date, agg.NumOpenings)
	m.remoteResult(true)
}

func (m *Monitor) pushStatus(st state.CurrentStatus) {
	if err := m.remote.UpsertStatus(context.Background(), st); err != nil {
		log.Printf("door: push status: %v", err)
		m.remoteResult(false)
		return
	}
	m.remoteResult(true)
}

func (m *Monitor) publish(st state.CurrentStatus, day state.DayAggregate, at time.Time) {
	if m.pub == nil {
		return
	}
	typ := mqtt.EventClosed
	if st.IsOpen {
		typ = mqtt.EventOpened
	}
	err := m.pub.Publish(mqtt.DoorEvent{
		Timestamp:     at,
		Type:          typ,
		LastOpened:    st.LastOpened,
		LastClosed:    st.LastClosed,
		OpeningsToday: day.NumOpenings,
	})
	if err != nil {
		log.Printf("door: publish event: %v", err)
	}
}

func (m *Monitor) updateTracker(st state.CurrentStatus, day state.DayAggregate) {
	if m.tracker == nil {
		return
	}
	m.tracker.Update(st, day.Date, day.NumOpenings)
}

func (m *Monitor) remoteResult(ok bool) {
	if m.tracker == nil {
		return
	}
	m.tracker.SetRemoteResult(ok, m.now())
}

func stateName(open bool) string {
	if open {
		return "open"
	}
	return "closed"
}
