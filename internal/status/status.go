// Package status provides a thread-safe status tracker for the door
// monitor daemon. It is read by the HTTP status page and by system event
// payloads.
package status

import (
	"sync"
	"time"

	"github.com/sourceclub/door-monitor/internal/state"
)

// Config contains daemon configuration for display.
type Config struct {
	Pin        int
	DebounceMs int64
	Timezone   string
	RolloverAt string // "HH:MM" wall clock in Timezone
	Broker     string // empty = MQTT disabled
	Collection string
	HTTPAddr   string
}

// Snapshot is a point-in-time view of daemon state.
// It is a value type, safe to use after the lock is released.
type Snapshot struct {
	Door          state.CurrentStatus
	OpeningsToday int
	Date          string // date the local aggregate is accumulating under
	StartTime     time.Time
	Now           time.Time
	MQTTConnected bool
	RemoteOK      bool // last remote call succeeded
	LastSync      time.Time
	Config        Config
}

// Uptime returns the duration since the daemon started.
func (s Snapshot) Uptime() time.Duration {
	return s.Now.Sub(s.StartTime)
}

// Tracker holds mutable daemon state behind an RWMutex.
type Tracker struct {
	mu   sync.RWMutex
	snap Snapshot
}

// NewTracker creates a Tracker with the given start time and config.
func NewTracker(startTime time.Time, cfg Config) *Tracker {
	return &Tracker{
		snap: Snapshot{
			StartTime: startTime,
			Config:    cfg,
		},
	}
}

// Update sets the door status and today's aggregate view.
// Called by the monitor after every local mutation.
func (t *Tracker) Update(door state.CurrentStatus, date string, openingsToday int) {
	t.mu.Lock()
	t.snap.Door = door
	t.snap.Date = date
	t.snap.OpeningsToday = openingsToday
	t.mu.Unlock()
}

// SetMQTTConnected sets the MQTT connection status.
func (t *Tracker) SetMQTTConnected(connected bool) {
	t.mu.Lock()
	t.snap.MQTTConnected = connected
	t.mu.Unlock()
}

// SetRemoteResult records the outcome of the latest remote store call.
func (t *Tracker) SetRemoteResult(ok bool, at time.Time) {
	t.mu.Lock()
	t.snap.RemoteOK = ok
	if ok {
		t.snap.LastSync = at
	}
	t.mu.Unlock()
}

// Snapshot returns a point-in-time copy of the daemon state.
// The Now field is set to the current time at the moment of the call.
func (t *Tracker) Snapshot() Snapshot {
	t.mu.RLock()
	s := t.snap
	t.mu.RUnlock()
	s.Now = time.Now()
	return s
}
