package status

import (
	"encoding/json"
	"time"
)

// StatusJSON is the top-level JSON envelope for status output.
type StatusJSON struct {
	Status StatusInner `json:"status"`
}

// StatusInner contains the status details.
type StatusInner struct {
	Event         string     `json:"event,omitempty"`
	Reason        string     `json:"reason,omitempty"`
	Door          string     `json:"door"`
	LastOpened    int64      `json:"last_opened"`
	LastClosed    int64      `json:"last_closed"`
	OpeningsToday int        `json:"openings_today"`
	Date          string     `json:"date"`
	UptimeSeconds int64      `json:"uptime_seconds"`
	StartTime     string     `json:"start_time"`
	Timestamp     string     `json:"timestamp"`
	MQTT          MQTTStatus `json:"mqtt"`
	Remote        RemoteSync `json:"remote"`
	Config        ConfigJSON `json:"config"`
}

// MQTTStatus reports MQTT connection state.
type MQTTStatus struct {
	Enabled   bool   `json:"enabled"`
	Connected bool   `json:"connected"`
	Broker    string `json:"broker,omitempty"`
}

// RemoteSync reports remote document store health.
type RemoteSync struct {
	OK       bool   `json:"ok"`
	LastSync string `json:"last_sync,omitempty"`
}

// ConfigJSON is the JSON representation of daemon config.
type ConfigJSON struct {
	Pin        int    `json:"pin"`
	DebounceMs int64  `json:"debounce_ms"`
	Timezone   string `json:"timezone"`
	RolloverAt string `json:"rollover_at"`
	Collection string `json:"collection"`
	HTTPAddr   string `json:"http_addr"`
}

func buildInner(snap Snapshot) StatusInner {
	door := "CLOSED"
	if snap.Door.IsOpen {
		door = "OPEN"
	}

	inner := StatusInner{
		Door:          door,
		LastOpened:    snap.Door.LastOpened,
		LastClosed:    snap.Door.LastClosed,
		OpeningsToday: snap.OpeningsToday,
		Date:          snap.Date,
		UptimeSeconds: int64(snap.Uptime().Truncate(time.Second).Seconds()),
		StartTime:     snap.StartTime.UTC().Format(time.RFC3339),
		Timestamp:     snap.Now.UTC().Format(time.RFC3339),
		MQTT: MQTTStatus{
			Enabled:   snap.Config.Broker != "",
			Connected: snap.MQTTConnected,
			Broker:    snap.Config.Broker,
		},
		Remote: RemoteSync{OK: snap.RemoteOK},
		Config: ConfigJSON{
			Pin:        snap.Config.Pin,
			DebounceMs: snap.Config.DebounceMs,
			Timezone:   snap.Config.Timezone,
			RolloverAt: snap.Config.RolloverAt,
			Collection: snap.Config.Collection,
			HTTPAddr:   snap.Config.HTTPAddr,
		},
	}
	if !snap.LastSync.IsZero() {
		inner.Remote.LastSync = snap.LastSync.UTC().Format(time.RFC3339)
	}
	return inner
}

// FormatJSON returns the JSON status for the web endpoint (no event/reason).
func FormatJSON(snap Snapshot) []byte {
	data, _ := json.MarshalIndent(StatusJSON{Status: buildInner(snap)}, "", "  ")
	return data
}

// FormatStatusEvent returns the JSON status for an MQTT system event.
func FormatStatusEvent(snap Snapshot, event, reason string) []byte {
	inner := buildInner(snap)
	inner.Event = event
	inner.Reason = reason

	data, _ := json.Marshal(StatusJSON{Status: inner})
	return data
}
