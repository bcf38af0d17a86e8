// Package mqtt provides MQTT publishing with abstraction for testing.
package mqtt

import (
	"encoding/json"
	"time"
)

// Topic is the MQTT topic for door transition events.
const Topic = "home/door/events"

// TopicSystem is the MQTT topic for system lifecycle events.
const TopicSystem = "home/door/system"

// EventType identifies a door transition.
type EventType string

const (
	EventOpened EventType = "DOOR_OPENED"
	EventClosed EventType = "DOOR_CLOSED"
)

// DoorEvent represents one debounced door transition to be published.
type DoorEvent struct {
	Timestamp     time.Time
	Type          EventType
	LastOpened    int64 // epoch seconds, 0 = never
	LastClosed    int64
	OpeningsToday int
}

// Publisher publishes events to MQTT.
type Publisher interface {
	// Publish sends a door event to the broker.
	// Returns error if publishing fails (should not crash the process).
	Publish(event DoorEvent) error

	// PublishSystem sends a system lifecycle event to the broker.
	PublishSystem(event SystemEvent) error

	// Close disconnects from the broker.
	Close() error
}

// ConnectionStatus reports whether the MQTT connection is active.
type ConnectionStatus interface {
	IsConnected() bool
}

// SystemEvent represents a system lifecycle event (startup, shutdown).
type SystemEvent struct {
	Timestamp  time.Time
	Event      string // e.g., "STARTUP", "SHUTDOWN"
	Reason     string // e.g., "SIGTERM", "SIGINT" (shutdown only)
	RawPayload []byte // Pre-formatted JSON payload; if set, FormatSystemPayload returns it directly
	Retained   bool   // Whether the message should be retained by the broker
}

// Payload is the MQTT message payload for door events.
type Payload struct {
	Door DoorPayload `json:"door"`
}

// DoorPayload contains the door event details.
type DoorPayload struct {
	Timestamp     string `json:"timestamp"`
	Event         string `json:"event"`
	LastOpened    int64  `json:"last_opened"`
	LastClosed    int64  `json:"last_closed"`
	OpeningsToday int    `json:"openings_today"`
}

// FormatPayload creates the JSON payload for a door event.
func FormatPayload(event DoorEvent) ([]byte, error) {
	payload := Payload{
		Door: DoorPayload{
			Timestamp:     event.Timestamp.UTC().Format(time.RFC3339),
			Event:         string(event.Type),
			LastOpened:    event.LastOpened,
			LastClosed:    event.LastClosed,
			OpeningsToday: event.OpeningsToday,
		},
	}
	return json.Marshal(payload)
}

// SystemPayload is the MQTT message payload for system events without a
// full status snapshot.
type SystemPayload struct {
	System SystemPayloadInner `json:"system"`
}

// SystemPayloadInner contains the system event details.
type SystemPayloadInner struct {
	Timestamp string `json:"timestamp"`
	Event     string `json:"event"`
	Reason    string `json:"reason,omitempty"`
}

// FormatSystemPayload creates the JSON payload for a system event.
// If event.RawPayload is set, it is returned directly (used for full
// status snapshots).
func FormatSystemPayload(event SystemEvent) ([]byte, error) {
	if event.RawPayload != nil {
		return event.RawPayload, nil
	}

	payload := SystemPayload{
		System: SystemPayloadInner{
			Timestamp: event.Timestamp.UTC().Format(time.RFC3339),
			Event:     event.Event,
			Reason:    event.Reason,
		},
	}
	return json.Marshal(payload)
}
