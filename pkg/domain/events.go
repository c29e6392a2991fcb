package domain

import "time"

// EventType defines the category of the event.
type EventType string

const (
	EventHalt  EventType = "halt"
	EventFault EventType = "fault"
)

// MachineEvent is emitted when an engine reaches a terminal status.
type MachineEvent struct {
	Timestamp time.Time `json:"timestamp"`
	Type      EventType `json:"type"`
	State     string    `json:"state"` // Last state before the event
	Read      Symbol    `json:"read"`
	Steps     uint64    `json:"steps"`
	Err       error     `json:"-"`
}

// LifecycleHooks defines callbacks for engine observability.
// Hooks run synchronously inside Step; keep them cheap.
type LifecycleHooks struct {
	OnHalt  func(*MachineEvent)
	OnFault func(*MachineEvent)
}
