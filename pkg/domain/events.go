package domain

import (
	"context"
	"time"
)

// EventType defines the category of the event.
type EventType string

const (
	EventDraw       EventType = "draw"
	EventTransition EventType = "transition"
	EventReset      EventType = "reset"
	EventStale      EventType = "stale"
)

// EventBase contains common fields for all events.
type EventBase struct {
	Timestamp  time.Time `json:"timestamp"`
	Type       EventType `json:"type"`
	Generation uint64    `json:"generation"`
}

// DrawEvent reports the outcome of a draw request.
type DrawEvent struct {
	EventBase
	Outcome   DrawOutcome `json:"outcome"`
	SlipKey   string      `json:"slip_key,omitempty"`
	Redraw    bool        `json:"redraw,omitempty"`
	Remaining int         `json:"remaining"`
}

// TransitionEvent reports a timeline step that changed the snapshot.
type TransitionEvent struct {
	EventBase
	Step  string `json:"step"`
	From  Phase  `json:"from"`
	To    Phase  `json:"to"`
	Stale bool   `json:"stale,omitempty"` // Fired after its generation was superseded
}

// LifecycleHooks defines callbacks for sequencer observability.
// Hooks run outside the sequencer lock but must not block.
type LifecycleHooks struct {
	OnDraw       func(context.Context, *DrawEvent)
	OnTransition func(context.Context, *TransitionEvent)
	OnReset      func(context.Context, *EventBase)
}
