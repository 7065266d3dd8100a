package runner

import (
	"encoding/json"
	"io"

	"github.com/aretw0/slipbox/pkg/domain"
)

// Event is one line written by JSONView.
type Event struct {
	Type     string             `json:"type"`
	Outcome  domain.DrawOutcome `json:"outcome,omitempty"`
	Accepted bool               `json:"accepted,omitempty"`
	State    *domain.Snapshot   `json:"state,omitempty"`
	Text     string             `json:"text,omitempty"`
}

// Event types written by JSONView.
const (
	EventSnapshot = "snapshot"
	EventOutcome  = "outcome"
	EventStatus   = "status"
	EventMessage  = "message"
)

// JSONView writes one JSON object per line, for scripts and other programs.
type JSONView struct {
	enc *json.Encoder
}

// NewJSONView creates a JSON-lines view on w.
func NewJSONView(w io.Writer) *JSONView {
	return &JSONView{enc: json.NewEncoder(w)}
}

func (v *JSONView) Render(snap domain.Snapshot) error {
	return v.enc.Encode(Event{Type: EventSnapshot, State: &snap})
}

func (v *JSONView) Outcome(outcome domain.DrawOutcome, snap domain.Snapshot) error {
	return v.enc.Encode(Event{
		Type:     EventOutcome,
		Outcome:  outcome,
		Accepted: outcome.Accepted(),
		State:    &snap,
	})
}

func (v *JSONView) Status(snap domain.Snapshot) error {
	return v.enc.Encode(Event{Type: EventStatus, State: &snap})
}

func (v *JSONView) Message(text string) {
	_ = v.enc.Encode(Event{Type: EventMessage, Text: text})
}
