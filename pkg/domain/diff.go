package domain

// SnapshotDiff represents the changes between two snapshots.
// It is designed to be serialized to JSON for partial updates on the client.
type SnapshotDiff struct {
	// Generation is always present to identify the sequence.
	Generation uint64 `json:"generation"`

	Phase           *Phase        `json:"phase,omitempty"`
	EnvelopeOpen    *bool         `json:"envelope_open,omitempty"`
	EnvelopeVisible *bool         `json:"envelope_visible,omitempty"`
	SlipPhase       *SlipPosition `json:"slip_phase,omitempty"`

	// ActiveSentence uses an empty string to signal the slip was cleared.
	ActiveSentence *string `json:"active_sentence,omitempty"`
	Revealed       *bool   `json:"revealed,omitempty"`
	SlipKey        *string `json:"slip_key,omitempty"`

	Busy      *bool `json:"busy,omitempty"`
	IntroDone *bool `json:"intro_done,omitempty"`

	Counters *Counters `json:"counters,omitempty"`
}

// Counters groups the pool figures; they always change together.
type Counters struct {
	IsEmpty        bool `json:"is_empty"`
	RemainingCount int  `json:"remaining_count"`
	DrawnCount     int  `json:"drawn_count"`
	TotalCount     int  `json:"total_count"`
}

// Diff calculates the difference between old and new.
// If old is nil, it returns a diff representing the whole of new (initial load).
// It returns nil when nothing changed.
func Diff(old, new *Snapshot) *SnapshotDiff {
	if new == nil {
		return nil
	}

	diff := &SnapshotDiff{Generation: new.Generation}
	if old == nil {
		old = &Snapshot{}
		diff.Phase = &new.Phase
		diff.EnvelopeOpen = &new.EnvelopeOpen
		diff.EnvelopeVisible = &new.EnvelopeVisible
		diff.SlipPhase = &new.SlipPhase
		diff.Busy = &new.Busy
		diff.Revealed = &new.Revealed
		diff.IntroDone = &new.IntroDone
		diff.Counters = countersOf(new)
	}

	if old.Phase != new.Phase {
		diff.Phase = &new.Phase
	}
	if old.EnvelopeOpen != new.EnvelopeOpen {
		diff.EnvelopeOpen = &new.EnvelopeOpen
	}
	if old.EnvelopeVisible != new.EnvelopeVisible {
		diff.EnvelopeVisible = &new.EnvelopeVisible
	}
	if old.SlipPhase != new.SlipPhase {
		diff.SlipPhase = &new.SlipPhase
	}
	if old.ActiveSentence != new.ActiveSentence {
		diff.ActiveSentence = &new.ActiveSentence
	}
	if old.Revealed != new.Revealed {
		diff.Revealed = &new.Revealed
	}
	if old.SlipKey != new.SlipKey {
		diff.SlipKey = &new.SlipKey
	}
	if old.Busy != new.Busy {
		diff.Busy = &new.Busy
	}
	if old.IntroDone != new.IntroDone {
		diff.IntroDone = &new.IntroDone
	}
	if old.RemainingCount != new.RemainingCount ||
		old.TotalCount != new.TotalCount ||
		old.IsEmpty != new.IsEmpty {
		diff.Counters = countersOf(new)
	}

	if diff.IsEmpty() {
		return nil
	}
	return diff
}

func countersOf(s *Snapshot) *Counters {
	return &Counters{
		IsEmpty:        s.IsEmpty,
		RemainingCount: s.RemainingCount,
		DrawnCount:     s.DrawnCount,
		TotalCount:     s.TotalCount,
	}
}

// IsEmpty checks if the diff contains any actionable changes.
func (d *SnapshotDiff) IsEmpty() bool {
	return d.Phase == nil &&
		d.EnvelopeOpen == nil &&
		d.EnvelopeVisible == nil &&
		d.SlipPhase == nil &&
		d.ActiveSentence == nil &&
		d.Revealed == nil &&
		d.SlipKey == nil &&
		d.Busy == nil &&
		d.IntroDone == nil &&
		d.Counters == nil
}

// Touches reports whether the diff changes any field of the named group.
// Groups: "envelope", "slip", "sentence", "status", "counters".
func (d *SnapshotDiff) Touches(group string) bool {
	switch group {
	case "envelope":
		return d.EnvelopeOpen != nil || d.EnvelopeVisible != nil
	case "slip":
		return d.SlipPhase != nil || d.SlipKey != nil
	case "sentence":
		return d.ActiveSentence != nil || d.Revealed != nil
	case "status":
		return d.Phase != nil || d.Busy != nil || d.IntroDone != nil
	case "counters":
		return d.Counters != nil
	default:
		return false
	}
}
