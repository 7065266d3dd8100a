package domain

// Snapshot is the observable state of a box at one instant.
// It is a value: renderers may keep it without synchronisation.
type Snapshot struct {
	Phase           Phase        `json:"phase"`
	EnvelopeOpen    bool         `json:"envelope_open"`
	EnvelopeVisible bool         `json:"envelope_visible"`
	SlipPhase       SlipPosition `json:"slip_phase"`

	// ActiveSentence is the sentence on the current slip. It is latched when
	// a draw is accepted; Revealed tells whether the text may be shown yet.
	ActiveSentence string `json:"active_sentence,omitempty"`
	Revealed       bool   `json:"revealed"`
	SlipKey        string `json:"slip_key,omitempty"`

	Busy      bool `json:"busy"`
	IntroDone bool `json:"intro_done"`

	IsEmpty        bool `json:"is_empty"`
	RemainingCount int  `json:"remaining_count"`
	DrawnCount     int  `json:"drawn_count"`
	TotalCount     int  `json:"total_count"`

	// Generation increases on every accepted draw and every reset.
	Generation uint64 `json:"generation"`
}

// HasSlip reports whether a slip is currently assigned. The key decides, so
// a slip counts as displayed whatever its text.
func (s Snapshot) HasSlip() bool {
	return s.SlipKey != ""
}
