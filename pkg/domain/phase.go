package domain

// Phase is a coarse label for the reveal sequence.
// The envelope and the slip move on two overlapping timelines, so the precise
// visual state is the pair (EnvelopeOpen/EnvelopeVisible, SlipPosition) held in
// Snapshot. Phase names the most recent step that fired.
type Phase string

const (
	PhaseIdle      Phase = "idle"      // Nothing drawn since start or reset
	PhaseClearing  Phase = "clearing"  // Previous slip hidden, envelope coming back
	PhaseOpening   Phase = "opening"   // Flap opening
	PhaseSliding   Phase = "sliding"   // Slip emerging from the envelope
	PhaseFading    Phase = "fading"    // Envelope fading out
	PhaseCentering Phase = "centering" // Slip gliding to the centre
	PhaseRevealed  Phase = "revealed"  // Sentence visible, ready for another draw
)

// SlipPosition is the slip's place on the slip timeline.
type SlipPosition string

const (
	SlipInside   SlipPosition = "inside"
	SlipEmerging SlipPosition = "emerging"
	SlipCentered SlipPosition = "centered"
)
