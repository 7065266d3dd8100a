package domain

// DrawOutcome is the result of a draw request.
// Rejections are not failures: the request is simply ignored.
type DrawOutcome string

const (
	DrawAccepted      DrawOutcome = "accepted"
	DrawIntro         DrawOutcome = "intro"
	RejectedBusy      DrawOutcome = "busy"
	RejectedExhausted DrawOutcome = "exhausted"
)

// Accepted reports whether the request started a new sequence.
func (o DrawOutcome) Accepted() bool {
	return o == DrawAccepted
}

// Err maps a rejection to its sentinel error, or nil.
func (o DrawOutcome) Err() error {
	switch o {
	case RejectedBusy:
		return ErrSequenceBusy
	case RejectedExhausted:
		return ErrPoolExhausted
	default:
		return nil
	}
}
