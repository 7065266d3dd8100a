package runner

import (
	"fmt"
	"io"
	"strings"

	"github.com/muesli/termenv"

	"github.com/aretw0/slipbox/pkg/domain"
)

// View presents the box to the user.
type View interface {
	// Render is called with every snapshot the box publishes.
	Render(snap domain.Snapshot) error
	// Outcome reports the result of a draw command.
	Outcome(outcome domain.DrawOutcome, snap domain.Snapshot) error
	// Status prints the current counters.
	Status(snap domain.Snapshot) error
	// Message prints free text such as help or input errors.
	Message(text string)
}

var phaseLines = map[domain.Phase]string{
	domain.PhaseClearing:  "the slip is put aside",
	domain.PhaseOpening:   "the envelope opens",
	domain.PhaseSliding:   "a slip slides out",
	domain.PhaseFading:    "the envelope fades away",
	domain.PhaseCentering: "the slip settles in the middle",
}

// TextView prints phase changes as styled lines and the revealed slip as a
// rendered markdown card.
type TextView struct {
	out      *termenv.Output
	renderer ContentRenderer

	started    bool
	last       domain.Phase
	lastKey    string
	emptyShown bool
}

// NewTextView creates a text view. The color profile follows w, so
// plain writers get unstyled text.
func NewTextView(w io.Writer, renderer ContentRenderer) *TextView {
	return &TextView{
		out:      termenv.NewOutput(w),
		renderer: renderer,
	}
}

func (v *TextView) Render(snap domain.Snapshot) error {
	switch {
	case !v.started:
		v.started = true
		v.last, v.lastKey = snap.Phase, snap.SlipKey
		if !snap.Revealed {
			v.emptyShown = snap.IsEmpty
			return v.Status(snap)
		}
		if err := v.card(snap); err != nil {
			return err
		}

	case snap.Phase != v.last || snap.SlipKey != v.lastKey:
		v.last, v.lastKey = snap.Phase, snap.SlipKey

		switch snap.Phase {
		case domain.PhaseRevealed:
			if err := v.card(snap); err != nil {
				return err
			}
		case domain.PhaseIdle:
			v.line(v.faint("the envelope is back at rest"))
		default:
			v.line(v.accent(phaseLines[snap.Phase]))
		}
	}

	if !snap.IsEmpty {
		v.emptyShown = false
	} else if !snap.Busy && !v.emptyShown {
		v.emptyShown = true
		v.line(v.faint(emptyText(snap)))
	}
	return nil
}

func (v *TextView) Outcome(outcome domain.DrawOutcome, snap domain.Snapshot) error {
	switch outcome {
	case domain.RejectedBusy:
		v.line(v.faint("the slip is still moving"))
	case domain.RejectedExhausted:
		v.line(v.faint(emptyText(snap)))
	case domain.DrawIntro:
		v.line(v.accent("the card is open, press enter to draw a slip"))
	}
	return nil
}

func (v *TextView) Status(snap domain.Snapshot) error {
	switch {
	case snap.IsEmpty:
		v.line(v.faint(emptyText(snap)))
	default:
		v.line(fmt.Sprintf("%d of %d slips left in the envelope", snap.RemainingCount, snap.TotalCount))
	}
	return nil
}

func (v *TextView) Message(text string) {
	v.line(v.faint(text))
}

// card prints the revealed sentence.
func (v *TextView) card(snap domain.Snapshot) error {
	md := SlipCard(snap)
	if v.renderer != nil {
		rendered, err := v.renderer(md)
		if err == nil {
			md = rendered
		}
	}
	v.line(strings.TrimRight(md, "\n"))
	return nil
}

func (v *TextView) line(s string) {
	fmt.Fprintln(v.out, s)
}

func (v *TextView) accent(s string) string {
	return v.out.String(s).Foreground(v.out.Color("#f472b6")).String()
}

func (v *TextView) faint(s string) string {
	return v.out.String(s).Faint().String()
}

// SlipCard formats a revealed slip as markdown.
func SlipCard(snap domain.Snapshot) string {
	return fmt.Sprintf("> %s\n\n_slip %d of %d_\n", snap.ActiveSentence, snap.DrawnCount, snap.TotalCount)
}

func emptyText(snap domain.Snapshot) string {
	return fmt.Sprintf("the envelope is empty, all %d slips drawn", snap.TotalCount)
}
