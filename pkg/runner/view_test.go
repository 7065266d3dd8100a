package runner

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/aretw0/slipbox/pkg/domain"
)

func TestTextView_Sequence(t *testing.T) {
	out := &bytes.Buffer{}
	v := NewTextView(out, func(md string) (string, error) {
		return "[card]\n" + md, nil
	})

	rest := domain.Snapshot{Phase: domain.PhaseIdle, EnvelopeVisible: true, RemainingCount: 2, TotalCount: 2}
	opening := domain.Snapshot{Phase: domain.PhaseOpening, SlipKey: "k1", Busy: true, RemainingCount: 1, DrawnCount: 1, TotalCount: 2}
	sliding := opening
	sliding.Phase = domain.PhaseSliding
	revealed := opening
	revealed.Phase = domain.PhaseRevealed
	revealed.Revealed = true
	revealed.Busy = false
	revealed.ActiveSentence = "hello there"

	for _, snap := range []domain.Snapshot{rest, opening, opening, sliding, revealed} {
		assert.NoError(t, v.Render(snap))
	}

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	assert.Equal(t, "2 of 2 slips left in the envelope", lines[0])
	assert.Equal(t, "the envelope opens", lines[1], "repeated snapshots print once")
	assert.Equal(t, "a slip slides out", lines[2])
	assert.Equal(t, "[card]", lines[3])
	assert.Contains(t, out.String(), "> hello there")
	assert.Contains(t, out.String(), "_slip 1 of 2_")
}

func TestTextView_RedrawPrintsNewSequence(t *testing.T) {
	out := &bytes.Buffer{}
	v := NewTextView(out, nil)

	first := domain.Snapshot{Phase: domain.PhaseRevealed, Revealed: true, SlipKey: "k1", ActiveSentence: "one", TotalCount: 2}
	clearing := domain.Snapshot{Phase: domain.PhaseClearing, SlipKey: "k2", ActiveSentence: "two", Busy: true, TotalCount: 2}
	opening := clearing
	opening.Phase = domain.PhaseOpening

	for _, snap := range []domain.Snapshot{first, clearing, opening} {
		assert.NoError(t, v.Render(snap))
	}
	assert.Contains(t, out.String(), "> one")
	assert.Contains(t, out.String(), "the slip is put aside")
	assert.Contains(t, out.String(), "the envelope opens")
	assert.NotContains(t, out.String(), "two", "sentence stays hidden until revealed")
}

func TestTextView_EmptyShownOnce(t *testing.T) {
	out := &bytes.Buffer{}
	v := NewTextView(out, nil)

	rest := domain.Snapshot{Phase: domain.PhaseIdle, RemainingCount: 1, TotalCount: 1}
	busy := domain.Snapshot{Phase: domain.PhaseOpening, SlipKey: "k", Busy: true, IsEmpty: true, DrawnCount: 1, TotalCount: 1}
	done := busy
	done.Phase = domain.PhaseRevealed
	done.Busy = false
	done.Revealed = true

	for _, snap := range []domain.Snapshot{rest, busy, done, done} {
		assert.NoError(t, v.Render(snap))
	}
	assert.Equal(t, 1, strings.Count(out.String(), "the envelope is empty, all 1 slips drawn"))
}

func TestTextView_Outcomes(t *testing.T) {
	out := &bytes.Buffer{}
	v := NewTextView(out, nil)
	snap := domain.Snapshot{IsEmpty: true, TotalCount: 3}

	assert.NoError(t, v.Outcome(domain.RejectedBusy, snap))
	assert.NoError(t, v.Outcome(domain.RejectedExhausted, snap))
	assert.NoError(t, v.Outcome(domain.DrawIntro, snap))
	assert.NoError(t, v.Outcome(domain.DrawAccepted, snap))

	assert.Equal(t, []string{
		"the slip is still moving",
		"the envelope is empty, all 3 slips drawn",
		"the card is open, press enter to draw a slip",
	}, strings.Split(strings.TrimSpace(out.String()), "\n"))
}
