package domain

import (
	"encoding/json"
	"fmt"
	"time"
)

// Timings holds the offsets of the reveal timeline, measured from the moment
// the open sequence starts. The flap always opens at offset zero.
// In JSON, as in the config file, every field is a whole number of milliseconds.
type Timings struct {
	SlipEmerge   time.Duration `mapstructure:"slip_emerge"`
	EnvelopeFade time.Duration `mapstructure:"envelope_fade"`
	SlipCenter   time.Duration `mapstructure:"slip_center"`
	Reveal       time.Duration `mapstructure:"reveal"`

	// Redraw teardown: the old slip is hidden at once, the envelope comes back
	// closed after ClearHide, and the open sequence starts ClearSettle later.
	ClearHide   time.Duration `mapstructure:"clear_hide"`
	ClearSettle time.Duration `mapstructure:"clear_settle"`
}

type timingsJSON struct {
	SlipEmerge   int64 `json:"slip_emerge"`
	EnvelopeFade int64 `json:"envelope_fade"`
	SlipCenter   int64 `json:"slip_center"`
	Reveal       int64 `json:"reveal"`
	ClearHide    int64 `json:"clear_hide"`
	ClearSettle  int64 `json:"clear_settle"`
}

// MarshalJSON encodes every offset in milliseconds.
func (t Timings) MarshalJSON() ([]byte, error) {
	return json.Marshal(timingsJSON{
		SlipEmerge:   t.SlipEmerge.Milliseconds(),
		EnvelopeFade: t.EnvelopeFade.Milliseconds(),
		SlipCenter:   t.SlipCenter.Milliseconds(),
		Reveal:       t.Reveal.Milliseconds(),
		ClearHide:    t.ClearHide.Milliseconds(),
		ClearSettle:  t.ClearSettle.Milliseconds(),
	})
}

// UnmarshalJSON reads offsets in milliseconds.
func (t *Timings) UnmarshalJSON(data []byte) error {
	var v timingsJSON
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*t = Timings{
		SlipEmerge:   time.Duration(v.SlipEmerge) * time.Millisecond,
		EnvelopeFade: time.Duration(v.EnvelopeFade) * time.Millisecond,
		SlipCenter:   time.Duration(v.SlipCenter) * time.Millisecond,
		Reveal:       time.Duration(v.Reveal) * time.Millisecond,
		ClearHide:    time.Duration(v.ClearHide) * time.Millisecond,
		ClearSettle:  time.Duration(v.ClearSettle) * time.Millisecond,
	}
	return nil
}

// DefaultTimings returns the timeline used by the card.
func DefaultTimings() Timings {
	return Timings{
		SlipEmerge:   500 * time.Millisecond,
		EnvelopeFade: 1000 * time.Millisecond,
		SlipCenter:   1400 * time.Millisecond,
		Reveal:       2500 * time.Millisecond,
		ClearHide:    300 * time.Millisecond,
		ClearSettle:  350 * time.Millisecond,
	}
}

// Teardown is the delay between accepting a redraw and opening the envelope.
func (t Timings) Teardown() time.Duration {
	return t.ClearHide + t.ClearSettle
}

// Validate checks that the open steps are strictly increasing.
func (t Timings) Validate() error {
	steps := []struct {
		name string
		d    time.Duration
	}{
		{"slip_emerge", t.SlipEmerge},
		{"envelope_fade", t.EnvelopeFade},
		{"slip_center", t.SlipCenter},
		{"reveal", t.Reveal},
	}
	var prev time.Duration
	for _, s := range steps {
		if s.d <= prev {
			return fmt.Errorf("%w: %s (%v) must be after %v", ErrInvalidTimings, s.name, s.d, prev)
		}
		prev = s.d
	}
	if t.ClearHide < 0 || t.ClearSettle < 0 {
		return fmt.Errorf("%w: teardown delays must not be negative", ErrInvalidTimings)
	}
	return nil
}
