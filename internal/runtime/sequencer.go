package runtime

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"github.com/aretw0/slipbox/internal/logging"
	"github.com/aretw0/slipbox/pkg/domain"
	"github.com/aretw0/slipbox/pkg/pool"
	"github.com/aretw0/slipbox/pkg/timeline"
)

// DefaultSubscriberBuffer is the channel size used by Subscribe.
const DefaultSubscriberBuffer = 16

// Sequencer runs at most one draw sequence at a time and publishes a
// snapshot after every transition.
//
// Every accepted draw and every reset starts a new generation. Steps
// scheduled under an older generation are stopped, and a step that still
// fires checks its generation and does nothing.
type Sequencer struct {
	mu    sync.Mutex
	pool  *pool.Pool
	sched timeline.Scheduler

	timings   domain.Timings
	introGate bool
	newKey    func() string
	logger    *slog.Logger
	hooks     domain.LifecycleHooks

	state   domain.Snapshot
	gen     uint64
	pending []timeline.Timer
	subs    map[*subscriber]struct{}
	closed  bool
}

type subscriber struct {
	ch   chan domain.Snapshot
	once sync.Once
}

// New creates a sequencer drawing from p and scheduling on sched.
func New(p *pool.Pool, sched timeline.Scheduler, opts ...Option) (*Sequencer, error) {
	if p == nil {
		return nil, domain.ErrNoSentences
	}
	if sched == nil {
		return nil, errors.New("scheduler is required")
	}

	s := &Sequencer{
		pool:    p,
		sched:   sched,
		timings: domain.DefaultTimings(),
		newKey:  uuid.NewString,
		logger:  logging.NewNop(),
		state:   restingState(),
		subs:    make(map[*subscriber]struct{}),
	}
	for _, opt := range opts {
		opt(s)
	}
	if err := s.timings.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

// RequestDraw starts a new sequence if the sequencer is idle and sentences
// remain. Otherwise it does nothing and reports why.
func (s *Sequencer) RequestDraw(ctx context.Context) domain.DrawOutcome {
	s.mu.Lock()

	switch {
	case s.closed || s.state.Busy:
		return s.reject(ctx, domain.RejectedBusy)
	case s.pool.IsEmpty():
		return s.reject(ctx, domain.RejectedExhausted)
	case s.introGate && !s.state.IntroDone:
		s.state.IntroDone = true
		s.publishLocked()
		ev := s.drawEventLocked(domain.DrawIntro)
		s.mu.Unlock()

		s.emitDraw(ctx, ev)
		return domain.DrawIntro
	}

	sentence, _ := s.pool.Draw()
	redraw := s.state.HasSlip()
	s.invalidateLocked()
	gen := s.gen

	s.state.ActiveSentence = sentence
	s.state.SlipKey = s.newKey()
	s.state.Revealed = false
	s.state.Busy = true

	var fired []domain.TransitionEvent
	for _, st := range timelineFor(s.timings, redraw) {
		if st.offset == 0 {
			fired = append(fired, s.applyLocked(st))
			continue
		}
		s.pending = append(s.pending, s.sched.AfterFunc(st.offset, func() {
			s.fire(gen, st)
		}))
	}
	s.publishLocked()
	ev := s.drawEventLocked(domain.DrawAccepted)
	ev.Redraw = redraw
	s.mu.Unlock()

	s.emitDraw(ctx, ev)
	for i := range fired {
		s.emitTransition(ctx, &fired[i])
	}
	return domain.DrawAccepted
}

// reject releases the lock held by RequestDraw.
func (s *Sequencer) reject(ctx context.Context, outcome domain.DrawOutcome) domain.DrawOutcome {
	ev := s.drawEventLocked(outcome)
	s.mu.Unlock()

	s.emitDraw(ctx, ev)
	return outcome
}

// Reset returns to the resting state at once, whatever is in flight.
func (s *Sequencer) Reset(ctx context.Context) {
	s.mu.Lock()
	s.invalidateLocked()
	s.state = restingState()
	s.state.Generation = s.gen
	s.publishLocked()
	ev := domain.EventBase{Timestamp: s.sched.Now(), Type: domain.EventReset, Generation: s.gen}
	s.mu.Unlock()

	if s.hooks.OnReset != nil {
		s.hooks.OnReset(ctx, &ev)
	}
}

// Restart refills the pool and resets, starting a fresh session.
func (s *Sequencer) Restart(ctx context.Context) {
	s.mu.Lock()
	s.pool.Restock()
	s.mu.Unlock()
	s.Reset(ctx)
}

// Snapshot returns the current state.
func (s *Sequencer) Snapshot() domain.Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

// Subscribe returns a channel receiving a snapshot after every transition,
// starting with the current one. When the reader falls behind, the oldest
// buffered snapshot is dropped so the latest state is always delivered.
// The returned function unsubscribes and closes the channel.
func (s *Sequencer) Subscribe(buffer int) (<-chan domain.Snapshot, func()) {
	if buffer < 1 {
		buffer = DefaultSubscriberBuffer
	}
	sub := &subscriber{ch: make(chan domain.Snapshot, buffer)}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		close(sub.ch)
		return sub.ch, func() {}
	}
	s.subs[sub] = struct{}{}
	sub.ch <- s.snapshotLocked()

	return sub.ch, func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.subs, sub)
		sub.close()
	}
}

// Close stops pending steps and closes every subscription.
// Later draw requests are rejected as busy.
func (s *Sequencer) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.closed = true
	s.invalidateLocked()
	for sub := range s.subs {
		sub.close()
	}
	s.logger.Debug("sequencer closed", "generation", s.gen, "subscribers", len(s.subs))
	clear(s.subs)
}

func (s *Sequencer) fire(gen uint64, st step) {
	s.mu.Lock()
	if gen != s.gen {
		s.mu.Unlock()

		if s.hooks.OnTransition != nil {
			s.hooks.OnTransition(context.Background(), &domain.TransitionEvent{
				EventBase: domain.EventBase{Timestamp: s.sched.Now(), Type: domain.EventStale, Generation: gen},
				Step:      st.name,
				Stale:     true,
			})
		}
		return
	}

	ev := s.applyLocked(st)
	s.publishLocked()
	s.mu.Unlock()

	s.emitTransition(context.Background(), &ev)
}

func (s *Sequencer) applyLocked(st step) domain.TransitionEvent {
	from := s.state.Phase
	st.apply(&s.state)
	return domain.TransitionEvent{
		EventBase: domain.EventBase{Timestamp: s.sched.Now(), Type: domain.EventTransition, Generation: s.gen},
		Step:      st.name,
		From:      from,
		To:        s.state.Phase,
	}
}

// invalidateLocked starts a new generation and stops the old one's steps.
func (s *Sequencer) invalidateLocked() {
	s.gen++
	s.state.Generation = s.gen
	for _, t := range s.pending {
		t.Stop()
	}
	s.pending = nil
}

func (s *Sequencer) snapshotLocked() domain.Snapshot {
	snap := s.state
	snap.Generation = s.gen
	snap.IsEmpty = s.pool.IsEmpty()
	snap.RemainingCount = s.pool.RemainingCount()
	snap.DrawnCount = s.pool.DrawnCount()
	snap.TotalCount = s.pool.Total()
	return snap
}

func (s *Sequencer) publishLocked() {
	snap := s.snapshotLocked()
	for sub := range s.subs {
		select {
		case sub.ch <- snap:
		default:
			select {
			case <-sub.ch:
				s.logger.Debug("subscriber lagging, oldest snapshot dropped", "generation", snap.Generation)
			default:
			}
			select {
			case sub.ch <- snap:
			default:
			}
		}
	}
}

func (s *Sequencer) drawEventLocked(outcome domain.DrawOutcome) *domain.DrawEvent {
	return &domain.DrawEvent{
		EventBase: domain.EventBase{Timestamp: s.sched.Now(), Type: domain.EventDraw, Generation: s.gen},
		Outcome:   outcome,
		SlipKey:   s.state.SlipKey,
		Remaining: s.pool.RemainingCount(),
	}
}

func (s *Sequencer) emitDraw(ctx context.Context, ev *domain.DrawEvent) {
	if s.hooks.OnDraw != nil {
		s.hooks.OnDraw(ctx, ev)
	}
}

func (s *Sequencer) emitTransition(ctx context.Context, ev *domain.TransitionEvent) {
	if s.hooks.OnTransition != nil {
		s.hooks.OnTransition(ctx, ev)
	}
}

func (sub *subscriber) close() {
	sub.once.Do(func() { close(sub.ch) })
}

// Timings returns the timeline the sequencer was built with.
func (s *Sequencer) Timings() domain.Timings {
	return s.timings
}
