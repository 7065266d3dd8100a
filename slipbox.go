package slipbox

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/aretw0/slipbox/internal/logging"
	"github.com/aretw0/slipbox/internal/runtime"
	"github.com/aretw0/slipbox/pkg/domain"
	"github.com/aretw0/slipbox/pkg/pool"
	"github.com/aretw0/slipbox/pkg/sentences"
	"github.com/aretw0/slipbox/pkg/timeline"
)

// Box is the high-level entry point for the slipbox library.
// It wraps the sentence pool and the draw sequencer behind one API.
type Box struct {
	seq    *runtime.Sequencer
	owned  *timeline.Realtime
	logger *slog.Logger
	Name   string
}

type config struct {
	sentences     []string
	sentencesFile string
	seed          *uint64
	scheduler     timeline.Scheduler
	timings       *domain.Timings
	introGate     bool
	hooks         domain.LifecycleHooks
	logger        *slog.Logger
	keyFunc       func() string
	name          string
}

// Option defines a functional option for configuring the Box.
type Option func(*config)

// WithSentences sets the sentence list, replacing the embedded one.
func WithSentences(list []string) Option {
	return func(c *config) {
		c.sentences = list
	}
}

// WithSentencesFile loads the sentence list from a YAML or JSON file.
func WithSentencesFile(path string) Option {
	return func(c *config) {
		c.sentencesFile = path
	}
}

// WithSeed makes the shuffle reproducible.
func WithSeed(seed uint64) Option {
	return func(c *config) {
		c.seed = &seed
	}
}

// WithScheduler injects the timeline scheduler (e.g. timeline.Virtual in tests).
// Without it the Box runs its own realtime dispatcher, stopped by Close.
func WithScheduler(s timeline.Scheduler) Option {
	return func(c *config) {
		c.scheduler = s
	}
}

// WithTimings overrides the reveal timeline.
func WithTimings(t domain.Timings) Option {
	return func(c *config) {
		c.timings = &t
	}
}

// WithIntroGate requires one extra draw request after start or reset to
// dismiss the intro screen before slips are drawn.
func WithIntroGate(enabled bool) Option {
	return func(c *config) {
		c.introGate = enabled
	}
}

// WithLifecycleHooks registers observability hooks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(c *config) {
		c.hooks = hooks
	}
}

// WithLogger sets a custom structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *config) {
		c.logger = logger
	}
}

// WithKeyFunc sets the slip key generator (defaults to random UUIDs).
func WithKeyFunc(fn func() string) Option {
	return func(c *config) {
		c.keyFunc = fn
	}
}

// WithName labels the box in logs and adapters.
func WithName(name string) Option {
	return func(c *config) {
		c.name = name
	}
}

// New builds a Box. It fails fast on an empty, blank or duplicated sentence
// list and on invalid timings.
func New(opts ...Option) (*Box, error) {
	cfg := &config{name: "slipbox"}
	for _, opt := range opts {
		opt(cfg)
	}

	var list []string
	var err error
	if cfg.sentences != nil {
		list, err = sentences.Validate(cfg.sentences)
	} else {
		list, err = sentences.Load(cfg.sentencesFile)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load sentences: %w", err)
	}

	var poolOpts []pool.Option
	if cfg.seed != nil {
		poolOpts = append(poolOpts, pool.WithSeed(*cfg.seed))
	}
	p, err := pool.New(list, poolOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create pool: %w", err)
	}

	logger := cfg.logger
	if logger == nil {
		logger = logging.NewNop()
	}
	logger = logger.With("box", cfg.name)

	box := &Box{logger: logger, Name: cfg.name}
	sched := cfg.scheduler
	if sched == nil {
		box.owned = timeline.NewRealtime()
		sched = box.owned
	}

	seqOpts := []runtime.Option{
		runtime.WithLogger(logger),
		runtime.WithLifecycleHooks(cfg.hooks),
		runtime.WithIntroGate(cfg.introGate),
		runtime.WithKeyFunc(cfg.keyFunc),
	}
	if cfg.timings != nil {
		seqOpts = append(seqOpts, runtime.WithTimings(*cfg.timings))
	}

	box.seq, err = runtime.New(p, sched, seqOpts...)
	if err != nil {
		box.Close()
		return nil, err
	}

	logger.Debug("box ready", "sentences", p.Total(), "intro_gate", cfg.introGate)
	return box, nil
}

// RequestDraw is the user gesture "draw a slip". Busy or exhausted boxes
// ignore it; the outcome says which.
func (b *Box) RequestDraw(ctx context.Context) domain.DrawOutcome {
	return b.seq.RequestDraw(ctx)
}

// RequestReset is the user gesture "back to the start". It never fails.
func (b *Box) RequestReset(ctx context.Context) {
	b.seq.Reset(ctx)
}

// Restart refills the box with every sentence and resets.
func (b *Box) Restart(ctx context.Context) {
	b.seq.Restart(ctx)
}

// Snapshot returns the current observable state.
func (b *Box) Snapshot() domain.Snapshot {
	return b.seq.Snapshot()
}

// Subscribe streams snapshots, starting with the current one.
// A buffer below 1 selects the default size.
func (b *Box) Subscribe(buffer int) (<-chan domain.Snapshot, func()) {
	return b.seq.Subscribe(buffer)
}

// Timings returns the reveal timeline in use.
func (b *Box) Timings() domain.Timings {
	return b.seq.Timings()
}

// Close cancels the running sequence, ends subscriptions and stops the
// owned dispatcher.
func (b *Box) Close() {
	if b.seq != nil {
		b.seq.Close()
	}
	if b.owned != nil {
		b.owned.Close()
	}
}
