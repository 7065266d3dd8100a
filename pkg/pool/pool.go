// Package pool holds the sentences that have not been drawn yet.
package pool

import (
	"math/rand/v2"
	"time"

	"github.com/aretw0/slipbox/pkg/domain"
)

// Pool hands out each sentence at most once, in random order.
// A Pool is not safe for concurrent use; the sequencer owns it.
type Pool struct {
	all       []string
	remaining []string
	rng       *rand.Rand
}

// Option configures a Pool.
type Option func(*Pool)

// WithSeed makes the shuffle reproducible.
func WithSeed(seed uint64) Option {
	return func(p *Pool) {
		p.rng = rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	}
}

// WithRand injects the random source used by the shuffle.
func WithRand(rng *rand.Rand) Option {
	return func(p *Pool) {
		p.rng = rng
	}
}

// New copies sentences and shuffles them. An empty list is rejected.
func New(sentences []string, opts ...Option) (*Pool, error) {
	if len(sentences) == 0 {
		return nil, domain.ErrNoSentences
	}

	p := &Pool{
		all: append([]string(nil), sentences...),
	}
	for _, opt := range opts {
		opt(p)
	}
	if p.rng == nil {
		now := uint64(time.Now().UnixNano())
		p.rng = rand.New(rand.NewPCG(now, rand.Uint64()))
	}

	p.Restock()
	return p, nil
}

// Restock refills the pool with a fresh permutation of every sentence.
func (p *Pool) Restock() {
	p.remaining = append(p.remaining[:0], p.all...)
	Shuffle(p.remaining, p.rng)
}

// Draw removes and returns one sentence.
// The second result is false when the pool is empty.
func (p *Pool) Draw() (string, bool) {
	n := len(p.remaining)
	if n == 0 {
		return "", false
	}
	// The backing slice is already a uniform permutation, so popping the
	// tail is a uniform draw.
	s := p.remaining[n-1]
	p.remaining[n-1] = ""
	p.remaining = p.remaining[:n-1]
	return s, true
}

// RemainingCount returns how many sentences are left.
func (p *Pool) RemainingCount() int {
	return len(p.remaining)
}

// DrawnCount returns how many sentences were handed out since the last restock.
func (p *Pool) DrawnCount() int {
	return len(p.all) - len(p.remaining)
}

// Total returns the size of the sentence list.
func (p *Pool) Total() int {
	return len(p.all)
}

// IsEmpty reports whether every sentence has been drawn.
func (p *Pool) IsEmpty() bool {
	return len(p.remaining) == 0
}

// Shuffle permutes s in place with Fisher–Yates: for i from len-1 down to 1,
// swap s[i] with s[j] where j is uniform in [0, i].
func Shuffle[T any](s []T, rng *rand.Rand) {
	for i := len(s) - 1; i > 0; i-- {
		j := rng.IntN(i + 1)
		s[i], s[j] = s[j], s[i]
	}
}
