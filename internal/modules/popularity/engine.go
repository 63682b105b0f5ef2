package popularity

import (
	"context"
	"math/rand/v2"
	"time"
)

// Source loads ranking candidates. A nil window means the whole catalog.
type Source interface {
	Candidates(ctx context.Context, window *Window) ([]Candidate, error)
}

type Engine struct {
	source  Source
	newRand func() *rand.Rand
	limit   int
}

type Option func(*Engine)

// WithRand replaces the per-call random source factory.
func WithRand(f func() *rand.Rand) Option {
	return func(e *Engine) { e.newRand = f }
}

func withLimit(n int) Option {
	return func(e *Engine) { e.limit = n }
}

func NewEngine(source Source, opts ...Option) *Engine {
	e := &Engine{
		source:  source,
		newRand: NewRand,
		limit:   DefaultLimit,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// NewRand returns a freshly seeded generator.
func NewRand() *rand.Rand {
	return rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
}

// Popular ranks this month's videos, or the whole catalog when this month has none.
func (e *Engine) Popular(ctx context.Context, today time.Time) ([]Ranked, error) {
	window := MonthWindow(today)
	candidates, err := e.source.Candidates(ctx, &window)
	if err != nil {
		return nil, err
	}

	if len(candidates) == 0 {
		candidates, err = e.source.Candidates(ctx, nil)
		if err != nil {
			return nil, err
		}
	}

	return Rank(today, candidates, e.newRand(), e.limit), nil
}
