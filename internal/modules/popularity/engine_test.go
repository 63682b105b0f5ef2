package popularity

import (
	"context"
	"errors"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSource struct {
	all   []Candidate
	err   error
	calls []*Window
}

func (f *fakeSource) Candidates(_ context.Context, window *Window) ([]Candidate, error) {
	f.calls = append(f.calls, window)
	if f.err != nil {
		return nil, f.err
	}
	if window == nil {
		return f.all, nil
	}
	var out []Candidate
	for _, c := range f.all {
		if window.Contains(c.CreatedAt) {
			out = append(out, c)
		}
	}
	return out, nil
}

func newTestEngine(src Source) *Engine {
	return NewEngine(src, WithRand(func() *rand.Rand { return seeded(5) }))
}

func TestPopularExcludesLastMonthWhenThisMonthHasVideos(t *testing.T) {
	today := date(2025, 3, 24, 9, 0)
	src := &fakeSource{all: []Candidate{
		{VideoID: 1, CreatedAt: date(2025, 2, 27, 9, 0), Stats: Stats{Likes: 1000}},
		{VideoID: 2, CreatedAt: date(2025, 3, 2, 9, 0)},
	}}

	got, err := newTestEngine(src).Popular(context.Background(), today)

	require.NoError(t, err)
	assert.Equal(t, []uint{2}, ids(got))
	require.Len(t, src.calls, 1)
	require.NotNil(t, src.calls[0])
	assert.Equal(t, date(2025, 3, 1, 0, 0), src.calls[0].Start)
}

func TestPopularFallsBackToCatalog(t *testing.T) {
	today := date(2025, 3, 24, 9, 0)
	src := &fakeSource{all: []Candidate{
		{VideoID: 1, CreatedAt: date(2025, 2, 27, 9, 0), Stats: Stats{Likes: 3}},
		{VideoID: 2, CreatedAt: date(2025, 1, 5, 9, 0), Stats: Stats{Likes: 90}},
	}}

	got, err := newTestEngine(src).Popular(context.Background(), today)

	require.NoError(t, err)
	assert.Equal(t, []uint{1, 2}, ids(got))
	require.Len(t, src.calls, 2)
	assert.Nil(t, src.calls[1])
}

func TestPopularEmptyCatalog(t *testing.T) {
	got, err := newTestEngine(&fakeSource{}).Popular(context.Background(), date(2025, 3, 24, 9, 0))
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestPopularPropagatesSourceError(t *testing.T) {
	src := &fakeSource{err: errors.New("db down")}
	_, err := newTestEngine(src).Popular(context.Background(), date(2025, 3, 24, 9, 0))
	assert.EqualError(t, err, "db down")
}

func TestPopularDrawsFreshRandPerCall(t *testing.T) {
	calls := 0
	today := date(2025, 3, 24, 9, 0)
	src := &fakeSource{all: []Candidate{{VideoID: 1, CreatedAt: today}, {VideoID: 2, CreatedAt: today}}}
	e := NewEngine(src, WithRand(func() *rand.Rand {
		calls++
		return seeded(uint64(calls))
	}), withLimit(1))

	for i := 0; i < 3; i++ {
		got, err := e.Popular(context.Background(), today)
		require.NoError(t, err)
		assert.Len(t, got, 1)
	}
	assert.Equal(t, 3, calls)
}

func TestNewRandIsUsable(t *testing.T) {
	r := NewRand()
	assert.Len(t, r.Perm(4), 4)
}
