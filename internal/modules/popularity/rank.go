package popularity

import (
	"math/rand/v2"
	"sort"
	"time"
)

const DefaultLimit = 5

type Candidate struct {
	VideoID   uint
	CreatedAt time.Time
	Stats
}

type Ranked struct {
	Candidate
	Score int64
}

// Window is the half-open interval [Start, End).
type Window struct {
	Start time.Time
	End   time.Time
}

// MonthWindow covers the calendar month containing today, in today's location.
func MonthWindow(today time.Time) Window {
	y, m, _ := today.Date()
	start := time.Date(y, m, 1, 0, 0, 0, 0, today.Location())
	return Window{Start: start, End: start.AddDate(0, 1, 0)}
}

func (w Window) Contains(t time.Time) bool {
	return !t.Before(w.Start) && t.Before(w.End)
}

// Rank scores every candidate and picks at most limit of them.
//
// When all scores are equal the pick is a uniform random sample drawn from
// rng. Otherwise candidates are ordered by score descending, then by video id
// ascending.
func Rank(today time.Time, candidates []Candidate, rng *rand.Rand, limit int) []Ranked {
	if limit <= 0 {
		limit = DefaultLimit
	}
	if len(candidates) == 0 {
		return []Ranked{}
	}

	ranked := make([]Ranked, len(candidates))
	distinct := make(map[int64]struct{}, len(candidates))
	for i, c := range candidates {
		score := ScoreAt(today, c.CreatedAt, c.Stats)
		ranked[i] = Ranked{Candidate: c, Score: score}
		distinct[score] = struct{}{}
	}

	k := min(limit, len(ranked))

	if len(distinct) <= 1 {
		out := make([]Ranked, 0, k)
		for _, idx := range rng.Perm(len(ranked))[:k] {
			out = append(out, ranked[idx])
		}
		return out
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].Score != ranked[j].Score {
			return ranked[i].Score > ranked[j].Score
		}
		return ranked[i].VideoID < ranked[j].VideoID
	})
	return ranked[:k]
}
