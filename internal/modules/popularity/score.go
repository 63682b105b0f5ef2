// Package popularity ranks videos by engagement with a daily freshness bonus.
package popularity

import "time"

// Stats are the engagement counts a score is computed from.
type Stats struct {
	Likes    int64
	Dislikes int64
	Comments int64
}

// DaysOld is the number of calendar days between the creation date and today,
// both taken in today's location. Time of day is ignored.
func DaysOld(today, createdAt time.Time) int64 {
	loc := today.Location()
	ty, tm, td := today.Date()
	cy, cm, cd := createdAt.In(loc).Date()
	t := time.Date(ty, tm, td, 0, 0, 0, 0, time.UTC)
	c := time.Date(cy, cm, cd, 0, 0, 0, 0, time.UTC)
	return int64(t.Sub(c) / (24 * time.Hour))
}

// Bonus is +100 for today, 0 for yesterday and 100 less for every day after.
func Bonus(daysOld int64) int64 {
	return 100 - daysOld*100
}

func Score(s Stats, daysOld int64) int64 {
	return s.Likes*10 - s.Dislikes*5 + s.Comments + Bonus(daysOld)
}

// ScoreAt scores stats for a video created at createdAt as seen on today.
func ScoreAt(today, createdAt time.Time, s Stats) int64 {
	return Score(s, DaysOld(today, createdAt))
}
