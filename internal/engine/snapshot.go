package engine

import (
	"strconv"
	"time"

	"github.com/tartampluch/go-lifeweeks/internal/config"
)

// Snapshot freezes a profile at one instant. Every derived value (summary,
// grid, calendar) is computed from the same now, so a week boundary crossed
// mid-render cannot produce two current weeks.
type Snapshot struct {
	Profile
	Now time.Time

	weeksLived int
}

// NewSnapshot computes the weeks lived once for the given instant.
func NewSnapshot(p Profile, now time.Time) Snapshot {
	return Snapshot{
		Profile:    p,
		Now:        now,
		weeksLived: WeeksLived(p.BirthDate, now),
	}
}

// WeeksLived is also the index of the current week.
func (s Snapshot) WeeksLived() int { return s.weeksLived }

// TotalWeeks is the number of cells in the grid.
func (s Snapshot) TotalWeeks() int { return TotalWeeks(s.Lifespan) }

// WeeksRemaining never goes below zero.
func (s Snapshot) WeeksRemaining() int { return max(0, s.TotalWeeks()-s.weeksLived) }

// CompletionPercentage is capped at 100.
func (s Snapshot) CompletionPercentage() float64 {
	return completion(s.weeksLived, s.TotalWeeks())
}

// Age counts birthdays passed by Now, not weeks.
func (s Snapshot) Age() int { return Age(s.BirthDate, s.Now) }

// LifespanExceeded reports whether the current week lies past the grid.
func (s Snapshot) LifespanExceeded() bool { return s.weeksLived >= s.TotalWeeks() }

// Summary is the statistics panel. It deliberately carries no birth date.
type Summary struct {
	Age                  int     `json:"age"`
	WeeksLived           int     `json:"weeksLived"`
	WeeksRemaining       int     `json:"weeksRemaining"`
	TotalWeeks           int     `json:"totalWeeks"`
	LifespanYears        int     `json:"lifespanYears"`
	CompletionPercentage float64 `json:"completionPercentage"`
}

// Summary gathers the panel values.
func (s Snapshot) Summary() Summary {
	return Summary{
		Age:                  s.Age(),
		WeeksLived:           s.weeksLived,
		WeeksRemaining:       s.WeeksRemaining(),
		TotalWeeks:           s.TotalWeeks(),
		LifespanYears:        s.Lifespan.Years(),
		CompletionPercentage: s.CompletionPercentage(),
	}
}

// PercentageLabel formats the completion with one decimal, e.g. "30.1".
func (s Summary) PercentageLabel() string {
	return strconv.FormatFloat(s.CompletionPercentage, 'f', config.PercentPrecision, 64)
}
