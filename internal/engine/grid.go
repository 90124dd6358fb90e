package engine

import (
	"iter"
	"time"

	"github.com/tartampluch/go-lifeweeks/internal/config"
)

// Status places a week relative to now.
type Status string

const (
	StatusLived   Status = "lived"
	StatusCurrent Status = "current"
	StatusFuture  Status = "future"
)

// Bucket is the gradient band of a lived week. Mid is the empty default,
// which is also what current and future weeks carry.
type Bucket string

const (
	BucketMid    Bucket = ""
	BucketEarly  Bucket = "early"
	BucketRecent Bucket = "recent"
)

// WeekCell is one square of the grid.
type WeekCell struct {
	Index        int
	Status       Status
	Bucket       Bucket
	StaggerDelay time.Duration
}

// Row returns the year row (0-based) the cell sits in.
func (c WeekCell) Row() int { return c.Index / config.WeeksPerYear }

// Column returns the week of the year (0-based) the cell sits in.
func (c WeekCell) Column() int { return c.Index % config.WeeksPerYear }

// Cell classifies the week at index i.
func (s Snapshot) Cell(i int) WeekCell {
	return classify(i, s.weeksLived)
}

// Cells yields every week of the lifespan in order.
func (s Snapshot) Cells() iter.Seq[WeekCell] {
	return func(yield func(WeekCell) bool) {
		total := s.TotalWeeks()
		for i := range total {
			if !yield(s.Cell(i)) {
				return
			}
		}
	}
}

// Grid materializes Cells.
func (s Snapshot) Grid() []WeekCell {
	cells := make([]WeekCell, 0, s.TotalWeeks())
	for c := range s.Cells() {
		cells = append(cells, c)
	}
	return cells
}

// Classify builds the full grid for a birth date and lifespan at now.
func Classify(birth time.Time, l Lifespan, now time.Time) []WeekCell {
	return NewSnapshot(Profile{BirthDate: birth, Lifespan: l}, now).Grid()
}

func classify(i, weeksLived int) WeekCell {
	cell := WeekCell{
		Index:        i,
		StaggerDelay: time.Duration(i/config.WeeksPerYear) * config.StaggerStep,
	}
	switch {
	case i < weeksLived:
		cell.Status = StatusLived
		cell.Bucket = bucketFor(i, weeksLived)
	case i == weeksLived:
		cell.Status = StatusCurrent
	default:
		cell.Status = StatusFuture
	}
	return cell
}

// bucketFor splits lived weeks by their position within the weeks lived so
// far: below 0.33 is early, above 0.66 is recent.
func bucketFor(i, weeksLived int) Bucket {
	position := float64(i) / float64(weeksLived)
	switch {
	case position < config.EarlyThreshold:
		return BucketEarly
	case position > config.RecentThreshold:
		return BucketRecent
	}
	return BucketMid
}
