package engine_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tartampluch/go-lifeweeks/internal/engine"
)

// snapshotAt builds a snapshot whose weeks lived equals lived.
func snapshotAt(t *testing.T, lived, years int) engine.Snapshot {
	t.Helper()
	birth := date(1990, 1, 1)
	now := birth.Add(time.Duration(lived)*7*24*time.Hour + time.Hour)
	return engine.NewSnapshot(engine.Profile{BirthDate: birth, Lifespan: mustLifespan(t, years)}, now)
}

func TestSnapshot_Grid(t *testing.T) {
	s := snapshotAt(t, 100, 80)
	grid := s.Grid()
	require.Len(t, grid, 4160)

	counts := map[engine.Status]int{}
	for i, c := range grid {
		assert.Equal(t, i, c.Index)
		counts[c.Status]++
	}
	assert.Equal(t, 100, counts[engine.StatusLived])
	assert.Equal(t, 1, counts[engine.StatusCurrent])
	assert.Equal(t, 4059, counts[engine.StatusFuture])

	assert.Equal(t, engine.StatusLived, grid[99].Status)
	assert.Equal(t, engine.StatusCurrent, grid[100].Status)
	assert.Equal(t, engine.StatusFuture, grid[101].Status)
}

func TestSnapshot_BirthIsNow(t *testing.T) {
	birth := date(2024, 1, 1)
	s := engine.NewSnapshot(engine.Profile{BirthDate: birth, Lifespan: mustLifespan(t, 80)}, birth)
	require.Equal(t, 0, s.WeeksLived())

	counts := map[engine.Status]int{}
	for _, c := range s.Grid() {
		counts[c.Status]++
		if c.Index != 0 {
			assert.Equal(t, engine.StatusFuture, c.Status, "index %d", c.Index)
		}
	}
	assert.Equal(t, engine.StatusCurrent, s.Cell(0).Status)
	assert.Equal(t, engine.BucketMid, s.Cell(0).Bucket)
	assert.Equal(t, 0, counts[engine.StatusLived])
	assert.Equal(t, 1, counts[engine.StatusCurrent])
	assert.Equal(t, 4159, counts[engine.StatusFuture])
}

func TestClassify_Idempotent(t *testing.T) {
	birth := date(2000, 1, 1)
	now := date(2024, 1, 1)
	l := mustLifespan(t, 80)

	first := engine.Classify(birth, l, now)
	second := engine.Classify(birth, l, now)
	assert.Equal(t, first, second)

	s := engine.NewSnapshot(engine.Profile{BirthDate: birth, Lifespan: l}, now)
	assert.Equal(t, s.Grid(), s.Grid())
	assert.Equal(t, first, s.Grid(), "eager and one-shot classification agree")

	var lazy []engine.WeekCell
	for c := range s.Cells() {
		lazy = append(lazy, c)
	}
	assert.Equal(t, first, lazy)
}

func TestSnapshot_Buckets(t *testing.T) {
	s := snapshotAt(t, 100, 80)

	tests := []struct {
		index int
		want  engine.Bucket
	}{
		{0, engine.BucketEarly},
		{10, engine.BucketEarly},
		{32, engine.BucketEarly},
		{33, engine.BucketMid},
		{50, engine.BucketMid},
		{66, engine.BucketMid},
		{67, engine.BucketRecent},
		{70, engine.BucketRecent},
		{99, engine.BucketRecent},
		{100, engine.BucketMid}, // current
		{200, engine.BucketMid}, // future
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, s.Cell(tt.index).Bucket, "index %d", tt.index)
	}
}

func TestSnapshot_StaggerDelay(t *testing.T) {
	s := snapshotAt(t, 0, 80)
	assert.Equal(t, time.Duration(0), s.Cell(0).StaggerDelay)
	assert.Equal(t, time.Duration(0), s.Cell(51).StaggerDelay)
	assert.Equal(t, 20*time.Millisecond, s.Cell(52).StaggerDelay)
	assert.Equal(t, 60*time.Millisecond, s.Cell(3*52+7).StaggerDelay)

	c := s.Cell(3*52 + 7)
	assert.Equal(t, 3, c.Row())
	assert.Equal(t, 7, c.Column())
}

func TestSnapshot_EdgeCases(t *testing.T) {
	t.Run("BornThisWeek", func(t *testing.T) {
		s := snapshotAt(t, 0, 80)
		assert.Equal(t, engine.StatusCurrent, s.Cell(0).Status)
		assert.Equal(t, engine.StatusFuture, s.Cell(1).Status)
	})

	t.Run("LifespanExceeded", func(t *testing.T) {
		s := snapshotAt(t, 2500, 40)
		require.True(t, s.LifespanExceeded())
		grid := s.Grid()
		require.Len(t, grid, 2080)
		for _, c := range grid {
			assert.Equal(t, engine.StatusLived, c.Status)
		}
		assert.Equal(t, 0, s.WeeksRemaining())
		assert.Equal(t, 100.0, s.CompletionPercentage())
	})

	t.Run("LifespanChangeRecomputes", func(t *testing.T) {
		a := snapshotAt(t, 100, 80)
		b := engine.NewSnapshot(engine.Profile{BirthDate: a.BirthDate, Lifespan: mustLifespan(t, 90)}, a.Now)
		assert.Equal(t, 4680, len(b.Grid()))
		assert.Equal(t, a.WeeksLived(), b.WeeksLived())
	})
}

func TestSnapshot_CellsStopsEarly(t *testing.T) {
	s := snapshotAt(t, 10, 80)
	var seen []int
	for c := range s.Cells() {
		if c.Index == 5 {
			break
		}
		seen = append(seen, c.Index)
	}
	assert.Equal(t, []int{0, 1, 2, 3, 4}, seen)
}

func TestClassify(t *testing.T) {
	birth := date(2000, 1, 1)
	grid := engine.Classify(birth, mustLifespan(t, 80), date(2024, 1, 1))
	require.Len(t, grid, 4160)
	assert.Equal(t, engine.StatusCurrent, grid[1252].Status)
}

func TestSnapshot_Summary(t *testing.T) {
	p, err := engine.NewProfile(date(2000, 1, 1), 80, date(2024, 1, 1))
	require.NoError(t, err)
	sum := engine.NewSnapshot(p, date(2024, 1, 1)).Summary()

	assert.Equal(t, 24, sum.Age)
	assert.Equal(t, 1252, sum.WeeksLived)
	assert.Equal(t, 2908, sum.WeeksRemaining)
	assert.Equal(t, 4160, sum.TotalWeeks)
	assert.Equal(t, "30.1", sum.PercentageLabel())

	raw, err := json.Marshal(sum)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"weeksLived":1252`)
	assert.NotContains(t, string(raw), "2000", "summary must not leak the birth date")
}
