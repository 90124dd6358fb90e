package engine_test

import (
	"bytes"
	"fmt"
	"testing"

	"github.com/emersion/go-ical"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tartampluch/go-lifeweeks/internal/config"
	"github.com/tartampluch/go-lifeweeks/internal/engine"
)

func decodeCalendar(t *testing.T, data []byte) *ical.Calendar {
	t.Helper()
	cal, err := ical.NewDecoder(bytes.NewReader(data)).Decode()
	require.NoError(t, err)
	return cal
}

func TestBuildCalendar_Events(t *testing.T) {
	p, err := engine.NewProfile(date(2000, 1, 1), 80, date(2024, 1, 1))
	require.NoError(t, err)
	s := engine.NewSnapshot(p, date(2024, 1, 1))

	data, err := engine.BuildCalendar(s, engine.CalendarOptions{WeeksAhead: 2})
	require.NoError(t, err)

	cal := decodeCalendar(t, data)
	events := cal.Events()
	require.Len(t, events, 3)

	first := events[0]
	assert.Equal(t, "Week 1253 of 4160", first.Props.Get(config.PropSummary).Value)
	assert.Equal(t, "20231230", first.Props.Get(config.PropDTStart).Value)
	assert.Equal(t, "20240106", first.Props.Get(config.PropDTEnd).Value)
	assert.NotNil(t, first.Props.Get(config.PropDTStamp))
	assert.Equal(t, "Week 1255 of 4160", events[2].Props.Get(config.PropSummary).Value)

	uids := map[string]bool{}
	for _, e := range events {
		uids[e.Props.Get(config.PropUID).Value] = true
	}
	assert.Len(t, uids, 3, "each week has its own UID")
}

func TestBuildCalendar_StableUIDs(t *testing.T) {
	p, err := engine.NewProfile(date(2000, 1, 1), 80, date(2024, 1, 1))
	require.NoError(t, err)

	first, err := engine.BuildCalendar(engine.NewSnapshot(p, date(2024, 1, 1)), engine.CalendarOptions{})
	require.NoError(t, err)
	second, err := engine.BuildCalendar(engine.NewSnapshot(p, date(2024, 1, 2)), engine.CalendarOptions{})
	require.NoError(t, err)

	a := decodeCalendar(t, first).Events()[0].Props.Get(config.PropUID).Value
	b := decodeCalendar(t, second).Events()[0].Props.Get(config.PropUID).Value
	assert.Equal(t, a, b)
}

func TestBuildCalendar_FormatSummary(t *testing.T) {
	s := snapshotAt(t, 10, 80)
	data, err := engine.BuildCalendar(s, engine.CalendarOptions{
		FormatSummary: func(week, total int) string { return fmt.Sprintf("Semaine %d / %d", week, total) },
	})
	require.NoError(t, err)

	events := decodeCalendar(t, data).Events()
	require.Len(t, events, 1)
	assert.Equal(t, "Semaine 11 / 4160", events[0].Props.Get(config.PropSummary).Value)
}

func TestBuildCalendar_ClippedToLifespan(t *testing.T) {
	s := snapshotAt(t, 2078, 40)
	data, err := engine.BuildCalendar(s, engine.CalendarOptions{WeeksAhead: 12})
	require.NoError(t, err)
	assert.Len(t, decodeCalendar(t, data).Events(), 2)
}

func TestBuildCalendar_LifespanExceeded(t *testing.T) {
	s := snapshotAt(t, 2080, 40)
	data, err := engine.BuildCalendar(s, engine.CalendarOptions{WeeksAhead: 12})
	require.NoError(t, err)
	assert.Equal(t, config.StubVCalendar, string(data))
}
