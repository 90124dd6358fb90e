package engine

import (
	"bytes"
	"crypto/sha256"
	"fmt"
	"log/slog"
	"time"

	"github.com/emersion/go-ical"
	"github.com/tartampluch/go-lifeweeks/internal/config"
)

// CalendarOptions tunes BuildCalendar.
type CalendarOptions struct {
	// WeeksAhead is how many weeks after the current one get an event.
	WeeksAhead int

	// FormatSummary allows the UI to inject localized strings into the logic layer.
	// week is 1-based.
	FormatSummary func(week, total int) string
}

// BuildCalendar renders an iCalendar feed with one all-day event per week,
// from the current week through WeeksAhead weeks later, clipped to the
// lifespan. Once the lifespan is exceeded it returns a valid empty calendar.
func BuildCalendar(s Snapshot, opts CalendarOptions) ([]byte, error) {
	if s.LifespanExceeded() {
		return []byte(config.StubVCalendar), nil
	}

	cal := ical.NewCalendar()
	cal.Props.SetText(config.PropVersion, config.ICalVersion)
	cal.Props.SetText(config.PropProdid, config.ICalProdid)
	cal.Props.SetText(config.PropXWRCalName, config.ICalCalName)
	cal.Props.SetText(config.PropCalScale, config.ICalScale)
	cal.Props.SetText(config.PropMethod, config.ICalMethod)

	// RFC 7986 refresh hint.
	refreshProp := ical.NewProp(config.PropRefresh)
	refreshProp.SetDuration(config.DefaultICalRefresh)
	cal.Props.Set(refreshProp)

	dtStampProp := ical.NewProp(config.PropDTStamp)
	dtStampProp.SetDateTime(s.Now.UTC())

	total := s.TotalWeeks()
	first := max(s.WeeksLived(), 0)
	last := min(first+max(opts.WeeksAhead, 0), total-1)
	uidBase := calendarUIDBase(s.BirthDate)

	for i := first; i <= last; i++ {
		start, end := WeekDateRange(s.BirthDate, i)

		event := ical.NewEvent()
		event.Props.SetText(config.PropUID, fmt.Sprintf(config.FormatUID, uidBase, i, config.ICalDomain))

		summary := fmt.Sprintf(config.FallbackEventSummary, i+1, total)
		if opts.FormatSummary != nil {
			summary = opts.FormatSummary(i+1, total)
		}
		event.Props.SetText(config.PropSummary, summary)

		// All-day events: DTEND is exclusive, so it is the day after the last one.
		dtStartProp := ical.NewProp(config.PropDTStart)
		dtStartProp.SetDate(start)
		event.Props.Set(dtStartProp)

		dtEndProp := ical.NewProp(config.PropDTEnd)
		dtEndProp.SetDate(end.Add(time.Millisecond))
		event.Props.Set(dtEndProp)

		event.Props.Set(dtStampProp)
		cal.Children = append(cal.Children, event.Component)
	}

	var buf bytes.Buffer
	if err := ical.NewEncoder(&buf).Encode(cal); err != nil {
		return nil, fmt.Errorf("%s: %w", config.ErrICalEncode, err)
	}

	slog.Info(config.MsgCalendarBuilt,
		config.LogKeyComponent, config.CompEngine,
		config.LogKeyEvents, len(cal.Children),
		config.LogKeyLived, s.WeeksLived(),
	)
	return buf.Bytes(), nil
}

// calendarUIDBase is stable for a given birth date, so calendar clients
// update events in place across refreshes.
func calendarUIDBase(birth time.Time) string {
	input := fmt.Sprintf(config.FormatHashInput, config.UIDSalt, birth.UTC().Format(time.RFC3339))
	hash := sha256.Sum256([]byte(input))
	return fmt.Sprintf("%x", hash[:config.UIDHashLength])
}
