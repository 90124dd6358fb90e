// Package publish regenerates the served feeds (calendar, image, statistics)
// from the stored profile, on a schedule and on demand.
package publish

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/tartampluch/go-lifeweeks/internal/config"
	"github.com/tartampluch/go-lifeweeks/internal/engine"
	"github.com/tartampluch/go-lifeweeks/internal/export"
	"github.com/tartampluch/go-lifeweeks/internal/store"
)

// Updater receives rendered feeds. *server.FeedServer implements it.
type Updater interface {
	Update(route string, data []byte)
}

// Translator localizes the event titles and the image labels.
type Translator interface {
	export.Translator
	EventSummary(week, total int) string
}

// Publisher owns the background refresh loop.
type Publisher struct {
	Store      store.Store
	Clock      engine.Clock
	Translator Translator
	Target     Updater
	WeeksAhead int
	Interval   time.Duration

	trigger chan struct{}
}

// New wires a publisher with the real clock.
func New(st store.Store, tr Translator, target Updater, weeksAhead int, interval time.Duration) *Publisher {
	return &Publisher{
		Store:      st,
		Clock:      engine.RealClock{},
		Translator: tr,
		Target:     target,
		WeeksAhead: weeksAhead,
		Interval:   interval,
		trigger:    make(chan struct{}, config.ChannelBufferSize),
	}
}

// Trigger asks the running loop for an immediate refresh. It never blocks;
// requests made while one is pending are merged.
func (p *Publisher) Trigger() {
	select {
	case p.trigger <- struct{}{}:
	default:
	}
}

// Run refreshes once, then on every tick or trigger until ctx is done.
func (p *Publisher) Run(ctx context.Context) {
	log := slog.With(config.LogKeyComponent, config.CompPublisher)

	p.refreshAndLog(ctx)

	ticker := time.NewTicker(p.Interval)
	defer ticker.Stop()

	log.Info(config.MsgWorkerStart, config.LogKeyInterval, p.Interval)

	for {
		select {
		case <-ctx.Done():
			log.Info(config.MsgWorkerStop)
			return
		case <-p.trigger:
			log.Debug(config.MsgPublishReq)
			p.refreshAndLog(ctx)
		case <-ticker.C:
			p.refreshAndLog(ctx)
		}
	}
}

func (p *Publisher) refreshAndLog(ctx context.Context) {
	if err := p.Refresh(ctx); err != nil {
		slog.Error(config.ErrPublish,
			config.LogKeyComponent, config.CompPublisher,
			config.LogKeyError, err,
		)
	}
}

// Refresh loads the profile, samples the clock once and pushes all three
// feeds. With nothing stored it leaves the target untouched.
func (p *Publisher) Refresh(ctx context.Context) error {
	start := time.Now()

	rec, ok, err := p.Store.Load(ctx)
	if err != nil {
		return err
	}
	if !ok {
		slog.Debug(config.MsgNothingToPub, config.LogKeyComponent, config.CompPublisher)
		return nil
	}

	now := p.Clock.Now()
	profile, err := rec.Profile(now)
	if err != nil {
		return err
	}
	snap := engine.NewSnapshot(profile, now)

	ics, err := engine.BuildCalendar(snap, engine.CalendarOptions{
		WeeksAhead:    p.WeeksAhead,
		FormatSummary: p.Translator.EventSummary,
	})
	if err != nil {
		return err
	}

	var img bytes.Buffer
	if err := export.Render(&img, snap, p.Translator); err != nil {
		return err
	}

	stats, err := json.Marshal(snap.Summary())
	if err != nil {
		return fmt.Errorf("%s: %w", config.ErrPublish, err)
	}

	p.Target.Update(config.RouteCalendar, ics)
	p.Target.Update(config.RouteImage, img.Bytes())
	p.Target.Update(config.RouteStats, stats)

	slog.Info(config.MsgPublished,
		config.LogKeyComponent, config.CompPublisher,
		config.LogKeyLived, snap.WeeksLived(),
		config.LogKeyDuration, time.Since(start).Milliseconds(),
	)
	return nil
}
