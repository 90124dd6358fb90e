package engine

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/emersion/go-vcard"
	"github.com/mitchellh/go-homedir"
	"github.com/tartampluch/go-lifeweeks/internal/config"
)

// ErrNoBirthday is returned when no card in the source has a BDAY with a year.
var ErrNoBirthday = errors.New(config.ErrNoBirthday)

// Importer reads a birth date out of a vCard, either a local file or an
// http(s) URL.
type Importer struct {
	Fetcher VCardFetcher // Interface for network abstraction.
}

// ImportBirthDate returns the BDAY of the first card carrying a full date.
// The date is returned as midnight UTC.
func (im *Importer) ImportBirthDate(ctx context.Context, source string) (time.Time, error) {
	reader, err := im.open(ctx, source)
	if err != nil {
		if ctx.Err() != nil {
			return time.Time{}, ctx.Err()
		}
		return time.Time{}, fmt.Errorf("%s: %w", config.ErrVCardOpen, err)
	}
	// Best effort close. Errors in Close() for read-only files are rarely actionable here.
	defer func() { _ = reader.Close() }()

	return firstBirthDate(ctx, reader)
}

func (im *Importer) open(ctx context.Context, source string) (io.ReadCloser, error) {
	source = strings.TrimSpace(source)
	if source == "" {
		return nil, errors.New(config.ErrSourceEmpty)
	}
	if u, err := url.Parse(source); err == nil && (u.Scheme == config.SchemeHTTP || u.Scheme == config.SchemeHTTPS) {
		if im.Fetcher == nil {
			return nil, errors.New(config.ErrFetcherMissing)
		}
		return im.Fetcher.Fetch(ctx, source)
	}
	path, err := homedir.Expand(source)
	if err != nil {
		return nil, err
	}
	return os.Open(path)
}

// readTracker remembers the first error of the underlying reader, so that
// I/O failures are told apart from malformed cards.
type readTracker struct {
	r   io.Reader
	err error
}

func (t *readTracker) Read(p []byte) (int, error) {
	n, err := t.r.Read(p)
	if err != nil && !errors.Is(err, io.EOF) && t.err == nil {
		t.err = err
	}
	return n, err
}

func firstBirthDate(ctx context.Context, r io.Reader) (time.Time, error) {
	source := &readTracker{r: r}
	decoder := vcard.NewDecoder(source)
	failures := 0
	for {
		if err := ctx.Err(); err != nil {
			return time.Time{}, err
		}

		card, err := decoder.Decode()
		if errors.Is(err, io.EOF) {
			return time.Time{}, ErrNoBirthday
		}
		if err != nil {
			if source.err != nil {
				return time.Time{}, fmt.Errorf("%s: %w", config.ErrVCardRead, source.err)
			}
			failures++
			if failures >= config.MaxVCardDecodeErrors {
				return time.Time{}, fmt.Errorf("%s: %w", config.ErrVCardMalformed, err)
			}
			// Log error but continue to next card to maximize data recovery
			slog.Warn(config.MsgSkippedCard,
				config.LogKeyComponent, config.CompEngine,
				config.LogKeyError, err)
			continue
		}
		failures = 0

		bday := card.Get(config.VCardBDAY)
		if bday == nil || bday.Value == "" {
			continue
		}

		birth, err := parseVCardDate(bday.Value)
		if err != nil {
			slog.Debug(config.MsgSkippedDate,
				config.LogKeyComponent, config.CompEngine,
				config.LogKeyValue, bday.Value,
				config.LogKeyError, err)
			continue
		}

		slog.Info(config.MsgBirthImported, config.LogKeyComponent, config.CompEngine)
		return birth, nil
	}
}

// parseVCardDate handles the vCard date forms. Truncated --MM-DD dates are
// recognized but rejected, since week counting needs the year.
func parseVCardDate(value string) (time.Time, error) {
	formatsWithYear := []string{
		config.DateFormatFullDash,
		config.DateFormatFullBasic,
		config.DateFormatRFC3339,
		config.DateFormatFullT,
	}
	for _, f := range formatsWithYear {
		if t, err := time.Parse(f, value); err == nil {
			y, m, d := t.Date()
			return time.Date(y, m, d, 0, 0, 0, 0, time.UTC), nil
		}
	}

	for _, f := range []string{config.DateFormatNoYearD, config.DateFormatNoYearB} {
		if _, err := time.Parse(f, value); err == nil {
			return time.Time{}, errors.New(config.ErrBirthYearMissing)
		}
	}

	return time.Time{}, errors.New(config.ErrDateParse)
}
