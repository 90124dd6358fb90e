package engine

import (
	"fmt"
	"strings"
	"time"

	"github.com/tartampluch/go-lifeweeks/internal/config"
)

// Profile is a validated birth date and lifespan pair.
type Profile struct {
	BirthDate time.Time
	Lifespan  Lifespan
}

// ValidateBirthDate rejects missing dates, dates after now, and dates more
// than config.MaxAgeYears before now.
func ValidateBirthDate(birth, now time.Time) error {
	switch {
	case birth.IsZero():
		return ErrBirthDateMissing
	case birth.After(now):
		return ErrBirthDateFuture
	case birth.Before(now.AddDate(-config.MaxAgeYears, 0, 0)):
		return ErrBirthDateTooOld
	}
	return nil
}

// NewProfile validates both inputs against now.
func NewProfile(birth time.Time, years int, now time.Time) (Profile, error) {
	if err := ValidateBirthDate(birth, now); err != nil {
		return Profile{}, err
	}
	lifespan, err := NewLifespan(years)
	if err != nil {
		return Profile{}, err
	}
	return Profile{BirthDate: birth, Lifespan: lifespan}, nil
}

// ParseBirthDate parses a YYYY-MM-DD value as midnight UTC.
// Blank input yields ErrBirthDateMissing.
func ParseBirthDate(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, ErrBirthDateMissing
	}
	t, err := time.Parse(config.DateFormatInput, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("%s: %w", config.ErrDateParse, err)
	}
	return t, nil
}
