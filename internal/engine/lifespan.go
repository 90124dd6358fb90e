package engine

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/tartampluch/go-lifeweeks/internal/config"
)

// Validation errors. They wrap nothing and are meant for errors.Is, so the
// UI can map each one to its own translated message.
var (
	ErrBirthDateMissing = errors.New(config.ErrBirthDateMissing)
	ErrBirthDateFuture  = errors.New(config.ErrBirthDateFuture)
	ErrBirthDateTooOld  = errors.New(config.ErrBirthDateTooOld)
	ErrLifespanRange    = errors.New(config.ErrLifespanRange)
)

// Lifespan is an expected lifespan in whole years, always within
// [config.MinLifespanYears, config.MaxLifespanYears].
// The zero value reads as config.DefaultLifespanYears.
type Lifespan struct {
	years int
}

// NewLifespan validates years against the accepted range.
func NewLifespan(years int) (Lifespan, error) {
	if years < config.MinLifespanYears || years > config.MaxLifespanYears {
		return Lifespan{}, fmt.Errorf("%w: %d", ErrLifespanRange, years)
	}
	return Lifespan{years: years}, nil
}

// DefaultLifespan returns the lifespan used when nothing else is known.
func DefaultLifespan() Lifespan {
	return Lifespan{years: config.DefaultLifespanYears}
}

// Years returns the lifespan in years.
func (l Lifespan) Years() int {
	if l.years == 0 {
		return config.DefaultLifespanYears
	}
	return l.years
}

func (l Lifespan) String() string {
	return strconv.Itoa(l.Years())
}
