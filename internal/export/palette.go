package export

import (
	"fmt"
	"image/color"

	"github.com/tartampluch/go-lifeweeks/internal/config"
	"github.com/tartampluch/go-lifeweeks/internal/engine"
)

// Palette holds the stone-toned colours shared by the desktop grid and the
// exported image.
type Palette struct {
	Background   color.NRGBA
	Text         color.NRGBA
	Muted        color.NRGBA
	Faint        color.NRGBA
	Lived        color.NRGBA
	LivedEarly   color.NRGBA
	LivedRecent  color.NRGBA
	Current      color.NRGBA
	CurrentRing  color.NRGBA
	FutureStroke color.NRGBA
}

// DefaultPalette is parsed once from the hex constants.
var DefaultPalette = Palette{
	Background:   MustHex(config.ColorBackground),
	Text:         MustHex(config.ColorText),
	Muted:        MustHex(config.ColorMuted),
	Faint:        MustHex(config.ColorFaint),
	Lived:        MustHex(config.ColorLived),
	LivedEarly:   MustHex(config.ColorLivedEarly),
	LivedRecent:  MustHex(config.ColorLivedRecent),
	Current:      MustHex(config.ColorCurrent),
	CurrentRing:  MustHex(config.ColorCurrentRing),
	FutureStroke: MustHex(config.ColorFutureStroke),
}

// Fill returns the fill of a cell, or nil for future weeks, which are
// outlined only. With gradient set, lived weeks follow their time bucket.
func (p Palette) Fill(c engine.WeekCell, gradient bool) color.Color {
	switch c.Status {
	case engine.StatusCurrent:
		return p.Current
	case engine.StatusLived:
		if !gradient {
			return p.Lived
		}
		switch c.Bucket {
		case engine.BucketEarly:
			return p.LivedEarly
		case engine.BucketRecent:
			return p.LivedRecent
		}
		return p.Lived
	}
	return nil
}

// ParseHex reads "#rrggbb" or "#rrggbbaa".
func ParseHex(s string) (color.NRGBA, error) {
	c := color.NRGBA{A: 0xff}
	var err error
	switch len(s) {
	case 7:
		_, err = fmt.Sscanf(s, "#%02x%02x%02x", &c.R, &c.G, &c.B)
	case 9:
		_, err = fmt.Sscanf(s, "#%02x%02x%02x%02x", &c.R, &c.G, &c.B, &c.A)
	default:
		err = fmt.Errorf("invalid hex colour %q", s)
	}
	return c, err
}

// MustHex is ParseHex for compile-time constants.
func MustHex(s string) color.NRGBA {
	c, err := ParseHex(s)
	if err != nil {
		panic(err)
	}
	return c
}
