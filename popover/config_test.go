// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

package popover

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/framegrace/texelpop/config"
	"github.com/framegrace/texelpop/geom"
)

func TestDefaultConfigIsValid(t *testing.T) {
	cfg := DefaultConfig()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, geom.Sz(375, 324), cfg.Size())
	assert.True(t, cfg.Direction.IsAuto())
	assert.Equal(t, geom.Sz(20, 10), cfg.EffectiveAngleSize())

	cfg.HideAngle = true
	assert.Equal(t, geom.Size{}, cfg.EffectiveAngleSize())
}

func TestConfigValidateJoinsErrors(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Width = 0
	cfg.AngleSize = geom.Sz(-1, 10)
	cfg.OverlayOpacity = 1.5
	cfg.CornerRadius = -2
	cfg.EntranceDuration = -time.Second
	cfg.Gradient = &Gradient{}

	err := cfg.Validate()
	require.Error(t, err)
	for _, want := range []error{ErrInvalidSize, ErrInvalidAngle, ErrInvalidOpacity, ErrInvalidRadius, ErrInvalidAnimation, ErrGradientEmpty} {
		assert.ErrorIs(t, err, want)
	}
	assert.NotErrorIs(t, cfg.validateLayout(), ErrGradientEmpty)
}

func TestConfigCloneIsDeep(t *testing.T) {
	cfg := DefaultConfig()
	g, err := EvenGradient(DefaultGradientStart, DefaultGradientEnd, tcell.ColorRed, tcell.ColorBlue)
	require.NoError(t, err)
	cfg.Gradient = g

	clone := cfg.Clone()
	clone.Width = 10
	clone.Gradient.Stops[0].Color = tcell.ColorGreen

	assert.Equal(t, 375.0, cfg.Width)
	assert.Equal(t, tcell.ColorRed, cfg.Gradient.Stops[0].Color)
}

func TestGradientValidation(t *testing.T) {
	_, err := NewGradient([]tcell.Color{tcell.ColorRed}, []float64{0, 1}, DefaultGradientStart, DefaultGradientEnd)
	assert.ErrorIs(t, err, ErrGradientMismatch)

	_, err = NewGradient([]tcell.Color{tcell.ColorRed, tcell.ColorBlue}, []float64{0.6, 0.4}, DefaultGradientStart, DefaultGradientEnd)
	assert.ErrorIs(t, err, ErrGradientLocations)

	_, err = NewGradient([]tcell.Color{tcell.ColorRed}, []float64{1.2}, DefaultGradientStart, DefaultGradientEnd)
	assert.ErrorIs(t, err, ErrGradientLocations)

	_, err = NewGradient(nil, nil, DefaultGradientStart, DefaultGradientEnd)
	assert.ErrorIs(t, err, ErrGradientEmpty)

	g, err := EvenGradient(DefaultGradientStart, DefaultGradientEnd, tcell.ColorRed, tcell.ColorGreen, tcell.ColorBlue)
	require.NoError(t, err)
	assert.Equal(t, []float64{0, 0.5, 1}, []float64{g.Stops[0].Location, g.Stops[1].Location, g.Stops[2].Location})
	assert.Equal(t, tcell.ColorGreen, g.ColorAt(0.5))
}

func TestGradientSingleStopIsSolid(t *testing.T) {
	g, err := EvenGradient(DefaultGradientStart, DefaultGradientEnd, tcell.ColorTeal)
	require.NoError(t, err)
	assert.Equal(t, tcell.ColorTeal, g.ColorAt(-1))
	assert.Equal(t, tcell.ColorTeal, g.ColorAt(0.3))
	assert.Equal(t, tcell.ColorTeal, g.ColorAt(2))
}

func TestParseDirection(t *testing.T) {
	cases := map[string]Direction{
		"":       Auto,
		"auto":   Auto,
		" Top ":  Concrete(SideTop),
		"BOTTOM": Concrete(SideBottom),
		"left":   Concrete(SideLeft),
		"right":  Concrete(SideRight),
	}
	for in, want := range cases {
		got, err := ParseDirection(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}
	_, err := ParseDirection("up")
	assert.ErrorIs(t, err, ErrUnknownDirection)

	assert.Equal(t, "auto", Auto.String())
	assert.Equal(t, "left", Concrete(SideLeft).String())
	assert.Equal(t, SideBottom, Auto.SideOr(SideBottom))
}

func loadJSON(t *testing.T, raw string) config.Config {
	t.Helper()
	var cfg config.Config
	require.NoError(t, json.Unmarshal([]byte(raw), &cfg))
	return cfg
}

func TestFromConfigReadsSection(t *testing.T) {
	cfg := loadJSON(t, `{
		"popover": {
			"overlay_color": "black",
			"overlay_opacity": 0.4,
			"background_color": "#1e1e2e",
			"direction": "top",
			"width": 240,
			"height": 120,
			"corner_radius": 6,
			"content_insets": [8, 16, 8, 16],
			"offset": [4, -2],
			"angle_follows_offset": true,
			"angle_size": [24, 12],
			"entrance_ms": 250,
			"damping_ratio": 0.5,
			"spring_velocity": 1,
			"gradient_colors": ["red", "blue"],
			"gradient_locations": [0, 1],
			"gradient_start": [0, 0.5],
			"gradient_end": [1, 0.5]
		}
	}`)

	got, err := FromConfig(cfg)
	require.NoError(t, err)
	assert.Equal(t, tcell.ColorBlack, got.OverlayColor)
	assert.Equal(t, 0.4, got.OverlayOpacity)
	assert.Equal(t, tcell.NewHexColor(0x1e1e2e), got.BackgroundColor)
	assert.Equal(t, Concrete(SideTop), got.Direction)
	assert.Equal(t, geom.Sz(240, 120), got.Size())
	assert.Equal(t, 6.0, got.CornerRadius)
	assert.Equal(t, geom.Insets{Top: 8, Left: 16, Bottom: 8, Right: 16}, got.ContentInsets)
	assert.Equal(t, geom.Offset{Horizontal: 4, Vertical: -2}, got.Offset)
	assert.True(t, got.AngleFollowsOffset)
	assert.Equal(t, geom.Sz(24, 12), got.AngleSize)
	assert.Equal(t, 250*time.Millisecond, got.EntranceDuration)
	assert.Equal(t, 0.5, got.DampingRatio)
	assert.Equal(t, 1.0, got.SpringVelocity)
	require.NotNil(t, got.Gradient)
	assert.Equal(t, geom.Pt(0, 0.5), got.Gradient.Start)
	assert.Equal(t, geom.Pt(1, 0.5), got.Gradient.End)
	assert.Equal(t, tcell.ColorBlue, got.Gradient.Stops[1].Color)
	require.NoError(t, got.Validate())
}

func TestFromConfigMissingSectionGivesDefaults(t *testing.T) {
	got, err := FromConfig(config.Config{})
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), got)
}

func TestFromConfigReportsBadValuesAndKeepsDefaults(t *testing.T) {
	cfg := loadJSON(t, `{
		"popover": {
			"background_color": "not-a-colour",
			"direction": "sideways",
			"offset": [1, 2, 3],
			"gradient_colors": ["red", "blue"],
			"gradient_locations": [1, 0],
			"width": 99
		}
	}`)

	got, err := FromConfig(cfg)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrBadColor)
	assert.ErrorIs(t, err, ErrUnknownDirection)
	assert.ErrorIs(t, err, ErrGradientLocations)

	def := DefaultConfig()
	assert.Equal(t, def.BackgroundColor, got.BackgroundColor)
	assert.True(t, got.Direction.IsAuto())
	assert.Equal(t, geom.Offset{}, got.Offset)
	assert.Nil(t, got.Gradient)
	assert.Equal(t, 99.0, got.Width)
}
