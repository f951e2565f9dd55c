// Package config holds the plot configuration: built-in defaults, an
// optional TOML file and validation.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"
	log "github.com/sirupsen/logrus"

	"funcplot/pkg/estimate"
)

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("invalid configuration")

// Grid scopes.
const (
	GridBoth  = "both"
	GridMajor = "major"
	GridMinor = "minor"
)

// Grid axes. GridBoth doubles as the "both axes" value.
const (
	AxisX = "x"
	AxisY = "y"
)

const (
	DefaultSamples       = 1000
	DefaultFunctionTitle = "Function Plot"
	DefaultEquationTitle = "Equation Plot"
)

// Plot describes how a single chart looks.
type Plot struct {
	Title     string  `toml:"title"`
	XLabel    string  `toml:"x_label"`
	YLabel    string  `toml:"y_label"`
	Grid      bool    `toml:"grid"`
	GridWhich string  `toml:"grid_which"`
	GridAxis  string  `toml:"grid_axis"`
	WidthIn   float64 `toml:"width_in"`
	HeightIn  float64 `toml:"height_in"`
}

// Config is the whole program configuration.
type Config struct {
	Samples int    `toml:"samples"`
	Output  string `toml:"output"`
	Preview bool   `toml:"preview"`

	Plot   Plot              `toml:"plot"`
	Domain estimate.Settings `toml:"domain"`
}

// DefaultPlot returns the chart defaults. Title is left empty so each
// plotter can pick its own.
func DefaultPlot() Plot {
	return Plot{
		XLabel:    "x",
		YLabel:    "y",
		Grid:      true,
		GridWhich: GridBoth,
		GridAxis:  GridBoth,
		WidthIn:   10,
		HeightIn:  6,
	}
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Samples: DefaultSamples,
		Plot:    DefaultPlot(),
		Domain:  estimate.DefaultSettings(),
	}
}

// Load reads a TOML file over the defaults and validates the result. Keys
// missing from the file keep their default value.
func Load(path string) (Config, error) {
	cfg := Default()
	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return cfg, fmt.Errorf("failed to decode TOML file: %w", err)
	}
	for _, key := range md.Undecoded() {
		log.Warnf("%s: unknown key %q", path, key.String())
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks every field and reports all problems at once.
func (c Config) Validate() error {
	var msgs []string
	if c.Samples < 2 {
		msgs = append(msgs, fmt.Sprintf("samples: need at least 2, got %d", c.Samples))
	}
	if c.Domain.DefaultMin >= c.Domain.DefaultMax {
		msgs = append(msgs, fmt.Sprintf("domain: default_min %g must be below default_max %g",
			c.Domain.DefaultMin, c.Domain.DefaultMax))
	}
	if c.Domain.Margin < 0 {
		msgs = append(msgs, fmt.Sprintf("domain.margin: must not be negative, got %g", c.Domain.Margin))
	}
	msgs = append(msgs, c.Plot.problems()...)
	return invalid(msgs)
}

// Validate checks the chart options.
func (p Plot) Validate() error { return invalid(p.problems()) }

func (p Plot) problems() []string {
	var msgs []string
	// grid_which and grid_axis are only read when the grid is drawn.
	if p.Grid {
		switch p.GridWhich {
		case GridBoth, GridMajor, GridMinor:
		default:
			msgs = append(msgs, fmt.Sprintf("plot.grid_which: invalid value '%s', must be one of: both, major, minor", p.GridWhich))
		}
		switch p.GridAxis {
		case GridBoth, AxisX, AxisY:
		default:
			msgs = append(msgs, fmt.Sprintf("plot.grid_axis: invalid value '%s', must be one of: both, x, y", p.GridAxis))
		}
	}
	if p.WidthIn <= 0 || p.HeightIn <= 0 {
		msgs = append(msgs, fmt.Sprintf("plot: figure size %gx%g must be positive", p.WidthIn, p.HeightIn))
	}
	return msgs
}

func invalid(msgs []string) error {
	if len(msgs) == 0 {
		return nil
	}
	return fmt.Errorf("%w: %s", ErrInvalid, strings.Join(msgs, "; "))
}
