package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"funcplot/pkg/config"
	"funcplot/pkg/estimate"
)

func writeFile(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "funcplot.toml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestDefault(t *testing.T) {
	cfg := config.Default()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, 1000, cfg.Samples)
	assert.Equal(t, "x", cfg.Plot.XLabel)
	assert.Equal(t, "y", cfg.Plot.YLabel)
	assert.True(t, cfg.Plot.Grid)
	assert.Equal(t, config.GridBoth, cfg.Plot.GridWhich)
	assert.Equal(t, config.GridBoth, cfg.Plot.GridAxis)
	assert.Equal(t, estimate.DefaultSettings(), cfg.Domain)
}

func TestLoad(t *testing.T) {
	path := writeFile(t, `
samples = 200
output = "out.svg"
preview = true

[plot]
title = "Parabola"
grid_which = "major"
grid_axis = "y"

[domain]
margin = 2.5
`)
	cfg, err := config.Load(path)
	require.NoError(t, err)

	assert.Equal(t, 200, cfg.Samples)
	assert.Equal(t, "out.svg", cfg.Output)
	assert.True(t, cfg.Preview)
	assert.Equal(t, "Parabola", cfg.Plot.Title)
	assert.Equal(t, config.GridMajor, cfg.Plot.GridWhich)
	assert.Equal(t, config.AxisY, cfg.Plot.GridAxis)
	assert.Equal(t, 2.5, cfg.Domain.Margin)

	// untouched keys keep their defaults
	assert.Equal(t, "x", cfg.Plot.XLabel)
	assert.Equal(t, 10.0, cfg.Plot.WidthIn)
	assert.Equal(t, estimate.DefaultMin, cfg.Domain.DefaultMin)
}

func TestLoad_Invalid(t *testing.T) {
	cases := map[string]string{
		"samples":    "samples = 1",
		"grid scope": "[plot]\ngrid_which = \"sometimes\"",
		"grid axis":  "[plot]\ngrid_axis = \"z\"",
		"size":       "[plot]\nwidth_in = 0",
		"domain":     "[domain]\ndefault_min = 5.0\ndefault_max = -5.0",
		"margin":     "[domain]\nmargin = -1.0",
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := config.Load(writeFile(t, body))
			assert.ErrorIs(t, err, config.ErrInvalid)
		})
	}
}

func TestLoad_Errors(t *testing.T) {
	_, err := config.Load(filepath.Join(t.TempDir(), "missing.toml"))
	assert.Error(t, err)

	_, err = config.Load(writeFile(t, "samples = ["))
	require.Error(t, err)
	assert.NotErrorIs(t, err, config.ErrInvalid)
}

func TestValidate_ReportsEveryProblem(t *testing.T) {
	cfg := config.Default()
	cfg.Samples = 0
	cfg.Plot.GridAxis = "z"

	err := cfg.Validate()
	require.ErrorIs(t, err, config.ErrInvalid)
	assert.Contains(t, err.Error(), "samples")
	assert.Contains(t, err.Error(), "grid_axis")
}

func TestValidate_IgnoresGridOptionsWithoutGrid(t *testing.T) {
	p := config.DefaultPlot()
	p.Grid = false
	p.GridWhich = "sometimes"
	p.GridAxis = "z"
	assert.NoError(t, p.Validate())

	cfg, err := config.Load(writeFile(t, "[plot]\ngrid = false\ngrid_which = \"sometimes\""))
	require.NoError(t, err)
	assert.False(t, cfg.Plot.Grid)
}
