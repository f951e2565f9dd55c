package cmdUtils_test

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	cmdUtils "funcplot/pkg/cmd-utils"
	"funcplot/pkg/estimate"
	"funcplot/pkg/plotting"
	"funcplot/pkg/symbolic"
)

func TestLogError(t *testing.T) {
	var buf bytes.Buffer
	cmdUtils.LogError(&buf, "Oh oh, mistake mistake: ", errors.New("no solution for y"))
	assert.Equal(t, "ERR Oh oh, mistake mistake: no solution for y\n", buf.String())
}

func TestShowPlotInfo(t *testing.T) {
	res := &plotting.Result{
		Expr:           symbolic.MustParse("x**2", "x"),
		Label:          "x**2",
		Domain:         estimate.Domain{Min: -1, Max: 1},
		CriticalPoints: []float64{0},
		Series:         plotting.Series{X: []float64{-1, 0, 1}, Y: []float64{1, 0, 1}},
	}
	var buf bytes.Buffer
	cmdUtils.ShowPlotInfo(&buf, res, "plot.png")

	out := buf.String()
	require.Equal(t, 6, strings.Count(out, "\n"))
	assert.Contains(t, out, "y = x**2")
	assert.Contains(t, out, "[-1, 1]")
	assert.Contains(t, out, "[0]")
	assert.Contains(t, out, "3 (3 finite)")
	assert.Contains(t, out, "plot.png")
}
