package lib_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"funcplot/pkg/lib"
)

func TestFormatFor(t *testing.T) {
	cases := map[string]string{
		"plot.png":     "png",
		"plot.PNG":     "png",
		"out/plot.svg": "svg",
		"plot.jpeg":    "jpg",
		"plot.tiff":    "tif",
		"plot.pdf":     "pdf",
		"-":            "png",
		"plot":         "png",
	}
	for path, want := range cases {
		got, err := lib.FormatFor(path)
		require.NoError(t, err, path)
		assert.Equal(t, want, got, path)
	}

	_, err := lib.FormatFor("plot.gif")
	assert.ErrorIs(t, err, lib.ErrUnsupportedFormat)
}

func TestOpenChartSink(t *testing.T) {
	path := filepath.Join(t.TempDir(), "chart.svg")
	sink, err := lib.OpenChartSink(path)
	require.NoError(t, err)
	assert.Equal(t, "svg", sink.Format)

	_, err = sink.Write([]byte("<svg/>"))
	require.NoError(t, err)
	require.NoError(t, sink.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "<svg/>", string(data))
}

func TestOpenChartSink_Stdout(t *testing.T) {
	sink, err := lib.OpenChartSink("-")
	require.NoError(t, err)
	assert.Equal(t, os.Stdout, sink.Writer)
	assert.NoError(t, sink.Close())
}

func TestOpenChartSink_Errors(t *testing.T) {
	_, err := lib.OpenChartSink(filepath.Join(t.TempDir(), "chart.bmp"))
	assert.ErrorIs(t, err, lib.ErrUnsupportedFormat)

	_, err = lib.OpenChartSink(filepath.Join(t.TempDir(), "missing", "chart.png"))
	assert.Error(t, err)
}

func TestChartSink_Discard(t *testing.T) {
	path := filepath.Join(t.TempDir(), "chart.png")
	sink, err := lib.OpenChartSink(path)
	require.NoError(t, err)
	_, err = sink.Write([]byte("partial"))
	require.NoError(t, err)

	sink.Discard()
	assert.NoFileExists(t, path)
	assert.NoError(t, sink.Close())

	stdout, err := lib.OpenChartSink("-")
	require.NoError(t, err)
	stdout.Discard()
	assert.NoError(t, stdout.Close())
}
