package cmdUtils

import (
	"fmt"
	"io"
	"os"

	"golang.org/x/term"

	"funcplot/pkg/plotting"
	"funcplot/pkg/symbolic"
)

var (
	errPrefix   string = "ERR"
	fatalPrefix string = "FATAL"
)

const (
	yellow = "\033[33m"
	red    = "\033[31m"
	reset  = "\033[0m"
)

// paint wraps prefix in color when w is a terminal.
func paint(w io.Writer, color, prefix string) string {
	if f, ok := w.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		return color + prefix + reset
	}
	return prefix
}

// LogError prints one diagnostic line to w.
func LogError(w io.Writer, reason string, err error) {
	// Print in yellow
	fmt.Fprintf(w, "%s %s%s\n", paint(w, yellow, errPrefix), reason, err)
}

func LogFatalError(reason string, err error) {
	// Print in red
	fmt.Fprintf(os.Stderr, "%s %s%s\n", paint(os.Stderr, red, fatalPrefix), reason, err)
	os.Exit(1)
}

// ShowPlotInfo prints a short summary of a rendered plot.
func ShowPlotInfo(w io.Writer, res *plotting.Result, output string) {
	fmt.Fprintf(w, "\t%-16s %s\n", "curve:", res.Label)
	fmt.Fprintf(w, "\t%-16s y = %s\n", "plotted:", symbolic.Format(res.Expr))
	fmt.Fprintf(w, "\t%-16s %s\n", "domain:", res.Domain)
	if len(res.CriticalPoints) > 0 {
		fmt.Fprintf(w, "\t%-16s %.6g\n", "critical points:", res.CriticalPoints)
	}
	fmt.Fprintf(w, "\t%-16s %d (%d finite)\n", "samples:", res.Series.Len(), res.Series.Finite())
	fmt.Fprintf(w, "\t%-16s %s\n", "output:", output)
}
