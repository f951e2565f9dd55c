package main

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/peterh/liner"
	log "github.com/sirupsen/logrus"

	cmdUtils "funcplot/pkg/cmd-utils"
	"funcplot/pkg/config"
	"funcplot/pkg/fingerprint"
	"funcplot/pkg/plotting"
	"funcplot/pkg/render"
)

const (
	mistakeMarker = "Oh oh, mistake mistake: "
	usage         = "mistake mistake, you need to input 'function' or 'equation'"
)

// rendererFunc builds the renderer for one plot. preview is nil when no
// text preview is wanted.
type rendererFunc func(path string, preview io.Writer) plotting.Renderer

func chartRenderer(path string, preview io.Writer) plotting.Renderer {
	return render.New(path, preview)
}

// session asks for one plot request and carries it out.
type session struct {
	prompter    Prompter
	out         io.Writer
	cfg         config.Config
	newRenderer rendererFunc
}

// run returns an error only when reading the answers fails. A plot that
// fails is reported on out and is not an error.
func (s *session) run() error {
	mode, err := s.ask("Is the input a function or an equation? (Enter 'function' or 'equation'): ", "")
	if err != nil {
		return quiet(err)
	}
	mode = strings.ToLower(mode)
	if mode != "function" && mode != "equation" {
		fmt.Fprintln(s.out, usage)
		return nil
	}

	text, err := s.ask("Enter the function or equation: ", "")
	if err != nil {
		return quiet(err)
	}
	cfg, err := s.askPlot(s.cfg.Plot)
	if err != nil {
		return quiet(err)
	}

	output := s.cfg.Output
	if output == "" {
		output = fingerprint.Of(mode, text).FileName("png")
	}
	var preview io.Writer
	if s.cfg.Preview {
		preview = s.out
	}
	p := plotting.New(s.newRenderer(output, preview), s.cfg.Domain)

	var res *plotting.Result
	if mode == "function" {
		res, err = p.PlotFunction(text, s.cfg.Samples, cfg)
	} else {
		res, err = p.PlotEquation(text, s.cfg.Samples, cfg)
	}
	if err != nil {
		log.Debugf("%s %q failed: %v", mode, text, err)
		cmdUtils.LogError(s.out, mistakeMarker, err)
		return nil
	}

	cmdUtils.ShowPlotInfo(s.out, res, output)
	return nil
}

// askPlot prompts for the chart options. Empty answers keep cfg's values.
func (s *session) askPlot(cfg config.Plot) (config.Plot, error) {
	var err error
	ask := func(prompt string, dst *string) {
		if err == nil {
			*dst, err = s.ask(prompt, *dst)
		}
	}

	grid := "no"
	if cfg.Grid {
		grid = "yes"
	}
	ask("Enter the plot title: ", &cfg.Title)
	ask("Enter the x-axis label: ", &cfg.XLabel)
	ask("Enter the y-axis label: ", &cfg.YLabel)
	ask("Show grid? (yes/no): ", &grid)
	ask("Grid lines to apply ('both', 'major', 'minor'): ", &cfg.GridWhich)
	ask("Grid axis ('both', 'x', 'y'): ", &cfg.GridAxis)
	if err != nil {
		return cfg, err
	}

	grid = strings.ToLower(grid)
	cfg.Grid = grid == "yes" || grid == "y"
	cfg.GridWhich = strings.ToLower(cfg.GridWhich)
	cfg.GridAxis = strings.ToLower(cfg.GridAxis)
	return cfg, nil
}

// ask prompts once and trims the answer, falling back to def when empty.
func (s *session) ask(prompt, def string) (string, error) {
	answer, err := s.prompter.Prompt(prompt)
	if err != nil {
		return "", err
	}
	if answer = strings.TrimSpace(answer); answer == "" {
		return def, nil
	}
	return answer, nil
}

// quiet drops the errors of a user ending the session early.
func quiet(err error) error {
	if errors.Is(err, io.EOF) || errors.Is(err, liner.ErrPromptAborted) {
		log.Debugf("input closed: %v", err)
		return nil
	}
	return err
}
