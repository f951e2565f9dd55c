package main

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/peterh/liner"
	"golang.org/x/term"
)

// Prompter reads one answer per prompt.
type Prompter interface {
	Prompt(prompt string) (string, error)
	Close() error
}

// newPrompter uses line editing on a terminal and a plain line reader
// otherwise, so answers can be piped in. Plain prompts are written to out.
func newPrompter(out io.Writer) Prompter {
	if term.IsTerminal(int(os.Stdin.Fd())) && term.IsTerminal(int(os.Stdout.Fd())) {
		line := liner.NewLiner()
		line.SetCtrlCAborts(true)
		return &linePrompter{line: line}
	}
	return newScanPrompter(os.Stdin, out)
}

type linePrompter struct {
	line *liner.State
}

func (p *linePrompter) Prompt(prompt string) (string, error) {
	answer, err := p.line.Prompt(prompt)
	if err != nil {
		return "", err
	}
	if answer != "" {
		p.line.AppendHistory(answer)
	}
	return answer, nil
}

func (p *linePrompter) Close() error { return p.line.Close() }

type scanPrompter struct {
	in  *bufio.Scanner
	out io.Writer
}

func newScanPrompter(r io.Reader, w io.Writer) *scanPrompter {
	return &scanPrompter{in: bufio.NewScanner(r), out: w}
}

func (p *scanPrompter) Prompt(prompt string) (string, error) {
	fmt.Fprint(p.out, prompt)
	if !p.in.Scan() {
		if err := p.in.Err(); err != nil {
			return "", err
		}
		return "", io.EOF
	}
	return p.in.Text(), nil
}

func (p *scanPrompter) Close() error { return nil }
