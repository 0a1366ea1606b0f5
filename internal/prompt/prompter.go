package prompt

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"sync"

	"github.com/fatih/color"

	"animelib/internal/catalog"
	"animelib/internal/progress"
)

// ErrNoInput is returned when the input stream closes before a valid choice.
var ErrNoInput = errors.New("prompt: input closed before a selection was made")

// Suspender pauses surrounding console output while fn runs.
type Suspender interface {
	Suspend(fn func() error) error
}

type noSuspend struct{}

func (noSuspend) Suspend(fn func() error) error { return fn() }

// Prompter reads candidate selections from a line-oriented console.
//
// A single goroutine owns the input reader and hands complete lines to
// Resolve, so a blocked read never holds up context cancellation.
type Prompter struct {
	in        *bufio.Reader
	out       io.Writer
	suspender Suspender
	heading   *color.Color
	index     *color.Color

	readerOnce sync.Once
	lines      chan readResult
}

type readResult struct {
	line string
	err  error
}

// Option configures a Prompter.
type Option func(*Prompter)

// WithSuspender wraps every prompt in s.Suspend.
func WithSuspender(s Suspender) Option {
	return func(p *Prompter) {
		if s != nil {
			p.suspender = s
		}
	}
}

// WithColor forces coloured output on or off.
func WithColor(enabled bool) Option {
	return func(p *Prompter) {
		setColor(enabled, p.heading, p.index)
	}
}

// New creates a Prompter reading from in and writing to out. Colour is
// enabled only when out is a terminal.
func New(in io.Reader, out io.Writer, opts ...Option) *Prompter {
	p := &Prompter{
		in:        bufio.NewReader(in),
		out:       out,
		suspender: noSuspend{},
		heading:   color.New(color.FgYellow, color.Bold),
		index:     color.New(color.FgCyan),
	}
	setColor(progress.IsTerminal(out), p.heading, p.index)
	for _, opt := range opts {
		opt(p)
	}
	return p
}

func setColor(enabled bool, colors ...*color.Color) {
	for _, c := range colors {
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
}

// Resolve lists candidates for token and returns the operator's choice.
// Empty input picks the first candidate and "0" returns nil. Any other input
// outside 1..len(candidates) asks again.
func (p *Prompter) Resolve(ctx context.Context, token string, candidates []catalog.Anime) (*catalog.Anime, error) {
	if len(candidates) == 0 {
		return nil, nil
	}
	var choice *catalog.Anime
	err := p.suspender.Suspend(func() error {
		p.heading.Fprintf(p.out, "Could not match %s, please pick it manually:\n", token)
		for i, candidate := range candidates {
			fmt.Fprintf(p.out, "%s %s.\n", p.index.Sprintf("%d)", i+1), candidate.Title)
		}
		for {
			if err := ctx.Err(); err != nil {
				return err
			}
			fmt.Fprint(p.out, "Pick one (Default 1, use 0 for none): ")
			line, readErr := p.readLine(ctx)
			if err := ctx.Err(); err != nil {
				fmt.Fprintln(p.out)
				return err
			}
			if readErr != nil && (!errors.Is(readErr, io.EOF) || line == "") {
				if errors.Is(readErr, io.EOF) {
					fmt.Fprintln(p.out)
					return ErrNoInput
				}
				return fmt.Errorf("read selection: %w", readErr)
			}
			selection, ok := parseSelection(line, len(candidates))
			if !ok {
				continue
			}
			if selection > 0 {
				picked := candidates[selection-1]
				choice = &picked
			}
			return nil
		}
	})
	if err != nil {
		return nil, err
	}
	return choice, nil
}

// readLine waits for the next input line or for ctx to end, whichever
// comes first.
func (p *Prompter) readLine(ctx context.Context) (string, error) {
	p.readerOnce.Do(func() {
		p.lines = make(chan readResult, 1)
		go p.readLoop()
	})
	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case res, ok := <-p.lines:
		if !ok {
			return "", io.EOF
		}
		return res.line, res.err
	}
}

func (p *Prompter) readLoop() {
	defer close(p.lines)
	for {
		line, err := p.in.ReadString('\n')
		p.lines <- readResult{line: line, err: err}
		if err != nil {
			return
		}
	}
}

// parseSelection returns the 1-based candidate index, or 0 for none. ok is
// false when the operator must be asked again.
func parseSelection(line string, count int) (int, bool) {
	line = strings.TrimSpace(line)
	if line == "" {
		return 1, true
	}
	value, err := strconv.Atoi(line)
	if err != nil || value < 0 || value > count {
		return 0, false
	}
	return value, true
}
