package progress

import (
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/schollz/progressbar/v3"
)

const (
	defaultInterval = 120 * time.Millisecond
	spinnerStyle    = 14
)

// Spinner is an indeterminate progress indicator with a message.
type Spinner struct {
	mu       sync.Mutex
	out      io.Writer
	enabled  bool
	interval time.Duration
	bar      *progressbar.ProgressBar
	message  string
	stop     chan struct{}
	done     chan struct{}
}

// Option configures a Spinner.
type Option func(*Spinner)

// WithEnabled forces animation on or off regardless of the writer.
func WithEnabled(enabled bool) Option {
	return func(s *Spinner) {
		s.enabled = enabled
	}
}

// WithInterval sets the frame interval.
func WithInterval(interval time.Duration) Option {
	return func(s *Spinner) {
		if interval > 0 {
			s.interval = interval
		}
	}
}

// New creates a stopped spinner writing to out.
func New(out io.Writer, opts ...Option) *Spinner {
	s := &Spinner{
		out:      out,
		enabled:  IsTerminal(out),
		interval: defaultInterval,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// IsTerminal reports whether w is attached to a terminal.
func IsTerminal(w io.Writer) bool {
	f, ok := w.(interface{ Fd() uintptr })
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// Enabled reports whether the spinner animates.
func (s *Spinner) Enabled() bool {
	return s.enabled
}

// Start begins animating with message. Calling Start on a running spinner
// only updates the message.
func (s *Spinner) Start(message string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.message = message
	if !s.enabled {
		return
	}
	if s.bar == nil {
		s.bar = progressbar.NewOptions(-1,
			progressbar.OptionSetWriter(s.out),
			progressbar.OptionSpinnerType(spinnerStyle),
			progressbar.OptionSetDescription(message),
			progressbar.OptionClearOnFinish(),
		)
	} else {
		s.bar.Describe(message)
	}
	s.startTickerLocked()
}

// SetMessage replaces the text shown next to the spinner.
func (s *Spinner) SetMessage(message string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.message = message
	if s.bar != nil {
		s.bar.Describe(message)
	}
}

// Message returns the current spinner text.
func (s *Spinner) Message() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.message
}

// Println writes a full line above the spinner.
func (s *Spinner) Println(a ...any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.bar != nil {
		_ = s.bar.Clear()
	}
	fmt.Fprintln(s.out, a...)
	if s.bar != nil && s.stop != nil {
		_ = s.bar.RenderBlank()
	}
}

// Suspend stops and clears the spinner, runs fn, then resumes animating if
// the spinner was running before.
func (s *Spinner) Suspend(fn func() error) error {
	s.mu.Lock()
	wasRunning := s.stop != nil
	s.stopTickerLocked()
	if s.bar != nil {
		_ = s.bar.Clear()
	}
	s.mu.Unlock()

	err := fn()

	if wasRunning {
		s.mu.Lock()
		s.startTickerLocked()
		s.mu.Unlock()
	}
	return err
}

// Stop halts the animation and clears the spinner line.
func (s *Spinner) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stopTickerLocked()
	if s.bar != nil {
		_ = s.bar.Finish()
		s.bar = nil
	}
}

func (s *Spinner) startTickerLocked() {
	if s.stop != nil || s.bar == nil {
		return
	}
	stop := make(chan struct{})
	done := make(chan struct{})
	s.stop, s.done = stop, done
	bar := s.bar
	_ = bar.RenderBlank()
	go func() {
		defer close(done)
		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()
		for {
			select {
			case <-stop:
				return
			case <-ticker.C:
				s.mu.Lock()
				_ = bar.Add(1)
				s.mu.Unlock()
			}
		}
	}()
}

// stopTickerLocked must be called with s.mu held; it releases the lock while
// waiting for the ticker goroutine to exit.
func (s *Spinner) stopTickerLocked() {
	if s.stop == nil {
		return
	}
	stop, done := s.stop, s.done
	s.stop, s.done = nil, nil
	close(stop)
	s.mu.Unlock()
	<-done
	s.mu.Lock()
}
