package prompt_test

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"animelib/internal/catalog"
	"animelib/internal/prompt"
)

type countingSuspender struct {
	calls int
}

func (c *countingSuspender) Suspend(fn func() error) error {
	c.calls++
	return fn()
}

func bleachCandidates() []catalog.Anime {
	return []catalog.Anime{
		{MalID: 41467, Title: "Bleach: Sennen Kessen-hen"},
		{MalID: 269, Title: "Bleach"},
		{MalID: 834, Title: "Bleach: Memories of Nobody"},
	}
}

func TestResolveSelections(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantID  int64
		wantNil bool
		prompts int
	}{
		{name: "empty defaults to first", input: "\n", wantID: 41467, prompts: 1},
		{name: "explicit index", input: "2\n", wantID: 269, prompts: 1},
		{name: "zero means none", input: "0\n", wantNil: true, prompts: 1},
		{name: "surrounding whitespace", input: "  3 \n", wantID: 834, prompts: 1},
		{name: "out of range re-prompts", input: "4\n9\n2\n", wantID: 269, prompts: 3},
		{name: "non numeric re-prompts", input: "abc\n-1\n\n", wantID: 41467, prompts: 3},
		{name: "last line without newline", input: "2", wantID: 269, prompts: 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			suspender := &countingSuspender{}
			p := prompt.New(strings.NewReader(tt.input), &out, prompt.WithSuspender(suspender), prompt.WithColor(false))

			choice, err := p.Resolve(context.Background(), "Bleach", bleachCandidates())
			if err != nil {
				t.Fatalf("Resolve returned error: %v", err)
			}
			if tt.wantNil {
				if choice != nil {
					t.Fatalf("expected no choice, got %+v", choice)
				}
			} else if choice == nil || choice.MalID != tt.wantID {
				t.Fatalf("expected mal id %d, got %+v", tt.wantID, choice)
			}
			if got := strings.Count(out.String(), "Pick one (Default 1, use 0 for none): "); got != tt.prompts {
				t.Fatalf("expected %d prompts, got %d in %q", tt.prompts, got, out.String())
			}
			if suspender.calls != 1 {
				t.Fatalf("expected one suspension, got %d", suspender.calls)
			}
		})
	}
}

func TestResolveListsCandidates(t *testing.T) {
	var out bytes.Buffer
	p := prompt.New(strings.NewReader("1\n"), &out, prompt.WithColor(false))
	if _, err := p.Resolve(context.Background(), "Bleach", bleachCandidates()); err != nil {
		t.Fatalf("Resolve returned error: %v", err)
	}
	want := "Could not match Bleach, please pick it manually:\n" +
		"1) Bleach: Sennen Kessen-hen.\n" +
		"2) Bleach.\n" +
		"3) Bleach: Memories of Nobody.\n"
	if !strings.HasPrefix(out.String(), want) {
		t.Fatalf("unexpected listing %q", out.String())
	}
}

func TestResolveClosedInput(t *testing.T) {
	var out bytes.Buffer
	p := prompt.New(strings.NewReader("x\n"), &out, prompt.WithColor(false))
	_, err := p.Resolve(context.Background(), "Bleach", bleachCandidates())
	if !errors.Is(err, prompt.ErrNoInput) {
		t.Fatalf("expected ErrNoInput, got %v", err)
	}
}

func TestResolveNoCandidates(t *testing.T) {
	p := prompt.New(strings.NewReader(""), &bytes.Buffer{})
	choice, err := p.Resolve(context.Background(), "Bleach", nil)
	if err != nil || choice != nil {
		t.Fatalf("expected nil choice without error, got %+v %v", choice, err)
	}
}

func TestResolveCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	p := prompt.New(strings.NewReader("1\n"), &bytes.Buffer{})
	if _, err := p.Resolve(ctx, "Bleach", bleachCandidates()); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestResolveCancelWhileWaitingForInput(t *testing.T) {
	pr, pw := io.Pipe()
	t.Cleanup(func() { _ = pw.Close() })

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	p := prompt.New(pr, &bytes.Buffer{}, prompt.WithColor(false))

	done := make(chan error, 1)
	go func() {
		_, err := p.Resolve(ctx, "Bleach", bleachCandidates())
		done <- err
	}()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		if !errors.Is(err, context.Canceled) {
			t.Fatalf("expected context.Canceled, got %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Resolve did not return after cancellation")
	}
}

func TestResolveReusesReaderAcrossPrompts(t *testing.T) {
	p := prompt.New(strings.NewReader("2\n0\n"), &bytes.Buffer{}, prompt.WithColor(false))

	first, err := p.Resolve(context.Background(), "Bleach", bleachCandidates())
	if err != nil || first == nil || first.MalID != 269 {
		t.Fatalf("first Resolve = %+v, %v", first, err)
	}
	second, err := p.Resolve(context.Background(), "Bleach", bleachCandidates())
	if err != nil || second != nil {
		t.Fatalf("second Resolve = %+v, %v", second, err)
	}
	if _, err := p.Resolve(context.Background(), "Bleach", bleachCandidates()); !errors.Is(err, prompt.ErrNoInput) {
		t.Fatalf("expected ErrNoInput once input is exhausted, got %v", err)
	}
}
