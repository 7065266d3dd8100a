package runner

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/aretw0/slipbox/internal/logging"
	"github.com/aretw0/slipbox/pkg/domain"
)

// Box is the part of a slipbox the runner drives.
type Box interface {
	RequestDraw(ctx context.Context) domain.DrawOutcome
	RequestReset(ctx context.Context)
	Restart(ctx context.Context)
	Snapshot() domain.Snapshot
	Subscribe(buffer int) (<-chan domain.Snapshot, func())
}

// ContentRenderer is a function that transforms the content before outputting it.
// This allows for TUI rendering (markdown to ANSI) without coupling the core package.
type ContentRenderer func(string) (string, error)

// Runner reads commands and renders snapshots until the input ends,
// a quit command arrives or the context is cancelled.
type Runner struct {
	Box      Box
	Input    io.Reader
	Output   io.Writer
	View     View
	Renderer ContentRenderer
	Logger   *slog.Logger
	JSON     bool
	Headless bool
}

type inputResult struct {
	text string
	err  error
}

// NewRunner creates a Runner for box reading Stdin and writing Stdout.
func NewRunner(box Box, opts ...Option) *Runner {
	r := &Runner{
		Box:    box,
		Input:  os.Stdin,
		Output: os.Stdout,
		Logger: logging.NewNop(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run executes the command loop. Reaching the end of the input, a quit
// command and context cancellation all end the loop without error.
func (r *Runner) Run(ctx context.Context) error {
	view := r.resolveView()

	updates, unsubscribe := r.Box.Subscribe(0)
	defer unsubscribe()

	if !r.Headless {
		view.Message(HelpText)
	}

	lines := r.pump(ctx)
	for {
		select {
		case <-ctx.Done():
			r.Logger.Debug("runner: context cancelled", "err", ctx.Err())
			return nil

		case snap, ok := <-updates:
			if !ok {
				return nil
			}
			if err := view.Render(snap); err != nil {
				return fmt.Errorf("render error: %w", err)
			}

		case in, ok := <-lines:
			if !ok {
				return nil
			}
			if in.err != nil {
				if errors.Is(in.err, io.EOF) {
					return nil
				}
				return fmt.Errorf("input error: %w", in.err)
			}

			quit, err := r.handle(ctx, view, in.text)
			if err != nil {
				return err
			}
			if quit {
				return nil
			}
		}
	}
}

func (r *Runner) resolveView() View {
	if r.View != nil {
		return r.View
	}
	if r.JSON {
		r.View = NewJSONView(r.Output)
	} else {
		r.View = NewTextView(r.Output, r.Renderer)
	}
	return r.View
}

// handle runs one command line and reports whether the runner should stop.
func (r *Runner) handle(ctx context.Context, view View, line string) (bool, error) {
	clean, err := SanitizeInput(line)
	if err != nil {
		r.Logger.Warn("runner: input rejected", "err", err, "size", len(line))
		view.Message(fmt.Sprintf("input rejected: %v", err))
		return false, nil
	}

	cmd, ok := ParseCommand(clean)
	if !ok {
		view.Message(fmt.Sprintf("unknown command %q, try \"help\"", clean))
		return false, nil
	}
	r.Logger.Debug("runner: command", "command", cmd)

	switch cmd {
	case CommandDraw:
		outcome := r.Box.RequestDraw(ctx)
		return false, view.Outcome(outcome, r.Box.Snapshot())
	case CommandReset:
		r.Box.RequestReset(ctx)
	case CommandRestart:
		r.Box.Restart(ctx)
	case CommandState:
		return false, view.Status(r.Box.Snapshot())
	case CommandHelp:
		view.Message(HelpText)
	case CommandQuit:
		return true, nil
	}
	return false, nil
}

// pump reads lines on its own goroutine so Run can keep rendering while
// the terminal is idle.
func (r *Runner) pump(ctx context.Context) <-chan inputResult {
	out := make(chan inputResult)
	reader := bufio.NewReader(r.Input)

	go func() {
		defer close(out)
		for {
			text, err := reader.ReadString('\n')

			// A final line without newline still counts.
			if text != "" {
				select {
				case out <- inputResult{text: text}:
				case <-ctx.Done():
					return
				}
			}
			if err != nil {
				select {
				case out <- inputResult{err: err}:
				case <-ctx.Done():
				}
				return
			}
		}
	}()
	return out
}
