package runner

import (
	"io"
	"log/slog"
)

// Option defines a functional option for configuring the Runner.
type Option func(*Runner)

// WithInput sets the command source. Defaults to Stdin.
func WithInput(r io.Reader) Option {
	return func(rn *Runner) {
		rn.Input = r
	}
}

// WithOutput sets the writer used by the default views. Defaults to Stdout.
func WithOutput(w io.Writer) Option {
	return func(rn *Runner) {
		rn.Output = w
	}
}

// WithLogger configures the structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(rn *Runner) {
		rn.Logger = logger
	}
}

// WithRenderer configures the content renderer (e.g. glamour markdown).
func WithRenderer(renderer ContentRenderer) Option {
	return func(rn *Runner) {
		rn.Renderer = renderer
	}
}

// WithView replaces the default text view.
func WithView(view View) Option {
	return func(rn *Runner) {
		rn.View = view
	}
}

// WithJSON switches the default view to JSON lines.
func WithJSON(enabled bool) Option {
	return func(rn *Runner) {
		rn.JSON = enabled
	}
}

// WithHeadless suppresses the greeting and help text.
func WithHeadless(headless bool) Option {
	return func(rn *Runner) {
		rn.Headless = headless
	}
}
