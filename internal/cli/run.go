package cli

import (
	"context"
	"io"
	"log/slog"

	"github.com/aretw0/slipbox"
	"github.com/aretw0/slipbox/internal/presentation/tui"
	"github.com/aretw0/slipbox/pkg/config"
	"github.com/aretw0/slipbox/pkg/runner"
)

// RunOptions select the terminal mode.
type RunOptions struct {
	Headless bool
	JSON     bool
	Plain    bool
	Input    io.Reader
	Output   io.Writer
}

// RunSession draws slips in the terminal until the user quits or ctx ends.
func RunSession(ctx context.Context, cfg config.Config, logger *slog.Logger, opts RunOptions) error {
	box, err := NewBox(cfg, logger)
	if err != nil {
		return err
	}
	defer box.Close()

	r := runner.NewRunner(box, createRunnerOptions(logger, opts)...)
	if !opts.Headless && !opts.JSON {
		tui.PrintBanner(r.Output, slipbox.Version)
	}

	logger.Info("session started", "sentences", box.Snapshot().TotalCount)
	err = r.Run(ctx)
	logger.Info("session ended", "drawn", box.Snapshot().DrawnCount)
	return err
}

// createRunnerOptions prepares the functional options for the Runner.
func createRunnerOptions(logger *slog.Logger, opts RunOptions) []runner.Option {
	ro := []runner.Option{
		runner.WithLogger(logger),
		runner.WithHeadless(opts.Headless),
		runner.WithJSON(opts.JSON),
	}
	if opts.Input != nil {
		ro = append(ro, runner.WithInput(opts.Input))
	}
	if opts.Output != nil {
		ro = append(ro, runner.WithOutput(opts.Output))
	}

	switch {
	case opts.JSON:
	case opts.Plain || opts.Headless:
		ro = append(ro, runner.WithRenderer(tui.NewPlainRenderer()))
	default:
		ro = append(ro, runner.WithRenderer(tui.NewRenderer()))
	}
	return ro
}
