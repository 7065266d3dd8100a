package cli

import (
	"fmt"
	"log/slog"

	"github.com/aretw0/slipbox"
	"github.com/aretw0/slipbox/internal/logging"
	"github.com/aretw0/slipbox/pkg/config"
	"github.com/aretw0/slipbox/pkg/domain"
	"github.com/aretw0/slipbox/pkg/observability"
)

// Flags are the command-line overrides shared by every command.
// Nil or empty values keep what the config file says.
type Flags struct {
	ConfigPath string
	Sentences  string
	Seed       *uint64
	IntroGate  *bool
	LogLevel   string
	LogFormat  string
}

// LoadConfig reads the config file and applies the flags on top.
func LoadConfig(f Flags) (config.Config, error) {
	cfg, err := config.Load(f.ConfigPath)
	if err != nil {
		return cfg, err
	}

	if f.Sentences != "" {
		cfg.Sentences = f.Sentences
	}
	if f.Seed != nil {
		cfg.Seed = f.Seed
	}
	if f.IntroGate != nil {
		cfg.IntroGate = *f.IntroGate
	}
	if f.LogLevel != "" {
		cfg.Log.Level = f.LogLevel
	}
	if f.LogFormat != "" {
		cfg.Log.Format = f.LogFormat
	}
	return cfg, cfg.Validate()
}

// NewLogger configures the application logger from cfg.
// It writes to Stderr (to separate from the Stdout card and MCP stdio).
func NewLogger(cfg config.Config) (*slog.Logger, error) {
	level, err := logging.ParseLevel(cfg.Log.Level)
	if err != nil {
		return nil, err
	}
	return logging.New(level, logging.Format(cfg.Log.Format)), nil
}

// NewBox builds the box described by cfg, with logging hooks plus any extra
// hooks (e.g. metrics).
func NewBox(cfg config.Config, logger *slog.Logger, extra ...domain.LifecycleHooks) (*slipbox.Box, error) {
	hooks := append([]domain.LifecycleHooks{observability.LoggingHooks(logger)}, extra...)

	opts := []slipbox.Option{
		slipbox.WithLogger(logger),
		slipbox.WithTimings(cfg.Timings),
		slipbox.WithIntroGate(cfg.IntroGate),
		slipbox.WithLifecycleHooks(observability.Chain(hooks...)),
	}
	if cfg.Sentences != "" {
		opts = append(opts, slipbox.WithSentencesFile(cfg.Sentences))
	}
	if cfg.Seed != nil {
		opts = append(opts, slipbox.WithSeed(*cfg.Seed))
	}

	box, err := slipbox.New(opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create box: %w", err)
	}
	return box, nil
}
