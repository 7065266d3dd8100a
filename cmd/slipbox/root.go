package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/aretw0/slipbox/internal/cli"
	"github.com/aretw0/slipbox/pkg/config"
)

var rootCmd = &cobra.Command{
	Use:   "slipbox",
	Short: "slipbox draws greeting-card slips from an envelope",
	Long: `slipbox keeps an envelope of pre-written sentences and reveals them one slip
at a time, never repeating one, with a short animation timeline per draw.`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	// Persistent flags (available to all commands)
	flags := rootCmd.PersistentFlags()
	flags.StringP("config", "c", "", "Path to a slipbox.yaml config file")
	flags.String("sentences", "", "Path to a YAML or JSON sentences file (default: built-in list)")
	flags.Uint64("seed", 0, "Shuffle seed, for a reproducible draw order")
	flags.Bool("intro-gate", false, "Require one click to open the card before the first draw")
	flags.String("log-level", "", "Log level: debug, info, warn, error")
	flags.String("log-format", "", "Log format: text or json")
}

// loadConfig merges the config file with the persistent flags.
func loadConfig(cmd *cobra.Command) (config.Config, *slog.Logger, error) {
	flags := cmd.Flags()

	f := cli.Flags{}
	f.ConfigPath, _ = flags.GetString("config")
	f.Sentences, _ = flags.GetString("sentences")
	f.LogLevel, _ = flags.GetString("log-level")
	f.LogFormat, _ = flags.GetString("log-format")
	if flags.Changed("seed") {
		seed, _ := flags.GetUint64("seed")
		f.Seed = &seed
	}
	if flags.Changed("intro-gate") {
		gate, _ := flags.GetBool("intro-gate")
		f.IntroGate = &gate
	}

	cfg, err := cli.LoadConfig(f)
	if err != nil {
		return cfg, nil, err
	}
	logger, err := cli.NewLogger(cfg)
	if err != nil {
		return cfg, nil, err
	}
	return cfg, logger, nil
}
