package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aretw0/slipbox/internal/presentation/graph"
	"github.com/aretw0/slipbox/internal/runtime"
)

// timelineCmd represents the timeline command
var timelineCmd = &cobra.Command{
	Use:   "timeline",
	Short: "Export the draw timeline as a Mermaid gantt chart",
	Long:  `Prints the steps of a draw with the configured timings, as a Mermaid diagram (gantt).`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, _, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		redraw, _ := cmd.Flags().GetBool("redraw")

		title := "First draw"
		if redraw {
			title = "Redraw"
		}
		fmt.Fprint(cmd.OutOrStdout(), graph.GenerateMermaid(title, runtime.Plan(cfg.Timings, redraw)))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(timelineCmd)
	timelineCmd.Flags().Bool("redraw", false, "Show the timeline of a draw while a slip is displayed")
}
