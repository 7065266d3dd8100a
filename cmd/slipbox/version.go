package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/aretw0/slipbox"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of slipbox",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "slipbox version %s\n", strings.TrimSpace(slipbox.Version))
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
