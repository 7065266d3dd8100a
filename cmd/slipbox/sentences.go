package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aretw0/slipbox/pkg/sentences"
)

var sentencesCmd = &cobra.Command{
	Use:   "sentences",
	Short: "Inspect sentence lists",
}

var sentencesListCmd = &cobra.Command{
	Use:   "list [file]",
	Short: "Print the sentences, one per line (built-in list when no file is given)",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		list, err := sentences.Load(sentenceFile(cmd, args))
		if err != nil {
			return err
		}
		for i, s := range list {
			fmt.Fprintf(cmd.OutOrStdout(), "%3d  %s\n", i+1, s)
		}
		return nil
	},
}

var sentencesValidateCmd = &cobra.Command{
	Use:   "validate [file]",
	Short: "Check a sentences file for blank or duplicate entries",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := sentenceFile(cmd, args)
		list, err := sentences.Load(path)
		if err != nil {
			return err
		}
		if len(list) == 0 {
			return fmt.Errorf("%s: no sentences", path)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "ok: %d sentences\n", len(list))
		return nil
	},
}

// sentenceFile prefers the positional argument over --sentences.
func sentenceFile(cmd *cobra.Command, args []string) string {
	if len(args) > 0 {
		return args[0]
	}
	path, _ := cmd.Flags().GetString("sentences")
	return path
}

func init() {
	sentencesCmd.AddCommand(sentencesListCmd, sentencesValidateCmd)
	rootCmd.AddCommand(sentencesCmd)
}
