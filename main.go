package main

import (
	"os"

	"github.com/cottand/genrew/cmd"
	"github.com/spf13/cobra"
)

func main() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:          "genrew [subcommand]",
	Short:        "genrew — a term rewriting engine for generic signatures",
	Args:         cobra.MinimumNArgs(1),
	SilenceUsage: true,
}

func init() {
	rootCmd.AddCommand(cmd.CompleteCmd)
	rootCmd.AddCommand(cmd.SimplifyCmd)
}
