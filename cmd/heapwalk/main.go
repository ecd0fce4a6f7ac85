// Package main provides the entry point for the heapwalk CLI tool.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Sumatoshi-tech/heapwalk/cmd/heapwalk/commands"
	"github.com/Sumatoshi-tech/heapwalk/pkg/version"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "heapwalk",
		Short: "Heapwalk - step-by-step min-heap visualization",
		Long: `Heapwalk animates binary min-heap operations step by step.

Commands:
  run       Animate heap operations in the terminal
  trace     Export a step trace to a file
  plot      Render heap operations as an HTML page
  mcp       Start MCP server for AI agent integration`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(commands.NewRunCommand())
	rootCmd.AddCommand(commands.NewTraceCommand())
	rootCmd.AddCommand(commands.NewPlotCommand())
	rootCmd.AddCommand(commands.NewMCPCommand())
	rootCmd.AddCommand(versionCmd())

	err := rootCmd.Execute()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(_ *cobra.Command, _ []string) {
			fmt.Fprintln(os.Stdout, version.String())
		},
	}
}
