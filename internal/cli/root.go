// Package cli defines the promptbench command surface.
package cli

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "promptbench",
	Short: "Benchmark cloud vs local chat-completion backends",
	Long: "Promptbench runs a fixed categorized prompt set against a cloud chat-completion\n" +
		"API and a local OpenAI-compatible inference server, collects latency, token and\n" +
		"cost metrics, and produces a side-by-side statistical comparison.",
	SilenceUsage: true,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(compareCmd)
	rootCmd.AddCommand(versionCmd)
}
