package main

import (
	"github.com/aretw0/turing/internal/cli"
	"github.com/spf13/cobra"
)

// graphCmd represents the graph command
var graphCmd = &cobra.Command{
	Use:   "graph <table-file>",
	Short: "Export the state diagram",
	Long: `Outputs a Mermaid stateDiagram of the instruction table. With --run the
machine is executed first and the states it visited are highlighted.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		run, _ := cmd.Flags().GetBool("run")
		return cli.Graph(cmd.Context(), cmd.OutOrStdout(), cli.GraphOptions{
			Path:     args[0],
			Run:      run,
			MaxSteps: env.Config.Run.MaxSteps,
		})
	},
}

func init() {
	rootCmd.AddCommand(graphCmd)
	graphCmd.Flags().Bool("run", false, "Run the machine and highlight visited states")
	graphCmd.Flags().Uint64("max-steps", 0, "Step budget for --run (0 = default)")
}
