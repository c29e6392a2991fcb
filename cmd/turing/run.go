package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/aretw0/turing/internal/cli"
	"github.com/aretw0/turing/internal/presentation/tui"
	"github.com/aretw0/turing/pkg/domain"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// runCmd represents the run command
var runCmd = &cobra.Command{
	Use:   "run <table-file>",
	Short: "Run a machine until it halts",
	Long: `Loads the instruction table, prints its states and instructions, runs the
machine from a blank tape and prints the elapsed time, the throughput and the
busy beaver tally. Ctrl+C stops a long run and still prints the tally.`,
	Args: cobra.ExactArgs(1),
	RunE: runMachine,
}

func runMachine(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	initial, _ := cmd.Flags().GetString("initial-state")
	blank, _ := cmd.Flags().GetUint8("blank")
	showTape, _ := cmd.Flags().GetBool("tape")

	// A pretty report from the config file only applies on a terminal.
	pretty := env.Config.Report.Pretty
	if pretty && !cmd.Flags().Changed("pretty") {
		pretty = tui.IsTerminal(os.Stdout)
	}

	if addr := env.Config.Metrics.Addr; addr != "" {
		srv := env.ServeMetrics(addr)
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = srv.Shutdown(shutdownCtx)
		}()
	}

	_, err := cli.Run(ctx, cmd.OutOrStdout(), env, cli.RunOptions{
		Path:         args[0],
		InitialState: initial,
		Blank:        domain.Symbol(blank),
		Pretty:       pretty,
		ShowTape:     showTape,
	})
	return err
}

func addRunFlags(fs *pflag.FlagSet) {
	fs.Uint64("max-steps", 0, "Stop after this many steps (0 = no limit)")
	fs.Uint64("progress", 0, "Log progress every N steps (0 = off)")
	fs.Bool("pretty", false, "Render a Markdown report")
	fs.Bool("tape", false, "Print the final tape with the head marker")
	fs.String("initial-state", "", "Start in this state instead of the first one listed")
	fs.Uint8("blank", 0, "Symbol that fills new tape cells")
	fs.String("metrics-addr", "", "Serve Prometheus metrics on this address during the run")
}

func init() {
	rootCmd.AddCommand(runCmd)
	addRunFlags(runCmd.Flags())

	// 'turing <table-file>' is the same as 'turing run <table-file>'.
	addRunFlags(rootCmd.Flags())
	rootCmd.Args = cobra.ExactArgs(1)
	rootCmd.RunE = runMachine
}
