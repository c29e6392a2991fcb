package main

import (
	"fmt"
	"os"

	"github.com/aretw0/turing/internal/cli"
	"github.com/aretw0/turing/internal/config"
	"github.com/spf13/cobra"
)

// env is built once the flags are parsed and closed when the command returns.
var env *cli.Env

var rootCmd = &cobra.Command{
	Use:   "turing [table-file]",
	Short: "Turing is a busy beaver Turing machine simulator",
	Long: `Turing loads an instruction table and runs the machine on a blank tape
until it halts, reporting the steps taken and the symbols left on the tape.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		path, _ := cmd.Flags().GetString("config")
		cfg, err := config.Load(path)
		if err != nil {
			return err
		}
		applyFlags(cmd, &cfg)
		if err := cfg.Validate(); err != nil {
			return err
		}

		env, err = cli.NewEnv(cmd.Context(), cfg, os.Stderr)
		return err
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if env != nil {
			_ = env.Close()
		}
	},
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
	rootCmd.PersistentFlags().String("config", "", "Config file (default ./"+config.DefaultFile+" if present)")
	rootCmd.PersistentFlags().String("log-level", "", "Log level: debug, info, warn or error")
	rootCmd.PersistentFlags().String("log-file", "", "Also write JSON logs to this file")
	rootCmd.PersistentFlags().String("store", "", "Report store: none, memory, file or redis")
	rootCmd.PersistentFlags().String("store-dir", "", "Directory for the file report store")
	rootCmd.PersistentFlags().String("redis-addr", "", "Address of the redis report store")
}

// applyFlags overrides file settings with the flags the user set.
func applyFlags(cmd *cobra.Command, cfg *config.Config) {
	fs := cmd.Flags()
	str := func(name string, dst *string) {
		if fs.Changed(name) {
			*dst, _ = fs.GetString(name)
		}
	}
	u64 := func(name string, dst *uint64) {
		if fs.Changed(name) {
			*dst, _ = fs.GetUint64(name)
		}
	}
	num := func(name string, dst *int) {
		if fs.Changed(name) {
			*dst, _ = fs.GetInt(name)
		}
	}

	str("log-level", &cfg.Log.Level)
	str("log-file", &cfg.Log.File)
	str("store", &cfg.Store.Backend)
	str("store-dir", &cfg.Store.Dir)
	str("redis-addr", &cfg.Store.Redis.Addr)
	str("metrics-addr", &cfg.Metrics.Addr)
	u64("max-steps", &cfg.Run.MaxSteps)
	u64("progress", &cfg.Run.ProgressInterval)
	str("transport", &cfg.MCP.Transport)

	switch cmd.Name() {
	case "serve":
		num("port", &cfg.HTTP.Port)
	case "mcp":
		num("port", &cfg.MCP.Port)
	}

	if fs.Changed("pretty") {
		cfg.Report.Pretty, _ = fs.GetBool("pretty")
	}
}
