package main

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/aretw0/turing/internal/presentation/report"
	"github.com/aretw0/turing/internal/presentation/tui"
	"github.com/aretw0/turing/pkg/ports"
	"github.com/spf13/cobra"
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Manage stored run reports",
	Long:  `List, inspect and remove the run reports kept by the configured store (--store).`,
}

var reportLsCmd = &cobra.Command{
	Use:   "ls",
	Short: "List stored reports",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := requireStore()
		if err != nil {
			return err
		}
		ids, err := store.List(cmd.Context())
		if err != nil {
			return fmt.Errorf("listing reports: %w", err)
		}

		out := cmd.OutOrStdout()
		if len(ids) == 0 {
			fmt.Fprintln(out, "No reports found.")
			return nil
		}
		for _, id := range ids {
			r, err := store.Load(cmd.Context(), id)
			if err != nil {
				fmt.Fprintf(out, "- %s (unreadable: %v)\n", id, err)
				continue
			}
			fmt.Fprintf(out, "- %s  %-12s %s  %d steps\n", id, r.Machine, tui.Status(r.Status), r.Steps)
		}
		return nil
	},
}

var reportInspectCmd = &cobra.Command{
	Use:   "inspect <report-id>",
	Short: "Print a stored report",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := requireStore()
		if err != nil {
			return err
		}
		r, err := store.Load(cmd.Context(), args[0])
		if err != nil {
			return fmt.Errorf("loading report '%s': %w", args[0], err)
		}

		if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
			data, err := json.MarshalIndent(r, "", "  ")
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(data))
			return nil
		}
		fmt.Fprint(cmd.OutOrStdout(), report.Summary(r))
		return nil
	},
}

var reportRmCmd = &cobra.Command{
	Use:   "rm <report-id>...",
	Short: "Remove one or more reports",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := requireStore()
		if err != nil {
			return err
		}

		var errs []error
		for _, id := range args {
			if err := store.Delete(cmd.Context(), id); err != nil {
				errs = append(errs, fmt.Errorf("removing '%s': %w", id, err))
				continue
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed report '%s'\n", id)
		}
		return errors.Join(errs...)
	},
}

func init() {
	rootCmd.AddCommand(reportCmd)
	reportCmd.AddCommand(reportLsCmd)
	reportCmd.AddCommand(reportInspectCmd)
	reportCmd.AddCommand(reportRmCmd)

	reportInspectCmd.Flags().Bool("json", false, "Print the raw JSON report")
}

func requireStore() (ports.ReportStore, error) {
	if env.Store == nil {
		return nil, errors.New("no report store configured: use --store file or --store redis")
	}
	return env.Store, nil
}
