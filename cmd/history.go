package cmd

import (
	"errors"
	"fmt"
	"time"

	"github.com/mj1618/a11y-conform/internal/output"
	"github.com/mj1618/a11y-conform/internal/store"
	"github.com/spf13/cobra"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List saved scenario runs",
	Long: `List runs saved to the history database, newest first.

Examples:
  a11y-conform history --failed --limit 10
  a11y-conform history --scenario range-navigation --since 24h
  a11y-conform history show 01920c4e-...
  a11y-conform history prune --older-than 720h`,
	Args: cobra.NoArgs,
	RunE: runHistory,
}

var historyShowCmd = &cobra.Command{
	Use:   "show <run-id>",
	Short: "Show one saved run with its discrepancies and comments",
	Args:  cobra.ExactArgs(1),
	RunE:  runHistoryShow,
}

var historyPruneCmd = &cobra.Command{
	Use:   "prune",
	Short: "Delete saved runs older than a given age",
	Args:  cobra.NoArgs,
	RunE:  runHistoryPrune,
}

func init() {
	rootCmd.AddCommand(historyCmd)
	historyCmd.AddCommand(historyShowCmd)
	historyCmd.AddCommand(historyPruneCmd)

	historyCmd.Flags().String("scenario", "", "Only runs of this scenario")
	historyCmd.Flags().String("control", "", "Only runs against this control")
	historyCmd.Flags().Bool("failed", false, "Only failed runs")
	historyCmd.Flags().Bool("passed", false, "Only passed runs")
	historyCmd.Flags().Duration("since", 0, "Only runs started within this duration (e.g. 24h)")
	historyCmd.Flags().Int("limit", 20, "Max runs to show (0 = all)")
	historyCmd.Flags().Bool("pretty", false, "Pretty-print JSON output")

	historyShowCmd.Flags().Bool("pretty", false, "Pretty-print JSON output")

	historyPruneCmd.Flags().Duration("older-than", 0, "Delete runs started longer ago than this (required, e.g. 720h)")
}

// historyResult is the output of the history command.
type historyResult struct {
	Total int          `yaml:"total" json:"total"`
	Runs  []*store.Run `yaml:"runs"  json:"runs"`
}

// pruneResult is the output of history prune.
type pruneResult struct {
	Deleted int64     `yaml:"deleted" json:"deleted"`
	Before  time.Time `yaml:"before"  json:"before"`
}

func openHistory() (*store.DB, error) {
	db, err := store.Open(cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("open history: %w", err)
	}
	return db, nil
}

func historyOptions(cmd *cobra.Command) (store.ListOptions, error) {
	var opts store.ListOptions
	opts.Scenario, _ = cmd.Flags().GetString("scenario")
	opts.Control, _ = cmd.Flags().GetString("control")
	opts.Limit, _ = cmd.Flags().GetInt("limit")
	if opts.Limit < 0 {
		return opts, fmt.Errorf("--limit must not be negative")
	}

	failed, _ := cmd.Flags().GetBool("failed")
	passed, _ := cmd.Flags().GetBool("passed")
	switch {
	case failed && passed:
		return opts, fmt.Errorf("--failed and --passed are mutually exclusive")
	case failed:
		pass := false
		opts.Pass = &pass
	case passed:
		pass := true
		opts.Pass = &pass
	}

	since, _ := cmd.Flags().GetDuration("since")
	if since < 0 {
		return opts, fmt.Errorf("--since must not be negative")
	}
	if since > 0 {
		opts.Since = time.Now().Add(-since)
	}
	return opts, nil
}

func runHistory(cmd *cobra.Command, args []string) error {
	opts, err := historyOptions(cmd)
	if err != nil {
		return err
	}
	db, err := openHistory()
	if err != nil {
		return err
	}
	defer db.Close()

	total, err := db.CountRuns(opts)
	if err != nil {
		return err
	}
	runs, err := db.ListRuns(opts)
	if err != nil {
		return err
	}
	if runs == nil {
		runs = []*store.Run{}
	}
	return output.Print(historyResult{Total: total, Runs: runs})
}

func runHistoryShow(cmd *cobra.Command, args []string) error {
	db, err := openHistory()
	if err != nil {
		return err
	}
	defer db.Close()

	run, err := db.GetRun(args[0])
	if errors.Is(err, store.ErrRunNotFound) {
		return fmt.Errorf("no run with id %q (see 'a11y-conform history')", args[0])
	}
	if err != nil {
		return err
	}
	return output.Print(run)
}

func runHistoryPrune(cmd *cobra.Command, args []string) error {
	olderThan, _ := cmd.Flags().GetDuration("older-than")
	if olderThan <= 0 {
		return fmt.Errorf("--older-than is required and must be positive")
	}
	db, err := openHistory()
	if err != nil {
		return err
	}
	defer db.Close()

	before := time.Now().UTC().Add(-olderThan)
	n, err := db.PruneRuns(before)
	if err != nil {
		return err
	}
	logger.Info("pruned history", "deleted", n, "before", before)
	return output.Print(pruneResult{Deleted: n, Before: before})
}
