package cmd

import (
	"fmt"
	"os"

	"github.com/mj1618/a11y-conform/internal/output"
	"github.com/mj1618/a11y-conform/internal/scenario"
	"github.com/mj1618/a11y-conform/internal/store"
	"github.com/spf13/cobra"
)

var runCmd = &cobra.Command{
	Use:   "run [scenario...]",
	Short: "Run conformance scenarios against the target",
	Long: `Run one or more conformance scenarios. Each scenario gets a freshly launched
target. Results are printed, saved to the history database, and the command
exits non-zero if any scenario failed.

Examples:
  a11y-conform run range-navigation --sample single-line
  a11y-conform run text-attributes --control TextBox1
  a11y-conform run menu-structure --structure-file menu.xml
  a11y-conform run --all --sample multi-line`,
	RunE: runRun,
}

func init() {
	rootCmd.AddCommand(runCmd)
	runCmd.Flags().Bool("all", false, "Run every registered scenario")
	runCmd.Flags().String("control", "", "Automation id of the control under test")
	runCmd.Flags().String("sample", "", "Sample text to write first: empty, single-line, multi-line, paragraphs, mixed-script, line-breaks")
	runCmd.Flags().String("structure", "", "Expected menu structure markup")
	runCmd.Flags().String("structure-file", "", "File holding the expected menu structure markup")
	runCmd.Flags().String("limited", "", "Automation id of a control with a maximum length")
	runCmd.Flags().String("numeric", "", "Automation id of a numeric-only control")
	runCmd.Flags().Bool("no-history", false, "Do not save results to the history database")
	runCmd.Flags().Bool("pretty", false, "Pretty-print JSON output")
}

func runRun(cmd *cobra.Command, args []string) error {
	all, _ := cmd.Flags().GetBool("all")
	names := args
	if all {
		if len(args) > 0 {
			return fmt.Errorf("--all cannot be combined with scenario names")
		}
		for _, s := range scenario.Default.List() {
			names = append(names, s.Name)
		}
	}
	if len(names) == 0 {
		return fmt.Errorf("no scenario given (name one or use --all; see 'a11y-conform list')")
	}
	for _, name := range names {
		if _, ok := scenario.Default.Lookup(name); !ok {
			return fmt.Errorf("unknown scenario %q (see 'a11y-conform list')", name)
		}
	}

	scenarioArgs, err := scenarioArgsFromFlags(cmd)
	if err != nil {
		return err
	}

	noHistory, _ := cmd.Flags().GetBool("no-history")
	var db *store.DB
	if cfg.History && !noHistory {
		db, err = store.Open(cfg.DBPath)
		if err != nil {
			return fmt.Errorf("open history: %w", err)
		}
		defer db.Close()
	}

	results := make([]scenario.Result, 0, len(names))
	for _, name := range names {
		app, err := launchTarget()
		if err != nil {
			return err
		}
		res := scenario.Run(app, name, scenarioArgs, logger)
		if db != nil {
			if err := db.SaveRun(&store.Run{Result: res, Fixture: fixtureLabel()}); err != nil {
				logger.Warn("failed to save run", "run", res.ID, "error", err)
			}
		}
		results = append(results, res)
	}

	summary := output.NewRunResult(fixtureLabel(), results)
	if err := output.Print(summary); err != nil {
		return err
	}
	if summary.Failed > 0 {
		return fmt.Errorf("%d of %d scenarios failed", summary.Failed, len(results))
	}
	return nil
}

// scenarioDefaults builds scenario arguments from the config alone.
func scenarioDefaults() (scenario.Args, error) {
	args := scenario.Args{
		Control: cfg.Control,
		Limited: cfg.Limited,
		Numeric: cfg.Numeric,
	}
	sample, err := scenario.ParseSample(cfg.Sample)
	if err != nil {
		return args, err
	}
	args.Sample = sample
	if cfg.Structure != "" {
		data, err := os.ReadFile(cfg.Structure)
		if err != nil {
			return args, fmt.Errorf("read structure: %w", err)
		}
		args.Structure = string(data)
	}
	return args, nil
}

// scenarioArgsFromFlags merges the run flags over the config defaults.
func scenarioArgsFromFlags(cmd *cobra.Command) (scenario.Args, error) {
	args := scenario.Args{
		Control: cfg.Control,
		Limited: cfg.Limited,
		Numeric: cfg.Numeric,
	}
	if c, _ := cmd.Flags().GetString("control"); c != "" {
		args.Control = c
	}
	if l, _ := cmd.Flags().GetString("limited"); l != "" {
		args.Limited = l
	}
	if n, _ := cmd.Flags().GetString("numeric"); n != "" {
		args.Numeric = n
	}

	sampleName := cfg.Sample
	if cmd.Flags().Changed("sample") {
		sampleName, _ = cmd.Flags().GetString("sample")
	}
	sample, err := scenario.ParseSample(sampleName)
	if err != nil {
		return args, err
	}
	args.Sample = sample

	structureFile := cfg.Structure
	if f, _ := cmd.Flags().GetString("structure-file"); f != "" {
		structureFile = f
	}
	if s, _ := cmd.Flags().GetString("structure"); s != "" {
		args.Structure = s
	} else if structureFile != "" {
		data, err := os.ReadFile(structureFile)
		if err != nil {
			return args, fmt.Errorf("read structure: %w", err)
		}
		args.Structure = string(data)
	}
	return args, nil
}
