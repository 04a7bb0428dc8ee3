package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/mj1618/a11y-conform/internal/config"
	"github.com/mj1618/a11y-conform/internal/output"
	"github.com/mj1618/a11y-conform/internal/platform"
	"github.com/mj1618/a11y-conform/internal/version"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "a11y-conform",
	Short: "Verify that an application's accessibility provider behaves correctly",
	Long: `Run conformance scenarios against a target application's accessibility tree:
menu structure, element properties, text unit counts, text range navigation,
text attribute searches and error handling of invalid calls.

Each scenario launches a fresh target, records numbered steps and every
discrepancy it finds, and reports a pass or fail result.`,
	SilenceUsage: true,
}

// Settings shared by every command, resolved in PersistentPreRunE.
var (
	cfg    = config.Defaults()
	logger = slog.New(slog.DiscardHandler)
)

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.Version = fmt.Sprintf("%s (commit: %s, built: %s)", version.Version, version.Commit, version.BuildDate)
	rootCmd.PersistentFlags().String("config", "", "Config file (default: $XDG_CONFIG_HOME/a11y-conform/config.yaml)")
	rootCmd.PersistentFlags().String("format", "", "Output format: yaml, json")
	rootCmd.PersistentFlags().String("fixture", "", "Target fixture file (default: the built-in editing app)")
	rootCmd.PersistentFlags().String("db", "", "History database path (default: $XDG_DATA_HOME/a11y-conform/history.db)")
	rootCmd.PersistentFlags().String("log-level", "", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().String("log-format", "", "Log format: text, json")
	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		path, _ := rootCmd.PersistentFlags().GetString("config")
		loaded, err := config.Load(path)
		if err != nil {
			return err
		}
		applyFlagOverrides(loaded)
		if err := loaded.Validate(); err != nil {
			return err
		}

		format, err := output.ParseFormat(loaded.Format)
		if err != nil {
			return err
		}
		output.OutputFormat = format
		if prettyFlag := cmd.Flags().Lookup("pretty"); prettyFlag != nil {
			if pretty, err := cmd.Flags().GetBool("pretty"); err == nil && pretty {
				output.PrettyOutput = true
			}
		}

		l, err := loaded.NewLogger(cmd.ErrOrStderr())
		if err != nil {
			return err
		}
		cfg, logger = loaded, l
		return nil
	}
}

// applyFlagOverrides copies explicitly set root flags over the loaded config.
func applyFlagOverrides(c *config.Config) {
	flags := rootCmd.PersistentFlags()
	override := func(name string, dst *string) {
		if flags.Changed(name) {
			*dst, _ = flags.GetString(name)
		}
	}
	override("format", &c.Format)
	override("fixture", &c.Fixture)
	override("db", &c.DBPath)
	override("log-level", &c.LogLevel)
	override("log-format", &c.LogFormat)
}

// launchTarget opens a fresh instance of the configured target.
func launchTarget() (platform.Application, error) {
	provider, err := platform.NewProvider()
	if err != nil {
		return nil, err
	}
	app, err := provider.Launcher.Launch(platform.LaunchOptions{Fixture: cfg.Fixture})
	if err != nil {
		return nil, fmt.Errorf("launch %s target: %w", provider.Name, err)
	}
	return app, nil
}

// fixtureLabel names the target in results and history.
func fixtureLabel() string {
	if cfg.Fixture == "" {
		return "default"
	}
	return cfg.Fixture
}
