package cmd

import (
	"fmt"

	"github.com/mj1618/a11y-conform/internal/server"
	"github.com/mj1618/a11y-conform/internal/store"
	"github.com/mj1618/a11y-conform/internal/version"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start an MCP server exposing the conformance scenarios as tools",
	Long: `Start a Model Context Protocol server with tools to list and run
scenarios, dump the element tree, render text units and query run history.

Each tool call launches a fresh target. Calls are handled one at a time.

Examples:
  a11y-conform serve
  a11y-conform serve --transport streamable-http --port 8080`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().String("transport", "stdio", "Transport: stdio, streamable-http")
	serveCmd.Flags().Int("port", 8080, "Port for the streamable-http transport")
	serveCmd.Flags().Bool("no-history", false, "Do not save tool runs to the history database")
}

func runServe(cmd *cobra.Command, args []string) error {
	transport, _ := cmd.Flags().GetString("transport")
	port, _ := cmd.Flags().GetInt("port")
	noHistory, _ := cmd.Flags().GetBool("no-history")

	defaults, err := scenarioDefaults()
	if err != nil {
		return err
	}

	var db *store.DB
	if cfg.History && !noHistory {
		db, err = store.Open(cfg.DBPath)
		if err != nil {
			return fmt.Errorf("open history: %w", err)
		}
		defer db.Close()
	}

	srv, err := server.New(server.Config{
		Version:  version.Version,
		Launch:   launchTarget,
		Fixture:  fixtureLabel(),
		Defaults: defaults,
		History:  db,
		Logger:   logger,
	})
	if err != nil {
		return err
	}
	logger.Info("starting MCP server", "transport", transport, "fixture", fixtureLabel())
	return srv.Serve(transport, port)
}
