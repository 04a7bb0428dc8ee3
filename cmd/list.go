package cmd

import (
	"github.com/mj1618/a11y-conform/internal/output"
	"github.com/mj1618/a11y-conform/internal/scenario"
	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List the conformance scenarios and sample texts",
	RunE:  runList,
}

func init() {
	rootCmd.AddCommand(listCmd)
	listCmd.Flags().Bool("pretty", false, "Pretty-print JSON output")
}

func runList(cmd *cobra.Command, args []string) error {
	var result output.ListResult
	for _, s := range scenario.Default.List() {
		result.Scenarios = append(result.Scenarios, output.ScenarioInfo{
			Name:        s.Name,
			Description: s.Description,
			Inputs:      s.Inputs,
		})
	}
	for _, s := range scenario.Samples {
		result.Samples = append(result.Samples, string(s))
	}
	return output.Print(result)
}
