package output

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/mj1618/a11y-conform/internal/scenario"
	"gopkg.in/yaml.v3"
)

// Format represents the output format.
type Format string

const (
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
)

// ParseFormat validates a --format value.
func ParseFormat(s string) (Format, error) {
	switch Format(s) {
	case FormatYAML, FormatJSON:
		return Format(s), nil
	default:
		return "", fmt.Errorf("unsupported output format: %s (expected yaml or json)", s)
	}
}

// OutputFormat is the current output format, set by the root command's --format flag.
var OutputFormat Format = FormatYAML

// PrettyOutput enables pretty-printing for JSON output.
var PrettyOutput bool

// Writer receives everything Print writes.
var Writer io.Writer = os.Stdout

// RunResult is the top-level output of the `run` command.
type RunResult struct {
	Fixture string            `yaml:"fixture,omitempty" json:"fixture,omitempty"`
	Passed  int               `yaml:"passed"            json:"passed"`
	Failed  int               `yaml:"failed"            json:"failed"`
	Results []scenario.Result `yaml:"results"           json:"results"`
}

// NewRunResult tallies results.
func NewRunResult(fixture string, results []scenario.Result) RunResult {
	out := RunResult{Fixture: fixture, Results: results}
	for _, r := range results {
		if r.Pass {
			out.Passed++
		} else {
			out.Failed++
		}
	}
	return out
}

// ScenarioInfo describes one registered scenario for the `list` command.
type ScenarioInfo struct {
	Name        string   `yaml:"name"             json:"name"`
	Description string   `yaml:"description"      json:"description"`
	Inputs      []string `yaml:"inputs,omitempty" json:"inputs,omitempty"`
}

// ListResult is the output of the `list` command.
type ListResult struct {
	Scenarios []ScenarioInfo `yaml:"scenarios" json:"scenarios"`
	Samples   []string       `yaml:"samples"   json:"samples"`
}

// Print serializes v to Writer in the current output format.
func Print(v interface{}) error {
	switch OutputFormat {
	case FormatJSON:
		if PrettyOutput {
			return PrintPrettyJSON(v)
		}
		return PrintJSON(v)
	case FormatYAML:
		return PrintYAML(v)
	default:
		return fmt.Errorf("unsupported output format: %s", OutputFormat)
	}
}

// PrintJSON serializes v as compact single-line JSON.
func PrintJSON(v interface{}) error {
	enc := json.NewEncoder(Writer)
	enc.SetEscapeHTML(false)
	return enc.Encode(v)
}

// PrintPrettyJSON serializes v as indented JSON.
func PrintPrettyJSON(v interface{}) error {
	enc := json.NewEncoder(Writer)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(v)
}

// PrintYAML serializes v as YAML.
func PrintYAML(v interface{}) error {
	enc := yaml.NewEncoder(Writer)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("yaml encode: %w", err)
	}
	return enc.Close()
}
