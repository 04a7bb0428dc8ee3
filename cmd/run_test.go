package cmd

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/mj1618/a11y-conform/internal/config"
	"github.com/mj1618/a11y-conform/internal/output"
	"github.com/mj1618/a11y-conform/internal/scenario"
)

func TestRunCommand_Flags(t *testing.T) {
	flags := runCmd.Flags()

	tests := []struct {
		name     string
		flagType string
	}{
		{"all", "bool"},
		{"control", "string"},
		{"sample", "string"},
		{"structure", "string"},
		{"structure-file", "string"},
		{"limited", "string"},
		{"numeric", "string"},
		{"no-history", "bool"},
		{"pretty", "bool"},
	}

	for _, tt := range tests {
		f := flags.Lookup(tt.name)
		if f == nil {
			t.Errorf("expected flag %q not found", tt.name)
			continue
		}
		if f.Value.Type() != tt.flagType {
			t.Errorf("flag %q: expected type %q, got %q", tt.name, tt.flagType, f.Value.Type())
		}
	}
}

func TestRun_PassingScenarios(t *testing.T) {
	db := filepath.Join(t.TempDir(), "history.db")
	out, err := execute(t, "run", "properties", "text-unit-counts",
		"--control", "RichTextBox1", "--sample", "single-line", "--db", db)
	if err != nil {
		t.Fatalf("run: %v\n%s", err, out)
	}
	if !strings.Contains(out, "passed: 2") || !strings.Contains(out, "failed: 0") {
		t.Errorf("output:\n%s", out)
	}
	if !strings.Contains(out, "fixture: default") {
		t.Errorf("missing fixture label:\n%s", out)
	}

	out, err = execute(t, "--format", "json", "history", "--db", db)
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	var hist struct {
		Total int `json:"total"`
		Runs  []struct {
			ID       string `json:"id"`
			Scenario string `json:"scenario"`
			Pass     bool   `json:"pass"`
		} `json:"runs"`
	}
	if err := json.Unmarshal([]byte(out), &hist); err != nil {
		t.Fatalf("decode history: %v\n%s", err, out)
	}
	if hist.Total != 2 || len(hist.Runs) != 2 {
		t.Fatalf("history: got %d runs (total %d), want 2", len(hist.Runs), hist.Total)
	}

	out, err = execute(t, "history", "show", hist.Runs[0].ID, "--db", db)
	if err != nil {
		t.Fatalf("history show: %v", err)
	}
	if !strings.Contains(out, "id: "+hist.Runs[0].ID) || !strings.Contains(out, "scenario: "+hist.Runs[0].Scenario) {
		t.Errorf("history show:\n%s", out)
	}
}

func TestRun_FailureExitsWithError(t *testing.T) {
	out, err := execute(t, "--format", "json", "run", "range-errors", "--control", "OKButton", "--no-history")
	if err == nil {
		t.Fatal("expected error")
	}
	if err.Error() != "1 of 1 scenarios failed" {
		t.Errorf("error: got %q", err.Error())
	}
	if !strings.Contains(out, "does not support the text pattern") {
		t.Errorf("output:\n%s", out)
	}
}

func TestRun_ArgumentErrors(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		wantErr string
	}{
		{"no scenario", []string{"run"}, "no scenario given"},
		{"unknown scenario", []string{"run", "nope"}, `unknown scenario "nope"`},
		{"all with names", []string{"run", "--all", "properties"}, "--all cannot be combined"},
		{"bad sample", []string{"run", "properties", "--sample", "lorem", "--no-history"}, "unknown sample"},
		{"bad format", []string{"--format", "xml", "list"}, `invalid format "xml"`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := execute(t, tt.args...)
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("got %v, want error containing %q", err, tt.wantErr)
			}
		})
	}
}

func TestRun_MenuStructureFromDumpedMarkup(t *testing.T) {
	markup, err := execute(t, "dump", "--markup")
	if err != nil {
		t.Fatalf("dump: %v", err)
	}
	path := filepath.Join(t.TempDir(), "menu.xml")
	if err := os.WriteFile(path, []byte(markup), 0644); err != nil {
		t.Fatal(err)
	}
	out, err := execute(t, "run", "menu-structure", "--structure-file", path, "--no-history")
	if err != nil {
		t.Fatalf("run: %v\n%s", err, out)
	}
}

func TestScenarioArgsFromFlags(t *testing.T) {
	structure := filepath.Join(t.TempDir(), "menu.xml")
	if err := os.WriteFile(structure, []byte("<Application/>"), 0644); err != nil {
		t.Fatal(err)
	}

	prev := cfg
	t.Cleanup(func() { cfg = prev })
	cfg = config.Defaults()
	cfg.Sample = "multi-line"
	cfg.Structure = structure

	resetFlags(runCmd)
	t.Cleanup(func() { resetFlags(runCmd) })

	args, err := scenarioArgsFromFlags(runCmd)
	if err != nil {
		t.Fatal(err)
	}
	want := scenario.Args{
		Control:   "RichTextBox1",
		Limited:   "LimitedBox",
		Numeric:   "NumericBox",
		Sample:    scenario.SampleMultiLine,
		Structure: "<Application/>",
	}
	if args != want {
		t.Errorf("config only: got %+v, want %+v", args, want)
	}

	_ = runCmd.Flags().Set("control", "TextBox1")
	_ = runCmd.Flags().Set("sample", "")
	_ = runCmd.Flags().Set("structure", "<Other/>")
	args, err = scenarioArgsFromFlags(runCmd)
	if err != nil {
		t.Fatal(err)
	}
	want = scenario.Args{
		Control:   "TextBox1",
		Limited:   "LimitedBox",
		Numeric:   "NumericBox",
		Sample:    scenario.SampleNone,
		Structure: "<Other/>",
	}
	if args != want {
		t.Errorf("flags: got %+v, want %+v", args, want)
	}

	defaults, err := scenarioDefaults()
	if err != nil {
		t.Fatal(err)
	}
	if defaults.Sample != scenario.SampleMultiLine || defaults.Structure != "<Application/>" {
		t.Errorf("defaults: got %+v", defaults)
	}
}

func TestListCommand(t *testing.T) {
	out, err := execute(t, "--format", "json", "list")
	if err != nil {
		t.Fatal(err)
	}
	var result output.ListResult
	if err := json.Unmarshal([]byte(out), &result); err != nil {
		t.Fatalf("decode: %v\n%s", err, out)
	}
	if len(result.Scenarios) != len(scenario.Default.List()) {
		t.Errorf("scenarios: got %d", len(result.Scenarios))
	}
	if len(result.Samples) != len(scenario.Samples) {
		t.Errorf("samples: got %d", len(result.Samples))
	}
}
