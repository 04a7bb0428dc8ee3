package server

import (
	"context"
	"encoding/base64"
	"strings"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mj1618/a11y-conform/internal/platform"
	"github.com/mj1618/a11y-conform/internal/platform/virtual"
	"github.com/mj1618/a11y-conform/internal/scenario"
	"github.com/mj1618/a11y-conform/internal/store"
)

func newTestServer(t *testing.T, history bool) *Server {
	t.Helper()
	cfg := Config{
		Version: "test",
		Launch: func() (platform.Application, error) {
			return virtual.Launcher{}.Launch(platform.LaunchOptions{})
		},
		Fixture:  "default",
		Defaults: scenario.Args{Control: "RichTextBox1", Limited: "LimitedBox", Numeric: "NumericBox"},
	}
	if history {
		db, err := store.Open(":memory:")
		if err != nil {
			t.Fatal(err)
		}
		t.Cleanup(func() { db.Close() })
		cfg.History = db
	}
	s, err := New(cfg)
	if err != nil {
		t.Fatal(err)
	}
	return s
}

func call(args map[string]any) mcp.CallToolRequest {
	var req mcp.CallToolRequest
	req.Params.Arguments = args
	return req
}

func text(t *testing.T, res *mcp.CallToolResult) string {
	t.Helper()
	for _, c := range res.Content {
		if tc, ok := c.(mcp.TextContent); ok {
			return tc.Text
		}
	}
	t.Fatal("no text content")
	return ""
}

func TestNew_RequiresLauncher(t *testing.T) {
	if _, err := New(Config{}); err == nil {
		t.Error("expected error without a launcher")
	}
}

func TestServe_UnknownTransport(t *testing.T) {
	s := newTestServer(t, false)
	if err := s.Serve("carrier-pigeon", 0); err == nil || !strings.Contains(err.Error(), "unsupported transport") {
		t.Errorf("got %v", err)
	}
}

func TestHandleListScenarios(t *testing.T) {
	s := newTestServer(t, false)
	res, err := s.handleListScenarios(context.Background(), call(nil))
	if err != nil {
		t.Fatal(err)
	}
	out := text(t, res)
	for _, want := range []string{"name: range-navigation", "name: value-errors", "- mixed-script"} {
		if !strings.Contains(out, want) {
			t.Errorf("missing %q in:\n%s", want, out)
		}
	}
}

func TestHandleRunScenario(t *testing.T) {
	s := newTestServer(t, true)
	tests := []struct {
		name    string
		args    map[string]any
		isError bool
		want    string
	}{
		{"defaults", map[string]any{"name": "text-unit-counts", "sample": "single-line"}, false, "pass: true"},
		{"override control", map[string]any{"name": "range-navigation", "control": "TextBox1", "sample": "multi-line"}, false, "control: TextBox1"},
		{"value errors defaults", map[string]any{"name": "value-errors"}, false, "pass: true"},
		{"value errors letters allowed", map[string]any{"name": "value-errors", "numeric": "TextBox1"}, true, "numeric-only"},
		{"missing name", map[string]any{}, true, "name parameter is required"},
		{"bad sample", map[string]any{"name": "text-pattern", "sample": "lorem"}, true, "unknown sample"},
		{"unknown scenario", map[string]any{"name": "nope"}, true, `unknown scenario "nope"`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := s.handleRunScenario(context.Background(), call(tt.args))
			if err != nil {
				t.Fatal(err)
			}
			if res.IsError != tt.isError {
				t.Errorf("IsError: got %v, want %v\n%s", res.IsError, tt.isError, text(t, res))
			}
			if out := text(t, res); !strings.Contains(out, tt.want) {
				t.Errorf("missing %q in:\n%s", tt.want, out)
			}
		})
	}

	// only calls naming a registered scenario reach the runner and are saved
	n, err := s.cfg.History.CountRuns(store.ListOptions{})
	if err != nil {
		t.Fatal(err)
	}
	if n != 4 {
		t.Errorf("saved runs: got %d, want 4", n)
	}
	n, err = s.cfg.History.CountRuns(store.ListOptions{Scenario: "nope"})
	if err != nil {
		t.Fatal(err)
	}
	if n != 0 {
		t.Errorf("unknown scenario saved %d runs", n)
	}
}

func TestHandleHistory(t *testing.T) {
	s := newTestServer(t, true)
	for _, args := range []map[string]any{
		{"name": "properties"},
		{"name": "range-errors", "control": "OKButton"},
	} {
		if _, err := s.handleRunScenario(context.Background(), call(args)); err != nil {
			t.Fatal(err)
		}
	}
	res, err := s.handleHistory(context.Background(), call(map[string]any{"failed": true}))
	if err != nil {
		t.Fatal(err)
	}
	out := text(t, res)
	if !strings.Contains(out, "scenario: range-errors") || strings.Contains(out, "scenario: properties") {
		t.Errorf("failed runs:\n%s", out)
	}
	if !strings.Contains(out, "fixture: default") {
		t.Errorf("fixture not recorded:\n%s", out)
	}

	disabled := newTestServer(t, false)
	res, err = disabled.handleHistory(context.Background(), call(nil))
	if err != nil {
		t.Fatal(err)
	}
	if !res.IsError {
		t.Error("history without a database should fail")
	}
}

func TestHandleDumpTree(t *testing.T) {
	s := newTestServer(t, false)
	tests := []struct {
		name string
		args map[string]any
		want []string
	}{
		{"tree", nil, []string{"n: Editing Test App", "n: Save As"}},
		{"collapsed", map[string]any{"expand": false}, []string{"x: true"}},
		{"flat", map[string]any{"flat": true}, []string{"p: Editing Test App > Application > File > Save As"}},
		{"class filter", map[string]any{"class": "Button", "flat": true}, []string{"id: OKButton"}},
		{"markup", map[string]any{"markup": true}, []string{"<Application>", "<Save_As/>"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := s.handleDumpTree(context.Background(), call(tt.args))
			if err != nil {
				t.Fatal(err)
			}
			out := text(t, res)
			if res.IsError {
				t.Fatalf("error: %s", out)
			}
			for _, want := range tt.want {
				if !strings.Contains(out, want) {
					t.Errorf("missing %q in:\n%s", want, out)
				}
			}
		})
	}
}

func TestHandleRenderUnits(t *testing.T) {
	s := newTestServer(t, false)
	res, err := s.handleRenderUnits(context.Background(), call(map[string]any{
		"control": "TextBox1",
		"unit":    "line",
		"sample":  "multi-line",
	}))
	if err != nil {
		t.Fatal(err)
	}
	if res.IsError {
		t.Fatalf("error: %s", text(t, res))
	}
	img, ok := res.Content[0].(mcp.ImageContent)
	if !ok || img.MIMEType != "image/png" {
		t.Fatalf("first content: %#v", res.Content[0])
	}
	data, err := base64.StdEncoding.DecodeString(img.Data)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(string(data), "\x89PNG") {
		t.Error("image is not a PNG")
	}
	if out := text(t, res); !strings.Contains(out, "The second line.") {
		t.Errorf("boxes:\n%s", out)
	}

	for _, args := range []map[string]any{
		{"unit": "sentence"},
		{"control": "OKButton"},
		{"control": "Missing"},
	} {
		res, err := s.handleRenderUnits(context.Background(), call(args))
		if err != nil {
			t.Fatal(err)
		}
		if !res.IsError {
			t.Errorf("%v: expected a tool error", args)
		}
	}
}
