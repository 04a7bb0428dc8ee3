package server

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mj1618/a11y-conform/internal/model"
	"github.com/mj1618/a11y-conform/internal/output"
	"github.com/mj1618/a11y-conform/internal/platform"
	"github.com/mj1618/a11y-conform/internal/render"
	"github.com/mj1618/a11y-conform/internal/scenario"
	"github.com/mj1618/a11y-conform/internal/store"
	"gopkg.in/yaml.v3"
)

const defaultHistoryLimit = 20

// toText serializes v to YAML for an MCP response.
func toText(v any) string {
	b, err := yaml.Marshal(v)
	if err != nil {
		return fmt.Sprintf("error: %v", err)
	}
	return string(b)
}

func (s *Server) handleListScenarios(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var list output.ListResult
	for _, sc := range scenario.Default.List() {
		list.Scenarios = append(list.Scenarios, output.ScenarioInfo{
			Name:        sc.Name,
			Description: sc.Description,
			Inputs:      sc.Inputs,
		})
	}
	for _, sample := range scenario.Samples {
		list.Samples = append(list.Samples, string(sample))
	}
	return mcp.NewToolResultText(toText(list)), nil
}

func (s *Server) handleRunScenario(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	params := request.GetArguments()
	name := stringParam(params, "name", "")
	if name == "" {
		return mcp.NewToolResultError("name parameter is required"), nil
	}
	args := s.cfg.Defaults
	args.Control = stringParam(params, "control", args.Control)
	args.Structure = stringParam(params, "structure", args.Structure)
	args.Limited = stringParam(params, "limited", args.Limited)
	args.Numeric = stringParam(params, "numeric", args.Numeric)
	if v, ok := params["sample"]; ok {
		sample, err := scenario.ParseSample(fmt.Sprint(v))
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		args.Sample = sample
	}

	if _, ok := scenario.Default.Lookup(name); !ok {
		return mcp.NewToolResultError(fmt.Sprintf("unknown scenario %q (call list_scenarios)", name)), nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	app, err := s.cfg.Launch()
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("launch: %v", err)), nil
	}
	res := scenario.Run(app, name, args, s.logger)
	s.save(res)

	if !res.Pass {
		return mcp.NewToolResultError(toText(res)), nil
	}
	return mcp.NewToolResultText(toText(res)), nil
}

// save records res in the history database when one is configured.
func (s *Server) save(res scenario.Result) {
	if s.cfg.History == nil {
		return
	}
	if err := s.cfg.History.SaveRun(&store.Run{Result: res, Fixture: s.cfg.Fixture}); err != nil {
		s.logger.Warn("failed to save run", "run", res.ID, "error", err)
	}
}

func (s *Server) handleDumpTree(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	params := request.GetArguments()
	expand := boolParam(params, "expand", true)
	flat := boolParam(params, "flat", false)
	markup := boolParam(params, "markup", false)
	classes := splitList(stringParam(params, "class", ""))

	s.mu.Lock()
	defer s.mu.Unlock()

	app, err := s.cfg.Launch()
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("launch: %v", err)), nil
	}

	if markup {
		bar, err := app.MenuBar()
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		snap, err := model.Snapshot(bar, model.SnapshotOptions{Expand: true})
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		text, err := model.Markup(snap)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return mcp.NewToolResultText(text), nil
	}

	root, err := model.Snapshot(app.Root(), model.SnapshotOptions{Expand: expand})
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	elements := model.FilterByClass([]model.Element{root}, classes)
	if flat {
		return mcp.NewToolResultText(toText(model.FlattenElements(elements))), nil
	}
	return mcp.NewToolResultText(toText(elements)), nil
}

func (s *Server) handleRenderUnits(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	params := request.GetArguments()
	control := stringParam(params, "control", s.cfg.Defaults.Control)
	unit, err := platform.ParseTextUnit(stringParam(params, "unit", "word"))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	sample, err := scenario.ParseSample(stringParam(params, "sample", string(s.cfg.Defaults.Sample)))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	app, err := s.cfg.Launch()
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("launch: %v", err)), nil
	}
	el, err := app.FindByAutomationID(control)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if sample != scenario.SampleNone {
		vp, ok := el.ValuePattern()
		if !ok {
			return mcp.NewToolResultError(fmt.Sprintf("control %q has no value pattern", control)), nil
		}
		if err := vp.SetValue(sample.Text()); err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
	}
	img, boxes, err := render.Units(el, unit)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	var buf bytes.Buffer
	if err := render.EncodePNG(&buf, img); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return &mcp.CallToolResult{
		Content: []mcp.Content{
			mcp.ImageContent{
				Type:     "image",
				Data:     base64.StdEncoding.EncodeToString(buf.Bytes()),
				MIMEType: "image/png",
			},
			mcp.TextContent{
				Type: "text",
				Text: toText(boxes),
			},
		},
	}, nil
}

func (s *Server) handleHistory(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if s.cfg.History == nil {
		return mcp.NewToolResultError("history is disabled"), nil
	}
	params := request.GetArguments()
	opts := store.ListOptions{
		Scenario: stringParam(params, "scenario", ""),
		Limit:    intParam(params, "limit", defaultHistoryLimit),
	}
	if boolParam(params, "failed", false) {
		fail := false
		opts.Pass = &fail
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	runs, err := s.cfg.History.ListRuns(opts)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(toText(runs)), nil
}

// Parameter extraction helpers for tool arguments

func stringParam(params map[string]any, key, defaultVal string) string {
	if v, ok := params[key]; ok {
		if s, ok := v.(string); ok {
			return s
		}
		return fmt.Sprintf("%v", v)
	}
	return defaultVal
}

func intParam(params map[string]any, key string, defaultVal int) int {
	if v, ok := params[key]; ok {
		switch n := v.(type) {
		case int:
			return n
		case float64:
			return int(n)
		case int64:
			return int(n)
		}
	}
	return defaultVal
}

func boolParam(params map[string]any, key string, defaultVal bool) bool {
	if v, ok := params[key]; ok {
		if b, ok := v.(bool); ok {
			return b
		}
	}
	return defaultVal
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
