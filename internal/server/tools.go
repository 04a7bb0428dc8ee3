package server

import (
	"github.com/mark3labs/mcp-go/mcp"
)

func (s *Server) registerTools() {
	// list_scenarios
	s.mcp.AddTool(
		mcp.NewTool("list_scenarios",
			mcp.WithDescription("List the conformance scenarios and the sample texts they accept"),
		),
		s.handleListScenarios,
	)

	// run_scenario
	s.mcp.AddTool(
		mcp.NewTool("run_scenario",
			mcp.WithDescription("Run one conformance scenario against a freshly launched target and return its result, including every discrepancy found"),
			mcp.WithString("name", mcp.Description("Scenario name (see list_scenarios)"), mcp.Required()),
			mcp.WithString("control", mcp.Description("Automation id of the control under test")),
			mcp.WithString("sample", mcp.Description("Sample text to write first: empty, single-line, multi-line, paragraphs, mixed-script, line-breaks")),
			mcp.WithString("structure", mcp.Description("Expected menu structure markup for menu-structure")),
			mcp.WithString("limited", mcp.Description("Automation id of a control with a maximum length, for value-errors")),
			mcp.WithString("numeric", mcp.Description("Automation id of a numeric-only control, for value-errors")),
		),
		s.handleRunScenario,
	)

	// dump_tree
	s.mcp.AddTool(
		mcp.NewTool("dump_tree",
			mcp.WithDescription("Snapshot the target's element tree, or export its menu bar as structure markup"),
			mcp.WithBoolean("expand", mcp.Description("Expand collapsed menus while walking (default: true)")),
			mcp.WithBoolean("flat", mcp.Description("Return a flat list with path breadcrumbs")),
			mcp.WithBoolean("markup", mcp.Description("Return the menu bar as expected-structure markup")),
			mcp.WithString("class", mcp.Description("Comma-separated class names to keep")),
		),
		s.handleDumpTree,
	)

	// render_units
	s.mcp.AddTool(
		mcp.NewTool("render_units",
			mcp.WithDescription("Render a text control with the bounding rectangles of one text unit outlined, as a PNG"),
			mcp.WithString("control", mcp.Description("Automation id of the text control")),
			mcp.WithString("unit", mcp.Description("character, word, line, paragraph or document (default: word)")),
			mcp.WithString("sample", mcp.Description("Sample text to write first")),
		),
		s.handleRenderUnits,
	)

	// history
	s.mcp.AddTool(
		mcp.NewTool("history",
			mcp.WithDescription("List saved scenario runs, newest first"),
			mcp.WithString("scenario", mcp.Description("Only runs of this scenario")),
			mcp.WithBoolean("failed", mcp.Description("Only failing runs")),
			mcp.WithNumber("limit", mcp.Description("Max runs to return (default: 20)")),
		),
		s.handleHistory,
	)
}
