package cmd

import (
	"fmt"
	"strings"

	"github.com/mj1618/a11y-conform/internal/model"
	"github.com/mj1618/a11y-conform/internal/output"
	"github.com/spf13/cobra"
)

var dumpCmd = &cobra.Command{
	Use:   "dump",
	Short: "Print the target's element tree",
	Long: `Snapshot the target's element tree. Collapsed menus are expanded while
walking unless --no-expand is given. --markup prints the menu bar as the
structure markup accepted by 'run menu-structure'.

Examples:
  a11y-conform dump --flat
  a11y-conform dump --class TextBox,RichTextBox
  a11y-conform dump --markup > menu.xml`,
	RunE: runDump,
}

func init() {
	rootCmd.AddCommand(dumpCmd)
	dumpCmd.Flags().Bool("flat", false, "Flatten the tree into a list with path breadcrumbs")
	dumpCmd.Flags().Bool("no-expand", false, "Leave collapsed menus collapsed")
	dumpCmd.Flags().Int("depth", 0, "Max depth to traverse (0 = unlimited)")
	dumpCmd.Flags().String("class", "", "Comma-separated class names to include (e.g. \"TextBox,MenuItem\")")
	dumpCmd.Flags().String("text", "", "Filter elements by name or automation id (case-insensitive substring match)")
	dumpCmd.Flags().Bool("markup", false, "Print the menu bar as expected-structure markup")
	dumpCmd.Flags().Bool("pretty", false, "Pretty-print JSON output")
}

func runDump(cmd *cobra.Command, args []string) error {
	flat, _ := cmd.Flags().GetBool("flat")
	noExpand, _ := cmd.Flags().GetBool("no-expand")
	depth, _ := cmd.Flags().GetInt("depth")
	classes, _ := cmd.Flags().GetString("class")
	text, _ := cmd.Flags().GetString("text")
	markup, _ := cmd.Flags().GetBool("markup")

	app, err := launchTarget()
	if err != nil {
		return err
	}

	if markup {
		bar, err := app.MenuBar()
		if err != nil {
			return err
		}
		snap, err := model.Snapshot(bar, model.SnapshotOptions{Expand: true})
		if err != nil {
			return err
		}
		s, err := model.Markup(snap)
		if err != nil {
			return err
		}
		_, err = fmt.Fprint(output.Writer, s)
		return err
	}

	root, err := model.Snapshot(app.Root(), model.SnapshotOptions{Expand: !noExpand, MaxDepth: depth})
	if err != nil {
		return err
	}
	elements := model.FilterByClass([]model.Element{root}, splitList(classes))
	elements = model.FilterByText(elements, text)
	if flat {
		return output.Print(model.FlattenElements(elements))
	}
	return output.Print(elements)
}

// splitList splits a comma-separated flag value, dropping empty entries.
func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
