package cmd

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"os"

	"github.com/mj1618/a11y-conform/internal/output"
	"github.com/mj1618/a11y-conform/internal/platform"
	"github.com/mj1618/a11y-conform/internal/render"
	"github.com/mj1618/a11y-conform/internal/scenario"
	"github.com/spf13/cobra"
)

var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Render a text control with the rectangles of its text units outlined",
	Long: `Draw a text control's laid-out text and outline the bounding rectangles of
every unit of the chosen granularity, numbering units coarser than characters.
This is the picture range navigation checks are reasoning about.

Examples:
  a11y-conform render --control TextBox1 --unit word --sample multi-line --output words.png
  a11y-conform render --unit line --boxes`,
	RunE: runRender,
}

func init() {
	rootCmd.AddCommand(renderCmd)
	renderCmd.Flags().String("control", "", "Automation id of the text control (default: configured control)")
	renderCmd.Flags().String("unit", "word", "Text unit: character, word, line, paragraph, document")
	renderCmd.Flags().String("sample", "", "Sample text to write first")
	renderCmd.Flags().String("output", "", "Output PNG path (default: stdout as base64)")
	renderCmd.Flags().Bool("boxes", false, "Print the unit rectangles instead of an image")
	renderCmd.Flags().Bool("pretty", false, "Pretty-print JSON output")
}

// renderResult is the output of render --boxes.
type renderResult struct {
	Control string       `yaml:"control" json:"control"`
	Unit    string       `yaml:"unit"    json:"unit"`
	Boxes   []render.Box `yaml:"boxes"   json:"boxes"`
}

func runRender(cmd *cobra.Command, args []string) error {
	control, _ := cmd.Flags().GetString("control")
	if control == "" {
		control = cfg.Control
	}
	unitName, _ := cmd.Flags().GetString("unit")
	unit, err := platform.ParseTextUnit(unitName)
	if err != nil {
		return err
	}
	sampleName, _ := cmd.Flags().GetString("sample")
	sample, err := scenario.ParseSample(sampleName)
	if err != nil {
		return err
	}
	outPath, _ := cmd.Flags().GetString("output")
	boxesOnly, _ := cmd.Flags().GetBool("boxes")

	app, err := launchTarget()
	if err != nil {
		return err
	}
	el, err := app.FindByAutomationID(control)
	if err != nil {
		return err
	}
	if sample != scenario.SampleNone {
		vp, ok := el.ValuePattern()
		if !ok {
			return fmt.Errorf("control %q has no value pattern to write the %s sample", control, sample)
		}
		if err := vp.SetValue(sample.Text()); err != nil {
			return fmt.Errorf("set sample: %w", err)
		}
	}

	img, boxes, err := render.Units(el, unit)
	if err != nil {
		return err
	}
	if boxesOnly {
		return output.Print(renderResult{Control: control, Unit: unit.String(), Boxes: boxes})
	}

	var buf bytes.Buffer
	if err := render.EncodePNG(&buf, img); err != nil {
		return fmt.Errorf("encode png: %w", err)
	}
	if outPath != "" {
		if err := os.WriteFile(outPath, buf.Bytes(), 0644); err != nil {
			return fmt.Errorf("write %s: %w", outPath, err)
		}
		logger.Info("rendered units", "control", control, "unit", unit, "boxes", len(boxes), "path", outPath)
		return nil
	}
	_, err = fmt.Fprintln(output.Writer, base64.StdEncoding.EncodeToString(buf.Bytes()))
	return err
}
