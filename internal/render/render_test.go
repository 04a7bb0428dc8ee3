package render

import (
	"bytes"
	"errors"
	"image/color"
	"image/png"
	"testing"

	"github.com/mj1618/a11y-conform/internal/platform"
	"github.com/mj1618/a11y-conform/internal/platform/virtual"
)

func textBox(t *testing.T, id, value string) platform.Element {
	t.Helper()
	app, err := virtual.Launcher{}.Launch(platform.LaunchOptions{})
	if err != nil {
		t.Fatal(err)
	}
	el, err := app.FindByAutomationID(id)
	if err != nil {
		t.Fatal(err)
	}
	vp, _ := el.ValuePattern()
	if err := vp.SetValue(value); err != nil {
		t.Fatal(err)
	}
	return el
}

func TestUnits_Lines(t *testing.T) {
	el := textBox(t, "TextBox1", "ab cd\r\nef")
	img, boxes, err := Units(el, platform.UnitLine)
	if err != nil {
		t.Fatal(err)
	}
	b := el.Bounds()
	if img.Bounds().Dx() != b.Width || img.Bounds().Dy() != b.Height {
		t.Errorf("image size: got %v, want %dx%d", img.Bounds().Size(), b.Width, b.Height)
	}
	if len(boxes) != 2 {
		t.Fatalf("boxes: got %d, want 2", len(boxes))
	}
	want := []struct {
		text string
		rect platform.Rect
	}{
		{"ab cd\r\n", platform.Rect{X: b.X, Y: b.Y, Width: 35, Height: 13}},
		{"ef", platform.Rect{X: b.X, Y: b.Y + 13, Width: 14, Height: 13}},
	}
	for i, w := range want {
		if boxes[i].Index != i || boxes[i].Text != w.text {
			t.Errorf("box %d: got %d %q, want %q", i, boxes[i].Index, boxes[i].Text, w.text)
		}
		if len(boxes[i].Rects) != 1 || boxes[i].Rects[0] != w.rect {
			t.Errorf("box %d rects: got %v, want %v", i, boxes[i].Rects, w.rect)
		}
	}
	// right edge of the first line's outline
	if got := img.RGBAAt(34, 6); got != boxColor {
		t.Errorf("outline pixel: got %v, want %v", got, boxColor)
	}
	if got := img.RGBAAt(200, 100); got != background {
		t.Errorf("background pixel: got %v, want %v", got, background)
	}
}

func TestUnits_CharactersDrawGlyphs(t *testing.T) {
	el := textBox(t, "TextBox1", "ab cd\r\nef")
	img, boxes, err := Units(el, platform.UnitCharacter)
	if err != nil {
		t.Fatal(err)
	}
	if len(boxes) != 8 {
		t.Fatalf("boxes: got %d, want 8", len(boxes))
	}
	if boxes[5].Text != "\r\n" || len(boxes[5].Rects) != 0 {
		t.Errorf("line break box: got %q %v", boxes[5].Text, boxes[5].Rects)
	}
	inked := false
	for x := 1; x < 6; x++ {
		for y := 1; y < 12; y++ {
			if img.RGBAAt(x, y) == glyphColor {
				inked = true
			}
		}
	}
	if !inked {
		t.Error("no glyph drawn in the first cell")
	}
}

func TestUnits_Empty(t *testing.T) {
	el := textBox(t, "TextBox1", "")
	_, boxes, err := Units(el, platform.UnitWord)
	if err != nil {
		t.Fatal(err)
	}
	if len(boxes) != 0 {
		t.Errorf("boxes: got %d, want 0", len(boxes))
	}
}

func TestUnits_Errors(t *testing.T) {
	app, err := virtual.Launcher{}.Launch(platform.LaunchOptions{})
	if err != nil {
		t.Fatal(err)
	}
	button, err := app.FindByAutomationID("OKButton")
	if err != nil {
		t.Fatal(err)
	}
	text, err := app.FindByAutomationID("TextBox1")
	if err != nil {
		t.Fatal(err)
	}
	tests := []struct {
		name string
		el   platform.Element
		unit platform.TextUnit
		want error
	}{
		{"nil element", nil, platform.UnitWord, platform.ErrNullArgument},
		{"no text pattern", button, platform.UnitWord, platform.ErrInvalidOperation},
		{"invalid unit", text, platform.TextUnit(platform.NumTextUnits), platform.ErrInvalidArgument},
	}
	for _, tt := range tests {
		if _, _, err := Units(tt.el, tt.unit); !errors.Is(err, tt.want) {
			t.Errorf("%s: got %v, want %v", tt.name, err, tt.want)
		}
	}
}

func TestEncodePNG(t *testing.T) {
	el := textBox(t, "TextBox1", "hello")
	img, _, err := Units(el, platform.UnitWord)
	if err != nil {
		t.Fatal(err)
	}
	var buf bytes.Buffer
	if err := EncodePNG(&buf, img); err != nil {
		t.Fatal(err)
	}
	decoded, err := png.Decode(&buf)
	if err != nil {
		t.Fatal(err)
	}
	if decoded.Bounds() != img.Bounds() {
		t.Errorf("decoded bounds: got %v, want %v", decoded.Bounds(), img.Bounds())
	}
	r, g, b, _ := decoded.At(300, 120).RGBA()
	if color.RGBA64Model.Convert(decoded.At(300, 120)) != color.RGBA64Model.Convert(background) {
		t.Errorf("background after decode: %d %d %d", r, g, b)
	}
}
