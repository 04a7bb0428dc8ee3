// Package render draws a text control's layout and the bounding rectangles
// of its text units into an image.
package render

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"
	"unicode"
	"unicode/utf8"

	"github.com/mj1618/a11y-conform/internal/platform"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

const maxUnits = 1 << 16

var (
	background   = color.RGBA{R: 255, G: 255, B: 255, A: 255}
	glyphColor   = color.RGBA{R: 40, G: 40, B: 40, A: 255}
	boxColor     = color.RGBA{R: 255, G: 0, B: 0, A: 160}
	textColor    = color.RGBA{R: 255, G: 255, B: 255, A: 255}
	outlineColor = color.RGBA{R: 0, G: 0, B: 0, A: 200}
)

// Box is one text unit and the rectangles it covers, in screen coordinates.
type Box struct {
	Index int             `yaml:"index" json:"index"`
	Text  string          `yaml:"text"  json:"text"`
	Rects []platform.Rect `yaml:"rects" json:"rects"`
}

// Units renders el's text and outlines every unit of the document. Units
// other than characters are labeled with their index.
func Units(el platform.Element, unit platform.TextUnit) (*image.RGBA, []Box, error) {
	if el == nil {
		return nil, nil, platform.ErrNullArgument
	}
	if !unit.Valid() {
		return nil, nil, fmt.Errorf("%w: %s", platform.ErrInvalidArgument, unit)
	}
	tp, ok := el.TextPattern()
	if !ok {
		return nil, nil, fmt.Errorf("%s does not support the text pattern: %w", el.AutomationID(), platform.ErrInvalidOperation)
	}
	bounds := el.Bounds()
	if bounds.Empty() {
		return nil, nil, errors.New("element has no area to render")
	}

	img := image.NewRGBA(image.Rect(0, 0, bounds.Width, bounds.Height))
	draw.Draw(img, img.Bounds(), image.NewUniform(background), image.Point{}, draw.Src)

	doc := tp.DocumentRange()
	glyphs, err := collect(doc, platform.UnitCharacter)
	if err != nil {
		return nil, nil, err
	}
	for _, g := range glyphs {
		drawGlyph(img, g, bounds)
	}

	boxes := glyphs
	if unit != platform.UnitCharacter {
		if boxes, err = collect(doc, unit); err != nil {
			return nil, nil, err
		}
	}
	for _, b := range boxes {
		for _, r := range b.Rects {
			drawRectangle(img, r.X-bounds.X, r.Y-bounds.Y, r.X-bounds.X+r.Width, r.Y-bounds.Y+r.Height, boxColor)
		}
		if unit != platform.UnitCharacter && len(b.Rects) > 0 {
			first := b.Rects[0]
			drawTextWithOutline(img, fmt.Sprintf("%d", b.Index), first.X-bounds.X+1, first.Y-bounds.Y+1)
		}
	}
	return img, boxes, nil
}

// collect walks doc one unit at a time from its start.
func collect(doc platform.TextRange, unit platform.TextUnit) ([]Box, error) {
	cursor := doc.Clone()
	if err := cursor.MoveEndpointByRange(platform.EndpointEnd, cursor, platform.EndpointStart); err != nil {
		return nil, err
	}
	var boxes []Box
	for i := 0; i < maxUnits; i++ {
		if cmp, err := cursor.CompareEndpoints(platform.EndpointStart, doc, platform.EndpointEnd); err != nil {
			return nil, err
		} else if cmp >= 0 {
			break
		}
		r := cursor.Clone()
		if err := r.ExpandToEnclosingUnit(unit); err != nil {
			return nil, fmt.Errorf("expand %s %d: %w", unit, i, err)
		}
		text, err := r.GetText(-1)
		if err != nil {
			return nil, err
		}
		rects, err := r.GetBoundingRectangles()
		if err != nil {
			return nil, err
		}
		boxes = append(boxes, Box{Index: i, Text: text, Rects: rects})
		if _, err := cursor.Move(unit, 1); err != nil {
			return nil, err
		}
	}
	return boxes, nil
}

// drawGlyph draws the base rune of a character at its layout cell.
func drawGlyph(img *image.RGBA, g Box, origin platform.Rect) {
	if len(g.Rects) == 0 {
		return
	}
	r, _ := utf8.DecodeRuneInString(g.Text)
	if !unicode.IsGraphic(r) || unicode.IsSpace(r) {
		return
	}
	cell := g.Rects[0]
	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(glyphColor),
		Face: basicfont.Face7x13,
		Dot:  fixed.P(cell.X-origin.X, cell.Y-origin.Y+basicfont.Face7x13.Ascent),
	}
	d.DrawString(string(r))
}

// EncodePNG writes img as a PNG.
func EncodePNG(w io.Writer, img image.Image) error {
	return png.Encode(w, img)
}

// drawRectangle draws a rectangle outline clamped to the image.
func drawRectangle(img *image.RGBA, x1, y1, x2, y2 int, c color.Color) {
	bounds := img.Bounds()
	x1, y1 = max(x1, bounds.Min.X), max(y1, bounds.Min.Y)
	x2, y2 = min(x2, bounds.Max.X), min(y2, bounds.Max.Y)
	if x2 <= x1 || y2 <= y1 {
		return
	}
	for x := x1; x < x2; x++ {
		img.Set(x, y1, c)
		img.Set(x, y2-1, c)
	}
	for y := y1; y < y2; y++ {
		img.Set(x1, y, c)
		img.Set(x2-1, y, c)
	}
}

// drawTextWithOutline draws text with its top-left corner at (x, y).
func drawTextWithOutline(img *image.RGBA, text string, x, y int) {
	baseline := y + basicfont.Face7x13.Ascent
	for dx := -1; dx <= 1; dx++ {
		for dy := -1; dy <= 1; dy++ {
			if dx == 0 && dy == 0 {
				continue
			}
			d := &font.Drawer{
				Dst:  img,
				Src:  image.NewUniform(outlineColor),
				Face: basicfont.Face7x13,
				Dot:  fixed.P(x+dx, baseline+dy),
			}
			d.DrawString(text)
		}
	}
	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(textColor),
		Face: basicfont.Face7x13,
		Dot:  fixed.P(x, baseline),
	}
	d.DrawString(text)
}
