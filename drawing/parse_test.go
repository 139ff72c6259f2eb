package drawing

import (
	"os"
	"strings"
	"testing"

	"github.com/srwiley/rasterx"
	"github.com/tdewolff/test"
)

func parseFile(t *testing.T, filename string, mode ErrorMode) *Drawing {
	d, err := ParseFile(filename, mode)
	test.Error(t, err)
	return d
}

func TestParseShapes(t *testing.T) {
	d := parseFile(t, "testdata/shapes.svg", StrictErrorMode)

	test.T(t, d.ViewBox, Bounds{X: 0, Y: 0, W: 100, H: 50})
	test.Float(t, d.Width, 200)
	test.Float(t, d.Height, 100)
	test.T(t, d.Titles, []string{"Shapes"})
	test.T(t, d.Descriptions, []string{"A few basic shapes"})
	test.T(t, len(d.Paths), 6)

	rect := d.Paths[0].Style
	test.T(t, rect.FillerColor, Pattern(NewPlainColor(0xff, 0, 0, 0xff)))
	test.T(t, rect.LinerColor, nil)

	circle := d.Paths[1].Style
	test.T(t, circle.FillerColor, nil)
	test.T(t, circle.LinerColor, Pattern(NewPlainColor(0, 0, 0xff, 0xff)))
	test.Float(t, circle.LineWidth, 2)

	ellipse := d.Paths[2].Style
	test.T(t, ellipse.FillerColor, Pattern(NewPlainColor(0, 128, 0, 0xff)))
	test.Float(t, ellipse.FillOpacity, 0.5)
	test.Float(t, ellipse.LineOpacity, 0.5)

	line := d.Paths[3].Path
	test.T(t, len(line), 2)
	test.String(t, line.String(), "M0.000,0.000 L100.000,50.000")

	polygon := d.Paths[5].Path
	_, isClosed := polygon[len(polygon)-1].(Close)
	test.That(t, isClosed, "polygon must be closed")
}

func TestParseDefs(t *testing.T) {
	d := parseFile(t, "testdata/defs.svg", StrictErrorMode)

	test.T(t, d.ViewBox, Bounds{W: 64, H: 64})
	test.Float(t, d.Width, 64)
	test.Float(t, d.Height, 64)
	test.T(t, len(d.Paths), 2) // clipPath content is not rendered

	grad, ok := d.Paths[0].Style.FillerColor.(Gradient)
	test.That(t, ok, "expected a gradient fill")
	test.T(t, grad.Direction, gradientDirecter(Linear{0, 0, 1, 1}))
	test.T(t, len(grad.Stops), 2)
	test.Float(t, grad.Stops[1].Offset, 1)
	test.Float(t, grad.Stops[1].Opacity, 0.5)
	test.T(t, grad.Units, ObjectBoundingBox)

	used := d.Paths[1].Style.Transform()
	test.T(t, used, rasterx.Identity.Translate(10, 20))
}

func TestParseErrorModes(t *testing.T) {
	d := parseFile(t, "testdata/unknown.svg", IgnoreErrorMode)
	test.T(t, len(d.Paths), 1)

	d = parseFile(t, "testdata/unknown.svg", WarnErrorMode)
	test.T(t, len(d.Paths), 1)

	_, err := ParseFile("testdata/unknown.svg", StrictErrorMode)
	test.That(t, err != nil, "text is not supported in strict mode")
}

func TestParseInvalid(t *testing.T) {
	_, err := ParseFile("testdata/notsvg.xml", WarnErrorMode)
	test.T(t, err, errNotSVG)

	_, err = Parse(strings.NewReader(""), WarnErrorMode)
	test.T(t, err, errNotSVG)

	_, err = Parse(strings.NewReader("<svg><rect"), WarnErrorMode)
	test.That(t, err != nil, "truncated document")

	_, err = ParseFile("testdata/missing.svg", WarnErrorMode)
	test.That(t, os.IsNotExist(err))

	_, err = Parse(strings.NewReader(`<svg viewBox="0 0 10"/>`), WarnErrorMode)
	test.T(t, err, errParamMismatch)

	_, err = Parse(strings.NewReader(`<svg><use href="#nope"/></svg>`), WarnErrorMode)
	test.T(t, err, errMissingDef)
}

func TestSizeDefaults(t *testing.T) {
	for _, tt := range []struct {
		svg           string
		vb            Bounds
		width, height float64
	}{
		{`<svg width="30" height="20"/>`, Bounds{W: 30, H: 20}, 30, 20},
		{`<svg viewBox="1 2 30 20"/>`, Bounds{X: 1, Y: 2, W: 30, H: 20}, 30, 20},
		{`<svg width="1in" height="72pt" viewBox="0 0 10 10"/>`, Bounds{W: 10, H: 10}, 96, 96},
		{`<svg width="100%" viewBox="0 0 10 5"/>`, Bounds{W: 10, H: 5}, 10, 5},
		{`<svg/>`, Bounds{}, 0, 0},
	} {
		t.Run(tt.svg, func(t *testing.T) {
			d, err := Parse(strings.NewReader(tt.svg), StrictErrorMode)
			test.Error(t, err)
			test.T(t, d.ViewBox, tt.vb)
			test.Float(t, d.Width, tt.width)
			test.Float(t, d.Height, tt.height)
		})
	}
}

func TestNestedGroupStyle(t *testing.T) {
	src := `<svg viewBox="0 0 10 10">
	<g fill="red" transform="translate(1,1)">
		<g stroke="blue"><rect width="2" height="2"/></g>
		<rect width="2" height="2" fill="none"/>
	</g>
	<rect width="2" height="2"/>
	</svg>`
	d, err := Parse(strings.NewReader(src), StrictErrorMode)
	test.Error(t, err)
	test.T(t, len(d.Paths), 3)

	first := d.Paths[0].Style
	test.T(t, first.FillerColor, Pattern(NewPlainColor(0xff, 0, 0, 0xff)))
	test.T(t, first.LinerColor, Pattern(NewPlainColor(0, 0, 0xff, 0xff)))
	test.T(t, first.Transform(), rasterx.Identity.Translate(1, 1))

	second := d.Paths[1].Style
	test.T(t, second.FillerColor, nil)
	test.T(t, second.LinerColor, nil)

	third := d.Paths[2].Style
	test.T(t, third.FillerColor, DefaultStyle.FillerColor)
	test.T(t, third.Transform(), rasterx.Identity)
}

func TestSetTarget(t *testing.T) {
	d := &Drawing{ViewBox: Bounds{X: 10, Y: 20, W: 100, H: 50}}
	d.SetTarget(0, 0, 200, 200)
	x, y := d.Transform.Transform(10, 20)
	test.Float(t, x, 0)
	test.Float(t, y, 0)
	x, y = d.Transform.Transform(110, 70)
	test.Float(t, x, 200)
	test.Float(t, y, 200)

	d.SetTarget(5, 5, 100, 50)
	x, y = d.Transform.Transform(10, 20)
	test.Float(t, x, 5)
	test.Float(t, y, 5)

	empty := &Drawing{}
	empty.SetTarget(3, 4, 10, 10)
	x, y = empty.Transform.Transform(1, 1)
	test.Float(t, x, 4)
	test.Float(t, y, 5)
}
