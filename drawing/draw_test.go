package drawing

import (
	"strings"
	"testing"

	"github.com/srwiley/rasterx"
	"github.com/tdewolff/test"
	"golang.org/x/image/math/fixed"
)

// recorder keeps track of the draw operations it receives
type recorder struct {
	points  []fixed.Point26_6
	closed  bool
	color   Pattern
	opacity float64
	winding bool
	options StrokeOptions
	draws   int
}

func (r *recorder) Clear()                             { r.points = r.points[:0]; r.closed = false }
func (r *recorder) Start(a fixed.Point26_6)            { r.points = append(r.points, a) }
func (r *recorder) Line(b fixed.Point26_6)             { r.points = append(r.points, b) }
func (r *recorder) QuadBezier(b, c fixed.Point26_6)    { r.points = append(r.points, b, c) }
func (r *recorder) CubeBezier(b, c, d fixed.Point26_6) { r.points = append(r.points, b, c, d) }
func (r *recorder) Stop(closeLoop bool)                { r.closed = r.closed || closeLoop }
func (r *recorder) Draw()                              { r.draws++ }
func (r *recorder) SetWinding(useNonZeroWinding bool)  { r.winding = useNonZeroWinding }
func (r *recorder) SetStrokeOptions(o StrokeOptions)   { r.options = o }
func (r *recorder) SetColor(color Pattern, opacity float64) {
	r.color = color
	r.opacity = opacity
}

type recordingDriver struct {
	fills, strokes []*recorder
}

func (d *recordingDriver) SetupDrawers(willFill, willStroke bool) (f Filler, s Stroker) {
	if willFill {
		r := new(recorder)
		d.fills = append(d.fills, r)
		f = r
	}
	if willStroke {
		r := new(recorder)
		d.strokes = append(d.strokes, r)
		s = r
	}
	return f, s
}

func TestDrawShapes(t *testing.T) {
	d := parseFile(t, "testdata/shapes.svg", WarnErrorMode)
	d.SetTarget(0, 0, 200, 100)

	var driver recordingDriver
	d.Draw(&driver, 1)

	// rect, ellipse, line and polygon are filled
	test.T(t, len(driver.fills), 4)
	// circle, line and polyline are stroked
	test.T(t, len(driver.strokes), 3)

	for _, r := range append(driver.fills, driver.strokes...) {
		test.T(t, r.draws, 1)
	}

	circle := driver.strokes[0]
	test.Float(t, circle.options.LineWidth, 4)
	test.T(t, circle.color, Pattern(NewPlainColor(0, 0, 0xff, 0xff)))
	test.That(t, circle.closed)

	ellipse := driver.fills[1]
	test.Float(t, ellipse.opacity, 0.5)
	test.That(t, ellipse.winding)

	line := driver.strokes[1]
	test.T(t, line.points, []fixed.Point26_6{rasterx.ToFixedP(0, 0), rasterx.ToFixedP(200, 100)})
}

func TestDrawOpacityAndDashes(t *testing.T) {
	src := `<svg viewBox="0 0 10 10" width="20" height="20">
	<path d="M0 0 L10 0" fill="none" stroke="red" stroke-dasharray="1 2" stroke-dashoffset="1" stroke-opacity="0.5" fill-rule="evenodd"/>
	<rect width="10" height="10" stroke="none" fill-rule="evenodd"/>
	</svg>`
	d, err := Parse(strings.NewReader(src), StrictErrorMode)
	test.Error(t, err)
	d.SetTarget(0, 0, d.Width, d.Height)

	var driver recordingDriver
	d.Draw(&driver, 0.5)

	test.T(t, len(driver.strokes), 1)
	stroke := driver.strokes[0]
	test.Floats(t, stroke.options.Dash.Dash, []float64{2, 4})
	test.Float(t, stroke.options.Dash.DashOffset, 2)
	test.Float(t, stroke.opacity, 0.25)

	test.T(t, len(driver.fills), 1)
	fill := driver.fills[0]
	// the winding rule is restored after the draw
	test.That(t, fill.winding)
	test.Float(t, fill.opacity, 0.5)
}

func TestUserSpaceGradient(t *testing.T) {
	src := `<svg viewBox="0 0 10 10">
	<defs><linearGradient id="g" gradientUnits="userSpaceOnUse" gradientTransform="scale(2)">
		<stop offset="0" stop-color="red"/><stop offset="1" stop-color="blue"/>
	</linearGradient></defs>
	<rect width="10" height="10" fill="url(#g)" transform="translate(1 1)"/>
	<rect width="10" height="10" fill="url(#unknown)"/>
	</svg>`
	d, err := Parse(strings.NewReader(src), StrictErrorMode)
	test.Error(t, err)

	var driver recordingDriver
	d.Draw(&driver, 1)
	test.T(t, len(driver.fills), 2)

	grad, ok := driver.fills[0].color.(Gradient)
	test.That(t, ok)
	test.T(t, grad.Units, UserSpaceOnUse)
	test.T(t, grad.Matrix, rasterx.Identity.Translate(1, 1).Mult(rasterx.Identity.Scale(2, 2)))

	// unknown gradients keep the inherited fill
	test.T(t, driver.fills[1].color, DefaultStyle.FillerColor)
}
