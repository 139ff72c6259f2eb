package svgcanvas

import (
	"math"

	"github.com/benoitkugler/vil/drawing"
	"github.com/srwiley/rasterx"
	"golang.org/x/image/math/fixed"
)

// compute the geometric extent of a drawing, used when
// the document does not provide its size

// Measure returns the smallest rectangle containing the paths of `d`,
// in user space (the root transform of `d` is ignored).
// Stroke widths are not taken into account.
// `ok` is false if the drawing has no visible path.
func Measure(d *drawing.Drawing) (b drawing.Bounds, ok bool) {
	dr := *d
	dr.Transform = rasterx.Identity

	m := newMeasurer()
	dr.Draw(m, 1)
	if m.isEmpty() {
		return drawing.Bounds{}, false
	}
	return drawing.Bounds{X: m.minX, Y: m.minY, W: m.maxX - m.minX, H: m.maxY - m.minY}, true
}

// measurer implements drawing.Driver, drawing.Filler and drawing.Stroker,
// accumulating the extent of the path commands
type measurer struct {
	current                fixed.Point26_6
	minX, minY, maxX, maxY float64
}

func newMeasurer() *measurer {
	return &measurer{
		minX: math.Inf(1), minY: math.Inf(1),
		maxX: math.Inf(-1), maxY: math.Inf(-1),
	}
}

func (m *measurer) isEmpty() bool { return m.minX > m.maxX || m.minY > m.maxY }

// SetupDrawers only returns one drawer, since the filler and the stroker
// receive the same commands.
func (m *measurer) SetupDrawers(willFill, willStroke bool) (drawing.Filler, drawing.Stroker) {
	if willFill {
		return m, nil
	}
	if willStroke {
		return nil, m
	}
	return nil, nil
}

func (m *measurer) add(x, y float64) {
	m.minX = math.Min(m.minX, x)
	m.minY = math.Min(m.minY, y)
	m.maxX = math.Max(m.maxX, x)
	m.maxY = math.Max(m.maxY, y)
}

func (m *measurer) addCurve(curve bezier) {
	minX, minY, maxX, maxY := computeBoundingBox(curve)
	m.add(minX, minY)
	m.add(maxX, maxY)
}

func (m *measurer) Clear() {}

func (m *measurer) Start(a fixed.Point26_6) {
	m.current = a
	m.add(fixedTof(a))
}

func (m *measurer) Line(b fixed.Point26_6) {
	m.current = b
	m.add(fixedTof(b))
}

func (m *measurer) QuadBezier(b, c fixed.Point26_6) {
	m.addCurve(quadBezier{m.current, b, c})
	m.current = c
}

func (m *measurer) CubeBezier(b, c, d fixed.Point26_6) {
	m.addCurve(cubicBezier{m.current, b, c, d})
	m.current = d
}

func (m *measurer) Stop(bool) {}

func (m *measurer) Draw()                                  {}
func (m *measurer) SetWinding(bool)                        {}
func (m *measurer) SetColor(drawing.Pattern, float64)      {}
func (m *measurer) SetStrokeOptions(drawing.StrokeOptions) {}

type quadBezier [3]fixed.Point26_6

// quadratic polinomial
// x = At^2 + Bt + C
// where
// A = p0 + p2 - 2p1
// B = 2(p1 - p0)
// C = p0
func bezierQuad(p0, p1, p2, t float64) float64 {
	return (p0+p2-2*p1)*t*t + 2*(p1-p0)*t + p0
}

// derivative as at + b
func quadraticDerivative(p0, p1, p2 float64) (a, b float64) {
	return 2 * (p2 - p1 - (p1 - p0)), 2 * (p1 - p0)
}

// handle the case where a = 0
func linearRoots(a, b float64) []float64 {
	if a == 0 {
		return nil
	}
	return []float64{-b / a}
}

func (cu quadBezier) criticalPoints() (tX, tY []float64) {
	p0x, p0y := fixedTof(cu[0])
	p1x, p1y := fixedTof(cu[1])
	p2x, p2y := fixedTof(cu[2])

	aX, bX := quadraticDerivative(p0x, p1x, p2x)
	aY, bY := quadraticDerivative(p0y, p1y, p2y)

	return linearRoots(aX, bX), linearRoots(aY, bY)
}

func (cu quadBezier) evaluateCurve(t float64) (x, y float64) {
	p0x, p0y := fixedTof(cu[0])
	p1x, p1y := fixedTof(cu[1])
	p2x, p2y := fixedTof(cu[2])
	return bezierQuad(p0x, p1x, p2x, t), bezierQuad(p0y, p1y, p2y, t)
}

type cubicBezier [4]fixed.Point26_6

func (cu cubicBezier) criticalPoints() (tX, tY []float64) {
	p0x, p0y := fixedTof(cu[0])
	p1x, p1y := fixedTof(cu[1])
	p2x, p2y := fixedTof(cu[2])
	p3x, p3y := fixedTof(cu[3])

	aX, bX, cX := cubicDerivative(p0x, p1x, p2x, p3x)
	aY, bY, cY := cubicDerivative(p0y, p1y, p2y, p3y)

	return quadraticRoots(aX, bX, cX), quadraticRoots(aY, bY, cY)
}

func (cu cubicBezier) evaluateCurve(t float64) (x, y float64) {
	p0x, p0y := fixedTof(cu[0])
	p1x, p1y := fixedTof(cu[1])
	p2x, p2y := fixedTof(cu[2])
	p3x, p3y := fixedTof(cu[3])
	return bezierSpline(p0x, p1x, p2x, p3x, t), bezierSpline(p0y, p1y, p2y, p3y, t)
}

// cubic polinomial
// x = At^3 + Bt^2 + Ct + D
// where A,B,C,D:
// A = p3 -3 * p2 + 3 * p1 - p0
// B = 3 * p2 - 6 * p1 +3 * p0
// C = 3 * p1 - 3 * p0
// D = p0
func bezierSpline(p0, p1, p2, p3, t float64) float64 {
	return (p3-3*p2+3*p1-p0)*t*t*t +
		(3*p2-6*p1+3*p0)*t*t +
		(3*p1-3*p0)*t +
		p0
}

// X' = (3*p3-9*p2+9*p1-3*p0)t^2 + (6*p2-12*p1+6*p0)t + (3*p1-3*p0)
func cubicDerivative(p0, p1, p2, p3 float64) (a, b, c float64) {
	return 3*p3 - 9*p2 + 9*p1 - 3*p0, 6*p2 - 12*p1 + 6*p0, 3*p1 - 3*p0
}

// roots of at^2 + bt + c
func quadraticRoots(a, b, c float64) []float64 {
	if a == 0 {
		return linearRoots(b, c)
	}
	d := b*b - 4*a*c
	if d < 0 {
		return nil
	}
	if d == 0 {
		return []float64{-b / (2 * a)}
	}
	sq := math.Sqrt(d)
	return []float64{(-b + sq) / (2 * a), (-b - sq) / (2 * a)}
}

type bezier interface {
	// compute the t zeroing the derivative
	criticalPoints() (tX, tY []float64)
	// compute the point a time t
	evaluateCurve(t float64) (x, y float64)
}

func computeBoundingBox(curve bezier) (minX, minY, maxX, maxY float64) {
	resX, resY := curve.criticalPoints()

	minX, minY = math.Inf(1), math.Inf(1)
	maxX, maxY = math.Inf(-1), math.Inf(-1)

	// the extremities are always included
	for _, t := range append(append(resX, 0, 1), resY...) {
		if !(0 <= t && t <= 1) {
			continue
		}
		x, y := curve.evaluateCurve(t)
		minX, minY = math.Min(x, minX), math.Min(y, minY)
		maxX, maxY = math.Max(x, maxX), math.Max(y, maxY)
	}
	return minX, minY, maxX, maxY
}
