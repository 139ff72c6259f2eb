package drawing

import (
	"fmt"
	"strings"

	"github.com/srwiley/rasterx"
	"golang.org/x/image/math/fixed"
)

// This file defines the basic path structure

// Operation groups the different SVG commands
type Operation interface {
	// add itself on the driver `d`, after aplying the transform `M`
	drawTo(d Drawer, M rasterx.Matrix2D)
}

type MoveTo fixed.Point26_6

type LineTo fixed.Point26_6

type QuadTo [2]fixed.Point26_6

type CubicTo [3]fixed.Point26_6

type Close struct{}

// starts a new path at the given point.
func (op MoveTo) drawTo(d Drawer, M rasterx.Matrix2D) {
	d.Stop(false) // implicit close if currently in path.
	d.Start(M.TFixed(fixed.Point26_6(op)))
}

// draw a line
func (op LineTo) drawTo(d Drawer, M rasterx.Matrix2D) {
	d.Line(M.TFixed(fixed.Point26_6(op)))
}

// draw a quadratic bezier curve
func (op QuadTo) drawTo(d Drawer, M rasterx.Matrix2D) {
	d.QuadBezier(M.TFixed(op[0]), M.TFixed(op[1]))
}

// draw a cubic bezier curve
func (op CubicTo) drawTo(d Drawer, M rasterx.Matrix2D) {
	d.CubeBezier(M.TFixed(op[0]), M.TFixed(op[1]), M.TFixed(op[2]))
}

func (op Close) drawTo(d Drawer, _ rasterx.Matrix2D) {
	d.Stop(true)
}

// Path describes a sequence of basic SVG operations, which should not be nil
// Higher-level shapes may be reduced to a path.
// A *Path is a rasterx.Adder, so that the shape builders
// of rasterx can write into it.
type Path []Operation

var _ rasterx.Adder = (*Path)(nil)

func fixedTof(a fixed.Int26_6) float32 { return float32(a) / 64 }

// ToSVGPath returns a string representation of the path
func (p Path) ToSVGPath() string {
	chunks := make([]string, len(p))
	for i, op := range p {
		switch op := op.(type) {
		case MoveTo:
			chunks[i] = fmt.Sprintf("M%4.3f,%4.3f", fixedTof(op.X), fixedTof(op.Y))
		case LineTo:
			chunks[i] = fmt.Sprintf("L%4.3f,%4.3f", fixedTof(op.X), fixedTof(op.Y))
		case QuadTo:
			chunks[i] = fmt.Sprintf("Q%4.3f,%4.3f,%4.3f,%4.3f", fixedTof(op[0].X), fixedTof(op[0].Y),
				fixedTof(op[1].X), fixedTof(op[1].Y))
		case CubicTo:
			chunks[i] = fmt.Sprintf("C%4.3f,%4.3f,%4.3f,%4.3f,%4.3f,%4.3f", fixedTof(op[0].X), fixedTof(op[0].Y),
				fixedTof(op[1].X), fixedTof(op[1].Y), fixedTof(op[2].X), fixedTof(op[2].Y))
		case Close:
			chunks[i] = "Z"
		}
	}
	return strings.Join(chunks, " ")
}

// String returns a readable representation of a Path.
func (p Path) String() string {
	return p.ToSVGPath()
}

// Clear zeros the path slice
func (p *Path) Clear() {
	*p = (*p)[:0]
}

// Start starts a new curve at the given point.
func (p *Path) Start(a fixed.Point26_6) {
	*p = append(*p, MoveTo{a.X, a.Y})
}

// Line adds a linear segment to the current curve.
func (p *Path) Line(b fixed.Point26_6) {
	*p = append(*p, LineTo{b.X, b.Y})
}

// QuadBezier adds a quadratic segment to the current curve.
func (p *Path) QuadBezier(b, c fixed.Point26_6) {
	*p = append(*p, QuadTo{b, c})
}

// CubeBezier adds a cubic segment to the current curve.
func (p *Path) CubeBezier(b, c, d fixed.Point26_6) {
	*p = append(*p, CubicTo{b, c, d})
}

// Stop joins the ends of the path
func (p *Path) Stop(closeLoop bool) {
	if closeLoop {
		*p = append(*p, Close{})
	}
}
