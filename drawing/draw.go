package drawing

import (
	"math"

	"github.com/srwiley/rasterx"
	"golang.org/x/image/math/fixed"
)

// Given a parsed SVG document, implements how to
// draw it on a target.
// This requires a driver implementing the actual draw operations,
// such as the SVG canvas of vil/svgcanvas.

// Drawer knows how to do the actual draw operations
// but doesn't need any SVG kwowledge
// In particular, tranformations matrix are already applied to the points
// before sending them to the Drawer.
type Drawer interface {
	// Clear must reset the internal state (used before starting a new path painting)
	Clear()

	// Start starts a new path at the given point.
	Start(a fixed.Point26_6)

	// Line Adds a line for the current point to `b`
	Line(b fixed.Point26_6)

	// QuadBezier adds a quadratic bezier curve to the path
	QuadBezier(b, c fixed.Point26_6)

	// CubeBezier adds a cubic bezier curve to the path
	CubeBezier(b, c, d fixed.Point26_6)

	// Closes the path to the start point if `closeLoop` is true
	Stop(closeLoop bool)

	// SetColor set the color for the current path
	SetColor(color Pattern, opacity float64)

	// Draw fills or strokes the accumulated path using the current settings
	// depending on the filling mode
	Draw()
}

type Filler interface {
	Drawer

	// Decide to use or not the NonZeroWinding rule for the current path
	SetWinding(useNonZeroWinding bool)
}

type Stroker interface {
	Drawer

	// Parametrize the stroking style for the current path
	SetStrokeOptions(options StrokeOptions)
}

type Driver interface {
	// SetupDrawers returns the backend painters, and
	// will be called at the begining of every path.
	// If the `willXXX` boolean is false, the returned drawer should be nil
	// to avoid useless operations.
	// When both booleans are true, one can assume that the exact same draw operations
	// will be performed on the Filler first and then on the Stroker.
	// This promise may enable the implementation to avoid duplicating filled and stroked paths
	SetupDrawers(willFill, willStroke bool) (Filler, Stroker)
}

type DashOptions struct {
	Dash       []float64 // values for the dash pattern (nil or an empty slice for no dashes)
	DashOffset float64   // starting offset into the dash array
}

// JoinMode type to specify how segments join.
type JoinMode uint8

const (
	Miter JoinMode = iota // SVG default
	Round
	Bevel
	MiterClip // New in SVG2
	Arc       // New in SVG2
)

func (s JoinMode) String() string {
	switch s {
	case Round:
		return "round"
	case Bevel:
		return "bevel"
	case Miter:
		return "miter"
	case MiterClip:
		return "miter-clip"
	case Arc:
		return "arcs"
	default:
		return "<unknown JoinMode>"
	}
}

// CapMode defines how to draw caps on the ends of lines
type CapMode uint8

const (
	ButtCap CapMode = iota // SVG default
	SquareCap
	RoundCap
)

func (c CapMode) String() string {
	switch c {
	case ButtCap:
		return "butt"
	case SquareCap:
		return "square"
	case RoundCap:
		return "round"
	default:
		return "<unknown CapMode>"
	}
}

type JoinOptions struct {
	MiterLimit float64  // the miter cutoff value for miter and miterclip joinModes
	LineJoin   JoinMode // JoinMode for curve segments
	LineCap    CapMode  // capping function for line ends
}

type StrokeOptions struct {
	LineWidth float64 // width of the line, in the target space
	Join      JoinOptions
	Dash      DashOptions
}

// DefaultStyle sets the default PathStyle to fill black, winding rule,
// full opacity, no stroke, ButtCap line end and Miter line connect.
var DefaultStyle = PathStyle{
	FillOpacity:       1.0,
	LineOpacity:       1.0,
	LineWidth:         1.0,
	UseNonZeroWinding: true,
	Join: JoinOptions{
		MiterLimit: 4,
		LineJoin:   Miter,
		LineCap:    ButtCap,
	},
	FillerColor: NewPlainColor(0x00, 0x00, 0x00, 0xff),
	transform:   rasterx.Identity,
}

// Draw the compiled SVG drawing into the driver `d`.
// All elements should be contained by the Bounds rectangle of the Drawing.
func (dr *Drawing) Draw(d Driver, opacity float64) {
	for i := range dr.Paths {
		dr.Paths[i].drawTransformed(d, opacity, dr.Transform)
	}
}

// scaleFactor returns the length scaling of the transform,
// used for line widths and dashes
func scaleFactor(m rasterx.Matrix2D) float64 {
	return math.Sqrt(math.Abs(m.A*m.D - m.B*m.C))
}

// userSpacePattern applies the path transform to
// gradients expressed in user space
func userSpacePattern(p Pattern, t rasterx.Matrix2D) Pattern {
	if g, ok := p.(Gradient); ok && g.Units == UserSpaceOnUse {
		g.Matrix = t.Mult(g.Matrix)
		return g
	}
	return p
}

// drawTransformed draws the compiled StyledPath into the driver while applying transform t.
func (svgp *StyledPath) drawTransformed(d Driver, opacity float64, t rasterx.Matrix2D) {
	m := t.Mult(svgp.Style.transform)

	filler, stroker := d.SetupDrawers(svgp.Style.FillerColor != nil, svgp.Style.LinerColor != nil)
	if filler != nil { // nil color disable filling
		filler.Clear()
		filler.SetWinding(svgp.Style.UseNonZeroWinding)

		for _, op := range svgp.Path {
			op.drawTo(filler, m)
		}
		filler.Stop(false)

		filler.SetColor(userSpacePattern(svgp.Style.FillerColor, m), svgp.Style.FillOpacity*opacity)
		filler.Draw()
		filler.SetWinding(true) // default is true
	}

	if stroker != nil { // nil color disable lining
		stroker.Clear()

		scale := scaleFactor(m)
		dash := DashOptions{DashOffset: svgp.Style.Dash.DashOffset * scale}
		for _, v := range svgp.Style.Dash.Dash {
			dash.Dash = append(dash.Dash, v*scale)
		}
		stroker.SetStrokeOptions(StrokeOptions{
			LineWidth: svgp.Style.LineWidth * scale,
			Join:      svgp.Style.Join,
			Dash:      dash,
		})

		for _, op := range svgp.Path {
			op.drawTo(stroker, m)
		}
		stroker.Stop(false)

		stroker.SetColor(userSpacePattern(svgp.Style.LinerColor, m), svgp.Style.LineOpacity*opacity)
		stroker.Draw()
	}
}
