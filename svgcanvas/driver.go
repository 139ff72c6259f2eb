package svgcanvas

import (
	"fmt"
	"image/color"
	"strings"

	"github.com/beevik/etree"
	"github.com/benoitkugler/vil/drawing"
	"github.com/srwiley/rasterx"
	"golang.org/x/image/math/fixed"
)

// Rendering of parsed drawings: each styled path becomes one <path> element,
// whose `d` attribute is written by the filler, or by the stroker when
// the path is not filled.

// assert interface conformance
var (
	_ drawing.Driver  = (*Canvas)(nil)
	_ drawing.Filler  = (*filler)(nil)
	_ drawing.Stroker = (*stroker)(nil)
	_ drawing.Stroker = (*patherStroker)(nil)
)

// implements the common path commands,
// shared by the filler and the stroker
type pather struct {
	data strings.Builder
}

// the <path> element being written
type paint struct {
	canvas *Canvas
	el     *etree.Element
}

// implements the filling operation
type filler struct {
	*pather
	paint
	useNonZeroWinding bool
}

// only stroke the current path, doesnt add point to it
type stroker struct {
	noPath
	paint
}

// implements the stroking operation, while
// also writing the path
type patherStroker struct {
	*pather
	paint
}

// SetupDrawers implements drawing.Driver, appending a new <path> element
// to the current group.
func (c *Canvas) SetupDrawers(willFill, willStroke bool) (f drawing.Filler, s drawing.Stroker) {
	if !willFill && !willStroke {
		return nil, nil
	}
	p := paint{canvas: c, el: c.target().CreateElement("path")}
	if willFill {
		f = &filler{pather: new(pather), paint: p, useNonZeroWinding: true}
		if willStroke { // the path is already written by the filler
			s = stroker{paint: p}
		}
		return f, s
	}
	return nil, patherStroker{pather: new(pather), paint: p}
}

func (p *pather) point(a fixed.Point26_6) {
	x, y := fixedTof(a)
	fmt.Fprintf(&p.data, "%v %v", num(x), num(y))
}

func (p *pather) Clear() { p.data.Reset() }

func (p *pather) Start(a fixed.Point26_6) {
	p.data.WriteByte('M')
	p.point(a)
}

func (p *pather) Line(b fixed.Point26_6) {
	p.data.WriteByte('L')
	p.point(b)
}

func (p *pather) QuadBezier(b, c fixed.Point26_6) {
	p.data.WriteByte('Q')
	p.point(b)
	p.data.WriteByte(' ')
	p.point(c)
}

func (p *pather) CubeBezier(b, c, d fixed.Point26_6) {
	p.data.WriteByte('C')
	p.point(b)
	p.data.WriteByte(' ')
	p.point(c)
	p.data.WriteByte(' ')
	p.point(d)
}

func (p *pather) Stop(closeLoop bool) {
	if closeLoop {
		p.data.WriteByte('Z')
	}
}

// noPath ignores the path commands
type noPath struct{}

func (noPath) Clear()                                      {}
func (noPath) Start(fixed.Point26_6)                       {}
func (noPath) Line(fixed.Point26_6)                        {}
func (noPath) QuadBezier(fixed.Point26_6, fixed.Point26_6) {}
func (noPath) CubeBezier(_, _, _ fixed.Point26_6)          {}
func (noPath) Stop(bool)                                   {}

// setColorAttr writes `attr` (fill or stroke) and its opacity
func setColorAttr(el *etree.Element, attr string, col color.Color, opacity float64) {
	el.CreateAttr(attr, cssColor(col))
	if opacity *= alpha(col); opacity < 1 {
		el.CreateAttr(attr+"-opacity", num(opacity).String())
	}
}

func (p paint) setPattern(attr string, pattern drawing.Pattern, opacity float64) {
	switch pattern := pattern.(type) {
	case drawing.PlainColor:
		setColorAttr(p.el, attr, pattern, opacity)
	case drawing.Gradient:
		p.el.CreateAttr(attr, "url(#"+p.canvas.addGradient(pattern)+")")
		if opacity < 1 {
			p.el.CreateAttr(attr+"-opacity", num(opacity).String())
		}
	default:
		p.el.CreateAttr(attr, "none")
	}
}

func (p paint) setStrokeOptions(options drawing.StrokeOptions) {
	p.el.CreateAttr("stroke-width", num(options.LineWidth).String())
	if options.Join.LineCap != drawing.ButtCap {
		p.el.CreateAttr("stroke-linecap", options.Join.LineCap.String())
	}
	if options.Join.LineJoin != drawing.Miter {
		p.el.CreateAttr("stroke-linejoin", options.Join.LineJoin.String())
	}
	if options.Join.MiterLimit != 4 {
		p.el.CreateAttr("stroke-miterlimit", num(options.Join.MiterLimit).String())
	}
	if len(options.Dash.Dash) != 0 {
		dashes := make([]string, len(options.Dash.Dash))
		for i, d := range options.Dash.Dash {
			dashes[i] = num(d).String()
		}
		p.el.CreateAttr("stroke-dasharray", strings.Join(dashes, " "))
		if options.Dash.DashOffset != 0 {
			p.el.CreateAttr("stroke-dashoffset", num(options.Dash.DashOffset).String())
		}
	}
}

func (f *filler) SetColor(pattern drawing.Pattern, opacity float64) {
	f.setPattern("fill", pattern, opacity)
}

func (f *filler) Draw() {
	f.el.CreateAttr("d", f.data.String())
	if !f.useNonZeroWinding {
		f.el.CreateAttr("fill-rule", "evenodd")
	}
}

func (f *filler) SetWinding(useNonZeroWinding bool) {
	f.useNonZeroWinding = useNonZeroWinding
}

func (s stroker) SetColor(pattern drawing.Pattern, opacity float64) {
	s.setPattern("stroke", pattern, opacity)
}

func (s stroker) SetStrokeOptions(options drawing.StrokeOptions) { s.setStrokeOptions(options) }

func (s stroker) Draw() {}

func (s patherStroker) SetColor(pattern drawing.Pattern, opacity float64) {
	s.setPattern("stroke", pattern, opacity)
}

func (s patherStroker) SetStrokeOptions(options drawing.StrokeOptions) { s.setStrokeOptions(options) }

func (s patherStroker) Draw() {
	s.el.CreateAttr("d", s.data.String())
	s.el.CreateAttr("fill", "none")
}

// defs returns the <defs> element of the document,
// creating it as the first child of the root if needed
func (c *Canvas) defs() *etree.Element {
	root := c.Root()
	if defs := root.SelectElement("defs"); defs != nil {
		return defs
	}
	defs := etree.NewElement("defs")
	root.InsertChildAt(0, defs)
	return defs
}

// addGradient writes the gradient in the <defs> element
// and returns its id
func (c *Canvas) addGradient(g drawing.Gradient) string {
	c.gradients++
	id := fmt.Sprintf("vil-gradient-%d", c.gradients)

	var el *etree.Element
	switch dir := g.Direction.(type) {
	case drawing.Linear:
		el = c.defs().CreateElement("linearGradient")
		el.CreateAttr("x1", num(dir[0]).String())
		el.CreateAttr("y1", num(dir[1]).String())
		el.CreateAttr("x2", num(dir[2]).String())
		el.CreateAttr("y2", num(dir[3]).String())
	case drawing.Radial:
		el = c.defs().CreateElement("radialGradient")
		el.CreateAttr("cx", num(dir[0]).String())
		el.CreateAttr("cy", num(dir[1]).String())
		el.CreateAttr("fx", num(dir[2]).String())
		el.CreateAttr("fy", num(dir[3]).String())
		el.CreateAttr("r", num(dir[4]).String())
		if dir[5] != 0 {
			el.CreateAttr("fr", num(dir[5]).String())
		}
	default:
		el = c.defs().CreateElement("linearGradient")
	}
	el.CreateAttr("id", id)

	if g.Units == drawing.UserSpaceOnUse {
		el.CreateAttr("gradientUnits", "userSpaceOnUse")
	}
	if g.Matrix != rasterx.Identity {
		el.CreateAttr("gradientTransform", formatMatrix(g.Matrix))
	}
	switch g.Spread {
	case drawing.ReflectSpread:
		el.CreateAttr("spreadMethod", "reflect")
	case drawing.RepeatSpread:
		el.CreateAttr("spreadMethod", "repeat")
	}

	for _, stop := range g.Stops {
		st := el.CreateElement("stop")
		st.CreateAttr("offset", num(stop.Offset).String())
		if stop.StopColor == nil {
			st.CreateAttr("stop-opacity", "0")
			continue
		}
		st.CreateAttr("stop-color", cssColor(stop.StopColor))
		if op := stop.Opacity * alpha(stop.StopColor); op < 1 {
			st.CreateAttr("stop-opacity", num(op).String())
		}
	}
	return id
}
