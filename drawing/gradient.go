package drawing

import (
	"encoding/xml"
	"image/color"
	"strings"

	"github.com/srwiley/rasterx"
)

// GradientUnits is the type for gradient units
type GradientUnits byte

// SVG bounds paremater constants
const (
	ObjectBoundingBox GradientUnits = iota
	UserSpaceOnUse
)

// SpreadMethod is the type for spread parameters
type SpreadMethod byte

// SVG spread parameter constants
const (
	PadSpread SpreadMethod = iota
	ReflectSpread
	RepeatSpread
)

// GradStop represents a stop in the SVG 2.0 gradient specification
type GradStop struct {
	StopColor color.Color
	Offset    float64
	Opacity   float64
}

// Gradient holds a description of an SVG 2.0 gradient
type Gradient struct {
	Direction gradientDirecter
	Stops     []GradStop
	Bounds    Bounds
	Matrix    rasterx.Matrix2D
	Spread    SpreadMethod
	Units     GradientUnits
}

func (Gradient) isPattern() {}

// radial or linear
type gradientDirecter interface {
	isRadial() bool
}

// x1, y1, x2, y2
type Linear [4]float64

func (Linear) isRadial() bool { return false }

// cx, cy, fx, fy, r, fr
type Radial [6]float64

func (Radial) isRadial() bool { return true }

// readGradURL returns the gradient referenced by `v`,
// if it has the form url(#id), and `ok` = true.
// An unknown id resolves to `defaultColor`.
func (c *cursor) readGradURL(v string, defaultColor Pattern) (grad Pattern, ok bool) {
	if !(strings.HasPrefix(v, "url(") && strings.HasSuffix(v, ")")) {
		return nil, false // not a gradient url
	}
	urlStr := strings.Trim(strings.TrimSpace(v[4:len(v)-1]), `'"`)
	if strings.HasPrefix(urlStr, "#") {
		if g, has := c.drawing.grads[urlStr[1:]]; has {
			return *g, true
		}
	}
	return defaultColor, true
}

func (c *cursor) readGradAttr(attr xml.Attr) (err error) {
	switch attr.Name.Local {
	case "gradientTransform":
		c.grad.Matrix, err = c.parseTransform(attr.Value, rasterx.Identity)
	case "gradientUnits":
		switch strings.TrimSpace(attr.Value) {
		case "userSpaceOnUse":
			c.grad.Units = UserSpaceOnUse
		case "objectBoundingBox":
			c.grad.Units = ObjectBoundingBox
		}
	case "spreadMethod":
		switch strings.TrimSpace(attr.Value) {
		case "pad":
			c.grad.Spread = PadSpread
		case "reflect":
			c.grad.Spread = ReflectSpread
		case "repeat":
			c.grad.Spread = RepeatSpread
		}
	case "href": // inherits the stops of the referenced gradient
		id := strings.TrimPrefix(strings.TrimSpace(attr.Value), "#")
		if ref, ok := c.drawing.grads[id]; ok && len(c.grad.Stops) == 0 {
			c.grad.Stops = append([]GradStop(nil), ref.Stops...)
		}
	}
	return err
}
