package drawing

import (
	"math"

	"github.com/srwiley/rasterx"
	"github.com/tdewolff/parse/v2/strconv"
)

// This file implements the compilation of the `d` attribute
// of path elements (and of other lists of numbers).

// pathCursor is used to parse SVG format path strings into a Path
type pathCursor struct {
	path                   Path
	placeX, placeY         float64
	cntlPtX, cntlPtY       float64
	pathStartX, pathStartY float64
	points                 []float64
	lastKey                byte
	inPath                 bool
}

func isSeparator(b byte) bool {
	switch b {
	case ' ', ',', '\t', '\n', '\r', '\f':
		return true
	}
	return false
}

// getPoints reads a list of numbers separated by commas or spaces
// into c.points
func (c *pathCursor) getPoints(dataPoints string) error {
	c.points = c.points[:0]
	b := []byte(dataPoints)
	for {
		for len(b) > 0 && isSeparator(b[0]) {
			b = b[1:]
		}
		if len(b) == 0 {
			return nil
		}
		f, n := strconv.ParseFloat(b)
		if n == 0 {
			return errParamMismatch
		}
		c.points = append(c.points, f)
		b = b[n:]
	}
}

func (c *pathCursor) init() {
	c.placeX, c.placeY = 0, 0
	c.cntlPtX, c.cntlPtY = 0, 0
	c.pathStartX, c.pathStartY = 0, 0
	c.points = c.points[:0]
	c.lastKey = ' '
	c.path.Clear()
	c.inPath = false
}

func isCommand(b byte) bool {
	return ('a' <= b && b <= 'z' || 'A' <= b && b <= 'Z') && b != 'e' && b != 'E'
}

// compilePath translates the svgPath description string into a path.
// The resulting path element is stored in c.path.
func (c *pathCursor) compilePath(svgPath string) error {
	c.init()
	lastIndex := -1
	for i := 0; i < len(svgPath); i++ {
		if !isCommand(svgPath[i]) {
			continue
		}
		if lastIndex != -1 {
			if err := c.addSeg(svgPath[lastIndex:i]); err != nil {
				return err
			}
		}
		lastIndex = i
	}
	if lastIndex != -1 {
		if err := c.addSeg(svgPath[lastIndex:]); err != nil {
			return err
		}
	}
	return nil
}

// reflectControl returns the reflection of the last control point
// if the previous command belongs to `family`, or the current point.
func (c *pathCursor) reflectControl(family string) (x, y float64) {
	for i := 0; i < len(family); i++ {
		if c.lastKey == family[i] {
			return 2*c.placeX - c.cntlPtX, 2*c.placeY - c.cntlPtY
		}
	}
	return c.placeX, c.placeY
}

// addSeg decodes an SVG segment string into equivalent path commands
func (c *pathCursor) addSeg(segString string) error {
	if err := c.getPoints(segString[1:]); err != nil {
		return err
	}
	l := len(c.points)
	k := segString[0]
	rel := 'a' <= k && k <= 'z'
	switch k {
	case 'z', 'Z':
		if l != 0 {
			return errParamMismatch
		}
		if c.inPath {
			c.path.Stop(true)
			c.placeX, c.placeY = c.pathStartX, c.pathStartY
			c.inPath = false
		}
	case 'm', 'M':
		if l == 0 || l%2 != 0 {
			return errParamMismatch
		}
		if rel {
			c.points[0] += c.placeX
			c.points[1] += c.placeY
		}
		c.pathStartX, c.pathStartY = c.points[0], c.points[1]
		c.placeX, c.placeY = c.pathStartX, c.pathStartY
		c.inPath = true
		c.path.Start(rasterx.ToFixedP(c.placeX, c.placeY))
		// subsequent pairs are implicit line-to commands
		for i := 2; i < l-1; i += 2 {
			if rel {
				c.points[i] += c.placeX
				c.points[i+1] += c.placeY
			}
			c.placeX, c.placeY = c.points[i], c.points[i+1]
			c.path.Line(rasterx.ToFixedP(c.placeX, c.placeY))
		}
	case 'l', 'L':
		if l == 0 || l%2 != 0 {
			return errParamMismatch
		}
		for i := 0; i < l-1; i += 2 {
			if rel {
				c.points[i] += c.placeX
				c.points[i+1] += c.placeY
			}
			c.placeX, c.placeY = c.points[i], c.points[i+1]
			c.path.Line(rasterx.ToFixedP(c.placeX, c.placeY))
		}
	case 'h', 'H':
		if l == 0 {
			return errParamMismatch
		}
		for _, x := range c.points {
			if rel {
				x += c.placeX
			}
			c.placeX = x
			c.path.Line(rasterx.ToFixedP(c.placeX, c.placeY))
		}
	case 'v', 'V':
		if l == 0 {
			return errParamMismatch
		}
		for _, y := range c.points {
			if rel {
				y += c.placeY
			}
			c.placeY = y
			c.path.Line(rasterx.ToFixedP(c.placeX, c.placeY))
		}
	case 'q', 'Q':
		if l == 0 || l%4 != 0 {
			return errParamMismatch
		}
		for i := 0; i < l-3; i += 4 {
			if rel {
				c.points[i] += c.placeX
				c.points[i+1] += c.placeY
				c.points[i+2] += c.placeX
				c.points[i+3] += c.placeY
			}
			c.cntlPtX, c.cntlPtY = c.points[i], c.points[i+1]
			c.placeX, c.placeY = c.points[i+2], c.points[i+3]
			c.path.QuadBezier(rasterx.ToFixedP(c.cntlPtX, c.cntlPtY), rasterx.ToFixedP(c.placeX, c.placeY))
			c.lastKey = k
		}
	case 't', 'T':
		if l == 0 || l%2 != 0 {
			return errParamMismatch
		}
		for i := 0; i < l-1; i += 2 {
			c.cntlPtX, c.cntlPtY = c.reflectControl("qQtT")
			if rel {
				c.points[i] += c.placeX
				c.points[i+1] += c.placeY
			}
			c.placeX, c.placeY = c.points[i], c.points[i+1]
			c.path.QuadBezier(rasterx.ToFixedP(c.cntlPtX, c.cntlPtY), rasterx.ToFixedP(c.placeX, c.placeY))
			c.lastKey = k
		}
	case 'c', 'C':
		if l == 0 || l%6 != 0 {
			return errParamMismatch
		}
		for i := 0; i < l-5; i += 6 {
			if rel {
				for j := i; j < i+6; j += 2 {
					c.points[j] += c.placeX
					c.points[j+1] += c.placeY
				}
			}
			c.cntlPtX, c.cntlPtY = c.points[i+2], c.points[i+3]
			c.placeX, c.placeY = c.points[i+4], c.points[i+5]
			c.path.CubeBezier(rasterx.ToFixedP(c.points[i], c.points[i+1]),
				rasterx.ToFixedP(c.cntlPtX, c.cntlPtY), rasterx.ToFixedP(c.placeX, c.placeY))
		}
	case 's', 'S':
		if l == 0 || l%4 != 0 {
			return errParamMismatch
		}
		for i := 0; i < l-3; i += 4 {
			firstX, firstY := c.reflectControl("cCsS")
			if rel {
				c.points[i] += c.placeX
				c.points[i+1] += c.placeY
				c.points[i+2] += c.placeX
				c.points[i+3] += c.placeY
			}
			c.cntlPtX, c.cntlPtY = c.points[i], c.points[i+1]
			c.placeX, c.placeY = c.points[i+2], c.points[i+3]
			c.path.CubeBezier(rasterx.ToFixedP(firstX, firstY),
				rasterx.ToFixedP(c.cntlPtX, c.cntlPtY), rasterx.ToFixedP(c.placeX, c.placeY))
			c.lastKey = k
		}
	case 'a', 'A':
		if l == 0 || l%7 != 0 {
			return errParamMismatch
		}
		for i := 0; i < l-6; i += 7 {
			arc := c.points[i : i+7]
			if rel {
				arc[5] += c.placeX
				arc[6] += c.placeY
			}
			c.addArc(arc)
		}
	default:
		return errCommandUnknown
	}
	c.lastKey = k
	return nil
}

// addArc adds an elliptical arc, described by
// rx ry x-axis-rotation large-arc-flag sweep-flag x y,
// with x, y already absolute
func (c *pathCursor) addArc(arc []float64) {
	if arc[5] == c.placeX && arc[6] == c.placeY {
		return // zero length: omitted
	}
	if arc[0] == 0 || arc[1] == 0 { // degenerated radii: straight line
		c.placeX, c.placeY = arc[5], arc[6]
		c.path.Line(rasterx.ToFixedP(c.placeX, c.placeY))
		return
	}
	arc[0], arc[1] = math.Abs(arc[0]), math.Abs(arc[1])
	cx, cy := rasterx.FindEllipseCenter(&arc[0], &arc[1], arc[2]*math.Pi/180, c.placeX,
		c.placeY, arc[5], arc[6], arc[4] == 0, arc[3] == 0)
	c.placeX, c.placeY = rasterx.AddArc(arc, cx, cy, c.placeX, c.placeY, &c.path)
}
