package drawing

import (
	"encoding/xml"
	"math"
	"strconv"
	"strings"

	"github.com/srwiley/rasterx"
)

type (
	// PathStyle holds the state of the SVG style
	PathStyle struct {
		FillOpacity, LineOpacity float64
		LineWidth                float64
		UseNonZeroWinding        bool

		Join                    JoinOptions
		Dash                    DashOptions
		FillerColor, LinerColor Pattern // either PlainColor or Gradient

		transform rasterx.Matrix2D // current transform
	}

	// cursor is used while parsing SVG files
	cursor struct {
		pathCursor
		drawing    *Drawing
		styleStack []PathStyle
		grad       *Gradient
		errorMode  ErrorMode

		inTitleText, inDescText, inGrad, inDefs bool
		seenRoot                                bool
		currentDef                              []definition
	}

	// definition is used to store what's given in a def tag
	definition struct {
		ID, Tag string
		Attrs   []xml.Attr
	}
)

// Transform returns the transformation matrix of the style,
// relative to the drawing.
func (s PathStyle) Transform() rasterx.Matrix2D { return s.transform }

func (c *cursor) currentStyle() PathStyle { return c.styleStack[len(c.styleStack)-1] }

// popStyle never removes the default style
func (c *cursor) popStyle() {
	if len(c.styleStack) > 1 {
		c.styleStack = c.styleStack[:len(c.styleStack)-1]
	}
}

func (c *cursor) readTransformAttr(m1 rasterx.Matrix2D, k string) (rasterx.Matrix2D, error) {
	ln := len(c.points)
	switch k {
	case "rotate":
		if ln == 1 {
			m1 = m1.Rotate(c.points[0] * math.Pi / 180)
		} else if ln == 3 {
			m1 = m1.Translate(c.points[1], c.points[2]).
				Rotate(c.points[0]*math.Pi/180).
				Translate(-c.points[1], -c.points[2])
		} else {
			return m1, errParamMismatch
		}
	case "translate":
		if ln == 1 {
			m1 = m1.Translate(c.points[0], 0)
		} else if ln == 2 {
			m1 = m1.Translate(c.points[0], c.points[1])
		} else {
			return m1, errParamMismatch
		}
	case "skewx":
		if ln == 1 {
			m1 = m1.SkewX(c.points[0] * math.Pi / 180)
		} else {
			return m1, errParamMismatch
		}
	case "skewy":
		if ln == 1 {
			m1 = m1.SkewY(c.points[0] * math.Pi / 180)
		} else {
			return m1, errParamMismatch
		}
	case "scale":
		if ln == 1 {
			m1 = m1.Scale(c.points[0], c.points[0])
		} else if ln == 2 {
			m1 = m1.Scale(c.points[0], c.points[1])
		} else {
			return m1, errParamMismatch
		}
	case "matrix":
		if ln == 6 {
			m1 = m1.Mult(rasterx.Matrix2D{
				A: c.points[0],
				B: c.points[1],
				C: c.points[2],
				D: c.points[3],
				E: c.points[4],
				F: c.points[5]})
		} else {
			return m1, errParamMismatch
		}
	default:
		return m1, errParamMismatch
	}
	return m1, nil
}

// parseTransform composes the transformation list `v` onto `m1`
func (c *cursor) parseTransform(v string, m1 rasterx.Matrix2D) (rasterx.Matrix2D, error) {
	ts := strings.Split(v, ")")
	for _, t := range ts {
		t = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(t), ","))
		if len(t) == 0 {
			continue
		}
		d := strings.Split(t, "(")
		if len(d) != 2 || len(d[1]) < 1 {
			return m1, errParamMismatch // badly formed transformation
		}
		err := c.getPoints(d[1])
		if err != nil {
			return m1, err
		}
		m1, err = c.readTransformAttr(m1, strings.ToLower(strings.TrimSpace(d[0])))
		if err != nil {
			return m1, err
		}
	}
	return m1, nil
}

func (c *cursor) readStyleAttr(curStyle *PathStyle, k, v string) error {
	switch k {
	case "fill":
		if gradient, ok := c.readGradURL(v, curStyle.FillerColor); ok {
			curStyle.FillerColor = gradient
			break
		}
		if strings.EqualFold(v, "currentColor") {
			break
		}
		optCol, err := parseSVGColor(v)
		curStyle.FillerColor = optCol.asPattern()
		return err
	case "stroke":
		if gradient, ok := c.readGradURL(v, curStyle.LinerColor); ok {
			curStyle.LinerColor = gradient
			break
		}
		if strings.EqualFold(v, "currentColor") {
			break
		}
		optCol, err := parseSVGColor(v)
		if err != nil {
			return err
		}
		curStyle.LinerColor = optCol.asPattern()
	case "fill-rule":
		switch v {
		case "evenodd":
			curStyle.UseNonZeroWinding = false
		case "nonzero":
			curStyle.UseNonZeroWinding = true
		}
	case "stroke-linecap":
		switch v {
		case "butt":
			curStyle.Join.LineCap = ButtCap
		case "round":
			curStyle.Join.LineCap = RoundCap
		case "square":
			curStyle.Join.LineCap = SquareCap
		}
	case "stroke-linejoin":
		switch v {
		case "miter":
			curStyle.Join.LineJoin = Miter
		case "miter-clip":
			curStyle.Join.LineJoin = MiterClip
		case "round":
			curStyle.Join.LineJoin = Round
		case "arcs":
			curStyle.Join.LineJoin = Arc
		case "bevel":
			curStyle.Join.LineJoin = Bevel
		}
	case "stroke-miterlimit":
		mLimit, err := parseBasicFloat(v)
		if err != nil {
			return err
		}
		curStyle.Join.MiterLimit = mLimit
	case "stroke-width":
		width, err := c.parseUnit(v, diagPercentage)
		if err != nil {
			return err
		}
		curStyle.LineWidth = width
	case "stroke-dashoffset":
		dashOffset, err := c.parseUnit(v, diagPercentage)
		if err != nil {
			return err
		}
		curStyle.Dash.DashOffset = dashOffset
	case "stroke-dasharray":
		if v == "none" {
			curStyle.Dash.Dash = nil
			break
		}
		dashes := splitOnCommaOrSpace(v)
		dList := make([]float64, len(dashes))
		for i, dstr := range dashes {
			d, err := c.parseUnit(dstr, diagPercentage)
			if err != nil {
				return err
			}
			dList[i] = d
		}
		curStyle.Dash.Dash = dList
	case "opacity", "stroke-opacity", "fill-opacity":
		op, err := readFraction(v)
		if err != nil {
			return err
		}
		if k != "stroke-opacity" {
			curStyle.FillOpacity *= op
		}
		if k != "fill-opacity" {
			curStyle.LineOpacity *= op
		}
	case "transform":
		m, err := c.parseTransform(v, curStyle.transform)
		if err != nil {
			return err
		}
		curStyle.transform = m
	}
	return nil
}

// pushStyle parses the style element, and push it on the style stack. Note that this parses both the contents of a style attribute plus
// direct presentation attributes.
func (c *cursor) pushStyle(attrs []xml.Attr) error {
	var pairs []string
	for _, attr := range attrs {
		switch strings.ToLower(attr.Name.Local) {
		case "style":
			pairs = append(pairs, strings.Split(attr.Value, ";")...)
		default:
			pairs = append(pairs, attr.Name.Local+":"+attr.Value)
		}
	}
	// Make a copy of the top style
	curStyle := c.currentStyle()
	for _, pair := range pairs {
		kv := strings.SplitN(pair, ":", 2)
		if len(kv) == 2 {
			k := strings.TrimSpace(strings.ToLower(kv[0]))
			v := strings.TrimSpace(kv[1])
			if err := c.readStyleAttr(&curStyle, k, v); err != nil {
				return err
			}
		}
	}
	c.styleStack = append(c.styleStack, curStyle) // Push style onto stack
	return nil
}

// splitOnCommaOrSpace returns a list of strings after splitting the input on comma and space delimiters
func splitOnCommaOrSpace(s string) []string {
	return strings.FieldsFunc(s,
		func(r rune) bool {
			return r == ',' || r == ' '
		})
}

func (c *cursor) flushDef() {
	if len(c.currentDef) > 0 {
		c.drawing.defs[c.currentDef[0].ID] = c.currentDef
		c.currentDef = nil
	}
}

// flushPath stores the path parsed from the current element,
// with the current style
func (c *cursor) flushPath() {
	if len(c.path) > 0 {
		pathCopy := append(Path{}, c.path...)
		c.drawing.Paths = append(c.drawing.Paths,
			StyledPath{Path: pathCopy, Style: c.currentStyle()})
		c.path = c.path[:0]
	}
}

func (c *cursor) readStartElement(se xml.StartElement) (err error) {
	var skipDef bool
	if se.Name.Local == "radialGradient" || se.Name.Local == "linearGradient" || c.inGrad {
		skipDef = true
	}
	if c.inDefs && !skipDef {
		ID := ""
		for _, attr := range se.Attr {
			if attr.Name.Local == "id" {
				ID = attr.Value
			}
		}
		if ID != "" {
			c.flushDef()
		}
		c.currentDef = append(c.currentDef, definition{
			ID:    ID,
			Tag:   se.Name.Local,
			Attrs: se.Attr,
		})
		return nil
	}
	df, ok := drawFuncs[se.Name.Local]
	if !ok {
		return c.handleError(se.Name.Local)
	}
	err = df(c, se.Attr)
	c.flushPath()
	return err
}

func readFraction(v string) (f float64, err error) {
	v = strings.TrimSpace(v)
	d := 1.0
	if strings.HasSuffix(v, "%") {
		d = 100
		v = strings.TrimSuffix(v, "%")
	}
	f, err = parseBasicFloat(v)
	f /= d
	return
}

func parseBasicFloat(s string) (float64, error) {
	return strconv.ParseFloat(strings.TrimSpace(s), 64)
}

type percentageReference uint8

const (
	widthPercentage percentageReference = iota
	heightPercentage
	diagPercentage
)

// absolute units, in user units (CSS pixels)
var unitFactors = map[string]float64{
	"":   1,
	"px": 1,
	"pt": 96. / 72,
	"pc": 16,
	"mm": 96. / 25.4,
	"cm": 96. / 2.54,
	"in": 96,
	"em": 16,
	"ex": 8,
}

// parseLength reads a number with an optional unit,
// resolving absolute units. For percentages, `isPercent` is true
// and `f` is the fraction (50% -> 0.5)
func parseLength(v string) (f float64, isPercent bool, err error) {
	v = strings.TrimSpace(v)
	if strings.HasSuffix(v, "%") {
		f, err = parseBasicFloat(v[:len(v)-1])
		return f / 100, true, err
	}
	i := len(v)
	for i > 0 && ('a' <= v[i-1] && v[i-1] <= 'z' || 'A' <= v[i-1] && v[i-1] <= 'Z') {
		i--
	}
	factor, ok := unitFactors[strings.ToLower(v[i:])]
	if !ok {
		return 0, false, errParamMismatch
	}
	f, err = parseBasicFloat(v[:i])
	return f * factor, false, err
}

// parseUnit resolves a length, with percentages relative to the view box
func (c *cursor) parseUnit(v string, asPerc percentageReference) (float64, error) {
	f, isPercent, err := parseLength(v)
	if err != nil || !isPercent {
		return f, err
	}
	vb := c.drawing.ViewBox
	switch asPerc {
	case widthPercentage:
		return f * vb.W, nil
	case heightPercentage:
		return f * vb.H, nil
	default:
		return f * math.Sqrt(vb.W*vb.W+vb.H*vb.H) / math.Sqrt2, nil
	}
}
