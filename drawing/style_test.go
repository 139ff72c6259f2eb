package drawing

import (
	"encoding/xml"
	"math"
	"testing"

	"github.com/srwiley/rasterx"
	"github.com/tdewolff/test"
)

func TestParseSVGColor(t *testing.T) {
	for _, tt := range []struct {
		in    string
		valid bool
		want  PlainColor
	}{
		{"#abc", true, NewPlainColor(0xaa, 0xbb, 0xcc, 0xff)},
		{"#abcd", true, NewPlainColor(0xaa, 0xbb, 0xcc, 0xdd)},
		{"#FBD9BD", true, NewPlainColor(0xfb, 0xd9, 0xbd, 0xff)},
		{"#11223344", true, NewPlainColor(0x11, 0x22, 0x33, 0x44)},
		{"red", true, NewPlainColor(0xff, 0, 0, 0xff)},
		{" RED ", true, NewPlainColor(0xff, 0, 0, 0xff)},
		{"rgb(255, 0, 10)", true, NewPlainColor(0xff, 0, 10, 0xff)},
		{"rgb(100%, 50%, 0%)", true, NewPlainColor(0xff, 128, 0, 0xff)},
		{"rgb(300, -2, 0)", true, NewPlainColor(0xff, 0, 0, 0xff)},
		{"rgba(0, 0, 0, 0.5)", true, NewPlainColor(0, 0, 0, 128)},
		{"none", false, PlainColor{}},
		{"transparent", false, PlainColor{}},
	} {
		t.Run(tt.in, func(t *testing.T) {
			c, err := parseSVGColor(tt.in)
			test.Error(t, err)
			test.T(t, c.valid, tt.valid)
			test.T(t, c.color, tt.want)
		})
	}

	for _, in := range []string{"", "#12345", "#ggg", "rgb(1,2)", "rgba(1,2,3)", "rgb(a,b,c)", "nocolor"} {
		_, err := parseSVGColor(in)
		test.That(t, err != nil, "expected an error for", in)
	}
}

func TestOptionnalColor(t *testing.T) {
	none := optionnalColor{}
	test.T(t, none.asPattern(), nil)
	test.T(t, none.asColor(), nil)

	red := optionnalColor{valid: true, color: NewPlainColor(0xff, 0, 0, 0xff)}
	r, g, b, a := red.asColor().RGBA()
	test.T(t, []uint32{r, g, b, a}, []uint32{0xffff, 0, 0, 0xffff})
}

func TestParseLength(t *testing.T) {
	for _, tt := range []struct {
		in        string
		want      float64
		isPercent bool
	}{
		{"10", 10, false},
		{"10px", 10, false},
		{" 1in ", 96, false},
		{"72pt", 96, false},
		{"2.54cm", 96, false},
		{"25.4mm", 96, false},
		{"1pc", 16, false},
		{"2em", 32, false},
		{"50%", 0.5, true},
		{"1E2", 100, false},
	} {
		t.Run(tt.in, func(t *testing.T) {
			f, isPercent, err := parseLength(tt.in)
			test.Error(t, err)
			test.Float(t, f, tt.want)
			test.T(t, isPercent, tt.isPercent)
		})
	}

	_, _, err := parseLength("3furlongs")
	test.T(t, err, errParamMismatch)
	_, _, err = parseLength("px")
	test.That(t, err != nil)
}

func TestParseUnit(t *testing.T) {
	c := cursor{drawing: &Drawing{ViewBox: Bounds{W: 300, H: 400}}}
	f, err := c.parseUnit("10%", widthPercentage)
	test.Error(t, err)
	test.Float(t, f, 30)
	f, err = c.parseUnit("10%", heightPercentage)
	test.Error(t, err)
	test.Float(t, f, 40)
	f, err = c.parseUnit("10%", diagPercentage)
	test.Error(t, err)
	test.Float(t, f, 500/math.Sqrt2/10)
	f, err = c.parseUnit("12", diagPercentage)
	test.Error(t, err)
	test.Float(t, f, 12)
}

func TestReadFraction(t *testing.T) {
	f, err := readFraction("0.25")
	test.Error(t, err)
	test.Float(t, f, 0.25)
	f, err = readFraction(" 40% ")
	test.Error(t, err)
	test.Float(t, f, 0.4)
	_, err = readFraction("half")
	test.That(t, err != nil)
}

func radians(deg float64) float64 { return deg * math.Pi / 180 }

func TestParseTransform(t *testing.T) {
	var c cursor
	for _, tt := range []struct {
		in   string
		want rasterx.Matrix2D
	}{
		{"translate(10)", rasterx.Identity.Translate(10, 0)},
		{"translate(10, 5)", rasterx.Identity.Translate(10, 5)},
		{"scale(3)", rasterx.Identity.Scale(3, 3)},
		{"scale(2 4)", rasterx.Identity.Scale(2, 4)},
		{"translate(10) scale(2)", rasterx.Identity.Translate(10, 0).Scale(2, 2)},
		{"translate(10),scale(2)", rasterx.Identity.Translate(10, 0).Scale(2, 2)},
		{"matrix(1 2 3 4 5 6)", rasterx.Matrix2D{A: 1, B: 2, C: 3, D: 4, E: 5, F: 6}},
		{"rotate(90 5 5)", rasterx.Identity.Translate(5, 5).Rotate(radians(90)).Translate(-5, -5)},
		{"skewX(45)", rasterx.Identity.SkewX(radians(45))},
		{"", rasterx.Identity},
	} {
		t.Run(tt.in, func(t *testing.T) {
			m, err := c.parseTransform(tt.in, rasterx.Identity)
			test.Error(t, err)
			test.T(t, m, tt.want)
		})
	}

	for _, in := range []string{"foo(1)", "matrix(1 2 3)", "rotate(1 2)", "translate", "scale()", "skewY(1 2)"} {
		_, err := c.parseTransform(in, rasterx.Identity)
		test.That(t, err != nil, "expected an error for", in)
	}
}

func TestPushStyle(t *testing.T) {
	c := cursor{styleStack: []PathStyle{DefaultStyle}, drawing: &Drawing{ViewBox: Bounds{W: 10, H: 10}}}
	err := c.pushStyle([]xml.Attr{
		{Name: xml.Name{Local: "style"}, Value: "stroke: green; stroke-width: 3; stroke-linecap: round"},
		{Name: xml.Name{Local: "stroke-linejoin"}, Value: "bevel"},
		{Name: xml.Name{Local: "stroke-miterlimit"}, Value: "10"},
		{Name: xml.Name{Local: "stroke-dasharray"}, Value: "1, 2 3"},
		{Name: xml.Name{Local: "stroke-dashoffset"}, Value: "1"},
		{Name: xml.Name{Local: "fill-rule"}, Value: "evenodd"},
		{Name: xml.Name{Local: "fill-opacity"}, Value: "50%"},
		{Name: xml.Name{Local: "fill"}, Value: "currentColor"},
	})
	test.Error(t, err)
	test.T(t, len(c.styleStack), 2)

	s := c.currentStyle()
	test.T(t, s.LinerColor, Pattern(NewPlainColor(0, 128, 0, 0xff)))
	test.Float(t, s.LineWidth, 3)
	test.T(t, s.Join, JoinOptions{MiterLimit: 10, LineJoin: Bevel, LineCap: RoundCap})
	test.Floats(t, s.Dash.Dash, []float64{1, 2, 3})
	test.Float(t, s.Dash.DashOffset, 1)
	test.That(t, !s.UseNonZeroWinding)
	test.Float(t, s.FillOpacity, 0.5)
	test.Float(t, s.LineOpacity, 1)
	test.T(t, s.FillerColor, DefaultStyle.FillerColor)

	c.popStyle()
	c.popStyle() // the default style is never removed
	test.T(t, len(c.styleStack), 1)

	test.That(t, c.pushStyle([]xml.Attr{{Name: xml.Name{Local: "stroke"}, Value: "#12"}}) != nil)
	test.That(t, c.pushStyle([]xml.Attr{{Name: xml.Name{Local: "stroke-width"}, Value: "wide"}}) != nil)
}

func TestJoinCapStrings(t *testing.T) {
	test.String(t, Miter.String(), "miter")
	test.String(t, MiterClip.String(), "miter-clip")
	test.String(t, Arc.String(), "arcs")
	test.String(t, RoundCap.String(), "round")
	test.String(t, SquareCap.String(), "square")
	test.String(t, WarnErrorMode.String(), "warn")
}
