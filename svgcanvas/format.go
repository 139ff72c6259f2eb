package svgcanvas

import (
	"fmt"
	"image/color"
	"math"
	"strings"

	"github.com/srwiley/rasterx"
	"github.com/tdewolff/minify/v2"
	"golang.org/x/image/math/fixed"
)

// Precision is the number of significant digits written
// for coordinates and lengths.
const Precision = 6

// num formats path coordinates
type num float64

func (f num) String() string {
	s := fmt.Sprintf("%.*g", Precision, f)
	if num(math.MaxInt32) < f || f < num(math.MinInt32) {
		if i := strings.IndexAny(s, ".eE"); i == -1 {
			s += ".0"
		}
	}
	return string(minify.Number([]byte(s), Precision))
}

// dec formats attributes such as width, height and viewBox,
// which never use an exponent nor omit the leading zero
type dec float64

func (f dec) String() string {
	s := fmt.Sprintf("%.*f", Precision, f)
	s = string(minify.Decimal([]byte(s), Precision))
	if dec(math.MaxInt32) < f || f < dec(math.MinInt32) {
		if i := strings.IndexByte(s, '.'); i == -1 {
			s += ".0"
		}
	}
	switch {
	case s == "" || s == "-" || s == "-0":
		s = "0"
	case s[0] == '.':
		s = "0" + s
	case strings.HasPrefix(s, "-."):
		s = "-0" + s[1:]
	}
	return s
}

func fixedTof(a fixed.Point26_6) (float64, float64) {
	return float64(a.X) / 64, float64(a.Y) / 64
}

// cssColor returns the #rrggbb notation of c, ignoring
// its alpha component
func cssColor(c color.Color) string {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	return fmt.Sprintf("#%02x%02x%02x", n.R, n.G, n.B)
}

// alpha returns the opacity of c, in [0, 1]
func alpha(c color.Color) float64 {
	return float64(color.NRGBAModel.Convert(c).(color.NRGBA).A) / 0xff
}

func formatMatrix(m rasterx.Matrix2D) string {
	return fmt.Sprintf("matrix(%v %v %v %v %v %v)", num(m.A), num(m.B), num(m.C), num(m.D), num(m.E), num(m.F))
}
