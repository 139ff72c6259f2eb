package drawing

import (
	"image/color"
	"strconv"
	"strings"

	"golang.org/x/image/colornames"
)

// Pattern is either a PlainColor or a Gradient
type Pattern interface {
	isPattern()
}

// PlainColor is a non alpha-premultiplied color.
// It implements color.Color.
type PlainColor struct {
	R, G, B, A uint8
}

// NewPlainColor returns the color with the given components
func NewPlainColor(r, g, b, a uint8) PlainColor {
	return PlainColor{R: r, G: g, B: b, A: a}
}

func (PlainColor) isPattern() {}

// RGBA implements color.Color
func (c PlainColor) RGBA() (r, g, b, a uint32) {
	return color.NRGBA{R: c.R, G: c.G, B: c.B, A: c.A}.RGBA()
}

// optionnalColor is the result of parsing a color
// attribute, which may be "none"
type optionnalColor struct {
	valid bool // false means "none"
	color PlainColor
}

// asPattern returns nil for none
func (o optionnalColor) asPattern() Pattern {
	if !o.valid {
		return nil
	}
	return o.color
}

// asColor returns nil for none
func (o optionnalColor) asColor() color.Color {
	if !o.valid {
		return nil
	}
	return o.color
}

// parseSVGColorNum reads the hexadecimal SVG color string e.g. #FBD9BD,
// with its optional alpha component
func parseSVGColorNum(colorStr string) (PlainColor, error) {
	colorStr = strings.TrimPrefix(colorStr, "#")
	switch len(colorStr) {
	case 3, 4: // SVG specs say duplicate characters in case of 3 digit hex number
		long := make([]byte, 0, 2*len(colorStr))
		for i := 0; i < len(colorStr); i++ {
			long = append(long, colorStr[i], colorStr[i])
		}
		colorStr = string(long)
	case 6, 8:
	default:
		return PlainColor{}, errParamMismatch
	}
	out := PlainColor{A: 0xff}
	comps := []*uint8{&out.R, &out.G, &out.B, &out.A}
	for i := 0; 2*i < len(colorStr); i++ {
		t, err := strconv.ParseUint(colorStr[2*i:2*i+2], 16, 8)
		if err != nil {
			return PlainColor{}, err
		}
		*comps[i] = uint8(t)
	}
	return out, nil
}

// parseColorValue reads a component of rgb(), either as
// an integer in [0, 255] or as a percentage
func parseColorValue(v string) (uint8, error) {
	v = strings.TrimSpace(v)
	if strings.HasSuffix(v, "%") {
		n, err := strconv.ParseFloat(strings.TrimSpace(v[:len(v)-1]), 64)
		if err != nil {
			return 0, err
		}
		return clampComponent(n * 0xff / 100), nil
	}
	n, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, err
	}
	return clampComponent(n), nil
}

// parseAlphaValue reads the alpha component of rgba(),
// in [0, 1] or as a percentage
func parseAlphaValue(v string) (uint8, error) {
	f, err := readFraction(v)
	if err != nil {
		return 0, err
	}
	return clampComponent(f * 0xff), nil
}

func clampComponent(f float64) uint8 {
	if f < 0 {
		return 0
	} else if f > 0xff {
		return 0xff
	}
	return uint8(f + 0.5)
}

// parseSVGColor parses an SVG color string in all forms
// including all SVG1.1 names, obtained from the colornames package
func parseSVGColor(colorStr string) (optionnalColor, error) {
	v := strings.ToLower(strings.TrimSpace(colorStr))
	switch v {
	case "none", "transparent":
		// "none" signals that the function (fill or stroke) is off;
		// not the same as black
		return optionnalColor{}, nil
	case "":
		return optionnalColor{}, errParamMismatch
	}
	if cn, ok := colornames.Map[v]; ok {
		return optionnalColor{valid: true, color: NewPlainColor(cn.R, cn.G, cn.B, cn.A)}, nil
	}
	if v[0] == '#' {
		c, err := parseSVGColorNum(v)
		return optionnalColor{valid: err == nil, color: c}, err
	}
	var args string
	hasAlpha := false
	if strings.HasPrefix(v, "rgba(") && strings.HasSuffix(v, ")") {
		args, hasAlpha = v[5:len(v)-1], true
	} else if strings.HasPrefix(v, "rgb(") && strings.HasSuffix(v, ")") {
		args = v[4 : len(v)-1]
	} else {
		return optionnalColor{}, errParamMismatch
	}
	vals := strings.Split(args, ",")
	if (hasAlpha && len(vals) != 4) || (!hasAlpha && len(vals) != 3) {
		return optionnalColor{}, errParamMismatch
	}
	out := PlainColor{A: 0xff}
	var err error
	for i, comp := range []*uint8{&out.R, &out.G, &out.B} {
		if *comp, err = parseColorValue(vals[i]); err != nil {
			return optionnalColor{}, err
		}
	}
	if hasAlpha {
		if out.A, err = parseAlphaValue(vals[3]); err != nil {
			return optionnalColor{}, err
		}
	}
	return optionnalColor{valid: true, color: out}, nil
}
