package drawing

import (
	"encoding/xml"
	"errors"
	"strings"

	"github.com/srwiley/rasterx"
)

func init() {
	// avoids cyclical static declaration
	// called on package initialization
	drawFuncs["use"] = useF
}

type svgFunc func(c *cursor, attrs []xml.Attr) error

var drawFuncs = map[string]svgFunc{
	"svg":            svgF,
	"g":              gF,
	"line":           lineF,
	"stop":           stopF,
	"rect":           rectF,
	"circle":         circleF,
	"ellipse":        circleF, // circleF handles ellipse also
	"polyline":       polylineF,
	"polygon":        polygonF,
	"path":           pathF,
	"desc":           descF,
	"defs":           defsF,
	"title":          titleF,
	"linearGradient": linearGradientF,
	"radialGradient": radialGradientF,
}

// svgF reads the size of the root element.
// Nested svg elements only push their style.
func svgF(c *cursor, attrs []xml.Attr) error {
	if c.seenRoot {
		return nil
	}
	c.seenRoot = true
	for _, attr := range attrs {
		var err error
		switch attr.Name.Local {
		case "viewBox":
			err = c.getPoints(attr.Value)
			if err == nil && len(c.points) != 4 {
				return errParamMismatch
			}
			if err == nil {
				c.drawing.ViewBox = Bounds{X: c.points[0], Y: c.points[1], W: c.points[2], H: c.points[3]}
			}
		case "width", "height":
			var (
				v         float64
				isPercent bool
			)
			v, isPercent, err = parseLength(attr.Value)
			if isPercent { // relative to an unknown viewport
				v = 0
			}
			if attr.Name.Local == "width" {
				c.drawing.Width = v
			} else {
				c.drawing.Height = v
			}
		}
		if err != nil {
			return err
		}
	}
	return nil
}

func gF(*cursor, []xml.Attr) error { return nil } // g does nothing but push the style

func rectF(c *cursor, attrs []xml.Attr) error {
	var x, y, w, h, rx, ry float64
	var hasRx, hasRy bool
	var err error
	for _, attr := range attrs {
		switch attr.Name.Local {
		case "x":
			x, err = c.parseUnit(attr.Value, widthPercentage)
		case "y":
			y, err = c.parseUnit(attr.Value, heightPercentage)
		case "width":
			w, err = c.parseUnit(attr.Value, widthPercentage)
		case "height":
			h, err = c.parseUnit(attr.Value, heightPercentage)
		case "rx":
			hasRx = true
			rx, err = c.parseUnit(attr.Value, widthPercentage)
		case "ry":
			hasRy = true
			ry, err = c.parseUnit(attr.Value, heightPercentage)
		}
		if err != nil {
			return err
		}
	}
	if w <= 0 || h <= 0 { // not drawn, but not an error
		return nil
	}
	if hasRx && !hasRy {
		ry = rx
	} else if hasRy && !hasRx {
		rx = ry
	}
	rasterx.AddRoundRect(x, y, x+w, y+h, rx, ry, 0, rasterx.RoundGap, &c.path)
	return nil
}

func circleF(c *cursor, attrs []xml.Attr) error {
	var cx, cy, rx, ry float64
	var err error
	for _, attr := range attrs {
		switch attr.Name.Local {
		case "cx":
			cx, err = c.parseUnit(attr.Value, widthPercentage)
		case "cy":
			cy, err = c.parseUnit(attr.Value, heightPercentage)
		case "r":
			rx, err = c.parseUnit(attr.Value, diagPercentage)
			ry = rx
		case "rx":
			rx, err = c.parseUnit(attr.Value, widthPercentage)
		case "ry":
			ry, err = c.parseUnit(attr.Value, heightPercentage)
		}
		if err != nil {
			return err
		}
	}
	if rx <= 0 || ry <= 0 { // not drawn, but not an error
		return nil
	}
	rasterx.AddEllipse(cx, cy, rx, ry, 0, &c.path)
	return nil
}

func lineF(c *cursor, attrs []xml.Attr) error {
	var x1, x2, y1, y2 float64
	var err error
	for _, attr := range attrs {
		switch attr.Name.Local {
		case "x1":
			x1, err = c.parseUnit(attr.Value, widthPercentage)
		case "x2":
			x2, err = c.parseUnit(attr.Value, widthPercentage)
		case "y1":
			y1, err = c.parseUnit(attr.Value, heightPercentage)
		case "y2":
			y2, err = c.parseUnit(attr.Value, heightPercentage)
		}
		if err != nil {
			return err
		}
	}
	c.path.Start(rasterx.ToFixedP(x1, y1))
	c.path.Line(rasterx.ToFixedP(x2, y2))
	return nil
}

func polylineF(c *cursor, attrs []xml.Attr) error {
	c.points = c.points[:0]
	for _, attr := range attrs {
		if attr.Name.Local != "points" {
			continue
		}
		if err := c.getPoints(attr.Value); err != nil {
			return err
		}
		if len(c.points)%2 != 0 {
			return errors.New("polygon has odd number of points")
		}
	}
	if len(c.points) >= 4 {
		c.path.Start(rasterx.ToFixedP(c.points[0], c.points[1]))
		for i := 2; i < len(c.points)-1; i += 2 {
			c.path.Line(rasterx.ToFixedP(c.points[i], c.points[i+1]))
		}
	}
	return nil
}

func polygonF(c *cursor, attrs []xml.Attr) error {
	err := polylineF(c, attrs)
	if len(c.points) >= 4 {
		c.path.Stop(true)
	}
	return err
}

func pathF(c *cursor, attrs []xml.Attr) error {
	for _, attr := range attrs {
		if attr.Name.Local == "d" {
			if err := c.compilePath(attr.Value); err != nil {
				return err
			}
		}
	}
	return nil
}

func descF(c *cursor, attrs []xml.Attr) error {
	c.inDescText = true
	c.drawing.Descriptions = append(c.drawing.Descriptions, "")
	return nil
}

func titleF(c *cursor, attrs []xml.Attr) error {
	c.inTitleText = true
	c.drawing.Titles = append(c.drawing.Titles, "")
	return nil
}

func defsF(c *cursor, attrs []xml.Attr) error {
	c.inDefs = true
	return nil
}

func linearGradientF(c *cursor, attrs []xml.Attr) error {
	var err error
	c.inGrad = true
	direction := Linear{0, 0, 1, 0}
	c.grad = &Gradient{Direction: direction, Bounds: c.drawing.ViewBox, Matrix: rasterx.Identity}
	for _, attr := range attrs {
		switch attr.Name.Local {
		case "id":
			if attr.Value == "" {
				return errZeroLengthID
			}
			c.drawing.grads[attr.Value] = c.grad
		case "x1":
			direction[0], err = readFraction(attr.Value)
		case "y1":
			direction[1], err = readFraction(attr.Value)
		case "x2":
			direction[2], err = readFraction(attr.Value)
		case "y2":
			direction[3], err = readFraction(attr.Value)
		default:
			err = c.readGradAttr(attr)
		}
		if err != nil {
			return err
		}
	}
	c.grad.Direction = direction
	return nil
}

func radialGradientF(c *cursor, attrs []xml.Attr) error {
	c.inGrad = true
	direction := Radial{0.5, 0.5, 0.5, 0.5, 0.5, 0}
	c.grad = &Gradient{Direction: direction, Bounds: c.drawing.ViewBox, Matrix: rasterx.Identity}
	var setFx, setFy bool
	var err error
	for _, attr := range attrs {
		switch attr.Name.Local {
		case "id":
			if attr.Value == "" {
				return errZeroLengthID
			}
			c.drawing.grads[attr.Value] = c.grad
		case "cx":
			direction[0], err = readFraction(attr.Value)
		case "cy":
			direction[1], err = readFraction(attr.Value)
		case "fx":
			setFx = true
			direction[2], err = readFraction(attr.Value)
		case "fy":
			setFy = true
			direction[3], err = readFraction(attr.Value)
		case "r":
			direction[4], err = readFraction(attr.Value)
		case "fr":
			direction[5], err = readFraction(attr.Value)
		default:
			err = c.readGradAttr(attr)
		}
		if err != nil {
			return err
		}
	}
	if !setFx { // set fx to cx by default
		direction[2] = direction[0]
	}
	if !setFy { // set fy to cy by default
		direction[3] = direction[1]
	}
	c.grad.Direction = direction
	return nil
}

func stopF(c *cursor, attrs []xml.Attr) error {
	if !c.inGrad {
		return nil
	}
	var err error
	stop := GradStop{Opacity: 1.0}
	for _, attr := range attrs {
		switch attr.Name.Local {
		case "offset":
			stop.Offset, err = readFraction(attr.Value)
		case "stop-color":
			var optColor optionnalColor
			optColor, err = parseSVGColor(attr.Value)
			stop.StopColor = optColor.asColor()
		case "stop-opacity":
			stop.Opacity, err = readFraction(attr.Value)
		}
		if err != nil {
			return err
		}
	}
	c.grad.Stops = append(c.grad.Stops, stop)
	return nil
}

// useF replays the elements saved under the referenced id,
// shifted by the x and y attributes
func useF(c *cursor, attrs []xml.Attr) error {
	var (
		href string
		x, y float64
		err  error
	)
	for _, attr := range attrs {
		switch attr.Name.Local {
		case "href":
			href = attr.Value
		case "x":
			x, err = c.parseUnit(attr.Value, widthPercentage)
		case "y":
			y, err = c.parseUnit(attr.Value, heightPercentage)
		}
		if err != nil {
			return err
		}
	}
	if href == "" {
		return errors.New("only use tags with href is supported")
	}
	if !strings.HasPrefix(href, "#") {
		return errors.New("only the ID CSS selector is supported")
	}
	defs, ok := c.drawing.defs[href[1:]]
	if !ok {
		return errMissingDef
	}

	top := &c.styleStack[len(c.styleStack)-1]
	top.transform = top.transform.Translate(x, y)

	depth := len(c.styleStack)
	for _, def := range defs {
		if def.Tag == "endg" {
			c.popStyle()
			continue
		}
		if err = c.pushStyle(def.Attrs); err != nil {
			return err
		}
		df, ok := drawFuncs[def.Tag]
		if !ok {
			if err = c.handleError(def.Tag); err != nil {
				return err
			}
			c.popStyle()
			continue
		}
		if err = df(c, def.Attrs); err != nil {
			return err
		}
		c.flushPath()
		if def.Tag != "g" {
			c.popStyle()
		}
	}
	// unbalanced groups
	if len(c.styleStack) > depth {
		c.styleStack = c.styleStack[:depth]
	}
	return nil
}
