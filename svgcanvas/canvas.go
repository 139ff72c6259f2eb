// Package svgcanvas implements a vector canvas backed by an SVG document.
//
// A Canvas holds the document tree and a drawing state (the fill color).
// It implements drawing.Driver, so that documents parsed by vil/drawing
// may be rendered into it.
package svgcanvas

import (
	"bytes"
	"errors"
	"fmt"
	"image/color"
	"io"
	"strings"

	"github.com/beevik/etree"
	"github.com/benoitkugler/vil/drawing"
	"github.com/sirupsen/logrus"
	"github.com/srwiley/rasterx"
	"github.com/tdewolff/minify/v2"
	"github.com/tdewolff/minify/v2/css"
	"github.com/tdewolff/minify/v2/svg"
	"github.com/tdewolff/parse/v2/strconv"
)

const svgNamespace = "http://www.w3.org/2000/svg"

var (
	// ErrNoViewBox is returned when the root element has no viewBox attribute
	ErrNoViewBox = errors.New("missing viewBox attribute")

	errMalformedViewBox = errors.New("malformed viewBox attribute")
)

// Canvas is an SVG document with a drawing state.
type Canvas struct {
	doc *etree.Document

	width, height float64

	fillColor color.Color

	// group receiving the paths, while drawing
	current   *etree.Element
	gradients int
}

// New returns an empty canvas of the given size, whose
// view box maps user units to the size.
func New(width, height float64) *Canvas {
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)
	root := doc.CreateElement("svg")
	root.CreateAttr("xmlns", svgNamespace)
	root.CreateAttr("version", "1.1")

	c := &Canvas{doc: doc, fillColor: color.Black}
	c.SetSize(width, height)
	c.SetViewBox(drawing.Bounds{W: width, H: height})
	return c
}

// Root returns the <svg> element of the document.
func (c *Canvas) Root() *etree.Element { return c.doc.Root() }

// Clone returns a canvas holding a deep copy of the document and
// of the drawing state, reporting the given size.
// The width and height attributes of the copy are left unchanged.
func (c *Canvas) Clone(width, height float64) *Canvas {
	out := *c
	out.doc = c.doc.Copy()
	out.width, out.height = width, height
	out.current = nil
	return &out
}

// Attr returns the value of the attribute `key` of the root element.
func (c *Canvas) Attr(key string) (string, bool) {
	attr := c.Root().SelectAttr(key)
	if attr == nil {
		return "", false
	}
	return attr.Value, true
}

// SetAttr creates or replaces the attribute `key` of the root element.
func (c *Canvas) SetAttr(key, value string) { c.Root().CreateAttr(key, value) }

// Size returns the size the canvas was created with,
// or set by SetSize.
func (c *Canvas) Size() (width, height float64) { return c.width, c.height }

// SetSize updates the width and height attributes.
func (c *Canvas) SetSize(width, height float64) {
	c.width, c.height = width, height
	c.SetAttr("width", dec(width).String())
	c.SetAttr("height", dec(height).String())
}

// ViewBox parses the viewBox attribute of the root element.
func (c *Canvas) ViewBox() (drawing.Bounds, error) {
	v, ok := c.Attr("viewBox")
	if !ok {
		return drawing.Bounds{}, ErrNoViewBox
	}
	return ParseViewBox(v)
}

// SetViewBox writes the viewBox attribute of the root element.
func (c *Canvas) SetViewBox(b drawing.Bounds) {
	c.SetAttr("viewBox", fmt.Sprintf("%v %v %v %v", dec(b.X), dec(b.Y), dec(b.W), dec(b.H)))
}

// ParseViewBox reads the four numbers `min-x min-y width height`,
// separated by spaces or commas.
func ParseViewBox(v string) (drawing.Bounds, error) {
	fields := strings.FieldsFunc(v, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t' || r == '\n' || r == '\r'
	})
	if len(fields) != 4 {
		return drawing.Bounds{}, fmt.Errorf("%w: %q", errMalformedViewBox, v)
	}
	var vals [4]float64
	for i, field := range fields {
		f, n := strconv.ParseFloat([]byte(field))
		if n == 0 || n != len(field) {
			return drawing.Bounds{}, fmt.Errorf("%w: %q", errMalformedViewBox, v)
		}
		vals[i] = f
	}
	if vals[2] < 0 || vals[3] < 0 {
		return drawing.Bounds{}, fmt.Errorf("%w: negative size in %q", errMalformedViewBox, v)
	}
	return drawing.Bounds{X: vals[0], Y: vals[1], W: vals[2], H: vals[3]}, nil
}

// SetFillColor sets the fill color of the drawing state.
func (c *Canvas) SetFillColor(col color.Color) { c.fillColor = col }

// FillColor returns the fill color of the drawing state.
func (c *Canvas) FillColor() color.Color { return c.fillColor }

// Draw renders the drawing `d`, scaled to the canvas size,
// into a new group appended to the root element.
// Paths are written in the user space of `d`, the scaling being
// the transform of the group.
func (c *Canvas) Draw(d *drawing.Drawing) {
	d.SetTarget(0, 0, c.width, c.height)
	target := d.Transform
	d.Transform = rasterx.Identity
	defer func() { d.Transform = target }()

	group := c.Root().CreateElement("g")
	if target != rasterx.Identity {
		group.CreateAttr("transform", formatMatrix(target))
	}
	for _, title := range d.Titles {
		group.CreateElement("title").SetText(strings.TrimSpace(title))
	}
	for _, desc := range d.Descriptions {
		group.CreateElement("desc").SetText(strings.TrimSpace(desc))
	}

	c.current = group
	d.Draw(c, 1)
	c.current = nil

	logrus.WithFields(logrus.Fields{
		"paths":  len(d.Paths),
		"width":  c.width,
		"height": c.height,
	}).Debug("Drawing rendered on canvas")
}

// target returns the element receiving new shapes
func (c *Canvas) target() *etree.Element {
	if c.current != nil {
		return c.current
	}
	return c.Root()
}

// WriteTo writes the indented XML document to w.
func (c *Canvas) WriteTo(w io.Writer) (int64, error) {
	doc := c.doc.Copy()
	doc.Indent(2)
	return doc.WriteTo(w)
}

// WriteOptimized writes the document to w, minified.
func (c *Canvas) WriteOptimized(w io.Writer) error {
	var buf bytes.Buffer
	if _, err := c.doc.WriteTo(&buf); err != nil {
		return err
	}
	m := minify.New()
	m.AddFunc("text/css", css.Minify)
	m.AddFunc("image/svg+xml", svg.Minify)
	return m.Minify("image/svg+xml", w, &buf)
}
