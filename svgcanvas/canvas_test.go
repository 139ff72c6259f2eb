package svgcanvas

import (
	"bytes"
	"errors"
	"image/color"
	"strings"
	"testing"

	"github.com/beevik/etree"
	"github.com/benoitkugler/vil/drawing"
	"github.com/srwiley/rasterx"
	"github.com/tdewolff/test"
)

func parseFile(t *testing.T, filename string) *drawing.Drawing {
	d, err := drawing.ParseFile(filename, drawing.WarnErrorMode)
	test.Error(t, err)
	return d
}

func TestNew(t *testing.T) {
	c := New(120, 80.5)

	test.T(t, c.Root().Tag, "svg")
	test.String(t, c.Root().SelectAttrValue("xmlns", ""), svgNamespace)
	test.String(t, c.Root().SelectAttrValue("width", ""), "120")
	test.String(t, c.Root().SelectAttrValue("height", ""), "80.5")
	test.String(t, c.Root().SelectAttrValue("viewBox", ""), "0 0 120 80.5")

	w, h := c.Size()
	test.Float(t, w, 120)
	test.Float(t, h, 80.5)

	vb, err := c.ViewBox()
	test.Error(t, err)
	test.T(t, vb, drawing.Bounds{W: 120, H: 80.5})

	test.T(t, c.FillColor(), color.Color(color.Black))
	c.SetFillColor(color.White)
	test.T(t, c.FillColor(), color.Color(color.White))
}

func TestSetSize(t *testing.T) {
	c := New(10, 10)
	c.SetSize(0.25, 1e7)
	test.String(t, c.Root().SelectAttrValue("width", ""), "0.25")
	test.String(t, c.Root().SelectAttrValue("height", ""), "10000000")

	// the view box is left untouched
	test.String(t, c.Root().SelectAttrValue("viewBox", ""), "0 0 10 10")
}

func TestViewBox(t *testing.T) {
	c := New(10, 10)
	c.SetViewBox(drawing.Bounds{X: -5, Y: 2.5, W: 100, H: 0.125})
	test.String(t, c.Root().SelectAttrValue("viewBox", ""), "-5 2.5 100 0.125")
	vb, err := c.ViewBox()
	test.Error(t, err)
	test.T(t, vb, drawing.Bounds{X: -5, Y: 2.5, W: 100, H: 0.125})

	c.Root().RemoveAttr("viewBox")
	_, err = c.ViewBox()
	test.T(t, err, ErrNoViewBox)
	_, ok := c.Attr("viewBox")
	test.That(t, !ok)
}

func TestParseViewBox(t *testing.T) {
	for _, tt := range []struct {
		in   string
		want drawing.Bounds
	}{
		{"0 0 100 50", drawing.Bounds{W: 100, H: 50}},
		{"0,0,100,50", drawing.Bounds{W: 100, H: 50}},
		{" -1.5, .5 1e2\t20 ", drawing.Bounds{X: -1.5, Y: 0.5, W: 100, H: 20}},
	} {
		t.Run(tt.in, func(t *testing.T) {
			vb, err := ParseViewBox(tt.in)
			test.Error(t, err)
			test.T(t, vb, tt.want)
		})
	}

	for _, in := range []string{"", "0 0 100", "0 0 100 50 2", "a b c d", "0 0 10px 10", "0 0 -1 10"} {
		_, err := ParseViewBox(in)
		test.That(t, errors.Is(err, errMalformedViewBox), "expected an error for", in)
	}
}

func TestAttributes(t *testing.T) {
	c := New(10, 10)
	c.SetAttr("preserveAspectRatio", "none")
	v, ok := c.Attr("preserveAspectRatio")
	test.That(t, ok)
	test.String(t, v, "none")

	c.SetAttr("preserveAspectRatio", "xMidYMid")
	v, _ = c.Attr("preserveAspectRatio")
	test.String(t, v, "xMidYMid")
}

func TestClone(t *testing.T) {
	c := New(10, 10)
	c.SetFillColor(color.White)
	c.addGradient(drawing.Gradient{Direction: drawing.Linear{}, Matrix: rasterx.Identity})

	clone := c.Clone(50, 20)
	w, h := clone.Size()
	test.Float(t, w, 50)
	test.Float(t, h, 20)
	test.String(t, clone.Root().SelectAttrValue("width", ""), "10")
	test.T(t, clone.FillColor(), color.Color(color.White))

	clone.SetAttr("width", "50")
	clone.Root().CreateElement("rect")
	test.String(t, c.Root().SelectAttrValue("width", ""), "10")
	test.T(t, len(c.Root().ChildElements()), 1)
	test.T(t, len(clone.Root().ChildElements()), 2)

	// gradient ids stay unique in the copy
	test.String(t, clone.addGradient(drawing.Gradient{Direction: drawing.Linear{}, Matrix: rasterx.Identity}), "vil-gradient-2")
}

func TestWrite(t *testing.T) {
	c := New(200, 100)
	c.Draw(parseFile(t, "../drawing/testdata/shapes.svg"))

	var indented, optimized bytes.Buffer
	_, err := c.WriteTo(&indented)
	test.Error(t, err)
	test.That(t, strings.HasPrefix(indented.String(), `<?xml version="1.0" encoding="UTF-8"?>`))
	test.That(t, strings.Contains(indented.String(), "\n  <g transform="))

	err = c.WriteOptimized(&optimized)
	test.Error(t, err)
	test.That(t, optimized.Len() < indented.Len(), "minified output is not smaller")

	// both outputs are valid documents
	for _, buf := range []*bytes.Buffer{&indented, &optimized} {
		d, err := drawing.Parse(bytes.NewReader(buf.Bytes()), drawing.StrictErrorMode)
		test.Error(t, err)
		test.T(t, len(d.Paths), 6)
		test.Float(t, d.Width, 200)
		test.Float(t, d.Height, 100)
	}

	// writing does not alter the document
	doc := etree.NewDocument()
	_, err = doc.ReadFrom(bytes.NewReader(indented.Bytes()))
	test.Error(t, err)
	test.T(t, len(doc.Root().ChildElements()), len(c.Root().ChildElements()))
}
