// Provides parsing of SVG documents.
// SVG files are parsed into an abstract representation,
// which can then be consumed by painting drivers.
// See for example vil/svgcanvas.
package drawing

import (
	"encoding/xml"
	"io"
	"os"

	"github.com/srwiley/rasterx"
	"golang.org/x/net/html/charset"
)

// Bounds defines a bounding box, such as a viewport
// or a path extent.
type Bounds struct{ X, Y, W, H float64 }

// StyledPath binds a style to a path
type StyledPath struct {
	Path  Path
	Style PathStyle
}

// Drawing holds data from parsed SVGs.
// See the `Draw` method to use it.
type Drawing struct {
	ViewBox Bounds

	// Width and Height are the declared size of the
	// top level element, in user units.
	// They default to the view box dimensions.
	Width, Height float64

	Titles       []string // Title elements collect here
	Descriptions []string // Description elements collect here
	Paths        []StyledPath
	Transform    rasterx.Matrix2D

	grads map[string]*Gradient
	defs  map[string][]definition
}

// elements whose content is never rendered directly
var nonRendering = map[string]bool{
	"clipPath": true,
	"mask":     true,
	"marker":   true,
	"pattern":  true,
	"symbol":   true,
	"metadata": true,
}

// Parse reads a drawing from the given io.Reader.
// This only supports a sub-set of SVG, but
// is enough to draw many icons. errMode determines if the parser ignores, errors out, or logs a warning
// if it does not handle an element found in the document.
func Parse(stream io.Reader, errMode ErrorMode) (*Drawing, error) {
	d := &Drawing{
		defs:      make(map[string][]definition),
		grads:     make(map[string]*Gradient),
		Transform: rasterx.Identity,
	}
	c := &cursor{styleStack: []PathStyle{DefaultStyle}, drawing: d, errorMode: errMode}
	decoder := xml.NewDecoder(stream)
	decoder.CharsetReader = charset.NewReaderLabel
	for {
		t, err := decoder.Token()
		if err != nil {
			if err == io.EOF {
				break
			}
			return nil, err
		}
		// Inspect the type of the XML token
		switch se := t.(type) {
		case xml.StartElement:
			if !c.seenRoot && se.Name.Local != "svg" {
				return nil, errNotSVG
			}
			if nonRendering[se.Name.Local] {
				if err = decoder.Skip(); err != nil {
					return nil, err
				}
				continue
			}
			// Reads all recognized style attributes from the start element
			// and places it on top of the styleStack
			if err = c.pushStyle(se.Attr); err != nil {
				return nil, err
			}
			if err = c.readStartElement(se); err != nil {
				return nil, err
			}
		case xml.EndElement:
			c.popStyle()
			switch se.Name.Local {
			case "g":
				if c.inDefs {
					c.currentDef = append(c.currentDef, definition{Tag: "endg"})
				}
			case "title":
				c.inTitleText = false
			case "desc":
				c.inDescText = false
			case "defs":
				c.flushDef()
				c.inDefs = false
			case "radialGradient", "linearGradient":
				c.inGrad = false
			}
		case xml.CharData:
			if c.inTitleText {
				d.Titles[len(d.Titles)-1] += string(se)
			}
			if c.inDescText {
				d.Descriptions[len(d.Descriptions)-1] += string(se)
			}
		}
	}
	if !c.seenRoot {
		return nil, errNotSVG
	}
	d.resolveSize()
	return d, nil
}

// ParseFile reads the drawing from the named file.
// See Parse for the meaning of errMode.
func ParseFile(filename string, errMode ErrorMode) (*Drawing, error) {
	fin, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer fin.Close()
	return Parse(fin, errMode)
}

// resolveSize applies the defaults between the declared
// size and the view box.
func (d *Drawing) resolveSize() {
	if d.ViewBox.W == 0 {
		d.ViewBox.W = d.Width
	}
	if d.ViewBox.H == 0 {
		d.ViewBox.H = d.Height
	}
	if d.Width == 0 {
		d.Width = d.ViewBox.W
	}
	if d.Height == 0 {
		d.Height = d.ViewBox.H
	}
}

// SetTarget sets the Transform matrix to draw within the bounds of the rectangle arguments
func (d *Drawing) SetTarget(x, y, w, h float64) {
	scaleW, scaleH := 1., 1.
	if d.ViewBox.W != 0 {
		scaleW = w / d.ViewBox.W
	}
	if d.ViewBox.H != 0 {
		scaleH = h / d.ViewBox.H
	}
	d.Transform = rasterx.Identity.Translate(x, y).Scale(scaleW, scaleH).Translate(-d.ViewBox.X, -d.ViewBox.Y)
}
