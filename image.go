// Package vil provides an image handle with the surface of the PIL Image
// (size, bounding box, crop, resize, save), backed by an SVG document
// instead of a pixel buffer.
//
// Content is never rasterized: Convert and Filter are no-ops, and Resize
// only changes the reported size.
package vil

import (
	"fmt"
	"image/color"
	"io"

	"github.com/benoitkugler/vil/svgcanvas"
	"github.com/sirupsen/logrus"
)

// Imager is the surface shared with raster image handles.
type Imager interface {
	Width() float64
	Height() float64
	Size() Size
	BBox() (Box, error)
	Resize(size Size) (*Image, error)
	// Convert does nothing and returns the receiver.
	Convert(args ...interface{}) *Image
	// Filter does nothing and returns the receiver.
	Filter(args ...interface{}) *Image
	Crop(box *Box) (*Image, error)
	Save(fp interface{}, format string, opts *SaveOptions) error
	Close()
	Use(fn func(im *Image) error) error
}

var _ Imager = (*Image)(nil)

// Image is a vector image. Derived images (see Resize and Crop)
// own a deep copy of the document.
type Image struct {
	size   Size
	canvas *svgcanvas.Canvas

	// file opened by Save
	fp          io.Closer
	exclusiveFp bool
}

// NewImage returns a blank image of the given size.
func NewImage(size Size) (*Image, error) {
	if err := size.validate(); err != nil {
		return nil, err
	}
	return &Image{size: size, canvas: svgcanvas.New(size.Width, size.Height)}, nil
}

// New returns a blank image. If not nil, `fill`
// is used as fill color for the canvas.
func New(size Size, fill color.Color) (*Image, error) {
	im, err := NewImage(size)
	if err != nil {
		return nil, err
	}
	if fill != nil {
		im.canvas.SetFillColor(fill)
	}
	return im, nil
}

func (im *Image) Width() float64 { return im.size.Width }

func (im *Image) Height() float64 { return im.size.Height }

func (im *Image) Size() Size { return im.size }

// Canvas returns the underlying canvas, or nil after Close.
func (im *Image) Canvas() *svgcanvas.Canvas { return im.canvas }

func (im *Image) document() (*svgcanvas.Canvas, error) {
	if im.canvas == nil {
		return nil, ErrClosed
	}
	return im.canvas, nil
}

// BBox returns the view box of the document, as
// (left, upper, right, lower) coordinates, that is
// (x, y, x+width, y+height) for a view box "x y width height".
// It differs from the raw view box numbers when the origin is not zero.
func (im *Image) BBox() (Box, error) {
	c, err := im.document()
	if err != nil {
		return Box{}, err
	}
	vb, err := c.ViewBox()
	if err != nil {
		return Box{}, err
	}
	return Box{Left: vb.X, Upper: vb.Y, Right: vb.X + vb.W, Lower: vb.Y + vb.H}, nil
}

// Resize returns a copy of the image with the given size.
// The content is not rescaled.
func (im *Image) Resize(size Size) (*Image, error) {
	if err := size.validate(); err != nil {
		return nil, err
	}
	c, err := im.document()
	if err != nil {
		return nil, err
	}
	return &Image{size: size, canvas: c.Clone(size.Width, size.Height)}, nil
}

func (im *Image) Convert(args ...interface{}) *Image { return im }

func (im *Image) Filter(args ...interface{}) *Image { return im }

// Crop returns a copy of the image, whose view box is reduced to
// match the aspect ratio of `box`, keeping the content centered.
// The size of the copy is the size of `box`.
// A nil box returns a plain copy.
func (im *Image) Crop(box *Box) (*Image, error) {
	c, err := im.document()
	if err != nil {
		return nil, err
	}
	if box == nil {
		return &Image{size: im.size, canvas: c.Clone(im.size.Width, im.size.Height)}, nil
	}

	size := Size{Width: box.Width(), Height: box.Height()}
	if size.validate() != nil {
		return nil, fmt.Errorf("%w, got %v", ErrInvalidBox, *box)
	}
	vb, err := c.ViewBox()
	if err != nil {
		return nil, err
	}
	if !(vb.W > 0 && vb.H > 0) {
		return nil, fmt.Errorf("cannot crop the empty view box %v", vb)
	}

	current, wanted := vb.W/vb.H, size.Width/size.Height
	if current > wanted {
		w := wanted * vb.H
		vb.X += (vb.W - w) / 2
		vb.W = w
	} else {
		h := vb.W / wanted
		vb.Y += (vb.H - h) / 2
		vb.H = h
	}

	out := c.Clone(size.Width, size.Height)
	out.SetViewBox(vb)
	out.SetSize(size.Width, size.Height)

	logrus.WithFields(logrus.Fields{"box": *box, "viewBox": vb}).Debug("Image cropped")
	return &Image{size: size, canvas: out}, nil
}

// Close releases the file opened by Save, if any, and the document.
// Errors are ignored. Close may be called several times.
func (im *Image) Close() {
	if im.fp != nil {
		if err := im.fp.Close(); err != nil {
			logrus.WithError(err).Debug("Ignoring error on image close")
		}
	}
	im.fp, im.exclusiveFp = nil, false
	im.canvas = nil
}

// Use calls `fn` with the image, then releases the file opened by Save,
// even if `fn` panics.
func (im *Image) Use(fn func(im *Image) error) error {
	defer im.releaseFile()
	return fn(im)
}

// releaseFile closes the file if it has been opened by the image
func (im *Image) releaseFile() {
	if im.exclusiveFp && im.fp != nil {
		if err := im.fp.Close(); err != nil {
			logrus.WithError(err).Debug("Ignoring error on image file release")
		}
	}
	im.fp, im.exclusiveFp = nil, false
}
