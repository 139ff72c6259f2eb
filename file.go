package vil

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/benoitkugler/vil/drawing"
	"github.com/benoitkugler/vil/svgcanvas"
	"github.com/sirupsen/logrus"
)

// Path is a filesystem path, accepted by Save and Load.
type Path string

// SaveOptions tunes the output of Save.
type SaveOptions struct {
	// Optimize minifies the document
	Optimize bool
}

// Save writes the document as SVG.
//
// `fp` is either a path (string, []byte or Path) or an io.Writer.
// Unless `format` is SVG, the path (or the Name() of the writer)
// must have the .svg suffix.
// When a path is given, the created file is kept open and owned by the image,
// until Close is called or Use returns.
func (im *Image) Save(fp interface{}, format string, opts *SaveOptions) error {
	c, err := im.document()
	if err != nil {
		return err
	}

	var (
		filename string
		openFile bool
		w        io.Writer
	)
	switch fp := fp.(type) {
	case string:
		filename, openFile = fp, true
	case []byte:
		filename, openFile = string(fp), true
	case Path:
		filename, openFile = string(fp), true
	case io.Writer:
		w = fp
		if named, ok := fp.(interface{ Name() string }); ok {
			filename = named.Name()
		}
	default:
		return fmt.Errorf("%w: %T", ErrUnsupportedTarget, fp)
	}

	if !strings.EqualFold(format, "SVG") && strings.ToLower(filepath.Ext(filename)) != ".svg" {
		return fmt.Errorf("%w (got format %q and file %q)", ErrUnsupportedFormat, format, filename)
	}

	if openFile {
		f, err := os.OpenFile(filename, os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0o644)
		if err != nil {
			return err
		}
		im.releaseFile()
		im.fp, im.exclusiveFp = f, true
		w = f
	}

	logrus.WithFields(logrus.Fields{"file": filename, "size": im.size}).Debug("Saving image")
	if opts != nil && opts.Optimize {
		return c.WriteOptimized(w)
	}
	_, err = c.WriteTo(w)
	return err
}

// Load opens the SVG file `source`, given as a string or a Path.
// `mode` must be "r".
// If the file can't be decoded, Load returns nil, nil.
//
// Only shapes, paths and gradients are rendered: <text> and <image>
// elements are skipped with a warning, so that a document made only of
// text loads as an empty group.
func Load(source interface{}, mode string) (*Image, error) {
	if mode != "r" {
		return nil, fmt.Errorf("%w %q", ErrBadMode, mode)
	}
	var filename string
	switch source := source.(type) {
	case *strings.Reader, *strings.Builder:
		return nil, ErrTextSource
	case Path:
		abs, err := filepath.Abs(string(source))
		if err != nil {
			return nil, err
		}
		filename = abs
	case string:
		filename = source
	default:
		return nil, fmt.Errorf("%w: unsupported source %T", ErrUnsupportedSource, source)
	}

	f, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	log := logrus.WithField("file", filename)

	d, err := drawing.Parse(f, drawing.WarnErrorMode)
	if err != nil {
		log.WithError(err).Warn("Cannot decode SVG image")
		return nil, nil
	}

	size := Size{Width: d.Width, Height: d.Height}
	if size.validate() != nil {
		// use the extent of the content
		bounds, ok := svgcanvas.Measure(d)
		size = Size{Width: bounds.W, Height: bounds.H}
		if !ok || size.validate() != nil {
			log.Warn("Cannot decode SVG image: no size nor content")
			return nil, nil
		}
		if !(d.ViewBox.W > 0 && d.ViewBox.H > 0) {
			d.ViewBox = bounds
		}
	}

	im, err := NewImage(size)
	if err != nil {
		return nil, err
	}
	im.canvas.Draw(d)

	log.WithField("size", size).Debug("Image loaded")
	return im, nil
}
