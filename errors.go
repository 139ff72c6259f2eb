package vil

import (
	"errors"

	"github.com/benoitkugler/vil/svgcanvas"
)

var (
	// ErrInvalidSize is returned when a size is not made of two
	// positive, finite numbers
	ErrInvalidSize = errors.New("expected size as two positive numbers")

	// ErrInvalidBox is returned by Crop for an empty box
	ErrInvalidBox = errors.New("expected crop box with positive width and height")

	// ErrNoViewBox is returned by BBox when the document has no viewBox attribute
	ErrNoViewBox = svgcanvas.ErrNoViewBox

	// ErrBadMode is returned by Load for any mode other than "r"
	ErrBadMode = errors.New("bad mode")

	// ErrTextSource is returned by Load for in-memory text buffers
	ErrTextSource = errors.New("text buffers cannot be used to open an image, binary data must be used instead")

	// ErrUnsupportedSource is returned by Load for sources which are not paths
	ErrUnsupportedSource = errors.New("can not open file")

	// ErrUnsupportedFormat is returned by Save when the output is not SVG
	ErrUnsupportedFormat = errors.New("image format is expected to be 'SVG' and file suffix to be '.svg'")

	// ErrUnsupportedTarget is returned by Save for targets which are
	// neither paths nor writers
	ErrUnsupportedTarget = errors.New("unsupported save target")

	// ErrClosed is returned when using a closed image
	ErrClosed = errors.New("image is closed")
)
