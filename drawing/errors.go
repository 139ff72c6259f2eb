package drawing

import (
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"
)

// ErrorMode is the for setting how the parser reacts to unparsed elements
type ErrorMode uint8

const (
	// IgnoreErrorMode skips unparsed SVG elements
	IgnoreErrorMode ErrorMode = iota
	// WarnErrorMode outputs a warning when an unparsed SVG element is found
	WarnErrorMode
	// StrictErrorMode causes an error when an unparsed SVG element is found
	StrictErrorMode
)

func (m ErrorMode) String() string {
	switch m {
	case IgnoreErrorMode:
		return "ignore"
	case WarnErrorMode:
		return "warn"
	case StrictErrorMode:
		return "strict"
	default:
		return "<unknown ErrorMode>"
	}
}

var (
	errParamMismatch  = errors.New("param mismatch")
	errCommandUnknown = errors.New("unknown command")
	errZeroLengthID   = errors.New("zero length id")
	errNotSVG         = errors.New("invalid svg document: missing svg root element")
	errMissingDef     = errors.New("href ID in use statement was not found in saved defs")
)

// handleError reports an unsupported element,
// according to the error mode
func (c *cursor) handleError(element string) error {
	switch c.errorMode {
	case StrictErrorMode:
		return fmt.Errorf("cannot process svg element %s", element)
	case WarnErrorMode:
		logrus.WithField("element", element).Warn("Cannot process svg element")
	}
	return nil
}
