package vil

import (
	"fmt"
	"math"
	"strings"

	"github.com/tdewolff/parse/v2/strconv"
)

// Size is the (width, height) pair of an image.
type Size struct {
	Width, Height float64
}

// DefaultSize is the size of images created without explicit size.
var DefaultSize = Size{Width: 300, Height: 300}

func (s Size) String() string { return fmt.Sprintf("%gx%g", s.Width, s.Height) }

func isPositive(f float64) bool { return f > 0 && !math.IsInf(f, 1) }

func (s Size) validate() error {
	if !(isPositive(s.Width) && isPositive(s.Height)) {
		return fmt.Errorf("%w, got %v", ErrInvalidSize, s)
	}
	return nil
}

// SizeOf builds a size from a (width, height) pair.
func SizeOf(vals ...float64) (Size, error) {
	if len(vals) != 2 {
		return Size{}, fmt.Errorf("%w, got %d values", ErrInvalidSize, len(vals))
	}
	s := Size{Width: vals[0], Height: vals[1]}
	return s, s.validate()
}

// ParseSize reads a size written as "WIDTHxHEIGHT", such as "300x200".
func ParseSize(v string) (Size, error) {
	w, h, ok := strings.Cut(strings.ToLower(strings.TrimSpace(v)), "x")
	if !ok {
		return Size{}, fmt.Errorf("%w, got %q", ErrInvalidSize, v)
	}
	var vals [2]float64
	for i, field := range [2]string{w, h} {
		f, n := strconv.ParseFloat([]byte(field))
		if n == 0 || n != len(field) {
			return Size{}, fmt.Errorf("%w, got %q", ErrInvalidSize, v)
		}
		vals[i] = f
	}
	return SizeOf(vals[:]...)
}

// Box is a rectangle given by its left, upper, right and lower coordinates.
type Box struct {
	Left, Upper, Right, Lower float64
}

func (b Box) Width() float64 { return b.Right - b.Left }

func (b Box) Height() float64 { return b.Lower - b.Upper }
