package pedigree

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrInvalidXY is returned by [ParseXY] when a coordinate value is not two
// whitespace-separated numbers.
var ErrInvalidXY = errors.New("invalid XY value")

// ParseXY parses a stored coordinate of the form "x y" (the value of a GEDCOM
// _XY tag). An empty string yields (nil, nil): no stored coordinate.
func ParseXY(s string) (*Point, error) {
	fields := strings.Fields(s)
	if len(fields) == 0 {
		return nil, nil
	}
	if len(fields) != 2 {
		return nil, fmt.Errorf("%w: %q", ErrInvalidXY, s)
	}
	x, err := strconv.ParseFloat(fields[0], 64)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrInvalidXY, s)
	}
	y, err := strconv.ParseFloat(fields[1], 64)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrInvalidXY, s)
	}
	return &Point{X: x, Y: y}, nil
}

// FormatXY renders p the way [ParseXY] reads it, with two decimals.
func FormatXY(p Point) string {
	return fmt.Sprintf("%.2f %.2f", p.X, p.Y)
}
