package posterior

import (
	"slices"

	"github.com/arloliu/tidydraws/frame"
)

// Coords are the labels along one dimension, either integers or strings.
type Coords struct {
	ints     []int64
	strs     []string
	isString bool
}

// IntCoords returns integer labels.
func IntCoords(labels ...int64) Coords {
	return Coords{ints: slices.Clone(labels)}
}

// StringCoords returns string labels.
func StringCoords(labels ...string) Coords {
	return Coords{strs: slices.Clone(labels), isString: true}
}

// rangeCoords labels n positions 0..n-1.
func rangeCoords(n int) Coords {
	ints := make([]int64, n)
	for i := range ints {
		ints[i] = int64(i)
	}

	return Coords{ints: ints}
}

// Len returns the number of labels.
func (c Coords) Len() int {
	if c.isString {
		return len(c.strs)
	}

	return len(c.ints)
}

// IsString reports whether the labels are strings.
func (c Coords) IsString() bool { return c.isString }

// Ints returns a copy of integer labels, or nil for string labels.
func (c Coords) Ints() []int64 { return slices.Clone(c.ints) }

// Strings returns a copy of string labels, or nil for integer labels.
func (c Coords) Strings() []string { return slices.Clone(c.strs) }

// Equal reports whether both hold the same labels of the same kind.
func (c Coords) Equal(other Coords) bool {
	if c.isString != other.isString {
		return false
	}
	if c.isString {
		return slices.Equal(c.strs, other.strs)
	}

	return slices.Equal(c.ints, other.ints)
}

// series builds a column of n rows whose row r carries label at(r).
func (c Coords) series(name string, n int, at func(row int) int) frame.Series {
	if c.isString {
		vals := make([]string, n)
		for r := range vals {
			vals[r] = c.strs[at(r)]
		}

		return frame.NewStringSeries(name, vals, nil)
	}

	vals := make([]int64, n)
	for r := range vals {
		vals[r] = c.ints[at(r)]
	}

	return frame.NewInt64Series(name, vals, nil)
}
