package posterior

import (
	"fmt"
	"slices"

	"github.com/arloliu/tidydraws/errs"
)

// Reserved dimension names.
const (
	ChainDim  = "chain"
	DrawDim   = "draw"
	SampleDim = "sample"
)

// Variable is an n-dimensional array of draws. The first two axes are chain
// and draw; the remaining axes are named dimensions. Data is row-major.
type Variable struct {
	name  string
	dims  []string
	shape []int
	data  []float64
}

// NewVariable creates a variable from row-major data.
//
// shape must start with the number of chains and draws. dims names the
// remaining axes; when empty they default to <name>_dim_0, <name>_dim_1, ...
// The data is copied.
//
// Returns errs.ErrShapeMismatch if shape and data disagree,
// errs.ErrDimNameCount if dims has the wrong length and errs.ErrInvalidName
// for empty, duplicate or reserved names.
func NewVariable(name string, shape []int, data []float64, dims ...string) (*Variable, error) {
	if name == "" {
		return nil, fmt.Errorf("%w: variable name must not be empty", errs.ErrInvalidName)
	}
	if len(shape) < 2 {
		return nil, fmt.Errorf("%w: variable %q needs chain and draw axes, got shape %v",
			errs.ErrShapeMismatch, name, shape)
	}

	size := 1
	for _, n := range shape {
		if n < 1 {
			return nil, fmt.Errorf("%w: variable %q has empty axis in shape %v", errs.ErrShapeMismatch, name, shape)
		}
		size *= n
	}
	if size != len(data) {
		return nil, fmt.Errorf("%w: variable %q has shape %v (%d values) but %d values were given",
			errs.ErrShapeMismatch, name, shape, size, len(data))
	}

	rank := len(shape) - 2
	if len(dims) == 0 {
		dims = defaultDims(name, rank)
	}
	if err := checkDimNames(name, dims, rank); err != nil {
		return nil, err
	}

	return &Variable{
		name:  name,
		dims:  slices.Clone(dims),
		shape: slices.Clone(shape),
		data:  slices.Clone(data),
	}, nil
}

func defaultDims(name string, rank int) []string {
	dims := make([]string, rank)
	for k := range dims {
		dims[k] = fmt.Sprintf("%s_dim_%d", name, k)
	}

	return dims
}

// checkDimNames validates names for the non-sample axes of a variable.
func checkDimNames(variable string, dims []string, rank int) error {
	if len(dims) != rank {
		return fmt.Errorf("%w provided for variable %q: got %d, want %d",
			errs.ErrDimNameCount, variable, len(dims), rank)
	}

	for i, d := range dims {
		switch d {
		case "":
			return fmt.Errorf("%w: variable %q has an empty dimension name", errs.ErrInvalidName, variable)
		case ChainDim, DrawDim, SampleDim:
			return fmt.Errorf("%w: variable %q uses reserved dimension name %q", errs.ErrInvalidName, variable, d)
		}
		if slices.Contains(dims[:i], d) {
			return fmt.Errorf("%w: variable %q repeats dimension %q", errs.ErrInvalidName, variable, d)
		}
	}

	return nil
}

// Name returns the variable name.
func (v *Variable) Name() string { return v.name }

// Dims returns the names of the non-sample axes.
func (v *Variable) Dims() []string { return slices.Clone(v.dims) }

// Shape returns the full shape, chain and draw axes included.
func (v *Variable) Shape() []int { return slices.Clone(v.shape) }

// NumChains returns the length of the chain axis.
func (v *Variable) NumChains() int { return v.shape[0] }

// NumDraws returns the length of the draw axis.
func (v *Variable) NumDraws() int { return v.shape[1] }

// inner returns the number of values per (chain, draw) pair.
func (v *Variable) inner() int {
	n := 1
	for _, s := range v.shape[2:] {
		n *= s
	}

	return n
}

// dimSize returns the length of non-sample axis k.
func (v *Variable) dimSize(k int) int { return v.shape[k+2] }
