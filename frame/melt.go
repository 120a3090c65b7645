package frame

import (
	"fmt"

	"github.com/apache/arrow/go/v7/arrow"
	"github.com/apache/arrow/go/v7/arrow/array"

	"github.com/arloliu/tidydraws/errs"
)

// Melt unpivots t from wide to long form.
//
// Columns picked by index are kept and replicated; every other column
// becomes one block of rows in which variableName holds the column name and
// valueName holds its cells as float64. Blocks follow table column order,
// so the result has NumRows() * (non-index columns) rows.
//
// Value columns must be numeric. Output names must not repeat an index
// column; callers that want a friendlier message check this first.
func Melt(t *Table, index Selector, variableName, valueName string) (*Table, error) {
	if variableName == "" || valueName == "" {
		return nil, fmt.Errorf("%w: variable and value column names must not be empty", errs.ErrInvalidName)
	}
	if variableName == valueName {
		return nil, fmt.Errorf("%w: variable and value columns are both named %q", errs.ErrDuplicateColumn, valueName)
	}

	indexNames, err := Resolve(t, index)
	if err != nil {
		return nil, err
	}

	isIndex := make(map[string]bool, len(indexNames))
	for _, name := range indexNames {
		if name == variableName || name == valueName {
			return nil, fmt.Errorf("%w: %q", errs.ErrDuplicateColumn, name)
		}
		isIndex[name] = true
	}

	var valueCols []Series
	for i, name := range t.names {
		if isIndex[name] {
			continue
		}
		s := t.series(i)
		if !s.Kind().Numeric() {
			return nil, fmt.Errorf("%w: cannot melt %s column %q into %q",
				errs.ErrTypeMismatch, s.Kind(), name, valueName)
		}
		valueCols = append(valueCols, s)
	}

	nrows := t.NumRows()
	out := make([]Series, 0, len(indexNames)+2)

	for _, name := range indexNames {
		s := t.series(t.pos[name])
		arr, err := repeat(s.arr, len(valueCols))
		if err != nil {
			releaseAll(out)
			return nil, fmt.Errorf("replicate index column %q: %w", name, err)
		}
		out = append(out, Series{name: name, arr: arr})
	}

	vb := array.NewStringBuilder(allocator)
	defer vb.Release()
	fb := array.NewFloat64Builder(allocator)
	defer fb.Release()

	vb.Reserve(nrows * len(valueCols))
	fb.Reserve(nrows * len(valueCols))

	for _, s := range valueCols {
		for i := 0; i < nrows; i++ {
			vb.Append(s.name)
		}
		appendAsFloat64(fb, s.arr)
	}

	out = append(out,
		Series{name: variableName, arr: vb.NewArray()},
		Series{name: valueName, arr: fb.NewArray()},
	)

	return New(out...)
}

// repeat stacks times copies of arr.
func repeat(arr arrow.Array, times int) (arrow.Array, error) {
	switch times {
	case 0:
		return array.NewSlice(arr, 0, 0), nil
	case 1:
		arr.Retain()
		return arr, nil
	}

	parts := make([]arrow.Array, times)
	for i := range parts {
		parts[i] = arr
	}

	return array.Concatenate(parts, allocator)
}

func appendAsFloat64(b *array.Float64Builder, arr arrow.Array) {
	switch a := arr.(type) {
	case *array.Float64:
		for i := 0; i < a.Len(); i++ {
			if a.IsNull(i) {
				b.AppendNull()
				continue
			}
			b.Append(a.Value(i))
		}
	case *array.Int64:
		for i := 0; i < a.Len(); i++ {
			if a.IsNull(i) {
				b.AppendNull()
				continue
			}
			b.Append(float64(a.Value(i)))
		}
	}
}
