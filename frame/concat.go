package frame

import (
	"fmt"

	"github.com/apache/arrow/go/v7/arrow"
	"github.com/apache/arrow/go/v7/arrow/array"

	"github.com/arloliu/tidydraws/errs"
)

// ConcatDiagonal stacks tables vertically on the union of their columns.
//
// Columns appear in order of first appearance. Rows coming from a table
// that lacks a column are null in that column. Columns sharing a name must
// share a kind.
func ConcatDiagonal(tables ...*Table) (*Table, error) {
	var order []string
	types := make(map[string]arrow.DataType)
	first := make(map[string]int)

	for ti, t := range tables {
		for i, name := range t.names {
			dt := t.rec.Column(i).DataType()
			prev, ok := types[name]
			if !ok {
				types[name] = dt
				first[name] = ti
				order = append(order, name)
				continue
			}
			if !arrow.TypeEqual(prev, dt) {
				return nil, fmt.Errorf("%w: column %q is %s in table %d but %s in table %d",
					errs.ErrTypeMismatch, name, kindOf(prev), first[name], kindOf(dt), ti)
			}
		}
	}

	out := make([]Series, 0, len(order))
	for _, name := range order {
		dt := types[name]
		parts := make([]arrow.Array, 0, len(tables))
		var fill []arrow.Array
		for _, t := range tables {
			if i, ok := t.pos[name]; ok {
				parts = append(parts, t.rec.Column(i))
				continue
			}
			n := nulls(dt, t.NumRows())
			fill = append(fill, n)
			parts = append(parts, n)
		}

		arr, err := array.Concatenate(parts, allocator)
		for _, n := range fill {
			n.Release()
		}
		if err != nil {
			releaseAll(out)
			return nil, fmt.Errorf("concatenate column %q: %w", name, err)
		}
		out = append(out, Series{name: name, arr: arr})
	}

	return New(out...)
}

func nulls(dt arrow.DataType, n int) arrow.Array {
	b := array.NewBuilder(allocator, dt)
	defer b.Release()

	b.Reserve(n)
	for i := 0; i < n; i++ {
		b.AppendNull()
	}

	return b.NewArray()
}
