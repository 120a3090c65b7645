package frame

import (
	"fmt"
	"slices"
	"strings"

	"github.com/apache/arrow/go/v7/arrow"
	"github.com/apache/arrow/go/v7/arrow/array"

	"github.com/arloliu/tidydraws/errs"
	"github.com/arloliu/tidydraws/internal/keyset"
	"github.com/arloliu/tidydraws/internal/pool"
)

// Table is an immutable, column-oriented table.
type Table struct {
	rec   arrow.Record
	names []string
	pos   map[string]int
}

// New builds a table from series. All series must have the same length and
// distinct, non-empty names. A table without series has zero rows.
//
// New takes over one reference of every series, on success and on error.
// Series borrowed from another table through Column must be retained first.
func New(series ...Series) (*Table, error) {
	defer releaseAll(series)

	nrows := 0
	if len(series) > 0 {
		nrows = series[0].Len()
	}

	fields := make([]arrow.Field, len(series))
	cols := make([]arrow.Array, len(series))
	seen := make(map[string]struct{}, len(series))

	for i, s := range series {
		if s.name == "" {
			return nil, fmt.Errorf("%w: column %d has an empty name", errs.ErrInvalidName, i)
		}
		if _, dup := seen[s.name]; dup {
			return nil, fmt.Errorf("%w: %q", errs.ErrDuplicateColumn, s.name)
		}
		seen[s.name] = struct{}{}

		if s.Len() != nrows {
			return nil, fmt.Errorf("%w: column %q has %d rows, expected %d",
				errs.ErrShapeMismatch, s.name, s.Len(), nrows)
		}

		fields[i] = arrow.Field{Name: s.name, Type: s.arr.DataType(), Nullable: true}
		cols[i] = s.arr
	}

	rec := array.NewRecord(arrow.NewSchema(fields, nil), cols, int64(nrows))

	return fromRecord(rec), nil
}

func fromRecord(rec arrow.Record) *Table {
	n := int(rec.NumCols())
	t := &Table{
		rec:   rec,
		names: make([]string, n),
		pos:   make(map[string]int, n),
	}
	for i := 0; i < n; i++ {
		name := rec.ColumnName(i)
		t.names[i] = name
		t.pos[name] = i
	}

	return t
}

// NumRows returns the number of rows.
func (t *Table) NumRows() int { return int(t.rec.NumRows()) }

// NumCols returns the number of columns.
func (t *Table) NumCols() int { return len(t.names) }

// ColumnNames returns the column names in order.
func (t *Table) ColumnNames() []string { return slices.Clone(t.names) }

// HasColumn reports whether the table has a column named name.
func (t *Table) HasColumn(name string) bool {
	_, ok := t.pos[name]
	return ok
}

// Record exposes the underlying Arrow record. It must not be mutated.
func (t *Table) Record() arrow.Record { return t.rec }

// Column returns the named column. The series is borrowed from the table.
func (t *Table) Column(name string) (Series, error) {
	i, ok := t.pos[name]
	if !ok {
		return Series{}, fmt.Errorf("%w: %q", errs.ErrColumnNotFound, name)
	}

	return t.series(i), nil
}

func (t *Table) series(i int) Series {
	return Series{name: t.names[i], arr: t.rec.Column(i)}
}

func (t *Table) allSeries() []Series {
	out := make([]Series, len(t.names))
	for i := range t.names {
		out[i] = t.series(i)
	}

	return out
}

// Value returns the cell at row in the named column. Missing cells are nil.
func (t *Table) Value(row int, name string) (any, error) {
	s, err := t.Column(name)
	if err != nil {
		return nil, err
	}
	if row < 0 || row >= s.Len() {
		return nil, fmt.Errorf("%w: row %d out of range [0, %d)", errs.ErrInvalidSelection, row, s.Len())
	}

	return s.Value(row), nil
}

// Float64s returns a numeric column as float64 values and a validity mask.
// Int64 columns are widened.
func (t *Table) Float64s(name string) ([]float64, []bool, error) {
	s, err := t.Column(name)
	if err != nil {
		return nil, nil, err
	}

	values := make([]float64, s.Len())
	valid := make([]bool, s.Len())

	switch a := s.arr.(type) {
	case *array.Float64:
		for i := range values {
			valid[i] = a.IsValid(i)
			values[i] = a.Value(i)
		}
	case *array.Int64:
		for i := range values {
			valid[i] = a.IsValid(i)
			values[i] = float64(a.Value(i))
		}
	default:
		return nil, nil, fmt.Errorf("%w: column %q is %s, not numeric", errs.ErrTypeMismatch, name, s.Kind())
	}

	return values, valid, nil
}

// Int64s returns an int64 column and its validity mask.
func (t *Table) Int64s(name string) ([]int64, []bool, error) {
	s, err := t.Column(name)
	if err != nil {
		return nil, nil, err
	}

	a, ok := s.arr.(*array.Int64)
	if !ok {
		return nil, nil, fmt.Errorf("%w: column %q is %s, not Int64", errs.ErrTypeMismatch, name, s.Kind())
	}

	values := make([]int64, a.Len())
	valid := make([]bool, a.Len())
	for i := range values {
		valid[i] = a.IsValid(i)
		values[i] = a.Value(i)
	}

	return values, valid, nil
}

// Strings returns a string column and its validity mask.
func (t *Table) Strings(name string) ([]string, []bool, error) {
	s, err := t.Column(name)
	if err != nil {
		return nil, nil, err
	}

	a, ok := s.arr.(*array.String)
	if !ok {
		return nil, nil, fmt.Errorf("%w: column %q is %s, not String", errs.ErrTypeMismatch, name, s.Kind())
	}

	values := make([]string, a.Len())
	valid := make([]bool, a.Len())
	for i := range values {
		valid[i] = a.IsValid(i)
		values[i] = a.Value(i)
	}

	return values, valid, nil
}

// Select returns the columns picked by sel, in the order sel resolves them.
func (t *Table) Select(sel Selector) (*Table, error) {
	names, err := Resolve(t, sel)
	if err != nil {
		return nil, err
	}

	out := make([]Series, len(names))
	for i, name := range names {
		out[i] = t.series(t.pos[name]).Retain()
	}

	return New(out...)
}

// Drop returns the table without the named columns. Unknown names are ignored.
func (t *Table) Drop(names ...string) *Table {
	out := make([]Series, 0, len(t.names))
	for i, name := range t.names {
		if !slices.Contains(names, name) {
			out = append(out, t.series(i).Retain())
		}
	}

	// a subset of a valid table is valid, New cannot fail
	res, _ := New(out...)

	return res
}

// Reorder returns the table with its columns in the given order. names
// must list every column exactly once.
func (t *Table) Reorder(names ...string) (*Table, error) {
	if len(names) != len(t.names) {
		return nil, fmt.Errorf("%w: reorder lists %d of %d columns", errs.ErrInvalidSelection, len(names), len(t.names))
	}

	out := make([]Series, len(names))
	for i, name := range names {
		p, ok := t.pos[name]
		if !ok {
			releaseAll(out[:i])
			return nil, fmt.Errorf("%w: %q", errs.ErrColumnNotFound, name)
		}
		out[i] = t.series(p).Retain()
	}

	return New(out...)
}

// Equal reports whether both tables have the same column names, types and
// cells, nulls included.
func (t *Table) Equal(other *Table) bool {
	if other == nil {
		return false
	}
	if !slices.Equal(t.names, other.names) {
		return false
	}

	return array.RecordEqual(t.rec, other.rec)
}

// CheckUnique verifies that the named columns identify every row. It returns
// errs.ErrDuplicateKey naming the first repeated key.
func (t *Table) CheckUnique(names ...string) error {
	cols := make([]Series, len(names))
	for i, name := range names {
		s, err := t.Column(name)
		if err != nil {
			return err
		}
		cols[i] = s
	}

	key := pool.GetBuffer()
	defer pool.PutBuffer(key)
	cell := pool.GetBuffer()
	defer pool.PutBuffer(cell)

	set := keyset.New(t.NumRows())
	for row := 0; row < t.NumRows(); row++ {
		key.Reset()
		for _, c := range cols {
			if c.IsNull(row) {
				key.B = keyset.AppendNull(key.B)
				continue
			}
			cell.Reset()
			cell.B = c.appendCell(cell.B, row, "")
			key.B = keyset.AppendPart(key.B, cell.B)
		}
		if err := set.AddBytes(key.Bytes()); err != nil {
			return fmt.Errorf("columns [%s]: %w", strings.Join(names, ", "), err)
		}
	}

	return nil
}

// Release drops the table's reference to its record. The column data is
// freed once no other table shares it.
func (t *Table) Release() {
	if t.rec != nil {
		t.rec.Release()
	}
}
