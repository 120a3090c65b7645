package frame

import (
	"strconv"

	"github.com/apache/arrow/go/v7/arrow"
	"github.com/apache/arrow/go/v7/arrow/array"
	"github.com/apache/arrow/go/v7/arrow/memory"
)

// Kind is the element type of a column.
type Kind uint8

const (
	KindUnknown Kind = iota // KindUnknown is any Arrow type tidydraws does not produce.
	KindInt64               // KindInt64 holds integer labels such as chain and draw ids.
	KindFloat64             // KindFloat64 holds sampled values.
	KindString              // KindString holds variable names and string coordinate labels.
)

func (k Kind) String() string {
	switch k {
	case KindInt64:
		return "Int64"
	case KindFloat64:
		return "Float64"
	case KindString:
		return "String"
	default:
		return "Unknown"
	}
}

// Numeric reports whether values of this kind can be melted into a value column.
func (k Kind) Numeric() bool {
	return k == KindInt64 || k == KindFloat64
}

func kindOf(dt arrow.DataType) Kind {
	switch dt.ID() {
	case arrow.INT64:
		return KindInt64
	case arrow.FLOAT64:
		return KindFloat64
	case arrow.STRING:
		return KindString
	default:
		return KindUnknown
	}
}

var allocator memory.Allocator = memory.NewGoAllocator()

// Series is a named column.
type Series struct {
	name string
	arr  arrow.Array
}

// NewInt64Series creates an int64 column. valid is either nil (no nulls) or
// has the same length as values; false entries are nulls.
func NewInt64Series(name string, values []int64, valid []bool) Series {
	b := array.NewInt64Builder(allocator)
	defer b.Release()
	b.AppendValues(values, valid)

	return Series{name: name, arr: b.NewArray()}
}

// NewFloat64Series creates a float64 column. See NewInt64Series for valid.
func NewFloat64Series(name string, values []float64, valid []bool) Series {
	b := array.NewFloat64Builder(allocator)
	defer b.Release()
	b.AppendValues(values, valid)

	return Series{name: name, arr: b.NewArray()}
}

// NewStringSeries creates a string column. See NewInt64Series for valid.
func NewStringSeries(name string, values []string, valid []bool) Series {
	b := array.NewStringBuilder(allocator)
	defer b.Release()
	b.AppendValues(values, valid)

	return Series{name: name, arr: b.NewArray()}
}

// Name returns the column name.
func (s Series) Name() string { return s.name }

// Len returns the number of rows.
func (s Series) Len() int {
	if s.arr == nil {
		return 0
	}

	return s.arr.Len()
}

// Kind returns the element type.
func (s Series) Kind() Kind { return kindOf(s.arr.DataType()) }

// IsNull reports whether row i is missing.
func (s Series) IsNull(i int) bool { return s.arr.IsNull(i) }

// NullCount returns the number of missing rows.
func (s Series) NullCount() int { return s.arr.NullN() }

// Retain adds a reference to the column data and returns s.
func (s Series) Retain() Series {
	if s.arr != nil {
		s.arr.Retain()
	}

	return s
}

// Release drops a reference to the column data.
func (s Series) Release() {
	if s.arr != nil {
		s.arr.Release()
	}
}

func releaseAll(series []Series) {
	for _, s := range series {
		s.Release()
	}
}

// Rename returns the same data under another name.
func (s Series) Rename(name string) Series {
	return Series{name: name, arr: s.arr}
}

// Value returns row i as int64, float64 or string, or nil when missing.
func (s Series) Value(i int) any {
	if s.arr.IsNull(i) {
		return nil
	}

	switch a := s.arr.(type) {
	case *array.Int64:
		return a.Value(i)
	case *array.Float64:
		return a.Value(i)
	case *array.String:
		return a.Value(i)
	default:
		return nil
	}
}

// appendCell appends row i to dst, using null for missing values.
func (s Series) appendCell(dst []byte, i int, null string) []byte {
	if s.arr.IsNull(i) {
		return append(dst, null...)
	}

	switch a := s.arr.(type) {
	case *array.Int64:
		return strconv.AppendInt(dst, a.Value(i), 10)
	case *array.Float64:
		return strconv.AppendFloat(dst, a.Value(i), 'g', -1, 64)
	case *array.String:
		return append(dst, a.Value(i)...)
	default:
		return append(dst, '?')
	}
}
