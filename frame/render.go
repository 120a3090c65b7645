package frame

import (
	"strings"

	"github.com/arloliu/tidydraws/internal/pool"
)

// String renders the table as tab-separated text: a header line, then one
// line per row. Missing cells render as null.
func (t *Table) String() string {
	buf := pool.GetBuffer()
	defer pool.PutBuffer(buf)

	buf.WriteString(strings.Join(t.names, "\t"))
	_ = buf.WriteByte('\n')

	cols := t.allSeries()
	for row := 0; row < t.NumRows(); row++ {
		for i, c := range cols {
			if i > 0 {
				_ = buf.WriteByte('\t')
			}
			buf.B = c.appendCell(buf.B, row, "null")
		}
		_ = buf.WriteByte('\n')
	}

	return buf.String()
}
