package posterior

import "github.com/arloliu/tidydraws/frame"

// Tabulation is the column-wise form of a Dataset. Every series holds its
// own reference: hand them to frame.New or release them.
//
// Index holds chain, draw and one series per non-sample dimension; the
// tuple identifies each row. Columns holds one float64 series per variable.
// When the dataset is stacked, Columns starts with chain and draw again:
// the stacked sample axis reports its levels both as index and as ordinary
// columns.
type Tabulation struct {
	Index   []frame.Series
	Columns []frame.Series
}

// IndexNames returns the names of the index series.
func (t Tabulation) IndexNames() []string {
	return seriesNames(t.Index)
}

// ColumnNames returns the names of the ordinary columns.
func (t Tabulation) ColumnNames() []string {
	return seriesNames(t.Columns)
}

func seriesNames(series []frame.Series) []string {
	names := make([]string, len(series))
	for i, s := range series {
		names[i] = s.Name()
	}

	return names
}

// Tabulate lays the dataset out with one row per sample and per coordinate
// of every non-sample dimension. Rows are sample-major; within a sample the
// last dimension varies fastest.
func (d *Dataset) Tabulate() Tabulation {
	sizes := make([]int, len(d.dims))
	block := 1
	for j, dim := range d.dims {
		sizes[j] = d.coords[dim].Len()
		block *= sizes[j]
	}

	strides := make([]int, len(d.dims))
	stride := 1
	for j := len(d.dims) - 1; j >= 0; j-- {
		strides[j] = stride
		stride *= sizes[j]
	}

	nrows := len(d.samples) * block
	coordAt := func(r, j int) int { return (r % block) / strides[j] % sizes[j] }

	chain := d.chainCoords.series(ChainDim, nrows, func(r int) int { return d.samples[r/block].chain })
	draw := d.drawCoords.series(DrawDim, nrows, func(r int) int { return d.samples[r/block].draw })

	tab := Tabulation{Index: []frame.Series{chain, draw}}
	for j, dim := range d.dims {
		tab.Index = append(tab.Index, d.coords[dim].series(dim, nrows, func(r int) int { return coordAt(r, j) }))
	}

	if d.stacked {
		tab.Columns = append(tab.Columns, chain.Retain(), draw.Retain())
	}

	union := make(map[string]int, len(d.dims))
	for j, dim := range d.dims {
		union[dim] = j
	}

	for _, dv := range d.vars {
		v := dv.v
		inner := v.inner()

		// strides of the variable's own axes, and their position in the union
		vstrides := make([]int, len(dv.dims))
		vpos := make([]int, len(dv.dims))
		s := 1
		for k := len(dv.dims) - 1; k >= 0; k-- {
			vstrides[k] = s
			s *= v.dimSize(k)
			vpos[k] = union[dv.dims[k]]
		}

		values := make([]float64, nrows)
		for r := range values {
			smp := d.samples[r/block]
			flat := 0
			for k := range dv.dims {
				flat += coordAt(r, vpos[k]) * vstrides[k]
			}
			values[r] = v.data[(smp.chain*v.NumDraws()+smp.draw)*inner+flat]
		}

		tab.Columns = append(tab.Columns, frame.NewFloat64Series(v.name, values, nil))
	}

	return tab
}
