package posterior

import (
	"fmt"
	"slices"

	"github.com/arloliu/tidydraws/errs"
)

// sample addresses one (chain, draw) pair by position in the source arrays.
type sample struct {
	chain int
	draw  int
}

// datasetVar is a selected variable, possibly with renamed dimensions.
type datasetVar struct {
	v      *Variable
	dims   []string
	coords []Coords
}

// Dataset is the immutable result of an extraction. It shares the source
// arrays and can be extracted from again for the same group.
type Dataset struct {
	group   string
	stacked bool

	// chains and draws are the selected axis positions of an unstacked
	// dataset; samples is their chain-major product. A stacked dataset only
	// keeps samples.
	chains  []int
	draws   []int
	samples []sample

	chainCoords Coords
	drawCoords  Coords

	vars   []datasetVar
	dims   []string
	coords map[string]Coords
}

var _ Source = (*Dataset)(nil)

func (g *Group) dataset() *Dataset {
	chainCoords, _ := g.Coords(ChainDim)
	drawCoords, _ := g.Coords(DrawDim)

	vars := make([]datasetVar, len(g.vars))
	for i, v := range g.vars {
		coords := make([]Coords, len(v.dims))
		for k, d := range v.dims {
			coords[k], _ = g.Coords(d)
		}
		vars[i] = datasetVar{v: v, dims: v.dims, coords: coords}
	}

	d := &Dataset{
		group:       g.name,
		chains:      positions(g.chains),
		draws:       positions(g.draws),
		chainCoords: chainCoords,
		drawCoords:  drawCoords,
		vars:        vars,
	}
	d.samples = product(d.chains, d.draws)
	// group construction already enforced consistent dimensions
	d.dims, d.coords, _ = unionDims(vars)

	return d
}

// Extract implements Source. group must be the group this dataset was
// extracted from. A stacked dataset stays stacked whatever cfg.Combined says.
func (d *Dataset) Extract(group string, cfg ExtractConfig) (*Dataset, error) {
	if group != d.group {
		return nil, fmt.Errorf("%w: %q (dataset holds group %q)", errs.ErrGroupNotFound, group, d.group)
	}
	if cfg.NumSamples < 0 {
		return nil, fmt.Errorf("%w: number of samples must not be negative, got %d",
			errs.ErrInvalidSelection, cfg.NumSamples)
	}

	names, err := selectVars(d.VarNames(), cfg.VarNames, cfg.FilterVars)
	if err != nil {
		return nil, err
	}

	vars := make([]datasetVar, 0, len(names))
	for _, name := range names {
		i := d.varIndex(name)
		vars = append(vars, d.vars[i])
	}

	out := &Dataset{
		group:       d.group,
		stacked:     d.stacked || cfg.Combined,
		chains:      d.chains,
		draws:       d.draws,
		samples:     d.samples,
		chainCoords: d.chainCoords,
		drawCoords:  d.drawCoords,
		vars:        vars,
	}

	if cfg.NumSamples > 0 {
		if err := out.subsample(cfg.NumSamples, cfg.RNG); err != nil {
			return nil, err
		}
	}
	if out.stacked {
		out.chains, out.draws = nil, nil
	}

	out.dims, out.coords, err = unionDims(vars)
	if err != nil {
		return nil, err
	}

	return out, nil
}

// subsample keeps k samples, or k draws per chain when unstacked.
func (d *Dataset) subsample(k int, rng RNG) error {
	if d.stacked {
		n := len(d.samples)
		if k > n {
			return fmt.Errorf("%w: requested %d samples, %d available", errs.ErrSampleCount, k, n)
		}

		picked := make([]sample, k)
		for i, p := range rng.pick(n, k) {
			picked[i] = d.samples[p]
		}
		d.samples = picked

		return nil
	}

	n := len(d.draws)
	if k > n {
		return fmt.Errorf("%w: requested %d draws, %d available per chain", errs.ErrSampleCount, k, n)
	}

	draws := make([]int, k)
	for i, p := range rng.pick(n, k) {
		draws[i] = d.draws[p]
	}
	d.draws = draws
	d.samples = product(d.chains, d.draws)

	return nil
}

// RenameDims names the non-sample dimensions of one variable. names must
// have one entry per dimension; errs.ErrDimNameCount otherwise. Coordinate
// labels follow the renamed dimensions.
func (d *Dataset) RenameDims(variable string, names ...string) (*Dataset, error) {
	i := d.varIndex(variable)
	if i < 0 {
		return nil, fmt.Errorf("%w: %q", errs.ErrVariableNotFound, variable)
	}
	if err := checkDimNames(variable, names, len(d.vars[i].dims)); err != nil {
		return nil, err
	}

	vars := slices.Clone(d.vars)
	vars[i].dims = slices.Clone(names)

	dims, coords, err := unionDims(vars)
	if err != nil {
		return nil, err
	}

	out := *d
	out.vars = vars
	out.dims = dims
	out.coords = coords

	return &out, nil
}

// unionDims collects the non-sample dimensions of vars in order of first
// appearance. Variables sharing a dimension must share its labels.
func unionDims(vars []datasetVar) ([]string, map[string]Coords, error) {
	var dims []string
	coords := make(map[string]Coords)

	for _, dv := range vars {
		for k, d := range dv.dims {
			c, ok := coords[d]
			if !ok {
				coords[d] = dv.coords[k]
				dims = append(dims, d)
				continue
			}
			if !c.Equal(dv.coords[k]) {
				return nil, nil, fmt.Errorf("%w: dimension %q of variable %q does not match other variables",
					errs.ErrShapeMismatch, d, dv.v.name)
			}
		}
	}

	return dims, coords, nil
}

func (d *Dataset) varIndex(name string) int {
	return slices.IndexFunc(d.vars, func(dv datasetVar) bool { return dv.v.name == name })
}

// Group returns the name of the group the dataset was extracted from.
func (d *Dataset) Group() string { return d.group }

// Combined reports whether chain and draw are stacked into one sample axis.
func (d *Dataset) Combined() bool { return d.stacked }

// VarNames returns the selected variables in order.
func (d *Dataset) VarNames() []string {
	names := make([]string, len(d.vars))
	for i, dv := range d.vars {
		names[i] = dv.v.name
	}

	return names
}

// NumSamples returns the number of selected (chain, draw) pairs.
func (d *Dataset) NumSamples() int { return len(d.samples) }

// Dims returns the non-sample dimensions of all selected variables.
func (d *Dataset) Dims() []string { return slices.Clone(d.dims) }

// VarDims returns the non-sample dimensions of one variable.
func (d *Dataset) VarDims(variable string) ([]string, error) {
	i := d.varIndex(variable)
	if i < 0 {
		return nil, fmt.Errorf("%w: %q", errs.ErrVariableNotFound, variable)
	}

	return slices.Clone(d.vars[i].dims), nil
}

// Samples returns the chain and draw labels of every selected sample.
func (d *Dataset) Samples() (chains, draws []int64) {
	chains = make([]int64, len(d.samples))
	draws = make([]int64, len(d.samples))
	for i, s := range d.samples {
		chains[i] = d.chainCoords.ints[s.chain]
		draws[i] = d.drawCoords.ints[s.draw]
	}

	return chains, draws
}

// Values copies the draws of one variable, sample-major.
func (d *Dataset) Values(variable string) ([]float64, error) {
	i := d.varIndex(variable)
	if i < 0 {
		return nil, fmt.Errorf("%w: %q", errs.ErrVariableNotFound, variable)
	}

	v := d.vars[i].v
	inner := v.inner()
	out := make([]float64, 0, len(d.samples)*inner)
	for _, s := range d.samples {
		off := (s.chain*v.NumDraws() + s.draw) * inner
		out = append(out, v.data[off:off+inner]...)
	}

	return out, nil
}

func positions(n int) []int {
	out := make([]int, n)
	for i := range out {
		out[i] = i
	}

	return out
}

func product(chains, draws []int) []sample {
	out := make([]sample, 0, len(chains)*len(draws))
	for _, c := range chains {
		for _, d := range draws {
			out = append(out, sample{chain: c, draw: d})
		}
	}

	return out
}
