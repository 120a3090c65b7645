package posterior

import (
	"fmt"
	"slices"

	"github.com/arloliu/tidydraws/errs"
)

// Conventional group names.
const (
	GroupPosterior           = "posterior"
	GroupPrior               = "prior"
	GroupPosteriorPredictive = "posterior_predictive"
	GroupPriorPredictive     = "prior_predictive"
	GroupLogLikelihood       = "log_likelihood"
	GroupSampleStats         = "sample_stats"
)

// Group is a named collection of variables sharing chain and draw axes.
type Group struct {
	name   string
	vars   []*Variable
	byName map[string]*Variable
	chains int
	draws  int
	sizes  map[string]int
	coords map[string]Coords
}

func newGroup(name string) *Group {
	return &Group{
		name:   name,
		byName: make(map[string]*Variable),
		sizes:  make(map[string]int),
		coords: make(map[string]Coords),
	}
}

// Name returns the group name.
func (g *Group) Name() string { return g.name }

// VarNames returns variable names in insertion order.
func (g *Group) VarNames() []string {
	names := make([]string, len(g.vars))
	for i, v := range g.vars {
		names[i] = v.name
	}

	return names
}

// Variable returns the named variable.
func (g *Group) Variable(name string) (*Variable, bool) {
	v, ok := g.byName[name]
	return v, ok
}

// NumChains returns the number of chains, 0 while the group is empty.
func (g *Group) NumChains() int { return g.chains }

// NumDraws returns the number of draws per chain, 0 while the group is empty.
func (g *Group) NumDraws() int { return g.draws }

// Add appends a variable. Its chain and draw counts, and the length of every
// dimension it shares with other variables or coordinates, must match.
func (g *Group) Add(v *Variable) error {
	if _, dup := g.byName[v.name]; dup {
		return fmt.Errorf("%w: variable %q already exists in group %q", errs.ErrInvalidName, v.name, g.name)
	}

	if len(g.vars) > 0 && (v.NumChains() != g.chains || v.NumDraws() != g.draws) {
		return fmt.Errorf("%w: variable %q has %d chains x %d draws, group %q has %d x %d",
			errs.ErrShapeMismatch, v.name, v.NumChains(), v.NumDraws(), g.name, g.chains, g.draws)
	}
	if err := g.checkCoordLen(ChainDim, v.NumChains()); err != nil {
		return err
	}
	if err := g.checkCoordLen(DrawDim, v.NumDraws()); err != nil {
		return err
	}

	for k, d := range v.dims {
		n := v.dimSize(k)
		if known, ok := g.sizes[d]; ok && known != n {
			return fmt.Errorf("%w: dimension %q of variable %q has length %d, group %q uses %d",
				errs.ErrShapeMismatch, d, v.name, n, g.name, known)
		}
		if err := g.checkCoordLen(d, n); err != nil {
			return err
		}
	}

	for k, d := range v.dims {
		g.sizes[d] = v.dimSize(k)
	}
	g.chains, g.draws = v.NumChains(), v.NumDraws()
	g.vars = append(g.vars, v)
	g.byName[v.name] = v

	return nil
}

func (g *Group) checkCoordLen(dim string, n int) error {
	c, ok := g.coords[dim]
	if ok && c.Len() != n {
		return fmt.Errorf("%w: dimension %q has length %d but %d coordinates in group %q",
			errs.ErrShapeMismatch, dim, n, c.Len(), g.name)
	}

	return nil
}

// SetCoords labels a dimension. Chain and draw labels must be integers.
// If the dimension is already in use, the label count must match its length.
func (g *Group) SetCoords(dim string, c Coords) error {
	if dim == "" || dim == SampleDim {
		return fmt.Errorf("%w: cannot set coordinates for dimension %q", errs.ErrInvalidName, dim)
	}

	switch dim {
	case ChainDim, DrawDim:
		if c.IsString() {
			return fmt.Errorf("%w: %s labels must be integers", errs.ErrTypeMismatch, dim)
		}
		if len(g.vars) > 0 {
			n := g.chains
			if dim == DrawDim {
				n = g.draws
			}
			if c.Len() != n {
				return fmt.Errorf("%w: %d %s labels for %d %ss", errs.ErrShapeMismatch, c.Len(), dim, n, dim)
			}
		}
	default:
		if n, ok := g.sizes[dim]; ok && c.Len() != n {
			return fmt.Errorf("%w: %d labels for dimension %q of length %d", errs.ErrShapeMismatch, c.Len(), dim, n)
		}
	}

	g.coords[dim] = c

	return nil
}

// Coords returns the labels of a dimension, defaulting to 0..n-1.
func (g *Group) Coords(dim string) (Coords, bool) {
	if c, ok := g.coords[dim]; ok {
		return c, true
	}

	switch dim {
	case ChainDim:
		return rangeCoords(g.chains), len(g.vars) > 0
	case DrawDim:
		return rangeCoords(g.draws), len(g.vars) > 0
	}

	n, ok := g.sizes[dim]
	if !ok {
		return Coords{}, false
	}

	return rangeCoords(n), true
}

// InferenceData is an in-memory posterior container made of named groups.
type InferenceData struct {
	groups map[string]*Group
	order  []string
}

var _ Source = (*InferenceData)(nil)

// New creates an empty container.
func New() *InferenceData {
	return &InferenceData{groups: make(map[string]*Group)}
}

// AddGroup creates a group holding vars.
func (d *InferenceData) AddGroup(name string, vars ...*Variable) (*Group, error) {
	if name == "" {
		return nil, fmt.Errorf("%w: group name must not be empty", errs.ErrInvalidName)
	}
	if _, dup := d.groups[name]; dup {
		return nil, fmt.Errorf("%w: group %q already exists", errs.ErrInvalidName, name)
	}

	g := newGroup(name)
	for _, v := range vars {
		if err := g.Add(v); err != nil {
			return nil, err
		}
	}

	d.groups[name] = g
	d.order = append(d.order, name)

	return g, nil
}

// Group returns the named group.
func (d *InferenceData) Group(name string) (*Group, error) {
	g, ok := d.groups[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", errs.ErrGroupNotFound, name)
	}

	return g, nil
}

// Groups returns group names in insertion order.
func (d *InferenceData) Groups() []string { return slices.Clone(d.order) }

// Extract implements Source.
func (d *InferenceData) Extract(group string, cfg ExtractConfig) (*Dataset, error) {
	g, err := d.Group(group)
	if err != nil {
		return nil, err
	}

	return g.dataset().Extract(group, cfg)
}
