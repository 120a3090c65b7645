package spread

import (
	"fmt"
	"slices"

	"github.com/arloliu/tidydraws/frame"
	"github.com/arloliu/tidydraws/posterior"
)

// Draws extracts draws from src into a wide table. See DrawsWithIndex.
func Draws(src posterior.Source, opts ...Option) (*frame.Table, error) {
	tbl, _, err := DrawsWithIndex(src, opts...)
	return tbl, err
}

// DrawsWithIndex extracts draws from src into a wide table and returns the
// names of its index columns.
//
// The index is chain, draw and every non-sample dimension of the selected
// variables, in that order; its tuple is unique per row. The remaining
// columns hold one variable each.
//
// Parameters:
//   - src: posterior container or previously extracted dataset
//   - opts: selection, subsampling and naming options
//
// Returns:
//   - *frame.Table: index columns followed by variable columns
//   - []string: index column names
//   - error: errs.ErrNotFound for unknown groups or variables,
//     errs.ErrValidation for invalid options or an inconsistent layout
func DrawsWithIndex(src posterior.Source, opts ...Option) (*frame.Table, []string, error) {
	cfg, err := NewConfig(opts...)
	if err != nil {
		return nil, nil, err
	}

	ds, err := src.Extract(cfg.group, cfg.ExtractConfig())
	if err != nil {
		return nil, nil, err
	}

	return fromDataset(ds, cfg)
}

func fromDataset(ds *posterior.Dataset, cfg *Config) (*frame.Table, []string, error) {
	vars := ds.VarNames()

	var err error
	for _, name := range cfg.overridden() {
		if !slices.Contains(vars, name) {
			cfg.logger.Debug("dimension names ignored for unselected variable", "variable", name)
			continue
		}

		ds, err = ds.RenameDims(name, cfg.dimNames[name]...)
		if err != nil {
			return nil, nil, err
		}
	}

	tab := normalizeChainDraw(ds.Tabulate(), cfg.combined || cfg.dropChainDraw)
	index := tab.IndexNames()

	tbl, err := frame.New(append(slices.Clone(tab.Index), tab.Columns...)...)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to build draws table for group %q: %w", ds.Group(), err)
	}

	if err := tbl.CheckUnique(index...); err != nil {
		tbl.Release()
		return nil, nil, fmt.Errorf("draws table for group %q has a non-unique index: %w", ds.Group(), err)
	}

	cfg.logger.Debug("extracted draws",
		"group", ds.Group(),
		"variables", len(vars),
		"samples", ds.NumSamples(),
		"combined", ds.Combined(),
		"rows", tbl.NumRows(),
	)

	return tbl, index, nil
}

// normalizeChainDraw removes the ordinary chain and draw columns that a
// stacked dataset tabulates next to its index. The index is untouched.
func normalizeChainDraw(tab posterior.Tabulation, drop bool) posterior.Tabulation {
	if !drop {
		return tab
	}

	cols := make([]frame.Series, 0, len(tab.Columns))
	for _, s := range tab.Columns {
		if s.Name() == posterior.ChainDim || s.Name() == posterior.DrawDim {
			s.Release()
			continue
		}
		cols = append(cols, s)
	}
	tab.Columns = cols

	return tab
}
