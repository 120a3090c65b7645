package gather

import (
	"fmt"
	"slices"

	"github.com/arloliu/tidydraws/frame"
	"github.com/arloliu/tidydraws/posterior"
	"github.com/arloliu/tidydraws/spread"
)

// Variables melts tbl from wide to long form.
//
// Every column not picked by the index becomes a block of rows: the
// variable column holds the column name and the value column its cells as
// float64. Index cells are repeated for every block.
//
// Parameters:
//   - tbl: wide table, typically from spread.Draws
//   - opts: index selector and output column names
//
// Returns:
//   - *frame.Table: the long table with tbl.NumRows() rows per value column
//   - error: errs.ErrNameCollision if an output name repeats an index
//     column, errs.ErrColumnNotFound for a missing required index column,
//     errs.ErrTypeMismatch for a non-numeric value column
func Variables(tbl *frame.Table, opts ...Option) (*frame.Table, error) {
	cfg, err := newConfig(opts...)
	if err != nil {
		return nil, err
	}

	return variables(tbl, cfg.index, cfg)
}

func variables(tbl *frame.Table, index frame.Selector, cfg *Config) (*frame.Table, error) {
	names, err := frame.Resolve(tbl, index)
	if err != nil {
		return nil, err
	}
	if err := cfg.checkNames(names); err != nil {
		return nil, err
	}

	long, err := frame.Melt(tbl, frame.ByName(names...), cfg.variableName, cfg.valueName)
	if err != nil {
		return nil, err
	}
	defer long.Release()

	cfg.logger.Debug("melted table",
		"index", len(names),
		"value_columns", tbl.NumCols()-len(names),
		"rows", long.NumRows(),
	)

	return canonical(long, cfg)
}

// Draws extracts draws from src and returns them in long form.
//
// All selected variables are extracted jointly first, so they share the
// same samples. Each variable is then spread and melted on its own index;
// the results are stacked on the union of their columns, with nulls where
// a variable lacks a dimension.
//
// Extraction options come from WithSpread; WithValueName and
// WithVariableName name the output columns.
func Draws(src posterior.Source, opts ...Option) (*frame.Table, error) {
	cfg, err := newConfig(opts...)
	if err != nil {
		return nil, err
	}

	scfg, err := spread.NewConfig(cfg.spread...)
	if err != nil {
		return nil, err
	}

	if cfg.indexSet {
		cfg.logger.Debug("index selector ignored, each variable uses its own index")
	}

	joint, err := src.Extract(scfg.Group(), scfg.ExtractConfig())
	if err != nil {
		return nil, err
	}

	vars := joint.VarNames()
	parts := make([]*frame.Table, 0, len(vars))
	defer func() {
		for _, p := range parts {
			p.Release()
		}
	}()
	for _, name := range vars {
		sopts := []spread.Option{
			spread.WithGroup(scfg.Group()),
			spread.WithCombined(false),
			spread.WithVarNames(name),
			spread.WithRNG(posterior.NoShuffle()),
			spread.WithDropChainDraw(scfg.Combined() || scfg.DropChainDraw()),
			spread.WithLogger(cfg.logger),
		}
		if dims := scfg.DimNames(name); dims != nil {
			sopts = append(sopts, spread.WithDimNames(name, dims...))
		}

		wide, index, err := spread.DrawsWithIndex(joint, sopts...)
		if err != nil {
			return nil, fmt.Errorf("failed to spread variable %q: %w", name, err)
		}

		long, err := variables(wide, frame.ByName(index...), cfg)
		wide.Release()
		if err != nil {
			return nil, fmt.Errorf("failed to gather variable %q: %w", name, err)
		}

		parts = append(parts, long)
	}

	out, err := frame.ConcatDiagonal(parts...)
	if err != nil {
		return nil, err
	}
	defer out.Release()

	cfg.logger.Debug("gathered draws",
		"group", joint.Group(),
		"variables", len(vars),
		"samples", joint.NumSamples(),
		"rows", out.NumRows(),
	)

	return canonical(out, cfg)
}

// canonical orders a long table as chain, draw, the other index columns
// alphabetically, then variable and value.
func canonical(tbl *frame.Table, cfg *Config) (*frame.Table, error) {
	var lead, rest []string
	for _, name := range tbl.ColumnNames() {
		switch name {
		case cfg.variableName, cfg.valueName:
		case posterior.ChainDim, posterior.DrawDim:
			lead = append(lead, name)
		default:
			rest = append(rest, name)
		}
	}
	slices.Sort(lead)
	slices.Sort(rest)

	order := append(lead, rest...)
	order = append(order, cfg.variableName, cfg.valueName)

	return tbl.Reorder(order...)
}
