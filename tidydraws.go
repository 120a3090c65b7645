// Package tidydraws reshapes Bayesian posterior draws into tidy tables.
//
// A posterior holds named groups of variables. Every variable is an array
// whose first two axes are chain and draw, followed by any number of named
// dimensions. tidydraws turns such arrays into Arrow-backed tables in two
// shapes:
//
//   - wide: one row per sample and coordinate, one column per variable
//   - long: one row per sample, coordinate and variable, with the variable
//     name and its value in two columns
//
// # Core Features
//
//   - Variable selection by exact name, substring or regular expression,
//     with "~" exclusion
//   - Reproducible subsampling without replacement
//   - Stacked (combined) or per-chain sample axes
//   - Variables of different dimensionality gathered into one long table,
//     with nulls for the dimensions a variable lacks
//
// # Basic Usage
//
// Building a posterior:
//
//	mu, _ := posterior.NewVariable("mu", []int{4, 1000}, muDraws)
//	theta, _ := posterior.NewVariable("theta", []int{4, 1000, 8}, thetaDraws, "school")
//
//	data := posterior.New()
//	data.AddGroup(posterior.GroupPosterior, mu, theta)
//
// Spreading and gathering:
//
//	wide, _ := tidydraws.SpreadDraws(data, spread.WithNumSamples(100), spread.WithSeed(1))
//	long, _ := tidydraws.GatherVariables(wide)
//	tidy, _ := tidydraws.GatherDraws(data, gather.WithSpread(spread.WithVarNames("theta")))
//
// # Package Structure
//
// This package provides top-level wrappers around the spread and gather
// packages. The posterior package holds the draws container, frame the
// table type, and errs the sentinel errors shared by all of them.
package tidydraws

import (
	"github.com/arloliu/tidydraws/frame"
	"github.com/arloliu/tidydraws/gather"
	"github.com/arloliu/tidydraws/posterior"
	"github.com/arloliu/tidydraws/spread"
)

// SpreadDraws extracts draws into a wide table.
//
// Each row is one selected sample at one coordinate of every non-sample
// dimension; each selected variable is a float64 column. By default the
// whole "posterior" group is extracted with chains and draws combined.
//
// Parameters:
//   - src: posterior container or an already extracted dataset
//   - opts: Optional extraction settings (see spread.Option)
//
// Returns:
//   - *frame.Table: chain, draw and dimension columns, then one column per variable
//   - error: errs.ErrNotFound or errs.ErrValidation
//
// Available options:
//   - spread.WithGroup(name)
//   - spread.WithCombined(true|false)
//   - spread.WithVarNames(names...) / spread.WithFilterVars(posterior.FilterLike|FilterRegex)
//   - spread.WithNumSamples(n) / spread.WithSeed(seed) / spread.WithRNG(rng)
//   - spread.WithDimNames(variable, names...)
//   - spread.WithDropChainDraw(true|false)
//   - spread.WithLogger(logger)
//
// Example:
//
//	tbl, err := tidydraws.SpreadDraws(data,
//	    spread.WithVarNames("theta"),
//	    spread.WithNumSamples(50),
//	    spread.WithSeed(42),
//	)
func SpreadDraws(src posterior.Source, opts ...spread.Option) (*frame.Table, error) {
	return spread.Draws(src, opts...)
}

// SpreadDrawsAndGetIndexCols is SpreadDraws that also returns the names of
// the index columns, chain and draw first. Their values identify every row.
//
// Example:
//
//	tbl, index, err := tidydraws.SpreadDrawsAndGetIndexCols(data)
//	long, err := tidydraws.GatherVariables(tbl, gather.WithIndex(frame.ByName(index...)))
func SpreadDrawsAndGetIndexCols(src posterior.Source, opts ...spread.Option) (*frame.Table, []string, error) {
	return spread.DrawsWithIndex(src, opts...)
}

// GatherVariables melts a wide table into long form.
//
// The index defaults to whichever of chain and draw exist; all other
// columns are gathered into a "variable" and a "value" column.
//
// Returns errs.ErrNameCollision if an output column name repeats an index
// column.
func GatherVariables(tbl *frame.Table, opts ...gather.Option) (*frame.Table, error) {
	return gather.Variables(tbl, opts...)
}

// GatherDraws extracts draws straight into long form.
//
// All selected variables share the same samples. A variable contributes
// only its own dimension columns; other dimension columns are null in its
// rows.
//
// Example:
//
//	tbl, err := tidydraws.GatherDraws(data,
//	    gather.WithSpread(spread.WithGroup(posterior.GroupPrior)),
//	    gather.WithValueName("draw_value"),
//	)
func GatherDraws(src posterior.Source, opts ...gather.Option) (*frame.Table, error) {
	return gather.Draws(src, opts...)
}
