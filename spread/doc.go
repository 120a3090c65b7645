// Package spread turns posterior draws into a wide table.
//
// A wide table has one row per selected (chain, draw) sample and per
// coordinate of every non-sample dimension, and one float64 column per
// variable. Variables that lack a dimension are broadcast over it. The
// index columns (chain, draw and the dimension columns) identify each row.
//
// Basic usage:
//
//	tbl, index, err := spread.DrawsWithIndex(data,
//		spread.WithVarNames("mu", "theta"),
//		spread.WithNumSamples(100),
//		spread.WithSeed(42),
//	)
//
// Draws is the same call without the index names.
package spread
