// Package frame is the tabular layer of tidydraws.
//
// A Table is an immutable set of named, equally long, nullable columns
// stored as an Apache Arrow record. Three column kinds are supported:
// int64, float64 and string. Missing values are Arrow nulls.
//
// The package provides the primitives the extractor and the melter are
// built from:
//
//   - New builds a table from Series and rejects duplicate names
//   - Selector picks columns by exact name, optional name or pattern
//   - Melt unpivots every non-index column into (variable, value) pairs
//   - ConcatDiagonal stacks tables on the union of their columns, filling
//     absent columns with nulls
//   - Table.CheckUnique verifies that a set of columns identifies rows
//
// Every operation returns a new Table; inputs are never modified. Tables
// are backed by the Go allocator, so calling Release is optional.
package frame
