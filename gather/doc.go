// Package gather turns wide draws tables into long, tidy form.
//
// A long table keeps the index columns and replaces every other column
// with two: a variable column naming the source column and a value column
// holding its cells. Columns are ordered chain, draw, the remaining index
// columns alphabetically, then variable and value.
//
// Variables melts an existing table. Draws goes straight from a posterior
// source to the long form, one variable at a time, so that variables with
// different dimensions only carry their own index columns; the others are
// null in their rows.
package gather
