// Package posterior defines the posterior container that tidydraws reads
// from, and provides an in-memory implementation of it.
//
// # Query Contract
//
// Anything implementing Source can be tabulated:
//
//	type Source interface {
//	    Extract(group string, cfg ExtractConfig) (*Dataset, error)
//	}
//
// Extract selects variables of one group (exactly, by substring or by
// regular expression, see FilterMode), optionally stacks the chain and draw
// axes into a single sample axis, and optionally subsamples that axis
// (see RNG). The result is a Dataset: an immutable view that shares the
// source arrays and is itself a Source for the same group, so extraction
// results can be queried again.
//
// # In-memory Container
//
// InferenceData holds ordered, named groups (GroupPosterior, GroupPrior,
// ...). Each Group holds Variables whose first two axes are chain and draw:
//
//	mu, _ := posterior.NewVariable("mu", []int{4, 500}, muDraws)
//	theta, _ := posterior.NewVariable("theta", []int{4, 500, 8}, thetaDraws, "school")
//
//	data := posterior.New()
//	post, _ := data.AddGroup(posterior.GroupPosterior, mu, theta)
//	_ = post.SetCoords("school", posterior.StringCoords(schools...))
//
// Non-sample axes without explicit names are called <variable>_dim_<k>.
// Axes without coordinates are labelled 0..n-1.
//
// # Tabulation
//
// Dataset.Tabulate converts a dataset to columns: index series for chain,
// draw and every non-sample dimension, plus one value column per variable,
// broadcast across dimensions the variable does not have. A stacked
// dataset additionally reports chain and draw as ordinary columns; callers
// turning a Tabulation into a table must drop those duplicates.
package posterior
