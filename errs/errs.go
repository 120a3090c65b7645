// Package errs declares the sentinel errors returned by tidydraws.
//
// Errors fall into two categories, ErrNotFound and ErrValidation. Every
// specific sentinel wraps exactly one of them, so callers can test either
// the precise failure or its category:
//
//	_, err := spread.Draws(data, spread.WithVarNames("tau"))
//	if errors.Is(err, errs.ErrNotFound) {
//	    // missing group, variable or column
//	}
//
// Call sites add detail with fmt.Errorf("%w: ...", errs.ErrX).
package errs

import (
	"errors"
	"fmt"
)

// Categories.
var (
	// ErrNotFound reports a group, variable or column that does not exist.
	ErrNotFound = errors.New("not found")
	// ErrValidation reports input that was rejected before any output was built.
	ErrValidation = errors.New("validation failed")
)

// Not-found errors.
var (
	ErrGroupNotFound    = fmt.Errorf("group %w", ErrNotFound)
	ErrVariableNotFound = fmt.Errorf("variable %w", ErrNotFound)
	ErrColumnNotFound   = fmt.Errorf("column %w", ErrNotFound)
)

// Validation errors.
var (
	ErrNameCollision    = fmt.Errorf("%w: output name collides with an index column", ErrValidation)
	ErrDimNameCount     = fmt.Errorf("%w: incorrect number of dimension names", ErrValidation)
	ErrSampleCount      = fmt.Errorf("%w: requested more samples than available", ErrValidation)
	ErrShapeMismatch    = fmt.Errorf("%w: shape mismatch", ErrValidation)
	ErrDuplicateColumn  = fmt.Errorf("%w: duplicate column name", ErrValidation)
	ErrDuplicateKey     = fmt.Errorf("%w: duplicate row key", ErrValidation)
	ErrTypeMismatch     = fmt.Errorf("%w: column type mismatch", ErrValidation)
	ErrInvalidPattern   = fmt.Errorf("%w: invalid pattern", ErrValidation)
	ErrInvalidSelection = fmt.Errorf("%w: invalid selection", ErrValidation)
	ErrInvalidName      = fmt.Errorf("%w: invalid name", ErrValidation)
)
