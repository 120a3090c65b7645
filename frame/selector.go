package frame

import (
	"fmt"
	"regexp"
	"slices"

	"github.com/arloliu/tidydraws/errs"
)

// Selector picks columns of a table by name or pattern.
type Selector interface {
	resolve(columns []string) ([]string, error)
}

// Resolve returns the column names of t picked by sel, without duplicates.
// A nil selector picks nothing.
func Resolve(t *Table, sel Selector) ([]string, error) {
	if sel == nil {
		return nil, nil
	}

	names, err := sel.resolve(t.names)
	if err != nil {
		return nil, err
	}

	return dedupe(names), nil
}

type nameSelector struct {
	names    []string
	optional bool
}

// ByName picks the named columns in the given order. Every name must exist.
func ByName(names ...string) Selector {
	return nameSelector{names: names}
}

// ByNameOptional picks the named columns that exist, in the given order.
func ByNameOptional(names ...string) Selector {
	return nameSelector{names: names, optional: true}
}

func (s nameSelector) resolve(columns []string) ([]string, error) {
	out := make([]string, 0, len(s.names))
	for _, name := range s.names {
		if slices.Contains(columns, name) {
			out = append(out, name)
			continue
		}
		if !s.optional {
			return nil, fmt.Errorf("%w: %q", errs.ErrColumnNotFound, name)
		}
	}

	return out, nil
}

type patternSelector struct {
	re *regexp.Regexp
}

// ByPattern picks, in table order, every column whose name matches re.
func ByPattern(re *regexp.Regexp) Selector {
	return patternSelector{re: re}
}

// Pattern compiles expr and returns ByPattern for it.
func Pattern(expr string) (Selector, error) {
	re, err := regexp.Compile(expr)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", errs.ErrInvalidPattern, err)
	}

	return ByPattern(re), nil
}

func (s patternSelector) resolve(columns []string) ([]string, error) {
	out := make([]string, 0, len(columns))
	for _, name := range columns {
		if s.re.MatchString(name) {
			out = append(out, name)
		}
	}

	return out, nil
}

type unionSelector []Selector

// Union picks the columns of every selector, first occurrence wins.
func Union(sels ...Selector) Selector {
	return unionSelector(sels)
}

func (u unionSelector) resolve(columns []string) ([]string, error) {
	var out []string
	for _, sel := range u {
		if sel == nil {
			continue
		}
		names, err := sel.resolve(columns)
		if err != nil {
			return nil, err
		}
		out = append(out, names...)
	}

	return out, nil
}

func dedupe(names []string) []string {
	out := make([]string, 0, len(names))
	for _, name := range names {
		if !slices.Contains(out, name) {
			out = append(out, name)
		}
	}

	return out
}
