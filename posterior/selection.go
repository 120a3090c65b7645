package posterior

import (
	"fmt"
	"regexp"
	"slices"
	"strings"

	"github.com/arloliu/tidydraws/errs"
)

// selectVars resolves requested names against the available ones. The
// result follows request order, then available order, without duplicates.
func selectVars(available, requested []string, mode FilterMode) ([]string, error) {
	if len(requested) == 0 {
		if len(available) == 0 {
			return nil, fmt.Errorf("%w: no variables to select", errs.ErrVariableNotFound)
		}

		return slices.Clone(available), nil
	}

	negated := 0
	for _, name := range requested {
		if strings.HasPrefix(name, "~") {
			negated++
		}
	}
	if negated > 0 && negated < len(requested) {
		return nil, fmt.Errorf("%w: cannot mix excluded (~) and included variable names %v",
			errs.ErrInvalidSelection, requested)
	}

	var selected []string
	excluded := make(map[string]bool)

	for _, name := range requested {
		pattern := strings.TrimPrefix(name, "~")
		matches, err := matchVars(available, pattern, mode)
		if err != nil {
			return nil, err
		}

		for _, m := range matches {
			if negated > 0 {
				excluded[m] = true
			} else if !slices.Contains(selected, m) {
				selected = append(selected, m)
			}
		}
	}

	if negated > 0 {
		for _, name := range available {
			if !excluded[name] {
				selected = append(selected, name)
			}
		}
	}

	if len(selected) == 0 {
		return nil, fmt.Errorf("%w: no variables match %v (filter %s)", errs.ErrVariableNotFound, requested, mode)
	}

	return selected, nil
}

func matchVars(available []string, pattern string, mode FilterMode) ([]string, error) {
	switch mode {
	case FilterNone:
		if !slices.Contains(available, pattern) {
			return nil, fmt.Errorf("%w: %q", errs.ErrVariableNotFound, pattern)
		}

		return []string{pattern}, nil
	case FilterLike:
		var out []string
		for _, name := range available {
			if strings.Contains(name, pattern) {
				out = append(out, name)
			}
		}

		return out, nil
	case FilterRegex:
		re, err := regexp.Compile(pattern)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", errs.ErrInvalidPattern, err)
		}

		var out []string
		for _, name := range available {
			if re.MatchString(name) {
				out = append(out, name)
			}
		}

		return out, nil
	default:
		return nil, fmt.Errorf("%w: unknown filter mode %d", errs.ErrInvalidSelection, mode)
	}
}
