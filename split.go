package linearcheck

import (
	"strings"

	"github.com/njchilds90/linearcheck/symbolic"
)

// splitVariables splits a comma-separated list of names, discarding blank
// entries, and rejects invalid and repeated names.
func splitVariables(s string) ([]string, error) {
	var names []string
	seen := map[string]bool{}
	var dups, invalid []string
	for _, part := range strings.Split(s, ",") {
		name := strings.TrimSpace(part)
		if name == "" {
			continue
		}
		switch {
		case !symbolic.IsIdentifier(name):
			invalid = append(invalid, name)
		case seen[name]:
			if !contains(dups, name) {
				dups = append(dups, name)
			}
		default:
			seen[name] = true
			names = append(names, name)
		}
	}
	switch {
	case len(invalid) > 0:
		return nil, inputError("variables", ErrInvalidVariable, invalid...)
	case len(dups) > 0:
		return nil, inputError("variables", ErrDuplicateVariable, dups...)
	case len(names) == 0:
		return nil, inputError("variables", ErrNoVariables)
	}
	return names, nil
}

// splitComponents strips one pair of matching outer brackets and splits the
// remainder on commas that are not nested inside brackets, so atan2(y, x)
// stays a single component.
func splitComponents(s string) ([]string, error) {
	s = stripOuter(strings.TrimSpace(s))
	if strings.TrimSpace(s) == "" {
		return nil, inputError("split", ErrEmptyTransformation)
	}
	var parts []string
	depth, start := 0, 0
	for i, r := range s {
		switch r {
		case '(', '[':
			depth++
		case ')', ']':
			depth--
		case ',':
			if depth == 0 {
				parts = append(parts, s[start:i])
				start = i + 1
			}
		}
	}
	parts = append(parts, s[start:])
	for i, p := range parts {
		parts[i] = strings.TrimSpace(p)
		if parts[i] == "" {
			return nil, &VerifyError{Kind: KindInput, Op: "split", Component: i, Err: ErrEmptyComponent}
		}
	}
	return parts, nil
}

// stripOuter removes s[0] and s[len-1] when they are a bracket pair that
// match each other. "(x)+(y)" is left alone.
func stripOuter(s string) string {
	if len(s) < 2 {
		return s
	}
	var lb, rb byte
	switch s[0] {
	case '(':
		lb, rb = '(', ')'
	case '[':
		lb, rb = '[', ']'
	default:
		return s
	}
	if s[len(s)-1] != rb {
		return s
	}
	depth := 0
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case lb:
			depth++
		case rb:
			depth--
			if depth == 0 && i != len(s)-1 {
				return s
			}
		}
	}
	if depth != 0 {
		return s
	}
	return s[1 : len(s)-1]
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
