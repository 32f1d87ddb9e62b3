// Package glob matches shell-style globs against input. '*' matches any run of
// characters, including none and including '/'. '?' matches exactly one byte.
package glob

import "strings"

type glob struct {
	fold bool
}

// An Option modifies the behavior of a call to Glob.
type Option func(*glob)

// CaseInsensitive compares pattern and input with ASCII case folding.
var CaseInsensitive Option = func(g *glob) {
	g.fold = true
}

// Glob matches input against pattern. It returns true if the whole input
// matches.
func Glob(pattern, input string, opts ...Option) bool {
	var g glob
	for _, o := range opts {
		o(&g)
	}
	if g.fold {
		pattern = strings.ToLower(pattern)
		input = strings.ToLower(input)
	}

	// Greedy match with a single backtrack point: the most recent '*'.
	i, j := 0, 0
	star, mark := -1, 0
	for j < len(input) {
		switch {
		case i < len(pattern) && (pattern[i] == '?' || pattern[i] == input[j]):
			i++
			j++
		case i < len(pattern) && pattern[i] == '*':
			star, mark = i, j
			i++
		case star >= 0:
			mark++
			i, j = star+1, mark
		default:
			return false
		}
	}
	for i < len(pattern) && pattern[i] == '*' {
		i++
	}
	return i == len(pattern)
}

// Any reports whether input matches at least one of patterns.
func Any(patterns []string, input string, opts ...Option) bool {
	for _, p := range patterns {
		if Glob(p, input, opts...) {
			return true
		}
	}
	return false
}
