// Package combinators defines small combinator functions such as Or.
package combinators

// Or returns v if it is not the zero value of its type. Otherwise, it returns
// the provided default.
func Or[T comparable](v, orDefault T) T {
	var zero T
	if v == zero {
		return orDefault
	}
	return v
}

// StringOr returns s if it is non-empty. Otherwise, it returns the provided
// default.
func StringOr(s, orDefault string) string {
	return Or(s, orDefault)
}
