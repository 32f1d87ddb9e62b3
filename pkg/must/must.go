// Package must turns (value, error) pairs into values, panicking on error.
package must

import (
	"hop.computer/slist/pkg"
)

// Do returns v, or panics if err is non-nil. It lets a call that cannot fail in
// practice be used as a single expression.
//
// Example:
//
//	n := must.Do(r.Read(buf))
func Do[T any](v T, err error) T {
	if err != nil {
		pkg.Panicf("expected nil-error, got %s", err)
	}
	return v
}

