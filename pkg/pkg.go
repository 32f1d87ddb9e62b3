// Package pkg contains standalone utility functions that do not depend on
// anything except themselves.
package pkg

import (
	"fmt"
)

// Panicf formats its arguments and panics with the resulting string. Reserve
// it for broken invariants and misuse by the caller, never for conditions a
// caller could reasonably expect.
func Panicf(msg string, args ...interface{}) {
	panic(fmt.Sprintf(msg, args...))
}
