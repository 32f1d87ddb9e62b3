// Package thunks contains pointers to functions that might be replaced in
// tests.
package thunks

import (
	"context"
	"os"
	"time"
)

// UserHomeDir is an alias for os.UserHomeDir
var UserHomeDir func() (string, error) = os.UserHomeDir

// TimeNow is an alias for time.Now
var TimeNow func() time.Time = time.Now

// Sleep pauses for d or until ctx is done, whichever comes first. It returns
// ctx.Err() if the pause was cut short.
var Sleep func(ctx context.Context, d time.Duration) error = sleep

func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// SetUpTest replaces thunks with stable test versions. Sleeps return
// immediately unless the context is already done.
func SetUpTest() {
	UserHomeDir = func() (string, error) {
		return "/home/test", nil
	}
	TimeNow = func() time.Time {
		return time.Date(1992, 12, 31, 1, 2, 3, 4, time.UTC)
	}
	Sleep = func(ctx context.Context, _ time.Duration) error {
		return ctx.Err()
	}
}

// TearDownTest restores the real implementations.
func TearDownTest() {
	UserHomeDir = os.UserHomeDir
	TimeNow = time.Now
	Sleep = sleep
}
