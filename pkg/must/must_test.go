package must

import (
	"errors"
	"testing"

	"gotest.tools/assert"
)

func TestDo(t *testing.T) {
	assert.Equal(t, 7, Do(7, nil))
	assert.Assert(t, panics(func() { Do(0, errors.New("boom")) }))
}

func panics(f func()) (did bool) {
	defer func() {
		did = recover() != nil
	}()
	f()
	return false
}
