// Package loader caches the read and parse of a file by path.
//
// The config package keeps one Loader for the process, so a configuration
// file named both as the default path and with -C, or loaded again by a test,
// is read and parsed once. Parse errors are not cached; a broken file is read
// again on the next attempt.
package loader

import (
	"os"

	"github.com/pkg/errors"
)

// Contents is the raw bytes of a file, and an optional parsed object associated with the raw bytes.
type Contents struct {
	Raw    []byte
	Parsed interface{}
}

// Loader contains cached file contents. It is not safe for concurrent use.
type Loader map[string]*Contents

// LoadFn defines how to turn bytes into an object when loading a file.
type LoadFn func(b []byte) (interface{}, error)

// LoadPath reads the file at path, using the provided load function to create a
// parsed object. It will overwrite any existing file stored at that path in the
// loader. Read errors are returned unwrapped so callers can test them with
// os.IsNotExist.
func (l Loader) LoadPath(path string, f LoadFn) (*Contents, error) {
	var err error
	contents := Contents{}
	if contents.Raw, err = os.ReadFile(path); err != nil {
		return nil, err
	}
	if contents.Parsed, err = f(contents.Raw); err != nil {
		return nil, errors.Wrapf(err, "error in LoadFn for %q", path)
	}
	l[path] = &contents
	return &contents, nil
}

// LoadOrGet loads the file at path if it is not already cached. created is true
// if the file was read by this call.
func (l Loader) LoadOrGet(path string, f LoadFn) (contents *Contents, created bool, err error) {
	if existing, ok := l[path]; ok {
		return existing, false, nil
	}
	c, err := l.LoadPath(path, f)
	if err != nil {
		return nil, false, err
	}
	return c, true, nil
}
