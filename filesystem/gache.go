package filesystem

import (
	"io"
	"os"
)

// GacheFs satisfies gache.FileSystem on top of the active backend,
// so cache files follow SetMemMapFs/SetOsFs switches.
type GacheFs struct{}

// OpenFile opens name on the afero filesystem.
func (GacheFs) OpenFile(name string, flag int, perm os.FileMode) (io.ReadWriteCloser, error) {
	return API().OpenFile(name, flag, perm)
}

// MkdirAll creates path on the afero filesystem.
func (GacheFs) MkdirAll(path string, perm os.FileMode) error {
	return API().MkdirAll(path, perm)
}
