// Package filesystem routes every file access of the application through a swappable afero backend,
// so configuration, logs and caches can run against memory in tests.
package filesystem

import (
	"sync"

	"github.com/spf13/afero"
)

var (
	mu      sync.RWMutex
	backend = afero.Afero{Fs: afero.NewOsFs()}
)

// API returns the active backend.
func API() afero.Afero {
	mu.RLock()
	defer mu.RUnlock()
	return backend
}

// Use replaces the active backend.
func Use(fs afero.Fs) {
	mu.Lock()
	defer mu.Unlock()
	backend = afero.Afero{Fs: fs}
}

// SetOsFs restores the native operating system backend.
func SetOsFs() {
	Use(afero.NewOsFs())
}

// SetMemMapFs switches to a volatile in-memory backend.
func SetMemMapFs() {
	Use(afero.NewMemMapFs())
}

// Exists reports whether path exists on the active backend, treating lookup errors as absence.
func Exists(path string) bool {
	ok, err := API().Exists(path)
	return err == nil && ok
}
