package dynlib

import (
	"errors"
	"fmt"
)

var (
	// ErrClosed is returned when a Library is used after Close.
	ErrClosed = errors.New("library already closed")
	// ErrSymbolNotFound is returned when a symbol cannot be resolved in a loaded library.
	ErrSymbolNotFound = errors.New("symbol not found")
	// ErrModuleNotFound is reported when the OS loader cannot find the library or one of its dependencies.
	ErrModuleNotFound = errors.New("module not found")
	// ErrNameTooLong is returned by strict name construction when the name does not fit its capacity.
	ErrNameTooLong = errors.New("library name exceeds capacity")
	// ErrLibraryNotFound is returned when no search path entry holds the requested library.
	ErrLibraryNotFound = errors.New("shared library not found")
)

// dependentLibrariesMessage replaces the loader's own text when it reports a
// missing module, which usually means a dependency rather than the library itself.
const dependentLibrariesMessage = "Can't find dependent libraries"

// LoadError describes a failed Open.
type LoadError struct {
	// Name is the library name passed to the OS loader.
	Name string
	// Err is the error reported by the OS loader.
	Err error
	// Message is the diagnostic text shown to users.
	Message string
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("failed to load library %q: %s", e.Name, e.Message)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

func (e *LoadError) Is(target error) bool {
	return target == ErrModuleNotFound && isModuleNotFound(e.Err)
}

func newLoadError(name string, err error) *LoadError {
	loadErr := &LoadError{Name: name, Err: err}
	if isModuleNotFound(err) {
		loadErr.Message = dependentLibrariesMessage
	} else {
		loadErr.Message = ErrorString(err)
	}
	if loadErr.Message == "" {
		loadErr.Message = "unknown error"
	}
	return loadErr
}
