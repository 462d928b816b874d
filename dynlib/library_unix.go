//go:build !windows

package dynlib

import (
	"errors"

	"github.com/ebitengine/purego"
)

const defaultLoadFlags = purego.RTLD_NOW | purego.RTLD_GLOBAL

func loadLibrary(path string, flags int) (uintptr, error) {
	libHandle, err := purego.Dlopen(path, flags)
	if err != nil {
		return 0, err
	}
	if libHandle == 0 {
		return 0, errors.New("dlopen returned a null handle")
	}
	return libHandle, nil
}

func getSymbol(handle uintptr, symbol string) (uintptr, error) {
	return purego.Dlsym(handle, symbol)
}

func closeLibrary(handle uintptr) error {
	if handle == 0 {
		return nil
	}
	return purego.Dlclose(handle)
}

// dlopen folds "not found" into its message text, which already names the
// missing object, so no error is singled out here.
func isModuleNotFound(err error) bool {
	return false
}
