//go:build windows

package dynlib

import (
	"errors"

	"golang.org/x/sys/windows"
)

const defaultLoadFlags = 0

func loadLibrary(path string, _ int) (uintptr, error) {
	handle, err := windows.LoadLibrary(path)
	if err != nil {
		return 0, err
	}
	if handle == 0 {
		return 0, errors.New("LoadLibrary returned a null handle")
	}
	return uintptr(handle), nil
}

func getSymbol(handle uintptr, symbol string) (uintptr, error) {
	return windows.GetProcAddress(windows.Handle(handle), symbol)
}

func closeLibrary(handle uintptr) error {
	if handle == 0 {
		return nil
	}
	return windows.FreeLibrary(windows.Handle(handle))
}

func isModuleNotFound(err error) bool {
	return errors.Is(err, windows.ERROR_MOD_NOT_FOUND)
}
