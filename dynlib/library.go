// Package dynlib loads shared libraries at runtime without cgo.
//
// It builds platform library file names, opens and closes libraries through
// the OS loader, resolves exported symbols and turns loader failures into
// readable diagnostics. Unix loading goes through purego's dlopen bindings;
// Windows loading goes through golang.org/x/sys/windows.
package dynlib

import (
	"errors"
	"fmt"
	"sync"

	"github.com/ebitengine/purego"
)

// Library is a shared library opened by the OS loader. It owns one loader
// reference, released by Close. The zero value is a closed library.
type Library struct {
	mu     sync.Mutex
	name   string
	handle uintptr
}

// Open loads the named library. The name is passed to the OS loader as is,
// so a bare name is searched for with the platform rules.
//
// On failure the returned error is a *LoadError. When the OS reports that a
// module could not be found the error also matches ErrModuleNotFound.
func Open(name string, opts ...Option) (*Library, error) {
	cfg, err := resolveLoadConfig(opts...)
	if err != nil {
		return nil, err
	}
	return open(name, cfg)
}

func open(name string, cfg config) (*Library, error) {
	handle, err := loadLibrary(name, cfg.flags)
	if err != nil {
		return nil, newLoadError(name, err)
	}
	return &Library{name: name, handle: handle}, nil
}

// OpenInto loads the named library and returns nil on failure, writing a
// NUL-terminated diagnostic into errBuf.
//
// A missing module is reported with a fixed message, truncated to
// len(errBuf)-2 bytes. Any other failure is written by FormatError.
func OpenInto(name string, errBuf []byte) *Library {
	lib, err := Open(name)
	if err == nil {
		return lib
	}

	var loadErr *LoadError
	if !errors.As(err, &loadErr) {
		FormatError(errBuf, err)
		return nil
	}

	if isModuleNotFound(loadErr.Err) {
		writeCString(errBuf, dependentLibrariesMessage, len(errBuf)-2)
		if len(errBuf) > 0 {
			errBuf[len(errBuf)-1] = 0
		}
		return nil
	}

	FormatError(errBuf, loadErr.Err)
	return nil
}

// Name returns the name the library was opened with.
func (l *Library) Name() string {
	return l.name
}

// Handle returns the raw loader handle, or 0 once the library is closed.
func (l *Library) Handle() uintptr {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.handle
}

// Close releases the loader reference held by l. Addresses resolved from l
// must not be used afterwards. Closing an already closed library returns
// ErrClosed without calling the loader.
func (l *Library) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.handle == 0 {
		return ErrClosed
	}

	handle := l.handle
	l.handle = 0
	if err := closeLibrary(handle); err != nil {
		return fmt.Errorf("failed to close library %q: %w", l.name, err)
	}
	return nil
}

// Lookup returns the address of the exported symbol.
func (l *Library) Lookup(symbol string) (uintptr, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.handle == 0 {
		return 0, ErrClosed
	}

	addr, err := getSymbol(l.handle, symbol)
	if err != nil {
		return 0, fmt.Errorf("%w: %q in %s: %w", ErrSymbolNotFound, symbol, l.name, err)
	}
	if addr == 0 {
		return 0, fmt.Errorf("%w: %q in %s", ErrSymbolNotFound, symbol, l.name)
	}
	return addr, nil
}

// Sym returns the address of the exported symbol, or 0 when it cannot be resolved.
func (l *Library) Sym(symbol string) uintptr {
	addr, err := l.Lookup(symbol)
	if err != nil {
		return 0
	}
	return addr
}

// Bind resolves symbol and makes fptr, a pointer to a Go function variable,
// call it. See purego.RegisterFunc for the supported signatures.
func (l *Library) Bind(fptr any, symbol string) (err error) {
	addr, err := l.Lookup(symbol)
	if err != nil {
		return err
	}

	defer func() {
		if recovered := recover(); recovered != nil {
			err = fmt.Errorf("failed to bind %q in %s: %v", symbol, l.name, recovered)
		}
	}()
	purego.RegisterFunc(fptr, addr)
	return nil
}
