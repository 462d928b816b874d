//go:build windows

package dynlib

import (
	"errors"
	"testing"
)

func systemLibrary(t *testing.T) (string, string) {
	t.Helper()
	return "kernel32.dll", "GetProcAddress"
}

func TestOpenMissingReportsDependentLibraries(t *testing.T) {
	_, err := Open("definitely_missing_xyz")
	if !errors.Is(err, ErrModuleNotFound) {
		t.Fatalf("expected ErrModuleNotFound, got %v", err)
	}

	var loadErr *LoadError
	if !errors.As(err, &loadErr) {
		t.Fatalf("expected *LoadError, got %T", err)
	}
	if loadErr.Message != dependentLibrariesMessage {
		t.Fatalf("expected %q, got %q", dependentLibrariesMessage, loadErr.Message)
	}
}

func TestOpenIntoMissingTruncatesDiagnostic(t *testing.T) {
	buf := make([]byte, 10)
	for i := range buf {
		buf[i] = 0xff
	}

	if lib := OpenInto("definitely_missing_xyz", buf); lib != nil {
		t.Fatal("expected nil library")
	}
	if buf[len(buf)-1] != 0 {
		t.Fatal("expected final byte to be NUL")
	}
	if got, want := BufString(buf), dependentLibrariesMessage[:8]; got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
}
