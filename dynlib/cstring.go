package dynlib

import (
	"bytes"
	"unsafe"
)

// maxCStringLen bounds GoString scans of foreign memory.
const maxCStringLen = 1 << 20

// GoString copies the NUL-terminated string at ptr. A 0 pointer yields "".
// Strings longer than 1MB are cut at that length.
func GoString(ptr uintptr) string {
	if ptr == 0 {
		return ""
	}

	// #nosec G103 -- ptr comes from a C function bound through Bind
	start := unsafe.Pointer(ptr)
	n := 0
	for n < maxCStringLen && *(*byte)(unsafe.Add(start, n)) != 0 {
		n++
	}
	return string(unsafe.Slice((*byte)(start), n))
}

// CString returns a NUL-terminated copy of s and a pointer to its first byte.
//
// The caller must keep the returned slice alive while C code may read it:
//
//	nameBytes, namePtr := CString("symbol")
//	status := cFunction(namePtr)
//	runtime.KeepAlive(nameBytes)
func CString(s string) ([]byte, uintptr) {
	b := append([]byte(s), 0)
	return b, uintptr(unsafe.Pointer(&b[0]))
}

// BufString returns the text of a NUL-terminated buffer filled by
// FormatError, BuildLibraryName or OpenInto.
func BufString(buf []byte) string {
	if i := bytes.IndexByte(buf, 0); i >= 0 {
		return string(buf[:i])
	}
	return string(buf)
}
