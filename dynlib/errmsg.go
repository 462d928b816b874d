package dynlib

import (
	"errors"
	"syscall"
)

// FormatError writes a human-readable description of err into buf and returns
// the number of bytes written. The text is truncated to len(buf)-1 bytes and
// followed by a NUL byte.
//
// err must be the error captured from the OS call that just failed; it stands
// in for the thread-local GetLastError/errno value and is never read later
// from ambient state. OS error codes are formatted with the system message
// table. Other errors, such as dlerror text, are used as is.
//
// A nil err, a zero error code or an empty buf yields 0, in which case the
// contents of buf are unspecified.
func FormatError(buf []byte, err error) int {
	if len(buf) == 0 {
		return 0
	}
	return writeCString(buf, ErrorString(err), len(buf)-1)
}

// ErrorString returns the text FormatError would write for err, without truncation.
func ErrorString(err error) string {
	if err == nil {
		return ""
	}

	var errno syscall.Errno
	if errors.As(err, &errno) {
		if errno == 0 {
			return ""
		}
		return systemMessage(errno)
	}

	return err.Error()
}

// writeCString copies at most limit bytes of s into dst, terminates the copy
// with a NUL byte and returns the number of bytes copied.
func writeCString(dst []byte, s string, limit int) int {
	if len(dst) == 0 {
		return 0
	}
	if limit > len(dst)-1 {
		limit = len(dst) - 1
	}
	if limit < 0 {
		limit = 0
	}

	n := copy(dst[:limit], s)
	dst[n] = 0
	return n
}

// trimSystemMessage drops a final '\n', then '\r', then '.' from a formatted
// system message. Messages of three bytes or fewer are left alone.
func trimSystemMessage(msg string) string {
	if len(msg) <= 3 {
		return msg
	}
	for _, suffix := range []byte{'\n', '\r', '.'} {
		if msg[len(msg)-1] == suffix {
			msg = msg[:len(msg)-1]
		}
	}
	return msg
}
