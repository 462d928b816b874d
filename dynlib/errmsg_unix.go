//go:build !windows

package dynlib

import (
	"syscall"

	"golang.org/x/sys/unix"
)

func systemMessage(errno syscall.Errno) string {
	return unix.Errno(errno).Error()
}
