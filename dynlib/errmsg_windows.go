//go:build windows

package dynlib

import (
	"fmt"
	"syscall"

	"golang.org/x/sys/windows"
)

// maxMessageLen bounds FormatMessage output in UTF-16 units.
const maxMessageLen = 512

func systemMessage(errno syscall.Errno) string {
	buf := make([]uint16, maxMessageLen)
	flags := uint32(windows.FORMAT_MESSAGE_FROM_SYSTEM | windows.FORMAT_MESSAGE_IGNORE_INSERTS)
	n, err := windows.FormatMessage(flags, 0, uint32(errno), 0, buf, nil)
	if err != nil || n == 0 {
		return fmt.Sprintf("Windows error %d", uint32(errno))
	}
	return trimSystemMessage(windows.UTF16ToString(buf[:n]))
}
