//go:build windows

package logtail

import (
	"os"
	"syscall"
	"time"
)

func creationTime(_ string, fi os.FileInfo) (time.Time, bool) {
	attr, ok := fi.Sys().(*syscall.Win32FileAttributeData)
	if !ok || attr == nil {
		return time.Time{}, false
	}
	return time.Unix(0, attr.CreationTime.Nanoseconds()), true
}
