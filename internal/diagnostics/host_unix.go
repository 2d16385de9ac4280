//go:build unix

package diagnostics

import (
	"runtime"

	"golang.org/x/sys/unix"
)

// hostInfo reads the kernel identity from uname(2), falling back to the
// build target when the call fails.
func hostInfo() Host {
	var u unix.Utsname
	if err := unix.Uname(&u); err != nil {
		return Host{Name: runtime.GOOS, Machine: runtime.GOARCH}
	}
	return Host{
		Name:    unix.ByteSliceToString(u.Sysname[:]),
		Release: unix.ByteSliceToString(u.Release[:]),
		Machine: unix.ByteSliceToString(u.Machine[:]),
	}
}
