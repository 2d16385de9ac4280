//go:build !unix

package diagnostics

import "runtime"

func hostInfo() Host {
	return Host{Name: runtime.GOOS, Machine: runtime.GOARCH}
}
