package diagnostics

import (
	"fmt"
	"runtime"
	"strings"
)

const bytesPerMB = 1024 * 1024

// Host describes the operating system the module runs on.
type Host struct {
	Name    string
	Release string
	Machine string
}

// String formats the host as "name release (machine)", dropping empty parts.
func (h Host) String() string {
	s := strings.TrimSpace(h.Name + " " + h.Release)
	if h.Machine != "" {
		s += " (" + h.Machine + ")"
	}
	return s
}

// SystemInfo returns a pipe separated summary of the runtime environment:
//
//	Go Module Active|OS: linux 6.1.0 (x86_64)|Go: go1.24.6|Processors: 8|Memory: 3 MB
//
// Memory is the live heap of this process.
func SystemInfo() string {
	var ms runtime.MemStats
	runtime.ReadMemStats(&ms)

	return strings.Join([]string{
		"Go Module Active",
		"OS: " + hostInfo().String(),
		"Go: " + runtime.Version(),
		fmt.Sprintf("Processors: %d", runtime.NumCPU()),
		fmt.Sprintf("Memory: %d MB", ms.HeapAlloc/bytesPerMB),
	}, "|")
}
