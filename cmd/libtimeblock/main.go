// Command libtimeblock builds the scoring engine as a C shared library:
//
//	go build -buildmode=c-shared -o libtimeblock.so ./cmd/libtimeblock
//
// The generated header declares the exported symbols below. Strings returned
// by get_system_info are allocated with malloc and must be released with
// free_string; the scoring calls allocate nothing the host must free.
package main

/*
#include <stdlib.h>
*/
import "C"

import (
	"unsafe"

	"github.com/okian/timeblock/internal/adapters/cabi"
)

//export calculate_productivity
func calculate_productivity(totalBlocks, totalMinutes C.int) C.double { //nolint:revive // C symbol name
	return C.double(cabi.Default().CalculateProductivity(int32(totalBlocks), int32(totalMinutes)))
}

//export calculate_efficiency
func calculate_efficiency(totalBlocks, totalMinutes C.int) C.double { //nolint:revive // C symbol name
	return C.double(cabi.Default().CalculateEfficiency(int32(totalBlocks), int32(totalMinutes)))
}

//export performance_benchmark
func performance_benchmark() C.double { //nolint:revive // C symbol name
	return C.double(cabi.Default().PerformanceBenchmark())
}

//export get_system_info
func get_system_info() *C.char { //nolint:revive // C symbol name
	info, ok := cabi.Default().SystemInfo()
	if !ok {
		return nil
	}
	return C.CString(info)
}

//export free_string
func free_string(p *C.char) { //nolint:revive // C symbol name
	if p != nil {
		C.free(unsafe.Pointer(p))
	}
}

//export test_function
func test_function() C.int { //nolint:revive // C symbol name
	return C.int(cabi.Ping())
}

// main is required by -buildmode=c-shared and never runs.
func main() {}
