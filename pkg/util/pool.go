package util

import "runtime"

const (
	minPoolSize = 4
	maxPoolSize = 32
)

// GetOptimalPoolSize sizes parser pools and resolver worker pools: twice
// the CPU count, clamped to [4, 32].
//
// Resolution alternates between cgo parsing and Go text scanning, so two
// goroutines per core keep the cores busy. The cap bounds parser memory,
// which grows with every live tree-sitter parser.
func GetOptimalPoolSize() int {
	return min(max(runtime.NumCPU()*2, minPoolSize), maxPoolSize)
}

// GetOptimalPoolSizeWithOverride returns override when positive and
// GetOptimalPoolSize otherwise.
func GetOptimalPoolSizeWithOverride(override int) int {
	if override > 0 {
		return override
	}
	return GetOptimalPoolSize()
}
