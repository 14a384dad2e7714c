package parser

import (
	"github.com/gnana997/widgetspec/pkg/util"
)

// getPoolSize returns the number of parsers per grammar.
//
// A positive override wins; otherwise the size follows
// util.GetOptimalPoolSize so that batch workers never wait on a parser.
func getPoolSize(override int) int {
	return util.GetOptimalPoolSizeWithOverride(override)
}
