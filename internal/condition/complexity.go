package condition

import "strings"

// Complexity levels, in ordinal order. Ordered comparisons on the
// complexity type map both sides onto this scale.
var ComplexityLevels = []string{"NONE", "LOW", "MEDIUM", "HIGH", "CRITICAL"}

// defaultComplexityIndex is the ordinal assumed for strings that are
// not on the scale. Treating unknowns as MEDIUM keeps a bad value from
// pinning a condition permanently true or false.
const defaultComplexityIndex = 2

// ComplexityIndex maps a level name to its ordinal, case-insensitively.
func ComplexityIndex(level string) int {
	upper := strings.ToUpper(strings.TrimSpace(level))
	for i, name := range ComplexityLevels {
		if name == upper {
			return i
		}
	}
	return defaultComplexityIndex
}
