package tagval

import (
	"strings"

	"github.com/zclconf/go-cty/cty"
)

// Merge priorities, lowest to highest. Multiple inspectors may
// contribute to the same tag across passes; a later low-confidence
// result must never clobber an earlier high-confidence one.
const (
	PriorityEmpty       = 1 // null, empty, or not-applicable
	PriorityError       = 2 // error markers
	PriorityPlaceholder = 3 // generic placeholder tokens
	PriorityGeneric     = 4 // any ordinary value
	PrioritySpecific    = 5 // recognized structural tokens and integers
)

// placeholders are generic low-confidence tokens an inspector may emit
// when it could not narrow a fact down.
var placeholders = map[string]struct{}{
	"UNKNOWN":     {},
	"DEFAULT":     {},
	"BOTH":        {},
	"UNSPECIFIED": {},
}

// specificTokens are definitive structural classifications. A value
// matching one of these (case-insensitively) is as trustworthy as a
// parsed integer and must win over any ordinary string.
var specificTokens = map[string]struct{}{
	"EXECUTABLE":    {},
	"SHARED_OBJECT": {},
	"ARCHIVE":       {},
	"SCRIPT":        {},
	"GENERATED":     {},
	"VENDORED":      {},
}

// Priority classifies v on the merge lattice.
func Priority(v cty.Value) int {
	if v.IsNull() || !v.IsKnown() {
		return PriorityEmpty
	}
	if v.Type() == cty.Number {
		if _, ok := AsInt(v); ok {
			return PrioritySpecific
		}
		return PriorityGeneric
	}
	if v.Type() != cty.String {
		return PriorityGeneric
	}
	s := v.AsString()
	switch {
	case s == "" || s == NotApplicable:
		return PriorityEmpty
	case strings.HasPrefix(s, ErrorPrefix):
		return PriorityError
	}
	if _, ok := placeholders[s]; ok {
		return PriorityPlaceholder
	}
	if _, ok := specificTokens[strings.ToUpper(s)]; ok {
		return PrioritySpecific
	}
	if _, ok := AsInt(v); ok {
		return PrioritySpecific
	}
	return PriorityGeneric
}

// Merge resolves a write against an existing value: the higher priority
// wins, and a tie keeps the existing value.
func Merge(existing, incoming cty.Value) cty.Value {
	if existing == cty.NilVal {
		return incoming
	}
	if Priority(incoming) > Priority(existing) {
		return incoming
	}
	return existing
}
