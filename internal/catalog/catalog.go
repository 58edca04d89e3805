// Package catalog is the closed set of canonical tag names.
//
// Every tag referenced by an inspector manifest (requires, needs
// substitution, produces, condition tags) must be declared here.
// Registry validation checks membership eagerly so that a typo in a
// manifest surfaces as a configuration error at startup, not as an
// inspector that silently never becomes eligible.
package catalog

// Canonical tag names. Dot-namespaced, opaque to the engine.
const (
	Language           = "language"
	Loc                = "loc"
	Todo               = "todo"
	Complexity         = "complexity"
	Hotspot            = "hotspot"
	BinKind            = "binkind"
	Structure          = "structure"
	StructureFunctions = "structure.functions"
	StructureTypes     = "structure.types"
)

var names = map[string]struct{}{
	Language:           {},
	Loc:                {},
	Todo:               {},
	Complexity:         {},
	Hotspot:            {},
	BinKind:            {},
	Structure:          {},
	StructureFunctions: {},
	StructureTypes:     {},
}

// Known reports whether name is a declared canonical tag.
func Known(name string) bool {
	_, ok := names[name]
	return ok
}

// All returns every canonical tag name. The returned slice is a copy.
func All() []string {
	out := make([]string, 0, len(names))
	for name := range names {
		out = append(out, name)
	}
	return out
}
