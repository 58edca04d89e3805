package config

// Model is the unified, format-agnostic representation of the entire
// inspector catalog loaded from manifests.
type Model struct {
	Inspectors map[string]*InspectorDefinition
}

// NewModel returns an empty model.
func NewModel() *Model {
	return &Model{Inspectors: make(map[string]*InspectorDefinition)}
}

// InspectorDefinition is the format-agnostic representation of one
// `inspector` manifest block: the declarative metadata contract of a
// single analysis unit.
type InspectorDefinition struct {
	// Name is the inspector's unique name. It doubles as the tag the
	// engine stores the inspector's result under, so it must be a
	// canonical catalog tag for runnable inspectors.
	Name        string
	Description string

	// Kind constrains which items the inspector accepts.
	Kind ItemKind

	// Extends names another definition whose metadata is inherited.
	// Metadata along the extends chain is always unioned, never
	// overridden.
	Extends string

	// Handler is the registered Go handler name. Empty marks an
	// abstract base definition: a valid extends target that is never
	// scheduled.
	Handler string

	// Requires are simple tag-presence dependencies.
	Requires []string
	// Needs are indirect dependencies on other inspectors, resolved by
	// substituting the referenced inspector's produces set.
	Needs []string
	// Produces is the contract of what this inspector sets on success.
	// The inspector's own name is always an implicit member.
	Produces []string
	// Conditions are typed predicates beyond mere tag presence.
	Conditions []*ConditionDefinition
}

// Runnable reports whether the definition describes a schedulable
// inspector rather than an abstract base.
func (d *InspectorDefinition) Runnable() bool {
	return d.Handler != ""
}

// ItemKind is the manifest-declared capability class of an inspector.
type ItemKind string

const (
	// KindSource restricts an inspector to source items.
	KindSource ItemKind = "source"
	// KindBinary restricts an inspector to binary items.
	KindBinary ItemKind = "binary"
	// KindAny accepts every item.
	KindAny ItemKind = "any"
)

// ConditionDefinition is the raw, untyped form of a tag condition as it
// appears in a manifest. The condition package gives it typed meaning
// and validates the operator/type pairing.
type ConditionDefinition struct {
	Tag      string
	Operator string
	Value    string
	Type     string
}
