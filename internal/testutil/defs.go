package testutil

import (
	"github.com/vk/tagscan/internal/config"
)

// Def builds an inspector definition with sensible test defaults: kind
// any, runnable via a handler named after the inspector. Options mutate
// the definition in place.
func Def(name string, opts ...DefOption) *config.InspectorDefinition {
	def := &config.InspectorDefinition{
		Name:    name,
		Kind:    config.KindAny,
		Handler: "On" + name,
	}
	for _, opt := range opts {
		opt(def)
	}
	return def
}

// DefOption mutates a definition under construction.
type DefOption func(*config.InspectorDefinition)

// Abstract clears the handler, marking the definition as a pure extends
// target.
func Abstract() DefOption {
	return func(d *config.InspectorDefinition) { d.Handler = "" }
}

// Handler overrides the default handler name.
func Handler(name string) DefOption {
	return func(d *config.InspectorDefinition) { d.Handler = name }
}

// Kind sets the item kind constraint.
func Kind(k config.ItemKind) DefOption {
	return func(d *config.InspectorDefinition) { d.Kind = k }
}

// Extends sets the inheritance parent.
func Extends(parent string) DefOption {
	return func(d *config.InspectorDefinition) { d.Extends = parent }
}

// Requires appends tag-presence dependencies.
func Requires(tags ...string) DefOption {
	return func(d *config.InspectorDefinition) { d.Requires = append(d.Requires, tags...) }
}

// Needs appends inspector-level dependencies.
func Needs(names ...string) DefOption {
	return func(d *config.InspectorDefinition) { d.Needs = append(d.Needs, names...) }
}

// Produces appends output tags.
func Produces(tags ...string) DefOption {
	return func(d *config.InspectorDefinition) { d.Produces = append(d.Produces, tags...) }
}

// Condition appends a raw condition definition.
func Condition(tag, operator, value, typ string) DefOption {
	return func(d *config.InspectorDefinition) {
		d.Conditions = append(d.Conditions, &config.ConditionDefinition{
			Tag:      tag,
			Operator: operator,
			Value:    value,
			Type:     typ,
		})
	}
}

// Defs collects definitions into the map shape the resolver and
// registry consume.
func Defs(defs ...*config.InspectorDefinition) map[string]*config.InspectorDefinition {
	out := make(map[string]*config.InspectorDefinition, len(defs))
	for _, d := range defs {
		out[d.Name] = d
	}
	return out
}
