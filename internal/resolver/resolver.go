// Package resolver computes, per inspector, the full set of required
// tags and typed conditions: the inspector's own declarations unioned
// with everything inherited along its extends chain, with `needs`
// entries substituted by the referenced inspector's produces set.
//
// Resolution is deterministic and cached for the process lifetime. The
// cache is safe for concurrent use with compute-once-per-key semantics.
package resolver

import (
	"fmt"
	"sort"
	"sync"

	"github.com/vk/tagscan/internal/condition"
	"github.com/vk/tagscan/internal/config"
)

// Resolved is the flattened requirement contract of one inspector.
type Resolved struct {
	// Requires is the sorted union of simple tag dependencies, own and
	// inherited, including substituted needs.
	Requires []string
	// Conditions is the union of typed predicates along the chain.
	Conditions []*condition.Condition
}

// Resolver resolves inspector definitions against a fixed model.
type Resolver struct {
	defs map[string]*config.InspectorDefinition

	mu    sync.Mutex
	cache map[string]*Resolved
}

// New creates a resolver over the given definitions. A nil map is a
// programming error.
func New(defs map[string]*config.InspectorDefinition) *Resolver {
	if defs == nil {
		panic("resolver: nil definition map")
	}
	return &Resolver{
		defs:  defs,
		cache: make(map[string]*Resolved),
	}
}

// Resolve returns the flattened requirements for the named inspector.
// The result is computed once per name and shared; callers must not
// mutate it.
func (r *Resolver) Resolve(name string) (*Resolved, error) {
	if name == "" {
		panic("resolver: empty inspector name")
	}

	// The lock is held across the computation. Resolution is cheap and
	// write-once per name, so compute-once matters more than compute
	// concurrency here.
	r.mu.Lock()
	defer r.mu.Unlock()

	if cached, ok := r.cache[name]; ok {
		return cached, nil
	}

	resolved, err := r.resolve(name)
	if err != nil {
		return nil, err
	}
	r.cache[name] = resolved
	return resolved, nil
}

// InvalidateCache drops every cached resolution.
func (r *Resolver) InvalidateCache() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.cache = make(map[string]*Resolved)
}

func (r *Resolver) resolve(name string) (*Resolved, error) {
	chain, err := r.extendsChain(name)
	if err != nil {
		return nil, err
	}

	requires := make(map[string]struct{})
	var conds []*condition.Condition
	condSeen := make(map[string]struct{})

	for _, def := range chain {
		for _, tag := range def.Requires {
			requires[tag] = struct{}{}
		}
		for _, need := range def.Needs {
			produces, err := r.producesOf(need)
			if err != nil {
				return nil, fmt.Errorf("inspector %q: %w", name, err)
			}
			for _, tag := range produces {
				requires[tag] = struct{}{}
			}
		}
		for _, raw := range def.Conditions {
			c, err := condition.FromDefinition(raw)
			if err != nil {
				return nil, fmt.Errorf("inspector %q: %w", def.Name, err)
			}
			key := c.Tag + "\x00" + string(c.Operator) + "\x00" + c.Value + "\x00" + string(c.Type)
			if _, dup := condSeen[key]; dup {
				continue
			}
			condSeen[key] = struct{}{}
			conds = append(conds, c)
		}
	}

	out := &Resolved{
		Requires:   make([]string, 0, len(requires)),
		Conditions: conds,
	}
	for tag := range requires {
		out.Requires = append(out.Requires, tag)
	}
	sort.Strings(out.Requires)
	return out, nil
}

// extendsChain returns the definitions from the most general ancestor
// down to the named definition, failing fast on unknown references and
// extends cycles.
func (r *Resolver) extendsChain(name string) ([]*config.InspectorDefinition, error) {
	var chain []*config.InspectorDefinition
	seen := make(map[string]struct{})
	for current := name; current != ""; {
		if _, cyclic := seen[current]; cyclic {
			return nil, fmt.Errorf("extends cycle detected involving inspector %q", current)
		}
		seen[current] = struct{}{}

		def, ok := r.defs[current]
		if !ok {
			if current == name {
				return nil, fmt.Errorf("unknown inspector %q", current)
			}
			return nil, fmt.Errorf("inspector %q extends unknown inspector %q", name, current)
		}
		chain = append(chain, def)
		current = def.Extends
	}

	// The walk collected leaf-first; metadata accumulation is specified
	// root-to-leaf.
	for i, j := 0, len(chain)-1; i < j; i, j = i+1, j-1 {
		chain[i], chain[j] = chain[j], chain[i]
	}
	return chain, nil
}

// producesOf returns the produces contract of the named inspector: the
// union of declared produces along its extends chain plus, for runnable
// definitions, the inspector's own name. A `needs` entry is exactly a
// requirement on these tags; it does not recurse into the referenced
// inspector's own needs, so needs expansion cannot loop.
func (r *Resolver) producesOf(name string) ([]string, error) {
	chain, err := r.extendsChain(name)
	if err != nil {
		return nil, fmt.Errorf("needs reference: %w", err)
	}

	set := make(map[string]struct{})
	for _, def := range chain {
		for _, tag := range def.Produces {
			set[tag] = struct{}{}
		}
	}
	leaf := chain[len(chain)-1]
	if leaf.Runnable() {
		set[leaf.Name] = struct{}{}
	}

	out := make([]string, 0, len(set))
	for tag := range set {
		out = append(out, tag)
	}
	sort.Strings(out)
	return out, nil
}

// ProducesOf exposes the produces contract for the registry and the
// dependency-graph analyzer.
func (r *Resolver) ProducesOf(name string) ([]string, error) {
	return r.producesOf(name)
}
