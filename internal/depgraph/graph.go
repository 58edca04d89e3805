package depgraph

import (
	"fmt"
	"sort"
	"sync"
)

// Edge is one producer→consumer relationship, labelled with the tag
// that carries it.
type Edge struct {
	Tag      string
	Producer string
	Consumer string
}

// Graph is the static inspector dependency graph. All operations on the
// graph are concurrency-safe.
type Graph struct {
	mutex sync.RWMutex
	nodes map[string]*node
	edges []Edge

	// producers and consumers map tag name to the sorted inspector
	// names that declare it in produces / requires respectively.
	producers map[string][]string
	consumers map[string][]string
}

// node is a single vertex. Unexported to force interaction through the
// public API using inspector names.
type node struct {
	id string
	// deps holds the producers this inspector consumes from.
	deps map[string]*node
	// dependents holds the consumers of this inspector's tags.
	dependents map[string]*node
}

// newGraph returns an initialized, empty Graph.
func newGraph() *Graph {
	return &Graph{
		nodes:     make(map[string]*node),
		producers: make(map[string][]string),
		consumers: make(map[string][]string),
	}
}

func (g *Graph) addNode(id string) {
	if _, ok := g.nodes[id]; ok {
		return
	}
	g.nodes[id] = &node{
		id:         id,
		deps:       make(map[string]*node),
		dependents: make(map[string]*node),
	}
}

func (g *Graph) addEdge(e Edge) error {
	if e.Producer == e.Consumer {
		return fmt.Errorf("self-referential edge not allowed: %s -> %s", e.Producer, e.Producer)
	}
	from, ok := g.nodes[e.Producer]
	if !ok {
		return fmt.Errorf("producer node not found: %s", e.Producer)
	}
	to, ok := g.nodes[e.Consumer]
	if !ok {
		return fmt.Errorf("consumer node not found: %s", e.Consumer)
	}
	to.deps[e.Producer] = from
	from.dependents[e.Consumer] = to
	g.edges = append(g.edges, e)
	return nil
}

// Nodes returns every inspector name in the graph, sorted.
func (g *Graph) Nodes() []string {
	g.mutex.RLock()
	defer g.mutex.RUnlock()
	out := make([]string, 0, len(g.nodes))
	for id := range g.nodes {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}

// Edges returns every edge, sorted by tag, producer, consumer.
func (g *Graph) Edges() []Edge {
	g.mutex.RLock()
	defer g.mutex.RUnlock()
	out := make([]Edge, len(g.edges))
	copy(out, g.edges)
	sort.Slice(out, func(i, j int) bool {
		if out[i].Tag != out[j].Tag {
			return out[i].Tag < out[j].Tag
		}
		if out[i].Producer != out[j].Producer {
			return out[i].Producer < out[j].Producer
		}
		return out[i].Consumer < out[j].Consumer
	})
	return out
}

// Producers returns the tag→producers map. Slices are sorted copies.
func (g *Graph) Producers() map[string][]string {
	g.mutex.RLock()
	defer g.mutex.RUnlock()
	return copyTagMap(g.producers)
}

// Consumers returns the tag→consumers map. Slices are sorted copies.
func (g *Graph) Consumers() map[string][]string {
	g.mutex.RLock()
	defer g.mutex.RUnlock()
	return copyTagMap(g.consumers)
}

// Dependencies returns the sorted producer names the given inspector
// consumes from.
func (g *Graph) Dependencies(id string) ([]string, error) {
	g.mutex.RLock()
	defer g.mutex.RUnlock()
	n, ok := g.nodes[id]
	if !ok {
		return nil, fmt.Errorf("node not found: %s", id)
	}
	return sortedKeys(n.deps), nil
}

// Dependents returns the sorted consumer names that depend on the given
// inspector's tags.
func (g *Graph) Dependents(id string) ([]string, error) {
	g.mutex.RLock()
	defer g.mutex.RUnlock()
	n, ok := g.nodes[id]
	if !ok {
		return nil, fmt.Errorf("node not found: %s", id)
	}
	return sortedKeys(n.dependents), nil
}

// DetectCycles checks the graph for cycles using depth-first search
// with temporary and permanent marks. It returns a non-nil error naming
// the first node found to be involved in a cycle.
func (g *Graph) DetectCycles() error {
	g.mutex.RLock()
	defer g.mutex.RUnlock()

	permanent := make(map[string]bool)
	temporary := make(map[string]bool)

	var visit func(n *node) error
	visit = func(n *node) error {
		if permanent[n.id] {
			return nil
		}
		if temporary[n.id] {
			return fmt.Errorf("cycle detected involving inspector '%s'", n.id)
		}
		temporary[n.id] = true
		for _, id := range sortedKeys(n.dependents) {
			if err := visit(n.dependents[id]); err != nil {
				return err
			}
		}
		delete(temporary, n.id)
		permanent[n.id] = true
		return nil
	}

	for _, id := range sortedKeys(g.nodes) {
		if !permanent[id] {
			if err := visit(g.nodes[id]); err != nil {
				return err
			}
		}
	}
	return nil
}

func copyTagMap(in map[string][]string) map[string][]string {
	out := make(map[string][]string, len(in))
	for tag, names := range in {
		cp := make([]string, len(names))
		copy(cp, names)
		sort.Strings(cp)
		out[tag] = cp
	}
	return out
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
