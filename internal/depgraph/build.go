package depgraph

import (
	"context"
	"fmt"
	"sort"

	"github.com/vk/tagscan/internal/config"
	"github.com/vk/tagscan/internal/ctxlog"
	"github.com/vk/tagscan/internal/resolver"
)

// Build constructs the dependency graph from the registered inspector
// definitions. Only runnable inspectors become vertices; abstract bases
// contribute through the resolver's flattened metadata. The result is
// independent of map iteration order.
func Build(ctx context.Context, defs map[string]*config.InspectorDefinition, res *resolver.Resolver) (*Graph, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Build: starting graph construction.")

	graph := newGraph()

	names := make([]string, 0, len(defs))
	for name, def := range defs {
		if def.Runnable() {
			names = append(names, name)
		}
	}
	sort.Strings(names)

	// First pass: vertices plus producer/consumer maps.
	for _, name := range names {
		graph.addNode(name)

		produces, err := res.ProducesOf(name)
		if err != nil {
			return nil, fmt.Errorf("error resolving produces of '%s': %w", name, err)
		}
		for _, tag := range produces {
			graph.producers[tag] = append(graph.producers[tag], name)
		}

		resolved, err := res.Resolve(name)
		if err != nil {
			return nil, fmt.Errorf("error resolving requirements of '%s': %w", name, err)
		}
		for _, tag := range resolved.Requires {
			graph.consumers[tag] = append(graph.consumers[tag], name)
		}
	}
	logger.Debug("Build: node creation complete.", "node_count", len(graph.nodes))

	// Second pass: one edge per (tag, producer, consumer) triple.
	for _, tag := range sortedKeys(graph.producers) {
		for _, producer := range graph.producers[tag] {
			for _, consumer := range graph.consumers[tag] {
				if producer == consumer {
					continue
				}
				if err := graph.addEdge(Edge{Tag: tag, Producer: producer, Consumer: consumer}); err != nil {
					return nil, fmt.Errorf("error linking graph: %w", err)
				}
			}
		}
	}
	logger.Debug("Build: edge linking complete.", "edge_count", len(graph.edges))

	return graph, nil
}
