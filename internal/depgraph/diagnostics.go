package depgraph

import (
	"sort"
	"strings"
)

// UnusedTags returns the tags some inspector produces but no inspector
// consumes: orphaned outputs in the catalog design.
func (g *Graph) UnusedTags() []string {
	g.mutex.RLock()
	defer g.mutex.RUnlock()

	var unused []string
	for tag := range g.producers {
		if _, consumed := g.consumers[tag]; !consumed {
			unused = append(unused, tag)
		}
	}
	sort.Strings(unused)
	return unused
}

// noiseWords are fragments that distinguish tag spellings without
// distinguishing their meaning. "detecteds" precedes "detected" so the
// plural form is not left with a dangling s.
var noiseWords = []string{"detecteds", "detected", "found", "usage", "pattern"}

// normalizeTag collapses a tag name to its semantic core: lowercase,
// separators stripped, noise words removed.
func normalizeTag(tag string) string {
	s := strings.ToLower(tag)
	s = strings.NewReplacer(".", "", "_", "", "-", "").Replace(s)
	for _, word := range noiseWords {
		s = strings.ReplaceAll(s, word, "")
	}
	return s
}

// DuplicateGroups returns groups of distinct tags that collapse to the
// same normalized key: accidental synonyms like "java.detected" and
// "javaDetected". Only groups of two or more are reported. Groups and
// their members are sorted.
func (g *Graph) DuplicateGroups() [][]string {
	g.mutex.RLock()
	defer g.mutex.RUnlock()

	byKey := make(map[string][]string)
	seen := make(map[string]struct{})
	collect := func(tag string) {
		if _, dup := seen[tag]; dup {
			return
		}
		seen[tag] = struct{}{}
		key := normalizeTag(tag)
		byKey[key] = append(byKey[key], tag)
	}
	for tag := range g.producers {
		collect(tag)
	}
	for tag := range g.consumers {
		collect(tag)
	}

	var groups [][]string
	for _, members := range byKey {
		if len(members) < 2 {
			continue
		}
		sort.Strings(members)
		groups = append(groups, members)
	}
	sort.Slice(groups, func(i, j int) bool { return groups[i][0] < groups[j][0] })
	return groups
}

// Chains enumerates simple paths through the graph starting from every
// vertex with no dependencies, and returns those with at least minLen
// vertices. A per-path visited set prevents revisiting a vertex within
// one path, which keeps the traversal safe even in the presence of
// cycles without mutating state shared across branches.
func (g *Graph) Chains(minLen int) [][]string {
	g.mutex.RLock()
	defer g.mutex.RUnlock()

	var roots []string
	for id, n := range g.nodes {
		if len(n.deps) == 0 {
			roots = append(roots, id)
		}
	}
	sort.Strings(roots)

	var chains [][]string
	for _, root := range roots {
		visited := map[string]bool{root: true}
		g.walkChains(g.nodes[root], []string{root}, visited, minLen, &chains)
	}
	return chains
}

func (g *Graph) walkChains(n *node, path []string, visited map[string]bool, minLen int, chains *[][]string) {
	extended := false
	for _, id := range sortedKeys(n.dependents) {
		if visited[id] {
			continue
		}
		extended = true
		visited[id] = true
		g.walkChains(n.dependents[id], append(path, id), visited, minLen, chains)
		delete(visited, id)
	}
	// Only maximal paths are recorded; every prefix of a long chain
	// would otherwise be reported as well.
	if !extended && len(path) >= minLen {
		chain := make([]string, len(path))
		copy(chain, path)
		*chains = append(*chains, chain)
	}
}
