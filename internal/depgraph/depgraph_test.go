package depgraph_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vk/tagscan/internal/config"
	"github.com/vk/tagscan/internal/depgraph"
	"github.com/vk/tagscan/internal/resolver"
	"github.com/vk/tagscan/internal/testutil"
)

func build(t *testing.T, defs map[string]*config.InspectorDefinition) *depgraph.Graph {
	t.Helper()
	g, err := depgraph.Build(testutil.Context(), defs, resolver.New(defs))
	require.NoError(t, err)
	return g
}

func TestBuild_EdgesPerTag(t *testing.T) {
	defs := testutil.Defs(
		testutil.Def("language"),
		testutil.Def("loc", testutil.Requires("language")),
		testutil.Def("todo", testutil.Requires("language", "loc")),
	)
	g := build(t, defs)

	assert.Equal(t, []string{"language", "loc", "todo"}, g.Nodes())
	assert.Equal(t, []depgraph.Edge{
		{Tag: "language", Producer: "language", Consumer: "loc"},
		{Tag: "language", Producer: "language", Consumer: "todo"},
		{Tag: "loc", Producer: "loc", Consumer: "todo"},
	}, g.Edges())

	deps, err := g.Dependencies("todo")
	require.NoError(t, err)
	assert.Equal(t, []string{"language", "loc"}, deps)

	dependents, err := g.Dependents("language")
	require.NoError(t, err)
	assert.Equal(t, []string{"loc", "todo"}, dependents)
}

func TestBuild_AbstractBasesAreNotVertices(t *testing.T) {
	defs := testutil.Defs(
		testutil.Def("base", testutil.Abstract(), testutil.Requires("language")),
		testutil.Def("language"),
		testutil.Def("loc", testutil.Extends("base")),
	)
	g := build(t, defs)

	assert.Equal(t, []string{"language", "loc"}, g.Nodes())
	// The inherited requirement still produces the edge.
	assert.Equal(t, []depgraph.Edge{
		{Tag: "language", Producer: "language", Consumer: "loc"},
	}, g.Edges())
}

func TestBuild_Deterministic(t *testing.T) {
	defs := testutil.Defs(
		testutil.Def("language"),
		testutil.Def("loc", testutil.Requires("language")),
		testutil.Def("todo", testutil.Requires("loc")),
		testutil.Def("complexity", testutil.Requires("loc")),
		testutil.Def("hotspot", testutil.Requires("todo", "complexity")),
	)

	first := build(t, defs)
	for i := 0; i < 10; i++ {
		again := build(t, defs)
		if diff := cmp.Diff(first.Edges(), again.Edges()); diff != "" {
			t.Fatalf("edge set changed between builds (-first +again):\n%s", diff)
		}
		if diff := cmp.Diff(first.Producers(), again.Producers()); diff != "" {
			t.Fatalf("producer map changed between builds (-first +again):\n%s", diff)
		}
	}
}

func TestUnusedTags(t *testing.T) {
	defs := testutil.Defs(
		testutil.Def("language", testutil.Produces("orphan.output")),
		testutil.Def("loc", testutil.Requires("language")),
	)
	g := build(t, defs)

	// "loc" itself is also produced and never consumed.
	assert.Equal(t, []string{"loc", "orphan.output"}, g.UnusedTags())
}

func TestDuplicateGroups(t *testing.T) {
	defs := testutil.Defs(
		testutil.Def("a", testutil.Produces("java.detected")),
		testutil.Def("b", testutil.Produces("javaDetected"), testutil.Requires("java.detected")),
		testutil.Def("c", testutil.Requires("javaDetected")),
	)
	g := build(t, defs)

	groups := g.DuplicateGroups()
	require.Len(t, groups, 1)
	assert.Equal(t, []string{"java.detected", "javaDetected"}, groups[0])
}

func TestDuplicateGroups_NoisewordNormalization(t *testing.T) {
	defs := testutil.Defs(
		testutil.Def("a", testutil.Produces("lombok_usage")),
		testutil.Def("b", testutil.Produces("lombok.found"), testutil.Requires("lombok_usage")),
	)
	g := build(t, defs)

	groups := g.DuplicateGroups()
	require.Len(t, groups, 1)
	assert.Equal(t, []string{"lombok.found", "lombok_usage"}, groups[0])
}

func TestChains(t *testing.T) {
	defs := testutil.Defs(
		testutil.Def("language"),
		testutil.Def("loc", testutil.Requires("language")),
		testutil.Def("todo", testutil.Requires("loc")),
		testutil.Def("hotspot", testutil.Requires("todo")),
	)
	g := build(t, defs)

	t.Run("maximal chain only", func(t *testing.T) {
		chains := g.Chains(2)
		require.Len(t, chains, 1)
		assert.Equal(t, []string{"language", "loc", "todo", "hotspot"}, chains[0])
	})

	t.Run("min length filters", func(t *testing.T) {
		assert.Len(t, g.Chains(4), 1)
		assert.Empty(t, g.Chains(5))
	})
}

func TestChains_BranchingFanOut(t *testing.T) {
	defs := testutil.Defs(
		testutil.Def("language"),
		testutil.Def("loc", testutil.Requires("language")),
		testutil.Def("todo", testutil.Requires("language")),
	)
	g := build(t, defs)

	chains := g.Chains(2)
	assert.Equal(t, [][]string{
		{"language", "loc"},
		{"language", "todo"},
	}, chains)
}

func TestDetectCycles(t *testing.T) {
	t.Run("acyclic", func(t *testing.T) {
		defs := testutil.Defs(
			testutil.Def("language"),
			testutil.Def("loc", testutil.Requires("language")),
		)
		assert.NoError(t, build(t, defs).DetectCycles())
	})

	t.Run("mutual requirement", func(t *testing.T) {
		defs := testutil.Defs(
			testutil.Def("a", testutil.Requires("b")),
			testutil.Def("b", testutil.Requires("a")),
		)
		err := build(t, defs).DetectCycles()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "cycle detected")
	})
}
