package hclloader_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vk/tagscan/internal/config"
	"github.com/vk/tagscan/internal/hclloader"
	"github.com/vk/tagscan/internal/testutil"
)

func TestLoad_FullManifest(t *testing.T) {
	root := testutil.WriteTree(t, map[string]string{
		"base/manifest.hcl": `
inspector "base_source" {
  kind     = "source"
  requires = ["language"]
}
`,
		"todo/manifest.hcl": `
inspector "todo" {
  description = "Counts open work markers."
  kind        = "source"
  extends     = "base_source"
  handler     = "OnInspectTodo"
  requires    = ["loc"]
  needs       = ["complexity"]
  produces    = ["todo"]

  condition {
    tag      = "loc"
    operator = "greater_than"
    value    = "0"
    type     = "integer"
  }
}
`,
	})

	model, err := hclloader.NewLoader().Load(testutil.Context(), root)
	require.NoError(t, err)
	require.Len(t, model.Inspectors, 2)

	base := model.Inspectors["base_source"]
	require.NotNil(t, base)
	assert.False(t, base.Runnable())
	assert.Equal(t, config.KindSource, base.Kind)
	assert.Equal(t, []string{"language"}, base.Requires)

	todo := model.Inspectors["todo"]
	require.NotNil(t, todo)
	assert.True(t, todo.Runnable())
	assert.Equal(t, "OnInspectTodo", todo.Handler)
	assert.Equal(t, "base_source", todo.Extends)
	assert.Equal(t, []string{"loc"}, todo.Requires)
	assert.Equal(t, []string{"complexity"}, todo.Needs)
	require.Len(t, todo.Conditions, 1)
	assert.Equal(t, "loc", todo.Conditions[0].Tag)
	assert.Equal(t, "greater_than", todo.Conditions[0].Operator)
	assert.Equal(t, "0", todo.Conditions[0].Value)
	assert.Equal(t, "integer", todo.Conditions[0].Type)
}

func TestLoad_DefaultsKindToAny(t *testing.T) {
	root := testutil.WriteTree(t, map[string]string{
		"m.hcl": `
inspector "language" {
  handler = "OnInspectLanguage"
}
`,
	})

	model, err := hclloader.NewLoader().Load(testutil.Context(), root)
	require.NoError(t, err)
	assert.Equal(t, config.KindAny, model.Inspectors["language"].Kind)
}

func TestLoad_RejectsRedefinition(t *testing.T) {
	root := testutil.WriteTree(t, map[string]string{
		"a.hcl": `inspector "loc" { handler = "OnA" }`,
		"b.hcl": `inspector "loc" { handler = "OnB" }`,
	})

	_, err := hclloader.NewLoader().Load(testutil.Context(), root)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "redefined")
}

func TestLoad_RejectsMalformedHCL(t *testing.T) {
	root := testutil.WriteTree(t, map[string]string{
		"broken.hcl": `inspector "loc" {`,
	})

	_, err := hclloader.NewLoader().Load(testutil.Context(), root)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse HCL file")
}

func TestLoad_EmptyDirectoryYieldsEmptyModel(t *testing.T) {
	root := testutil.WriteTree(t, map[string]string{})

	model, err := hclloader.NewLoader().Load(testutil.Context(), root)
	require.NoError(t, err)
	assert.Empty(t, model.Inspectors)
}
