package registry_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zclconf/go-cty/cty"

	"github.com/vk/tagscan/internal/config"
	"github.com/vk/tagscan/internal/inspector"
	"github.com/vk/tagscan/internal/item"
	"github.com/vk/tagscan/internal/registry"
	"github.com/vk/tagscan/internal/testutil"
)

func noopFn(ctx context.Context, it *item.Item) (cty.Value, error) {
	return cty.StringVal("ok"), nil
}

func newRegistry(t *testing.T, defs map[string]*config.InspectorDefinition, handlerNames ...string) *registry.Registry {
	t.Helper()
	r := registry.New()
	for _, name := range handlerNames {
		r.RegisterInspector(name, &registry.RegisteredInspector{Fn: noopFn})
	}
	r.PopulateDefinitionsFromModel(&config.Model{Inspectors: defs})
	return r
}

func TestRegisterInspector_Panics(t *testing.T) {
	t.Run("duplicate name", func(t *testing.T) {
		r := registry.New()
		r.RegisterInspector("OnLoc", &registry.RegisteredInspector{Fn: noopFn})
		assert.Panics(t, func() {
			r.RegisterInspector("OnLoc", &registry.RegisteredInspector{Fn: noopFn})
		})
	})

	t.Run("missing decorate func", func(t *testing.T) {
		r := registry.New()
		assert.Panics(t, func() {
			r.RegisterInspector("OnLoc", &registry.RegisteredInspector{})
		})
	})
}

func TestPopulateDefinitions_FoldsNameIntoProduces(t *testing.T) {
	defs := testutil.Defs(
		testutil.Def("loc", testutil.Handler("Onloc")),
		testutil.Def("base", testutil.Abstract(), testutil.Produces("language")),
	)
	r := newRegistry(t, defs, "Onloc")

	def, ok := r.Definition("loc")
	require.True(t, ok)
	assert.Contains(t, def.Produces, "loc")

	// Abstract bases are never scheduled, so their name is not a tag.
	base, ok := r.Definition("base")
	require.True(t, ok)
	assert.NotContains(t, base.Produces, "base")
}

func TestValidate_Passes(t *testing.T) {
	defs := testutil.Defs(
		testutil.Def("language", testutil.Handler("OnLanguage"), testutil.Kind(config.KindSource)),
		testutil.Def("loc", testutil.Handler("OnLoc"), testutil.Requires("language"),
			testutil.Condition("language", "not_equals", "binary", "string")),
	)
	r := newRegistry(t, defs, "OnLanguage", "OnLoc")

	require.NoError(t, r.Validate(testutil.Context()))
}

func TestValidate_CollectsErrors(t *testing.T) {
	testCases := []struct {
		name     string
		defs     map[string]*config.InspectorDefinition
		handlers []string
		errText  string
	}{
		{
			name:     "handler missing for manifest",
			defs:     testutil.Defs(testutil.Def("loc", testutil.Handler("OnLoc"))),
			handlers: nil,
			errText:  "not registered",
		},
		{
			name:     "handler with no manifest",
			defs:     testutil.Defs(),
			handlers: []string{"OnOrphan"},
			errText:  "no manifest refers to it",
		},
		{
			name:     "runnable name outside catalog",
			defs:     testutil.Defs(testutil.Def("mystery", testutil.Handler("OnMystery"))),
			handlers: []string{"OnMystery"},
			errText:  "not a canonical catalog tag",
		},
		{
			name: "requires unknown tag",
			defs: testutil.Defs(testutil.Def("loc", testutil.Handler("OnLoc"),
				testutil.Requires("no.such.tag"))),
			handlers: []string{"OnLoc"},
			errText:  "requires unknown tag",
		},
		{
			name: "produces unknown tag",
			defs: testutil.Defs(testutil.Def("loc", testutil.Handler("OnLoc"),
				testutil.Produces("no.such.tag"))),
			handlers: []string{"OnLoc"},
			errText:  "produces unknown tag",
		},
		{
			name: "needs unknown inspector",
			defs: testutil.Defs(testutil.Def("loc", testutil.Handler("OnLoc"),
				testutil.Needs("ghost"))),
			handlers: []string{"OnLoc"},
			errText:  "needs unknown inspector",
		},
		{
			name: "unknown kind",
			defs: testutil.Defs(testutil.Def("loc", testutil.Handler("OnLoc"),
				testutil.Kind(config.ItemKind("jar")))),
			handlers: []string{"OnLoc"},
			errText:  "unknown kind",
		},
		{
			name: "invalid condition",
			defs: testutil.Defs(testutil.Def("loc", testutil.Handler("OnLoc"),
				testutil.Condition("language", "contains", "1", "integer"))),
			handlers: []string{"OnLoc"},
			errText:  "not valid for type",
		},
		{
			name: "extends cycle",
			defs: testutil.Defs(
				testutil.Def("loc", testutil.Handler("OnLoc"), testutil.Extends("todo")),
				testutil.Def("todo", testutil.Handler("OnTodo"), testutil.Extends("loc")),
			),
			handlers: []string{"OnLoc", "OnTodo"},
			errText:  "extends cycle",
		},
		{
			name: "needs cycle",
			defs: testutil.Defs(
				testutil.Def("loc", testutil.Handler("OnLoc"), testutil.Needs("todo")),
				testutil.Def("todo", testutil.Handler("OnTodo"), testutil.Needs("loc")),
			),
			handlers: []string{"OnLoc", "OnTodo"},
			errText:  "needs cycle",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			r := newRegistry(t, tc.defs, tc.handlers...)
			err := r.Validate(testutil.Context())
			require.Error(t, err)
			assert.Contains(t, err.Error(), "registry validation failed")
			assert.Contains(t, err.Error(), tc.errText)
		})
	}
}

func TestOrdered_FollowsRegistrationOrder(t *testing.T) {
	defs := testutil.Defs(
		testutil.Def("todo", testutil.Handler("OnTodo")),
		testutil.Def("language", testutil.Handler("OnLanguage")),
		testutil.Def("loc", testutil.Handler("OnLoc")),
		testutil.Def("base", testutil.Abstract()),
	)
	r := newRegistry(t, defs, "OnLanguage", "OnLoc", "OnTodo")

	ordered := r.Ordered()
	require.Len(t, ordered, 3)
	assert.Equal(t, "language", ordered[0].Name)
	assert.Equal(t, "loc", ordered[1].Name)
	assert.Equal(t, "todo", ordered[2].Name)
}

func TestSimpleModule_Registers(t *testing.T) {
	r := registry.New()
	mod := &testutil.SimpleModule{
		HandlerName: "OnLoc",
		Fn:          noopFn,
		Supports: func(it *item.Item) bool {
			return it.Kind() == item.KindSource
		},
	}
	mod.Register(r)

	h, ok := r.Handler("OnLoc")
	require.True(t, ok)
	assert.NotNil(t, h.Fn)
	assert.NotNil(t, h.Supports)
}

var _ inspector.DecorateFunc = noopFn
