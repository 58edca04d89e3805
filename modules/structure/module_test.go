package structure

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vk/tagscan/internal/catalog"
	"github.com/vk/tagscan/internal/item"
	"github.com/vk/tagscan/internal/testutil"
)

const sampleSource = `package sample

type Widget struct {
	Name string
}

type Renderer interface {
	Render() string
}

func NewWidget(name string) *Widget {
	return &Widget{Name: name}
}

func (w *Widget) Render() string {
	return w.Name
}
`

func TestOnInspectStructure(t *testing.T) {
	root := testutil.WriteTree(t, map[string]string{"sample.go": sampleSource})
	it := item.New("sample.go", filepath.Join(root, "sample.go"), item.KindSource, time.Now())

	v, err := OnInspectStructure(testutil.Context(), it)
	require.NoError(t, err)
	assert.Equal(t, "2 functions, 2 types", v.AsString())

	functions, ok := it.IntTag(catalog.StructureFunctions)
	require.True(t, ok)
	assert.Equal(t, int64(2), functions)

	types, ok := it.IntTag(catalog.StructureTypes)
	require.True(t, ok)
	assert.Equal(t, int64(2), types)
}

func TestOnInspectStructure_EmptyFile(t *testing.T) {
	root := testutil.WriteTree(t, map[string]string{"empty.go": "package empty\n"})
	it := item.New("empty.go", filepath.Join(root, "empty.go"), item.KindSource, time.Now())

	v, err := OnInspectStructure(testutil.Context(), it)
	require.NoError(t, err)
	assert.Equal(t, "0 functions, 0 types", v.AsString())
}
