package discovery_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vk/tagscan/internal/discovery"
	"github.com/vk/tagscan/internal/item"
	"github.com/vk/tagscan/internal/testutil"
)

func TestScan(t *testing.T) {
	root := testutil.WriteTree(t, map[string]string{
		"main.go":             "package main\n",
		"lib/util.py":         "pass\n",
		"assets/logo.png":     "\x89PNG",
		"README.md":           "# readme\n",
		".hidden":             "secret",
		".git/config":         "[core]\n",
		"node_modules/x/y.js": "ignored\n",
	})

	items, err := discovery.Scan(testutil.Context(), root)
	require.NoError(t, err)

	ids := make([]string, 0, len(items))
	kinds := make(map[string]item.Kind)
	for _, it := range items {
		ids = append(ids, it.ID())
		kinds[it.ID()] = it.Kind()
	}

	// Sorted, slash-separated, dot and vendor directories pruned.
	assert.Equal(t, []string{"README.md", "assets/logo.png", "lib/util.py", "main.go"}, ids)
	assert.Equal(t, item.KindSource, kinds["main.go"])
	assert.Equal(t, item.KindSource, kinds["lib/util.py"])
	assert.Equal(t, item.KindBinary, kinds["assets/logo.png"])
	assert.Equal(t, item.KindOther, kinds["README.md"])
}

func TestScan_HonorsGitignore(t *testing.T) {
	root := testutil.WriteTree(t, map[string]string{
		".gitignore":     "build/\n*.log\n",
		"main.go":        "package main\n",
		"build/out.go":   "package out\n",
		"trace.log":      "noise",
		"docs/notes.txt": "keep\n",
	})

	items, err := discovery.Scan(testutil.Context(), root)
	require.NoError(t, err)

	ids := make([]string, 0, len(items))
	for _, it := range items {
		ids = append(ids, it.ID())
	}
	assert.Equal(t, []string{"docs/notes.txt", "main.go"}, ids)
}

func TestScan_EmptyRoot(t *testing.T) {
	root := testutil.WriteTree(t, map[string]string{})
	items, err := discovery.Scan(testutil.Context(), root)
	require.NoError(t, err)
	assert.Empty(t, items)
}
