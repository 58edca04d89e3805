package loc

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vk/tagscan/internal/item"
	"github.com/vk/tagscan/internal/tagval"
	"github.com/vk/tagscan/internal/testutil"
)

func TestOnInspectLoc(t *testing.T) {
	root := testutil.WriteTree(t, map[string]string{
		"three.go":       "a\nb\nc\n",
		"no_newline.go":  "a\nb\nc",
		"empty.go":       "",
		"single_line.go": "package x",
	})

	testCases := []struct {
		file     string
		expected int64
	}{
		{file: "three.go", expected: 3},
		{file: "no_newline.go", expected: 3},
		{file: "empty.go", expected: 0},
		{file: "single_line.go", expected: 1},
	}

	for _, tc := range testCases {
		t.Run(tc.file, func(t *testing.T) {
			it := item.New(tc.file, filepath.Join(root, tc.file), item.KindSource, time.Now())
			v, err := OnInspectLoc(testutil.Context(), it)
			require.NoError(t, err)
			got, ok := tagval.AsInt(v)
			require.True(t, ok)
			assert.Equal(t, tc.expected, got)
		})
	}

	t.Run("unreadable file errors", func(t *testing.T) {
		it := item.New("gone.go", filepath.Join(root, "gone.go"), item.KindSource, time.Now())
		_, err := OnInspectLoc(testutil.Context(), it)
		assert.Error(t, err)
	})
}
