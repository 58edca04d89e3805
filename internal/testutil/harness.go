// Package testutil holds shared helpers for tests across the project:
// definition builders, mock inspector modules, filesystem fixtures, and
// a context carrying a test logger.
package testutil

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/vk/tagscan/internal/ctxlog"
)

// Context returns a background context carrying a logger that records
// everything but writes nowhere, so code paths that demand a context
// logger work under test.
func Context() context.Context {
	logger := slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelDebug}))
	return ctxlog.WithLogger(context.Background(), logger)
}

// WriteTree materializes a map of relative paths to file contents under
// a fresh temp directory and returns its root. Intermediate directories
// are created as needed.
func WriteTree(t *testing.T, files map[string]string) string {
	t.Helper()

	root := t.TempDir()
	for name, content := range files {
		path := filepath.Join(root, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}
	return root
}
