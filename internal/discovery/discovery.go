// Package discovery finds analyzable files under a root path and turns
// them into items.
//
// Discovery is deliberately dumb: it classifies by extension and leaves
// anything smarter (language detection, binary format sniffing) to the
// inspectors. It honors the root's .gitignore so a scan of a working
// tree does not drown in build output.
package discovery

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	ignore "github.com/sabhiram/go-gitignore"

	"github.com/vk/tagscan/internal/ctxlog"
	"github.com/vk/tagscan/internal/item"
)

var sourceExtensions = map[string]struct{}{
	".go":    {},
	".java":  {},
	".kt":    {},
	".py":    {},
	".rb":    {},
	".js":    {},
	".ts":    {},
	".c":     {},
	".h":     {},
	".cc":    {},
	".cpp":   {},
	".hpp":   {},
	".rs":    {},
	".sh":    {},
	".sql":   {},
	".proto": {},
}

var binaryExtensions = map[string]struct{}{
	".so":    {},
	".a":     {},
	".o":     {},
	".dll":   {},
	".exe":   {},
	".bin":   {},
	".wasm":  {},
	".class": {},
	".jar":   {},
	".png":   {},
	".gif":   {},
	".jpg":   {},
}

var skipDirs = map[string]struct{}{
	".git":         {},
	".hg":          {},
	".svn":         {},
	"node_modules": {},
	"__pycache__":  {},
	".idea":        {},
	".vscode":      {},
}

// Scan walks root and returns an item per discovered file, sorted by
// id. Ids are slash-separated paths relative to root, stable across
// runs and platforms.
func Scan(ctx context.Context, root string) ([]*item.Item, error) {
	logger := ctxlog.FromContext(ctx)
	gi := loadGitignore(root)

	var items []*item.Item
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			logger.Warn("Skipping unreadable path.", "path", path, "error", err)
			return nil
		}

		name := d.Name()
		if d.IsDir() {
			if path == root {
				return nil
			}
			if _, skip := skipDirs[name]; skip || strings.HasPrefix(name, ".") {
				return filepath.SkipDir
			}
			return nil
		}
		if strings.HasPrefix(name, ".") || d.Type()&fs.ModeSymlink != 0 {
			return nil
		}

		rel, err := filepath.Rel(root, path)
		if err != nil {
			return nil
		}
		if gi != nil && gi.MatchesPath(rel) {
			return nil
		}

		info, err := d.Info()
		if err != nil {
			logger.Warn("Skipping file without readable metadata.", "path", path, "error", err)
			return nil
		}

		id := filepath.ToSlash(rel)
		items = append(items, item.New(id, path, classify(name), info.ModTime()))
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Slice(items, func(i, j int) bool { return items[i].ID() < items[j].ID() })
	logger.Info("Discovery finished.", "root", root, "items", len(items))
	return items, nil
}

// classify assigns an item kind purely from the file extension.
func classify(name string) item.Kind {
	ext := strings.ToLower(filepath.Ext(name))
	if _, ok := sourceExtensions[ext]; ok {
		return item.KindSource
	}
	if _, ok := binaryExtensions[ext]; ok {
		return item.KindBinary
	}
	return item.KindOther
}

func loadGitignore(root string) *ignore.GitIgnore {
	path := filepath.Join(root, ".gitignore")
	if _, err := os.Stat(path); err != nil {
		return nil
	}
	gi, err := ignore.CompileIgnoreFile(path)
	if err != nil {
		return nil
	}
	return gi
}
