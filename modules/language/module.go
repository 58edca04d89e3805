// Package language detects the programming language of an item from
// its file extension, falling back to the shebang line for extensionless
// scripts. It is the root fact most source inspectors build on.
package language

import (
	"bufio"
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/zclconf/go-cty/cty"

	"github.com/vk/tagscan/internal/inspector"
	"github.com/vk/tagscan/internal/item"
	"github.com/vk/tagscan/internal/registry"
)

// Module implements the registry.Module interface for this package.
type Module struct{}

var byExtension = map[string]string{
	".go":    "go",
	".java":  "java",
	".kt":    "kotlin",
	".py":    "python",
	".rb":    "ruby",
	".js":    "javascript",
	".ts":    "typescript",
	".c":     "c",
	".h":     "c",
	".cc":    "cpp",
	".cpp":   "cpp",
	".hpp":   "cpp",
	".rs":    "rust",
	".sh":    "shell",
	".sql":   "sql",
	".proto": "protobuf",
}

var byInterpreter = map[string]string{
	"python":  "python",
	"python3": "python",
	"ruby":    "ruby",
	"node":    "javascript",
	"sh":      "shell",
	"bash":    "shell",
	"zsh":     "shell",
}

// OnInspectLanguage is the handler for the 'language' inspector.
func OnInspectLanguage(ctx context.Context, it *item.Item) (cty.Value, error) {
	if it.Kind() == item.KindBinary {
		return cty.StringVal("binary"), nil
	}

	ext := strings.ToLower(filepath.Ext(it.Path()))
	if lang, ok := byExtension[ext]; ok {
		return cty.StringVal(lang), nil
	}

	if lang := fromShebang(it.Path()); lang != "" {
		return cty.StringVal(lang), nil
	}

	// A generic placeholder: a later, smarter pass may overwrite it.
	return cty.StringVal("UNKNOWN"), nil
}

// fromShebang inspects the first line of a file for an interpreter.
func fromShebang(path string) string {
	f, err := os.Open(path)
	if err != nil {
		return ""
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	if !scanner.Scan() {
		return ""
	}
	line := scanner.Text()
	if !strings.HasPrefix(line, "#!") {
		return ""
	}
	fields := strings.Fields(strings.TrimPrefix(line, "#!"))
	if len(fields) == 0 {
		return ""
	}
	interp := filepath.Base(fields[0])
	if interp == "env" {
		if len(fields) < 2 {
			return ""
		}
		interp = fields[len(fields)-1]
	}
	return byInterpreter[interp]
}

// Register registers the handler with the engine.
func (m *Module) Register(r *registry.Registry) {
	r.RegisterInspector("OnInspectLanguage", &registry.RegisteredInspector{
		Fn: OnInspectLanguage,
	})
}

var _ inspector.DecorateFunc = OnInspectLanguage
