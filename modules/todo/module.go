// Package todo counts open work markers in a source file.
package todo

import (
	"bufio"
	"context"
	"os"
	"strings"

	"github.com/zclconf/go-cty/cty"

	"github.com/vk/tagscan/internal/item"
	"github.com/vk/tagscan/internal/registry"
)

// Module implements the registry.Module interface for this package.
type Module struct{}

var markers = []string{"TODO", "FIXME", "XXX", "HACK"}

// OnInspectTodo is the handler for the 'todo' inspector.
func OnInspectTodo(ctx context.Context, it *item.Item) (cty.Value, error) {
	f, err := os.Open(it.Path())
	if err != nil {
		return cty.NilVal, err
	}
	defer f.Close()

	count := 0
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := scanner.Text()
		for _, marker := range markers {
			count += strings.Count(line, marker)
		}
	}
	if err := scanner.Err(); err != nil {
		return cty.NilVal, err
	}
	return cty.NumberIntVal(int64(count)), nil
}

// Register registers the handler with the engine.
func (m *Module) Register(r *registry.Registry) {
	r.RegisterInspector("OnInspectTodo", &registry.RegisteredInspector{
		Fn: OnInspectTodo,
	})
}
