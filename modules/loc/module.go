// Package loc counts physical lines in a source file.
package loc

import (
	"bytes"
	"context"
	"os"

	"github.com/zclconf/go-cty/cty"

	"github.com/vk/tagscan/internal/item"
	"github.com/vk/tagscan/internal/registry"
)

// Module implements the registry.Module interface for this package.
type Module struct{}

// OnInspectLoc is the handler for the 'loc' inspector.
func OnInspectLoc(ctx context.Context, it *item.Item) (cty.Value, error) {
	data, err := os.ReadFile(it.Path())
	if err != nil {
		return cty.NilVal, err
	}
	if len(data) == 0 {
		return cty.NumberIntVal(0), nil
	}

	lines := bytes.Count(data, []byte{'\n'})
	if data[len(data)-1] != '\n' {
		lines++
	}
	return cty.NumberIntVal(int64(lines)), nil
}

// Register registers the handler with the engine.
func (m *Module) Register(r *registry.Registry) {
	r.RegisterInspector("OnInspectLoc", &registry.RegisteredInspector{
		Fn: OnInspectLoc,
	})
}
