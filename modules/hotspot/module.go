// Package hotspot marks files worth a maintainer's attention: complex
// enough to be risky and still carrying open work markers. It only
// runs once its complexity condition holds, so ineligible files get no
// verdict rather than a false negative.
package hotspot

import (
	"context"

	"github.com/zclconf/go-cty/cty"

	"github.com/vk/tagscan/internal/inspector"
	"github.com/vk/tagscan/internal/item"
	"github.com/vk/tagscan/internal/registry"
)

// Module implements the registry.Module interface for this package.
type Module struct{}

// OnInspectHotspot is the handler for the 'hotspot' inspector.
func OnInspectHotspot(ctx context.Context, it *item.Item) (cty.Value, error) {
	todos, ok := it.IntTag("todo")
	if !ok {
		// requires guarantees the tag exists, but an upstream error
		// value is not parseable as an integer.
		return cty.BoolVal(false), nil
	}
	return cty.BoolVal(todos > 0), nil
}

// Register registers the handler with the engine.
func (m *Module) Register(r *registry.Registry) {
	r.RegisterInspector("OnInspectHotspot", &registry.RegisteredInspector{
		Fn: OnInspectHotspot,
	})
}

var _ inspector.DecorateFunc = OnInspectHotspot
