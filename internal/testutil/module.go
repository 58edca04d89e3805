package testutil

import (
	"github.com/vk/tagscan/internal/inspector"
	"github.com/vk/tagscan/internal/registry"
)

// SimpleModule is a test helper for easily creating a mock module that
// registers a single inspector handler.
type SimpleModule struct {
	HandlerName string
	Fn          inspector.DecorateFunc
	Supports    inspector.SupportsFunc
}

// Register implements the registry.Module interface.
func (m *SimpleModule) Register(r *registry.Registry) {
	r.RegisterInspector(m.HandlerName, &registry.RegisteredInspector{
		Fn:       m.Fn,
		Supports: m.Supports,
	})
}

// Modules bundles several simple modules into a registrable slice.
func Modules(mods ...*SimpleModule) []registry.Module {
	out := make([]registry.Module, len(mods))
	for i, m := range mods {
		out[i] = m
	}
	return out
}
