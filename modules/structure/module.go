// Package structure parses Go source with tree-sitter and counts its
// top-level declarations. It is gated on language == "go", so files of
// other languages never reach the parser.
package structure

import (
	"context"
	"fmt"
	"os"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/golang"
	"github.com/zclconf/go-cty/cty"

	"github.com/vk/tagscan/internal/catalog"
	"github.com/vk/tagscan/internal/inspector"
	"github.com/vk/tagscan/internal/item"
	"github.com/vk/tagscan/internal/registry"
)

// Module implements the registry.Module interface for this package.
type Module struct{}

// OnInspectStructure is the handler for the 'structure' inspector. It
// stores the function and type counts under their own tags and returns
// a short human-readable summary as the structure tag itself.
func OnInspectStructure(ctx context.Context, it *item.Item) (cty.Value, error) {
	source, err := os.ReadFile(it.Path())
	if err != nil {
		return cty.NilVal, err
	}

	parser := sitter.NewParser()
	parser.SetLanguage(golang.GetLanguage())
	tree, err := parser.ParseCtx(ctx, nil, source)
	if err != nil {
		return cty.NilVal, fmt.Errorf("parsing %s: %w", it.Path(), err)
	}
	defer tree.Close()

	var functions, types int64
	root := tree.RootNode()
	for i := 0; i < int(root.NamedChildCount()); i++ {
		switch root.NamedChild(i).Type() {
		case "function_declaration", "method_declaration":
			functions++
		case "type_declaration":
			types++
		}
	}

	it.SetTag(catalog.StructureFunctions, cty.NumberIntVal(functions))
	it.SetTag(catalog.StructureTypes, cty.NumberIntVal(types))

	return cty.StringVal(fmt.Sprintf("%d functions, %d types", functions, types)), nil
}

// Register registers the handler with the engine.
func (m *Module) Register(r *registry.Registry) {
	r.RegisterInspector("OnInspectStructure", &registry.RegisteredInspector{
		Fn: OnInspectStructure,
	})
}

var _ inspector.DecorateFunc = OnInspectStructure
