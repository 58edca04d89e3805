// Package complexity buckets a source file onto the fixed ordinal
// NONE < LOW < MEDIUM < HIGH < CRITICAL scale.
//
// The heuristic is deliberately crude: line count plus the deepest
// indentation level found. It exists to feed ordered complexity
// conditions, not to compete with a real complexity metric.
package complexity

import (
	"bufio"
	"context"
	"os"

	"github.com/zclconf/go-cty/cty"

	"github.com/vk/tagscan/internal/inspector"
	"github.com/vk/tagscan/internal/item"
	"github.com/vk/tagscan/internal/registry"
)

// Module implements the registry.Module interface for this package.
type Module struct{}

// OnInspectComplexity is the handler for the 'complexity' inspector.
func OnInspectComplexity(ctx context.Context, it *item.Item) (cty.Value, error) {
	// The loc dependency is declared via needs, so the tag is always
	// present here; falling back to zero keeps the handler total.
	lines, _ := it.IntTag("loc")

	depth, err := maxIndentDepth(it.Path())
	if err != nil {
		return cty.NilVal, err
	}

	score := lines/100 + int64(depth)
	switch {
	case lines == 0:
		return cty.StringVal("NONE"), nil
	case score < 3:
		return cty.StringVal("LOW"), nil
	case score < 6:
		return cty.StringVal("MEDIUM"), nil
	case score < 10:
		return cty.StringVal("HIGH"), nil
	default:
		return cty.StringVal("CRITICAL"), nil
	}
}

// maxIndentDepth returns the deepest leading-whitespace level in the
// file, counting a tab or four spaces as one level.
func maxIndentDepth(path string) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, err
	}
	defer f.Close()

	maxDepth := 0
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := scanner.Bytes()
		depth, spaces := 0, 0
		for _, b := range line {
			if b == '\t' {
				depth++
				continue
			}
			if b == ' ' {
				spaces++
				if spaces == 4 {
					depth++
					spaces = 0
				}
				continue
			}
			break
		}
		if depth > maxDepth {
			maxDepth = depth
		}
	}
	return maxDepth, scanner.Err()
}

// Register registers the handler with the engine.
func (m *Module) Register(r *registry.Registry) {
	r.RegisterInspector("OnInspectComplexity", &registry.RegisteredInspector{
		Fn: OnInspectComplexity,
	})
}

var _ inspector.DecorateFunc = OnInspectComplexity
