package testutil

import (
	"time"

	"github.com/zclconf/go-cty/cty"

	"github.com/vk/tagscan/internal/item"
)

// Item creates a detached in-memory item for tests that never touch the
// filesystem. Tags are merged in pairwise from the optional tag map.
func Item(id string, kind item.Kind, tags map[string]cty.Value) *item.Item {
	it := item.New(id, "/nonexistent/"+id, kind, time.Unix(1_700_000_000, 0))
	for name, v := range tags {
		it.SetTag(name, v)
	}
	return it
}
