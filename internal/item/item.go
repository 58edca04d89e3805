// Package item holds the per-file fact base.
//
// An Item owns its tag map exclusively: the engine never lets two items
// share state, which is what makes the run embarrassingly parallel
// across items. All tag mutation funnels through the tagval merge rule;
// there is deliberately no direct-overwrite entry point.
package item

import (
	"sync"
	"time"

	"github.com/zclconf/go-cty/cty"

	"github.com/vk/tagscan/internal/tagval"
)

// Kind is the capability class of an item, used by the Supports check.
type Kind int

const (
	// KindSource is a text file in a recognized source language.
	KindSource Kind = iota
	// KindBinary is a non-text artifact.
	KindBinary
	// KindOther is anything the discovery layer could not classify.
	KindOther
)

func (k Kind) String() string {
	switch k {
	case KindSource:
		return "source"
	case KindBinary:
		return "binary"
	default:
		return "other"
	}
}

// Item is a single analyzed entity: a stable identity, a mutable tag
// map, and per-inspector execution timestamps for staleness tracking.
type Item struct {
	id   string
	path string
	kind Kind

	mu         sync.RWMutex
	modTime    time.Time
	tags       map[string]cty.Value
	executions map[string]time.Time
	// fresh caches UpToDate answers per inspector name. Lazily filled,
	// dropped wholesale by Invalidate.
	fresh map[string]bool
}

// New creates an item. id must be stable across runs; the relative path
// from the scan root is the usual choice.
func New(id, path string, kind Kind, modTime time.Time) *Item {
	return &Item{
		id:         id,
		path:       path,
		kind:       kind,
		modTime:    modTime,
		tags:       make(map[string]cty.Value),
		executions: make(map[string]time.Time),
		fresh:      make(map[string]bool),
	}
}

// ID returns the item's stable identity.
func (i *Item) ID() string { return i.id }

// Path returns the item's filesystem path.
func (i *Item) Path() string { return i.path }

// Kind returns the item's capability class.
func (i *Item) Kind() Kind { return i.kind }

// ModTime returns the last-known modification time.
func (i *Item) ModTime() time.Time {
	i.mu.RLock()
	defer i.mu.RUnlock()
	return i.modTime
}

// SetTag merges v into the tag map under name. If a value already
// exists, the priority lattice decides which one survives.
func (i *Item) SetTag(name string, v cty.Value) {
	i.mu.Lock()
	defer i.mu.Unlock()
	existing, ok := i.tags[name]
	if !ok {
		i.tags[name] = v
		return
	}
	i.tags[name] = tagval.Merge(existing, v)
}

// Tag returns the current value of the named tag.
func (i *Item) Tag(name string) (cty.Value, bool) {
	i.mu.RLock()
	defer i.mu.RUnlock()
	v, ok := i.tags[name]
	return v, ok
}

// Tags returns a copy of the full tag map.
func (i *Item) Tags() map[string]cty.Value {
	i.mu.RLock()
	defer i.mu.RUnlock()
	out := make(map[string]cty.Value, len(i.tags))
	for k, v := range i.tags {
		out[k] = v
	}
	return out
}

// HasAll reports whether every named tag is present.
func (i *Item) HasAll(names []string) bool {
	i.mu.RLock()
	defer i.mu.RUnlock()
	for _, name := range names {
		if _, ok := i.tags[name]; !ok {
			return false
		}
	}
	return true
}

// StringTag returns the named tag coerced to a string.
func (i *Item) StringTag(name string) (string, bool) {
	v, ok := i.Tag(name)
	if !ok {
		return "", false
	}
	return tagval.AsString(v)
}

// IntTag returns the named tag coerced to an int64.
func (i *Item) IntTag(name string) (int64, bool) {
	v, ok := i.Tag(name)
	if !ok {
		return 0, false
	}
	return tagval.AsInt(v)
}

// BoolTag returns the named tag coerced to a bool.
func (i *Item) BoolTag(name string) (bool, bool) {
	v, ok := i.Tag(name)
	if !ok {
		return false, false
	}
	return tagval.AsBool(v)
}

// ListTag returns the named tag's elements.
func (i *Item) ListTag(name string) ([]cty.Value, bool) {
	v, ok := i.Tag(name)
	if !ok {
		return nil, false
	}
	return tagval.AsList(v)
}
