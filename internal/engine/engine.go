// Package engine is the execution engine: it drives every registered
// inspector over every discovered item, gates each invocation on the
// inspector's resolved requirements, and merges results into the item
// tag maps.
//
// Items are processed by a bounded worker pool; the inspector loop
// within one item is strictly sequential, because later inspectors may
// depend on tags written moments earlier by inspectors in the same
// pass. An inspector failure is converted into an error tag and never
// aborts the run.
package engine

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/zclconf/go-cty/cty"
	"golang.org/x/sync/errgroup"

	"github.com/vk/tagscan/internal/condition"
	"github.com/vk/tagscan/internal/config"
	"github.com/vk/tagscan/internal/ctxlog"
	"github.com/vk/tagscan/internal/inspector"
	"github.com/vk/tagscan/internal/item"
	"github.com/vk/tagscan/internal/registry"
	"github.com/vk/tagscan/internal/resolver"
	"github.com/vk/tagscan/internal/tagval"
)

// Engine runs one pass of all inspectors over a set of items.
type Engine struct {
	registry *registry.Registry
	resolver *resolver.Resolver
	workers  int

	// incremental makes the engine skip inspectors whose last recorded
	// consideration of an item postdates the item's modification time.
	// Off for a fresh run, on for watch-mode re-runs.
	incremental bool

	// now is the execution timestamp source, replaceable in tests.
	now func() time.Time
}

// Option configures an Engine.
type Option func(*Engine)

// WithIncremental enables staleness-based skipping.
func WithIncremental(on bool) Option {
	return func(e *Engine) { e.incremental = on }
}

// WithClock replaces the execution timestamp source.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) { e.now = now }
}

// New creates an engine. workers bounds the number of items analyzed
// concurrently; values below one are raised to one.
func New(reg *registry.Registry, res *resolver.Resolver, workers int, opts ...Option) *Engine {
	if reg == nil || res == nil {
		panic("engine: registry and resolver are required")
	}
	if workers < 1 {
		workers = 1
	}
	e := &Engine{
		registry: reg,
		resolver: res,
		workers:  workers,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Run performs a single pass over all (item, inspector) pairs. The
// items come back annotated; the only error Run itself returns is a
// canceled context, since inspector failures surface as error tags.
func (e *Engine) Run(ctx context.Context, items []*item.Item) error {
	ordered := e.registry.Ordered()
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Engine starting pass.", "items", len(items), "inspectors", len(ordered), "workers", e.workers)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(e.workers)
	for _, it := range items {
		it := it
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			e.runItem(ctxlog.With(gctx, "item", it.ID()), it, ordered)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return fmt.Errorf("engine pass interrupted: %w", err)
	}
	logger.Debug("Engine pass finished.")
	return nil
}

// runItem runs the full inspector sequence against one item.
func (e *Engine) runItem(ctx context.Context, it *item.Item, ordered []*config.InspectorDefinition) {
	for _, def := range ordered {
		e.runInspector(ctx, it, def)
	}
}

func (e *Engine) runInspector(ctx context.Context, it *item.Item, def *config.InspectorDefinition) {
	logger := ctxlog.FromContext(ctx)

	// The timestamp records "this inspector was considered at time T",
	// regardless of the eligibility outcome.
	defer it.RecordExecution(def.Name, e.now())

	if e.incremental && it.UpToDate(def.Name) {
		logger.Debug("Inspector up to date, skipping.", "inspector", def.Name)
		return
	}

	resolved, err := e.resolver.Resolve(def.Name)
	if err != nil {
		// Post-validation this cannot happen; if it does, surface it as
		// data rather than aborting the whole run.
		logger.Error("Requirement resolution failed mid-run.", "inspector", def.Name, "error", err)
		it.SetTag(def.Name, tagval.ErrorVal(err.Error()))
		return
	}

	if !e.eligible(ctx, it, def, resolved) {
		it.SetTag(def.Name, tagval.NA())
		return
	}

	handler, ok := e.registry.Handler(def.Handler)
	if !ok {
		logger.Error("Handler missing for validated inspector.", "inspector", def.Name, "handler", def.Handler)
		it.SetTag(def.Name, tagval.ErrorVal("handler not registered: "+def.Handler))
		return
	}

	value, err := e.invoke(ctx, handler.Fn, it)
	switch {
	case errors.Is(err, inspector.ErrNotApplicable):
		it.SetTag(def.Name, tagval.NA())
	case err != nil:
		logger.Warn("Inspector failed.", "inspector", def.Name, "error", err)
		it.SetTag(def.Name, tagval.ErrorVal(err.Error()))
	default:
		it.SetTag(def.Name, value)
	}
}

// eligible applies the three-part gate: capability, simple presence
// requirements, and typed conditions.
func (e *Engine) eligible(ctx context.Context, it *item.Item, def *config.InspectorDefinition, resolved *resolver.Resolved) bool {
	if !supports(def, it) {
		return false
	}
	if h, ok := e.registry.Handler(def.Handler); ok && h.Supports != nil && !h.Supports(it) {
		return false
	}
	if !it.HasAll(resolved.Requires) {
		return false
	}
	return condition.EvaluateAll(ctx, resolved.Conditions, it)
}

// supports checks the manifest-declared capability class against the
// item's kind.
func supports(def *config.InspectorDefinition, it *item.Item) bool {
	switch def.Kind {
	case config.KindSource:
		return it.Kind() == item.KindSource
	case config.KindBinary:
		return it.Kind() == item.KindBinary
	default:
		return true
	}
}

// invoke calls the decorate function with a panic guard: an inspector
// that blows up is recorded as an error result, not a crashed run.
func (e *Engine) invoke(ctx context.Context, fn inspector.DecorateFunc, it *item.Item) (value cty.Value, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("inspector panicked: %v", r)
		}
	}()
	return fn(ctx, it)
}
