package app

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/vk/tagscan/internal/ctxlog"
	"github.com/vk/tagscan/internal/depgraph"
	"github.com/vk/tagscan/internal/discovery"
	"github.com/vk/tagscan/internal/engine"
	"github.com/vk/tagscan/internal/item"
	"github.com/vk/tagscan/internal/tagval"
	"github.com/vk/tagscan/internal/watch"
)

// Run executes the main application logic based on the provided
// configuration: graph diagnostics, discovery, the analysis pass, and
// optionally the watch loop.
func (a *App) Run(ctx context.Context, appConfig *Config) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	a.logger.Debug("App.Run method started.")

	graph, err := depgraph.Build(ctx, a.registry.Definitions(), a.resolver)
	if err != nil {
		return fmt.Errorf("failed to build dependency graph: %w", err)
	}
	a.reportGraph(ctx, graph, appConfig.MinChainLength)
	if appConfig.GraphOnly {
		return nil
	}

	items, err := discovery.Scan(ctx, appConfig.Path)
	if err != nil {
		return fmt.Errorf("discovery failed: %w", err)
	}
	if len(items) == 0 {
		a.logger.Warn("No analyzable files found, nothing to do.", "path", appConfig.Path)
		return nil
	}

	eng := engine.New(a.registry, a.resolver, appConfig.Workers)
	a.logger.Info("Starting analysis pass.", "items", len(items), "inspectors", len(a.registry.Ordered()))
	if err := eng.Run(ctx, items); err != nil {
		return fmt.Errorf("analysis failed: %w", err)
	}
	a.logger.Info("Analysis pass finished.")
	a.printItems(items)

	if appConfig.Watch {
		return a.watchLoop(ctx, items, appConfig)
	}
	return nil
}

// watchLoop keeps the process resident and re-runs inspectors for items
// invalidated by filesystem changes. The incremental engine skips every
// inspector still up to date, so a change re-analyzes exactly one item.
func (a *App) watchLoop(ctx context.Context, items []*item.Item, appConfig *Config) error {
	w, err := watch.New(items)
	if err != nil {
		return fmt.Errorf("failed to start watch mode: %w", err)
	}
	defer w.Close()

	eng := engine.New(a.registry, a.resolver, appConfig.Workers, engine.WithIncremental(true))
	a.logger.Info("Watching for changes. Press Ctrl+C to stop.")

	for changed := range w.Changed(ctx) {
		a.logger.Info("Re-analyzing changed item.", "item", changed.ID())
		if err := eng.Run(ctx, []*item.Item{changed}); err != nil {
			return err
		}
		a.printItems([]*item.Item{changed})
	}
	// A canceled context is the normal way to leave watch mode.
	if err := ctx.Err(); err != nil && err != context.Canceled {
		return err
	}
	return nil
}

// reportGraph logs the analyzer's structural diagnostics: orphaned
// outputs, accidental synonym tags, and overly deep dependency chains.
func (a *App) reportGraph(ctx context.Context, graph *depgraph.Graph, minChainLength int) {
	if err := graph.DetectCycles(); err != nil {
		a.logger.Warn("Inspector graph contains a cycle; dependent inspectors can never all run in one pass.", "error", err)
	}
	if unused := graph.UnusedTags(); len(unused) > 0 {
		a.logger.Warn("Tags are produced but never consumed.", "tags", unused)
	}
	for _, group := range graph.DuplicateGroups() {
		a.logger.Warn("Tags look like semantic duplicates.", "tags", group)
	}
	for _, chain := range graph.Chains(minChainLength) {
		a.logger.Info("Long inspector dependency chain.", "length", len(chain), "chain", strings.Join(chain, " -> "))
	}
	a.logger.Debug("Dependency graph diagnostics complete.",
		"inspectors", len(graph.Nodes()), "edges", len(graph.Edges()))
}

// printItems writes the annotated tag maps to the application's output,
// sorted for stable output.
func (a *App) printItems(items []*item.Item) {
	for _, it := range items {
		tags := it.Tags()
		names := make([]string, 0, len(tags))
		for name := range tags {
			names = append(names, name)
		}
		sort.Strings(names)

		fmt.Fprintf(a.outW, "%s (%s)\n", it.ID(), it.Kind())
		for _, name := range names {
			if s, ok := tagval.AsString(tags[name]); ok {
				fmt.Fprintf(a.outW, "  %s = %q\n", name, s)
				continue
			}
			fmt.Fprintf(a.outW, "  %s = %v\n", name, tags[name])
		}
	}
}
