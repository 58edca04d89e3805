package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/vk/tagscan/internal/config"
	"github.com/vk/tagscan/internal/ctxlog"
	"github.com/vk/tagscan/internal/registry"
	"github.com/vk/tagscan/internal/resolver"
)

// App encapsulates the application's dependencies, configuration, and
// lifecycle.
type App struct {
	outW     io.Writer
	logger   *slog.Logger
	registry *registry.Registry
	resolver *resolver.Resolver
	model    *config.Model
}

// NewApp is the constructor for the main application. It returns a fully
// initialized App instance, including its own isolated logger and
// registry, with all manifests loaded and validated.
func NewApp(outW io.Writer, appConfig *Config, loader config.Loader, modules ...registry.Module) *App {
	logger := newLogger(appConfig.LogLevel, appConfig.LogFormat, outW)
	ctx := ctxlog.WithLogger(context.Background(), logger)
	logger.Debug("Logger configured successfully.")

	model, err := loader.Load(ctx, appConfig.ManifestsPath)
	if err != nil {
		// A failure to load manifests is a fatal startup error.
		panic(fmt.Errorf("failed to load inspector manifests: %w", err))
	}
	logger.Debug("Manifests loaded into unified model.")

	reg := registry.New()
	if len(modules) == 0 {
		modules = coreModules
	}
	for _, mod := range modules {
		mod.Register(reg)
	}
	logger.Debug("All inspector modules registered.", "count", len(modules))

	reg.PopulateDefinitionsFromModel(model)
	logger.Debug("Registry definitions populated from config model.")

	if err := reg.Validate(ctx); err != nil {
		// A mismatch between code, manifests, and catalog is a
		// programmer error, so we panic.
		panic(err)
	}
	logger.Debug("Registry validation passed.")

	return &App{
		outW:     outW,
		logger:   logger,
		registry: reg,
		resolver: resolver.New(reg.Definitions()),
		model:    model,
	}
}

// Registry returns the application's registry. This is primarily for
// testing.
func (a *App) Registry() *registry.Registry {
	return a.registry
}

// Resolver returns the application's resolver. This is primarily for
// testing.
func (a *App) Resolver() *resolver.Resolver {
	return a.resolver
}
