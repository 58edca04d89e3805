package registry

import (
	"context"
	"fmt"
	"strings"

	"github.com/vk/tagscan/internal/catalog"
	"github.com/vk/tagscan/internal/condition"
	"github.com/vk/tagscan/internal/config"
	"github.com/vk/tagscan/internal/ctxlog"
	"github.com/vk/tagscan/internal/resolver"
)

// Validate performs a strict parity check between manifests, the Go
// handlers, and the tag catalog. All configuration errors are collected
// and reported together; a valid registry is a precondition for running
// the engine.
func (r *Registry) Validate(ctx context.Context) error {
	logger := ctxlog.FromContext(ctx)
	var errs []string

	res := resolver.New(r.defs)

	for name, def := range r.defs {
		if def.Name != name {
			errs = append(errs, fmt.Sprintf("inspector '%s': definition name mismatch ('%s')", name, def.Name))
			continue
		}
		errs = append(errs, r.validateDefinition(def)...)

		// Resolving every definition up front surfaces extends cycles,
		// dangling references, and bad conditions before the first run.
		if _, err := res.Resolve(name); err != nil {
			errs = append(errs, err.Error())
		}
	}

	for name, def := range r.defs {
		if !def.Runnable() {
			continue
		}
		if _, ok := r.handlers[def.Handler]; !ok {
			errs = append(errs, fmt.Sprintf("inspector '%s': manifest names handler '%s', which is not registered", name, def.Handler))
		}
	}
	for handlerName := range r.handlers {
		if !r.handlerInUse(handlerName) {
			errs = append(errs, fmt.Sprintf("handler '%s' is registered but no manifest refers to it", handlerName))
		}
	}

	if cycleErrs := r.detectNeedsCycles(); len(cycleErrs) > 0 {
		errs = append(errs, cycleErrs...)
	}

	if len(errs) > 0 {
		return fmt.Errorf("registry validation failed:\n- %s", strings.Join(errs, "\n- "))
	}
	logger.Debug("Registry validation passed.", "definitions", len(r.defs), "handlers", len(r.handlers))
	return nil
}

func (r *Registry) validateDefinition(def *config.InspectorDefinition) []string {
	var errs []string

	switch def.Kind {
	case config.KindSource, config.KindBinary, config.KindAny:
	default:
		errs = append(errs, fmt.Sprintf("inspector '%s': unknown kind '%s'", def.Name, def.Kind))
	}

	if def.Runnable() && !catalog.Known(def.Name) {
		errs = append(errs, fmt.Sprintf("inspector '%s': name is not a canonical catalog tag", def.Name))
	}
	for _, tag := range def.Requires {
		if !catalog.Known(tag) {
			errs = append(errs, fmt.Sprintf("inspector '%s': requires unknown tag '%s'", def.Name, tag))
		}
	}
	for _, tag := range def.Produces {
		if !catalog.Known(tag) {
			errs = append(errs, fmt.Sprintf("inspector '%s': produces unknown tag '%s'", def.Name, tag))
		}
	}
	for _, need := range def.Needs {
		if _, ok := r.defs[need]; !ok {
			errs = append(errs, fmt.Sprintf("inspector '%s': needs unknown inspector '%s'", def.Name, need))
		}
	}
	for _, raw := range def.Conditions {
		if !catalog.Known(raw.Tag) {
			errs = append(errs, fmt.Sprintf("inspector '%s': condition references unknown tag '%s'", def.Name, raw.Tag))
		}
		if _, err := condition.FromDefinition(raw); err != nil {
			errs = append(errs, fmt.Sprintf("inspector '%s': %v", def.Name, err))
		}
	}
	return errs
}

func (r *Registry) handlerInUse(handlerName string) bool {
	for _, def := range r.defs {
		if def.Handler == handlerName {
			return true
		}
	}
	return false
}

// detectNeedsCycles runs a depth-first search over the needs relation.
// The resolver's needs expansion is non-recursive and cannot loop, but
// a cyclic needs declaration is always a design error in the catalog
// and must fail startup rather than produce two inspectors that forever
// skip each other.
func (r *Registry) detectNeedsCycles() []string {
	permanent := make(map[string]bool)
	temporary := make(map[string]bool)
	var errs []string

	var visit func(name string) bool
	visit = func(name string) bool {
		if permanent[name] {
			return true
		}
		if temporary[name] {
			errs = append(errs, fmt.Sprintf("needs cycle detected involving inspector '%s'", name))
			return false
		}
		temporary[name] = true
		if def, ok := r.defs[name]; ok {
			for _, need := range def.Needs {
				if !visit(need) {
					return false
				}
			}
		}
		delete(temporary, name)
		permanent[name] = true
		return true
	}

	for name := range r.defs {
		if !permanent[name] {
			visit(name)
		}
	}
	return errs
}
