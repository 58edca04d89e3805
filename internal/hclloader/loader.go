// Package hclloader is the HCL implementation of config.Loader.
//
// Inspector manifests are .hcl files holding `inspector` blocks. The
// loader parses them with hclparse, decodes them through gohcl, and
// translates the result into the format-agnostic config model.
package hclloader

import (
	"context"
	"fmt"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"

	"github.com/vk/tagscan/internal/config"
	"github.com/vk/tagscan/internal/ctxlog"
	"github.com/vk/tagscan/internal/fsutil"
)

// Loader loads inspector definitions from HCL manifest files.
type Loader struct{}

// NewLoader creates a new HCL loader.
func NewLoader() *Loader {
	return &Loader{}
}

// Load finds every .hcl file under the given paths, parses the
// inspector blocks, and merges them into one model. Redefining an
// inspector name is a configuration error.
func (l *Loader) Load(ctx context.Context, paths ...string) (*config.Model, error) {
	logger := ctxlog.FromContext(ctx)
	model := config.NewModel()
	parser := hclparse.NewParser()

	for _, path := range paths {
		files, err := fsutil.FindFilesByExtension(path, ".hcl")
		if err != nil {
			return nil, fmt.Errorf("failed to find manifest files in %s: %w", path, err)
		}
		if len(files) == 0 {
			logger.Warn("No .hcl manifest files found in path.", "path", path)
			continue
		}
		logger.Debug("Found manifest files to load.", "path", path, "count", len(files))

		for _, file := range files {
			defs, err := l.loadFile(parser, file)
			if err != nil {
				return nil, err
			}
			for _, def := range defs {
				if _, dup := model.Inspectors[def.Name]; dup {
					return nil, fmt.Errorf("inspector '%s' redefined in %s", def.Name, file)
				}
				model.Inspectors[def.Name] = def
			}
			logger.Debug("Loaded definitions from manifest file.", "file", file, "count", len(defs))
		}
	}

	logger.Info("Inspector manifests loaded.", "definitions", len(model.Inspectors))
	return model, nil
}

func (l *Loader) loadFile(parser *hclparse.Parser, filePath string) ([]*config.InspectorDefinition, error) {
	hclFile, diags := parser.ParseHCLFile(filePath)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file %s: %w", filePath, diags)
	}

	var parsed manifestFile
	if diags := gohcl.DecodeBody(hclFile.Body, nil, &parsed); diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL file %s: %w", filePath, diags)
	}

	defs := make([]*config.InspectorDefinition, 0, len(parsed.Inspectors))
	for _, block := range parsed.Inspectors {
		def, err := translateInspector(block)
		if err != nil {
			return nil, fmt.Errorf("error in %s: %w", filePath, err)
		}
		defs = append(defs, def)
	}
	return defs, nil
}
