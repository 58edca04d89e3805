package hclloader

import (
	"fmt"

	"github.com/hashicorp/hcl/v2"

	"github.com/vk/tagscan/internal/config"
)

// conditionBlock is the HCL shape of a `condition` block.
type conditionBlock struct {
	Tag      string `hcl:"tag"`
	Operator string `hcl:"operator"`
	Value    string `hcl:"value,optional"`
	Type     string `hcl:"type"`
}

// inspectorBlock is the HCL shape of an `inspector` block.
type inspectorBlock struct {
	Name        string            `hcl:"name,label"`
	Description string            `hcl:"description,optional"`
	Kind        string            `hcl:"kind,optional"`
	Extends     string            `hcl:"extends,optional"`
	Handler     string            `hcl:"handler,optional"`
	Requires    []string          `hcl:"requires,optional"`
	Needs       []string          `hcl:"needs,optional"`
	Produces    []string          `hcl:"produces,optional"`
	Conditions  []*conditionBlock `hcl:"condition,block"`
}

// manifestFile is the top-level structure of a manifest file.
type manifestFile struct {
	Inspectors []*inspectorBlock `hcl:"inspector,block"`
	Body       hcl.Body          `hcl:",remain"`
}

// translateInspector converts the HCL-specific schema into the agnostic
// model. Shape errors (empty labels, contradictory blocks) are caught
// here; semantic validation is the registry's job.
func translateInspector(block *inspectorBlock) (*config.InspectorDefinition, error) {
	if block.Name == "" {
		return nil, fmt.Errorf("inspector block with empty name label")
	}

	kind := config.ItemKind(block.Kind)
	if block.Kind == "" {
		kind = config.KindAny
	}

	def := &config.InspectorDefinition{
		Name:        block.Name,
		Description: block.Description,
		Kind:        kind,
		Extends:     block.Extends,
		Handler:     block.Handler,
		Requires:    block.Requires,
		Needs:       block.Needs,
		Produces:    block.Produces,
	}
	for _, c := range block.Conditions {
		def.Conditions = append(def.Conditions, &config.ConditionDefinition{
			Tag:      c.Tag,
			Operator: c.Operator,
			Value:    c.Value,
			Type:     c.Type,
		})
	}
	return def, nil
}
