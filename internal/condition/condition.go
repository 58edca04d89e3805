// Package condition gives typed meaning to the `condition` blocks of
// inspector manifests: a predicate over a single tag value, dispatched
// by declared data type.
//
// Validation is eager: an unknown operator, an incompatible
// operator/type pairing, or a malformed regex is a configuration error
// surfaced at startup. Evaluation never fails loudly; anything that
// cannot be coerced or matched evaluates to false.
package condition

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/vk/tagscan/internal/config"
)

// Operator is a comparison operator usable in a condition block.
type Operator string

const (
	OpEquals             Operator = "equals"
	OpNotEquals          Operator = "not_equals"
	OpGreaterThan        Operator = "greater_than"
	OpGreaterThanOrEqual Operator = "greater_than_or_equal"
	OpLessThan           Operator = "less_than"
	OpLessThanOrEqual    Operator = "less_than_or_equal"
	OpContains           Operator = "contains"
	OpNotContains        Operator = "not_contains"
	OpMatches            Operator = "matches"
	OpIn                 Operator = "in"
	OpNotIn              Operator = "not_in"
	OpExists             Operator = "exists"
	OpNotExists          Operator = "not_exists"
)

// DataType selects the comparison semantics for a condition.
type DataType string

const (
	TypeString     DataType = "string"
	TypeInteger    DataType = "integer"
	TypeDouble     DataType = "double"
	TypeBoolean    DataType = "boolean"
	TypeComplexity DataType = "complexity"
)

// operatorsByType lists the operators each data type accepts. Presence
// checks are type-agnostic and always allowed.
var operatorsByType = map[DataType]map[Operator]struct{}{
	TypeString: {
		OpEquals: {}, OpNotEquals: {},
		OpGreaterThan: {}, OpGreaterThanOrEqual: {}, OpLessThan: {}, OpLessThanOrEqual: {},
		OpContains: {}, OpNotContains: {}, OpMatches: {}, OpIn: {}, OpNotIn: {},
	},
	TypeInteger: {
		OpEquals: {}, OpNotEquals: {},
		OpGreaterThan: {}, OpGreaterThanOrEqual: {}, OpLessThan: {}, OpLessThanOrEqual: {},
		OpIn: {}, OpNotIn: {},
	},
	TypeDouble: {
		OpEquals: {}, OpNotEquals: {},
		OpGreaterThan: {}, OpGreaterThanOrEqual: {}, OpLessThan: {}, OpLessThanOrEqual: {},
	},
	TypeBoolean: {
		OpEquals: {}, OpNotEquals: {},
	},
	TypeComplexity: {
		OpEquals: {}, OpNotEquals: {},
		OpGreaterThan: {}, OpGreaterThanOrEqual: {}, OpLessThan: {}, OpLessThanOrEqual: {},
		OpIn: {}, OpNotIn: {},
	},
}

// Condition is a validated, typed predicate over one tag value.
type Condition struct {
	Tag      string
	Operator Operator
	Value    string
	Type     DataType

	// pattern is the compiled regex for matches conditions, anchored to
	// the full value like Java's Pattern.matches.
	pattern *regexp.Regexp
}

// FromDefinition translates and validates a raw manifest condition.
func FromDefinition(def *config.ConditionDefinition) (*Condition, error) {
	if def == nil {
		panic("condition: nil definition")
	}
	c := &Condition{
		Tag:      def.Tag,
		Operator: Operator(strings.ToLower(def.Operator)),
		Value:    def.Value,
		Type:     DataType(strings.ToLower(def.Type)),
	}
	if err := c.validate(); err != nil {
		return nil, fmt.Errorf("condition on tag %q: %w", c.Tag, err)
	}
	return c, nil
}

func (c *Condition) validate() error {
	if c.Tag == "" {
		return fmt.Errorf("missing tag name")
	}
	allowed, ok := operatorsByType[c.Type]
	if !ok {
		return fmt.Errorf("unknown data type %q", c.Type)
	}
	if c.Operator == OpExists || c.Operator == OpNotExists {
		return nil
	}
	if _, ok := allowed[c.Operator]; !ok {
		return fmt.Errorf("operator %q is not valid for type %q", c.Operator, c.Type)
	}
	if c.Operator == OpMatches {
		re, err := regexp.Compile("^(?:" + c.Value + ")$")
		if err != nil {
			return fmt.Errorf("malformed pattern %q: %w", c.Value, err)
		}
		c.pattern = re
	}
	if c.Type == TypeBoolean {
		if _, err := strconv.ParseBool(c.Value); err != nil {
			return fmt.Errorf("boolean comparison value must be true or false, got %q", c.Value)
		}
	}
	return nil
}

// splitList splits a comparison value on commas and trims each token.
func splitList(value string) []string {
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		out = append(out, strings.TrimSpace(p))
	}
	return out
}
