package condition

import (
	"context"
	"strconv"
	"strings"

	"github.com/vk/tagscan/internal/ctxlog"
	"github.com/vk/tagscan/internal/item"
	"github.com/vk/tagscan/internal/tagval"
)

// Evaluate reports whether the condition holds for the item's current
// tags. Presence operators short-circuit without reading a value; for
// everything else a missing tag fails the condition.
func (c *Condition) Evaluate(it *item.Item) bool {
	_, present := it.Tag(c.Tag)
	switch c.Operator {
	case OpExists:
		return present
	case OpNotExists:
		return !present
	}
	if !present {
		return false
	}

	switch c.Type {
	case TypeString:
		return c.evaluateString(it)
	case TypeInteger:
		return c.evaluateInteger(it)
	case TypeDouble:
		return c.evaluateDouble(it)
	case TypeBoolean:
		return c.evaluateBoolean(it)
	case TypeComplexity:
		return c.evaluateComplexity(it)
	}
	return false
}

// EvaluateAll applies AND semantics: an inspector with complex
// conditions runs only if every one of them passes.
func EvaluateAll(ctx context.Context, conds []*Condition, it *item.Item) bool {
	for _, c := range conds {
		if !c.Evaluate(it) {
			ctxlog.FromContext(ctx).Debug("Condition failed.",
				"item", it.ID(), "tag", c.Tag, "operator", string(c.Operator))
			return false
		}
	}
	return true
}

func (c *Condition) evaluateString(it *item.Item) bool {
	got, ok := it.StringTag(c.Tag)
	if !ok {
		return false
	}
	switch c.Operator {
	case OpEquals:
		return got == c.Value
	case OpNotEquals:
		return got != c.Value
	case OpGreaterThan:
		return got > c.Value
	case OpGreaterThanOrEqual:
		return got >= c.Value
	case OpLessThan:
		return got < c.Value
	case OpLessThanOrEqual:
		return got <= c.Value
	case OpContains:
		return strings.Contains(got, c.Value)
	case OpNotContains:
		return !strings.Contains(got, c.Value)
	case OpMatches:
		return c.pattern != nil && c.pattern.MatchString(got)
	case OpIn:
		return stringIn(got, splitList(c.Value), false)
	case OpNotIn:
		return !stringIn(got, splitList(c.Value), false)
	}
	return false
}

func (c *Condition) evaluateInteger(it *item.Item) bool {
	got, ok := it.IntTag(c.Tag)
	if !ok {
		return false
	}
	switch c.Operator {
	case OpIn, OpNotIn:
		member := false
		for _, tok := range splitList(c.Value) {
			if want, err := strconv.ParseInt(tok, 10, 64); err == nil && want == got {
				member = true
				break
			}
		}
		if c.Operator == OpIn {
			return member
		}
		return !member
	}
	want, err := strconv.ParseInt(strings.TrimSpace(c.Value), 10, 64)
	if err != nil {
		return false
	}
	return compareOrdered(c.Operator, got, want)
}

func (c *Condition) evaluateDouble(it *item.Item) bool {
	v, ok := it.Tag(c.Tag)
	if !ok {
		return false
	}
	got, ok := tagval.AsFloat(v)
	if !ok {
		return false
	}
	want, err := strconv.ParseFloat(strings.TrimSpace(c.Value), 64)
	if err != nil {
		return false
	}
	return compareOrdered(c.Operator, got, want)
}

func (c *Condition) evaluateBoolean(it *item.Item) bool {
	got, ok := it.BoolTag(c.Tag)
	if !ok {
		return false
	}
	// The comparison value was checked at validation time.
	want, err := strconv.ParseBool(c.Value)
	if err != nil {
		return false
	}
	switch c.Operator {
	case OpEquals:
		return got == want
	case OpNotEquals:
		return got != want
	}
	return false
}

func (c *Condition) evaluateComplexity(it *item.Item) bool {
	got, ok := it.StringTag(c.Tag)
	if !ok {
		return false
	}
	switch c.Operator {
	case OpIn:
		return stringIn(got, splitList(c.Value), true)
	case OpNotIn:
		return !stringIn(got, splitList(c.Value), true)
	}
	return compareOrdered(c.Operator, ComplexityIndex(got), ComplexityIndex(c.Value))
}

// compareOrdered applies an ordering operator to two comparable values.
func compareOrdered[T int | int64 | float64](op Operator, got, want T) bool {
	switch op {
	case OpEquals:
		return got == want
	case OpNotEquals:
		return got != want
	case OpGreaterThan:
		return got > want
	case OpGreaterThanOrEqual:
		return got >= want
	case OpLessThan:
		return got < want
	case OpLessThanOrEqual:
		return got <= want
	}
	return false
}

func stringIn(got string, tokens []string, foldCase bool) bool {
	for _, tok := range tokens {
		if got == tok || (foldCase && strings.EqualFold(got, tok)) {
			return true
		}
	}
	return false
}
