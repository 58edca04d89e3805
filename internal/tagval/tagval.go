// Package tagval is the typed accessor layer over tag values.
//
// Tags are stored as cty.Value so the engine gets a real tagged-union
// value model (string, number, bool, list, null) instead of ad-hoc
// interface{} switching. This package adds the coercion rules the
// inspectors rely on and the priority lattice that governs merging.
package tagval

import (
	"strconv"
	"strings"

	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"
)

// NotApplicable is the value recorded for an inspector that was
// considered for an item but was not eligible to run.
const NotApplicable = "N/A"

// ErrorPrefix marks a value recorded for an inspector whose execution
// failed. The remainder of the string is the failure message.
const ErrorPrefix = "ERROR: "

// NA returns the not-applicable marker value.
func NA() cty.Value {
	return cty.StringVal(NotApplicable)
}

// ErrorVal returns an error marker value carrying the given message.
func ErrorVal(msg string) cty.Value {
	return cty.StringVal(ErrorPrefix + msg)
}

// IsError reports whether v carries an error marker.
func IsError(v cty.Value) bool {
	s, ok := AsString(v)
	return ok && strings.HasPrefix(s, ErrorPrefix)
}

// AsString coerces v to a string. Strings pass through; numbers and
// bools convert to their canonical textual form. Lists and nulls fail.
func AsString(v cty.Value) (string, bool) {
	if v.IsNull() || !v.IsKnown() {
		return "", false
	}
	conv, err := convert.Convert(v, cty.String)
	if err != nil {
		return "", false
	}
	return conv.AsString(), true
}

// AsInt coerces v to an int64. Whole numbers and strings holding whole
// numbers succeed; anything else fails.
func AsInt(v cty.Value) (int64, bool) {
	if v.IsNull() || !v.IsKnown() {
		return 0, false
	}
	switch v.Type() {
	case cty.Number:
		bf := v.AsBigFloat()
		i, acc := bf.Int64()
		if acc != 0 {
			return 0, false
		}
		return i, true
	case cty.String:
		i, err := strconv.ParseInt(strings.TrimSpace(v.AsString()), 10, 64)
		if err != nil {
			return 0, false
		}
		return i, true
	}
	return 0, false
}

// AsFloat coerces v to a float64 from a number or a numeric string.
func AsFloat(v cty.Value) (float64, bool) {
	if v.IsNull() || !v.IsKnown() {
		return 0, false
	}
	switch v.Type() {
	case cty.Number:
		f, _ := v.AsBigFloat().Float64()
		return f, true
	case cty.String:
		f, err := strconv.ParseFloat(strings.TrimSpace(v.AsString()), 64)
		if err != nil {
			return 0, false
		}
		return f, true
	}
	return 0, false
}

// AsBool coerces v to a bool from a bool or the strings "true"/"false".
func AsBool(v cty.Value) (bool, bool) {
	if v.IsNull() || !v.IsKnown() {
		return false, false
	}
	switch v.Type() {
	case cty.Bool:
		return v.True(), true
	case cty.String:
		switch strings.ToLower(strings.TrimSpace(v.AsString())) {
		case "true":
			return true, true
		case "false":
			return false, true
		}
	}
	return false, false
}

// AsList returns the elements of a list, set, or tuple value.
func AsList(v cty.Value) ([]cty.Value, bool) {
	if v.IsNull() || !v.IsKnown() {
		return nil, false
	}
	ty := v.Type()
	if !ty.IsListType() && !ty.IsSetType() && !ty.IsTupleType() {
		return nil, false
	}
	out := make([]cty.Value, 0, v.LengthInt())
	for it := v.ElementIterator(); it.Next(); {
		_, ev := it.Element()
		out = append(out, ev)
	}
	return out, true
}
