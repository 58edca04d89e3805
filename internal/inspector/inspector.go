// Package inspector defines the Go-side contract of an analysis unit.
//
// An inspector's declarative metadata lives in its HCL manifest; this
// package covers the imperative half: the decorate function invoked
// for an eligible item, and the optional supports predicate narrowing
// eligibility beyond the manifest's item kind.
package inspector

import (
	"context"
	"errors"

	"github.com/zclconf/go-cty/cty"

	"github.com/vk/tagscan/internal/item"
)

// ErrNotApplicable signals that an inspector looked at an item and has
// nothing to say about it. The engine records the not-applicable marker
// instead of a value; it is not a failure.
var ErrNotApplicable = errors.New("not applicable")

// DecorateFunc produces the inspector's result for one item. The
// returned value is stored under the inspector's own tag name; an
// inspector with additional declared produces tags sets them on the
// item directly. Any returned error other than ErrNotApplicable is
// recorded as an error marker.
type DecorateFunc func(ctx context.Context, it *item.Item) (cty.Value, error)

// SupportsFunc optionally narrows which items an inspector accepts,
// on top of the manifest-declared kind. A nil SupportsFunc accepts
// every item of the declared kind.
type SupportsFunc func(it *item.Item) bool
