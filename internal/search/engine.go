package search

import (
	"context"
	"errors"
	"fmt"

	"github.com/LaunchLens/analysis_layer/internal/result"
)

// Store is the read surface the engine composes over. Implementations
// translate the immutable Criteria into their own query construct in one
// step and return taxonomy errors from their single storage seam.
type Store[T any] interface {
	// Count returns how many rows match the criteria, ignoring pagination.
	Count(ctx context.Context, criteria Criteria) (int, error)
	// Select returns at most limit rows starting at offset, ordered by sort
	// with the created-time tie-break applied.
	Select(ctx context.Context, criteria Criteria, sort Sort, limit, offset int) ([]T, error)
}

// Engine runs criteria-driven searches against a store. It holds no state
// across invocations; every call is an independent request/response.
type Engine[T any] struct {
	store       Store[T]
	defaultSort Sort
}

// NewEngine creates an engine. defaultSort applies when a query carries no
// explicit sort; a zero defaultSort falls back to created_at descending.
func NewEngine[T any](store Store[T], defaultSort Sort) *Engine[T] {
	if defaultSort.IsZero() {
		defaultSort = Sort{Field: "created_at", Descending: true}
	}
	return &Engine[T]{store: store, defaultSort: defaultSort}
}

// Search issues two reads against the store — one for the total matching
// the criteria, one for the bounded page — and assembles a Paginated result.
// A page beyond the last returns empty items with the correct total. The
// two reads are not a snapshot: concurrent writes between them can leave
// Total slightly stale relative to Items, which is accepted behavior.
func (e *Engine[T]) Search(ctx context.Context, criteria Criteria, sort Sort, page Page) result.Result[Paginated[T]] {
	// Bounds were validated at the request boundary; a window reaching the
	// engine out of contract indicates a caller bug, not user input.
	if !page.Valid() {
		return result.Fail[Paginated[T]](result.Unexpected(
			fmt.Sprintf("pagination window out of contract: page=%d limit=%d", page.Number, page.Limit)))
	}
	if sort.IsZero() {
		sort = e.defaultSort
	}

	total, err := e.store.Count(ctx, criteria)
	if err != nil {
		return result.Fail[Paginated[T]](classify(ctx, err, "count"))
	}

	out := Paginated[T]{Items: []T{}, Total: total, Page: page.Number, Limit: page.Limit}
	if total == 0 || page.Offset() >= total {
		return result.OK(out)
	}

	items, err := e.store.Select(ctx, criteria, sort, page.Limit, page.Offset())
	if err != nil {
		return result.Fail[Paginated[T]](classify(ctx, err, "select"))
	}
	if items != nil {
		out.Items = items
	}
	return result.OK(out)
}

// classify converts a store error into the taxonomy. Stores already return
// taxonomy errors from their storage seam; anything else that arrives here
// is either a cancellation or an unclassified defect.
func classify(ctx context.Context, err error, op string) *result.Error {
	var taxonomy *result.Error
	if errors.As(err, &taxonomy) {
		return taxonomy
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) || ctx.Err() != nil {
		return result.TransientStorage("cancelled")
	}
	return result.Unexpected(fmt.Sprintf("search %s failed: %v", op, err))
}
