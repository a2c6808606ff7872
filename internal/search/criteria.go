// Package search defines the multi-criteria search model and the engine
// that composes filtered, sorted, paginated reads against a store.
package search

import "time"

// NumberRange is an inclusive numeric bound. Nil ends impose no constraint.
type NumberRange struct {
	Min *float64
	Max *float64
}

// TimeRange is an inclusive time bound. Nil ends impose no constraint.
type TimeRange struct {
	From *time.Time
	To   *time.Time
}

// Criteria is an immutable set of optional field predicates combined with
// AND semantics. Fields absent from the criteria impose no constraint; the
// zero Criteria matches every row. With* methods return copies, so a
// Criteria handed to a store can never be mutated behind its back.
type Criteria struct {
	equals   map[string]string
	ranges   map[string]NumberRange
	times    map[string]TimeRange
	contains map[string]string
	flags    map[string]bool
}

// WithEqual adds an exact-match predicate.
func (c Criteria) WithEqual(field, value string) Criteria {
	out := c.clone()
	out.equals[field] = value
	return out
}

// WithRange adds an inclusive numeric range predicate.
func (c Criteria) WithRange(field string, min, max *float64) Criteria {
	out := c.clone()
	out.ranges[field] = NumberRange{Min: min, Max: max}
	return out
}

// WithTimeRange adds an inclusive time range predicate.
func (c Criteria) WithTimeRange(field string, from, to *time.Time) Criteria {
	out := c.clone()
	out.times[field] = TimeRange{From: from, To: to}
	return out
}

// WithContains adds a case-insensitive substring predicate.
func (c Criteria) WithContains(field, substring string) Criteria {
	out := c.clone()
	out.contains[field] = substring
	return out
}

// WithFlag adds a boolean flag predicate.
func (c Criteria) WithFlag(field string, value bool) Criteria {
	out := c.clone()
	out.flags[field] = value
	return out
}

// IsEmpty reports whether the criteria carries no predicates.
func (c Criteria) IsEmpty() bool {
	return len(c.equals) == 0 && len(c.ranges) == 0 && len(c.times) == 0 &&
		len(c.contains) == 0 && len(c.flags) == 0
}

// Equals returns a copy of the exact-match predicates.
func (c Criteria) Equals() map[string]string { return copyMap(c.equals) }

// Ranges returns a copy of the numeric range predicates.
func (c Criteria) Ranges() map[string]NumberRange { return copyMap(c.ranges) }

// TimeRanges returns a copy of the time range predicates.
func (c Criteria) TimeRanges() map[string]TimeRange { return copyMap(c.times) }

// Contains returns a copy of the substring predicates.
func (c Criteria) Contains() map[string]string { return copyMap(c.contains) }

// Flags returns a copy of the boolean flag predicates.
func (c Criteria) Flags() map[string]bool { return copyMap(c.flags) }

func (c Criteria) clone() Criteria {
	return Criteria{
		equals:   copyMap(c.equals),
		ranges:   copyMap(c.ranges),
		times:    copyMap(c.times),
		contains: copyMap(c.contains),
		flags:    copyMap(c.flags),
	}
}

func copyMap[V any](src map[string]V) map[string]V {
	dst := make(map[string]V, len(src)+1)
	for k, v := range src {
		dst[k] = v
	}
	return dst
}

// Sort names the field to order by. The zero value means the caller wants
// the handler default (newest first). Rows comparing equal on Field are
// always tie-broken by creation time descending so pagination across
// repeated calls stays deterministic.
type Sort struct {
	Field      string
	Descending bool
}

// IsZero reports whether no explicit sort was requested.
func (s Sort) IsZero() bool { return s.Field == "" }

// Pagination bounds.
const (
	DefaultLimit = 20
	MaxLimit     = 100
)

// Page is a 1-indexed pagination window.
type Page struct {
	Number int
	Limit  int
}

// Offset returns the number of rows to skip for this window.
func (p Page) Offset() int { return (p.Number - 1) * p.Limit }

// Valid reports whether the window is inside the documented bounds.
// Windows are validated at the request boundary; the engine only uses this
// as a defensive check against caller bugs.
func (p Page) Valid() bool {
	return p.Number >= 1 && p.Limit >= 1 && p.Limit <= MaxLimit
}

// Paginated is one bounded page of rows plus the total count matching the
// criteria ignoring pagination. Under concurrent writes Total may be
// slightly stale relative to Items; callers treat it as approximate.
type Paginated[T any] struct {
	Items []T `json:"items"`
	Total int `json:"total"`
	Page  int `json:"page"`
	Limit int `json:"limit"`
}
