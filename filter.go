package tokenmart

import "strings"

// Criterion reports whether a record matches one filter field. A nil
// Criterion means the field is ignored and matches everything.
type Criterion[T any] func(T) bool

// Filter returns the records matching every non-nil criterion, preserving
// order. It never mutates list; with no effective criteria the result has
// the same content and order as list.
func Filter[T any](list []T, criteria ...Criterion[T]) []T {
	active := criteria[:0:0]
	for _, c := range criteria {
		if c != nil {
			active = append(active, c)
		}
	}

	out := make([]T, 0, len(list))
	for _, r := range list {
		ok := true
		for _, c := range active {
			if !c(r) {
				ok = false
				break
			}
		}
		if ok {
			out = append(out, r)
		}
	}
	return out
}

// Text builds a case-insensitive substring criterion against the field read
// by get. A blank query returns nil, meaning the field is ignored.
func Text[T any](get func(T) string, query string) Criterion[T] {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil
	}
	q := strings.ToLower(query)
	return func(r T) bool {
		return strings.Contains(strings.ToLower(get(r)), q)
	}
}

// Equal builds an exact-equality criterion against the field read by get.
// When want equals the unset sentinel, the field is ignored (nil is
// returned). Numeric and enum filters use their domain's "no filter" value
// as the sentinel, e.g. -1 for owning ids and the zero status for
// lifecycle enums.
func Equal[T any, V comparable](get func(T) V, want, unset V) Criterion[T] {
	if want == unset {
		return nil
	}
	return func(r T) bool {
		return get(r) == want
	}
}
