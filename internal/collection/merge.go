// Package collection merges entity lists by identity.
package collection

// Index returns the set of keys present in items.
func Index[T any, K comparable](items []T, key func(T) K) map[K]struct{} {
	seen := make(map[K]struct{}, len(items))
	for _, it := range items {
		seen[key(it)] = struct{}{}
	}
	return seen
}

// MergeIfMissing returns existing with every non-nil candidate whose key is
// not already present prepended, in the order supplied. Duplicate candidates
// collapse to their first occurrence. When no candidate is non-nil, existing
// is returned as is.
func MergeIfMissing[T any, K comparable](existing []T, key func(T) K, candidates ...*T) []T {
	present := make([]T, 0, len(candidates))
	for _, c := range candidates {
		if c != nil {
			present = append(present, *c)
		}
	}
	if len(present) == 0 {
		return existing
	}

	seen := Index(existing, key)
	toAdd := make([]T, 0, len(present))
	for _, c := range present {
		k := key(c)
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		toAdd = append(toAdd, c)
	}

	out := make([]T, 0, len(toAdd)+len(existing))
	out = append(out, toAdd...)
	return append(out, existing...)
}
