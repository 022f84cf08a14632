package query

import (
	"cmp"
	"errors"
	"strings"
)

// ErrNoData marks a full-scan aggregate over zero entities. Callers surface
// it as an explicit "no data" response instead of a numeric error.
var ErrNoData = errors.New("no data")

// Average returns the arithmetic mean of values.
func Average(values []float64) (float64, error) {
	if len(values) == 0 {
		return 0, ErrNoData
	}
	var total float64
	for _, v := range values {
		total += v
	}
	return total / float64(len(values)), nil
}

// WithinRange reports whether v falls inside the closed interval [min, max].
func WithinRange[T cmp.Ordered](v, min, max T) bool {
	return v >= min && v <= max
}

// ContainsFold reports whether s contains substr case-insensitively.
// An empty substr matches everything.
func ContainsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}

// AnyContainsFold reports whether any element contains substr
// case-insensitively.
func AnyContainsFold(items []string, substr string) bool {
	for _, item := range items {
		if ContainsFold(item, substr) {
			return true
		}
	}
	return false
}

// NormalizeIngredient lower-cases an ingredient name and strips digits, so
// "Sugar", "sugar" and "sugar2" all normalize to the same value.
func NormalizeIngredient(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range strings.ToLower(s) {
		if r >= '0' && r <= '9' {
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// CountDistinct counts distinct values after applying normalize to each
// element. Normalization runs before deduplication.
func CountDistinct(values []string, normalize func(string) string) int {
	seen := make(map[string]struct{}, len(values))
	for _, v := range values {
		if normalize != nil {
			v = normalize(v)
		}
		seen[v] = struct{}{}
	}
	return len(seen)
}
