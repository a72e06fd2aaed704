package orchestration

import (
	"fmt"
	"sort"

	apperrors "github.com/agbru/domainflow/internal/errors"
)

// Query is the raw input accumulated by AddArgument and handed to the
// handler at dispatch time.
type Query map[string]any

// Add inserts key. Adding a key that is already present fails with
// apperrors.ArgumentError and leaves the query unchanged.
func (q Query) Add(key string, value any) error {
	if _, exists := q[key]; exists {
		return apperrors.ArgumentError{Key: key}
	}
	q[key] = value
	return nil
}

// Has reports whether key is present.
func (q Query) Has(key string) bool {
	_, ok := q[key]
	return ok
}

// String returns the value under key formatted as a string. ok is false
// when the key is absent. A nil value yields the empty string.
func (q Query) String(key string) (s string, ok bool) {
	v, ok := q[key]
	if !ok {
		return "", false
	}
	switch val := v.(type) {
	case nil:
		return "", true
	case string:
		return val, true
	}
	return fmt.Sprint(v), true
}

// Keys returns the keys in sorted order.
func (q Query) Keys() []string {
	keys := make([]string, 0, len(q))
	for k := range q {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
