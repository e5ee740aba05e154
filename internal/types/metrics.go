package types

import "sort"

// Metrics carries the supporting values a strategy emits for a match.
// Values are float64 for numeric figures or string for formatted ones
// (percentage strings, reporting periods).
type Metrics map[string]any

// Float returns the metric as a float64 when present and numeric.
func (m Metrics) Float(key string) (float64, bool) {
	value, ok := m[key].(float64)

	return value, ok
}

// String returns the metric as a string when present.
func (m Metrics) String(key string) (string, bool) {
	value, ok := m[key].(string)

	return value, ok
}

// Keys returns the metric names in sorted order.
func (m Metrics) Keys() []string {
	keys := make([]string, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}

	sort.Strings(keys)

	return keys
}
