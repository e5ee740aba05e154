package sink

import (
	"fmt"
	"strconv"

	"github.com/omnialpha/stock-selector/internal/types"
)

// Writer persists an ordered sequence of selection results.
type Writer interface {
	// Write persists the rows and returns the output location. An empty
	// result set writes nothing and returns an empty path.
	Write(results []types.MatchResult) (string, error)
}

// metricColumns returns the union of metric keys across all rows: sorted
// within a row, first-seen order across the row sequence.
func metricColumns(results []types.MatchResult) []string {
	var columns []string

	seen := make(map[string]struct{})

	for _, result := range results {
		for _, key := range result.Metrics.Keys() {
			if _, ok := seen[key]; ok {
				continue
			}

			seen[key] = struct{}{}
			columns = append(columns, key)
		}
	}

	return columns
}

// formatMetric renders one metric cell; absent metrics render empty.
func formatMetric(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case string:
		return v
	default:
		return fmt.Sprint(v)
	}
}
