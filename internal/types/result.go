package types

import "time"

// MatchResult is one selection row: an instrument that satisfied a
// strategy on the evaluation date, with that strategy's supporting
// metrics. Rows are immutable once produced by the engine.
type MatchResult struct {
	Date     time.Time
	Code     string
	Strategy string
	Metrics  Metrics
}
