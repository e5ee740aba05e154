package sink

import (
	"encoding/csv"
	"os"

	"go.uber.org/zap"

	"github.com/omnialpha/stock-selector/internal/logger"
	"github.com/omnialpha/stock-selector/internal/types"
	"github.com/omnialpha/stock-selector/pkg/errors"
)

const dateLayout = "2006-01-02"

// CSVWriter persists selection results as a CSV table whose first three
// columns are, in order, evaluation date, instrument code and matched
// strategy, followed by the union of metric columns.
type CSVWriter struct {
	path string
	log  *logger.Logger
}

// NewCSVWriter creates a CSV result writer targeting path.
func NewCSVWriter(path string, log *logger.Logger) *CSVWriter {
	return &CSVWriter{
		path: path,
		log:  log,
	}
}

// Write implements Writer.
func (w *CSVWriter) Write(results []types.MatchResult) (string, error) {
	if len(results) == 0 {
		w.log.Info("no results to save")

		return "", nil
	}

	columns := metricColumns(results)
	header := append([]string{"date", "code", "strategy"}, columns...)

	file, err := os.Create(w.path)
	if err != nil {
		return "", errors.Wrapf(errors.ErrCodeSinkWriteFailed, err, "failed to create output file %s", w.path)
	}
	defer file.Close()

	writer := csv.NewWriter(file)

	if err := writer.Write(header); err != nil {
		return "", errors.Wrap(errors.ErrCodeSinkWriteFailed, "failed to write header", err)
	}

	for _, result := range results {
		record := make([]string, 0, len(header))
		record = append(record, result.Date.Format(dateLayout), result.Code, result.Strategy)

		for _, column := range columns {
			record = append(record, formatMetric(result.Metrics[column]))
		}

		if err := writer.Write(record); err != nil {
			return "", errors.Wrap(errors.ErrCodeSinkWriteFailed, "failed to write result row", err)
		}
	}

	writer.Flush()

	if err := writer.Error(); err != nil {
		return "", errors.Wrap(errors.ErrCodeSinkWriteFailed, "failed to flush output", err)
	}

	w.log.Info("results saved",
		zap.String("path", w.path),
		zap.Int("rows", len(results)),
	)

	return w.path, nil
}
