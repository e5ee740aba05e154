package sink

import (
	"database/sql"
	"encoding/json"

	"github.com/google/uuid"
	_ "github.com/marcboeker/go-duckdb"
	"go.uber.org/zap"

	"github.com/omnialpha/stock-selector/internal/logger"
	"github.com/omnialpha/stock-selector/internal/types"
	"github.com/omnialpha/stock-selector/pkg/errors"
)

// DuckDBWriter appends selection results to a selection_results table in
// a DuckDB database, one uuid-keyed row per match with the metrics
// serialized as JSON.
type DuckDBWriter struct {
	path string
	log  *logger.Logger
}

// NewDuckDBWriter creates a DuckDB result writer targeting the database
// at path.
func NewDuckDBWriter(path string, log *logger.Logger) *DuckDBWriter {
	return &DuckDBWriter{
		path: path,
		log:  log,
	}
}

// Write implements Writer. Rows are inserted inside a single transaction
// so a failed run leaves no partial result set behind.
func (w *DuckDBWriter) Write(results []types.MatchResult) (string, error) {
	if len(results) == 0 {
		w.log.Info("no results to save")

		return "", nil
	}

	db, err := sql.Open("duckdb", w.path)
	if err != nil {
		return "", errors.Wrapf(errors.ErrCodeSinkWriteFailed, err, "failed to open results database %s", w.path)
	}
	defer db.Close()

	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS selection_results (
			id TEXT,
			date TIMESTAMP,
			code TEXT,
			strategy TEXT,
			metrics TEXT
		)
	`)
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeSinkWriteFailed, "failed to create results table", err)
	}

	tx, err := db.Begin()
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeSinkWriteFailed, "failed to begin transaction", err)
	}

	stmt, err := tx.Prepare(`
		INSERT INTO selection_results (id, date, code, strategy, metrics)
		VALUES (?, ?, ?, ?, ?)
	`)
	if err != nil {
		tx.Rollback()

		return "", errors.Wrap(errors.ErrCodeSinkWriteFailed, "failed to prepare insert", err)
	}

	for _, result := range results {
		payload, err := json.Marshal(result.Metrics)
		if err != nil {
			stmt.Close()
			tx.Rollback()

			return "", errors.Wrap(errors.ErrCodeSinkWriteFailed, "failed to encode metrics", err)
		}

		_, err = stmt.Exec(uuid.New().String(), result.Date, result.Code, result.Strategy, string(payload))
		if err != nil {
			stmt.Close()
			tx.Rollback()

			return "", errors.Wrap(errors.ErrCodeSinkWriteFailed, "failed to insert result row", err)
		}
	}

	stmt.Close()

	if err := tx.Commit(); err != nil {
		return "", errors.Wrap(errors.ErrCodeSinkWriteFailed, "failed to commit results", err)
	}

	w.log.Info("results saved",
		zap.String("path", w.path),
		zap.Int("rows", len(results)),
	)

	return w.path, nil
}
