package pool

import (
	"bytes"
	"context"
	"encoding/csv"
	"os"
	"slices"
	"time"

	"github.com/gocarina/gocsv"

	"github.com/omnialpha/stock-selector/pkg/errors"
)

// Source produces the ordered instrument pool for one run.
type Source interface {
	Codes(ctx context.Context) ([]string, error)
}

// fileRow mirrors one pool-file line; only the code column is consumed,
// any other columns are ignored.
type fileRow struct {
	Code string `csv:"code"`
}

// FileSource reads instrument codes from a CSV file with a "code" column.
type FileSource struct {
	Path string
}

// Codes implements Source. A missing file or a file without the "code"
// column is a configuration error, fatal to the run.
func (s *FileSource) Codes(_ context.Context) ([]string, error) {
	data, err := os.ReadFile(s.Path)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrCodePoolFileNotFound, err, "failed to read pool file %s", s.Path)
	}

	// gocsv leaves the field zero when the column is missing, so the
	// header is checked explicitly.
	header, err := csv.NewReader(bytes.NewReader(data)).Read()
	if err != nil {
		return nil, errors.Wrapf(errors.ErrCodePoolFileInvalid, err, "failed to parse pool file %s", s.Path)
	}

	if !slices.Contains(header, "code") {
		return nil, errors.New(errors.ErrCodePoolMissingCodeColumn, `pool file must contain a "code" column`)
	}

	var rows []fileRow
	if err := gocsv.UnmarshalBytes(data, &rows); err != nil {
		return nil, errors.Wrapf(errors.ErrCodePoolFileInvalid, err, "failed to parse pool file %s", s.Path)
	}

	codes := make([]string, 0, len(rows))
	for _, row := range rows {
		codes = append(codes, row.Code)
	}

	return codes, nil
}

// ConstituentSource is the provider subset the index pool reads from.
type ConstituentSource interface {
	GetIndexConstituents(ctx context.Context, date time.Time) ([]string, error)
}

// IndexSource pulls the default index membership for the run date,
// optionally truncated for quick scans.
type IndexSource struct {
	Provider ConstituentSource
	Date     time.Time
	// Limit truncates the pool to its first Limit codes; 0 disables.
	Limit int
}

// Codes implements Source.
func (s *IndexSource) Codes(ctx context.Context) ([]string, error) {
	codes, err := s.Provider.GetIndexConstituents(ctx, s.Date)
	if err != nil {
		return nil, err
	}

	if s.Limit > 0 && len(codes) > s.Limit {
		codes = codes[:s.Limit]
	}

	return codes, nil
}
