package localfile

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	"reviewpulse/internal/domain"
)

// Loader reads a review table export from disk. Useful for local
// development and backfills when the object store is unreachable.
// Supports .csv and .xlsx; satisfies domain.RecordSource.
type Loader struct {
	path string
}

func New(path string) (*Loader, error) {
	if path == "" {
		return nil, errors.New("localfile: path is required")
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv", ".xlsx":
	default:
		return nil, fmt.Errorf("localfile: unsupported extension %q", filepath.Ext(path))
	}
	return &Loader{path: path}, nil
}

func (l *Loader) Fetch(ctx context.Context) ([]domain.RawRow, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if strings.EqualFold(filepath.Ext(l.path), ".xlsx") {
		return l.fetchXLSX()
	}
	return l.fetchCSV()
}

func (l *Loader) fetchCSV() ([]domain.RawRow, error) {
	f, err := os.Open(l.path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	r.LazyQuotes = true

	header, err := r.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("localfile: %s is empty", l.path)
	}
	if err != nil {
		return nil, err
	}
	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], "\uFEFF")
	}

	var out []domain.RawRow
	for {
		rec, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		out = append(out, zip(header, rec))
	}
	return out, nil
}

// fetchXLSX reads the first sheet, first row as header.
func (l *Loader) fetchXLSX() ([]domain.RawRow, error) {
	f, err := excelize.OpenFile(l.path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("localfile: %s has no sheets", l.path)
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("localfile: %s is empty", l.path)
	}

	header := rows[0]
	out := make([]domain.RawRow, 0, len(rows)-1)
	for _, rec := range rows[1:] {
		out = append(out, zip(header, rec))
	}
	return out, nil
}

func zip(header, rec []string) domain.RawRow {
	row := make(domain.RawRow, len(header))
	for i, col := range header {
		if i < len(rec) {
			row[col] = rec[i]
		} else {
			row[col] = ""
		}
	}
	return row
}
