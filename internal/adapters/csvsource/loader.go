// Package csvsource loads race results from a delimited text file.
package csvsource

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/baditaflorin/monegros/internal/core/domain"
	"github.com/baditaflorin/monegros/internal/core/timebucket"
	"github.com/baditaflorin/monegros/internal/ports"
)

// DefaultSeparator is the field separator of the published results file.
const DefaultSeparator = ';'

var required = []string{domain.ColumnDorsal, domain.ColumnBiker, domain.ColumnClub, domain.ColumnTime}

// missingMarkers are cell values read as a missing club. Matching is exact.
var missingMarkers = map[string]bool{
	"": true, "#N/A": true, "#N/A N/A": true, "#NA": true, "-1.#IND": true,
	"-1.#QNAN": true, "-NaN": true, "-nan": true, "1.#IND": true, "1.#QNAN": true,
	"<NA>": true, "N/A": true, "NA": true, "NULL": true, "NaN": true,
	"None": true, "n/a": true, "nan": true, "null": true,
}

// Loader reads a results file from disk.
type Loader struct {
	path      string
	separator rune
	logger    ports.Logger
}

// NewLoader creates a loader for path. A zero separator selects DefaultSeparator.
func NewLoader(path string, separator rune, logger ports.Logger) *Loader {
	if separator == 0 {
		separator = DefaultSeparator
	}
	return &Loader{path: path, separator: separator, logger: logger}
}

// Load reads the whole file. A missing file yields an error matching os.ErrNotExist.
func (l *Loader) Load(ctx context.Context) (*domain.Dataset, error) {
	l.logger.Info("Loading dataset", "path", l.path)

	f, err := os.Open(l.path)
	if err != nil {
		return nil, fmt.Errorf("open dataset: %w", err)
	}
	defer f.Close()

	ds, err := Parse(ctx, f, l.separator)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", l.path, err)
	}

	l.logger.Info("Dataset loaded", "rows", ds.Len())
	return ds, nil
}

// Parse reads a header line followed by result rows. Columns are located by
// header name, so their order in the file does not matter.
func Parse(ctx context.Context, r io.Reader, separator rune) (*domain.Dataset, error) {
	reader := csv.NewReader(r)
	reader.Comma = separator

	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: empty file", domain.ErrInvalidRow)
		}
		return nil, fmt.Errorf("read header: %w", err)
	}
	index := make(map[string]int, len(header))
	for i, h := range header {
		index[strings.ToLower(strings.TrimSpace(strings.TrimPrefix(h, "\ufeff")))] = i
	}
	for _, col := range required {
		if _, ok := index[col]; !ok {
			return nil, fmt.Errorf("%w %q", domain.ErrMissingColumn, col)
		}
	}

	var rows []domain.Row
	for line := 2; ; line++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		row, err := parseRecord(record, index)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		rows = append(rows, row)
	}
	return domain.NewDataset(rows), nil
}

func parseRecord(record []string, index map[string]int) (domain.Row, error) {
	field := func(col string) string {
		return strings.TrimSpace(record[index[col]])
	}

	dorsal, err := strconv.Atoi(field(domain.ColumnDorsal))
	if err != nil {
		return domain.Row{}, fmt.Errorf("%w: dorsal %q", domain.ErrInvalidRow, field(domain.ColumnDorsal))
	}
	tm := field(domain.ColumnTime)
	if _, err := timebucket.ParseClock(tm); err != nil {
		return domain.Row{}, fmt.Errorf("%w: %w", domain.ErrInvalidRow, err)
	}

	row := domain.Row{
		Dorsal: dorsal,
		Biker:  field(domain.ColumnBiker),
		Time:   tm,
	}
	// Keep the raw club text untrimmed; the normalizer owns whitespace handling.
	if club := record[index[domain.ColumnClub]]; strings.TrimSpace(club) != "" && !missingMarkers[club] {
		row.Club = &club
	}
	return row, nil
}
