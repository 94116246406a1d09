package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"infracciones.transito.co/internal/models"
)

var errEmptyFile = errors.New("file has no header row")

// LoadResult is the outcome of loading the dataset at startup. Records is
// always usable: it is empty when Err is set.
type LoadResult struct {
	Path    string
	Schema  Schema
	Records []models.InfractionRecord
	Err     error
}

// OK reports whether the dataset was loaded.
func (r LoadResult) OK() bool {
	return r.Err == nil
}

// LoadOrEmpty loads the dataset at path and degrades to an empty record set on
// failure. The caller decides how to report Err.
func LoadOrEmpty(path string, schema Schema) LoadResult {
	records, resolved, err := loadFile(path, schema)
	if err != nil {
		return LoadResult{Path: path, Schema: schema, Records: []models.InfractionRecord{}, Err: err}
	}
	return LoadResult{Path: path, Schema: resolved, Records: records}
}

// LoadFile reads the CSV dataset at path.
func LoadFile(path string, schema Schema) ([]models.InfractionRecord, error) {
	records, _, err := loadFile(path, schema)
	return records, err
}

func loadFile(path string, schema Schema) ([]models.InfractionRecord, Schema, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, Schema{}, &LoadError{Path: path, Err: err}
	}
	defer f.Close() // nolint:errcheck

	records, resolved, err := load(f, schema)
	if err != nil {
		var loadErr *LoadError
		if errors.As(err, &loadErr) {
			loadErr.Path = path
		}
		return nil, Schema{}, err
	}
	return records, resolved, nil
}

// Load reads CSV data with a header row, selecting and renaming the columns of
// schema. Cells are kept verbatim so identifiers keep their leading zeros,
// except that missing markers such as "NA" or "NULL" become empty outside the
// id and stratum columns.
func Load(r io.Reader, schema Schema) ([]models.InfractionRecord, error) {
	records, _, err := load(r, schema)
	return records, err
}

func load(r io.Reader, schema Schema) ([]models.InfractionRecord, Schema, error) {
	reader := csv.NewReader(r)
	// Short rows are padded with empty cells below.
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, Schema{}, &LoadError{Err: errEmptyFile}
	}
	if err != nil {
		return nil, Schema{}, &LoadError{Err: fmt.Errorf("error reading header: %w", err)}
	}
	header = normalizeHeader(header)

	resolved, err := schema.resolve(header)
	if err != nil {
		return nil, Schema{}, &LoadError{Err: err}
	}

	positions := make(map[string]int, len(resolved.Columns))
	for _, c := range resolved.Columns {
		for i, h := range header {
			if h == c.Header {
				positions[c.Field] = i
				break
			}
		}
	}

	records := []models.InfractionRecord{}
	for {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, Schema{}, &LoadError{Err: err}
		}
		if len(row) > len(header) {
			line, _ := reader.FieldPos(0)
			return nil, Schema{}, &LoadError{Err: fmt.Errorf("line %d: expected %d fields, saw %d", line, len(header), len(row))}
		}
		cell := func(field string) string {
			i, ok := positions[field]
			if !ok || i >= len(row) {
				return ""
			}
			return blankMissing(field, row[i])
		}

		record := models.NewInfractionRecord(
			cell(FieldID),
			cell(FieldStratum),
			cell(FieldPublicServiceRate),
			cell(FieldEstimatedIncome),
			cell(FieldInfractionType),
			cell(FieldFineValue),
			cell(FieldLoadPercentage),
			cell(FieldSafeguardPercentage),
		)
		if resolved.HasField(FieldAmountToPay) {
			record = record.WithAmountToPay(cell(FieldAmountToPay))
		}
		records = append(records, record)
	}

	return records, resolved, nil
}

// missingMarkers are the cell values read_csv treats as missing by default.
// They match the whole cell, case and surrounding spaces included.
var missingMarkers = map[string]struct{}{
	"#N/A": {}, "#N/A N/A": {}, "#NA": {}, "-1.#IND": {}, "-1.#QNAN": {},
	"-NaN": {}, "-nan": {}, "1.#IND": {}, "1.#QNAN": {}, "<NA>": {},
	"N/A": {}, "NA": {}, "NULL": {}, "NaN": {}, "None": {},
	"n/a": {}, "nan": {}, "null": {},
}

// blankMissing turns missing markers into empty cells. The id and stratum
// columns are read as raw text and keep every value as written.
func blankMissing(field, value string) string {
	if field == FieldID || field == FieldStratum {
		return value
	}
	if _, ok := missingMarkers[value]; ok {
		return ""
	}
	return value
}

// normalizeHeader drops a UTF-8 BOM and trims the column names.
func normalizeHeader(header []string) []string {
	out := make([]string, len(header))
	for i, h := range header {
		if i == 0 {
			h = strings.TrimPrefix(h, "\ufeff")
		}
		out[i] = strings.TrimSpace(h)
	}
	return out
}
