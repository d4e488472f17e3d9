package csvio

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"slices"
	"strings"
)

// Row maps header names to cell values.
type Row map[string]string

// Section is one titled table of an export.
type Section struct {
	Title  string
	Header []string
	Rows   []Row
}

func newReader(r io.Reader) *csv.Reader {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true
	cr.LazyQuotes = true
	return cr
}

// zip pairs record with header positionally. Records of a different width
// are rejected.
func zip(header, record []string) (Row, bool) {
	if len(record) != len(header) {
		return nil, false
	}
	row := make(Row, len(header))
	for i, h := range header {
		row[h] = strings.TrimSpace(record[i])
	}
	return row, true
}

// ParseRows reads a flat CSV table: the first record is the header and every
// later record of the same width becomes a Row. The second return value
// counts dropped records.
func ParseRows(r io.Reader) ([]Row, int, error) {
	records, err := newReader(r).ReadAll()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to read CSV: %w", err)
	}
	if len(records) < 2 {
		return nil, 0, errors.New("CSV must contain a header and at least one data row")
	}

	header := trimAll(records[0])
	var rows []Row
	dropped := 0
	for _, rec := range records[1:] {
		if row, ok := zip(header, rec); ok {
			rows = append(rows, row)
		} else {
			dropped++
		}
	}
	return rows, dropped, nil
}

func trimAll(fields []string) []string {
	out := make([]string, len(fields))
	for i, f := range fields {
		out[i] = strings.TrimSpace(f)
	}
	return out
}

// ParseSections reads an export produced by Exporter. Lines before the first
// known section title are ignored, as are records whose width does not
// match their section header. The second return value counts dropped
// records.
func ParseSections(r io.Reader) ([]Section, int, error) {
	records, err := newReader(r).ReadAll()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to read CSV: %w", err)
	}

	var sections []Section
	var current *Section
	dropped := 0
	for _, rec := range records {
		if len(rec) == 1 {
			title := strings.TrimSpace(rec[0])
			if slices.Contains(knownSections, title) {
				sections = append(sections, Section{Title: title})
				current = &sections[len(sections)-1]
				continue
			}
		}
		switch {
		case current == nil:
			// preamble
		case current.Header == nil:
			current.Header = trimAll(rec)
		default:
			if row, ok := zip(current.Header, rec); ok {
				current.Rows = append(current.Rows, row)
			} else {
				dropped++
			}
		}
	}
	if len(sections) == 0 {
		return nil, dropped, errors.New("no recognizable sections found")
	}
	return sections, dropped, nil
}
