package importer

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/xuri/excelize/v2"
)

// ParseRows converts tabular file content into header-keyed row maps.
// The first row is the header; every following row becomes one Row.
// The format is chosen from the file name extension: .xlsx reads the
// first sheet of a workbook, everything else is treated as CSV.
func ParseRows(fileName string, data []byte) ([]Row, error) {
	if strings.EqualFold(filepath.Ext(fileName), ".xlsx") {
		return parseXLSXRows(data)
	}
	return parseCSVRows(data)
}

// parseCSVRows parses UTF-8 CSV content. Invalid UTF-8 bytes are
// replaced rather than rejected so an exported-from-Excel file with a
// stray byte still imports.
func parseCSVRows(data []byte) ([]Row, error) {
	r := csv.NewReader(bytes.NewReader(sanitizeUTF8(data)))
	r.FieldsPerRecord = -1
	r.LazyQuotes = true

	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse csv: %w", err)
	}
	return recordsToRows(records), nil
}

// parseXLSXRows reads the first sheet of an XLSX workbook.
func parseXLSXRows(data []byte) ([]Row, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("no sheets in workbook")
	}

	records, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("read sheet %s: %w", sheets[0], err)
	}
	return recordsToRows(records), nil
}

// recordsToRows maps data rows onto the header row. Cells beyond the
// header width are dropped; rows shorter than the header leave the
// trailing columns absent from the map, so importers can tell a missing
// cell from an empty one.
func recordsToRows(records [][]string) []Row {
	if len(records) == 0 {
		return nil
	}

	header := records[0]
	rows := make([]Row, 0, len(records)-1)

	for _, record := range records[1:] {
		if isEmptyRecord(record) {
			continue
		}
		row := make(Row, len(header))
		for i, name := range header {
			name = strings.TrimSpace(name)
			if name == "" || i >= len(record) {
				continue
			}
			row[name] = record[i]
		}
		rows = append(rows, row)
	}
	return rows
}

func isEmptyRecord(record []string) bool {
	for _, cell := range record {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

// sanitizeUTF8 replaces invalid UTF-8 byte sequences with the Unicode
// replacement character. Valid input is returned unchanged.
func sanitizeUTF8(data []byte) []byte {
	if utf8.Valid(data) {
		return data
	}

	var buf bytes.Buffer
	buf.Grow(len(data))

	for len(data) > 0 {
		r, size := utf8.DecodeRune(data)
		if r == utf8.RuneError && size == 1 {
			buf.WriteRune('�')
			data = data[1:]
		} else {
			buf.WriteRune(r)
			data = data[size:]
		}
	}

	return buf.Bytes()
}
