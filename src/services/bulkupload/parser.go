// Package bulkupload imports students from CSV or Excel files with
// partial-success semantics and a single undoable ledger entry.
package bulkupload

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"path/filepath"
	"strings"

	"Backend-GnaasCMS/src/models"

	"github.com/xuri/excelize/v2"
)

// Row is one decoded spreadsheet row keyed by normalized header name.
type Row map[string]string

// ParseFile decodes an uploaded file into rows, dispatching on extension.
func ParseFile(filename string, content []byte) ([]Row, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".csv":
		return parseCSV(content)
	case ".xlsx", ".xls":
		return parseExcel(content)
	default:
		return nil, models.Validationf("unsupported file type %q, want .csv or .xlsx", filepath.Ext(filename))
	}
}

func parseCSV(content []byte) ([]Row, error) {
	r := csv.NewReader(bytes.NewReader(content))
	r.TrimLeadingSpace = true
	r.FieldsPerRecord = -1

	records, err := r.ReadAll()
	if err != nil {
		return nil, models.Validationf("malformed CSV: %v", err)
	}
	if len(records) < 1 {
		return nil, models.Validationf("file is empty")
	}

	headers := make([]string, len(records[0]))
	for i, h := range records[0] {
		headers[i] = normalizeHeader(h)
	}

	rows := make([]Row, 0, len(records)-1)
	for _, record := range records[1:] {
		row := Row{}
		for i, cell := range record {
			if i < len(headers) && headers[i] != "" {
				row[headers[i]] = strings.TrimSpace(cell)
			}
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func parseExcel(content []byte) ([]Row, error) {
	f, err := excelize.OpenReader(bytes.NewReader(content))
	if err != nil {
		return nil, models.Validationf("malformed Excel file: %v", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, models.Validationf("file has no sheets")
	}
	records, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", sheets[0], err)
	}
	if len(records) < 1 {
		return nil, models.Validationf("file is empty")
	}

	headers := make([]string, len(records[0]))
	for i, h := range records[0] {
		headers[i] = normalizeHeader(h)
	}

	rows := make([]Row, 0, len(records)-1)
	for _, record := range records[1:] {
		row := Row{}
		for i, cell := range record {
			if i < len(headers) && headers[i] != "" {
				row[headers[i]] = strings.TrimSpace(cell)
			}
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// normalizeHeader lowercases a header and strips everything but letters and
// digits, so "Full Name", "full_name" and "FullName" all collide.
func normalizeHeader(h string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(strings.TrimSpace(h)) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	return b.String()
}
