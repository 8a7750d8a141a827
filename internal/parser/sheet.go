package parser

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"

	"github.com/IPDS-59/commodity-summarizer/internal/model"
)

// Workbook wraps an opened xlsx file. Each workbook gets a file ID so
// progress events can refer to it independently of the path.
type Workbook struct {
	file   *excelize.File
	fileID string
}

// OpenWorkbook opens an xlsx file for reading.
func OpenWorkbook(path string) (*Workbook, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	return &Workbook{
		file:   f,
		fileID: uuid.New().String(),
	}, nil
}

// FromFile wraps an already-open excelize file (used by tests).
func FromFile(f *excelize.File) *Workbook {
	return &Workbook{
		file:   f,
		fileID: uuid.New().String(),
	}
}

// FileID returns the workbook's ID.
func (w *Workbook) FileID() string {
	return w.fileID
}

// Close closes the underlying file.
func (w *Workbook) Close() error {
	if w.file != nil {
		return w.file.Close()
	}
	return nil
}

// Sheet is one loaded sheet: the header in source order plus every data
// row as a column-name keyed map.
type Sheet struct {
	Name    string
	Columns []string
	Rows    []model.Row
}

// Sheet loads a named sheet. The first row is the header; data rows are
// keyed by the trimmed header names. An unknown sheet name is an error.
func (w *Workbook) Sheet(name string) (*Sheet, error) {
	if w.file == nil {
		return nil, fmt.Errorf("no file loaded")
	}

	rows, err := w.file.GetRows(name)
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %s: %w", name, err)
	}
	if len(rows) == 0 {
		return &Sheet{Name: name}, nil
	}

	header := make([]string, 0, len(rows[0]))
	for _, h := range rows[0] {
		header = append(header, strings.TrimSpace(h))
	}

	out := make([]model.Row, 0, len(rows)-1)
	for _, raw := range rows[1:] {
		row := make(model.Row, len(header))
		for i, col := range header {
			if col == "" {
				continue
			}
			if i < len(raw) {
				row[col] = strings.TrimSpace(raw[i])
			} else {
				row[col] = ""
			}
		}
		out = append(out, row)
	}

	return &Sheet{Name: name, Columns: header, Rows: out}, nil
}

// HasColumn reports whether the header declares the column.
func (s *Sheet) HasColumn(name string) bool {
	for _, c := range s.Columns {
		if c == name {
			return true
		}
	}
	return false
}

// MissingColumns checks the declared columns once at load time and returns
// the ones the header lacks, in the declared order.
func (s *Sheet) MissingColumns(declared ...string) []string {
	var missing []string
	for _, d := range declared {
		if !s.HasColumn(d) {
			missing = append(missing, d)
		}
	}
	return missing
}

// Text returns the raw trimmed cell value, "" when the column is absent.
func Text(r model.Row, col string) string {
	return r[col]
}

// Float parses the cell as a float64. Thousands separators are stripped;
// empty or unparseable cells read as 0.
func Float(r model.Row, col string) float64 {
	f, _ := OptionalFloat(r, col)
	return f
}

// OptionalFloat parses the cell as a float64 and reports whether the cell
// held a parseable number.
func OptionalFloat(r model.Row, col string) (float64, bool) {
	s := strings.TrimSpace(r[col])
	if s == "" {
		return 0, false
	}
	s = strings.ReplaceAll(s, ",", "")
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return f, true
}

// IsNumeric reports whether a cell value parses as a number after
// thousands-separator stripping. Empty cells are not numeric.
func IsNumeric(s string) bool {
	s = strings.TrimSpace(s)
	if s == "" {
		return false
	}
	s = strings.ReplaceAll(s, ",", "")
	_, err := strconv.ParseFloat(s, 64)
	return err == nil
}
