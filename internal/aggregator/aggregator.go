package aggregator

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/IPDS-59/commodity-summarizer/internal/model"
	"github.com/IPDS-59/commodity-summarizer/internal/parser"
)

// Aggregator builds the kabupaten and kecamatan summaries for one run.
// Files are processed one at a time in the order given; a failing file is
// reported and skipped, never fatal.
type Aggregator struct {
	runID      string
	onProgress ProgressFunc
}

// New creates an aggregator. onProgress may be nil.
func New(onProgress ProgressFunc) *Aggregator {
	return &Aggregator{
		runID:      uuid.New().String(),
		onProgress: onProgress,
	}
}

// kabAccum accumulates matched kabupaten rows across files: row-level
// concatenation with the column set unioned in first-seen order.
type kabAccum struct {
	columns []string
	seen    map[string]bool
	rows    []model.Row
}

func newKabAccum() *kabAccum {
	return &kabAccum{seen: make(map[string]bool)}
}

func (k *kabAccum) append(sheet *parser.Sheet, rows []model.Row) {
	for _, col := range sheet.Columns {
		if col == "" || k.seen[col] {
			continue
		}
		k.seen[col] = true
		k.columns = append(k.columns, col)
	}
	k.rows = append(k.rows, rows...)
}

// Aggregate runs the pipeline over the given workbook paths. Sheet names
// are constructed as {prefix}_komoditas_kab and {prefix}_komoditas_kec.
// With no input paths both results are absent. The kab summary is nil when
// no row matched kabCode; the kec table is empty when nothing matched.
func (a *Aggregator) Aggregate(paths []string, kabCode int, prefix string) (*model.KabSummary, []model.KecSummaryRow) {
	if len(paths) == 0 {
		a.emit("warning", "no input files to process", nil)
		return nil, nil
	}

	start := time.Now()
	kabSheet := prefix + "_komoditas_kab"
	kecSheet := prefix + "_komoditas_kec"

	a.emit("start", fmt.Sprintf("processing %d file(s)", len(paths)), map[string]any{
		"files":    len(paths),
		"kab_code": kabCode,
		"prefix":   prefix,
	})

	accum := newKabAccum()
	reducer := NewKecReducer()

	for _, path := range paths {
		if err := a.processFile(path, kabCode, kabSheet, kecSheet, accum, reducer); err != nil {
			a.emit("error", fmt.Sprintf("error processing file %s: %v", path, err), map[string]any{
				"file": filepath.Base(path),
			})
		}
	}

	kab := a.summarizeKab(accum, kabCode, kabSheet)
	kec := a.summarizeKec(reducer, kabCode, kecSheet)

	a.emit("done", "aggregation finished", map[string]any{
		"kab_rows":   len(accum.rows),
		"kec_groups": len(kec),
		"elapsed":    time.Since(start).String(),
	})

	return kab, kec
}

// processFile loads both sheets of one workbook and folds the matching
// rows into the accumulators. Kab rows already appended survive a later
// kec-sheet failure.
func (a *Aggregator) processFile(path string, kabCode int, kabSheet, kecSheet string, accum *kabAccum, reducer *KecReducer) error {
	wb, err := parser.OpenWorkbook(path)
	if err != nil {
		return err
	}
	defer wb.Close()

	a.emit("file", fmt.Sprintf("processing file: %s", path), map[string]any{
		"file":    filepath.Base(path),
		"file_id": wb.FileID(),
	})

	sheet, err := wb.Sheet(kabSheet)
	if err != nil {
		return err
	}
	accum.append(sheet, filterByKab(sheet.Rows, kabCode))

	sheet, err = wb.Sheet(kecSheet)
	if err != nil {
		return err
	}
	required := append([]string{"kec"}, model.MeasureColumns...)
	if missing := sheet.MissingColumns(required...); len(missing) > 0 {
		return fmt.Errorf("sheet %s missing columns: %s", kecSheet, strings.Join(missing, ", "))
	}

	reducer.Merge(reduceSheetRows(filterByKab(sheet.Rows, kabCode), filepath.Base(path)))
	return nil
}

// filterByKab keeps the rows whose kab cell equals the requested code.
func filterByKab(rows []model.Row, kabCode int) []model.Row {
	var out []model.Row
	for _, row := range rows {
		if MatchKab(parser.Text(row, "kab"), kabCode) {
			out = append(out, row)
		}
	}
	return out
}

var reKabLabel = regexp.MustCompile(`^\[(\d+)\]`)

// MatchKab reports whether a kab cell refers to the given code. Source
// files carry the cell either as a plain number or as a "[7205] NAME"
// label; both forms match.
func MatchKab(cell string, kabCode int) bool {
	cell = strings.TrimSpace(cell)
	if cell == "" {
		return false
	}
	if f, err := strconv.ParseFloat(cell, 64); err == nil {
		return f == float64(kabCode)
	}
	if m := reKabLabel.FindStringSubmatch(cell); m != nil {
		code, err := strconv.Atoi(m[1])
		return err == nil && code == kabCode
	}
	return false
}

// summarizeKab builds the single-row district total from the accumulated
// rows: every numeric column summed except the excluded identifiers, with
// prov/kab taken from the first accumulated row.
func (a *Aggregator) summarizeKab(accum *kabAccum, kabCode int, sheetName string) *model.KabSummary {
	if len(accum.rows) == 0 {
		a.emit("warning", fmt.Sprintf("no data found for kab %d in the %s sheets", kabCode, sheetName), nil)
		return nil
	}

	excluded := make(map[string]bool, len(model.ExcludedColumns))
	for _, c := range model.ExcludedColumns {
		excluded[c] = true
	}

	summary := &model.KabSummary{Totals: make(map[string]float64)}
	for _, col := range accum.columns {
		if excluded[col] || !isNumericColumn(accum.rows, col) {
			continue
		}
		var sum float64
		for _, row := range accum.rows {
			sum += parser.Float(row, col)
		}
		summary.Columns = append(summary.Columns, col)
		summary.Totals[col] = sum
	}

	first := accum.rows[0]
	if accum.seen["id_prov"] {
		summary.Prov = parser.Text(first, "id_prov")
		summary.HasProv = true
	} else {
		a.emit("warning", "column id_prov not found in the data", nil)
	}
	if accum.seen["id_kab"] {
		summary.Kab = parser.Text(first, "id_kab")
		summary.HasKab = true
	} else {
		a.emit("warning", "column id_kab not found in the data", nil)
	}

	// The renamed identifiers replace any summed column of the same name;
	// the output carries exactly one prov and one kab column.
	if summary.HasProv {
		dropSummed(summary, "prov")
	}
	if summary.HasKab {
		dropSummed(summary, "kab")
	}

	label := parser.Text(first, "kab")
	if summary.HasKab && parser.IsNumeric(label) {
		// A numeric kab cell is a code, not a name; the display name
		// derives from id_kab then.
		label = summary.Kab
	}
	summary.Label = label

	return summary
}

// dropSummed removes a summed column that a renamed identifier supersedes.
func dropSummed(summary *model.KabSummary, col string) {
	if _, ok := summary.Totals[col]; !ok {
		return
	}
	delete(summary.Totals, col)
	for i, c := range summary.Columns {
		if c == col {
			summary.Columns = append(summary.Columns[:i], summary.Columns[i+1:]...)
			break
		}
	}
}

// summarizeKec finalizes the cross-file kecamatan table. The identifier
// columns id_prov/id_kab/id_kec are attached present-or-skip; stage-one
// partials only carry kec plus the measure columns, so absence is the
// normal case and is reported, not fatal.
func (a *Aggregator) summarizeKec(reducer *KecReducer, kabCode int, sheetName string) []model.KecSummaryRow {
	if reducer.Empty() {
		a.emit("warning", fmt.Sprintf("no data found for kab %d in the %s sheets", kabCode, sheetName), nil)
		return nil
	}

	a.emit("warning", "columns not found in the kecamatan data: id_prov, id_kab, id_kec", nil)

	return reducer.Rows()
}

// isNumericColumn mirrors a numeric-dtype check over accumulated rows: at
// least one non-empty cell, and every non-empty cell parses as a number.
// Cells absent from a row (column union fill) count as empty.
func isNumericColumn(rows []model.Row, col string) bool {
	any := false
	for _, row := range rows {
		cell := parser.Text(row, col)
		if cell == "" {
			continue
		}
		if !parser.IsNumeric(cell) {
			return false
		}
		any = true
	}
	return any
}
