package aggregator

import (
	"sort"
	"strconv"

	"github.com/IPDS-59/commodity-summarizer/internal/model"
	"github.com/IPDS-59/commodity-summarizer/internal/parser"
)

// KecPartial is one file's stage-one result: the measure columns summed
// per kecamatan within that file, tagged with the source file name.
type KecPartial struct {
	File string
	Rows []PartialRow
}

// PartialRow holds one kecamatan's within-file sums.
type PartialRow struct {
	Kec      string
	Measures map[string]float64
}

// reduceSheetRows builds a file's partial: rows grouped by the kec cell,
// measure columns summed. Rows without a kec value are dropped, matching
// a group-by on that key.
func reduceSheetRows(rows []model.Row, file string) KecPartial {
	totals := make(map[string]map[string]float64)
	var order []string

	for _, row := range rows {
		kec := parser.Text(row, "kec")
		if kec == "" {
			continue
		}
		t, ok := totals[kec]
		if !ok {
			t = make(map[string]float64, len(model.MeasureColumns))
			totals[kec] = t
			order = append(order, kec)
		}
		for _, col := range model.MeasureColumns {
			t[col] += parser.Float(row, col)
		}
	}

	out := KecPartial{File: file}
	for _, kec := range order {
		out.Rows = append(out.Rows, PartialRow{Kec: kec, Measures: totals[kec]})
	}
	return out
}

// KecReducer folds per-file partials into cross-file kecamatan totals.
// Merging is commutative and associative, so the two-stage sum equals a
// one-stage sum over the same rows.
type KecReducer struct {
	totals map[string]map[string]float64
}

// NewKecReducer creates an empty reducer.
func NewKecReducer() *KecReducer {
	return &KecReducer{totals: make(map[string]map[string]float64)}
}

// Merge folds one partial result in.
func (r *KecReducer) Merge(p KecPartial) {
	for _, row := range p.Rows {
		t, ok := r.totals[row.Kec]
		if !ok {
			t = make(map[string]float64, len(model.MeasureColumns))
			r.totals[row.Kec] = t
		}
		for _, col := range model.MeasureColumns {
			t[col] += row.Measures[col]
		}
	}
}

// Empty reports whether nothing has been merged.
func (r *KecReducer) Empty() bool {
	return len(r.totals) == 0
}

// Rows emits the final table, one row per kecamatan, sorted by ascending
// kec (numerically when the keys parse as numbers), each with the SUM of
// its measure columns.
func (r *KecReducer) Rows() []model.KecSummaryRow {
	keys := make([]string, 0, len(r.totals))
	for k := range r.totals {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		fi, erri := strconv.ParseFloat(keys[i], 64)
		fj, errj := strconv.ParseFloat(keys[j], 64)
		if erri == nil && errj == nil {
			return fi < fj
		}
		return keys[i] < keys[j]
	})

	out := make([]model.KecSummaryRow, 0, len(keys))
	for _, kec := range keys {
		row := model.KecSummaryRow{
			Kec:      kec,
			Measures: make(map[string]float64, len(model.MeasureColumns)),
		}
		for _, col := range model.MeasureColumns {
			v := r.totals[kec][col]
			row.Measures[col] = v
			row.Sum += v
		}
		out = append(out, row)
	}
	return out
}
