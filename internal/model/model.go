package model

// Row is one sheet row keyed by column name. Cell values stay as the raw
// text excelize returns; typed access happens at the point of use.
type Row map[string]string

// MeasureColumns are the six farming-household count columns summed for the
// kecamatan breakdown. The set is fixed for the commodity-survey layout
// (table 4.54 family) and does not depend on which columns a file carries.
var MeasureColumns = []string{
	"n_rtup_tunggal",
	"n_rtup_campuran",
	"n_rtup_tumpang_sari",
	"n_rtup_asosiasi_antar_semusim",
	"n_rtup_jumlah",
	"n_rtup",
}

// ExcludedColumns are identifier-like columns that must never be summed
// into the kabupaten total even though their cells are numeric.
var ExcludedColumns = []string{"id_komoditas", "ID"}

// KabSummary is the single-row district total: every numeric column found
// across the matched kabupaten rows summed, plus representative identifier
// values from the first matched row.
type KabSummary struct {
	Columns []string           // summed columns, in first-seen source order
	Totals  map[string]float64 // column -> sum
	Prov    string             // from id_prov of the first row, "" when absent
	Kab     string             // from id_kab of the first row, "" when absent
	HasProv bool
	HasKab  bool
	Label   string // raw kab cell of the first row, for display-name derivation
}

// KecSummaryRow is one kecamatan's totals over the fixed measure columns,
// plus the row-wise SUM of those measures.
type KecSummaryRow struct {
	Kec      string             // grouping key, trimmed cell text
	Measures map[string]float64 // MeasureColumns -> sum
	Sum      float64
}
