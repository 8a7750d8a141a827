package parser_test

import (
	"testing"

	"github.com/xuri/excelize/v2"

	"github.com/IPDS-59/commodity-summarizer/internal/parser"
)

func buildSheet(t *testing.T, name string, rows [][]interface{}) *parser.Workbook {
	t.Helper()

	f := excelize.NewFile()
	if _, err := f.NewSheet(name); err != nil {
		t.Fatalf("NewSheet failed: %v", err)
	}
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			t.Fatalf("CoordinatesToCellName failed: %v", err)
		}
		if err := f.SetSheetRow(name, cell, &row); err != nil {
			t.Fatalf("SetSheetRow failed: %v", err)
		}
	}
	return parser.FromFile(f)
}

func TestSheetLoadsHeaderAndRows(t *testing.T) {
	wb := buildSheet(t, "4_54_komoditas_kab", [][]interface{}{
		{"id_prov", "id_kab", "kab", "n_rtup"},
		{72, 7205, "[7205] BANGGAI", 10},
		{72, 7205, "[7205] BANGGAI", 5},
	})
	defer wb.Close()

	sheet, err := wb.Sheet("4_54_komoditas_kab")
	if err != nil {
		t.Fatalf("Sheet failed: %v", err)
	}
	if got, want := len(sheet.Columns), 4; got != want {
		t.Fatalf("len(Columns)=%d, want %d", got, want)
	}
	if got, want := len(sheet.Rows), 2; got != want {
		t.Fatalf("len(Rows)=%d, want %d", got, want)
	}
	if got := parser.Text(sheet.Rows[0], "kab"); got != "[7205] BANGGAI" {
		t.Fatalf("kab=%q", got)
	}
	if got := parser.Float(sheet.Rows[1], "n_rtup"); got != 5 {
		t.Fatalf("n_rtup=%v, want 5", got)
	}
}

func TestSheetMissingSheetIsError(t *testing.T) {
	wb := buildSheet(t, "4_54_komoditas_kab", [][]interface{}{
		{"kab"},
	})
	defer wb.Close()

	if _, err := wb.Sheet("4_54_komoditas_kec"); err == nil {
		t.Fatalf("expected error for missing sheet")
	}
}

func TestSheetShortRowReadsEmpty(t *testing.T) {
	wb := buildSheet(t, "data", [][]interface{}{
		{"kab", "kec", "n_rtup"},
		{7205},
	})
	defer wb.Close()

	sheet, err := wb.Sheet("data")
	if err != nil {
		t.Fatalf("Sheet failed: %v", err)
	}
	row := sheet.Rows[0]
	if got := parser.Text(row, "kec"); got != "" {
		t.Fatalf("kec=%q, want empty", got)
	}
	if got, ok := parser.OptionalFloat(row, "n_rtup"); ok || got != 0 {
		t.Fatalf("OptionalFloat=(%v,%v), want (0,false)", got, ok)
	}
}

func TestMissingColumnsCheckedOnce(t *testing.T) {
	wb := buildSheet(t, "data", [][]interface{}{
		{"kab", "kec", "n_rtup"},
	})
	defer wb.Close()

	sheet, err := wb.Sheet("data")
	if err != nil {
		t.Fatalf("Sheet failed: %v", err)
	}

	missing := sheet.MissingColumns("kec", "n_rtup", "n_rtup_jumlah", "n_rtup_tunggal")
	if len(missing) != 2 {
		t.Fatalf("missing=%v, want 2 entries", missing)
	}
	if missing[0] != "n_rtup_jumlah" || missing[1] != "n_rtup_tunggal" {
		t.Fatalf("missing=%v, want declared order", missing)
	}
}

func TestFloatStripsThousandsSeparator(t *testing.T) {
	wb := buildSheet(t, "data", [][]interface{}{
		{"n_rtup"},
		{"1,250"},
	})
	defer wb.Close()

	sheet, err := wb.Sheet("data")
	if err != nil {
		t.Fatalf("Sheet failed: %v", err)
	}
	if got := parser.Float(sheet.Rows[0], "n_rtup"); got != 1250 {
		t.Fatalf("Float=%v, want 1250", got)
	}
}

func TestIsNumeric(t *testing.T) {
	cases := []struct {
		in   string
		want bool
	}{
		{"7205", true},
		{"12.5", true},
		{"1,250", true},
		{"", false},
		{"[7205] BANGGAI", false},
		{"jeruk", false},
	}
	for _, c := range cases {
		if got := parser.IsNumeric(c.in); got != c.want {
			t.Fatalf("IsNumeric(%q)=%v, want %v", c.in, got, c.want)
		}
	}
}
