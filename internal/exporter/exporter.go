package exporter

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/IPDS-59/commodity-summarizer/internal/model"
)

const (
	kabSheetName = "Kabupaten"
	kecSheetName = "Kecamatan"
)

// Export builds the summary workbook: a Kabupaten sheet when the district
// summary is present and a Kecamatan sheet when the breakdown is
// non-empty. With neither there is nothing to write.
func Export(kab *model.KabSummary, kec []model.KecSummaryRow) (*excelize.File, error) {
	if kab == nil && len(kec) == 0 {
		return nil, errors.New("nothing to export")
	}

	f := excelize.NewFile()

	if kab != nil {
		if err := fillKabSheet(f, kab); err != nil {
			_ = f.Close()
			return nil, fmt.Errorf("failed to write %s sheet: %w", kabSheetName, err)
		}
	}
	if len(kec) > 0 {
		if err := fillKecSheet(f, kec); err != nil {
			_ = f.Close()
			return nil, fmt.Errorf("failed to write %s sheet: %w", kecSheetName, err)
		}
	}

	// Drop the default sheet so the workbook holds only summary sheets.
	if err := f.DeleteSheet("Sheet1"); err != nil {
		_ = f.Close()
		return nil, err
	}
	f.SetActiveSheet(0)
	return f, nil
}

func fillKabSheet(f *excelize.File, kab *model.KabSummary) error {
	if _, err := f.NewSheet(kabSheetName); err != nil {
		return err
	}

	header := make([]interface{}, 0, len(kab.Columns)+2)
	values := make([]interface{}, 0, len(kab.Columns)+2)
	for _, col := range kab.Columns {
		header = append(header, col)
		values = append(values, kab.Totals[col])
	}
	if kab.HasProv {
		header = append(header, "prov")
		values = append(values, kab.Prov)
	}
	if kab.HasKab {
		header = append(header, "kab")
		values = append(values, kab.Kab)
	}

	if err := f.SetSheetRow(kabSheetName, "A1", &header); err != nil {
		return err
	}
	return f.SetSheetRow(kabSheetName, "A2", &values)
}

func fillKecSheet(f *excelize.File, kec []model.KecSummaryRow) error {
	if _, err := f.NewSheet(kecSheetName); err != nil {
		return err
	}

	header := make([]interface{}, 0, len(model.MeasureColumns)+2)
	header = append(header, "kec")
	for _, col := range model.MeasureColumns {
		header = append(header, col)
	}
	header = append(header, "SUM")
	if err := f.SetSheetRow(kecSheetName, "A1", &header); err != nil {
		return err
	}

	for i, row := range kec {
		values := make([]interface{}, 0, len(header))
		values = append(values, kecCell(row.Kec))
		for _, col := range model.MeasureColumns {
			values = append(values, row.Measures[col])
		}
		values = append(values, row.Sum)

		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(kecSheetName, cell, &values); err != nil {
			return err
		}
	}
	return nil
}

// kecCell writes numeric kecamatan codes as numbers so the output sorts
// and filters naturally in a spreadsheet.
func kecCell(kec string) interface{} {
	if f, err := strconv.ParseFloat(kec, 64); err == nil {
		return f
	}
	return kec
}

// DistrictName derives a display name from the raw kab label of the first
// matched row. Labels look like "[7205] BANGGAI"; the part after the
// closing bracket is the name. An empty label maps to "unknown".
func DistrictName(label string) string {
	label = strings.TrimSpace(label)
	if label == "" {
		return "unknown"
	}
	if idx := strings.LastIndex(label, "]"); idx >= 0 {
		label = strings.TrimSpace(label[idx+1:])
	}
	if label == "" {
		return "unknown"
	}
	return label
}

// OutputFileName builds the summary workbook name from the commodity and
// district display name.
func OutputFileName(komoditas, kabName string) string {
	return fmt.Sprintf("summary_komoditas_%s_%s.xlsx",
		strings.ToLower(strings.TrimSpace(komoditas)),
		strings.ToLower(strings.TrimSpace(kabName)))
}
