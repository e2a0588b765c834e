package names

import (
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"
)

// xlsxLoader reads the first two columns of a worksheet, one record per row.
type xlsxLoader struct{}

func (xlsxLoader) CanLoad(filename string) bool {
	return hasSuffix(filename, ".xlsx")
}

func (xlsxLoader) Load(path string, opt Options) (Set, error) {
	wb, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open xlsx: %w", err)
	}
	defer wb.Close()

	sheet := opt.Sheet
	if sheet == "" {
		sheet = wb.GetSheetName(0)
	}
	if idx, err := wb.GetSheetIndex(sheet); err != nil || idx < 0 {
		return nil, fmt.Errorf("sheet '%s' not found in workbook '%s'. Available sheets: %s",
			sheet, path, strings.Join(wb.GetSheetList(), ", "))
	}
	rows, err := wb.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("read sheet %s: %w", sheet, err)
	}

	// GetRows drops trailing empty cells, so a row's length is its field count.
	var out Set
	for i, row := range rows {
		if len(row) == 0 {
			continue
		}
		if len(row) != 2 || row[0] == "" || row[1] == "" {
			return nil, &LineError{Path: path, Line: i + 1, Fields: countNonEmpty(row)}
		}
		out = append(out, Pair{First: row[0], Second: row[1]})
	}
	return out, nil
}

func countNonEmpty(row []string) int {
	n := 0
	for _, c := range row {
		if c != "" {
			n++
		}
	}
	return n
}
