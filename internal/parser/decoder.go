package parser

import (
	"bytes"

	"github.com/extrame/xls"
	"github.com/xuri/excelize/v2"

	appErrors "github.com/yongin-adm/roster-adp-api/pkg/errors"
)

var (
	zipMagic = []byte{0x50, 0x4B, 0x03, 0x04}
	oleMagic = []byte{0xD0, 0xCF, 0x11, 0xE0, 0xA1, 0xB1, 0x1A, 0xE1}
)

// DecodeWorkbook reads an .xlsx or legacy .xls payload and returns the first
// worksheet as a Grid. The container format is detected from the file
// signature, not the filename, so a mislabelled upload still decodes.
func DecodeWorkbook(data []byte) (Grid, error) {
	switch {
	case bytes.HasPrefix(data, zipMagic):
		return decodeXLSX(data)
	case bytes.HasPrefix(data, oleMagic):
		return decodeXLS(data)
	default:
		return nil, appErrors.ErrUnsupportedFormat
	}
}

func decodeXLSX(data []byte) (Grid, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, appErrors.WrapAs(err, appErrors.ErrUnsupportedFormat)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, appErrors.ErrEmptyWorkbook
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, appErrors.WrapAs(err, appErrors.ErrInternal)
	}
	if gridIsBlank(rows) {
		return nil, appErrors.ErrEmptyWorkbook
	}
	return Grid(rows), nil
}

func decodeXLS(data []byte) (Grid, error) {
	wb, err := xls.OpenReader(bytes.NewReader(data), "utf-16")
	if err != nil {
		return nil, appErrors.WrapAs(err, appErrors.ErrUnsupportedFormat)
	}
	sheet := wb.GetSheet(0)
	if sheet == nil {
		return nil, appErrors.ErrEmptyWorkbook
	}

	rows := make([][]string, 0, int(sheet.MaxRow)+1)
	for i := 0; i <= int(sheet.MaxRow); i++ {
		row := sheet.Row(i)
		if row == nil {
			rows = append(rows, nil)
			continue
		}
		cells := make([]string, row.LastCol()+1)
		for j := row.FirstCol(); j <= row.LastCol(); j++ {
			cells[j] = row.Col(j)
		}
		rows = append(rows, cells)
	}
	if gridIsBlank(rows) {
		return nil, appErrors.ErrEmptyWorkbook
	}
	return Grid(rows), nil
}

func gridIsBlank(rows [][]string) bool {
	g := Grid(rows)
	for i := range rows {
		if !g.IsEmptyRow(i) {
			return false
		}
	}
	return true
}
