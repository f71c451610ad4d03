package usecase

import (
	"errors"
	"strings"

	"github.com/extrame/xls"
	"github.com/xuri/excelize/v2"

	"github.com/tranthaituong/DataAnalystAssistant/internal/dataset/entity"
)

type xlsxReader struct{}

func (xlsxReader) read(path string, policy entity.Policy) (entity.Table, string, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return entity.Table{}, "", entity.NewRead(err)
	}
	defer func() {
		_ = f.Close()
	}()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return entity.Table{}, "", entity.NewRead(errors.New("workbook has no sheets"))
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return entity.Table{}, "", entity.NewRead(err)
	}

	table, err := tableFromRows(rows, policy)
	return table, "", err
}

type xlsReader struct{}

func (xlsReader) read(path string, policy entity.Policy) (entity.Table, string, error) {
	wb, err := xls.Open(path, "utf-8")
	if err != nil {
		return entity.Table{}, "", entity.NewRead(err)
	}

	sheet := wb.GetSheet(0)
	if sheet == nil {
		return entity.Table{}, "", entity.NewRead(errors.New("workbook has no sheets"))
	}

	rows := make([][]string, 0, int(sheet.MaxRow)+1)
	for i := 0; i <= int(sheet.MaxRow); i++ {
		row := sheet.Row(i)
		if row == nil {
			rows = append(rows, nil)
			continue
		}

		cells := make([]string, 0, row.LastCol())
		for j := 0; j < row.LastCol(); j++ {
			cells = append(cells, row.Col(j))
		}
		rows = append(rows, cells)
	}

	table, err := tableFromRows(rows, policy)
	return table, "", err
}

// tableFromRows treats the first sheet row as the raw header and applies the
// duplicate policy to it, mirroring the CSV path. Trailing rows that hold no
// values at all are dropped; they are usually formatting artifacts.
func tableFromRows(rows [][]string, policy entity.Policy) (entity.Table, error) {
	rows = trimTrailingEmptyRows(rows)
	if len(rows) == 0 {
		return entity.Table{}, nil
	}

	names, keep, err := resolveHeader(rows[0], policy)
	if err != nil {
		return entity.Table{}, err
	}

	return buildTable(names, keep, rows[1:]), nil
}

func trimTrailingEmptyRows(rows [][]string) [][]string {
	for len(rows) > 0 {
		if !emptyRow(rows[len(rows)-1]) {
			break
		}
		rows = rows[:len(rows)-1]
	}

	return rows
}

func emptyRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}

	return true
}
