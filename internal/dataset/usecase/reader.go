package usecase

import (
	"github.com/tranthaituong/DataAnalystAssistant/internal/dataset/entity"
)

type tableReader interface {
	read(path string, policy entity.Policy) (entity.Table, string, error)
}

func readerFor(path string, encodings []string) (tableReader, entity.Format, error) {
	format, ext := entity.DetectFormat(path)
	switch format {
	case entity.FormatCSV:
		return csvReader{encodings: encodings}, format, nil
	case entity.FormatXLSX:
		return xlsxReader{}, format, nil
	case entity.FormatXLS:
		return xlsReader{}, format, nil
	default:
		return nil, format, entity.NewUnsupportedFormat(ext)
	}
}

// buildTable assembles the kept columns from parsed rows. Rows shorter than
// the header are padded with empty cells; cells beyond the header width are
// ignored.
func buildTable(names []string, keep []int, rows [][]string) entity.Table {
	columns := make([]entity.Column, len(names))
	for i, name := range names {
		columns[i] = entity.Column{
			Name:  name,
			Cells: make([]string, 0, len(rows)),
		}
	}

	for _, row := range rows {
		for pos, src := range keep {
			var cell string
			if src < len(row) {
				cell = row[src]
			}
			columns[pos].Cells = append(columns[pos].Cells, cell)
		}
	}

	for i := range columns {
		columns[i].Kind = inferKind(columns[i].Cells)
	}

	return entity.Table{Columns: columns}
}

// inferKind reports the uniform kind of a column's non-missing cells, or
// KindText when cells disagree. A column with no usable cells is freeform.
func inferKind(cells []string) entity.CellKind {
	kind := entity.KindMissing
	for _, cell := range cells {
		k := entity.Classify(cell)
		if k == entity.KindMissing {
			continue
		}
		if kind == entity.KindMissing {
			kind = k
			continue
		}
		if kind != k {
			return entity.KindText
		}
	}

	if kind == entity.KindMissing {
		return entity.KindText
	}

	return kind
}
