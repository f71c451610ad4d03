package usecase

import (
	"fmt"
	"strings"

	"github.com/tranthaituong/DataAnalystAssistant/internal/dataset/entity"
)

// inspect verifies the loaded table holds at least one data row and collects
// mixed-datatype warnings for freeform columns. Warnings never fail the run.
func inspect(table entity.Table) ([]string, error) {
	if table.Rows() == 0 {
		return nil, entity.NewNoRows()
	}

	var warnings []string
	for _, col := range table.Columns {
		if col.Kind != entity.KindText {
			continue
		}

		kinds := distinctKinds(col.Cells)
		if len(kinds) < 2 {
			continue
		}

		labels := make([]string, 0, len(kinds))
		for _, kind := range kinds {
			labels = append(labels, kind.String())
		}
		warnings = append(warnings, fmt.Sprintf("Column '%s' has mixed datatypes: %s", col.Name, strings.Join(labels, ", ")))
	}

	return warnings, nil
}

func distinctKinds(cells []string) []entity.CellKind {
	var kinds []entity.CellKind
	seen := make(map[entity.CellKind]struct{})

	for _, cell := range cells {
		kind := entity.Classify(cell)
		if kind == entity.KindMissing {
			continue
		}
		if _, ok := seen[kind]; ok {
			continue
		}
		seen[kind] = struct{}{}
		kinds = append(kinds, kind)
	}

	return kinds
}
