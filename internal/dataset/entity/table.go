package entity

type Column struct {
	Name  string
	Kind  CellKind
	Cells []string
}

type Table struct {
	Columns []Column
}

func (t Table) Rows() int {
	if len(t.Columns) == 0 {
		return 0
	}

	return len(t.Columns[0].Cells)
}

func (t Table) ColumnNames() []string {
	names := make([]string, 0, len(t.Columns))
	for _, col := range t.Columns {
		names = append(names, col.Name)
	}

	return names
}
