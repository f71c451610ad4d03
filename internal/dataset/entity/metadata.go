package entity

import "fmt"

type Metadata struct {
	FileName    string
	Size        string
	SizeBytes   int64
	Rows        int
	Columns     int
	ColumnNames []string
	Warnings    []string
	Encoding    string
	Format      Format
}

func HumanSize(bytes int64) string {
	size := float64(bytes)
	for _, unit := range []string{"B", "KB", "MB", "GB"} {
		if size < 1024 {
			return fmt.Sprintf("%.2f %s", size, unit)
		}
		size /= 1024
	}

	return fmt.Sprintf("%.2f TB", size)
}
