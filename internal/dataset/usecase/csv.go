package usecase

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/tranthaituong/DataAnalystAssistant/internal/dataset/entity"
)

type csvReader struct {
	encodings []string
}

func (r csvReader) read(path string, policy entity.Policy) (entity.Table, string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return entity.Table{}, "", entity.NewRead(err)
	}

	text, encoding, ok := decodeText(data, r.encodings)
	if !ok {
		return entity.Table{}, "", entity.NewEncoding(r.encodings)
	}

	reader := csv.NewReader(strings.NewReader(text))
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return entity.Table{}, "", entity.NewEmptyHeader()
	}
	if err != nil {
		return entity.Table{}, "", entity.NewRead(err)
	}

	names, keep, err := resolveHeader(header, policy)
	if err != nil {
		return entity.Table{}, "", err
	}

	var rows [][]string
	line := 1
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return entity.Table{}, "", entity.NewRead(err)
		}

		line++
		if len(record) > len(header) {
			return entity.Table{}, "", entity.NewRead(fmt.Errorf("expected %d fields in row %d, saw %d", len(header), line, len(record)))
		}
		rows = append(rows, record)
	}

	return buildTable(names, keep, rows), encoding, nil
}
