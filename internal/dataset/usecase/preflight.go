package usecase

import (
	"errors"
	"io/fs"
	"os"

	"github.com/tranthaituong/DataAnalystAssistant/internal/dataset/entity"
)

func preflight(path string, maxBytes int64) (int64, error) {
	info, err := os.Stat(path)
	if errors.Is(err, fs.ErrNotExist) {
		return 0, entity.NewNotFound(path)
	}
	if err != nil {
		return 0, err
	}

	size := info.Size()
	if size == 0 {
		return 0, entity.NewEmptyFile()
	}
	if size > maxBytes {
		return size, entity.NewTooLarge(size, maxBytes)
	}

	return size, nil
}
