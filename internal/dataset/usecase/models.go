package usecase

import (
	"github.com/tranthaituong/DataAnalystAssistant/internal/dataset/entity"
)

type ValidateInput struct {
	Path     string
	FileName string
	Policy   entity.Policy
	MaxBytes int64
}

type ValidateResult struct {
	RunID    int64
	Policy   entity.Policy
	Metadata entity.Metadata
}
