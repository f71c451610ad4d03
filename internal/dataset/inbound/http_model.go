package inbound

import (
	"github.com/tranthaituong/DataAnalystAssistant/internal/dataset/entity"
	"github.com/tranthaituong/DataAnalystAssistant/internal/dataset/usecase"
)

type ValidationResponse struct {
	FileName    string   `json:"file_name"`
	FileSize    string   `json:"file_size"`
	SizeBytes   int64    `json:"size_bytes"`
	Rows        int      `json:"rows"`
	Columns     int      `json:"columns"`
	ColumnNames []string `json:"column_names"`
	Warnings    []string `json:"warnings"`
	Encoding    string   `json:"encoding,omitempty"`
	Format      string   `json:"format"`

	runID  int64
	policy entity.Policy
}

func (ValidationResponse) Message() string {
	return "success"
}

func (r ValidationResponse) Meta() map[string]any {
	return map[string]any{
		"run_id": r.runID,
		"policy": r.policy,
	}
}

func toValidationResponse(result usecase.ValidateResult) ValidationResponse {
	meta := result.Metadata

	names := meta.ColumnNames
	if names == nil {
		names = []string{}
	}

	warnings := meta.Warnings
	if warnings == nil {
		warnings = []string{}
	}

	return ValidationResponse{
		FileName:    meta.FileName,
		FileSize:    meta.Size,
		SizeBytes:   meta.SizeBytes,
		Rows:        meta.Rows,
		Columns:     meta.Columns,
		ColumnNames: names,
		Warnings:    warnings,
		Encoding:    meta.Encoding,
		Format:      meta.Format.String(),
		runID:       result.RunID,
		policy:      result.Policy,
	}
}
