package entity

import (
	"errors"
	"fmt"
	"strings"
)

type FailureKind int

const (
	FailureInternal FailureKind = iota
	FailureNotFound
	FailureEmptyFile
	FailureTooLarge
	FailureUnsupportedFormat
	FailureEncoding
	FailureEmptyHeader
	FailureDuplicateColumns
	FailureNoRows
	FailureRead
)

func (k FailureKind) String() string {
	switch k {
	case FailureNotFound:
		return "not_found"
	case FailureEmptyFile:
		return "empty_file"
	case FailureTooLarge:
		return "too_large"
	case FailureUnsupportedFormat:
		return "unsupported_format"
	case FailureEncoding:
		return "encoding_error"
	case FailureEmptyHeader:
		return "empty_header"
	case FailureDuplicateColumns:
		return "duplicate_columns"
	case FailureNoRows:
		return "no_rows"
	case FailureRead:
		return "read_error"
	default:
		return "internal"
	}
}

// Failure is the typed outcome of a validation run that could not complete.
// Every kind aborts the pipeline at the stage that detected it.
type Failure struct {
	Kind      FailureKind
	Message   string
	Size      int64
	Limit     int64
	Extension string
	Columns   []string
	Encodings []string
	cause     error
}

func (f *Failure) Error() string {
	return f.Message
}

func (f *Failure) Unwrap() error {
	return f.cause
}

// KindOf reports the failure kind carried by err, unwrapping as needed.
func KindOf(err error) (FailureKind, bool) {
	var failure *Failure
	if errors.As(err, &failure) {
		return failure.Kind, true
	}

	return FailureInternal, false
}

func NewNotFound(path string) *Failure {
	return &Failure{
		Kind:    FailureNotFound,
		Message: fmt.Sprintf("File not found: %s", path),
	}
}

func NewEmptyFile() *Failure {
	return &Failure{
		Kind:    FailureEmptyFile,
		Message: "File is empty.",
	}
}

func NewTooLarge(size, limit int64) *Failure {
	return &Failure{
		Kind:    FailureTooLarge,
		Message: fmt.Sprintf("File too large: %s (limit %s)", HumanSize(size), HumanSize(limit)),
		Size:    size,
		Limit:   limit,
	}
}

func NewUnsupportedFormat(ext string) *Failure {
	return &Failure{
		Kind:      FailureUnsupportedFormat,
		Message:   fmt.Sprintf("Unsupported file format %q. Use CSV or XLSX.", ext),
		Extension: ext,
	}
}

func NewEncoding(encodings []string) *Failure {
	return &Failure{
		Kind:      FailureEncoding,
		Message:   fmt.Sprintf("Unable to decode file. Tried encodings: %s.", strings.Join(encodings, ", ")),
		Encodings: encodings,
	}
}

func NewEmptyHeader() *Failure {
	return &Failure{
		Kind:    FailureEmptyHeader,
		Message: "No columns to parse from file.",
	}
}

func NewDuplicateColumns(names []string) *Failure {
	return &Failure{
		Kind:    FailureDuplicateColumns,
		Message: fmt.Sprintf("Duplicate column names detected: %s", strings.Join(names, ", ")),
		Columns: names,
	}
}

func NewNoRows() *Failure {
	return &Failure{
		Kind:    FailureNoRows,
		Message: "Dataset contains no rows.",
	}
}

func NewRead(cause error) *Failure {
	return &Failure{
		Kind:    FailureRead,
		Message: fmt.Sprintf("Failed to read file: %v", cause),
		cause:   cause,
	}
}
