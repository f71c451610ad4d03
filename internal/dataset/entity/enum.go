package entity

import (
	"path/filepath"
	"strings"
)

type Policy string

const (
	PolicyCheck     Policy = "check"
	PolicyRename    Policy = "rename"
	PolicyKeepFirst Policy = "keep_first"
)

func ParsePolicy(raw string) (Policy, bool) {
	switch Policy(strings.ToLower(strings.TrimSpace(raw))) {
	case PolicyCheck:
		return PolicyCheck, true
	case PolicyRename:
		return PolicyRename, true
	case PolicyKeepFirst:
		return PolicyKeepFirst, true
	default:
		return "", false
	}
}

type Format int

const (
	FormatUnsupported Format = iota
	FormatCSV
	FormatXLSX
	FormatXLS
)

func (f Format) String() string {
	switch f {
	case FormatCSV:
		return "csv"
	case FormatXLSX:
		return "xlsx"
	case FormatXLS:
		return "xls"
	default:
		return "unsupported"
	}
}

func DetectFormat(path string) (Format, string) {
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".csv":
		return FormatCSV, ext
	case ".xlsx":
		return FormatXLSX, ext
	case ".xls":
		return FormatXLS, ext
	default:
		return FormatUnsupported, ext
	}
}
