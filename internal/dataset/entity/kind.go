package entity

import (
	"strconv"
	"strings"
	"time"
)

type CellKind int

const (
	KindMissing CellKind = iota
	KindInteger
	KindFloat
	KindBool
	KindDate
	KindText
)

func (k CellKind) String() string {
	switch k {
	case KindInteger:
		return "integer"
	case KindFloat:
		return "float"
	case KindBool:
		return "boolean"
	case KindDate:
		return "date"
	case KindText:
		return "text"
	default:
		return "missing"
	}
}

var missingTokens = map[string]struct{}{
	"":     {},
	"na":   {},
	"n/a":  {},
	"null": {},
	"nan":  {},
	"none": {},
	"#n/a": {},
}

var dateLayouts = []string{
	"2006-01-02",
	"2006-01-02 15:04:05",
	time.RFC3339,
	"01/02/2006",
}

func IsMissing(value string) bool {
	_, ok := missingTokens[strings.ToLower(strings.TrimSpace(value))]
	return ok
}

func Classify(value string) CellKind {
	trimmed := strings.TrimSpace(value)
	if IsMissing(trimmed) {
		return KindMissing
	}

	if _, err := strconv.ParseInt(trimmed, 10, 64); err == nil {
		return KindInteger
	}

	if _, err := strconv.ParseFloat(trimmed, 64); err == nil {
		return KindFloat
	}

	switch strings.ToLower(trimmed) {
	case "true", "false":
		return KindBool
	}

	for _, layout := range dateLayouts {
		if _, err := time.Parse(layout, trimmed); err == nil {
			return KindDate
		}
	}

	return KindText
}
