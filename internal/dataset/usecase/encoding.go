package usecase

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
	xunicode "golang.org/x/text/encoding/unicode"
)

var defaultEncodings = []string{"utf-8", "latin-1", "cp1252", "utf-16"}

// decodeText tries each candidate encoding in order and returns the first
// decoding that produces clean text, together with the encoding's name.
func decodeText(data []byte, encodings []string) (string, string, bool) {
	for _, name := range encodings {
		text, ok := decodeWith(name, data)
		if !ok {
			continue
		}
		text, ok = cleanText(text)
		if !ok {
			continue
		}
		return text, name, true
	}

	return "", "", false
}

func decodeWith(name string, data []byte) (string, bool) {
	switch name {
	case "utf-8":
		if !utf8.Valid(data) {
			return "", false
		}
		return string(data), true
	case "latin-1":
		out, err := charmap.ISO8859_1.NewDecoder().Bytes(data)
		if err != nil {
			return "", false
		}
		return string(out), true
	case "cp1252":
		out, err := charmap.Windows1252.NewDecoder().Bytes(data)
		if err != nil {
			return "", false
		}
		return string(out), true
	case "utf-16":
		out, err := xunicode.UTF16(xunicode.LittleEndian, xunicode.UseBOM).NewDecoder().Bytes(data)
		if err != nil {
			return "", false
		}
		return string(out), true
	}

	return "", false
}

// cleanText rejects decodings that merely substituted garbage: replacement
// runes and control characters (other than tab and line breaks) mean the
// candidate encoding did not actually fit the bytes.
func cleanText(s string) (string, bool) {
	s = strings.TrimPrefix(s, "\uFEFF")
	for _, r := range s {
		if r == utf8.RuneError {
			return "", false
		}
		if unicode.IsControl(r) && r != '\t' && r != '\n' && r != '\r' {
			return "", false
		}
	}

	return s, true
}
