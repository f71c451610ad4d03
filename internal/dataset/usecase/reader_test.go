package usecase

import (
	"errors"
	"testing"

	"github.com/tranthaituong/DataAnalystAssistant/internal/dataset/entity"
)

func TestResolveHeaderCheckFailsOnDuplicates(t *testing.T) {
	_, _, err := resolveHeader([]string{"a", "b", "a"}, entity.PolicyCheck)

	var failure *entity.Failure
	if !errors.As(err, &failure) {
		t.Fatalf("expected failure, got %v", err)
	}
	if failure.Kind != entity.FailureDuplicateColumns {
		t.Fatalf("expected duplicate failure, got %s", failure.Kind)
	}
	if len(failure.Columns) != 1 || failure.Columns[0] != "a" {
		t.Fatalf("expected duplicated name a, got %v", failure.Columns)
	}
}

func TestResolveHeaderCheckPassesUniqueNames(t *testing.T) {
	names, keep, err := resolveHeader([]string{" a ", "b"}, entity.PolicyCheck)
	if err != nil {
		t.Fatalf("resolve header: %v", err)
	}
	if len(names) != 2 || names[0] != "a" || names[1] != "b" {
		t.Fatalf("expected trimmed names, got %v", names)
	}
	if len(keep) != 2 || keep[0] != 0 || keep[1] != 1 {
		t.Fatalf("unexpected keep indices: %v", keep)
	}
}

func TestResolveHeaderRename(t *testing.T) {
	names, keep, err := resolveHeader([]string{"a", "a", "a"}, entity.PolicyRename)
	if err != nil {
		t.Fatalf("resolve header: %v", err)
	}
	if len(names) != 3 || names[0] != "a" || names[1] != "a.1" || names[2] != "a.2" {
		t.Fatalf("unexpected names: %v", names)
	}
	if len(keep) != 3 {
		t.Fatalf("expected all columns kept, got %v", keep)
	}
}

func TestResolveHeaderRenameAvoidsRealSuffixNames(t *testing.T) {
	// "a.1" is a genuine header here, so the duplicate "a" must skip over it.
	names, _, err := resolveHeader([]string{"a", "a", "a.1"}, entity.PolicyRename)
	if err != nil {
		t.Fatalf("resolve header: %v", err)
	}
	if names[0] != "a" || names[1] != "a.2" || names[2] != "a.1" {
		t.Fatalf("unexpected names: %v", names)
	}
}

func TestResolveHeaderKeepFirst(t *testing.T) {
	names, keep, err := resolveHeader([]string{"a", "a", "b"}, entity.PolicyKeepFirst)
	if err != nil {
		t.Fatalf("resolve header: %v", err)
	}
	if len(names) != 2 || names[0] != "a" || names[1] != "b" {
		t.Fatalf("unexpected names: %v", names)
	}
	if len(keep) != 2 || keep[0] != 0 || keep[1] != 2 {
		t.Fatalf("unexpected keep indices: %v", keep)
	}
}

func TestResolveHeaderKeepFirstRetainsRealSuffixNames(t *testing.T) {
	names, _, err := resolveHeader([]string{"Q", "Q.1"}, entity.PolicyKeepFirst)
	if err != nil {
		t.Fatalf("resolve header: %v", err)
	}
	if len(names) != 2 {
		t.Fatalf("expected both columns kept, got %v", names)
	}
}

func TestResolveHeaderEmpty(t *testing.T) {
	_, _, err := resolveHeader(nil, entity.PolicyCheck)

	var failure *entity.Failure
	if !errors.As(err, &failure) || failure.Kind != entity.FailureEmptyHeader {
		t.Fatalf("expected empty header failure, got %v", err)
	}
}

func TestResolveHeaderUnknownPolicy(t *testing.T) {
	if _, _, err := resolveHeader([]string{"a"}, entity.Policy("bogus")); err == nil {
		t.Fatalf("expected error for unknown policy")
	}
}

func TestDecodeTextCandidateOrder(t *testing.T) {
	text, encoding, ok := decodeText([]byte("a,b\n1,2\n"), defaultEncodings)
	if !ok || encoding != "utf-8" {
		t.Fatalf("expected utf-8, got %q ok=%v", encoding, ok)
	}
	if text != "a,b\n1,2\n" {
		t.Fatalf("unexpected text: %q", text)
	}

	// 0xE9 is é in latin-1 and invalid as a standalone UTF-8 byte.
	_, encoding, ok = decodeText([]byte("name\ncaf\xe9\n"), defaultEncodings)
	if !ok || encoding != "latin-1" {
		t.Fatalf("expected latin-1, got %q ok=%v", encoding, ok)
	}

	// 0x93/0x94 are curly quotes in cp1252 but C1 controls in latin-1.
	_, encoding, ok = decodeText([]byte("quote\n\x93hi\x94\n"), defaultEncodings)
	if !ok || encoding != "cp1252" {
		t.Fatalf("expected cp1252, got %q ok=%v", encoding, ok)
	}
}

func TestDecodeTextUTF16(t *testing.T) {
	data := encodeUTF16LE(t, "a,b\n1,2\n")

	text, encoding, ok := decodeText(data, defaultEncodings)
	if !ok || encoding != "utf-16" {
		t.Fatalf("expected utf-16, got %q ok=%v", encoding, ok)
	}
	if text != "a,b\n1,2\n" {
		t.Fatalf("unexpected text: %q", text)
	}
}

func TestDecodeTextStripsBOM(t *testing.T) {
	text, encoding, ok := decodeText([]byte("\xef\xbb\xbfa,b\n"), defaultEncodings)
	if !ok || encoding != "utf-8" {
		t.Fatalf("expected utf-8, got %q ok=%v", encoding, ok)
	}
	if text != "a,b\n" {
		t.Fatalf("expected BOM to be stripped, got %q", text)
	}
}

func TestDecodeTextRejectsBinary(t *testing.T) {
	// Odd length rules out utf-16, null bytes rule out the single-byte
	// candidates, 0xFF rules out utf-8.
	if _, _, ok := decodeText([]byte{0x00, 0x01, 0x02, 0xFF, 0xFE}, defaultEncodings); ok {
		t.Fatalf("expected binary input to fail every candidate")
	}
}

func TestInferKind(t *testing.T) {
	if got := inferKind([]string{"1", "2", "3"}); got != entity.KindInteger {
		t.Fatalf("expected integer, got %s", got)
	}
	if got := inferKind([]string{"1", "NA", "3"}); got != entity.KindInteger {
		t.Fatalf("expected integer with missing cells, got %s", got)
	}
	if got := inferKind([]string{"1", "x"}); got != entity.KindText {
		t.Fatalf("expected text for mixed cells, got %s", got)
	}
	if got := inferKind([]string{"NA", ""}); got != entity.KindText {
		t.Fatalf("expected text for all-missing column, got %s", got)
	}
}

func TestBuildTablePadsShortRows(t *testing.T) {
	table := buildTable([]string{"a", "b"}, []int{0, 1}, [][]string{
		{"1", "2"},
		{"3"},
	})

	if table.Rows() != 2 {
		t.Fatalf("expected 2 rows, got %d", table.Rows())
	}
	if got := table.Columns[1].Cells[1]; got != "" {
		t.Fatalf("expected padded cell, got %q", got)
	}
}

func TestTrimTrailingEmptyRows(t *testing.T) {
	rows := trimTrailingEmptyRows([][]string{
		{"a", "b"},
		{"1", "2"},
		{"", " "},
		nil,
	})

	if len(rows) != 2 {
		t.Fatalf("expected trailing empty rows dropped, got %d", len(rows))
	}
}
