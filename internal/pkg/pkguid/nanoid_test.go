package pkguid

import (
	"strings"
	"testing"
)

func TestNanoIDGenerate(t *testing.T) {
	gen := NewNanoID(12)

	id := gen.Generate()
	if len(id) != 12 {
		t.Fatalf("expected 12 characters, got %q", id)
	}
	for _, r := range id {
		if !strings.ContainsRune(nanoAlphabet, r) {
			t.Fatalf("unexpected character %q in %q", r, id)
		}
	}

	if other := gen.Generate(); other == id {
		t.Fatalf("expected distinct ids, got %q twice", id)
	}
}

func TestNanoIDDefaultSize(t *testing.T) {
	gen := NewNanoID(0)
	if id := gen.Generate(); len(id) != 21 {
		t.Fatalf("expected default length 21, got %d", len(id))
	}
}
