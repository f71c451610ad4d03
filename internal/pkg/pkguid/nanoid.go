package pkguid

import (
	gonanoid "github.com/matoous/go-nanoid/v2"
)

const nanoAlphabet = "0123456789abcdefghijklmnopqrstuvwxyz"

// NanoID generates short URL-safe string identifiers.
type NanoID struct {
	size int
}

// NewNanoID returns a NanoID generator producing IDs of the given length.
func NewNanoID(size int) *NanoID {
	if size <= 0 {
		size = 21
	}

	return &NanoID{size: size}
}

// Generate returns a new random identifier string.
func (n *NanoID) Generate() string {
	return gonanoid.MustGenerate(nanoAlphabet, n.size)
}
