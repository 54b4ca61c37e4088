package services

import (
	"crypto/rand"
)

const (
	referenceIDLength   = 9
	referenceIDAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
)

// NewReferenceID returns a 9-character uppercase alphanumeric booking
// reference. The base-36 space of ~1.5e14 values keeps the collision rate
// negligible at realistic booking volumes; the store's unique constraint
// catches the rest.
func NewReferenceID() string {
	buf := make([]byte, referenceIDLength)
	if _, err := rand.Read(buf); err != nil {
		// crypto/rand does not fail on supported platforms
		panic(err)
	}

	out := make([]byte, referenceIDLength)
	for i, b := range buf {
		out[i] = referenceIDAlphabet[int(b)%len(referenceIDAlphabet)]
	}
	return string(out)
}
