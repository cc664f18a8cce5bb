package repository

import (
	"crypto/rand"
	"math/big"
)

// Edit PINs are 6 digits drawn from 1-9; '0' is excluded.
const pinDigits = "123456789"
const pinLength = 6

// GeneratePin produces a random edit PIN, e.g. "483156". The PIN is a
// low-assurance shared secret gating edits on a resource, not a
// cryptographic key.
func GeneratePin() string {
	pin := make([]byte, pinLength)
	max := big.NewInt(int64(len(pinDigits)))
	for i := range pin {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			// crypto/rand failing means the platform's entropy source is
			// broken; there is nothing sensible to return.
			panic(err)
		}
		pin[i] = pinDigits[n.Int64()]
	}
	return string(pin)
}
