// Package randid generates short random lowercase alphanumeric identifiers.
package randid

import (
	"crypto/rand"
	"math/big"
)

const alphabet = "abcdefghijklmnopqrstuvwxyz0123456789"

var alphabetLen = big.NewInt(int64(len(alphabet)))

// Generate returns a random string of length n drawn from [a-z0-9].
func Generate(n int) string {
	if n <= 0 {
		return ""
	}

	b := make([]byte, n)
	for i := range b {
		idx, err := rand.Int(rand.Reader, alphabetLen)
		if err != nil {
			// crypto/rand only fails when the OS source is unavailable
			panic("randid: " + err.Error())
		}
		b[i] = alphabet[idx.Int64()]
	}
	return string(b)
}
