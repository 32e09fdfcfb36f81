package roomcode

import (
	"crypto/rand"
	"math/big"
)

// Length is the number of digits in a room join code.
const Length = 5

// Generate returns a random numeric join code of Length digits. Codes are
// short on purpose (read over the phone, typed on a TV remote); uniqueness is
// enforced by the rooms table, callers retry on collision.
func Generate() (string, error) {
	digits := make([]byte, Length)
	for i := range digits {
		n, err := rand.Int(rand.Reader, big.NewInt(10))
		if err != nil {
			return "", err
		}
		digits[i] = byte('0' + n.Int64())
	}
	return string(digits), nil
}

// Valid reports whether s looks like a well-formed join code.
func Valid(s string) bool {
	if len(s) != Length {
		return false
	}
	for _, c := range s {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}
