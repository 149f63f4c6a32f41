package id

import (
	"fmt"
	"math/big"

	"github.com/google/uuid"
)

const (
	// Base62 alphabet: 0-9, A-Z, a-z
	alphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz"

	// TicketIDLength is the length of generated ticket ids.
	TicketIDLength = 8
)

var base = big.NewInt(int64(len(alphabet)))

// NewTicketID returns an 8 character token sliced from the base62 form of a
// random (v4) UUID. The slice keeps the low-order digits, which carry
// ~47 bits of entropy.
func NewTicketID() (string, error) {
	u, err := uuid.NewRandom()
	if err != nil {
		return "", fmt.Errorf("failed to generate ticket id: %w", err)
	}
	return lowBase62(u[:], TicketIDLength), nil
}

// lowBase62 renders the n least significant base62 digits of b.
func lowBase62(b []byte, n int) string {
	num := new(big.Int).SetBytes(b)
	mod := new(big.Int)
	out := make([]byte, n)
	for i := n - 1; i >= 0; i-- {
		num.DivMod(num, base, mod)
		out[i] = alphabet[mod.Int64()]
	}
	return string(out)
}

// IsAlphabet reports whether s only uses base62 characters.
func IsAlphabet(s string) bool {
	for i := 0; i < len(s); i++ {
		c := s[i]
		if !(c >= '0' && c <= '9' || c >= 'A' && c <= 'Z' || c >= 'a' && c <= 'z') {
			return false
		}
	}
	return true
}
