package id

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTicketID_Format(t *testing.T) {
	tid, err := NewTicketID()
	require.NoError(t, err)
	assert.Len(t, tid, TicketIDLength)
	assert.True(t, IsAlphabet(tid), tid)
}

func TestNewTicketID_UniqueAcrossTenThousand(t *testing.T) {
	const n = 10000
	seen := make(map[string]struct{}, n)
	for i := 0; i < n; i++ {
		tid, err := NewTicketID()
		require.NoError(t, err)
		_, dup := seen[tid]
		require.False(t, dup, "duplicate ticket id %q after %d generations", tid, i)
		seen[tid] = struct{}{}
	}
}

func TestLowBase62(t *testing.T) {
	assert.Equal(t, "00000000", lowBase62([]byte{0}, 8))
	assert.Equal(t, "0000000z", lowBase62([]byte{61}, 8))
	assert.Equal(t, "00000010", lowBase62([]byte{62}, 8))
	// 62^8 wraps back to zero in the low digits
	assert.Equal(t, "00000000", lowBase62([]byte{0xC6, 0x94, 0x44, 0x6F, 0x01, 0x00}, 8))
}

func FuzzIsAlphabet(f *testing.F) {
	for _, seed := range []string{"", "aB3dE5fG", "a-b", "ticket_1", "ÄÖÜ"} {
		f.Add(seed)
	}
	f.Fuzz(func(t *testing.T, s string) {
		if IsAlphabet(s) {
			for _, r := range s {
				if r > 'z' {
					t.Fatalf("non-ascii rune %q accepted in %q", r, s)
				}
			}
		}
	})
}
