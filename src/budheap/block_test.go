package budheap

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLog2(t *testing.T) {
	cases := map[uintptr]uint{
		1: 0, 2: 1, 3: 1, 4: 2, 31: 4, 32: 5, 33: 5, 1024: 10,
	}
	for n, want := range cases {
		assert.Equal(t, want, log2(n), "log2(%d)", n)
	}
}

func TestExponentForRequest(t *testing.T) {
	// n + 2*wordSize (16) rounded up to a power of two, floored at minK (32 bytes).
	cases := map[uintptr]uint{
		0:    5, // 16 bytes needed -> floored to the 32-byte minimum
		16:   5, // 32 bytes exactly
		17:   6, // 33 bytes -> rounds up to 64
		1008: 10, // 1024 bytes exactly (1008+16)
		1009: 11, // 1025 bytes -> rounds up to 2048
	}
	for n, want := range cases {
		assert.Equal(t, want, exponentForRequest(n), "exponentForRequest(%d)", n)
	}
}
