package budheap

import (
	"testing"
	"unsafe"

	"github.com/stretchr/testify/assert"
)

func TestBitmapMarkUnmarkTest(t *testing.T) {
	arena := make([]byte, 64)
	base := uintptr(unsafe.Pointer(&arena[0]))

	bm := newBitmap(base, uintptr(len(arena)))

	assert.False(t, bm.test(0))
	assert.False(t, bm.test(7))
	assert.False(t, bm.test(63))

	bm.mark(0)
	bm.mark(7)
	bm.mark(63)

	assert.True(t, bm.test(0))
	assert.True(t, bm.test(7))
	assert.True(t, bm.test(63))
	assert.False(t, bm.test(1))

	bm.unmark(7)
	assert.False(t, bm.test(7))
	assert.True(t, bm.test(0))
	assert.True(t, bm.test(63))
}

func TestBitmapUnmarkDoesNotDisturbNeighbours(t *testing.T) {
	arena := make([]byte, 32)
	base := uintptr(unsafe.Pointer(&arena[0]))
	bm := newBitmap(base, uintptr(len(arena)))

	for i := uintptr(0); i < 8; i++ {
		bm.mark(i)
	}
	bm.unmark(3)

	for i := uintptr(0); i < 8; i++ {
		if i == 3 {
			assert.False(t, bm.test(i), "bit %d should be clear", i)
		} else {
			assert.True(t, bm.test(i), "bit %d should remain set", i)
		}
	}
}
