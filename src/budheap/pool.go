package budheap

import (
	"unsafe"

	"golang.org/x/sys/unix"
)

// NewMmapPool hands back a page-backed, anonymous byte region of the given
// size that is safe to pass to Heap.Init or HeapInit: because it is mapped
// outside the Go heap, the allocator's raw pointer arithmetic over it never
// fights the garbage collector, the same reasoning the teacher's BuddyPool
// applies when it mmaps its backing memory.
func NewMmapPool(size int) ([]byte, error) {
	return unix.Mmap(-1, 0, size, unix.PROT_READ|unix.PROT_WRITE, unix.MAP_PRIVATE|unix.MAP_ANONYMOUS)
}

// MunmapPool releases a region obtained from NewMmapPool. It is the
// caller's responsibility to ensure no Heap still references pool.
func MunmapPool(pool []byte) error {
	return unix.Munmap(pool)
}

// PoolPointer returns the unsafe.Pointer to a pool's first byte, for
// passing to Init/HeapInit.
func PoolPointer(pool []byte) unsafe.Pointer {
	return unsafe.Pointer(&pool[0])
}
