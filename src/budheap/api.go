package budheap

import (
	"sync"
	"unsafe"
)

// defaultHeap backs the package-level HeapInit/HeapAlloc/HeapFree/HeapDone
// entry points. The Heap engine itself holds no lock; defaultMu supplies
// exactly the "coarse lock around all four public entry points" a
// multi-threaded caller would otherwise have to add externally. Callers
// that want a lock-free, independently addressable instance can construct
// their own *Heap and call its methods directly instead.
var (
	defaultMu   sync.Mutex
	defaultHeap Heap
)

// HeapInit resets the package-level heap to manage [pool, pool+size). Any
// outstanding allocations from a prior HeapInit become invalid.
func HeapInit(pool unsafe.Pointer, size int) {
	defaultMu.Lock()
	defer defaultMu.Unlock()
	defaultHeap.Init(pool, size)
}

// HeapAlloc returns a pointer to at least n usable bytes from the
// package-level heap, or nil if n == 0 or no suitable free block exists.
func HeapAlloc(n int) unsafe.Pointer {
	defaultMu.Lock()
	defer defaultMu.Unlock()
	return defaultHeap.Alloc(n)
}

// HeapFree releases p back to the package-level heap. It returns true iff p
// was a live allocation from the current HeapInit.
func HeapFree(p unsafe.Pointer) bool {
	defaultMu.Lock()
	defer defaultMu.Unlock()
	return defaultHeap.Free(p)
}

// HeapDone returns the number of outstanding allocations on the
// package-level heap.
func HeapDone() int {
	defaultMu.Lock()
	defer defaultMu.Unlock()
	return defaultHeap.Done()
}
