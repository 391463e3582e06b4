package budheap

import "unsafe"

// Heap manages allocations within a single caller-supplied contiguous byte
// region. It performs no system calls, takes no internal locks, and holds
// no state outside the region it was given plus this struct. A Heap value
// is usable directly by one goroutine at a time; HeapInit/HeapAlloc/
// HeapFree/HeapDone wrap a package-level instance with a mutex for callers
// that need external serialization without managing their own handle.
type Heap struct {
	managedBase  uintptr
	managedSize  uintptr
	bm           bitmap
	free         freeListTable
	allocatedCnt int
}

// Init resets h to manage [pool, pool+size). Any outstanding allocations
// from a prior Init become invalid; re-initializing a still-in-use pool is
// legal and discards all prior state, per design.
func (h *Heap) Init(pool unsafe.Pointer, size int) {
	*h = Heap{}

	base := uintptr(pool)
	memSize := uintptr(size)

	h.bm = newBitmap(base, memSize)

	h.managedBase = base + (memSize/bitmapCell/8+1)*wordSize
	h.managedSize = memSize - (memSize%bitmapCell + memSize/bitmapCell)

	h.splitMemory()
}

// splitMemory expresses the managed region as a sum of distinct powers of
// two (its binary expansion), materializing one top-level free block per
// term. A final remainder of at most one quantum is discarded by
// shrinking managedSize, keeping bitmap indexing consistent with the
// region the allocator actually manages.
func (h *Heap) splitMemory() {
	remaining := h.managedSize
	cursor := h.managedBase

	for remaining > quantum {
		k := log2(remaining)
		size := uintptr(1) << k

		writeFreeBlock(cursor, size)
		h.free.push(cursor, k)

		cursor += size
		remaining -= size
	}

	h.managedSize -= remaining
}

// Alloc rounds n up to a block size (including header/footer overhead),
// splits larger free blocks down as needed, and returns a pointer to at
// least n usable bytes. It returns nil if n <= 0 or no block of sufficient
// size is available.
func (h *Heap) Alloc(n int) unsafe.Pointer {
	if n <= 0 {
		return nil
	}

	k := exponentForRequest(uintptr(n))

	src, ok := h.free.findNext(k)
	if !ok {
		return nil
	}

	for i := src; i > k; i-- {
		h.splitBlock(h.free[i])
	}

	block := h.free[k]
	h.free.remove(block)

	size := uintptr(1) << k
	writeWord(block, size|allocFlag)
	writeWord(footerAddr(block, size), size|allocFlag)

	h.bm.mark(h.quantumIndex(block))
	h.allocatedCnt++

	return unsafe.Pointer(block + wordSize)
}

// splitBlock halves a free block in two, materializing both halves as
// clean free blocks of half the size and pushing both onto the next lower
// free list.
func (h *Heap) splitBlock(block uintptr) {
	h.free.remove(block)

	size := cleanSize(readWord(block)) / 2
	right := block + size

	writeFreeBlock(block, size)
	writeFreeBlock(right, size)

	k := log2(size)
	h.free.push(block, k)
	h.free.push(right, k)
}

// isAllocated validates that ptr could be a live allocation returned by
// Alloc on this heap: it must land exactly on a quantum boundary within the
// managed region, and the bitmap bit for that quantum must be set. It never
// mutates state.
func (h *Heap) isAllocated(ptr unsafe.Pointer) bool {
	if ptr == nil {
		return false
	}

	offset := uintptr(ptr) - h.managedBase - wordSize
	if offset%quantum != 0 || offset > h.managedSize {
		return false
	}

	return h.bm.test(offset / quantum)
}

// Free releases a pointer previously returned by Alloc on this heap. It
// returns false (and changes nothing) if p was not a live allocation from
// the current Init — including a pointer that has already been freed.
func (h *Heap) Free(p unsafe.Pointer) bool {
	if !h.isAllocated(p) {
		return false
	}

	block := uintptr(p) - wordSize

	h.allocatedCnt--
	h.bm.unmark(h.quantumIndex(block))

	size := cleanSize(readWord(block))
	writeFreeBlock(block, size)
	h.free.push(block, log2(size))

	h.merge(block)

	return true
}

// merge repeatedly combines block with its buddy while the buddy is free
// and of equal size, stopping when the buddy test fails or block reaches
// the largest power-of-two the initial pool could contribute.
func (h *Heap) merge(block uintptr) {
	for {
		size := cleanSize(readWord(block))
		offset := block - h.managedBase
		order := offset / size

		if order%2 == 1 {
			// Odd order: the buddy is the adjacent block to the left. Its
			// footer sits in the word immediately before our header.
			if readWord(block-wordSize) != size {
				return
			}
			buddy := block - size
			h.mergeBuddies(buddy, block)
			block = buddy
			continue
		}

		// Even order: the buddy is the adjacent block to the right.
		if offset+size >= h.managedSize || readWord(block+size) != size {
			return
		}
		buddy := block + size
		h.mergeBuddies(block, buddy)
	}
}

// mergeBuddies combines two adjacent, equal-size free blocks into one
// block of twice the size at the lower address, and pushes it onto its new
// free list. low must be the lower-addressed of the pair.
func (h *Heap) mergeBuddies(low, high uintptr) {
	h.free.remove(low)
	h.free.remove(high)

	size := cleanSize(readWord(low)) * 2
	writeFreeBlock(low, size)
	h.free.push(low, log2(size))
}

// Done returns the number of outstanding allocations. It does not mutate
// state and is typically used by callers to detect leaks at shutdown.
func (h *Heap) Done() int {
	return h.allocatedCnt
}

func (h *Heap) quantumIndex(block uintptr) uintptr {
	return (block - h.managedBase) / quantum
}
