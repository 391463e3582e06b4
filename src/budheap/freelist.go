package budheap

// freeListTable is a fixed 64-entry array; slot k holds the address of the
// head of the doubly-linked free list of blocks sized 2^k bytes, or 0 if
// that list is empty. The links themselves live inside the blocks
// (prevAddr/nextAddr), not in this table.
type freeListTable [maxK]uintptr

// push inserts block at the head of list k. block's own prev word must
// already be zeroed (writeFreeBlock does this); push sets block's next word
// to the old head and rewires the list head and the old head's back-link.
func (t *freeListTable) push(block uintptr, k uint) {
	oldHead := t[k]
	writeWord(nextAddr(block), oldHead)
	if oldHead != 0 {
		writeWord(prevAddr(oldHead), block)
	}
	t[k] = block
}

// remove detaches block from whichever list it currently sits in, updating
// its neighbours' links and advancing the list head if block was it.
func (t *freeListTable) remove(block uintptr) {
	prev := readWord(prevAddr(block))
	next := readWord(nextAddr(block))

	if prev != 0 {
		writeWord(nextAddr(prev), next)
	}
	if next != 0 {
		writeWord(prevAddr(next), prev)
	}

	k := log2(cleanSize(readWord(block)))
	if t[k] == block {
		t[k] = next
	}
}

// findNext returns the smallest exponent k' >= k whose list is non-empty.
func (t *freeListTable) findNext(k uint) (uint, bool) {
	for ; k < maxK; k++ {
		if t[k] != 0 {
			return k, true
		}
	}
	return 0, false
}
