package malloc

import "unsafe"

// extend grows the heap to satisfy a request for at least
// requestedPayload bytes of inner size.
//
// If the heap is non-empty and its last block is free, the new region is
// merged into that tail block (which keeps whatever free-list slot it
// already held) rather than creating a new block — this is what lets a
// sequence of allocations that always barely overflows the heap grow by
// only the deficit each time, instead of by a full fresh block. Otherwise
// a fresh block is formatted and returned unlinked; callers that reach
// this path are always about to allocate it immediately.
//
// The returned bool reports whether the block is already linked into the
// free list (true for the tail-merge path, which keeps the old tail
// block's slot; false for a fresh extension, which callers always
// allocate immediately and which was therefore never linked).
//
// Returns (nil, false) if the underlying provider is out of memory.
func (a *Allocator) extend(requestedPayload int) (unsafe.Pointer, bool) {
	if last := a.lastBlock(); last != nil && !isAlloc(last) {
		deficit := align8(requestedPayload + 2*wordSize - blocksize(last))
		newRegion, err := a.heap.Extend(deficit)
		if err != nil {
			ERR("extend: provider out of memory (deficit=%d): %v\n", deficit, err)
			return nil, false
		}
		format(newRegion, deficit)
		return merge(last, newRegion), true
	}

	bsize := alignFloor(requestedPayload, BlockMin)
	block, err := a.heap.Extend(bsize)
	if err != nil {
		ERR("extend: provider out of memory (size=%d): %v\n", bsize, err)
		return nil, false
	}
	format(block, bsize)
	return block, false
}
