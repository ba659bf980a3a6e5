package malloc

import "unsafe"

// owns reports whether p falls inside the allocator's committed heap
// range, turning a Free/Realloc call on a pointer this allocator never
// handed out into a loud failure rather than undefined corruption.
func (a *Allocator) owns(p unsafe.Pointer) bool {
	lo := a.lo()
	end := a.heapEnd()
	if lo == nil || end == nil {
		return false
	}
	return uintptr(p) >= uintptr(lo) && uintptr(p) < uintptr(end)
}

// AllocUnsafe is the non-locking version of Alloc. See Alloc.
func (a *Allocator) AllocUnsafe(size int) unsafe.Pointer {
	if size == 0 {
		return nil
	}
	if a.debugOn() {
		Log.LLog(0, 1, pDBG, "alloc(%d)\n", size)
	}

	if a.freeHead == nil {
		bsize := alignFloor(size, BlockMin)
		block, err := a.heap.Extend(bsize)
		if err != nil {
			ERR("alloc: out of memory requesting %d bytes\n", bsize)
			return nil
		}
		format(block, bsize)
		setAlloc(block)
		a.used += bsize
		return payload(block)
	}

	min := a.findBestFit(size)
	if min == nil {
		block, onFreeList := a.extend(size)
		if block == nil {
			return nil
		}
		if onFreeList {
			a.unlink(block)
		}
		setAlloc(block)
		a.used += blocksize(block)
		return payload(block)
	}

	splitSize := alignFloor(size, BlockMin)
	leftover := blocksize(min) - splitSize
	a.unlink(min)
	if leftover < BlockMin {
		setAlloc(min)
		a.used += blocksize(min)
		return payload(min)
	}

	allocated, rest := split(min, splitSize)
	setAlloc(allocated)
	a.insertHead(rest)
	a.used += blocksize(allocated)
	return payload(allocated)
}

// findBestFit scans the free list for the block with the smallest
// blocksize that still satisfies a payload request of size bytes, ties
// broken by first-encountered. Returns nil if no free block fits.
func (a *Allocator) findBestFit(size int) unsafe.Pointer {
	var min unsafe.Pointer
	minInner := 0
	for f := a.freeHead; f != nil; f = nextFree(f) {
		inner := innerSize(blocksize(f))
		if inner >= size && (min == nil || inner < minInner) {
			min = f
			minInner = inner
		}
	}
	return min
}

// FreeUnsafe is the non-locking version of Free. See Free.
func (a *Allocator) FreeUnsafe(p unsafe.Pointer) {
	if p == nil {
		return
	}
	if !a.owns(p) {
		PANIC("free called with pointer %p outside heap range\n", p)
		return
	}
	b := blockFromPayload(p)
	if !isAlloc(b) {
		WARN("double free of %p\n", p)
		return
	}
	if a.debugOn() {
		Log.LLog(0, 1, pDBG, "free(%p) size=%d\n", p, blocksize(b))
	}
	a.used -= blocksize(b)
	setFree(b)

	mergedWithSuccessor := false
	if !a.isLast(b) {
		succ := nextBlock(b)
		if !isAlloc(succ) {
			a.replace(succ, b)
			b = merge(b, succ)
			mergedWithSuccessor = true
		}
	}

	if b != a.lo() && !isAlloc(prevBlock(b)) {
		pred := prevBlock(b)
		if mergedWithSuccessor {
			a.unlink(b)
		}
		merge(pred, b)
		return
	}

	if !mergedWithSuccessor {
		a.insertHead(b)
	}
}

// ReallocUnsafe is the non-locking version of Realloc. See Realloc.
func (a *Allocator) ReallocUnsafe(p unsafe.Pointer, size int) unsafe.Pointer {
	if p == nil {
		return a.AllocUnsafe(size)
	}
	if size == 0 {
		a.FreeUnsafe(p)
		return nil
	}
	if !a.owns(p) {
		PANIC("realloc called with pointer %p outside heap range\n", p)
		return nil
	}
	b := blockFromPayload(p)
	if !isAlloc(b) {
		PANIC("realloc called on already-freed pointer %p\n", p)
		return nil
	}

	oldInner := innerSize(blocksize(b))
	newP := a.AllocUnsafe(size)
	if newP == nil {
		return nil
	}
	n := oldInner
	if size < n {
		n = size
	}
	copy(unsafe.Slice((*byte)(newP), n), unsafe.Slice((*byte)(p), n))
	a.FreeUnsafe(p)
	return newP
}

// Alloc allocates size bytes and returns an 8-byte-aligned pointer to
// them, or nil if size is zero or the heap provider is exhausted.
func (a *Allocator) Alloc(size int) unsafe.Pointer {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.AllocUnsafe(size)
}

// Free releases the memory pointed to by p, which must have been
// previously returned by Alloc or Realloc. Free(nil) is a no-op; freeing
// an already-free pointer is tolerated as a logged no-op.
func (a *Allocator) Free(p unsafe.Pointer) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.FreeUnsafe(p)
}

// Realloc resizes the allocation at p to size bytes, copying
// min(oldSize, size) leading bytes into the returned pointer and freeing
// p. Realloc(nil, size) behaves like Alloc(size); Realloc(p, 0) behaves
// like Free(p) and returns nil.
func (a *Allocator) Realloc(p unsafe.Pointer, size int) unsafe.Pointer {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.ReallocUnsafe(p, size)
}
