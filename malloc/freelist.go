package malloc

import "unsafe"

// Free blocks thread a doubly-linked list through the first two words of
// their own payload: prevFree, then nextFree, each ptrSize bytes wide.
// The links live inside the payload region itself rather than in
// dedicated struct fields, so BlockMin must be large enough to hold them
// and nothing else does.

func prevFreePtr(b unsafe.Pointer) *unsafe.Pointer {
	return (*unsafe.Pointer)(payload(b))
}

func nextFreePtr(b unsafe.Pointer) *unsafe.Pointer {
	return (*unsafe.Pointer)(unsafe.Pointer(uintptr(payload(b)) + uintptr(ptrSize)))
}

func prevFree(b unsafe.Pointer) unsafe.Pointer { return *prevFreePtr(b) }
func nextFree(b unsafe.Pointer) unsafe.Pointer { return *nextFreePtr(b) }

func setPrevFree(b, v unsafe.Pointer) { *prevFreePtr(b) = v }
func setNextFree(b, v unsafe.Pointer) { *nextFreePtr(b) = v }

// insertHead prepends b to the free list, making it the new head.
func (a *Allocator) insertHead(b unsafe.Pointer) {
	setPrevFree(b, nil)
	setNextFree(b, a.freeHead)
	if a.freeHead != nil {
		setPrevFree(a.freeHead, b)
	}
	a.freeHead = b
}

// unlink removes b from the free list, rewiring its neighbors and the
// list head around it. b must currently be on the free list.
func (a *Allocator) unlink(b unsafe.Pointer) {
	prev := prevFree(b)
	next := nextFree(b)
	if prev != nil {
		setNextFree(prev, next)
	}
	if next != nil {
		setPrevFree(next, prev)
	}
	if a.freeHead == b {
		a.freeHead = next
	}
}

// replace makes newB occupy old's free-list slot: newB inherits old's
// prev/next links, and old's former neighbors (and the list head, if old
// was the head) are rewired to point at newB instead. Used when a merge
// absorbs a free block and the surviving block must take over the
// absorbed block's position in the list rather than being reinserted.
func (a *Allocator) replace(old, newB unsafe.Pointer) {
	prev := prevFree(old)
	next := nextFree(old)
	setPrevFree(newB, prev)
	setNextFree(newB, next)
	if prev != nil {
		setNextFree(prev, newB)
	}
	if next != nil {
		setPrevFree(next, newB)
	}
	if a.freeHead == old {
		a.freeHead = newB
	}
}
