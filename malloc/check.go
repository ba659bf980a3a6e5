package malloc

import (
	"fmt"
	"unsafe"
)

// Report is the diagnostic result of a heap walk.
type Report struct {
	Blocks    int
	FreeCount int
	UsedCount int
	Problems  []string
}

// OK reports whether the walk found no inconsistencies.
func (r *Report) OK() bool {
	return len(r.Problems) == 0
}

func (r *Report) problem(format string, a ...interface{}) {
	BUG(format+"\n", a...)
	r.Problems = append(r.Problems, fmt.Sprintf(format, a...))
}

// Check walks the heap from lo, verifying header/footer agreement, a
// nonzero size on every block (the walk halts early if it finds one, to
// avoid looping forever), blocks exactly covering the heap up to its end,
// payload alignment, free-list membership exactly matching the allocated
// bit, free-list back links agreeing with the forward links, and no two
// adjacent free blocks. It
// never mutates allocator state and never panics; inconsistencies are
// logged and reported, not fatal.
func (a *Allocator) Check() *Report {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.checkUnsafe()
}

func (a *Allocator) checkUnsafe() *Report {
	r := &Report{}

	freeSet := make(map[uintptr]bool)
	var prevF unsafe.Pointer
	for f := a.freeHead; f != nil; f = nextFree(f) {
		if prevFree(f) != prevF {
			r.problem("free block at %p: prev link %p, expected %p", f, prevFree(f), prevF)
		}
		freeSet[uintptr(f)] = true
		prevF = f
	}

	end := a.heapEnd()
	if end == nil {
		return r
	}

	var prevWasFree bool
	b := a.lo()
	for uintptr(b) < uintptr(end) {
		size := blocksize(b)
		if size == 0 {
			r.problem("zero-size block at %p; halting walk", b)
			break
		}
		r.Blocks++

		if *tagAt(b) != *tagAt(footer(b)) {
			r.problem("block at %p: header %#x != footer %#x", b, *tagAt(b), *tagAt(footer(b)))
		}
		if uintptr(payload(b))%uintptr(Alignment) != 0 {
			r.problem("block at %p: payload %p is not %d-byte aligned", b, payload(b), Alignment)
		}

		free := !isAlloc(b)
		if free {
			r.FreeCount++
			if !freeSet[uintptr(b)] {
				r.problem("block at %p: free but not reachable from freeHead", b)
			}
			if prevWasFree {
				r.problem("block at %p: adjacent to a free predecessor", b)
			}
		} else {
			r.UsedCount++
			if freeSet[uintptr(b)] {
				r.problem("block at %p: allocated but present on the free list", b)
			}
		}
		prevWasFree = free

		b = unsafe.Pointer(uintptr(b) + uintptr(size))
	}
	if uintptr(b) > uintptr(end) {
		r.problem("walk ended at %p, past heap end %p", b, end)
	}

	if len(freeSet) != r.FreeCount {
		r.problem("free list has %d entries but walk found %d free blocks", len(freeSet), r.FreeCount)
	}

	return r
}
