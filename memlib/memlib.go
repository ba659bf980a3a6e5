// Package memlib provides the in-process heap provider consumed by the
// malloc package: a single fixed-capacity byte buffer with a monotonic
// break pointer, standing in for the OS-level sbrk a real allocator would
// use. It never relocates its backing buffer, so addresses it hands out
// stay valid until the Heap is reinitialized.
package memlib

import (
	"errors"
	"unsafe"
)

// ErrOutOfMemory is returned by Extend when growing the heap would exceed
// its fixed capacity.
var ErrOutOfMemory = errors.New("memlib: out of memory")

// DefaultMaxHeap is a conventional capacity to pass to New, matching the
// fixed-size simulated heap malloc labs traditionally provision. New does
// not apply it; the capacity is always New's argument.
const DefaultMaxHeap = 20 << 20 // 20 MiB

// Heap is a fixed-capacity byte arena with a break offset. It is not safe
// for concurrent use; callers serialize access the same way they must
// serialize access to the allocator built on top of it.
type Heap struct {
	mem   []byte
	brk   int // offset of the first unused byte
	inUse bool
}

// New allocates a Heap with the given maximum capacity in bytes.
func New(maxBytes int) *Heap {
	return &Heap{mem: make([]byte, maxBytes)}
}

// Init (re)initializes the heap to empty. Any pointers previously returned
// by Extend are invalidated.
func (h *Heap) Init() {
	h.brk = 0
	h.inUse = true
}

// Extend grows the heap by delta bytes and returns a pointer to the first
// new byte. It returns ErrOutOfMemory if delta would exceed the heap's
// fixed capacity, and a different error if delta is negative or the heap
// has not been initialized.
func (h *Heap) Extend(delta int) (unsafe.Pointer, error) {
	if !h.inUse {
		return nil, errors.New("memlib: heap not initialized")
	}
	if delta < 0 {
		return nil, errors.New("memlib: negative extend")
	}
	if h.brk+delta > len(h.mem) {
		return nil, ErrOutOfMemory
	}
	start := h.brk
	h.brk += delta
	return unsafe.Pointer(&h.mem[start]), nil
}

// Lo returns a pointer to the first byte of the heap, or nil if the heap
// is empty.
func (h *Heap) Lo() unsafe.Pointer {
	if h.brk == 0 {
		return nil
	}
	return unsafe.Pointer(&h.mem[0])
}

// Hi returns a pointer to the last byte of the heap, or nil if the heap is
// empty.
func (h *Heap) Hi() unsafe.Pointer {
	if h.brk == 0 {
		return nil
	}
	return unsafe.Pointer(&h.mem[h.brk-1])
}

// Size returns the number of bytes currently committed by Extend calls.
func (h *Heap) Size() int {
	return h.brk
}

// Cap returns the heap's fixed maximum capacity.
func (h *Heap) Cap() int {
	return len(h.mem)
}
