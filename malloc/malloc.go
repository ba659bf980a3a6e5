// Package malloc implements a best-fit allocator over a byte heap
// obtained from a heap provider (see package memlib): block metadata
// encoded as boundary tags, a doubly-linked free list threaded through
// free blocks' payloads, eager boundary-tag coalescing on free, and
// splitting on over-large fits.
package malloc

import (
	"sync"
	"unsafe"
)

// Heap is the provider interface the allocator core consumes: a
// monotonically-extendable byte region plus its current bounds. memlib.Heap
// satisfies this, and the core never depends on more than this interface.
type Heap interface {
	Init()
	Extend(delta int) (unsafe.Pointer, error)
	Lo() unsafe.Pointer
	Hi() unsafe.Pointer
	Size() int
}

// Options configures an Allocator. Its zero value, DefaultOptions, is the
// allocator's normal operating mode.
type Options uint32

const (
	// Debug enables verbose per-call logging.
	Debug Options = 1 << iota

	// DefaultOptions is the allocator's default configuration.
	DefaultOptions Options = 0
)

// Allocator is a best-fit allocator over a Heap. Its zero value is not
// ready for use; call Init first. Not safe for concurrent use without the
// locking entry points (Alloc/Free/Realloc); the *Unsafe variants assume
// the caller already serializes access.
type Allocator struct {
	heap    Heap
	options Options

	// freeHead is the single process-wide (well, allocator-wide) free
	// list head; nil iff no free block exists.
	freeHead unsafe.Pointer

	// used tracks bytes currently held by allocated blocks (including
	// their header/footer), kept incrementally rather than by walking the
	// heap on every call.
	used int

	mu sync.Mutex
}

// Used returns the number of bytes currently held by allocated blocks,
// including their header/footer overhead.
func (a *Allocator) Used() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.used
}

// Available returns the number of heap bytes not currently held by an
// allocated block. This counts free-list fragments as available even
// though a given one may be too small to satisfy a particular request.
func (a *Allocator) Available() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.heap.Size() - a.used
}

// New constructs an Allocator over the given heap provider. Init must
// still be called before use.
func New(h Heap) *Allocator {
	return &Allocator{heap: h}
}

// debugOn reports whether verbose logging is enabled.
func (a *Allocator) debugOn() bool {
	return a.options&Debug != 0
}

// Init (re)initializes the allocator: resets the underlying heap and
// clears the free list. Heap.Init reports no failure, so Init always
// returns nil.
func (a *Allocator) Init(h Heap, options Options) error {
	a.heap = h
	a.options = options
	a.freeHead = nil
	a.used = 0
	a.heap.Init()
	return nil
}

// lo returns the address of block 0, or nil if the heap is empty.
func (a *Allocator) lo() unsafe.Pointer {
	return a.heap.Lo()
}

// heapEnd returns the address one past the heap's last committed byte, or
// nil if the heap is empty.
func (a *Allocator) heapEnd() unsafe.Pointer {
	hi := a.heap.Hi()
	if hi == nil {
		return nil
	}
	return unsafe.Pointer(uintptr(hi) + 1)
}

// isLast reports whether b is the heap's last block, i.e. nextBlock(b)
// would run off the end of the committed heap.
func (a *Allocator) isLast(b unsafe.Pointer) bool {
	end := a.heapEnd()
	return end == nil || uintptr(nextBlock(b)) >= uintptr(end)
}

// lastBlock returns the heap's last block by reading the footer of the
// word immediately preceding heapEnd, avoiding an O(n) walk from lo.
// Returns nil if the heap is empty.
func (a *Allocator) lastBlock() unsafe.Pointer {
	end := a.heapEnd()
	if end == nil {
		return nil
	}
	return prevBlock(end)
}
