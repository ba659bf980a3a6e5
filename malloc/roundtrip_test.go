package malloc_test

import (
	"testing"
	"unsafe"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// L1: free(alloc(n)) restores the heap to a single free block.
func TestFreeAfterAllocRestoresFreeBlock(t *testing.T) {
	a := newAllocator(t)

	before := a.Check()
	require.Equal(t, 0, before.Blocks)

	p := a.Alloc(128)
	require.NotNil(t, p)
	a.Free(p)

	after := a.Check()
	require.True(t, after.OK(), "%v", after.Problems)
	assert.Equal(t, 1, after.Blocks)
	assert.Equal(t, 1, after.FreeCount)
}

// L2: writing then reading a live allocation round-trips exactly.
func TestWriteReadRoundTrip(t *testing.T) {
	a := newAllocator(t)

	const n = 200
	p := a.Alloc(n)
	require.NotNil(t, p)

	buf := unsafe.Slice((*byte)(p), n)
	for i := range buf {
		buf[i] = byte(i)
	}
	for i := range buf {
		require.Equal(t, byte(i), buf[i])
	}

	a.Free(p)
}

// L3: realloc(alloc(n), m) preserves the leading min(n, m) bytes.
func TestReallocPreservesLeadingBytes(t *testing.T) {
	a := newAllocator(t)

	p := a.Alloc(32)
	require.NotNil(t, p)
	src := unsafe.Slice((*byte)(p), 32)
	for i := range src {
		src[i] = byte(0xAB + i)
	}

	// grow
	q := a.Realloc(p, 64)
	require.NotNil(t, q)
	grown := unsafe.Slice((*byte)(q), 32)
	for i := range grown {
		assert.Equal(t, byte(0xAB+i), grown[i])
	}

	// shrink: only the first 10 bytes are guaranteed to survive
	r := a.Realloc(q, 10)
	require.NotNil(t, r)
	shrunk := unsafe.Slice((*byte)(r), 10)
	for i := range shrunk {
		assert.Equal(t, byte(0xAB+i), shrunk[i])
	}

	requireCheckOK(t, a)
}
