package malloc_test

import (
	"testing"
	"unsafe"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trevorKirkby/Malloc-Lab/malloc"
)

func asBytes(p unsafe.Pointer, n int) []byte {
	return unsafe.Slice((*byte)(p), n)
}

// Scenario 1: a single allocation and free on a fresh heap.
func TestScenarioSingleAllocFree(t *testing.T) {
	a := newAllocator(t)

	p := a.Alloc(1)
	require.NotNil(t, p)
	assert.Equal(t, uint64(malloc.BlockMin), blockSizeOf(p))

	a.Free(p)
	r := a.Check()
	require.True(t, r.OK(), "%v", r.Problems)
	assert.Equal(t, 1, r.Blocks)
	assert.Equal(t, 1, r.FreeCount)
}

// Scenario 2: three equal-size allocations, freed out of order; the first
// and third blocks (a and c) are freed first and are not adjacent to each
// other, so they stay separate free blocks until the middle one is also
// freed, at which point everything coalesces into one.
func TestScenarioThreeAllocsFreedOutOfOrder(t *testing.T) {
	a := newAllocator(t)

	pa := a.Alloc(16)
	pb := a.Alloc(16)
	pc := a.Alloc(16)
	require.NotNil(t, pa)
	require.NotNil(t, pb)
	require.NotNil(t, pc)

	a.Free(pa)
	a.Free(pc)
	r := a.Check()
	require.True(t, r.OK(), "%v", r.Problems)
	assert.Equal(t, 2, r.FreeCount)
	assert.Equal(t, 1, r.UsedCount)

	a.Free(pb)
	r = a.Check()
	require.True(t, r.OK(), "%v", r.Problems)
	assert.Equal(t, 1, r.FreeCount)
	assert.Equal(t, 1, r.Blocks)
}

// Scenario 3: freeing a large block and then allocating a smaller one
// reuses and splits it, leaving a remainder on the free list.
func TestScenarioFreeThenSmallerAllocSplits(t *testing.T) {
	a := newAllocator(t)

	pa := a.Alloc(200)
	require.NotNil(t, pa)
	a.Free(pa)

	usedBefore := a.Used()
	pb := a.Alloc(32)
	require.NotNil(t, pb)
	assert.Equal(t, pa, pb, "expected the 32-byte alloc to reuse block a's address")

	r := a.Check()
	require.True(t, r.OK(), "%v", r.Problems)
	assert.Equal(t, 1, r.FreeCount, "expected a remainder block left on the free list")
	assert.Greater(t, a.Used(), usedBefore)
}

// Scenario 4: freeing b and then allocating a smaller block reuses b's
// slot without growing the heap.
func TestScenarioReuseWithoutHeapGrowth(t *testing.T) {
	a := newAllocator(t)

	pa := a.Alloc(100)
	require.NotNil(t, pa)
	pb := a.Alloc(100)
	require.NotNil(t, pb)
	sizeBefore := a.Available() + a.Used() // total heap size committed so far

	a.Free(pb)
	pc := a.Alloc(50)
	require.NotNil(t, pc)
	assert.Equal(t, pb, pc)

	sizeAfter := a.Available() + a.Used()
	assert.Equal(t, sizeBefore, sizeAfter, "expected no heap growth")

	r := a.Check()
	require.True(t, r.OK(), "%v", r.Problems)
	assert.Equal(t, 1, r.FreeCount)
}

// Scenario 5: growing a realloc preserves the original payload.
func TestScenarioReallocGrowPreservesData(t *testing.T) {
	a := newAllocator(t)

	p := a.Alloc(32)
	require.NotNil(t, p)
	buf := asBytes(p, 32)
	for i := range buf {
		buf[i] = byte(0xAB + i)
	}

	q := a.Realloc(p, 64)
	require.NotNil(t, q)
	grown := asBytes(q, 32)
	for i := 0; i < 32; i++ {
		assert.Equal(t, byte(0xAB+i), grown[i])
	}
}

// Scenario 6: a double free is tolerated and invariants still hold.
func TestScenarioDoubleFreeTolerated(t *testing.T) {
	a := newAllocator(t)

	p := a.Alloc(16)
	require.NotNil(t, p)
	a.Free(p)
	assert.NotPanics(t, func() { a.Free(p) })

	requireCheckOK(t, a)
}
