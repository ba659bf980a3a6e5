package malloc_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/trevorKirkby/Malloc-Lab/malloc"
	"github.com/trevorKirkby/Malloc-Lab/memlib"
)

const testHeapCap = 1 << 20 // 1 MiB, plenty for these tests

func newAllocator(t *testing.T) *malloc.Allocator {
	t.Helper()
	h := memlib.New(testHeapCap)
	a := malloc.New(h)
	require.NoError(t, a.Init(h, malloc.DefaultOptions))
	return a
}

func requireCheckOK(t *testing.T, a *malloc.Allocator) {
	t.Helper()
	r := a.Check()
	require.True(t, r.OK(), "heap check failed: %v", r.Problems)
}
