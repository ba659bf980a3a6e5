package malloc

import "unsafe"

// split divides b, a free block of size blocksize(b), into a leading
// block of exactly firstSize bytes and a trailing block holding the
// remainder. Both halves are formatted free; the caller owns free-list
// bookkeeping for both and decides which (if either) becomes allocated.
// b must satisfy blocksize(b) >= firstSize+BlockMin.
func split(b unsafe.Pointer, firstSize int) (first, rest unsafe.Pointer) {
	total := blocksize(b)
	format(b, firstSize)
	rest = nextBlock(b)
	format(rest, total-firstSize)
	return b, rest
}

// merge absorbs b2 into b1. b1 and b2 must be physically adjacent
// (nextBlock(b1) == b2) and both free. The combined size is written into
// b1's header and b2's (now the merged block's) footer; the words that
// were b1's footer and b2's header become ordinary payload bytes. Free
// list bookkeeping for the surviving block is the caller's responsibility.
func merge(b1, b2 unsafe.Pointer) unsafe.Pointer {
	size := blocksize(b1) + blocksize(b2)
	*tagAt(b1) = uint64(size)
	*tagAt(footer(b2)) = uint64(size)
	return b1
}
