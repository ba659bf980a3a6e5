package malloc

import (
	"unsafe"
)

// Word and pointer sizes for the boundary-tag encoding. wordSize is the
// width of the header/footer tag word; ptrSize is the width of a free-list
// link, both stored as raw addresses inside a free block's payload.
const (
	wordSize = int(unsafe.Sizeof(uint64(0)))
	ptrSize  = int(unsafe.Sizeof(uintptr(0)))

	// allocBit is the top bit of the tag word, set iff the block is in use.
	allocBit = uint64(1) << 63
	sizeMask = ^allocBit

	// BlockMin is the smallest legal block size: header, footer, and room
	// for the two free-list links that live in a free block's payload.
	BlockMin = 2*wordSize + 2*ptrSize

	// InnerMin is the smallest legal payload size, i.e. BlockMin minus the
	// header and footer.
	InnerMin = 2 * ptrSize

	// Alignment is the byte alignment of every payload pointer.
	Alignment = 8
)

// align8 rounds s up to the next multiple of Alignment.
func align8(s int) int {
	return (s + Alignment - 1) &^ (Alignment - 1)
}

// alignFloor computes the total block size needed to hold a payload of at
// least s bytes, header and footer included, never smaller than min. The
// overhead is added before flooring against min, so a minimal request
// lands on exactly min rather than min plus an extra header and footer.
func alignFloor(s, min int) int {
	n := align8(s) + 2*wordSize
	if n < min {
		n = min
	}
	return n
}

func tagAt(p unsafe.Pointer) *uint64 {
	return (*uint64)(p)
}

// blocksize reads b's header and returns the block's total size in bytes
// (header + payload + footer), with the allocated bit masked off.
func blocksize(b unsafe.Pointer) int {
	return int(*tagAt(b) & sizeMask)
}

// isAlloc reports whether b's allocated bit is set.
func isAlloc(b unsafe.Pointer) bool {
	return *tagAt(b)&allocBit != 0
}

// setAlloc sets the allocated bit in both header and footer.
func setAlloc(b unsafe.Pointer) {
	*tagAt(b) |= allocBit
	*tagAt(footer(b)) = *tagAt(b)
}

// setFree clears the allocated bit in both header and footer.
func setFree(b unsafe.Pointer) {
	*tagAt(b) &^= allocBit
	*tagAt(footer(b)) = *tagAt(b)
}

// format writes size (with the allocated bit clear) into both b's header
// and footer, establishing b as a well-formed block of that size.
func format(b unsafe.Pointer, size int) {
	*tagAt(b) = uint64(size)
	*tagAt(footer(b)) = uint64(size)
}

// footer returns a pointer to b's footer tag word.
func footer(b unsafe.Pointer) unsafe.Pointer {
	return unsafe.Pointer(uintptr(b) + uintptr(blocksize(b)-wordSize))
}

// payload returns a pointer to the first byte of b's payload, i.e. the
// address handed to the client.
func payload(b unsafe.Pointer) unsafe.Pointer {
	return unsafe.Pointer(uintptr(b) + uintptr(wordSize))
}

// blockFromPayload inverts payload: given a pointer previously returned to
// a client, returns the owning block's header address.
func blockFromPayload(p unsafe.Pointer) unsafe.Pointer {
	return unsafe.Pointer(uintptr(p) - uintptr(wordSize))
}

// innerSize returns the payload size of a block of the given total size.
func innerSize(total int) int {
	return total - 2*wordSize
}

// nextBlock returns the block physically following b. Valid only when b is
// not the heap's last block; callers must guard with b != last.
func nextBlock(b unsafe.Pointer) unsafe.Pointer {
	return unsafe.Pointer(uintptr(b) + uintptr(blocksize(b)))
}

// prevBlock reads the word immediately preceding b — the footer of b's
// physical predecessor — and returns the predecessor's header address.
// Valid only when b is not the heap's lowest block (b != lo); calling this
// on the lowest block reads the word before the heap's first byte, which
// is not part of the heap. Every call site in this package guards with a b != lo
// check before calling prevBlock.
func prevBlock(b unsafe.Pointer) unsafe.Pointer {
	prevFooter := unsafe.Pointer(uintptr(b) - uintptr(wordSize))
	prevSize := int(*tagAt(prevFooter) & sizeMask)
	return unsafe.Pointer(uintptr(b) - uintptr(prevSize))
}
