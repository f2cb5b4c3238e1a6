package qdw3d

import "unsafe"

// Scratch holds the two per-thread int32 buffers the driver accumulates
// into before requantizing: a partial-sum row and a row-offsets row. Both
// are sized to ceil(K/32)*32 so the micro-kernel's tail-lane masking always
// has a full tile to write into, and both start ScratchAlignment-aligned
// (spec.md §4.F "Per-thread scratch"), following guda's MemoryPool pattern
// of allocating a padded byte buffer and handing back an aligned typed view.
type Scratch struct {
	partial    []int32
	rowOffsets []int32
	backing    [2][]byte // retains the over-allocated buffers so the aligned views stay reachable
}

// newScratch allocates a Scratch sized for k channels.
func newScratch(k int) (*Scratch, error) {
	width := alignUp(k, ChannelTile)

	partial, backing1, err := alignedInt32(width)
	if err != nil {
		return nil, newAllocationError("newScratch", err)
	}
	rowOffsets, backing2, err := alignedInt32(width)
	if err != nil {
		return nil, newAllocationError("newScratch", err)
	}

	return &Scratch{partial: partial, rowOffsets: rowOffsets, backing: [2][]byte{backing1, backing2}}, nil
}

// Partial returns the partial-sum scratch row, length ceil(K/32)*32.
func (s *Scratch) Partial() []int32 { return s.partial }

// RowOffsets returns the row-offsets scratch row, length ceil(K/32)*32.
func (s *Scratch) RowOffsets() []int32 { return s.rowOffsets }

// alignedInt32 allocates n int32s starting at a ScratchAlignment-aligned
// address, over-allocating a byte buffer and slicing into it at the first
// aligned offset. The byte buffer is returned alongside so the caller keeps
// a reference to the true allocation (slicing alone does not).
func alignedInt32(n int) (view []int32, backing []byte, err error) {
	if n <= 0 {
		return nil, nil, nil
	}
	byteLen := n * 4
	buf := make([]byte, byteLen+ScratchAlignment)

	base := uintptr(unsafe.Pointer(&buf[0]))
	aligned := (base + ScratchAlignment - 1) &^ (ScratchAlignment - 1)
	skip := int(aligned - base)

	slice := buf[skip : skip+byteLen]
	view = unsafe.Slice((*int32)(unsafe.Pointer(&slice[0])), n)
	return view, buf, nil
}
