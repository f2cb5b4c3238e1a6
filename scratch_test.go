package qdw3d

import (
	"testing"
	"unsafe"
)

func isAligned(p []int32, align uintptr) bool {
	if len(p) == 0 {
		return true
	}
	addr := uintptr(unsafe.Pointer(&p[0]))
	return addr&(align-1) == 0
}

func TestNewScratchAlignment(t *testing.T) {
	for _, k := range []int{1, 8, 27, 32, 33, 40, 64, 127} {
		s, err := newScratch(k)
		if err != nil {
			t.Fatalf("newScratch(%d): %v", k, err)
		}
		if !isAligned(s.Partial(), ScratchAlignment) {
			t.Errorf("k=%d: Partial() not %d-byte aligned", k, ScratchAlignment)
		}
		if !isAligned(s.RowOffsets(), ScratchAlignment) {
			t.Errorf("k=%d: RowOffsets() not %d-byte aligned", k, ScratchAlignment)
		}
	}
}

func TestNewScratchSize(t *testing.T) {
	cases := []struct{ k, want int }{
		{1, 32}, {8, 32}, {32, 32}, {33, 64}, {40, 64}, {64, 64}, {65, 96},
	}
	for _, c := range cases {
		s, err := newScratch(c.k)
		if err != nil {
			t.Fatalf("newScratch(%d): %v", c.k, err)
		}
		if len(s.Partial()) != c.want {
			t.Errorf("k=%d: len(Partial()) = %d, want %d", c.k, len(s.Partial()), c.want)
		}
		if len(s.RowOffsets()) != c.want {
			t.Errorf("k=%d: len(RowOffsets()) = %d, want %d", c.k, len(s.RowOffsets()), c.want)
		}
	}
}

func TestNewScratchBuffersIndependent(t *testing.T) {
	s, err := newScratch(8)
	if err != nil {
		t.Fatalf("newScratch: %v", err)
	}
	s.Partial()[0] = 42
	if s.RowOffsets()[0] == 42 {
		t.Fatal("Partial and RowOffsets alias the same backing memory")
	}
}
