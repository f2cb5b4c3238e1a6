package ukernel

import "testing"

// interiorActivation builds a T×H×W×K activation buffer filled with a
// position-independent constant, so the expected partial sum per channel
// is trivial to compute by hand.
func interiorActivation(tExt, hExt, wExt, k int, value uint8) []uint8 {
	buf := make([]uint8, tExt*hExt*wExt*k)
	for i := range buf {
		buf[i] = value
	}
	return buf
}

func uniformWeight(k int, value int8) []int8 {
	buf := make([]int8, 27*k)
	for i := range buf {
		buf[i] = value
	}
	return buf
}

func TestScalarGeneratorInteriorSum(t *testing.T) {
	k := 8
	gen := ScalarGenerator{}
	kernel, err := gen.Generate(Descriptor{ComputeActivationSum: true, PerChannel: false, RemainderChannels: k})
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	a := interiorActivation(3, 3, 3, k, 2)
	packed := uniformWeight(k, 3)
	out := make([]int32, 32)
	rowOffsets := make([]int32, 32)

	kernel(a, 0, 0, 0, 3, 3, 3, k, packed, out, rowOffsets, &Masks, 0)

	wantOut := int32(27 * 2 * 3) // 27 taps * activation 2 * weight 3
	wantRow := int32(27 * 2)
	for c := 0; c < k; c++ {
		if out[c] != wantOut {
			t.Errorf("out[%d] = %d, want %d", c, out[c], wantOut)
		}
		if rowOffsets[c] != wantRow {
			t.Errorf("rowOffsets[%d] = %d, want %d", c, rowOffsets[c], wantRow)
		}
	}
	for c := k; c < 32; c++ {
		if out[c] != 0 || rowOffsets[c] != 0 {
			t.Errorf("tail lane %d not zeroed: out=%d rowOffsets=%d", c, out[c], rowOffsets[c])
		}
	}
}

func TestScalarGeneratorSkipsPaddedTaps(t *testing.T) {
	k := 8
	gen := ScalarGenerator{}
	// Top-left-front corner: one skip on each of the three leading faces.
	d := Descriptor{
		ComputeActivationSum: true,
		PrevSkip: 1, TopSkip: 1, LeftSkip: 1,
	}
	kernel, err := gen.Generate(d)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	a := interiorActivation(3, 3, 3, k, 1)
	packed := uniformWeight(k, 1)
	out := make([]int32, 32)
	rowOffsets := make([]int32, 32)

	// Window base (tIn,hIn,wIn) = (-1,-1,-1); valid taps are the 2x2x2 = 8
	// positions with kd,kh,kw in [1,3).
	kernel(a, -1, -1, -1, 3, 3, 3, k, packed, out, rowOffsets, &Masks, 0)

	want := int32(8)
	for c := 0; c < k; c++ {
		if out[c] != want {
			t.Errorf("out[%d] = %d, want %d", c, out[c], want)
		}
	}
}

func TestScalarGeneratorNoRowOffsetsWhenNil(t *testing.T) {
	k := 8
	gen := ScalarGenerator{}
	kernel, err := gen.Generate(Descriptor{ComputeActivationSum: false})
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	a := interiorActivation(3, 3, 3, k, 1)
	packed := uniformWeight(k, 1)
	out := make([]int32, 32)

	// Must not panic with a nil row-offsets slice.
	kernel(a, 0, 0, 0, 3, 3, 3, k, packed, out, nil, &Masks, 0)
}
