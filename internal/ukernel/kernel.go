// Package ukernel stands in for the spec's external AVX2 micro-kernel JIT
// generator and its cache (components A's consumer and B in spec.md §2).
// It produces a Kernel per BoundaryDescriptor-shaped request with the
// boundary's skip bounds baked into the closure's captured loop bounds —
// the same "specialize at generation time, run branch-free after" idea the
// original realizes by JIT-assembling AVX2 machine code, realized here with
// a scalar Go closure (see SPEC_FULL.md's OUT OF SCOPE note on why no real
// SIMD/JIT backend is wired).
package ukernel

// Descriptor is the subset of the boundary descriptor the generator needs.
// It mirrors qdw3d.BoundaryDescriptor minus the fixed SpatialDims and
// Filter fields; duplicated here
// (rather than imported) so this package has no dependency on the root
// package and can be swapped for a real JIT backend without an import cycle.
type Descriptor struct {
	ComputeActivationSum bool
	PerChannel           bool
	RemainderChannels    int
	PrevSkip, NextSkip   int
	TopSkip, BottomSkip  int
	LeftSkip, RightSkip  int
}

// Kernel matches the micro-kernel ABI of spec.md §6:
//
//	(activation_window, packed_weight, out_int32, row_offsets_or_null,
//	 H, W, K, lane_mask_table, a_zero_point, b_zero_point) -> void
//
// The activation window is expressed as (a, tIn, hIn, wIn, H, W, K) rather
// than a raw pointer, since Go slices cannot be offset to a conceptually
// negative base the way the original's pointer arithmetic can (the window
// base for a padded coordinate lies outside the allocated region; only
// skip-excluded offsets are ever actually read). a must hold exactly one
// batch element, length T*H*W*K.
//
// Writes K int32 partial sums into out (length >= ceil(K/32)*32, tail
// lanes beyond K zeroed via the lane-mask table). Writes K row offsets
// into rowOffsets iff rowOffsets is non-nil (the driver passes nil exactly
// when the weight side is symmetric).
type Kernel func(
	a []uint8, tIn, hIn, wIn, tExtent, hExtent, wExtent, k int,
	packed []int8,
	out []int32,
	rowOffsets []int32,
	masks *LaneMaskTable,
	aZeroPoint int32,
)

// Generator produces a Kernel for a given boundary descriptor. A real AVX2
// implementation would JIT-assemble machine code here; ScalarGenerator
// below is the reference implementation used when no such backend is
// wired.
type Generator interface {
	Generate(d Descriptor) (Kernel, error)
}

// ScalarGenerator implements Generator with portable Go scalar loops. The
// boundary's skip bounds become the closure's loop bounds, so the
// generated Kernel never re-checks boundary conditions per channel.
type ScalarGenerator struct{}

func (ScalarGenerator) Generate(d Descriptor) (Kernel, error) {
	kdLo, kdHi := d.PrevSkip, 3-d.NextSkip
	khLo, khHi := d.TopSkip, 3-d.BottomSkip
	kwLo, kwHi := d.LeftSkip, 3-d.RightSkip

	return func(
		a []uint8, tIn, hIn, wIn, tExtent, hExtent, wExtent, k int,
		packed []int8,
		out []int32,
		rowOffsets []int32,
		masks *LaneMaskTable,
		aZeroPoint int32,
	) {
		for c := 0; c < k; c++ {
			out[c] = 0
		}
		if rowOffsets != nil {
			for c := 0; c < k; c++ {
				rowOffsets[c] = 0
			}
		}

		planeStride := hExtent * wExtent * k
		rowStride := wExtent * k

		for kd := kdLo; kd < kdHi; kd++ {
			tAbs := tIn + kd
			planeBase := tAbs * planeStride
			for kh := khLo; kh < khHi; kh++ {
				hAbs := hIn + kh
				rowBase := planeBase + hAbs*rowStride
				for kw := kwLo; kw < kwHi; kw++ {
					wAbs := wIn + kw
					aBase := rowBase + wAbs*k
					wBase := ((kd*3+kh)*3 + kw) * k
					for c := 0; c < k; c++ {
						av := int32(a[aBase+c])
						out[c] += av * int32(packed[wBase+c])
						if rowOffsets != nil {
							rowOffsets[c] += av
						}
					}
				}
			}
		}
		_ = aZeroPoint // consumed by the requantizer, not the accumulation kernel

		zeroTailLanes(out, k, masks)
		if rowOffsets != nil {
			zeroTailLanes(rowOffsets, k, masks)
		}
	}, nil
}

// zeroTailLanes clears the padding lanes of the last channel tile, the
// scalar analog of an AVX2 masked store writing zero to masked-out lanes.
func zeroTailLanes(buf []int32, k int, masks *LaneMaskTable) {
	tileBase := (k / TileWidth) * TileWidth
	rem := k - tileBase
	if rem == 0 {
		return
	}
	mask := masks[rem]
	for lane := 0; lane < TileWidth && tileBase+lane < len(buf); lane++ {
		if mask[lane] == 0 {
			buf[tileBase+lane] = 0
		}
	}
}
