package qdw3d

// BoundaryDescriptor identifies how a 3×3×3, pad-1 receptive field
// intersects the input bounds at one output coordinate. It is the cache
// key for the micro-kernel cache (spec.md §4.A): two descriptors are
// equivalent iff every field compares equal, and the struct is comparable
// so it can be used directly as a Go map key.
type BoundaryDescriptor struct {
	SpatialDims        int
	Filter             int
	ComputeActivation  bool // compute_activation_sum: true unless the weight side is symmetric
	PerChannel         bool
	RemainderChannels  int // K mod 32, normalized so 0 becomes 32
	PrevSkip, NextSkip int // depth (T) axis
	TopSkip, BottomSkip int // height (H) axis
	LeftSkip, RightSkip int // width (W) axis
}

// skip clamps max(0, v) to the [0, KernelSize] range the spec allows.
func skip(v int) int {
	if v < 0 {
		return 0
	}
	if v > KernelSize {
		return KernelSize
	}
	return v
}

// newDescriptor derives the boundary descriptor for one output coordinate,
// following spec.md §4.A: input_coord = -1 + out_coord*stride; prev/top/left
// skip = max(0, -input_coord); next/bottom/right skip = max(0, input_coord+3-extent).
func newDescriptor(k int, computeActivation, perChannel bool, tIn, tExtent, hIn, hExtent, wIn, wExtent int) BoundaryDescriptor {
	d := BoundaryDescriptor{
		SpatialDims:       3,
		Filter:            KernelSize,
		ComputeActivation: computeActivation,
		PerChannel:        perChannel,
		RemainderChannels: remainder(k),
		PrevSkip:          skip(-tIn),
		NextSkip:          skip(tIn + KernelSize - tExtent),
		TopSkip:           skip(-hIn),
		BottomSkip:        skip(hIn + KernelSize - hExtent),
		LeftSkip:          skip(-wIn),
		RightSkip:         skip(wIn + KernelSize - wExtent),
	}
	return d
}

// TotalSkip sums the six skip values; an interior coordinate has a total of
// zero, and the spec bounds the total at MaxTotalSkip for any coordinate.
func (d BoundaryDescriptor) TotalSkip() int {
	return d.PrevSkip + d.NextSkip + d.TopSkip + d.BottomSkip + d.LeftSkip + d.RightSkip
}

// Interior reports whether this descriptor describes the unconstrained
// middle-region kernel (all six skips zero).
func (d BoundaryDescriptor) Interior() bool {
	return d.TotalSkip() == 0
}
