package qdw3d

import (
	"github.com/coreconv/qdw3d/internal/flag"
	"github.com/coreconv/qdw3d/internal/ukernel"
)

// callParams bundles everything a dispatch variant threads through the
// iterator and driver for one entry-point call: tensor shapes, the
// activation/output buffers, the packed weight, and the quantization
// parameters (spec.md §4.D/§6).
type callParams[Bias BiasElem] struct {
	N, T, H, W           int
	K                    int
	StrideT, StrideH, StrideW int
	TOut, HOut, WOut     int

	A []uint8
	C []uint8

	Weight Weight

	AZeroPoint int32
	BZeroPoint []int32 // length 1 (per-tensor) or K (per-channel)
	Multiplier []float32 // length 1 or K
	CZeroPoint int32
	ColOffsets []int32 // length K, or nil
	Bias       []Bias  // length K, or nil
	HasBias    bool

	// ActTimesWScale is accepted for API parity with the original entry
	// point signature (spec.md §6); it plays no role in the hot-path
	// arithmetic under the bias-ordering resolution recorded in
	// DESIGN.md, so it is stored but never read past construction.
	ActTimesWScale []float32
}

// runPoint implements spec.md §4.D for one already-classified output
// coordinate: invoke the (already-resolved) micro-kernel over the input
// window based at (tIn, hIn, wIn) within the batch slice aBatch, then
// requantize the result into p.C at cOffset. kernel and the row-offsets
// decision are both resolved by the caller (the iterator), not here — this
// keeps runPoint itself free of any cache access.
func runPoint[
	Relu flag.Bool, HasBias flag.Bool, ASym flag.Bool, BSym flag.Bool, PerChan flag.Bool,
	Bias BiasElem,
](
	p *callParams[Bias],
	scratch *Scratch,
	kernel ukernel.Kernel,
	aBatch []uint8,
	tIn, hIn, wIn int,
	cOffset int,
) {
	var bSym BSym
	computeSum := !bSym.Value()

	var rowOffsets []int32
	if computeSum {
		rowOffsets = scratch.RowOffsets()
	}

	kernel(
		aBatch, tIn, hIn, wIn, p.T, p.H, p.W, p.K,
		p.Weight.Raw(), scratch.Partial(), rowOffsets, &ukernel.Masks, p.AZeroPoint,
	)

	out := p.C[cOffset : cOffset+p.K]
	requantize[Relu, HasBias, ASym, BSym, PerChan, Bias](
		p.K, scratch.Partial(), rowOffsets,
		p.AZeroPoint, p.BZeroPoint, p.ColOffsets,
		p.Bias, p.Multiplier, p.CZeroPoint,
		out,
	)
}
