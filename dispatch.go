package qdw3d

import (
	"github.com/coreconv/qdw3d/internal/flag"
	"github.com/coreconv/qdw3d/internal/threadpart"
)

// outExtent applies the fixed pad-1, kernel-3 output-extent formula of
// spec.md §3 to one spatial axis.
func outExtent(extent, stride int) int {
	return (extent+2*Padding-KernelSize)/stride + 1
}

// DepthwisePad1 is the per-tensor-quantization entry point of spec.md §6
// (depthwise_3x3x3_pad_1): output quantization uses a single B_zero_point
// and a single C_multiplier shared across every channel. Bias may be
// int32 (accumulator scale) or float32 (output scale).
func DepthwisePad1[Bias BiasElem](
	n, t, h, w, k int,
	strideT, strideH, strideW int,
	aZeroPoint int32, a []uint8,
	bZeroPoint int32, weight Weight,
	cMultiplier float32, cZeroPoint int32, c []uint8,
	colOffsets []int32, bias []Bias, fuseRelu bool,
	actTimesWScale float32,
	threadID, numThreads int,
) error {
	if weight.KernelProd() != KernelProduct {
		return newKernelProductError(weight.KernelProd())
	}
	if strideT == 0 || strideH == 0 || strideW == 0 || numThreads == 0 {
		return nil
	}
	if n == 0 {
		return nil
	}

	tOut, hOut, wOut := outExtent(t, strideT), outExtent(h, strideH), outExtent(w, strideW)
	bounds := bindPartition(OutputExtent{N: n, TOut: tOut, HOut: hOut}, threadID, numThreads)

	p := &callParams[Bias]{
		N: n, T: t, H: h, W: w, K: k,
		StrideT: strideT, StrideH: strideH, StrideW: strideW,
		TOut: tOut, HOut: hOut, WOut: wOut,
		A: a, C: c,
		Weight:         weight,
		AZeroPoint:     aZeroPoint,
		BZeroPoint:     []int32{bZeroPoint},
		Multiplier:     []float32{cMultiplier},
		CZeroPoint:     cZeroPoint,
		ColOffsets:     colOffsets,
		Bias:           bias,
		HasBias:        bias != nil,
		ActTimesWScale: []float32{actTimesWScale},
	}

	aSymmetric := aZeroPoint == 0 || colOffsets == nil
	bSymmetric := bZeroPoint == 0

	return dispatchPerTensor[Bias](p, bounds, fuseRelu, p.HasBias, aSymmetric, bSymmetric)
}

// DepthwisePerChannelQuantizationPad1 is the per-channel-quantization
// entry point of spec.md §6: B_zero_point and C_multiplier are length-K
// arrays, and the weight side is always treated as asymmetric (per-channel
// entry fixes B_symmetric = false, per spec.md §4.G).
func DepthwisePerChannelQuantizationPad1[Bias BiasElem](
	n, t, h, w, k int,
	strideT, strideH, strideW int,
	aZeroPoint int32, a []uint8,
	bZeroPointArray []int32, weight Weight,
	cMultiplierArray []float32, cZeroPoint int32, c []uint8,
	colOffsets []int32, bias []Bias, fuseRelu bool,
	actTimesWScaleArray []float32,
	threadID, numThreads int,
) error {
	if weight.KernelProd() != KernelProduct {
		return newKernelProductError(weight.KernelProd())
	}
	if strideT == 0 || strideH == 0 || strideW == 0 || numThreads == 0 {
		return nil
	}
	if n == 0 {
		return nil
	}

	tOut, hOut, wOut := outExtent(t, strideT), outExtent(h, strideH), outExtent(w, strideW)
	bounds := bindPartition(OutputExtent{N: n, TOut: tOut, HOut: hOut}, threadID, numThreads)

	p := &callParams[Bias]{
		N: n, T: t, H: h, W: w, K: k,
		StrideT: strideT, StrideH: strideH, StrideW: strideW,
		TOut: tOut, HOut: hOut, WOut: wOut,
		A: a, C: c,
		Weight:         weight,
		AZeroPoint:     aZeroPoint,
		BZeroPoint:     bZeroPointArray,
		Multiplier:     cMultiplierArray,
		CZeroPoint:     cZeroPoint,
		ColOffsets:     colOffsets,
		Bias:           bias,
		HasBias:        bias != nil,
		ActTimesWScale: actTimesWScaleArray,
	}

	aSymmetric := aZeroPoint == 0 || colOffsets == nil

	return dispatchPerChannel[Bias](p, bounds, fuseRelu, p.HasBias, aSymmetric)
}

// dispatchPerTensor is the static 16-way cascade for the per-tensor entry
// point: fuse_relu, has_bias, A_symmetric, B_symmetric each contribute one
// bit. Every case is a distinct instantiation of iterateRegion, selected
// once per call — never through an indirect call inside the per-coordinate
// hot loop (spec.md §4.G/§9).
func dispatchPerTensor[Bias BiasElem](p *callParams[Bias], bounds threadpart.Bounds, fuseRelu, hasBias, aSymmetric, bSymmetric bool) error {
	idx := 0
	if fuseRelu {
		idx |= 8
	}
	if hasBias {
		idx |= 4
	}
	if aSymmetric {
		idx |= 2
	}
	if bSymmetric {
		idx |= 1
	}

	switch idx {
	case 0:
		return iterateRegion[flag.False, flag.False, flag.False, flag.False, flag.False, Bias](p, bounds)
	case 1:
		return iterateRegion[flag.False, flag.False, flag.False, flag.True, flag.False, Bias](p, bounds)
	case 2:
		return iterateRegion[flag.False, flag.False, flag.True, flag.False, flag.False, Bias](p, bounds)
	case 3:
		return iterateRegion[flag.False, flag.False, flag.True, flag.True, flag.False, Bias](p, bounds)
	case 4:
		return iterateRegion[flag.False, flag.True, flag.False, flag.False, flag.False, Bias](p, bounds)
	case 5:
		return iterateRegion[flag.False, flag.True, flag.False, flag.True, flag.False, Bias](p, bounds)
	case 6:
		return iterateRegion[flag.False, flag.True, flag.True, flag.False, flag.False, Bias](p, bounds)
	case 7:
		return iterateRegion[flag.False, flag.True, flag.True, flag.True, flag.False, Bias](p, bounds)
	case 8:
		return iterateRegion[flag.True, flag.False, flag.False, flag.False, flag.False, Bias](p, bounds)
	case 9:
		return iterateRegion[flag.True, flag.False, flag.False, flag.True, flag.False, Bias](p, bounds)
	case 10:
		return iterateRegion[flag.True, flag.False, flag.True, flag.False, flag.False, Bias](p, bounds)
	case 11:
		return iterateRegion[flag.True, flag.False, flag.True, flag.True, flag.False, Bias](p, bounds)
	case 12:
		return iterateRegion[flag.True, flag.True, flag.False, flag.False, flag.False, Bias](p, bounds)
	case 13:
		return iterateRegion[flag.True, flag.True, flag.False, flag.True, flag.False, Bias](p, bounds)
	case 14:
		return iterateRegion[flag.True, flag.True, flag.True, flag.False, flag.False, Bias](p, bounds)
	default:
		return iterateRegion[flag.True, flag.True, flag.True, flag.True, flag.False, Bias](p, bounds)
	}
}

// dispatchPerChannel is the static 8-way cascade for the per-channel entry
// point: B_symmetric is fixed false, so only fuse_relu, has_bias, and
// A_symmetric vary.
func dispatchPerChannel[Bias BiasElem](p *callParams[Bias], bounds threadpart.Bounds, fuseRelu, hasBias, aSymmetric bool) error {
	idx := 0
	if fuseRelu {
		idx |= 4
	}
	if hasBias {
		idx |= 2
	}
	if aSymmetric {
		idx |= 1
	}

	switch idx {
	case 0:
		return iterateRegion[flag.False, flag.False, flag.False, flag.False, flag.True, Bias](p, bounds)
	case 1:
		return iterateRegion[flag.False, flag.False, flag.True, flag.False, flag.True, Bias](p, bounds)
	case 2:
		return iterateRegion[flag.False, flag.True, flag.False, flag.False, flag.True, Bias](p, bounds)
	case 3:
		return iterateRegion[flag.False, flag.True, flag.True, flag.False, flag.True, Bias](p, bounds)
	case 4:
		return iterateRegion[flag.True, flag.False, flag.False, flag.False, flag.True, Bias](p, bounds)
	case 5:
		return iterateRegion[flag.True, flag.False, flag.True, flag.False, flag.True, Bias](p, bounds)
	case 6:
		return iterateRegion[flag.True, flag.True, flag.False, flag.False, flag.True, Bias](p, bounds)
	default:
		return iterateRegion[flag.True, flag.True, flag.True, flag.False, flag.True, Bias](p, bounds)
	}
}
