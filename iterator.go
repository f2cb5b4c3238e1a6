package qdw3d

import (
	"github.com/coreconv/qdw3d/internal/flag"
	"github.com/coreconv/qdw3d/internal/threadpart"
	"github.com/coreconv/qdw3d/internal/ukernel"
)

// iterateRegion walks a thread's assigned (n, t, h, w) subregion in the
// band order of spec.md §4.E. Rather than hand-classifying nine (T-band,
// H-band) combinations up front, it memoizes the last resolved boundary
// descriptor and its kernel: consecutive coordinates that share a
// descriptor (the entire middle band runs this way, and so does any
// single-boundary-axis run) reuse the cached callable directly, so the
// micro-kernel cache is consulted only at an actual descriptor
// transition — never inside a run of homogeneous coordinates. This is the
// "single generic boundary classifier" structure spec.md §9 calls out as
// semantically equivalent to the nine-band decomposition.
func iterateRegion[
	Relu flag.Bool, HasBias flag.Bool, ASym flag.Bool, BSym flag.Bool, PerChan flag.Bool,
	Bias BiasElem,
](p *callParams[Bias], bounds threadpart.Bounds) error {
	scratch, err := newScratch(p.K)
	if err != nil {
		return err
	}

	var bSym BSym
	var perChan PerChan
	computeSum := !bSym.Value()
	perChannel := perChan.Value()

	batchStrideA := p.T * p.H * p.W * p.K
	rowStrideC := p.WOut * p.K
	planeStrideC := p.HOut * rowStrideC
	batchStrideC := p.TOut * planeStrideC

	var lastDesc BoundaryDescriptor
	var lastKernel ukernel.Kernel
	have := false

	for n := bounds.NBegin; n < bounds.NEnd; n++ {
		aBatch := p.A[n*batchStrideA : (n+1)*batchStrideA]
		cBatchBase := n * batchStrideC

		for t := bounds.TBegin; t < bounds.TEnd; t++ {
			tIn := t*p.StrideT - Padding
			cPlaneBase := cBatchBase + t*planeStrideC

			for h := bounds.HBegin; h < bounds.HEnd; h++ {
				hIn := h*p.StrideH - Padding
				cRowBase := cPlaneBase + h*rowStrideC

				for w := 0; w < p.WOut; w++ {
					wIn := w*p.StrideW - Padding

					desc := newDescriptor(p.K, computeSum, perChannel, tIn, p.T, hIn, p.H, wIn, p.W)

					var kernel ukernel.Kernel
					if have && desc == lastDesc {
						kernel = lastKernel
					} else {
						kernel, err = getOrCreateKernel(desc)
						if err != nil {
							return err
						}
						lastDesc, lastKernel, have = desc, kernel, true
					}

					runPoint[Relu, HasBias, ASym, BSym, PerChan, Bias](
						p, scratch, kernel, aBatch, tIn, hIn, wIn, cRowBase+w*p.K,
					)
				}
			}
		}
	}
	return nil
}
