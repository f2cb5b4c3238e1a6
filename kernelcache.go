package qdw3d

import "github.com/coreconv/qdw3d/internal/ukernel"

// globalKernelCache is the single process-wide micro-kernel cache required
// by spec.md §3 ("A single global JIT cache serves concurrent callers;
// identical descriptors return the same callable.") and §5.
var globalKernelCache = ukernel.NewCache(nil)

// toUkernelDescriptor narrows a BoundaryDescriptor to the fields the
// micro-kernel generator needs.
func toUkernelDescriptor(d BoundaryDescriptor) ukernel.Descriptor {
	return ukernel.Descriptor{
		ComputeActivationSum: d.ComputeActivation,
		PerChannel:           d.PerChannel,
		RemainderChannels:    d.RemainderChannels,
		PrevSkip:             d.PrevSkip,
		NextSkip:             d.NextSkip,
		TopSkip:              d.TopSkip,
		BottomSkip:           d.BottomSkip,
		LeftSkip:             d.LeftSkip,
		RightSkip:            d.RightSkip,
	}
}

// getOrCreateKernel resolves the micro-kernel for d from the global cache.
func getOrCreateKernel(d BoundaryDescriptor) (ukernel.Kernel, error) {
	return globalKernelCache.GetOrCreate(toUkernelDescriptor(d))
}
