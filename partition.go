package qdw3d

import "github.com/coreconv/qdw3d/internal/threadpart"

// OutputExtent collects the three output-spatial dimensions a call computes
// over, derived from N, T_in/T_out (stride), H_in/H_out, W_in/W_out.
type OutputExtent struct {
	N, TOut, HOut, WOut int
}

// bindPartition resolves the output-coordinate range threadID owns out of
// numThreads total workers, following spec.md §4.F. WOut is not split
// further: the per-(n,t,h) row is always processed in full by whichever
// thread owns that row, matching the original's thread partition which
// only splits batch, depth, and height.
func bindPartition(ext OutputExtent, threadID, numThreads int) threadpart.Bounds {
	return threadpart.Partition3D(ext.N, ext.TOut, ext.HOut, threadID, numThreads)
}
