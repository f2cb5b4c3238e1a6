// Package threadpart maps a flat thread id onto a 3D (batch, depth, height)
// work grid, standing in for the spec's external thread-partition helper
// (fbgemmGetThreadPartition/fbgemmPartition1D in the original FBGEMM
// source). Callers bind the resulting ranges to their own loop nests; this
// package does no work itself and spawns no goroutines.
package threadpart

// Bounds is a half-open range per axis: [Begin, End).
type Bounds struct {
	NBegin, NEnd int
	TBegin, TEnd int
	HBegin, HEnd int
}

// Partition3D splits N*TOut*HOut output work across numThreads workers in
// two tiers, mirroring fbgemmGetThreadPartition's batch-then-grid scheme:
// threads are first divided across the batch axis (as many whole threads
// as fit, capped by N), and the remaining thread budget is arranged into a
// roughly square grid over (T, H) and handed to every batch-group member.
func Partition3D(n, tOut, hOut, threadID, numThreads int) Bounds {
	if numThreads <= 0 {
		return Bounds{}
	}
	if threadID < 0 || threadID >= numThreads {
		return Bounds{}
	}

	gNumThreads := numThreads
	if n > 0 && gNumThreads > n {
		gNumThreads = n
	}
	if gNumThreads < 1 {
		gNumThreads = 1
	}
	remaining := numThreads / gNumThreads
	if remaining < 1 {
		remaining = 1
	}

	gThreadID := threadID / remaining
	localID := threadID % remaining
	if gThreadID >= gNumThreads {
		// Excess threads (numThreads not evenly divisible) get empty ranges.
		return Bounds{}
	}

	mNumThreads, nNumThreads := grid2D(remaining)
	mThreadID := localID / nNumThreads
	nThreadID := localID % nNumThreads

	nBegin, nEnd := partition1D(gThreadID, gNumThreads, n)
	tBegin, tEnd := partition1D(mThreadID, mNumThreads, tOut)
	hBegin, hEnd := partition1D(nThreadID, nNumThreads, hOut)

	return Bounds{
		NBegin: nBegin, NEnd: nEnd,
		TBegin: tBegin, TEnd: tEnd,
		HBegin: hBegin, HEnd: hEnd,
	}
}

// partition1D divides [0, extent) into numThreads near-equal contiguous
// chunks and returns the chunk assigned to threadID.
func partition1D(threadID, numThreads, extent int) (begin, end int) {
	if numThreads <= 0 || extent <= 0 {
		return 0, 0
	}
	if threadID >= numThreads {
		return 0, 0
	}
	chunk := extent / numThreads
	rest := extent % numThreads
	if threadID < rest {
		begin = threadID * (chunk + 1)
		end = begin + chunk + 1
	} else {
		begin = rest*(chunk+1) + (threadID-rest)*chunk
		end = begin + chunk
	}
	return begin, end
}

// grid2D factors a thread count into an (m, n) grid as close to square as
// possible, with m <= n: when count is not a perfect square the grid has
// fewer rows (depth splits) than columns (height splits), e.g. 6 -> (2, 3).
func grid2D(count int) (m, n int) {
	if count < 1 {
		return 1, 1
	}
	for m = 1; m*m <= count; m++ {
	}
	m--
	for count%m != 0 {
		m--
	}
	n = count / m
	return m, n
}
