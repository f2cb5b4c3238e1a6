// Copyright ©2024 The GUDA Authors. All rights reserved.
// Copyright ©2026 The qdw3d Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Command qdw3dbench runs the literal boundary-coverage scenarios named in
// the kernel's test plan as benchmarks and reports achieved GOPS alongside
// the detected CPU feature set.
package main

import (
	"flag"
	"fmt"
	"log"
	"math/rand"
	"runtime"
	"sync"
	"time"

	"github.com/coreconv/qdw3d"
)

type scenario struct {
	name                   string
	n, t, h, w, k          int
	strideT, strideH, strideW int
}

var scenarios = []scenario{
	{"tiny-cube", 1, 3, 3, 3, 8, 1, 1, 1},
	{"middle-kernel", 1, 5, 5, 5, 8, 1, 1, 1},
	{"strided", 2, 4, 4, 4, 32, 2, 2, 2},
	{"wide-channel", 4, 8, 8, 8, 64, 1, 1, 1},
	{"tail-mask", 1, 3, 3, 3, 40, 1, 1, 1},
}

func main() {
	var (
		numThreads = flag.Int("threads", runtime.NumCPU(), "worker count")
		logDir     = flag.String("logdir", "bench_logs", "benchmark session log directory")
	)
	flag.Parse()

	fmt.Println("=== qdw3d depthwise benchmark ===")
	fmt.Printf("date: %s\n", time.Now().Format(time.RFC3339))
	fmt.Printf("go: %s  goarch: %s  cpus: %d  threads: %d\n",
		runtime.Version(), runtime.GOARCH, runtime.NumCPU(), *numThreads)
	fmt.Printf("cpu features: %s\n", qdw3d.DetectedFeatures())

	logger, err := qdw3d.NewBenchLogger(*logDir)
	if err != nil {
		log.Fatalf("bench logger: %v", err)
	}

	for _, sc := range scenarios {
		elapsed, gops := runScenario(sc, *numThreads)
		fmt.Printf("%-16s %10.2f ms  %8.3f GOPS\n", sc.name, float64(elapsed.Microseconds())/1000, gops)

		if err := logger.Log(qdw3d.BenchResult{
			Name:    sc.name,
			N:       sc.n, T: sc.t, H: sc.h, W: sc.w, K: sc.k,
			NsPerOp: float64(elapsed.Nanoseconds()),
			GOPS:    gops,
		}); err != nil {
			log.Printf("log %s: %v", sc.name, err)
		}
	}

	fmt.Printf("\nsession log: %s\n", logger.Path())
}

func runScenario(sc scenario, numThreads int) (time.Duration, float64) {
	rng := rand.New(rand.NewSource(1))

	a := make([]uint8, sc.n*sc.t*sc.h*sc.w*sc.k)
	for i := range a {
		a[i] = uint8(rng.Intn(256))
	}

	packed := make([]int8, sc.k*qdw3d.KernelProduct)
	for i := range packed {
		packed[i] = int8(rng.Intn(256) - 128)
	}
	weight, err := qdw3d.NewWeight(sc.k, qdw3d.KernelProduct, packed)
	if err != nil {
		log.Fatalf("%s: %v", sc.name, err)
	}

	tOut := outExtent(sc.t, sc.strideT)
	hOut := outExtent(sc.h, sc.strideH)
	wOut := outExtent(sc.w, sc.strideW)
	c := make([]uint8, sc.n*tOut*hOut*wOut*sc.k)

	colOffsets := make([]int32, sc.k)
	for i := range colOffsets {
		colOffsets[i] = int32(rng.Intn(64))
	}

	start := time.Now()
	var wg sync.WaitGroup
	for tid := 0; tid < numThreads; tid++ {
		wg.Add(1)
		go func(tid int) {
			defer wg.Done()
			err := qdw3d.DepthwisePad1[int32](
				sc.n, sc.t, sc.h, sc.w, sc.k,
				sc.strideT, sc.strideH, sc.strideW,
				127, a,
				127, weight,
				0.0039, 0, c,
				colOffsets, nil, false,
				1.0,
				tid, numThreads,
			)
			if err != nil {
				log.Fatalf("%s: %v", sc.name, err)
			}
		}(tid)
	}
	wg.Wait()
	elapsed := time.Since(start)

	ops := float64(sc.n*tOut*hOut*wOut*sc.k) * float64(qdw3d.KernelProduct) * 2
	gops := ops / elapsed.Seconds() / 1e9
	return elapsed, gops
}

func outExtent(extent, stride int) int {
	return (extent+2*qdw3d.Padding-qdw3d.KernelSize)/stride + 1
}
