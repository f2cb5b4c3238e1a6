package qdw3d

import "golang.org/x/sys/cpu"

// Features summarizes the CPU instruction-set extensions relevant to a
// real AVX2 micro-kernel backend (spec.md §6 "process-wide AVX2 lane-mask
// table"). The scalar ScalarGenerator in internal/ukernel does not read
// this; it exists so callers and the benchmark CLI can report what a JIT
// backend would have targeted, grounded on guda's cpu_features.go.
type Features struct {
	HasSSE41 bool
	HasAVX   bool
	HasAVX2  bool
	HasFMA   bool
}

var features = detectFeatures()

func detectFeatures() Features {
	return Features{
		HasSSE41: cpu.X86.HasSSE41,
		HasAVX:   cpu.X86.HasAVX,
		HasAVX2:  cpu.X86.HasAVX2,
		HasFMA:   cpu.X86.HasFMA,
	}
}

// DetectedFeatures returns the process-wide CPU feature summary.
func DetectedFeatures() Features { return features }

// SIMDReady reports whether the host could run a real AVX2 micro-kernel
// (AVX2 plus FMA, the original's minimum target for this kernel family).
func (f Features) SIMDReady() bool { return f.HasAVX2 && f.HasFMA }

func (f Features) String() string {
	s := ""
	add := func(name string, has bool) {
		if !has {
			return
		}
		if s != "" {
			s += ","
		}
		s += name
	}
	add("sse41", f.HasSSE41)
	add("avx", f.HasAVX)
	add("avx2", f.HasAVX2)
	add("fma", f.HasFMA)
	if s == "" {
		return "scalar-only"
	}
	return s
}
