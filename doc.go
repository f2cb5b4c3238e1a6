// Copyright ©2024 The GUDA Authors. All rights reserved.
// Copyright ©2026 The qdw3d Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package qdw3d implements the orchestration core of a quantized 3D
// depthwise convolution: a fixed 3×3×3 kernel, padding 1, strides in
// {1,2}, uint8 activations, int8 weights.
//
// The package partitions a 5D (N,T,H,W,K) output tensor across
// caller-spawned goroutines, classifies every output coordinate by how its
// receptive field intersects the input's boundary, resolves a specialized
// micro-kernel for that boundary class from a process-wide cache, runs it
// to accumulate an int32 partial sum per channel, and requantizes the
// result to uint8 with optional bias addition and ReLU fusion.
//
// Packing weights, computing quantization parameters, and spawning the
// worker goroutines are the caller's responsibility — this package is the
// per-worker orchestration core, not a full inference op.
package qdw3d
