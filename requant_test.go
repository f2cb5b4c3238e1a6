package qdw3d

import (
	"math"
	"testing"

	"github.com/coreconv/qdw3d/internal/flag"
)

func TestSaturateUint8(t *testing.T) {
	cases := []struct {
		in   float64
		want uint8
	}{
		{-10, 0}, {-0.5, 0}, {0, 0}, {127, 127}, {255, 255}, {300, 255}, {254.6, 254},
	}
	for _, c := range cases {
		if got := saturateUint8(c.in); got != c.want {
			t.Errorf("saturateUint8(%v) = %d, want %d", c.in, got, c.want)
		}
	}
}

func TestIsInt32Bias(t *testing.T) {
	if !isInt32Bias[int32]() {
		t.Error("isInt32Bias[int32]() = false, want true")
	}
	if isInt32Bias[float32]() {
		t.Error("isInt32Bias[float32]() = true, want false")
	}
}

func TestRequantizeSymmetricNoBias(t *testing.T) {
	k := 4
	partial := []int32{100, 200, 300, 400}
	out := make([]uint8, k)

	requantize[flag.False, flag.False, flag.True, flag.True, flag.False, int32](
		k, partial, nil, 0, []int32{0}, nil, nil,
		[]float32{0.5}, 10, out,
	)

	for c, p := range partial {
		want := saturateUint8(math.RoundToEven(float64(p)*0.5 + 10))
		if out[c] != want {
			t.Errorf("out[%d] = %d, want %d", c, out[c], want)
		}
	}
}

func TestRequantizeAsymmetricMatchesManualCorrection(t *testing.T) {
	k := 2
	partial := []int32{1000, -500}
	colOffsets := []int32{10, 20}
	rowOffsets := []int32{5, 7}
	aZeroPoint := int32(3)
	bZeroPoint := []int32{2}
	out := make([]uint8, k)

	requantize[flag.False, flag.False, flag.False, flag.False, flag.False, int32](
		k, partial, rowOffsets, aZeroPoint, bZeroPoint, colOffsets, nil,
		[]float32{1.0}, 0, out,
	)

	for c := range partial {
		s := partial[c] - aZeroPoint*colOffsets[c] - bZeroPoint[0]*rowOffsets[c]
		want := saturateUint8(math.RoundToEven(float64(s)))
		if out[c] != want {
			t.Errorf("out[%d] = %d, want %d", c, out[c], want)
		}
	}
}

func TestRequantizeIntBiasAddedBeforeScale(t *testing.T) {
	k := 1
	partial := []int32{10}
	bias := []int32{5}
	out := make([]uint8, k)

	requantize[flag.False, flag.True, flag.True, flag.True, flag.False, int32](
		k, partial, nil, 0, []int32{0}, nil, bias,
		[]float32{2.0}, 0, out,
	)

	want := saturateUint8(float64((10 + 5) * 2))
	if out[0] != want {
		t.Errorf("out[0] = %d, want %d (bias added before scale)", out[0], want)
	}
}

func TestRequantizeFloatBiasAddedAfterScale(t *testing.T) {
	k := 1
	partial := []int32{10}
	bias := []float32{5}
	out := make([]uint8, k)

	requantize[flag.False, flag.True, flag.True, flag.True, flag.False, float32](
		k, partial, nil, 0, []int32{0}, nil, bias,
		[]float32{2.0}, 0, out,
	)

	want := saturateUint8(float64(10*2) + 5)
	if out[0] != want {
		t.Errorf("out[0] = %d, want %d (bias added after scale)", out[0], want)
	}
}

func TestRequantizeReluClampsToZeroPoint(t *testing.T) {
	k := 1
	// A very negative partial sum requantizes below the output zero
	// point; ReLU fusion must clamp up to it instead of saturating to 0.
	partial := []int32{-1000}
	out := make([]uint8, k)

	requantize[flag.True, flag.False, flag.True, flag.True, flag.False, int32](
		k, partial, nil, 0, []int32{0}, nil, nil,
		[]float32{1.0}, 50, out,
	)

	if out[0] != 50 {
		t.Errorf("out[0] = %d, want 50 (clamped to C_zero_point)", out[0])
	}
}

func TestRequantizePerChannelSelectsOwnIndex(t *testing.T) {
	k := 2
	partial := []int32{100, 100}
	multiplier := []float32{1.0, 2.0}
	out := make([]uint8, k)

	requantize[flag.False, flag.False, flag.True, flag.True, flag.True, int32](
		k, partial, nil, 0, []int32{0, 0}, nil, nil,
		multiplier, 0, out,
	)

	if out[0] != 100 || out[1] != 200 {
		t.Errorf("out = %v, want [100 200]", out)
	}
}
