package qdw3d

import (
	"math"

	"github.com/coreconv/qdw3d/internal/flag"
)

// BiasElem is the bias numeric type, matching the original's BIAS_TYPE
// template parameter: int32 (already in accumulator scale) or float32 (in
// output scale).
type BiasElem interface {
	int32 | float32
}

// isInt32Bias reports whether Bias is the int32 instantiation. Evaluated
// once per call, outside the per-channel loop, so it costs nothing in the
// hot path.
func isInt32Bias[Bias BiasElem]() bool {
	var zero Bias
	_, ok := any(zero).(int32)
	return ok
}

// requantize implements spec.md §4.C: given a partial-sum row, a
// row-offsets row, the quantization parameters, optional bias, and the
// output zero point, produce K uint8 values. FuseRelu, HasBias,
// ASymmetric, BSymmetric, and PerChannel are phantom flag.Bool type
// parameters — each combination is a distinct generic instantiation
// (component G, spec.md §4.G/§9). The flags are read once into bool locals
// before the loop; the per-channel loop tests those locals.
func requantize[
	FuseRelu flag.Bool,
	HasBias flag.Bool,
	ASymmetric flag.Bool,
	BSymmetric flag.Bool,
	PerChannel flag.Bool,
	Bias BiasElem,
](
	k int,
	partial []int32,
	rowOffsets []int32,
	aZeroPoint int32,
	bZeroPoint []int32,
	colOffsets []int32,
	bias []Bias,
	multiplier []float32,
	cZeroPoint int32,
	out []uint8,
) {
	var fuseRelu FuseRelu
	var hasBiasFlag HasBias
	var aSym ASymmetric
	var bSym BSymmetric
	var perChan PerChannel

	doRelu := fuseRelu.Value()
	hasBias := hasBiasFlag.Value()
	aSymmetric := aSym.Value()
	bSymmetric := bSym.Value()
	perChannel := perChan.Value()
	intBias := isInt32Bias[Bias]()
	zp := uint8(cZeroPoint)

	for c := 0; c < k; c++ {
		s := partial[c]

		if !aSymmetric {
			s -= aZeroPoint * colOffsets[c]
		}
		if !bSymmetric {
			bz := bZeroPoint[0]
			if perChannel {
				bz = bZeroPoint[c]
			}
			s -= bz * rowOffsets[c]
		}

		mult := float64(multiplier[0])
		if perChannel {
			mult = float64(multiplier[c])
		}

		var real float64
		switch {
		case hasBias && intBias:
			s += int32(bias[c])
			real = float64(s) * mult
		case hasBias:
			real = float64(s)*mult + float64(bias[c])
		default:
			real = float64(s) * mult
		}

		real += float64(cZeroPoint)
		rounded := math.RoundToEven(real)
		v := saturateUint8(rounded)
		if doRelu && v < zp {
			v = zp
		}
		out[c] = v
	}
}

func saturateUint8(x float64) uint8 {
	switch {
	case x <= 0:
		return 0
	case x >= 255:
		return 255
	default:
		return uint8(x)
	}
}
