package qdw3d

import "math"

// ReferenceDepthwise is the scalar test oracle mandated by spec.md §8: an
// explicit-padding 3D convolution with int32 accumulation followed by the
// same requantization rule as requantize, but expressed as straight-line
// scalar code with no micro-kernel cache, no flag-generic specialization,
// and no partitioning, grounded on guda's Conv2DDirect. Used only by
// tests; production callers always go through DepthwisePad1 or
// DepthwisePerChannelQuantizationPad1.
func ReferenceDepthwise[Bias BiasElem](
	n, t, h, w, k int,
	strideT, strideH, strideW int,
	aZeroPoint int32, a []uint8,
	bZeroPoint []int32, perChannel bool, weight Weight,
	multiplier []float32, cZeroPoint int32,
	colOffsets []int32, bias []Bias, fuseRelu bool,
) []uint8 {
	tOut, hOut, wOut := outExtent(t, strideT), outExtent(h, strideH), outExtent(w, strideW)
	out := make([]uint8, n*tOut*hOut*wOut*k)
	packed := weight.Raw()

	aSymmetric := aZeroPoint == 0 || colOffsets == nil
	hasBias := bias != nil
	intBias := isInt32Bias[Bias]()

	partial := make([]int32, k)
	rowOffsets := make([]int32, k)

	for ni := 0; ni < n; ni++ {
		aBatch := a[ni*t*h*w*k : (ni+1)*t*h*w*k]
		for to := 0; to < tOut; to++ {
			tIn := to*strideT - Padding
			for ho := 0; ho < hOut; ho++ {
				hIn := ho*strideH - Padding
				for wo := 0; wo < wOut; wo++ {
					wIn := wo*strideW - Padding

					for c := 0; c < k; c++ {
						partial[c] = 0
						rowOffsets[c] = 0
					}

					bSymmetric := !perChannel && bZeroPoint[0] == 0

					for kd := 0; kd < KernelSize; kd++ {
						tAbs := tIn + kd
						if tAbs < 0 || tAbs >= t {
							continue
						}
						for kh := 0; kh < KernelSize; kh++ {
							hAbs := hIn + kh
							if hAbs < 0 || hAbs >= h {
								continue
							}
							for kw := 0; kw < KernelSize; kw++ {
								wAbs := wIn + kw
								if wAbs < 0 || wAbs >= w {
									continue
								}
								aBase := (tAbs*h+hAbs)*w*k + wAbs*k
								wBase := ((kd*3+kh)*3 + kw) * k
								for c := 0; c < k; c++ {
									av := int32(aBatch[aBase+c])
									partial[c] += av * int32(packed[wBase+c])
									if !bSymmetric {
										rowOffsets[c] += av
									}
								}
							}
						}
					}

					cBase := ((ni*tOut+to)*hOut+ho)*wOut*k + wo*k
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
						v := saturateUint8(math.RoundToEven(real))
						if fuseRelu && v < uint8(cZeroPoint) {
							v = uint8(cZeroPoint)
						}
						out[cBase+c] = v
					}
				}
			}
		}
	}
	return out
}
