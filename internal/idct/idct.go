// Package idct implements the 8x8 inverse DCT-II (type-III DCT) used to
// turn dequantized JPEG coefficients back into spatial-domain samples.
//
// The transform is a direct, dependency-free separable Loeffler-style
// butterfly network (one 1-D pass down the columns, one across the rows)
// rather than a call into an external FFT/DCT library, so a decode never
// needs to allocate or tear down an external transform plan.
package idct

const (
	c0 = 2.828427124746190097603377448419 // sqrt(8) -- column/row coefficient 0 weight
	c1 = 3.923141121612921796504728944537
	c2 = 3.695518130045147024512732757587
	c3 = 3.325878449210180948315153510472
	c4 = 2.828427124746190097603377448419
	c5 = 2.222280932078408898971323255794
	c6 = 1.530733729460359086913839936122
	c7 = 0.780361288064513071393139473908

	r1 = 1.414213562373095048801688724209
	a2 = 0.541196100146196984399723205367
	r3 = 1.414213562373095048801688724209
	a4 = 1.306562964876376527856643173427
	a5 = 0.382683432365089771728459984030
)

// butterfly runs the 8-point inverse butterfly network reading 8 values at
// stride `stride` starting at `start` from src, and writes the 8 results
// contiguously into dst[dstStart:dstStart+8].
func butterfly(src []float64, start, stride int, dst []float64, dstStart int) {
	v15 := src[start] * c0
	v26 := src[start+stride] * c1
	v21 := src[start+2*stride] * c2
	v28 := src[start+3*stride] * c3
	v16 := src[start+4*stride] * c4
	v25 := src[start+5*stride] * c5
	v22 := src[start+6*stride] * c6
	v27 := src[start+7*stride] * c7

	v19 := (v25 - v28) * 0.5
	v20 := (v26 - v27) * 0.5
	v23 := (v26 + v27) * 0.5
	v24 := (v25 + v28) * 0.5

	v7 := (v23 + v24) * 0.5
	v11 := (v21 + v22) * 0.5
	v13 := (v23 - v24) * 0.5
	v17 := (v21 - v22) * 0.5

	v8 := (v15 + v16) * 0.5
	v9 := (v15 - v16) * 0.5

	term := (v19 - v20) * a5
	v12 := term - v19*a4
	v14 := v20*a2 - term

	v6 := v14 - v7
	v5 := v13*r3 - v6
	v4 := -v5 - v12
	v10 := v17*r1 - v11

	v0 := (v8 + v11) * 0.5
	v1 := (v9 + v10) * 0.5
	v2 := (v9 - v10) * 0.5
	v3 := (v8 - v11) * 0.5

	dst[dstStart] = (v0 + v7) * 0.5
	dst[dstStart+1] = (v1 + v6) * 0.5
	dst[dstStart+2] = (v2 + v5) * 0.5
	dst[dstStart+3] = (v3 + v4) * 0.5
	dst[dstStart+4] = (v3 - v4) * 0.5
	dst[dstStart+5] = (v2 - v5) * 0.5
	dst[dstStart+6] = (v1 - v6) * 0.5
	dst[dstStart+7] = (v0 - v7) * 0.5
}

// Inverse computes the 2-D inverse DCT-II of 64 coefficients given in
// natural (row-major) order, producing 64 spatial samples in row-major
// order. It does not level-shift or clamp; callers apply the +128 offset
// and 0..255 clamp themselves.
func Inverse(coeffs [64]float64) [64]float64 {
	var cols [64]float64
	for u := 0; u < 8; u++ {
		var tmp [8]float64
		butterfly(coeffs[:], u, 8, tmp[:], 0)
		for v := 0; v < 8; v++ {
			cols[v*8+u] = tmp[v]
		}
	}

	var out [64]float64
	for v := 0; v < 8; v++ {
		butterfly(cols[:], v*8, 1, out[:], v*8)
	}
	return out
}
