package idct

// ZigZagRowCol[r][c] gives the wire-order index of the coefficient that
// belongs at natural (row-major) position (r, c): unzigzag[r][c] =
// wire[ZigZagRowCol[r][c]].
var ZigZagRowCol = [8][8]int{
	{0, 1, 5, 6, 14, 15, 27, 28},
	{2, 4, 7, 13, 16, 26, 29, 42},
	{3, 8, 12, 17, 25, 30, 41, 43},
	{9, 11, 18, 24, 31, 40, 44, 53},
	{10, 19, 23, 32, 39, 45, 52, 54},
	{20, 22, 33, 38, 46, 51, 55, 60},
	{21, 34, 37, 47, 50, 56, 59, 61},
	{35, 36, 48, 49, 57, 58, 62, 63},
}

// Unzigzag permutes 64 coefficients from wire (zig-zag) order into natural
// row-major order.
func Unzigzag(wire *[64]int32) [64]int32 {
	var out [64]int32
	i := 0
	for r := 0; r < 8; r++ {
		for c := 0; c < 8; c++ {
			out[i] = wire[ZigZagRowCol[r][c]]
			i++
		}
	}
	return out
}
