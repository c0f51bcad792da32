package bjpeg

import (
	"fmt"

	"github.com/halvardk/bjpeg/internal/bitreader"
	"github.com/halvardk/bjpeg/internal/huffman"
	"github.com/halvardk/bjpeg/internal/idct"
)

// readHuffmanSymbol walks tree one bit at a time from br until a leaf is
// reached, implementing BitReader.read_huffman_symbol.
func readHuffmanSymbol(br *bitreader.Reader, tree *huffman.Tree) (byte, error) {
	var sym byte
	for {
		bit, err := br.ReadBit()
		if err != nil {
			return 0, err
		}
		done, err := tree.Step(bit, &sym)
		if err != nil {
			return 0, err
		}
		if done {
			return sym, nil
		}
	}
}

// decodeBlock runs the §4.6 MCU pipeline for one 8x8 block: entropy decode,
// dequantize, unzigzag, IDCT, level shift and clamp. lastDC is the running
// DC predictor for this channel and is updated in place.
func decodeBlock(br *bitreader.Reader, dcTree, acTree *huffman.Tree, quant *QuantizationTable, lastDC *int32) ([8][8]uint8, error) {
	var wire [64]int32

	s, err := readHuffmanSymbol(br, dcTree)
	if err != nil {
		return [8][8]uint8{}, fmt.Errorf("mcu: dc symbol: %w", err)
	}
	delta, err := br.ReadMagnitude(uint(s))
	if err != nil {
		return [8][8]uint8{}, fmt.Errorf("mcu: dc magnitude: %w", err)
	}
	*lastDC += delta
	wire[0] = *lastDC

	pos := 1
	for pos <= 63 {
		t, err := readHuffmanSymbol(br, acTree)
		if err != nil {
			return [8][8]uint8{}, fmt.Errorf("mcu: ac symbol: %w", err)
		}
		if t == 0x00 { // EOB
			break
		}
		run := int(t >> 4)
		length := uint(t & 0x0f)

		if pos+run > 63 {
			return [8][8]uint8{}, fmt.Errorf("mcu: ac run overflows block: %w", ErrMalformedScan)
		}
		pos += run

		value, err := br.ReadMagnitude(length)
		if err != nil {
			return [8][8]uint8{}, fmt.Errorf("mcu: ac magnitude: %w", err)
		}
		wire[pos] = value
		pos++
	}

	for i := range wire {
		wire[i] *= int32(quant.Values[i])
	}

	natural := idct.Unzigzag(&wire)

	var coeffs [64]float64
	for i, v := range natural {
		coeffs[i] = float64(v)
	}
	samples := idct.Inverse(coeffs)

	var block [8][8]uint8
	i := 0
	for r := 0; r < 8; r++ {
		for c := 0; c < 8; c++ {
			block[r][c] = levelShiftClamp(samples[i])
			i++
		}
	}
	return block, nil
}

func levelShiftClamp(s float64) uint8 {
	v := 128 + roundHalfAwayFromZero(s)
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v)
}

func roundHalfAwayFromZero(f float64) int {
	if f >= 0 {
		return int(f + 0.5)
	}
	return -int(-f + 0.5)
}
