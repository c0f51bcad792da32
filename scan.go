package bjpeg

import (
	"fmt"
	"log/slog"

	"github.com/halvardk/bjpeg/internal/bitreader"
)

// channelScratch holds one channel's decoded samples for the current MCU,
// at native (sub-sampled) resolution: Hc*8 columns by Vc*8 rows.
type channelScratch struct {
	ch      *Channel
	samples [][]uint8 // [row][col], size (Vertical*8) x (Horizontal*8)
}

// runScan implements §4.7: it iterates the MCU grid in raster order,
// decodes each channel's blocks into a scratch buffer, upsamples
// sub-sampled channels by nearest neighbor, converts to RGB (or passes
// through grayscale), and writes pixels into sink.
func runScan(br *bitreader.Reader, fs *FrameState, sink Sink, opts *DecodeOptions, log *slog.Logger) error {
	if !fs.HaveSOF0 {
		return fmt.Errorf("scan: no SOF0 before SOS: %w", ErrMalformedScan)
	}
	hmax, vmax := fs.maxSampling()

	trees := make([]struct{ dc, ac int }, len(fs.Channels))
	quants := make([]*QuantizationTable, len(fs.Channels))
	for i, c := range fs.Channels {
		if c.DCHuffmanID == unassigned || c.ACHuffmanID == unassigned {
			return fmt.Errorf("scan: channel %d missing huffman assignment: %w", c.ID, ErrMalformedScan)
		}
		trees[i].dc, trees[i].ac = c.DCHuffmanID, c.ACHuffmanID
		qt, ok := fs.quantTable(c.QuantID)
		if !ok {
			return fmt.Errorf("scan: channel %d references unknown quant table %d: %w", c.ID, c.QuantID, ErrMalformedScan)
		}
		quants[i] = qt
	}

	sink.SetSize(fs.Width, fs.Height)
	sink.SetComment(fs.Comment)

	mcuWidth := hmax * 8
	mcuHeight := vmax * 8
	mcusPerRow := ceilDiv(fs.Width, mcuWidth)
	mcusPerCol := ceilDiv(fs.Height, mcuHeight)

	lastDC := make([]int32, len(fs.Channels))

	scratch := make([]channelScratch, len(fs.Channels))
	for i, c := range fs.Channels {
		rows := make([][]uint8, c.Vertical*8)
		for r := range rows {
			rows[r] = make([]uint8, c.Horizontal*8)
		}
		scratch[i] = channelScratch{ch: c, samples: rows}
	}

	mcuIndex := 0
	for mcuRow := 0; mcuRow < mcusPerCol; mcuRow++ {
		for mcuCol := 0; mcuCol < mcusPerRow; mcuCol++ {
			for ci, c := range fs.Channels {
				dcTree, ok := fs.huffmanTree(0, trees[ci].dc)
				if !ok {
					return fmt.Errorf("scan: channel %d missing DC table %d: %w", c.ID, trees[ci].dc, ErrMalformedScan)
				}
				acTree, ok := fs.huffmanTree(1, trees[ci].ac)
				if !ok {
					return fmt.Errorf("scan: channel %d missing AC table %d: %w", c.ID, trees[ci].ac, ErrMalformedScan)
				}

				for by := 0; by < c.Vertical; by++ {
					for bx := 0; bx < c.Horizontal; bx++ {
						block, err := decodeBlock(br, dcTree, acTree, quants[ci], &lastDC[ci])
						if err != nil {
							return fmt.Errorf("scan: mcu %d channel %d block (%d,%d): %w", mcuIndex, c.ID, bx, by, err)
						}
						for r := 0; r < 8; r++ {
							copy(scratch[ci].samples[by*8+r][bx*8:bx*8+8], block[r][:])
						}
					}
				}
			}

			if opts.logMCU() {
				log.Debug("mcu", "index", mcuIndex, "row", mcuRow, "col", mcuCol)
			}

			originX := mcuCol * mcuWidth
			originY := mcuRow * mcuHeight
			emitMCU(sink, fs, scratch, hmax, vmax, originX, originY, mcuWidth, mcuHeight)

			mcuIndex++
		}
	}

	br.AlignToByte()
	return nil
}

func ceilDiv(a, b int) int {
	return (a + b - 1) / b
}

// emitMCU writes every output pixel within one MCU's footprint that falls
// inside the image, upsampling sub-sampled channels by nearest neighbor and
// applying YCbCr->RGB conversion for 3-channel frames.
func emitMCU(sink Sink, fs *FrameState, scratch []channelScratch, hmax, vmax, originX, originY, mcuWidth, mcuHeight int) {
	width, height := fs.Width, fs.Height

	for py := 0; py < mcuHeight; py++ {
		outRow := originY + py
		if outRow >= height {
			break
		}
		for px := 0; px < mcuWidth; px++ {
			outCol := originX + px
			if outCol >= width {
				break
			}

			if len(scratch) == 1 {
				y := sampleChannel(scratch[0], hmax, vmax, px, py)
				sink.SetPixel(outRow, outCol, Pixel{R: y, G: y, B: y})
				continue
			}

			yv := float64(sampleChannel(scratch[0], hmax, vmax, px, py))
			cb := float64(sampleChannel(scratch[1], hmax, vmax, px, py))
			cr := float64(sampleChannel(scratch[2], hmax, vmax, px, py))

			r := yv + 1.402*(cr-128)
			g := yv - 0.34414*(cb-128) - 0.71414*(cr-128)
			b := yv + 1.772*(cb-128)

			sink.SetPixel(outRow, outCol, Pixel{
				R: clampToByte(r),
				G: clampToByte(g),
				B: clampToByte(b),
			})
		}
	}
}

// sampleChannel reads scratch at the nearest-neighbor position for MCU
// pixel (px, py), per the strict JFIF convention: Horizontal multiplies
// columns, Vertical multiplies rows.
func sampleChannel(s channelScratch, hmax, vmax, px, py int) uint8 {
	sy := py * s.ch.Vertical / vmax
	sx := px * s.ch.Horizontal / hmax
	return s.samples[sy][sx]
}

func clampToByte(f float64) uint8 {
	v := roundHalfAwayFromZero(f)
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v)
}
