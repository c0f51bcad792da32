package bjpeg

import (
	"fmt"
	"log/slog"

	"github.com/halvardk/bjpeg/internal/bitreader"
	"github.com/halvardk/bjpeg/internal/huffman"
	"github.com/halvardk/bjpeg/internal/marker"
)

// parseStream walks markers from SOI to EOI, accumulating fs and writing
// pixels into sink as it crosses SOS. It is the segment parser / state
// driver of §4.5.
func parseStream(br *bitreader.Reader, fs *FrameState, sink Sink, opts *DecodeOptions, log *slog.Logger) error {
	first, err := br.ReadMarker()
	if err != nil {
		return fmt.Errorf("parse: reading first marker: %w", err)
	}
	if first != marker.SOI {
		return fmt.Errorf("parse: first marker is %s: %w", first, ErrMissingSOI)
	}

	for {
		m, err := br.ReadMarker()
		if err != nil {
			return fmt.Errorf("parse: reading marker: %w", err)
		}
		if opts.logMarkers() {
			log.Debug("marker", "marker", m.String())
		}

		switch m {
		case marker.EOI:
			return nil

		case marker.COM:
			if err := readComment(br, fs); err != nil {
				return err
			}

		case marker.APPn:
			if err := skipSegment(br); err != nil {
				return err
			}

		case marker.DQT:
			if err := readDQT(br, fs); err != nil {
				return err
			}

		case marker.SOF0:
			if err := readSOF0(br, fs); err != nil {
				return err
			}

		case marker.DHT:
			if err := readDHT(br, fs); err != nil {
				return err
			}

		case marker.SOS:
			if err := readSOS(br, fs, sink, opts, log); err != nil {
				return err
			}
			next, err := br.ReadMarker()
			if err != nil {
				return fmt.Errorf("parse: reading marker after scan: %w", err)
			}
			if next != marker.EOI {
				return fmt.Errorf("parse: marker %s follows scan: %w", next, ErrTrailingData)
			}
			return nil

		default:
			return fmt.Errorf("parse: marker %s: %w", m, ErrUnknownMarker)
		}
	}
}

func readComment(br *bitreader.Reader, fs *FrameState) error {
	length, err := br.ReadSectionLength()
	if err != nil {
		return fmt.Errorf("parse: COM length: %w", err)
	}
	payload, err := br.ReadNBytes(int(length) - 2)
	if err != nil {
		return fmt.Errorf("parse: COM payload: %w", err)
	}
	fs.Comment = string(payload)
	return nil
}

func skipSegment(br *bitreader.Reader) error {
	length, err := br.ReadSectionLength()
	if err != nil {
		return fmt.Errorf("parse: APPn length: %w", err)
	}
	if _, err := br.ReadNBytes(int(length) - 2); err != nil {
		return fmt.Errorf("parse: APPn payload: %w", err)
	}
	return nil
}

func readDQT(br *bitreader.Reader, fs *FrameState) error {
	length, err := br.ReadSectionLength()
	if err != nil {
		return fmt.Errorf("parse: DQT length: %w", err)
	}
	remaining := int(length) - 2
	for remaining > 0 {
		info, err := br.ReadByte()
		if err != nil {
			return fmt.Errorf("parse: DQT info byte: %w", err)
		}
		remaining--
		precision := info >> 4
		id := int(info & 0x0f)

		var table QuantizationTable
		table.ID = id
		if precision == 0 {
			for i := 0; i < 64; i++ {
				b, err := br.ReadByte()
				if err != nil {
					return fmt.Errorf("parse: DQT 8-bit value: %w", err)
				}
				table.Values[i] = uint16(b)
			}
			remaining -= 64
		} else {
			for i := 0; i < 64; i++ {
				w, err := br.ReadWord()
				if err != nil {
					return fmt.Errorf("parse: DQT 16-bit value: %w", err)
				}
				table.Values[i] = w
			}
			remaining -= 128
		}

		if err := fs.addQuantTable(&table); err != nil {
			return fmt.Errorf("parse: DQT: %w", err)
		}
	}
	return nil
}

func readSOF0(br *bitreader.Reader, fs *FrameState) error {
	if fs.HaveSOF0 {
		return fmt.Errorf("parse: SOF0: %w", ErrDuplicateFrame)
	}

	if _, err := br.ReadSectionLength(); err != nil {
		return fmt.Errorf("parse: SOF0 length: %w", err)
	}
	if _, err := br.ReadByte(); err != nil { // precision, assumed 8
		return fmt.Errorf("parse: SOF0 precision: %w", err)
	}
	height, err := br.ReadWord()
	if err != nil {
		return fmt.Errorf("parse: SOF0 height: %w", err)
	}
	width, err := br.ReadWord()
	if err != nil {
		return fmt.Errorf("parse: SOF0 width: %w", err)
	}
	count, err := br.ReadByte()
	if err != nil {
		return fmt.Errorf("parse: SOF0 channel count: %w", err)
	}
	if count != 1 && count != 3 {
		return fmt.Errorf("parse: SOF0 channel count %d: %w", count, ErrUnsupportedFrame)
	}

	channels := make([]*Channel, 0, count)
	for i := 0; i < int(count); i++ {
		id, err := br.ReadByte()
		if err != nil {
			return fmt.Errorf("parse: SOF0 channel id: %w", err)
		}
		sampling, err := br.ReadByte()
		if err != nil {
			return fmt.Errorf("parse: SOF0 sampling: %w", err)
		}
		qtID, err := br.ReadByte()
		if err != nil {
			return fmt.Errorf("parse: SOF0 quant id: %w", err)
		}
		channels = append(channels, &Channel{
			ID:          int(id),
			Horizontal:  int(sampling >> 4 & 0x0f),
			Vertical:    int(sampling & 0x0f),
			QuantID:     int(qtID),
			DCHuffmanID: unassigned,
			ACHuffmanID: unassigned,
		})
	}

	fs.Width, fs.Height = int(width), int(height)
	fs.Channels = channels
	fs.HaveSOF0 = true
	return nil
}

func readDHT(br *bitreader.Reader, fs *FrameState) error {
	length, err := br.ReadSectionLength()
	if err != nil {
		return fmt.Errorf("parse: DHT length: %w", err)
	}
	remaining := int(length) - 2
	for remaining > 0 {
		info, err := br.ReadByte()
		if err != nil {
			return fmt.Errorf("parse: DHT info byte: %w", err)
		}
		remaining--
		class := int(info >> 4)
		id := int(info & 0x0f)

		var lengths [16]int
		total := 0
		for i := 0; i < 16; i++ {
			b, err := br.ReadByte()
			if err != nil {
				return fmt.Errorf("parse: DHT length count: %w", err)
			}
			lengths[i] = int(b)
			total += int(b)
		}
		remaining -= 16

		values, err := br.ReadNBytes(total)
		if err != nil {
			return fmt.Errorf("parse: DHT values: %w", err)
		}
		remaining -= total

		tree, err := huffman.Build(lengths, values)
		if err != nil {
			return fmt.Errorf("parse: DHT table (class %d, id %d): %w", class, id, err)
		}
		if err := fs.addHuffmanTree(class, id, tree); err != nil {
			return fmt.Errorf("parse: DHT: %w", err)
		}
	}
	return nil
}

func readSOS(br *bitreader.Reader, fs *FrameState, sink Sink, opts *DecodeOptions, log *slog.Logger) error {
	if _, err := br.ReadSectionLength(); err != nil {
		return fmt.Errorf("parse: SOS length: %w", err)
	}
	count, err := br.ReadByte()
	if err != nil {
		return fmt.Errorf("parse: SOS channel count: %w", err)
	}
	for i := 0; i < int(count); i++ {
		id, err := br.ReadByte()
		if err != nil {
			return fmt.Errorf("parse: SOS channel id: %w", err)
		}
		huff, err := br.ReadByte()
		if err != nil {
			return fmt.Errorf("parse: SOS huffman ids: %w", err)
		}
		ch := fs.channelByID(int(id))
		if ch == nil {
			return fmt.Errorf("parse: SOS references unknown channel %d: %w", id, ErrMalformedScan)
		}
		ch.DCHuffmanID = int(huff >> 4)
		ch.ACHuffmanID = int(huff & 0x0f)
	}

	spectral, err := br.ReadNBytes(3)
	if err != nil {
		return fmt.Errorf("parse: SOS spectral bytes: %w", err)
	}
	if spectral[0] != 0x00 || spectral[1] != 0x3f || spectral[2] != 0x00 {
		return fmt.Errorf("parse: SOS spectral bytes %x: %w", spectral, ErrUnsupportedScan)
	}

	br.SetEntropyMode(true)
	err = runScan(br, fs, sink, opts, log)
	br.SetEntropyMode(false)
	return err
}
