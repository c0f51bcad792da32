package bjpeg

import (
	"errors"

	"github.com/halvardk/bjpeg/internal/bitreader"
	"github.com/halvardk/bjpeg/internal/huffman"
)

// Error kinds are tag-level sentinels with no hierarchy between them, per
// the decoder's error taxonomy: each failure surfaces as exactly one of
// these, wrapped with positional context via fmt.Errorf("...: %w", ...).
//
// ErrUnexpectedEOF and ErrUnknownMarker are the same values internal/
// bitreader already returns, re-exported here rather than duplicated, so a
// read failure deep in the BitReader is still errors.Is-matchable through
// this package's sentinel without a separate translation step.
var (
	// ErrUnexpectedEOF is returned when a read runs past the end of the
	// input stream.
	ErrUnexpectedEOF = bitreader.ErrUnexpectedEOF

	// ErrUnknownMarker is returned when a 16-bit marker code is not
	// recognized and does not fall in the APPn range.
	ErrUnknownMarker = bitreader.ErrUnknownMarker

	// ErrMissingSOI is returned when the stream's first marker is not SOI.
	ErrMissingSOI = errors.New("jpeg: missing SOI marker")

	// ErrDuplicateFrame is returned when more than one SOF0 segment
	// appears in the stream.
	ErrDuplicateFrame = errors.New("jpeg: duplicate SOF0 frame")

	// ErrUnsupportedFrame is returned for an SOF0 whose channel count is
	// not 1 or 3.
	ErrUnsupportedFrame = errors.New("jpeg: unsupported frame")

	// ErrUnsupportedScan is returned when the SOS spectral-selection /
	// approximation bytes are not 0x00 0x3F 0x00.
	ErrUnsupportedScan = errors.New("jpeg: unsupported scan (not baseline)")

	// ErrMalformedHuffman is the same value internal/huffman returns,
	// re-exported for errors.Is matching at this package's boundary: a
	// table fails to build, or a bitstream walk runs off the tree.
	ErrMalformedHuffman = huffman.ErrMalformedHuffman

	// ErrMalformedScan is returned for an AC run/length that overflows a
	// block or references a table the current channel does not have.
	ErrMalformedScan = errors.New("jpeg: malformed scan data")

	// ErrTooManyQuantTables is returned when more than 255 quantization
	// tables have been retained.
	ErrTooManyQuantTables = errors.New("jpeg: too many quantization tables")

	// ErrTooManyHuffmanTables is returned when more than 510 Huffman
	// tables have been retained.
	ErrTooManyHuffmanTables = errors.New("jpeg: too many huffman tables")

	// ErrTrailingData is returned when a marker other than EOI follows a
	// completed scan.
	ErrTrailingData = errors.New("jpeg: trailing data after scan")
)
