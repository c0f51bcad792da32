package bjpeg

import (
	"fmt"
	"io"

	"github.com/halvardk/bjpeg/internal/bitreader"
)

// Decode reads a baseline sequential JPEG stream from r and returns the
// decoded image. opts may be nil, in which case logging is discarded and a
// request id is minted for diagnostics only; it never changes decode
// semantics. Each call owns its own BitReader, FrameState and scratch
// buffers — nothing is shared across calls.
func Decode(r io.Reader, opts *DecodeOptions) (*Image, error) {
	requestID := opts.requestID()
	log := opts.logger().With("request_id", requestID)

	br := bitreader.New(r)
	fs := newFrameState()
	img := NewImage()

	if err := parseStream(br, fs, img, opts, log); err != nil {
		log.Debug("decode failed", "error", err.Error())
		return nil, fmt.Errorf("decode: %w", err)
	}

	log.Debug("decode complete", "width", img.Width(), "height", img.Height())
	return img, nil
}
