package bjpeg

import (
	"log/slog"

	"github.com/google/uuid"
)

// DecodeOptions controls ambient diagnostics for a Decode call. It never
// affects decode semantics: two calls with identical input bytes and
// different options produce the same Image, differing only in what gets
// logged. This generalizes the teacher's boolean Control struct into
// structured log fields.
type DecodeOptions struct {
	// Logger receives structured records for this decode. A nil Logger
	// discards all output.
	Logger *slog.Logger

	// LogMarkers emits a debug record for every marker the segment parser
	// dispatches on.
	LogMarkers bool

	// LogMCU emits a debug record for every decoded MCU.
	LogMCU bool

	// RequestID correlates every log record (and any returned error's log
	// context) for one decode. A caller that leaves it empty gets one
	// minted with uuid.NewString.
	RequestID string
}

func (o *DecodeOptions) logger() *slog.Logger {
	if o == nil || o.Logger == nil {
		return slog.New(slog.NewTextHandler(discard{}, nil))
	}
	return o.Logger
}

func (o *DecodeOptions) requestID() string {
	if o == nil || o.RequestID == "" {
		return uuid.NewString()
	}
	return o.RequestID
}

func (o *DecodeOptions) logMarkers() bool {
	return o != nil && o.LogMarkers
}

func (o *DecodeOptions) logMCU() bool {
	return o != nil && o.LogMCU
}

// discard is an io.Writer that drops everything written to it, used as the
// default log sink so Decode never needs a nil check at every call site.
type discard struct{}

func (discard) Write(p []byte) (int, error) { return len(p), nil }
