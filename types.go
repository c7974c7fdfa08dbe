package specstego

import (
	"context"
	"log/slog"
	"time"
)

// Transform constants.
const (
	FFTSize   = 1024          // Frame length in samples.
	HopSize   = FFTSize / 8   // Stride between consecutive frames.
	BinCount  = FFTSize/2 + 1 // Bins in one real-to-complex frame.
	NormFloor = 1e-8          // Minimum overlap-add normalisation weight.
)

// Embedding constants.
const (
	DefaultNoiseAmplitude = 5.0 // Masking noise is drawn from [-a, a].
	DefaultPayload        = "Hello World!"
)

// Options configures one embedding run across all channels.
type Options struct {
	Payload        []byte       // Bytes to hide; sealed first when Envelope is set.
	FrameSize      int          // Transform length (FFTSize when 0).
	HopSize        int          // Frame stride (FrameSize/8 when 0).
	KFactor        float64      // Bin scaling; derived as length/sample rate when 0.
	NoiseAmplitude float64      // Masking noise amplitude; 0 disables masking.
	Seed           uint64       // Seed for every random draw of the run.
	Envelope       bool         // Seal the payload with a magic/length header.
	Clip           bool         // Clip reconstructed samples to [-1, 1].
	MaxWorkers     int          // Channel goroutine limit; 0 means one per channel.
	Recorder       Recorder     // Optional metric sink.
	Logger         *slog.Logger // Optional; slog.Default() when nil.
}

// DefaultOptions returns the options used by the reference run.
func DefaultOptions() Options {
	return Options{
		Payload:        []byte(DefaultPayload),
		FrameSize:      FFTSize,
		HopSize:        HopSize,
		NoiseAmplitude: DefaultNoiseAmplitude,
		Clip:           true,
	}
}

// FrameStats counts the bins touched while embedding one spectral frame.
type FrameStats struct {
	DataBins  int // Bins that received a payload float.
	NoiseBins int // Bins that received masking noise.
}

// Recorder receives per-frame and per-channel measurements.
// Implementations must be safe for concurrent use; channels run in parallel.
type Recorder interface {
	RecordFrame(ctx context.Context, channel int, stats FrameStats)
	RecordChannel(ctx context.Context, channel int, samples, clipped int, elapsed time.Duration)
}

type nopRecorder struct{}

func (nopRecorder) RecordFrame(context.Context, int, FrameStats) {}
func (nopRecorder) RecordChannel(context.Context, int, int, int, time.Duration) {}
