package specstego

import (
	"context"
	"log/slog"
	"math/rand/v2"
)

// Embedder hides one payload in every frame of a channel. It owns its random
// generator and is not safe for concurrent use; run one Embedder per channel.
type Embedder struct {
	payload  []byte
	noise    float64
	rng      *rand.Rand
	channel  int
	recorder Recorder
	logger   *slog.Logger
}

// NewEmbedder creates an Embedder for channel c. A nil recorder or logger
// falls back to a no-op recorder and slog.Default().
func NewEmbedder(payload []byte, noise float64, rng *rand.Rand, c int, recorder Recorder, logger *slog.Logger) *Embedder {
	if recorder == nil {
		recorder = nopRecorder{}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Embedder{
		payload:  payload,
		noise:    noise,
		rng:      rng,
		channel:  c,
		recorder: recorder,
		logger:   logger.With("channel", c),
	}
}

// Process embeds the payload into every frame of signal and returns the
// reconstructed signal, which has the same length as the input.
//
// Every frame synthesizes fresh carrier floats, draws a fresh position set
// and then masks and writes the frame (see EmbedFrame). Process fails before
// touching any frame when the configuration cannot work: a bad frame or hop
// size, a short signal, a non-positive K-factor, or a payload with more
// floats than the frame has reachable bins.
func (e *Embedder) Process(ctx context.Context, signal []float64, frameSize, hopSize int, k float64) ([]float64, error) {
	if err := checkFraming(len(signal), frameSize, hopSize); err != nil {
		return nil, err
	}
	l, err := newBinLayout(frameSize/2+1, k)
	if err != nil {
		return nil, err
	}
	if err := l.checkCapacity((len(e.payload) + 1) / 2); err != nil {
		return nil, err
	}
	if e.logger.Enabled(ctx, slog.LevelDebug) {
		if collide := l.collidingBins(); len(collide) > 0 {
			e.logger.Debug("masking guard active", "bins", collide)
		}
	}

	frames := 0
	out, err := OverlapAdd(signal, frameSize, hopSize, func(_ int, spectrum []complex128) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		floats := SynthesizeFloats(e.rng, e.payload)
		positions, err := l.selectBins(e.rng, len(floats))
		if err != nil {
			return err
		}
		stats, err := l.embed(e.rng, spectrum, positions, floats, e.noise)
		if err != nil {
			return err
		}
		frames++
		e.recorder.RecordFrame(ctx, e.channel, stats)
		return nil
	})
	if err != nil {
		return nil, err
	}
	e.logger.Debug("channel embedded", "frames", frames, "samples", len(signal))
	return out, nil
}
