package specstego

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"
)

// KFactor returns the K-factor of a signal: its duration in seconds.
func KFactor(samples, sampleRate int) (float64, error) {
	if samples <= 0 || sampleRate <= 0 {
		return 0, fmt.Errorf("%w: %d samples at %d Hz", ErrDegenerateKFactor, samples, sampleRate)
	}
	return float64(samples) / float64(sampleRate), nil
}

// EmbedChannels runs the embedding pipeline over every channel of a
// multi-channel signal and returns the reconstructed channels in order.
//
// All channels must have the same length. The K-factor is shared by all
// channels; when opts.KFactor is 0 it is derived from the channel length and
// sampleRate. Channel c draws from NewRand(opts.Seed, c), so channels share
// no mutable state and run concurrently, bounded by opts.MaxWorkers.
func EmbedChannels(ctx context.Context, channels [][]float64, sampleRate int, opts Options) ([][]float64, error) {
	if len(channels) == 0 {
		return nil, nil
	}
	n := len(channels[0])
	for c, ch := range channels {
		if len(ch) != n {
			return nil, fmt.Errorf("%w: channel %d has %d samples, channel 0 has %d", ErrChannelLength, c, len(ch), n)
		}
	}

	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	recorder := opts.Recorder
	if recorder == nil {
		recorder = nopRecorder{}
	}
	frameSize := opts.FrameSize
	if frameSize == 0 {
		frameSize = FFTSize
	}
	hopSize := opts.HopSize
	if hopSize == 0 {
		hopSize = frameSize / 8
	}
	k := opts.KFactor
	if k == 0 {
		var err error
		if k, err = KFactor(n, sampleRate); err != nil {
			return nil, err
		}
	}
	payload := opts.Payload
	if opts.Envelope {
		var err error
		if payload, err = Seal(payload); err != nil {
			return nil, err
		}
	}

	logger.Info("embedding payload",
		"channels", len(channels),
		"samples", n,
		"sample_rate", sampleRate,
		"k_factor", k,
		"payload_bytes", len(payload),
		"frame_size", frameSize,
		"hop_size", hopSize,
		"seed", opts.Seed,
	)

	out := make([][]float64, len(channels))
	eg, egCtx := errgroup.WithContext(ctx)
	if opts.MaxWorkers > 0 {
		eg.SetLimit(opts.MaxWorkers)
	}
	for c, ch := range channels {
		eg.Go(func() error {
			start := time.Now()
			e := NewEmbedder(payload, opts.NoiseAmplitude, NewRand(opts.Seed, c), c, recorder, logger)
			res, err := e.Process(egCtx, ch, frameSize, hopSize, k)
			if err != nil {
				return fmt.Errorf("channel %d: %w", c, err)
			}
			clipped := 0
			if opts.Clip {
				clipped = clipSamples(res)
			}
			out[c] = res
			recorder.RecordChannel(egCtx, c, len(res), clipped, time.Since(start))
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

// clipSamples limits every sample to [-1, 1] in place and returns how many
// samples were out of range.
func clipSamples(inOut []float64) int {
	clipped := 0
	for i, s := range inOut {
		if s > 1.0 {
			inOut[i] = 1.0
			clipped++
		} else if s < -1.0 {
			inOut[i] = -1.0
			clipped++
		}
	}
	return clipped
}
