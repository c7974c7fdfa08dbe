package specstego

import (
	"fmt"

	"github.com/mjibson/go-dsp/window"
)

// FrameFunc mutates one spectral frame in place. start is the sample offset
// of the frame within the signal.
type FrameFunc func(start int, spectrum []complex128) error

// checkFraming validates a frame/hop pair against a signal length.
func checkFraming(n, frameSize, hopSize int) error {
	if frameSize <= 0 || frameSize%2 != 0 {
		return fmt.Errorf("%w: %d is not a positive even length", ErrInvalidFrameSize, frameSize)
	}
	if hopSize <= 0 || hopSize > frameSize {
		return fmt.Errorf("%w: got %d, want 1..%d", ErrInvalidHopSize, hopSize, frameSize)
	}
	if n < frameSize {
		return fmt.Errorf("%w: signal of %d samples is shorter than one frame of %d", ErrInvalidFrameSize, n, frameSize)
	}
	return nil
}

// OverlapAdd runs a windowed STFT over signal, hands every spectral frame to
// fn, and rebuilds a signal of the same length by weighted overlap-add.
//
// Frames start at 0, hopSize, 2*hopSize, ... while start < len(signal)-frameSize;
// the trailing partial frame is dropped and that tail stays zero. Each frame
// is Hann windowed before the forward transform and again after the inverse
// transform; the accumulated output is divided by the accumulated squared
// window, floored at NormFloor.
func OverlapAdd(signal []float64, frameSize, hopSize int, fn FrameFunc) ([]float64, error) {
	n := len(signal)
	if err := checkFraming(n, frameSize, hopSize); err != nil {
		return nil, err
	}

	w := window.Hann(frameSize)
	tf := NewFFT(frameSize)

	// Accumulators: output and normalisation weight.
	out := make([]float64, n+frameSize)
	norm := make([]float64, n+frameSize)
	seg := make([]float64, frameSize)

	for start := 0; start < n-frameSize; start += hopSize {
		for i := 0; i < frameSize; i++ {
			seg[i] = signal[start+i] * w[i]
		}
		spectrum := tf.Forward(seg)
		if fn != nil {
			if err := fn(start, spectrum); err != nil {
				return nil, fmt.Errorf("frame at sample %d: %w", start, err)
			}
		}
		frame := tf.Inverse(spectrum)
		for i := 0; i < frameSize; i++ {
			out[start+i] += frame[i] * w[i]
			norm[start+i] += w[i] * w[i]
		}
	}

	for i := range out {
		out[i] /= max(norm[i], NormFloor)
	}
	return out[:n], nil
}
