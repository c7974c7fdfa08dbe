// Package wavio reads and writes PCM WAV files as normalised float channels.
package wavio

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"math"
	"os"

	"github.com/youpy/go-wav"
)

const pcmFormat = 1

// ErrUnsupported reports a WAV layout this package does not handle.
var ErrUnsupported = errors.New("wavio: unsupported wav format")

// Source is what go-wav needs to walk RIFF chunks.
type Source interface {
	io.Reader
	io.ReaderAt
}

// Audio holds de-interleaved channels normalised to [-1, 1].
type Audio struct {
	SampleRate    int
	BitsPerSample int
	Channels      [][]float64
}

// Frames returns the number of samples per channel.
func (a *Audio) Frames() int {
	if len(a.Channels) == 0 {
		return 0
	}
	return len(a.Channels[0])
}

// fullScale is the largest positive integer sample at the given depth.
func fullScale(bits int) float64 {
	return float64(int64(1)<<(bits-1) - 1)
}

// Read decodes a mono or stereo 16, 24 or 32-bit PCM WAV stream. Samples are
// divided by the integer maximum of the bit depth.
func Read(r Source) (*Audio, error) {
	rd := wav.NewReader(r)
	format, err := rd.Format()
	if err != nil {
		return nil, fmt.Errorf("wavio: read format: %w", err)
	}
	if format.AudioFormat != pcmFormat {
		return nil, fmt.Errorf("%w: audio format %d, want PCM", ErrUnsupported, format.AudioFormat)
	}
	nch := int(format.NumChannels)
	if nch < 1 || nch > 2 {
		return nil, fmt.Errorf("%w: %d channels", ErrUnsupported, nch)
	}
	bits := int(format.BitsPerSample)
	switch bits {
	case 16, 24, 32:
	default:
		return nil, fmt.Errorf("%w: %d bits per sample", ErrUnsupported, bits)
	}

	a := &Audio{
		SampleRate:    int(format.SampleRate),
		BitsPerSample: bits,
		Channels:      make([][]float64, nch),
	}
	scale := fullScale(bits)
	for {
		samples, err := rd.ReadSamples()
		for _, s := range samples {
			for c := 0; c < nch; c++ {
				a.Channels[c] = append(a.Channels[c], float64(s.Values[c])/scale)
			}
		}
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("wavio: read samples: %w", err)
		}
	}
	return a, nil
}

// ReadFile decodes the WAV file at path.
func ReadFile(path string) (*Audio, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Read(bytes.NewReader(data))
}

// Write encodes a as PCM WAV at the given bit depth. Samples outside [-1, 1]
// saturate.
func Write(w io.Writer, a *Audio, bits int) error {
	nch := len(a.Channels)
	if nch < 1 || nch > 2 {
		return fmt.Errorf("%w: %d channels", ErrUnsupported, nch)
	}
	n := a.Frames()
	for c, ch := range a.Channels {
		if len(ch) != n {
			return fmt.Errorf("wavio: channel %d has %d samples, want %d", c, len(ch), n)
		}
	}
	switch bits {
	case 16, 24, 32:
	default:
		return fmt.Errorf("%w: %d bits per sample", ErrUnsupported, bits)
	}

	scale := fullScale(bits)
	samples := make([]wav.Sample, n)
	for i := range samples {
		for c := 0; c < nch; c++ {
			v := math.Max(-1, math.Min(1, a.Channels[c][i]))
			samples[i].Values[c] = int(math.Round(v * scale))
		}
	}

	buf := &bytes.Buffer{}
	ww := wav.NewWriter(buf, uint32(n), uint16(nch), uint32(a.SampleRate), uint16(bits))
	if err := ww.WriteSamples(samples); err != nil {
		return fmt.Errorf("wavio: write samples: %w", err)
	}
	_, err := io.Copy(w, buf)
	return err
}

// WriteFile encodes a to the file at path.
func WriteFile(path string, a *Audio, bits int) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := Write(f, a, bits); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
