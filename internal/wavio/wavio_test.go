package wavio

import (
	"bytes"
	"errors"
	"math"
	"path/filepath"
	"testing"
)

func testAudio(n, nch int) *Audio {
	a := &Audio{SampleRate: 8000, BitsPerSample: 16, Channels: make([][]float64, nch)}
	for c := range a.Channels {
		a.Channels[c] = make([]float64, n)
		for i := range a.Channels[c] {
			a.Channels[c][i] = 0.5 * math.Sin(2*math.Pi*float64(440*(c+1))*float64(i)/8000)
		}
	}
	return a
}

func TestWriteRead_Stereo16(t *testing.T) {
	t.Parallel()
	in := testAudio(3000, 2)
	var buf bytes.Buffer
	if err := Write(&buf, in, 16); err != nil {
		t.Fatal(err)
	}
	out, err := Read(bytes.NewReader(buf.Bytes()))
	if err != nil {
		t.Fatal(err)
	}
	if out.SampleRate != 8000 || out.BitsPerSample != 16 || len(out.Channels) != 2 {
		t.Fatalf("got rate %d bits %d channels %d", out.SampleRate, out.BitsPerSample, len(out.Channels))
	}
	if out.Frames() != in.Frames() {
		t.Fatalf("got %d frames, want %d", out.Frames(), in.Frames())
	}
	tol := 1 / fullScale(16)
	for c := range in.Channels {
		for i := range in.Channels[c] {
			if d := math.Abs(out.Channels[c][i] - in.Channels[c][i]); d > tol {
				t.Fatalf("channel %d sample %d off by %g", c, i, d)
			}
		}
	}
}

func TestWriteFile_Mono(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "mono.wav")
	if err := WriteFile(path, testAudio(1000, 1), 16); err != nil {
		t.Fatal(err)
	}
	out, err := ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if len(out.Channels) != 1 || out.Frames() != 1000 {
		t.Errorf("got %d channels of %d frames", len(out.Channels), out.Frames())
	}
}

func TestWrite_Saturates(t *testing.T) {
	t.Parallel()
	a := &Audio{SampleRate: 8000, Channels: [][]float64{{2, -2, 0}}}
	var buf bytes.Buffer
	if err := Write(&buf, a, 16); err != nil {
		t.Fatal(err)
	}
	out, err := Read(bytes.NewReader(buf.Bytes()))
	if err != nil {
		t.Fatal(err)
	}
	want := []float64{1, -1, 0}
	for i, v := range out.Channels[0] {
		if v != want[i] {
			t.Errorf("sample %d = %g, want %g", i, v, want[i])
		}
	}
}

func TestWrite_Rejects(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	if err := Write(&buf, testAudio(10, 3), 16); !errors.Is(err, ErrUnsupported) {
		t.Errorf("3 channels: err = %v, want ErrUnsupported", err)
	}
	if err := Write(&buf, testAudio(10, 1), 8); !errors.Is(err, ErrUnsupported) {
		t.Errorf("8 bits: err = %v, want ErrUnsupported", err)
	}
	uneven := &Audio{SampleRate: 8000, Channels: [][]float64{{0, 0}, {0}}}
	if err := Write(&buf, uneven, 16); err == nil {
		t.Error("expected error for uneven channels")
	}
}
