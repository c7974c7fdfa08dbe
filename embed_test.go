package specstego

import (
	"math"
	"reflect"
	"testing"

	"github.com/mjibson/go-dsp/window"
)

func TestEmbedFrame_PhasesDisjoint(t *testing.T) {
	t.Parallel()
	for _, k := range []float64{0.5, 1, 1.5, 2, 3, 7.3, 60, 180} {
		l, _ := newBinLayout(BinCount, k)
		n := min(6, l.capacity())
		for seed := uint64(0); seed < 20; seed++ {
			rng := NewRand(seed, 0)
			floats := SynthesizeFloats(rng, []byte("Hello World!")[:2*n])
			positions, err := l.selectBins(rng, len(floats))
			if err != nil {
				t.Fatalf("k=%g: %v", k, err)
			}
			spectrum := make([]complex128, BinCount)
			stats, err := EmbedFrame(rng, spectrum, k, positions, floats, DefaultNoiseAmplitude)
			if err != nil {
				t.Fatalf("k=%g: %v", k, err)
			}
			if stats.DataBins != len(floats) {
				t.Errorf("k=%g: DataBins = %d, want %d", k, stats.DataBins, len(floats))
			}
			for rank, pos := range positions {
				b := l.dataBin(pos)
				if got := real(spectrum[b]); got != float64(floats[rank]) {
					t.Fatalf("k=%g seed %d: bin %d = %g, want payload float %g untouched by noise",
						k, seed, b, got, floats[rank])
				}
			}
		}
	}
}

func TestCollidingBins(t *testing.T) {
	t.Parallel()
	tests := []struct {
		k    float64
		want []int
	}{
		// int(3i)-1 is 2 mod 3, int(3p) is 0 mod 3, and the wrapped bin 512 is 2 mod 3.
		{3, nil},
		// Odd noise bins never meet even data bins; only the wrapped index 0 reaches 512.
		{2, []int{512}},
	}
	for _, tt := range tests {
		got, err := CollidingBins(BinCount, tt.k)
		if err != nil {
			t.Fatal(err)
		}
		if !reflect.DeepEqual(got, tt.want) {
			t.Errorf("k=%g: CollidingBins = %v, want %v", tt.k, got, tt.want)
		}
	}

	// With k=1 noise index i hits bin i-1, which is every data bin.
	got, err := CollidingBins(BinCount, 1)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != BinCount {
		t.Errorf("k=1: %d colliding bins, want %d", len(got), BinCount)
	}
}

func TestEmbedFrame_PositionsBeyondFloats(t *testing.T) {
	t.Parallel()
	spectrum := make([]complex128, BinCount)
	floats := SynthesizeFloats(NewRand(1, 0), []byte("Hi"))
	stats, err := EmbedFrame(NewRand(1, 0), spectrum, 2, []int{10, 20, 30}, floats, 0)
	if err != nil {
		t.Fatal(err)
	}
	if stats.DataBins != 1 || stats.NoiseBins != 0 {
		t.Errorf("stats = %+v, want 1 data bin and no noise", stats)
	}
	for i, v := range spectrum {
		if i == 20 {
			if real(v) != float64(floats[0]) {
				t.Errorf("bin 20 = %v, want %g", v, floats[0])
			}
			continue
		}
		if v != 0 {
			t.Errorf("bin %d = %v, want untouched", i, v)
		}
	}
}

func TestEmbedFrame_NoiseBounds(t *testing.T) {
	t.Parallel()
	spectrum := make([]complex128, BinCount)
	stats, err := EmbedFrame(NewRand(5, 0), spectrum, 1.5, nil, nil, DefaultNoiseAmplitude)
	if err != nil {
		t.Fatal(err)
	}
	if stats.NoiseBins != 342 {
		t.Errorf("NoiseBins = %d, want 342", stats.NoiseBins)
	}
	for i, v := range spectrum {
		if imag(v) != 0 {
			t.Fatalf("bin %d gained an imaginary part: %v", i, v)
		}
		if math.Abs(real(v)) > DefaultNoiseAmplitude {
			t.Fatalf("bin %d = %g outside noise amplitude", i, real(v))
		}
	}
}

func TestEmbedFrame_RejectsOutOfRangePosition(t *testing.T) {
	t.Parallel()
	spectrum := make([]complex128, BinCount)
	floats := SynthesizeFloats(NewRand(1, 0), []byte("Hi"))
	if _, err := EmbedFrame(NewRand(1, 0), spectrum, 1, []int{BinCount}, floats, 0); err == nil {
		t.Fatal("expected error for position past the frame")
	}
}

func TestEmbedFrame_SineFrameSingleBin(t *testing.T) {
	t.Parallel()
	w := window.Hann(FFTSize)
	seg := make([]float64, FFTSize)
	for i := range seg {
		seg[i] = 0.5 * math.Sin(2*math.Pi*440*float64(i)/44100) * w[i]
	}
	tf := NewFFT(FFTSize)
	spectrum := tf.Forward(seg)
	orig := append([]complex128{}, spectrum...)

	const k = 2.0
	rng := NewRand(11, 0)
	floats := SynthesizeFloats(rng, []byte("Hi"))
	positions, err := SelectBins(rng, len(spectrum), k, len(floats))
	if err != nil {
		t.Fatal(err)
	}
	if _, err := EmbedFrame(rng, spectrum, k, positions, floats, 0); err != nil {
		t.Fatal(err)
	}

	target := int(float64(positions[0]) * k)
	changed := 0
	for i := range spectrum {
		if spectrum[i] != orig[i] {
			changed++
			if i != target {
				t.Errorf("bin %d changed, only bin %d may", i, target)
			}
		}
	}
	if changed > 1 {
		t.Errorf("%d bins changed, want at most 1", changed)
	}
	if want := orig[target] + complex(float64(floats[0]), 0); spectrum[target] != want {
		t.Errorf("bin %d = %v, want %v", target, spectrum[target], want)
	}
}
