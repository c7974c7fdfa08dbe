package specstego

import "github.com/mjibson/go-dsp/fft"

// FFT is a real-signal transform pair over fixed-length frames.
type FFT interface {
	// Forward returns the size/2+1 non-negative frequency bins of in.
	Forward(in []float64) []complex128
	// Inverse returns the size real samples whose half spectrum is in.
	Inverse(in []complex128) []float64
}

// realFFT implements FFT using go-dsp/fft.
type realFFT struct {
	size int
}

// NewFFT creates a new FFT instance for the given frame size.
func NewFFT(size int) FFT {
	return &realFFT{size: size}
}

// Forward keeps only the first size/2+1 bins of the full go-dsp transform;
// the rest are their complex conjugates.
func (f *realFFT) Forward(in []float64) []complex128 {
	full := fft.FFTReal(in)
	return full[:f.size/2+1]
}

// Inverse rebuilds the Hermitian full spectrum and runs go-dsp's IFFT, which
// already scales by 1/size. The imaginary parts of the DC and Nyquist bins
// have no real-valued counterpart and are dropped with the imaginary output.
func (f *realFFT) Inverse(in []complex128) []float64 {
	n := f.size
	full := make([]complex128, n)
	full[0] = in[0]
	for k := 1; k < len(in) && k < n; k++ {
		full[k] = in[k]
		if n-k != k {
			full[n-k] = complex(real(in[k]), -imag(in[k]))
		}
	}
	out := make([]float64, n)
	for i, v := range fft.IFFT(full) {
		out[i] = real(v)
	}
	return out
}
