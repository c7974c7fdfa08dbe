package specstego

import (
	"fmt"
	"math"
	"math/rand/v2"
)

// binLayout maps selection positions and masking indices onto the bins of
// one spectral frame for a given K-factor.
type binLayout struct {
	bins int     // Spectral frame length.
	k    float64 // K-factor.
}

func newBinLayout(bins int, k float64) (binLayout, error) {
	if k <= 0 || math.IsNaN(k) || math.IsInf(k, 0) {
		return binLayout{}, fmt.Errorf("%w: got %v", ErrDegenerateKFactor, k)
	}
	return binLayout{bins: bins, k: k}, nil
}

// usable is floor(bins/k), the usable bin count.
func (l binLayout) usable() int {
	return int(math.Floor(float64(l.bins) / l.k))
}

// limit is the highest selectable position. It is usable() unless that
// position's data bin would fall one past the end of the frame.
func (l binLayout) limit() int {
	u := l.usable()
	if u > 0 && l.dataBin(u) >= l.bins {
		u--
	}
	return u
}

// capacity is the number of distinct data bins reachable from [0, limit].
func (l binLayout) capacity() int {
	lim := l.limit()
	return min(lim+1, l.dataBin(lim)+1)
}

// dataBin is the bin that receives the payload float for position pos.
func (l binLayout) dataBin(pos int) int {
	return int(float64(pos) * l.k)
}

// noiseBin is the bin that receives masking noise for index i. Index 0
// maps to -1, which wraps to the last bin.
func (l binLayout) noiseBin(i int) int {
	b := int(float64(i)*l.k) - 1
	if b < 0 {
		b += l.bins
	}
	return b
}

// UsableBins returns floor(bins/k), the number of addressable positions
// below the selection limit.
func UsableBins(bins int, k float64) (int, error) {
	l, err := newBinLayout(bins, k)
	if err != nil {
		return 0, err
	}
	return l.usable(), nil
}

// SelectBins draws n distinct positions in [0, floor(bins/k)] for a frame of
// the given length by uniform sampling with rejection of duplicates. A
// position is also rejected when its data bin is already claimed, so every
// returned position writes a different bin. Positions are returned in
// generation order.
//
// When fewer than n distinct bins are reachable the call fails with
// ErrBinSelectionExhausted instead of sampling forever.
func SelectBins(rng *rand.Rand, bins int, k float64, n int) ([]int, error) {
	l, err := newBinLayout(bins, k)
	if err != nil {
		return nil, err
	}
	return l.selectBins(rng, n)
}

// checkCapacity fails when n payload floats cannot get distinct bins.
func (l binLayout) checkCapacity(n int) error {
	if c := l.capacity(); c < n {
		return fmt.Errorf("%w: %d payload floats, %d bins reachable (bins=%d, k=%g)",
			ErrBinSelectionExhausted, n, c, l.bins, l.k)
	}
	return nil
}

func (l binLayout) selectBins(rng *rand.Rand, n int) ([]int, error) {
	if n <= 0 {
		return nil, nil
	}
	if err := l.checkCapacity(n); err != nil {
		return nil, err
	}
	lim := l.limit()
	positions := make([]int, 0, n)
	claimed := make(map[int]struct{}, n)
	for len(positions) < n {
		pos := rng.IntN(lim + 1)
		b := l.dataBin(pos)
		if _, ok := claimed[b]; ok {
			continue
		}
		claimed[b] = struct{}{}
		positions = append(positions, pos)
	}
	return positions, nil
}
