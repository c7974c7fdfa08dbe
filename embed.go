package specstego

import (
	"fmt"
	"math/rand/v2"
)

// EmbedFrame writes payload floats into one spectral frame in place.
//
// Phase 1 masks the payload positions: for every index i in [0, floor(L/k))
// that is not a selected position, a value drawn from [-noise, noise] is
// added to bin int(i*k)-1 (index 0 wraps to the last bin). Indices whose
// noise bin coincides with a data bin are skipped, so noise never lands on
// a payload-carrying bin. A zero noise amplitude skips phase 1.
//
// Phase 2 adds floats[rank] to bin int(positions[rank]*k) for every rank
// below len(floats). Positions beyond the float count are left untouched.
func EmbedFrame(rng *rand.Rand, spectrum []complex128, k float64, positions []int, floats []float32, noise float64) (FrameStats, error) {
	l, err := newBinLayout(len(spectrum), k)
	if err != nil {
		return FrameStats{}, err
	}
	return l.embed(rng, spectrum, positions, floats, noise)
}

func (l binLayout) embed(rng *rand.Rand, spectrum []complex128, positions []int, floats []float32, noise float64) (FrameStats, error) {
	var stats FrameStats

	selected := make(map[int]struct{}, len(positions))
	data := make(map[int]struct{}, len(positions))
	for rank, pos := range positions {
		selected[pos] = struct{}{}
		if rank >= len(floats) {
			continue
		}
		b := l.dataBin(pos)
		if pos < 0 || b >= len(spectrum) {
			return stats, fmt.Errorf("position %d maps to bin %d outside frame of %d bins", pos, b, len(spectrum))
		}
		data[b] = struct{}{}
	}

	// Phase 1: masking noise.
	if noise != 0 {
		for i := 0; i < l.usable(); i++ {
			if _, ok := selected[i]; ok {
				continue
			}
			b := l.noiseBin(i)
			if _, ok := data[b]; ok {
				continue
			}
			spectrum[b] += complex(uniform(rng, -noise, noise), 0)
			stats.NoiseBins++
		}
	}

	// Phase 2: payload.
	for rank, pos := range positions {
		if rank >= len(floats) {
			break
		}
		spectrum[l.dataBin(pos)] += complex(float64(floats[rank]), 0)
		stats.DataBins++
	}
	return stats, nil
}

// CollidingBins reports, for a frame of the given length and K-factor, the
// bins that the unguarded masking formula int(i*k)-1 and the data formula
// int(pos*k) can both reach. EmbedFrame never writes noise to such a bin
// while it carries payload; the list documents where the guard is active.
func CollidingBins(bins int, k float64) ([]int, error) {
	l, err := newBinLayout(bins, k)
	if err != nil {
		return nil, err
	}
	return l.collidingBins(), nil
}

func (l binLayout) collidingBins() []int {
	reach := make(map[int]struct{})
	for pos := 0; pos <= l.limit(); pos++ {
		reach[l.dataBin(pos)] = struct{}{}
	}
	var out []int
	seen := make(map[int]struct{})
	for i := 0; i < l.usable(); i++ {
		b := l.noiseBin(i)
		if _, ok := reach[b]; !ok {
			continue
		}
		if _, ok := seen[b]; ok {
			continue
		}
		seen[b] = struct{}{}
		out = append(out, b)
	}
	return out
}
