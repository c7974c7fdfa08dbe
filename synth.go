package specstego

import "math/rand/v2"

// SynthesizeFloats turns payload into carrier floats, one per 2-byte chunk.
// An odd trailing byte is paired with 0x00. Each float has sign 0, a biased
// exponent drawn from [MinExponent, MaxExponent], 7 random pad bits and the
// chunk in its low 16 mantissa bits. An empty payload yields no floats.
func SynthesizeFloats(rng *rand.Rand, payload []byte) []float32 {
	floats := make([]float32, 0, (len(payload)+1)/2)
	for i := 0; i < len(payload); i += 2 {
		c := carrier{
			exponent: uint32(intRange(rng, MinExponent, MaxExponent)),
			pad:      uint32(rng.IntN(1 << PadBits)),
			hi:       payload[i],
		}
		if i+1 < len(payload) {
			c.lo = payload[i+1]
		}
		floats = append(floats, packCarrier(c))
	}
	return floats
}
