package specstego

import "math"

// IEEE-754 binary32 layout of a synthesized carrier float.
//
//	| sign:1 | exponent:8 | pad:7 | hi:8 | lo:8 |
//
// pad, hi and lo together form the 23-bit mantissa; hi and lo are the two
// payload bytes carried verbatim.
const (
	WordBits     = 32 // Size of a binary32 word in bits.
	SignBits     = 1
	ExponentBits = 8
	PadBits      = 7
	ByteBits     = 8
	CarrierBits  = 2 * ByteBits
	MantissaBits = PadBits + CarrierBits
	ExponentBias = 127

	// Biased exponent range of carrier floats: well below unity and well
	// above the subnormal range.
	MinExponent = 80
	MaxExponent = 125
)

// carrier is the decoded field view of a carrier float.
type carrier struct {
	sign     uint32
	exponent uint32
	pad      uint32
	hi, lo   byte
}

// packField packs a bit field into word, most significant bit first.
// Parameters:
//
//	word: the output word.
//	bitIndex: pointer to the number of bits already packed.
//	field: the bit field; bits above fieldWidth are ignored.
//	fieldWidth: the width of the field in bits.
func packField(word *uint32, bitIndex *uint, field uint32, fieldWidth uint) {
	*bitIndex += fieldWidth
	*word |= (field & (1<<fieldWidth - 1)) << (WordBits - *bitIndex)
}

// unpackField is the inverse of packField.
func unpackField(word uint32, bitIndex *uint, fieldWidth uint) uint32 {
	*bitIndex += fieldWidth
	return (word >> (WordBits - *bitIndex)) & (1<<fieldWidth - 1)
}

// packCarrier assembles a non-negative binary32 value from its fields.
func packCarrier(c carrier) float32 {
	var word uint32
	var nbit uint
	packField(&word, &nbit, c.sign, SignBits)
	packField(&word, &nbit, c.exponent, ExponentBits)
	packField(&word, &nbit, c.pad, PadBits)
	packField(&word, &nbit, uint32(c.hi), ByteBits)
	packField(&word, &nbit, uint32(c.lo), ByteBits)
	return math.Float32frombits(word)
}

func unpackCarrier(f float32) carrier {
	word := math.Float32bits(f)
	var nbit uint
	var c carrier
	c.sign = unpackField(word, &nbit, SignBits)
	c.exponent = unpackField(word, &nbit, ExponentBits)
	c.pad = unpackField(word, &nbit, PadBits)
	c.hi = byte(unpackField(word, &nbit, ByteBits))
	c.lo = byte(unpackField(word, &nbit, ByteBits))
	return c
}

// CarrierBytes returns the two payload bytes held in the low 16 mantissa
// bits of f, independent of its exponent and pad bits.
func CarrierBytes(f float32) (hi, lo byte) {
	c := unpackCarrier(f)
	return c.hi, c.lo
}

// Carried concatenates the carrier bytes of floats in order. An odd-length
// payload comes back with its trailing 0x00 pad byte.
func Carried(floats []float32) []byte {
	out := make([]byte, 0, 2*len(floats))
	for _, f := range floats {
		hi, lo := CarrierBytes(f)
		out = append(out, hi, lo)
	}
	return out
}
