package specstego

import (
	"encoding/binary"
	"fmt"
	"math"
)

// Payload envelope constants
var (
	MagicByte1   = byte(0x5e)
	MagicByte2   = byte(0x9a)
	MagicByte3   = byte(0xc7)
	VersionMajor = byte(0x01)
	VersionMinor = byte(0x00)
)

var Magic = []byte{MagicByte1, MagicByte2, MagicByte3}

// HeaderSize is the length of a sealed envelope's header in bytes.
const HeaderSize = 7

// Header represents the envelope placed in front of a sealed payload.
type Header struct {
	Magic        [3]byte
	VersionMajor byte
	VersionMinor byte
	Length       uint16
}

// NewHeader creates a header for a payload of n bytes.
func NewHeader(n int) Header {
	h := Header{
		VersionMajor: VersionMajor,
		VersionMinor: VersionMinor,
		Length:       uint16(n),
	}
	copy(h.Magic[:], Magic)
	return h
}

// Seal prefixes payload with an envelope header.
func Seal(payload []byte) ([]byte, error) {
	if len(payload) > math.MaxUint16 {
		return nil, fmt.Errorf("%w: payload of %d bytes exceeds %d", ErrEnvelope, len(payload), math.MaxUint16)
	}
	h := NewHeader(len(payload))
	out := make([]byte, HeaderSize, HeaderSize+len(payload))
	copy(out, h.Magic[:])
	out[3] = h.VersionMajor
	out[4] = h.VersionMinor
	binary.BigEndian.PutUint16(out[5:], h.Length)
	return append(out, payload...), nil
}

// IsSealed checks if data starts with the envelope magic bytes
func IsSealed(data []byte) bool {
	if len(data) < HeaderSize {
		return false
	}
	return data[0] == MagicByte1 &&
		data[1] == MagicByte2 &&
		data[2] == MagicByte3
}

// Open returns the payload of a sealed envelope. Trailing bytes past the
// declared length, such as the pad byte of an odd-length carrier sequence,
// are ignored.
func Open(data []byte) ([]byte, error) {
	if !IsSealed(data) {
		return nil, fmt.Errorf("%w: missing magic", ErrEnvelope)
	}
	if data[3] != VersionMajor {
		return nil, fmt.Errorf("%w: unsupported version %d.%d", ErrEnvelope, data[3], data[4])
	}
	n := int(binary.BigEndian.Uint16(data[5:]))
	if len(data)-HeaderSize < n {
		return nil, fmt.Errorf("%w: declared %d bytes, have %d", ErrEnvelope, n, len(data)-HeaderSize)
	}
	return data[HeaderSize : HeaderSize+n], nil
}
