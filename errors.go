package specstego

import "errors"

var (
	ErrInvalidFrameSize      = errors.New("specstego: invalid frame size")
	ErrInvalidHopSize        = errors.New("specstego: invalid hop size")
	ErrDegenerateKFactor     = errors.New("specstego: k-factor must be positive and finite")
	ErrBinSelectionExhausted = errors.New("specstego: not enough distinct bins for payload")
	ErrChannelLength         = errors.New("specstego: channels differ in length")
	ErrEnvelope              = errors.New("specstego: malformed payload envelope")
)
