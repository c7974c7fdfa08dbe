package specstego_test

import (
	"bytes"
	"errors"
	"testing"

	"github.com/blues/specstego"
)

func TestSeal_OpenRoundTrip(t *testing.T) {
	t.Parallel()
	for _, payload := range [][]byte{nil, []byte("H"), []byte("Hello World!")} {
		sealed, err := specstego.Seal(payload)
		if err != nil {
			t.Fatal(err)
		}
		if !specstego.IsSealed(sealed) {
			t.Fatalf("IsSealed(%x) = false", sealed)
		}
		got, err := specstego.Open(sealed)
		if err != nil {
			t.Fatal(err)
		}
		if !bytes.Equal(got, payload) {
			t.Errorf("Open = %q, want %q", got, payload)
		}
	}
}

func TestOpen_ThroughCarrierFloats(t *testing.T) {
	t.Parallel()
	// An odd sealed length picks up a trailing pad byte; Open must ignore it.
	sealed, err := specstego.Seal([]byte("Hi!!"))
	if err != nil {
		t.Fatal(err)
	}
	carried := specstego.Carried(specstego.SynthesizeFloats(specstego.NewRand(4, 0), sealed))
	if len(carried) != len(sealed)+1 {
		t.Fatalf("carried %d bytes, want %d", len(carried), len(sealed)+1)
	}
	got, err := specstego.Open(carried)
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != "Hi!!" {
		t.Errorf("Open = %q", got)
	}
}

func TestOpen_Malformed(t *testing.T) {
	t.Parallel()
	sealed, _ := specstego.Seal([]byte("payload"))
	badVersion := append([]byte{}, sealed...)
	badVersion[3] = 9
	tests := map[string][]byte{
		"empty":       nil,
		"no magic":    []byte("plain text payload"),
		"truncated":   sealed[:len(sealed)-2],
		"bad version": badVersion,
	}
	for name, data := range tests {
		if _, err := specstego.Open(data); !errors.Is(err, specstego.ErrEnvelope) {
			t.Errorf("%s: err = %v, want ErrEnvelope", name, err)
		}
	}
}

func TestSeal_TooLong(t *testing.T) {
	t.Parallel()
	if _, err := specstego.Seal(make([]byte, 1<<16)); !errors.Is(err, specstego.ErrEnvelope) {
		t.Errorf("err = %v, want ErrEnvelope", err)
	}
}
