package tuyastream

import (
	"bytes"
	"encoding/base64"
	"errors"
	"testing"
)

func TestEncode_ExactBytes_LevelNone(t *testing.T) {
	// [100,200,100,200] packed little-endian uint16, NONE = literal-only:
	// header byte 7 (8 bytes - 1), then the 8 packed bytes.
	got, err := Encode([]int{100, 200, 100, 200}, LevelNone)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	raw, err := base64.StdEncoding.DecodeString(got)
	if err != nil {
		t.Fatalf("Encode produced invalid base64: %v", err)
	}

	want := []byte{7, 100, 0, 200, 0, 100, 0, 200, 0}
	if len(raw) != len(want) {
		t.Fatalf("got %d bytes, want %d: %x vs %x", len(raw), len(want), raw, want)
	}
	for i := range raw {
		if raw[i] != want[i] {
			t.Fatalf("byte %d: got %#x, want %#x (full %x vs %x)", i, raw[i], want[i], raw, want)
		}
	}
}

func TestEncode_EmptyInput(t *testing.T) {
	_, err := Encode(nil, LevelNone)
	if !errors.Is(err, ErrIRCode) {
		t.Fatalf("expected ErrIRCode, got %v", err)
	}
}

func TestEncode_AllTimingsOutOfRange(t *testing.T) {
	_, err := Encode([]int{70000, 100000}, LevelNone)
	if !errors.Is(err, ErrIRCode) {
		t.Fatalf("expected ErrIRCode, got %v", err)
	}
}

func TestEncode_DropsOutOfRangeTimings(t *testing.T) {
	got, err := Encode([]int{100, 70000, 200}, LevelNone)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	raw, err := base64.StdEncoding.DecodeString(got)
	if err != nil {
		t.Fatalf("invalid base64: %v", err)
	}
	// Only 100 and 200 survive: header 3 (4 bytes - 1) + 4 packed bytes.
	want := []byte{3, 100, 0, 200, 0}
	if len(raw) != len(want) {
		t.Fatalf("got %x, want %x", raw, want)
	}
}

func TestEncode_AllLevelsRoundTripThroughDecode(t *testing.T) {
	timings := []int{100, 200, 100, 200, 300, 400, 100, 200, 100, 200}
	for _, level := range []CompressionLevel{LevelNone, LevelFast, LevelBalanced, LevelOptimal} {
		got, err := Encode(timings, level)
		if err != nil {
			t.Fatalf("level %v: unexpected error: %v", level, err)
		}
		if got == "" {
			t.Fatalf("level %v: expected non-empty output", level)
		}
		raw, err := base64.StdEncoding.DecodeString(got)
		if err != nil {
			t.Fatalf("level %v: output is not valid base64: %v", level, err)
		}
		if !bytes.Equal(decodeStream(t, raw), packTimings(timings)) {
			t.Fatalf("level %v: decoded stream does not match the packed timings", level)
		}
	}
}
