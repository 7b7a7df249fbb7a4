package tuyastream

import (
	"bytes"
	"encoding/base64"
	"encoding/binary"
	"fmt"
)

// maxTimingValue is one past the largest value that fits a little-endian
// uint16; timings at or above it are dropped rather than encoded, since the
// wire format has no wider field to carry them.
const maxTimingValue = 1 << 16

// Encode packs a decoded timing sequence into the compressed block stream
// and returns it Base64-encoded, ready to publish to a Tuya IR blaster.
func Encode(timings []int, level CompressionLevel) (string, error) {
	if len(timings) == 0 {
		return "", fmt.Errorf("%w: empty timing sequence", ErrIRCode)
	}

	payload := make([]byte, 0, len(timings)*2)
	for _, t := range timings {
		if t < 0 || t >= maxTimingValue {
			continue
		}
		var buf [2]byte
		binary.LittleEndian.PutUint16(buf[:], uint16(t))
		payload = append(payload, buf[:]...)
	}
	if len(payload) == 0 {
		return "", fmt.Errorf("%w: no timings fit a 16-bit field", ErrIRCode)
	}

	var out bytes.Buffer
	if err := compress(&out, payload, level); err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(out.Bytes()), nil
}

func compress(out *bytes.Buffer, data []byte, level CompressionLevel) error {
	switch level {
	case LevelNone:
		return EmitLiteralRun(out, data)
	case LevelFast, LevelBalanced:
		return compressGreedy(out, data, level)
	case LevelOptimal:
		return compressOptimal(out, data)
	default:
		return fmt.Errorf("%w: unknown compression level %v", ErrCompression, level)
	}
}
