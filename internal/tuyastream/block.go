package tuyastream

import (
	"bytes"
	"fmt"
)

const (
	// maxLiteralLen is the largest chunk a single literal block can carry;
	// its 1-byte header stores length-1 in 5 bits.
	maxLiteralLen = 32

	// minMatchLength and maxMatchLength bound a back-reference's length.
	minMatchLength = 3
	maxMatchLength = 264

	// windowSize is the largest distance a back-reference may point.
	windowSize = 8192
)

// EmitLiteralBlock writes a single literal block: a 1-byte header encoding
// len(data)-1, followed by data verbatim. data must be 1-32 bytes.
func EmitLiteralBlock(out *bytes.Buffer, data []byte) error {
	n := len(data)
	if n < 1 || n > maxLiteralLen {
		return fmt.Errorf("%w: literal length %d out of range [1,%d]", ErrCompression, n, maxLiteralLen)
	}
	out.WriteByte(byte(n - 1))
	out.Write(data)
	return nil
}

// EmitLiteralRun splits data into as many literal blocks as needed to stay
// within maxLiteralLen each, in order. A nil or empty data is a no-op.
func EmitLiteralRun(out *bytes.Buffer, data []byte) error {
	for i := 0; i < len(data); i += maxLiteralLen {
		end := i + maxLiteralLen
		if end > len(data) {
			end = len(data)
		}
		if err := EmitLiteralBlock(out, data[i:end]); err != nil {
			return err
		}
	}
	return nil
}

// EmitDistanceBlock writes a back-reference of the given length and
// distance, using the 2-byte form when length-2 < 7 and the 3-byte form
// otherwise.
func EmitDistanceBlock(out *bytes.Buffer, length, distance int) error {
	if distance < 1 || distance > windowSize {
		return fmt.Errorf("%w: distance %d out of range [1,%d]", ErrCompression, distance, windowSize)
	}
	if length < minMatchLength || length > maxMatchLength {
		return fmt.Errorf("%w: match length %d out of range [%d,%d]", ErrCompression, length, minMatchLength, maxMatchLength)
	}

	d := distance - 1
	l := length - 2
	if l < 7 {
		out.WriteByte(byte(l<<5 | d>>8))
		out.WriteByte(byte(d & 0xFF))
		return nil
	}
	out.WriteByte(byte(7<<5 | d>>8))
	out.WriteByte(byte(d & 0xFF))
	out.WriteByte(byte(l - 7))
	return nil
}
