package tuyastream

import "bytes"

// compressGreedy implements the FAST and BALANCED levels: scan forward,
// and at each position either emit the best match found right there (FAST:
// naive window scan; BALANCED: suffix-list neighbors) or fall through to the
// next byte, accumulating a pending literal run along the way.
func compressGreedy(out *bytes.Buffer, data []byte, level CompressionLevel) error {
	var suffixes *suffixList
	if level == LevelBalanced {
		suffixes = newSuffixList(data, windowSize)
	}

	pos := 0
	literalStart := 0
	for pos < len(data) {
		var length, distance int
		var ok bool
		if level == LevelFast {
			length, distance, ok = naiveMatch(data, pos, windowSize, maxMatchLength)
		} else {
			length, distance, ok = suffixes.bestMatch(pos, maxMatchLength)
		}

		if !ok {
			pos++
			continue
		}

		if err := EmitLiteralRun(out, data[literalStart:pos]); err != nil {
			return err
		}
		if err := EmitDistanceBlock(out, length, distance); err != nil {
			return err
		}
		pos += length
		literalStart = pos
	}

	return EmitLiteralRun(out, data[literalStart:pos])
}
