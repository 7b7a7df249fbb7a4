package tuyastream

import "errors"

var (
	// ErrIRCode marks bad input to the encoder façade: an empty or
	// entirely out-of-range timing sequence.
	ErrIRCode = errors.New("tuyastream: invalid ir code")

	// ErrCompression marks an attempt to emit a block that violates the
	// wire format's invariants (length/distance out of range). These
	// indicate a bug in the calling compressor, not bad user input.
	ErrCompression = errors.New("tuyastream: invalid block")
)
