package broadlink

import "errors"

// ErrIRCode marks every decode failure caused by malformed or truncated
// input: bad Base64, a short header, or an extended value that runs past
// the end of the buffer. Use errors.Is(err, ErrIRCode) to classify it.
var ErrIRCode = errors.New("broadlink: invalid ir code")
