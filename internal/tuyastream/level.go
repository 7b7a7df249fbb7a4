package tuyastream

import "fmt"

// CompressionLevel selects how hard the encoder works to find
// back-references before falling back to literal blocks.
type CompressionLevel int

const (
	// LevelNone emits the input as literal blocks only.
	LevelNone CompressionLevel = iota
	// LevelFast greedily matches against a naive linear window scan.
	LevelFast
	// LevelBalanced greedily matches using the ordered suffix list.
	LevelBalanced
	// LevelOptimal finds the cheapest block sequence by a shortest-path
	// search over byte positions; back-reference edges come only from the
	// suffix list's single best match at each position.
	LevelOptimal
)

func (l CompressionLevel) String() string {
	switch l {
	case LevelNone:
		return "NONE"
	case LevelFast:
		return "FAST"
	case LevelBalanced:
		return "BALANCED"
	case LevelOptimal:
		return "OPTIMAL"
	default:
		return fmt.Sprintf("CompressionLevel(%d)", int(l))
	}
}
