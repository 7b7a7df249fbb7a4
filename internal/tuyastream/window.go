package tuyastream

import (
	"bytes"
	"sort"
)

// matchLength returns the length of the common prefix of data[pos:] and
// data[pos-distance:], capped at maxLen and at the remaining input.
func matchLength(data []byte, pos, distance, maxLen int) int {
	limit := maxLen
	if rem := len(data) - pos; rem < limit {
		limit = rem
	}
	start := pos - distance
	n := 0
	for n < limit && data[pos+n] == data[start+n] {
		n++
	}
	return n
}

// naiveMatch scans every distance in [1, min(pos, window)] in order and
// returns the first one whose match is at least minMatchLength long. This is
// the FAST strategy: cheap to reason about, expensive to run, no
// lexicographic bookkeeping.
func naiveMatch(data []byte, pos, window, maxLen int) (length, distance int, ok bool) {
	limit := pos
	if limit > window {
		limit = window
	}
	for d := 1; d <= limit; d++ {
		l := matchLength(data, pos, d, maxLen)
		if l >= minMatchLength {
			return l, d, true
		}
	}
	return 0, 0, false
}

// suffixList maintains the starting positions of every byte seen within the
// trailing window, ordered lexicographically by the suffix they begin. It is
// built lazily: each call to neighbors(pos) absorbs every not-yet-inserted
// position up to and including pos before reporting pos's immediate
// lexicographic neighbors within the window, which is how BALANCED and
// OPTIMAL find back-reference candidates in O(log W) index operations
// instead of scanning every distance.
type suffixList struct {
	data       []byte
	window     int
	positions  []int
	nextToInsert int
}

func newSuffixList(data []byte, window int) *suffixList {
	return &suffixList{
		data:   data,
		window: window,
	}
}

// neighbors returns up to two candidate distances for pos: the immediate
// predecessor and successor of pos in lexicographic suffix order, both
// still inside the sliding window.
func (s *suffixList) neighbors(pos int) []int {
	idx := -1
	for s.nextToInsert <= pos {
		if len(s.positions) == s.window {
			s.evict(s.nextToInsert - s.window)
		}
		idx = s.insert(s.nextToInsert)
		s.nextToInsert++
	}

	var distances []int
	for _, i := range []int{idx + 1, idx - 1} {
		if i >= 0 && i < len(s.positions) {
			distances = append(distances, pos-s.positions[i])
		}
	}
	return distances
}

// insert places pos into the ordered list (bisect-right on suffix content,
// matching later insertions of an equal suffix after earlier ones) and
// returns its index.
func (s *suffixList) insert(pos int) int {
	idx := sort.Search(len(s.positions), func(i int) bool {
		return bytes.Compare(s.data[s.positions[i]:], s.data[pos:]) > 0
	})
	s.positions = append(s.positions, 0)
	copy(s.positions[idx+1:], s.positions[idx:])
	s.positions[idx] = pos
	return idx
}

// evict removes the single entry equal to target from the ordered list.
func (s *suffixList) evict(target int) {
	lo := sort.Search(len(s.positions), func(i int) bool {
		return bytes.Compare(s.data[s.positions[i]:], s.data[target:]) >= 0
	})
	for i := lo; i < len(s.positions); i++ {
		if s.positions[i] == target {
			s.positions = append(s.positions[:i], s.positions[i+1:]...)
			return
		}
	}
}

// bestMatch picks the longer of the (up to two) suffix-list candidates at
// pos, breaking length ties in favor of the smaller distance.
func (s *suffixList) bestMatch(pos, maxLen int) (length, distance int, ok bool) {
	for _, d := range s.neighbors(pos) {
		if d < 1 {
			continue
		}
		l := matchLength(s.data, pos, d, maxLen)
		if l > length || (l == length && l > 0 && d < distance) {
			length, distance = l, d
		}
	}
	if length < minMatchLength {
		return 0, 0, false
	}
	return length, distance, true
}
