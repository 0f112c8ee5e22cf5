// Package chunker splits long text into bounded, overlapping segments for
// embedding and retrieval.
package chunker

import (
	"fmt"
)

// Splitter cuts text into segments of at most Size runes, with consecutive
// segments sharing Overlap runes. Splitting prefers paragraph, then
// sentence, then word boundaries before falling back to a hard cut, so a
// segment rarely ends mid-word.
type Splitter struct {
	size    int
	overlap int
}

// separators, in preference order. Each cut happens immediately after the
// separator so the separator stays with the leading segment.
var separators = []string{"\n\n", "\n", ". ", " "}

// New creates a Splitter. Overlap must be strictly less than size.
func New(size, overlap int) (*Splitter, error) {
	if size <= 0 {
		return nil, fmt.Errorf("chunk size must be positive, got %d", size)
	}
	if overlap < 0 || overlap >= size {
		return nil, fmt.Errorf("chunk overlap (%d) must be in [0, size), size %d", overlap, size)
	}
	return &Splitter{size: size, overlap: overlap}, nil
}

// Split returns the ordered segments of text. Every segment is a contiguous
// substring of the input and consecutive segment start offsets strictly
// increase, so de-overlapped concatenation covers the input with no gaps.
// Empty input yields exactly one empty segment: callers may rely on at
// least one chunk for any input.
func (s *Splitter) Split(text string) []string {
	if text == "" {
		return []string{""}
	}

	runes := []rune(text)
	var segments []string

	start := 0
	for {
		end := start + s.size
		if end >= len(runes) {
			segments = append(segments, string(runes[start:]))
			return segments
		}

		end = s.cut(runes, start, end)
		segments = append(segments, string(runes[start:end]))

		next := end - s.overlap
		if next <= start {
			// Segment was shorter than the overlap; skip the overlap
			// entirely rather than stall.
			next = end
		}
		start = next
	}
}

// cut picks the end offset for a segment starting at start with hard limit
// limit. It takes the last boundary in the window, but only if that keeps
// the segment at least half full; otherwise it tries the next separator and
// finally falls back to the hard limit.
func (s *Splitter) cut(runes []rune, start, limit int) int {
	window := string(runes[start:limit])
	minCut := s.size / 2

	for _, sep := range separators {
		if idx := lastIndex(window, sep); idx >= 0 {
			end := idx + len([]rune(sep))
			if end > minCut {
				return start + end
			}
		}
	}
	return limit
}

// lastIndex returns the rune offset of the last occurrence of sep in text,
// or -1 when absent.
func lastIndex(text, sep string) int {
	t := []rune(text)
	p := []rune(sep)
	for i := len(t) - len(p); i >= 0; i-- {
		match := true
		for j := range p {
			if t[i+j] != p[j] {
				match = false
				break
			}
		}
		if match {
			return i
		}
	}
	return -1
}
