package outline

import "sort"

// Index maps line numbers to headings by binary search over start lines.
type Index struct {
	starts []int
}

func newIndex(headings []Heading) Index {
	starts := make([]int, len(headings))
	for i, h := range headings {
		starts[i] = h.Start
	}
	return Index{starts: starts}
}

// At returns the last heading starting at or before line. Because body
// ranges partition the document, that heading is the innermost one whose
// range contains the line.
func (x Index) At(line int) int {
	if n := len(x.starts); n > 0 && line >= x.starts[n-1] {
		return n - 1
	}
	return x.Before(line + 1)
}

// After returns the first heading starting strictly after line.
func (x Index) After(line int) int {
	if n := len(x.starts); n == 0 || line >= x.starts[n-1] {
		return None
	}
	i := sort.SearchInts(x.starts, line+1)
	if i >= len(x.starts) {
		return None
	}
	return i
}

// Before returns the last heading starting strictly before line.
func (x Index) Before(line int) int {
	return sort.SearchInts(x.starts, line) - 1
}
