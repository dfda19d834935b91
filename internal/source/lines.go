package source

import (
	"fmt"
	"sort"
	"strings"

	"fortio.org/safecast"
)

// LineIndex maps byte offsets to 1-based line numbers.
type LineIndex struct {
	// starts[i] is the byte offset of the first byte of line i+1.
	starts []uint32
}

// NewLineIndex scans content once and records every line start.
func NewLineIndex(content string) *LineIndex {
	starts := make([]uint32, 1, 16+strings.Count(content, "\n"))
	starts[0] = 0
	for i := 0; i < len(content); i++ {
		if content[i] == '\n' {
			offset, err := safecast.Conv[uint32](i + 1)
			if err != nil {
				panic(fmt.Errorf("content length overflow: %w", err))
			}
			starts = append(starts, offset)
		}
	}
	return &LineIndex{starts: starts}
}

// LineAt returns the 1-based line number containing offset.
func (ix *LineIndex) LineAt(offset uint32) int {
	n := sort.Search(len(ix.starts), func(i int) bool {
		return ix.starts[i] > offset
	})
	return n
}

// LineSpan returns the span of the given 1-based line, excluding the newline.
// The second return is false when the line does not exist.
func (ix *LineIndex) LineSpan(line int, contentLen uint32) (Span, bool) {
	if line < 1 || line > len(ix.starts) {
		return Span{}, false
	}
	start := ix.starts[line-1]
	end := contentLen
	if line < len(ix.starts) {
		end = ix.starts[line] - 1
	}
	return Span{Start: start, End: end}, true
}

// LineCount returns the number of lines in the indexed content.
func (ix *LineIndex) LineCount() int {
	return len(ix.starts)
}
