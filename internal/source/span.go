package source

import (
	"fmt"
)

// Span is a half-open byte range [Start, End) into one source buffer.
type Span struct {
	Start uint32
	End   uint32
}

func (s Span) Empty() bool {
	return s.Start == s.End
}

func (s Span) Len() uint32 {
	return s.End - s.Start
}

func (s Span) String() string {
	return fmt.Sprintf("%d-%d", s.Start, s.End)
}

// Cover extends the span to include other.
func (s Span) Cover(other Span) Span {
	if other.Start < s.Start {
		s.Start = other.Start
	}
	if other.End > s.End {
		s.End = other.End
	}
	return s
}

// Read slices the span out of src. The span must lie inside src.
func (s Span) Read(src string) string {
	return src[s.Start:s.End]
}
