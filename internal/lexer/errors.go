package lexer

import (
	"fmt"

	"luamend/internal/source"
)

// Error is a lexical error with its location.
type Error struct {
	Span source.Span
	Line int
	Msg  string
}

func (e *Error) Error() string {
	return fmt.Sprintf("lexical error at line %d: %s", e.Line, e.Msg)
}

func (lx *Lexer) errorAt(span source.Span, format string, args ...any) *Error {
	return &Error{
		Span: span,
		Line: lx.lines.LineAt(span.Start),
		Msg:  fmt.Sprintf(format, args...),
	}
}
