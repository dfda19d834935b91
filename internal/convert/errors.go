package convert

import (
	"fmt"

	"luamend/internal/source"
)

// ErrorKind discriminates conversion failures by the category of
// construct that could not be converted.
type ErrorKind uint8

const (
	// ErrStatement marks a statement the converter cannot model, such
	// as a bare prefix expression that is not a call.
	ErrStatement ErrorKind = iota
	ErrLastStatement
	ErrExpression
	ErrPrefix
	// ErrVariable marks an assignment target that is not a name, field
	// or index expression.
	ErrVariable
	ErrArguments
	ErrTableEntry
	ErrType
	// ErrNumber marks a numeric literal whose text does not parse.
	ErrNumber
	// ErrTrivia marks trivia the converter cannot attach to a token,
	// reachable through a shebang line.
	ErrTrivia
	// ErrFunctionName marks a function declaration without a name.
	ErrFunctionName
	// ErrInternal marks a broken converter invariant: a value stack
	// underflow or a leftover value after conversion. It indicates a
	// bug, never bad input.
	ErrInternal
)

func (k ErrorKind) String() string {
	switch k {
	case ErrStatement:
		return "unsupported statement"
	case ErrLastStatement:
		return "unsupported last statement"
	case ErrExpression:
		return "unsupported expression"
	case ErrPrefix:
		return "unsupported prefix expression"
	case ErrVariable:
		return "unsupported assignment target"
	case ErrArguments:
		return "unsupported call arguments"
	case ErrTableEntry:
		return "unsupported table entry"
	case ErrType:
		return "unsupported type"
	case ErrNumber:
		return "invalid number literal"
	case ErrTrivia:
		return "unexpected trivia"
	case ErrFunctionName:
		return "missing function name"
	case ErrInternal:
		return "internal converter error"
	default:
		return "conversion error"
	}
}

// Error is a conversion failure. Snippet holds the offending source
// text, truncated for display.
type Error struct {
	Kind    ErrorKind
	Snippet string
	Detail  string
}

func (e *Error) Error() string {
	msg := e.Kind.String()
	if e.Detail != "" {
		msg = fmt.Sprintf("%s: %s", msg, e.Detail)
	}
	if e.Snippet != "" {
		msg = fmt.Sprintf("%s in `%s`", msg, e.Snippet)
	}
	return msg
}

const snippetLimit = 40

func (c *converter) errAt(kind ErrorKind, span source.Span, detail string) *Error {
	snippet := span.Read(c.src)
	if len(snippet) > snippetLimit {
		snippet = snippet[:snippetLimit] + "..."
	}
	return &Error{Kind: kind, Snippet: snippet, Detail: detail}
}

func (c *converter) internalError(detail string) *Error {
	return &Error{Kind: ErrInternal, Detail: detail}
}
